package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Ball is one ball in play. Several may coexist under multi-ball.
type Ball struct {
	Pos core.Vec2
	Vel core.Vec2 // World units per second
}

// Speed returns the ball's current speed.
func (b *Ball) Speed() float64 {
	return b.Vel.Len()
}

// Paddle is the player's paddle. Its Y is fixed by the field.
type Paddle struct {
	X       float64
	Width   float64
	Effects *EffectList // nil when no effect is active
}

// Field describes the play area and its walls. The field is centered on the
// origin; walls sit inside the half extents.
type Field struct {
	Width         float64
	Height        float64
	WallThickness float64
}

// Inner edges of the walls.
func (f Field) leftInner() float64 { return -f.Width/2 + f.WallThickness }
func (f Field) rightInner() float64 { return f.Width/2 - f.WallThickness }
func (f Field) topInner() float64 { return f.Height/2 - f.WallThickness }

// Bottom is the y threshold below which balls and pickups leave the field.
func (f Field) Bottom() float64 {
	return -f.Height / 2
}

// wall is a collision box with the side it guards.
type wall struct {
	side   CollisionSide
	center core.Vec2
	size   core.Vec2
}

// CollisionSide identifies which wall was hit.
type CollisionSide int

const (
	SideNone CollisionSide = iota
	SideLeft
	SideRight
	SideTop
)

// walls returns the side and top wall boxes. Each box keeps its inner face
// where the visible wall is and extends a full field outward, so a fast ball
// cannot skip past it in one frame.
func (f Field) walls() [3]wall {
	depth := f.Width + f.Height
	return [3]wall{
		{SideLeft, core.V(f.leftInner()-depth/2, 0), core.V(depth, f.Height+2*depth)},
		{SideRight, core.V(f.rightInner()+depth/2, 0), core.V(depth, f.Height+2*depth)},
		{SideTop, core.V(0, f.topInner()+depth/2), core.V(f.Width+2*depth, depth)},
	}
}

// ReflectOffWall points the velocity away from the wall using absolute
// values, so a ball still overlapping next frame is not flipped back in.
func ReflectOffWall(vel core.Vec2, side CollisionSide) core.Vec2 {
	switch side {
	case SideLeft:
		vel.X = math.Abs(vel.X)
	case SideRight:
		vel.X = -math.Abs(vel.X)
	case SideTop:
		vel.Y = -math.Abs(vel.Y)
	}
	return vel
}

// PaddleBounce returns the velocity after a paddle hit at horizontal offset
// hitX from the paddle center. The ball leaves upward, steered by the hit
// offset, at its incoming speed.
func PaddleBounce(vel core.Vec2, hitX, halfWidth, steering float64) core.Vec2 {
	speed := vel.Len()
	if speed == 0 || halfWidth <= 0 {
		return vel
	}
	out := core.V(hitX/halfWidth*speed*steering, math.Abs(vel.Y))
	if out.Y == 0 && out.X == 0 {
		out.Y = speed
	}
	return out.WithLen(speed)
}

// Axis is the velocity component a block hit reflects.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// ReflectAxis picks the axis of least penetration between a ball and a
// block. Equal depths reflect Y.
func ReflectAxis(ballPos, ballSize, blockPos, blockSize core.Vec2) Axis {
	d := ballPos.Sub(blockPos)
	xOverlap := (blockSize.X+ballSize.X)/2 - math.Abs(d.X)
	yOverlap := (blockSize.Y+ballSize.Y)/2 - math.Abs(d.Y)
	if xOverlap < yOverlap {
		return AxisX
	}
	return AxisY
}

// Reflect negates one velocity component.
func Reflect(vel core.Vec2, axis Axis) core.Vec2 {
	if axis == AxisX {
		vel.X = -vel.X
	} else {
		vel.Y = -vel.Y
	}
	return vel
}

// PushOut handles a steel hit. The velocity on the reflected axis is pointed
// away from the block face the ball came from, and the ball is moved onto
// that face so it no longer overlaps.
func PushOut(ball *Ball, ballSize, blockPos, blockSize core.Vec2, axis Axis) {
	d := ball.Pos.Sub(blockPos)
	if axis == AxisX {
		dir := approachSign(d.X, ball.Vel.X)
		ball.Vel.X = dir * math.Abs(ball.Vel.X)
		ball.Pos.X = blockPos.X + dir*(blockSize.X+ballSize.X)/2
		return
	}
	dir := approachSign(d.Y, ball.Vel.Y)
	ball.Vel.Y = dir * math.Abs(ball.Vel.Y)
	ball.Pos.Y = blockPos.Y + dir*(blockSize.Y+ballSize.Y)/2
}

// approachSign returns the side of the block the ball is on. A dead-center
// hit falls back to the side the ball is moving from.
func approachSign(offset, vel float64) float64 {
	if offset != 0 {
		return core.Sign(offset)
	}
	if vel > 0 {
		return -1
	}
	return 1
}
