package breakout

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

func TestReflectAxisPicksSmallerOverlap(t *testing.T) {
	ball := core.V(10, 10)
	block := core.V(70, 25)
	tests := []struct {
		name string
		pos  core.Vec2
		want Axis
	}{
		{"from below", core.V(0, -16), AxisY},
		{"from the side", core.V(-38, 0), AxisX},
		{"corner, deeper on x", core.V(-39, -16), AxisX},
		// Equal depths: x overlap 40-38 = 2, y overlap 17.5-15.5 = 2.
		{"tie reflects y", core.V(38, 15.5), AxisY},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReflectAxis(tc.pos, ball, core.V(0, 0), block); got != tc.want {
				t.Errorf("ReflectAxis = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestReflectOffWallUsesAbsoluteValues(t *testing.T) {
	tests := []struct {
		side CollisionSide
		in   core.Vec2
		want core.Vec2
	}{
		{SideLeft, core.V(-3, 1), core.V(3, 1)},
		{SideLeft, core.V(3, 1), core.V(3, 1)},
		{SideRight, core.V(3, 1), core.V(-3, 1)},
		{SideRight, core.V(-3, 1), core.V(-3, 1)},
		{SideTop, core.V(1, 3), core.V(1, -3)},
		{SideTop, core.V(1, -3), core.V(1, -3)},
		{SideNone, core.V(1, 3), core.V(1, 3)},
	}
	for _, tc := range tests {
		if got := ReflectOffWall(tc.in, tc.side); got != tc.want {
			t.Errorf("ReflectOffWall(%+v, %d) = %+v, expected %+v", tc.in, tc.side, got, tc.want)
		}
	}
}

func TestPaddleBounceSteering(t *testing.T) {
	center := PaddleBounce(core.V(100, -300), 0, 50, 0.8)
	if math.Abs(center.X) > 1e-9 || center.Y <= 0 {
		t.Errorf("center hit should go straight up, got %+v", center)
	}

	right := PaddleBounce(core.V(0, -300), 25, 50, 0.8)
	left := PaddleBounce(core.V(0, -300), -25, 50, 0.8)
	if right.X <= 0 || left.X >= 0 {
		t.Errorf("offset should steer: right %+v left %+v", right, left)
	}
	if math.Abs(right.X+left.X) > 1e-9 {
		t.Error("steering should be symmetric")
	}

	// vx = 0.5 * 300 * 0.8 = 120 before renormalizing against vy = 300.
	want := core.V(120, 300).WithLen(300)
	if math.Abs(right.X-want.X) > 1e-9 || math.Abs(right.Y-want.Y) > 1e-9 {
		t.Errorf("right = %+v, expected %+v", right, want)
	}
}

func TestPaddleBounceZeroVelocity(t *testing.T) {
	if got := PaddleBounce(core.V(0, 0), 10, 50, 0.8); got != core.V(0, 0) {
		t.Errorf("a resting ball should stay at rest, got %+v", got)
	}
}

func TestPushOutDeadCenterUsesVelocity(t *testing.T) {
	ball := &Ball{Pos: core.V(0, 0), Vel: core.V(0, 200)}
	PushOut(ball, core.V(10, 10), core.V(0, 0), core.V(70, 25), AxisY)
	if ball.Vel.Y != -200 || ball.Pos.Y != -17.5 {
		t.Errorf("upward ball should leave below: %+v", ball)
	}

	ball = &Ball{Pos: core.V(0, 0), Vel: core.V(-200, 0)}
	PushOut(ball, core.V(10, 10), core.V(0, 0), core.V(70, 25), AxisX)
	if ball.Vel.X != 200 || ball.Pos.X != 40 {
		t.Errorf("leftward ball should leave on the right: %+v", ball)
	}
}

func TestBlockHitStateMachine(t *testing.T) {
	steel := &Block{Type: Steel()}
	if steel.Hit() != HitReflected || steel.Type != Steel() {
		t.Error("steel must be unaffected")
	}

	durable := &Block{Type: Durable(3)}
	for _, want := range []HitResult{HitDamaged, HitDamaged, HitDestroyed} {
		if got := durable.Hit(); got != want {
			t.Fatalf("Hit() = %v, expected %v (hits %d)", got, want, durable.Type.Hits)
		}
	}

	for _, bt := range []BlockType{Normal(), Explosive()} {
		b := &Block{Type: bt}
		if b.Hit() != HitDestroyed {
			t.Errorf("%v should be destroyed by one hit", bt)
		}
	}
}

func TestDurableTier(t *testing.T) {
	tests := []struct {
		bt   BlockType
		tier int
	}{
		{Durable(1), 1},
		{Durable(2), 2},
		{Durable(3), 3},
		{Durable(7), 3},
		{Normal(), 0},
	}
	for _, tc := range tests {
		if got := tc.bt.Tier(); got != tc.tier {
			t.Errorf("%v.Tier() = %d, expected %d", tc.bt, got, tc.tier)
		}
	}
}
