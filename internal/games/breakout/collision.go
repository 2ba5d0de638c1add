package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// collidePaddle bounces every descending ball that overlaps the paddle.
func (w *World) collidePaddle() {
	if w.Paddle == nil {
		return
	}
	pos, size := w.paddlePos(), w.paddleSize()
	bs := w.ballSize()
	for _, b := range w.Balls {
		if b.Vel.Y >= 0 || !core.Overlaps(b.Pos, bs, pos, size) {
			continue
		}
		b.Vel = PaddleBounce(b.Vel, b.Pos.X-pos.X, size.X/2, w.cfg.Ball.SteeringFactor)
		w.emit(Event{Kind: EventPaddleBounce, Pos: b.Pos})
	}
}

// collideWalls reflects balls off the side and top walls and removes balls
// that fell below the field. It reports game over when every ball that was
// in play at the start of the frame was lost.
func (w *World) collideWalls() bool {
	before := len(w.Balls)
	if before == 0 {
		return false
	}
	bs := w.ballSize()
	walls := w.field.walls()
	bottom := w.field.Bottom()

	kept := w.Balls[:0]
	for _, b := range w.Balls {
		for _, wl := range walls {
			if core.Overlaps(b.Pos, bs, wl.center, wl.size) {
				b.Vel = ReflectOffWall(b.Vel, wl.side)
				w.emit(Event{Kind: EventWallBounce, Pos: b.Pos})
			}
		}
		if b.Pos.Y < bottom {
			continue
		}
		kept = append(kept, b)
	}
	clear(w.Balls[len(kept):])
	w.Balls = kept

	if len(kept) == 0 {
		w.emit(Event{Kind: EventGameOver})
		return true
	}
	return false
}

// collideBlocks resolves at most one block per ball. Blocks destroyed earlier
// in the same pass, by any ball or blast, are skipped.
func (w *World) collideBlocks() {
	if len(w.Blocks) == 0 || len(w.Balls) == 0 {
		return
	}
	destroyed := make(map[int]bool)
	bs := w.ballSize()
	size := w.geo.Size()

	for _, ball := range w.Balls {
		for _, blk := range w.Blocks {
			if destroyed[blk.ID] || !core.Overlaps(ball.Pos, bs, blk.Pos, size) {
				continue
			}
			axis := ReflectAxis(ball.Pos, bs, blk.Pos, size)
			if blk.Type.Kind == KindSteel {
				PushOut(ball, bs, blk.Pos, size, axis)
				w.emit(Event{Kind: EventWallBounce, Pos: blk.Pos, Block: blk.Type})
				break
			}
			ball.Vel = Reflect(ball.Vel, axis)
			w.hitBlock(blk, destroyed)
			break
		}
	}

	if len(destroyed) > 0 {
		kept := w.Blocks[:0]
		for _, blk := range w.Blocks {
			if !destroyed[blk.ID] {
				kept = append(kept, blk)
			}
		}
		clear(w.Blocks[len(kept):])
		w.Blocks = kept
	}
}

// hitBlock applies one ball hit to a non-Steel block.
func (w *World) hitBlock(blk *Block, destroyed map[int]bool) {
	kind := blk.Type.Kind
	switch blk.Hit() {
	case HitDamaged:
		w.emit(Event{Kind: EventBlockHit, Pos: blk.Pos, Block: blk.Type})
	case HitDestroyed:
		bonus := 0
		if kind == KindDurable {
			bonus = w.cfg.Scoring.DurableBonus
		}
		w.destroyBlock(blk, bonus, destroyed)
		if kind == KindExplosive {
			w.explode(blk.Pos, destroyed)
		}
	}
}

// destroyBlock marks a block destroyed, awards base points times the new
// combo count plus bonus, and rolls for a pickup.
func (w *World) destroyBlock(blk *Block, bonus int, destroyed map[int]bool) {
	destroyed[blk.ID] = true
	combo := w.Combo.Hit()
	points := w.cfg.Scoring.BasePoints*combo + bonus
	w.Combo.Record(points)
	w.Score += points

	w.Stats.BlocksDestroyed++
	w.Stats.MaxCombo = max(w.Stats.MaxCombo, combo)
	w.shake = min(1, w.shake+shakePerBlock)

	w.emit(Event{Kind: EventBlockDestroyed, Pos: blk.Pos, Block: blk.Type, Points: points, Combo: combo})
	w.maybeSpawnPickup(blk.Pos)
}

// explode floods outward from origin. Centers are processed in discovery
// order through an index cursor, so chains of any length use a flat queue.
// Each block is destroyed at most once; Steel is immune.
func (w *World) explode(origin core.Vec2, destroyed map[int]bool) {
	radius := w.cfg.Blocks.ExplosionRadius
	queue := []core.Vec2{origin}
	for i := 0; i < len(queue); i++ {
		center := queue[i]
		w.emit(Event{Kind: EventExplosion, Pos: center})
		for _, blk := range w.Blocks {
			if destroyed[blk.ID] || blk.Type.Kind == KindSteel {
				continue
			}
			if core.Dist(center, blk.Pos) > radius {
				continue
			}
			w.destroyBlock(blk, 0, destroyed)
			if blk.Type.Kind == KindExplosive {
				queue = append(queue, blk.Pos)
			}
		}
	}
}

// checkLevelClear emits LevelClear once no breakable block is left.
func (w *World) checkLevelClear() {
	if w.Paddle == nil || countBreakable(w.Blocks) > 0 {
		return
	}
	w.emit(Event{Kind: EventLevelClear})
}
