package breakout

import "github.com/vovakirdan/tui-breakout/internal/core"

// PowerUpKind represents the type of a pickup and of its timed effect.
type PowerUpKind int

const (
	PowerUpWidePaddle PowerUpKind = iota // Widen paddle
	PowerUpMultiBall                     // Spawn two extra balls (instant)
	PowerUpSlowBall                      // Slow every ball
	PowerUpFireBall                      // Timed slot only; piercing is presentation
	powerUpCount                         // Sentinel for counting types
)

// Glyph returns the display character for a pickup type.
func (k PowerUpKind) Glyph() rune {
	switch k {
	case PowerUpWidePaddle:
		return 'W'
	case PowerUpMultiBall:
		return 'M'
	case PowerUpSlowBall:
		return 'S'
	case PowerUpFireBall:
		return 'F'
	default:
		return '?'
	}
}

// String returns the name of the pickup type.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpWidePaddle:
		return "Wide"
	case PowerUpMultiBall:
		return "Multi"
	case PowerUpSlowBall:
		return "Slow"
	case PowerUpFireBall:
		return "Fire"
	default:
		return "?"
	}
}

// Pickup represents a falling power-up item.
type Pickup struct {
	Kind PowerUpKind
	Pos  core.Vec2
	Vel  core.Vec2
}

// ActiveEffect is a timed modifier attached to the paddle.
type ActiveEffect struct {
	Kind      PowerUpKind
	Remaining float64 // Seconds
}

// EffectList holds at most one entry per effect kind.
type EffectList struct {
	Entries []ActiveEffect
}

// Has reports whether an effect of kind k is active.
func (l *EffectList) Has(k PowerUpKind) bool {
	if l == nil {
		return false
	}
	for _, e := range l.Entries {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Remaining returns the time left on effect k, or 0 if inactive.
func (l *EffectList) Remaining(k PowerUpKind) float64 {
	if l == nil {
		return 0
	}
	for _, e := range l.Entries {
		if e.Kind == k {
			return e.Remaining
		}
	}
	return 0
}

// Refresh starts effect k or resets its timer to the full duration. It never
// adds a second entry for the same kind.
func (l *EffectList) Refresh(k PowerUpKind, duration float64) {
	for i := range l.Entries {
		if l.Entries[i].Kind == k {
			l.Entries[i].Remaining = duration
			return
		}
	}
	l.Entries = append(l.Entries, ActiveEffect{Kind: k, Remaining: duration})
}

// tick advances every timer and returns the kinds that expired, removing them.
func (l *EffectList) tick(dt float64) []PowerUpKind {
	var expired []PowerUpKind
	kept := l.Entries[:0]
	for _, e := range l.Entries {
		e.Remaining -= dt
		if e.Remaining <= 0 {
			expired = append(expired, e.Kind)
			continue
		}
		kept = append(kept, e)
	}
	l.Entries = kept
	return expired
}

// Len returns the number of active effects.
func (l *EffectList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// maybeSpawnPickup rolls the spawn chance for a destroyed block and drops a
// uniformly chosen pickup at its position.
func (w *World) maybeSpawnPickup(pos core.Vec2) {
	if w.rng.Float64() >= w.cfg.PowerUps.SpawnChance {
		return
	}
	kind := PowerUpKind(w.rng.Intn(int(powerUpCount)))
	w.SpawnPickup(kind, pos)
}

// SpawnPickup drops a pickup of the given kind at pos.
func (w *World) SpawnPickup(kind PowerUpKind, pos core.Vec2) {
	w.Pickups = append(w.Pickups, &Pickup{
		Kind: kind,
		Pos:  pos,
		Vel:  core.V(0, -w.cfg.PowerUps.FallSpeed),
	})
}

// updatePickups moves pickups, culls those below the field and resolves
// paddle contact.
func (w *World) updatePickups(dt float64) {
	if len(w.Pickups) == 0 {
		return
	}
	size := core.V(w.cfg.PowerUps.Width, w.cfg.PowerUps.Height)
	kept := w.Pickups[:0]
	for _, p := range w.Pickups {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		if p.Pos.Y < w.field.Bottom() {
			continue
		}
		if w.Paddle != nil && core.Overlaps(p.Pos, size, w.paddlePos(), w.paddleSize()) {
			w.ApplyPowerUp(p.Kind)
			w.emit(Event{Kind: EventPowerUpCollected, Pos: p.Pos, PowerUp: p.Kind})
			continue
		}
		kept = append(kept, p)
	}
	clear(w.Pickups[len(kept):])
	w.Pickups = kept
}

// ApplyPowerUp dispatches a collected pickup. With no paddle it is a no-op.
func (w *World) ApplyPowerUp(kind PowerUpKind) {
	if w.Paddle == nil {
		return
	}
	pu := w.cfg.PowerUps
	switch kind {
	case PowerUpWidePaddle:
		effects := w.paddleEffects()
		if !effects.Has(PowerUpWidePaddle) {
			w.Paddle.Width = w.cfg.Paddle.Width * pu.WidePaddleFactor
		}
		effects.Refresh(PowerUpWidePaddle, pu.WidePaddleDuration)
		w.clampPaddle()

	case PowerUpMultiBall:
		w.spawnMultiBall()

	case PowerUpSlowBall:
		effects := w.paddleEffects()
		if !effects.Has(PowerUpSlowBall) {
			for _, b := range w.Balls {
				b.Vel = b.Vel.Scale(pu.SlowBallFactor)
			}
		}
		effects.Refresh(PowerUpSlowBall, pu.SlowBallDuration)

	case PowerUpFireBall:
		w.paddleEffects().Refresh(PowerUpFireBall, pu.FireBallDuration)
	}
}

// paddleEffects returns the paddle's effect list, attaching one if needed.
func (w *World) paddleEffects() *EffectList {
	if w.Paddle.Effects == nil {
		w.Paddle.Effects = &EffectList{}
	}
	return w.Paddle.Effects
}

// spawnMultiBall adds two balls at the first ball's position, rotated by the
// configured spread either side of its heading, at the same speed.
func (w *World) spawnMultiBall() {
	if len(w.Balls) == 0 {
		return
	}
	src := w.Balls[0]
	speed := src.Speed()
	heading := src.Vel.Angle()
	spread := w.cfg.PowerUps.MultiBallSpread
	for _, a := range [2]float64{heading + spread, heading - spread} {
		w.Balls = append(w.Balls, &Ball{Pos: src.Pos, Vel: core.FromAngle(a, speed)})
	}
}

// tickEffects advances effect timers and reverts expired effects. An empty
// list is detached from the paddle.
func (w *World) tickEffects(dt float64) {
	if w.Paddle == nil || w.Paddle.Effects == nil {
		return
	}
	for _, kind := range w.Paddle.Effects.tick(dt) {
		w.revertEffect(kind)
	}
	if w.Paddle.Effects.Len() == 0 {
		w.Paddle.Effects = nil
	}
}

func (w *World) revertEffect(kind PowerUpKind) {
	switch kind {
	case PowerUpWidePaddle:
		w.Paddle.Width = w.cfg.Paddle.Width
		w.clampPaddle()
	case PowerUpSlowBall:
		target := w.TargetBallSpeed()
		for _, b := range w.Balls {
			b.Vel = b.Vel.WithLen(target)
		}
	}
}
