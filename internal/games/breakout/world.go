package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Input is the polled player state for one frame.
type Input struct {
	Move    float64 // Horizontal intent in [-1, 1]
	Confirm bool
	Pause   bool
	Back    bool
}

// InputFromFrame converts a platform input frame.
func InputFromFrame(f core.InputFrame) Input {
	return Input{
		Move:    f.Steer(),
		Confirm: f.Has(core.ActionConfirm),
		Pause:   f.Has(core.ActionPause),
		Back:    f.Has(core.ActionBack),
	}
}

// LevelStats are per-attempt counters, reset whenever a level starts.
type LevelStats struct {
	BlocksDestroyed   int
	MaxCombo          int
	ScoreAtLevelStart int
	TimeElapsed       float64
}

// World is the simulation state of one level attempt plus the counters that
// carry across levels (Score, Level). It is single-threaded; Step is the only
// mutator during play.
type World struct {
	cfg   config.BreakoutConfig
	field Field
	geo   BlockGeometry
	rng   *SimpleRNG

	Level   int
	Score   int
	Paddle  *Paddle // nil between levels
	Balls   []*Ball
	Blocks  []*Block
	Pickups []*Pickup
	Combo   ComboTracker
	Stats   LevelStats

	events []Event
	shake  float64
}

// NewWorld creates an empty world. Call LoadLevel before stepping.
func NewWorld(cfg config.BreakoutConfig, seed int64) *World {
	return &World{
		cfg: cfg,
		field: Field{
			Width:         cfg.Field.Width,
			Height:        cfg.Field.Height,
			WallThickness: cfg.Field.WallThickness,
		},
		geo: BlockGeometry{
			Width:  cfg.Blocks.Width,
			Height: cfg.Blocks.Height,
			Gap:    cfg.Blocks.Gap,
			StartY: cfg.Blocks.StartY,
		},
		rng:   NewSimpleRNG(seed),
		Level: 1,
		Combo: NewComboTracker(cfg.Scoring.ComboWindow),
	}
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.BreakoutConfig {
	return w.cfg
}

// Field returns the play field geometry.
func (w *World) Field() Field {
	return w.field
}

// Geometry returns the block placement geometry.
func (w *World) Geometry() BlockGeometry {
	return w.geo
}

// SpeedMultiplier is the ball speed factor of the current level.
func (w *World) SpeedMultiplier() float64 {
	return 1 + float64(w.Level-1)*w.cfg.Ball.SpeedIncreasePerLevel
}

// TargetBallSpeed is the canonical ball speed at the current level.
func (w *World) TargetBallSpeed() float64 {
	return w.cfg.Ball.Speed * w.SpeedMultiplier()
}

// LoadLevel starts a fresh attempt at level using grid as the block layout.
// Any previous entities are discarded, the paddle is centered at base width,
// one ball is served from the center and LevelStats are reset.
func (w *World) LoadLevel(level int, grid Grid) {
	w.ClearTransient()
	w.Level = level
	w.Paddle = &Paddle{X: 0, Width: w.cfg.Paddle.Width}
	dir := core.V(0.5, 0.5).Normalize()
	w.Balls = []*Ball{{Pos: core.V(0, 0), Vel: dir.Scale(w.TargetBallSpeed())}}
	w.Blocks = PlaceBlocks(grid, w.geo)
	w.Stats = LevelStats{ScoreAtLevelStart: w.Score}
}

// ClearTransient strips everything that must not outlive a level attempt:
// balls, pickups, combo streak, and paddle effects (the paddle returns to
// base width).
func (w *World) ClearTransient() {
	w.Balls = nil
	w.Pickups = nil
	w.Combo.Reset()
	w.shake = 0
	if w.Paddle != nil {
		w.Paddle.Effects = nil
		w.Paddle.Width = w.cfg.Paddle.Width
	}
}

// RemainingBlocks returns the number of non-Steel blocks left.
func (w *World) RemainingBlocks() int {
	return countBreakable(w.Blocks)
}

// Shake returns the current screen-shake trauma in [0, 1].
func (w *World) Shake() float64 {
	return w.shake
}

// Step advances the simulation by dt seconds in this fixed order: paddle,
// balls, paddle/wall/block collisions, level-clear check, pickups, effect
// expiry, combo decay. The returned events are only valid until the next
// call.
func (w *World) Step(dt float64, in Input) []Event {
	w.events = w.events[:0]

	w.movePaddle(dt, in.Move)
	for _, b := range w.Balls {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}

	w.collidePaddle()
	gameOver := w.collideWalls()
	w.collideBlocks()
	if !gameOver {
		w.checkLevelClear()
	}

	w.updatePickups(dt)
	w.tickEffects(dt)
	w.Combo.Tick(dt)

	w.Stats.TimeElapsed += dt
	w.shake = math.Max(0, w.shake-shakeDecay*dt)
	return w.events
}

// Screen shake tuning, presentation only.
const (
	shakePerBlock = 0.15
	shakeDecay    = 1.5
)

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

func (w *World) movePaddle(dt, move float64) {
	if w.Paddle == nil {
		return
	}
	move = core.ClampF(move, -1, 1)
	w.Paddle.X += move * w.cfg.Paddle.Speed * dt
	w.clampPaddle()
}

// clampPaddle keeps the paddle between the side walls.
func (w *World) clampPaddle() {
	if w.Paddle == nil {
		return
	}
	limit := w.field.rightInner() - w.Paddle.Width/2
	if limit < 0 {
		limit = 0
	}
	w.Paddle.X = core.ClampF(w.Paddle.X, -limit, limit)
}

func (w *World) paddlePos() core.Vec2 {
	return core.V(w.Paddle.X, w.cfg.Paddle.Y)
}

func (w *World) paddleSize() core.Vec2 {
	return core.V(w.Paddle.Width, w.cfg.Paddle.Height)
}

func (w *World) ballSize() core.Vec2 {
	return core.V(w.cfg.Ball.Size, w.cfg.Ball.Size)
}
