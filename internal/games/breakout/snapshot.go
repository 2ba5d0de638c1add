package breakout

import "math"

// Snapshot is a flat copy of the simulation state for determinism checks and
// debugging. Uses primitive types only for stable hashing.
type Snapshot struct {
	Phase   int
	Mode    int
	Level   int
	Score   int
	Combo   int
	Elapsed float64

	PaddleX     float64
	PaddleWidth float64

	// Each ball is 4 floats: X, Y, VX, VY
	BallData []float64

	// Each pickup is 3 floats: Kind, X, Y
	PickupData []float64

	// Each effect is 2 floats: Kind, Remaining
	EffectData []float64

	// Each block is 3 ints: ID, Kind, Hits
	BlockData []int

	// RNG state for pickup rolls
	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	w := g.World
	snap := Snapshot{
		Phase:    int(g.phase),
		Mode:     int(g.mode),
		Level:    w.Level,
		Score:    w.Score,
		Combo:    w.Combo.Count,
		Elapsed:  w.Stats.TimeElapsed,
		RNGState: w.rng.state,
	}

	if w.Paddle != nil {
		snap.PaddleX = w.Paddle.X
		snap.PaddleWidth = w.Paddle.Width
		if w.Paddle.Effects != nil {
			for _, e := range w.Paddle.Effects.Entries {
				snap.EffectData = append(snap.EffectData, float64(e.Kind), e.Remaining)
			}
		}
	}
	for _, b := range w.Balls {
		snap.BallData = append(snap.BallData, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y)
	}
	for _, p := range w.Pickups {
		snap.PickupData = append(snap.PickupData, float64(p.Kind), p.Pos.X, p.Pos.Y)
	}
	for _, b := range w.Blocks {
		snap.BlockData = append(snap.BlockData, b.ID, int(b.Type.Kind), b.Type.Hits)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Phase)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Elapsed)
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.PaddleWidth)

	for _, v := range snap.BallData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.PickupData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.EffectData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.BlockData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
