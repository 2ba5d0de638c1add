package breakout

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a simple LCG (Linear Congruential Generator). Each World owns one,
// seeded explicitly, so runs with the same seed replay identically.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are far better distributed than the low ones.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// cellRoll returns a value in [0, 1) that depends only on its inputs.
// The level generator uses it so the same level number always produces the
// same layout. salt separates independent rolls for one cell.
func cellRoll(level, row, col int, salt uint64) float64 {
	x := uint64(level)*0x9E3779B97F4A7C15 ^ //#nosec G115 -- level is positive
		uint64(row+1)<<40 ^ //#nosec G115 -- row is a grid index
		uint64(col+1)<<20 ^ //#nosec G115 -- col is a grid index
		salt*0xBF58476D1CE4E5B9
	// splitmix64 finalizer
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return float64(x>>11) / float64(1<<53)
}
