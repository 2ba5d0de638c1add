package breakout

// ComboTracker counts block destructions that arrive within a rolling window.
type ComboTracker struct {
	Count           int
	Elapsed         float64 // Seconds since the last qualifying hit
	LastScoreGained int
	Window          float64 // Decay window in seconds
}

// NewComboTracker creates a tracker with the given decay window.
func NewComboTracker(window float64) ComboTracker {
	return ComboTracker{Window: window}
}

// Hit registers a qualifying destruction and returns the new count, which is
// the score multiplier for that destruction.
func (c *ComboTracker) Hit() int {
	c.Count++
	c.Elapsed = 0
	return c.Count
}

// Record stores the points awarded for the latest destruction.
func (c *ComboTracker) Record(points int) {
	c.LastScoreGained = points
}

// Tick advances the decay timer. Once the window passes with no hit the
// count drops to zero.
func (c *ComboTracker) Tick(dt float64) {
	if c.Count == 0 {
		return
	}
	c.Elapsed += dt
	if c.Elapsed >= c.Window {
		c.Count = 0
		c.Elapsed = 0
	}
}

// Reset clears the streak.
func (c *ComboTracker) Reset() {
	c.Count = 0
	c.Elapsed = 0
	c.LastScoreGained = 0
}
