package breakout

import "testing"

func TestComboIncrementsAndResetsWindow(t *testing.T) {
	c := NewComboTracker(1.5)

	if got := c.Hit(); got != 1 {
		t.Errorf("first hit = %d, expected 1", got)
	}
	c.Tick(1.0)
	if got := c.Hit(); got != 2 {
		t.Errorf("second hit = %d, expected 2", got)
	}
	if c.Elapsed != 0 {
		t.Errorf("a hit should reset the timer, elapsed = %f", c.Elapsed)
	}
}

func TestComboNeverResetsWhileHitsArrive(t *testing.T) {
	c := NewComboTracker(1.5)
	for i := range 20 {
		c.Hit()
		c.Tick(1.4)
		if c.Count != i+1 {
			t.Fatalf("combo reset mid-streak at hit %d: count %d", i+1, c.Count)
		}
	}
}

func TestComboDecaysAfterWindow(t *testing.T) {
	c := NewComboTracker(1.5)
	c.Hit()
	c.Hit()
	c.Tick(1.0)
	if c.Count != 2 {
		t.Fatalf("count = %d before window, expected 2", c.Count)
	}
	c.Tick(0.5)
	if c.Count != 0 {
		t.Errorf("count = %d after window, expected 0", c.Count)
	}
	if got := c.Hit(); got != 1 {
		t.Errorf("streak should restart at 1, got %d", got)
	}
}

func TestComboIdleTickIsNoOp(t *testing.T) {
	c := NewComboTracker(1.5)
	c.Tick(10)
	if c.Count != 0 || c.Elapsed != 0 {
		t.Errorf("idle tracker changed: %+v", c)
	}
}

func TestComboReset(t *testing.T) {
	c := NewComboTracker(1.5)
	c.Hit()
	c.Record(40)
	c.Reset()
	if c.Count != 0 || c.LastScoreGained != 0 || c.Window != 1.5 {
		t.Errorf("Reset left %+v", c)
	}
}
