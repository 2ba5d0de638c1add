// Package tui provides the Bubble Tea front end for breakout: the game loop,
// the stage editor, the settings and score screens, and SSH sessions.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation step. Loop identifies the game
// model whose tick loop produced it, so a stale tick from a finished test
// play never drives a new one.
type TickMsg struct {
	At   time.Time
	Loop int64
}

var loopSeq atomic.Int64

// nextLoopID returns a fresh tick loop identifier.
func nextLoopID() int64 {
	return loopSeq.Add(1)
}

// maxFrameDt caps a single step after a stall.
const maxFrameDt = 0.1

// tickCmd returns a Bubble Tea command that sends a tick for loop after
// interval.
func tickCmd(interval time.Duration, loop int64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}

// frameDelta returns the seconds between two ticks, using fallback for the
// first tick and clamping to [0, maxFrameDt].
func frameDelta(prev, now time.Time, fallback float64) float64 {
	if prev.IsZero() {
		return min(fallback, maxFrameDt)
	}
	dt := now.Sub(prev).Seconds()
	if dt < 0 {
		return 0
	}
	return min(dt, maxFrameDt)
}
