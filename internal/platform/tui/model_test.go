package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/settings"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func testServices(t *testing.T) Services {
	t.Helper()
	cfg := config.DefaultBreakoutConfig()
	cfg.PowerUps.SpawnChance = 0
	logger := log.New(io.Discard)
	return Services{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  30,
			TickRate: 60,
			Seed:     7,
		},
		Prefs:  settings.NewStore(settings.NewMemKV(), logger),
		Logger: logger,
	}
}

func withRuns(t *testing.T, svc Services) Services {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	svc.Runs = store
	return svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

// tickModel feeds n ticks of step each to m and returns the result.
func tickModel(t *testing.T, m Model, n int, step time.Duration) Model {
	t.Helper()
	at := m.lastTick
	if at.IsZero() {
		at = t0
	}
	for range n {
		at = at.Add(step)
		next, _ := m.Update(TickMsg{At: at, Loop: m.loop})
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// playThroughCountdown advances m until the game is playing.
func playThroughCountdown(t *testing.T, m Model) Model {
	t.Helper()
	m = tickModel(t, m, 31, 100*time.Millisecond)
	if m.game.Phase() != breakout.PhasePlaying {
		t.Fatalf("phase = %v, expected playing", m.game.Phase())
	}
	return m
}

// loseBall drops every ball below the field and runs one tick.
func loseBall(t *testing.T, m Model) Model {
	t.Helper()
	for _, b := range m.game.World.Balls {
		b.Pos = core.V(0, -1000)
	}
	return tickModel(t, m, 1, 16*time.Millisecond)
}

func TestFrameDelta(t *testing.T) {
	if got := frameDelta(time.Time{}, t0, 1.0/60); got != 1.0/60 {
		t.Errorf("first tick dt = %v, expected fallback", got)
	}
	if got := frameDelta(t0, t0.Add(20*time.Millisecond), 0); got != 0.02 {
		t.Errorf("dt = %v, expected 0.02", got)
	}
	if got := frameDelta(t0, t0.Add(5*time.Second), 0); got != maxFrameDt {
		t.Errorf("stall dt = %v, expected cap %v", got, maxFrameDt)
	}
	if got := frameDelta(t0, t0.Add(-time.Second), 0); got != 0 {
		t.Errorf("backwards clock dt = %v, expected 0", got)
	}
}

func TestModelStartsCampaignFromMenu(t *testing.T) {
	m := NewModel(testServices(t))
	if m.game.Phase() != breakout.PhaseMenu {
		t.Fatalf("phase = %v, expected menu", m.game.Phase())
	}

	m = press(t, m, enterKey)
	m = tickModel(t, m, 1, 16*time.Millisecond)
	if m.game.Phase() != breakout.PhaseCountdown {
		t.Fatalf("phase = %v, expected countdown", m.game.Phase())
	}
	playThroughCountdown(t, m)
}

func TestModelIgnoresForeignTicks(t *testing.T) {
	m := NewModel(testServices(t))
	m = press(t, m, enterKey)

	next, cmd := m.Update(TickMsg{At: t0, Loop: m.loop + 1000})
	m = next.(Model)
	if cmd != nil {
		t.Error("a tick from another loop should not schedule a tick")
	}
	if m.game.Phase() != breakout.PhaseMenu {
		t.Error("a tick from another loop should not step the game")
	}
}

func TestModelSteeringHoldsBetweenKeyRepeats(t *testing.T) {
	m := NewCampaignModel(testServices(t), 1)
	m = playThroughCountdown(t, m)

	start := m.game.World.Paddle.Pos.X
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tickModel(t, m, 3, 16*time.Millisecond)
	moved := m.game.World.Paddle.Pos.X
	if moved >= start {
		t.Fatalf("paddle x = %v, expected it to move left of %v", moved, start)
	}

	// The hold expires without another key repeat.
	m = tickModel(t, m, 20, 16*time.Millisecond)
	settled := m.game.World.Paddle.Pos.X
	m = tickModel(t, m, 5, 16*time.Millisecond)
	if m.game.World.Paddle.Pos.X != settled {
		t.Error("paddle should stop once the steer hold expires")
	}
}

func TestModelRecordsCampaignRun(t *testing.T) {
	svc := withRuns(t, testServices(t))
	m := NewCampaignModel(svc, 2)
	m = playThroughCountdown(t, m)

	m.game.World.Score = 120
	m = loseBall(t, m)
	if m.game.Phase() != breakout.PhaseGameOver {
		t.Fatalf("phase = %v, expected game over", m.game.Phase())
	}

	runs, err := svc.Runs.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 120 || runs[0].Level != 2 {
		t.Fatalf("recorded runs = %+v", runs)
	}
	if best := svc.Prefs.LoadScores(); best[0] != 120 {
		t.Errorf("top-3 table = %v, expected 120 first", best)
	}

	// Leaving the game over screen ends an embedded campaign.
	m = press(t, m, enterKey)
	m = tickModel(t, m, 1, 16*time.Millisecond)
	if !m.Done() {
		t.Error("embedded campaign should be done after returning to the menu")
	}
}

func TestStartCampaignResetsTotals(t *testing.T) {
	m := NewCampaignModel(testServices(t), 1)
	m.totals.add(breakout.LevelStats{BlocksDestroyed: 9, MaxCombo: 3, TimeElapsed: 12})

	m.startCampaign(2)
	if *m.totals != (runTotals{}) {
		t.Errorf("totals = %+v, expected a fresh run", *m.totals)
	}
	if m.game.Phase() != breakout.PhaseCountdown || m.game.World.Level != 2 {
		t.Errorf("phase = %v level %d, expected level 2 countdown", m.game.Phase(), m.game.World.Level)
	}
}

func TestTestPlayNeverRecords(t *testing.T) {
	svc := withRuns(t, testServices(t))
	grid := breakout.Grid{}
	grid[0][0] = breakout.Normal()

	m := NewTestPlayModel(svc, grid)
	m = playThroughCountdown(t, m)
	m.game.World.Score = 500
	m = loseBall(t, m)

	stats, err := svc.Runs.GetStats()
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Runs != 0 {
		t.Errorf("test play recorded %d runs", stats.Runs)
	}
	if svc.Prefs.LoadScores() != [3]int{} {
		t.Error("test play should not touch the top-3 table")
	}

	m = press(t, m, enterKey)
	m = tickModel(t, m, 1, 16*time.Millisecond)
	if !m.Done() || m.IsQuitting() {
		t.Errorf("embedded test play should be done without quitting (done=%v quitting=%v)", m.Done(), m.IsQuitting())
	}
}

func TestModelQuitKeys(t *testing.T) {
	m := NewModel(testServices(t))
	next, cmd := m.Update(runes("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit a standalone game")
	}

	grid := breakout.Grid{}
	grid[0][0] = breakout.Normal()
	tp := NewTestPlayModel(testServices(t), grid)
	next, _ = tp.Update(runes("q"))
	if got := next.(Model); !got.Done() || got.IsQuitting() {
		t.Error("q during test play should return to the editor")
	}
}

func TestModelViewIncludesHelp(t *testing.T) {
	m := NewModel(testServices(t))
	view := m.View()
	if view == "" {
		t.Fatal("view should not be empty")
	}
	if !strings.Contains(view, "B R E A K O U T") {
		t.Error("menu title missing from view")
	}
	if !strings.Contains(view, "pause") {
		t.Error("help bar missing from view")
	}
}
