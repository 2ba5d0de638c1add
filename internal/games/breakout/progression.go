package breakout

import (
	"strconv"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

// Phase is the top-level game state.
type Phase int

const (
	PhaseMenu       Phase = iota // Waiting for the start action
	PhaseCountdown               // 3, 2, 1, GO before play
	PhasePlaying                 // Simulation running
	PhasePaused                  // Simulation frozen
	PhaseLevelClear              // Level done, waiting to continue
	PhaseGameOver                // Last ball lost
	PhaseEditor                  // Test play finished; owner returns to the editor
)

// String returns the name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseLevelClear:
		return "levelclear"
	case PhaseGameOver:
		return "gameover"
	case PhaseEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// Mode selects where levels come from.
type Mode int

const (
	ModeCampaign Mode = iota // Pattern and procedural levels, scores recorded
	ModeTestPlay             // A single editor stage, never recorded
)

// String returns the name of the mode.
func (m Mode) String() string {
	if m == ModeTestPlay {
		return "testplay"
	}
	return "campaign"
}

// countdownSteps is the number of numbered steps before GO.
const countdownSteps = 3

// Game drives a World through menu, countdown, play and results.
type Game struct {
	World  *World
	Scores *HighScores

	cfg        config.BreakoutConfig
	mode       Mode
	phase      Phase
	startLevel int
	stage      Grid // ModeTestPlay layout
	countdown  float64
	rank       int
	lastStats  LevelStats
}

// NewGame creates a game in the menu phase. scores may be nil.
func NewGame(cfg config.BreakoutConfig, seed int64, scores *HighScores) *Game {
	if scores == nil {
		scores = NewHighScores(nil)
	}
	return &Game{
		World:      NewWorld(cfg, seed),
		Scores:     scores,
		cfg:        cfg,
		startLevel: 1,
		rank:       -1,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Mode returns the current mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// SetStartLevel sets the level a new campaign run begins at.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = max(1, level)
}

// StartCampaign begins a new campaign run at the start level.
func (g *Game) StartCampaign() {
	g.mode = ModeCampaign
	g.World.Score = 0
	g.enterLevel(g.startLevel)
}

// StartTestPlay plays grid as a single stage. Finishing or leaving it moves
// the game to PhaseEditor.
func (g *Game) StartTestPlay(grid Grid) {
	g.mode = ModeTestPlay
	g.stage = grid
	g.World.Score = 0
	g.enterLevel(1)
}

// Rank returns the high-score rank reached by the last game over.
func (g *Game) Rank() (int, bool) {
	return g.rank, g.rank >= 0
}

// LastStats returns the statistics of the attempt that just ended.
func (g *Game) LastStats() LevelStats {
	return g.lastStats
}

// LevelScore returns the points earned in the current level attempt.
func (g *Game) LevelScore() int {
	return g.World.Score - g.World.Stats.ScoreAtLevelStart
}

// CountdownLabel returns "3", "2", "1" or "GO!" during the countdown.
func (g *Game) CountdownLabel() string {
	if g.phase != PhaseCountdown {
		return ""
	}
	step := int(g.countdown / g.cfg.Countdown.Step)
	if step < countdownSteps {
		return strconv.Itoa(countdownSteps - step)
	}
	return "GO!"
}

// Update advances the game by dt seconds and returns the simulation events
// of this frame, if the simulation ran.
func (g *Game) Update(dt float64, in Input) []Event {
	switch g.phase {
	case PhaseMenu:
		if in.Confirm {
			g.StartCampaign()
		}

	case PhaseCountdown:
		g.countdown += dt
		total := float64(countdownSteps)*g.cfg.Countdown.Step + g.cfg.Countdown.Go
		if g.countdown >= total {
			g.phase = PhasePlaying
		}

	case PhasePlaying:
		if in.Pause {
			g.phase = PhasePaused
			return nil
		}
		events := g.World.Step(dt, in)
		switch {
		case Has(events, EventGameOver):
			g.enterGameOver()
		case Has(events, EventLevelClear):
			g.enterLevelClear()
		}
		return events

	case PhasePaused:
		switch {
		case in.Pause:
			g.phase = PhasePlaying
		case in.Back:
			g.leave()
		}

	case PhaseLevelClear:
		if !in.Confirm {
			break
		}
		if g.mode == ModeTestPlay {
			g.leave()
			break
		}
		g.enterLevel(g.World.Level + 1)

	case PhaseGameOver:
		if in.Confirm || in.Back {
			g.leave()
		}
	}
	return nil
}

// enterLevel loads a fresh attempt at level and starts the countdown.
func (g *Game) enterLevel(level int) {
	grid := g.stage
	if g.mode == ModeCampaign {
		grid = GenerateLayout(level)
	}
	g.World.LoadLevel(level, grid)
	g.rank = -1
	g.countdown = 0
	g.phase = PhaseCountdown
}

func (g *Game) enterLevelClear() {
	g.lastStats = g.World.Stats
	g.World.ClearTransient()
	g.phase = PhaseLevelClear
}

func (g *Game) enterGameOver() {
	g.lastStats = g.World.Stats
	g.World.ClearTransient()
	g.rank = -1
	if g.mode == ModeCampaign {
		if rank, ok := g.Scores.TryInsert(g.World.Score); ok {
			g.rank = rank
		}
	}
	g.phase = PhaseGameOver
}

// leave drops every entity and returns to the menu, or to the editor after
// test play.
func (g *Game) leave() {
	g.World.ClearTransient()
	g.World.Paddle = nil
	g.World.Blocks = nil
	if g.mode == ModeTestPlay {
		g.phase = PhaseEditor
		return
	}
	g.phase = PhaseMenu
}
