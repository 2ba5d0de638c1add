package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/audio"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/settings"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// steerHold is how long one left/right key press keeps the paddle moving.
// Terminals report key repeats, not releases.
const steerHold = 0.12

// Services are the collaborators shared by every screen. Runs, Prefs and
// Audio may be nil.
type Services struct {
	Config  config.BreakoutConfig
	Runtime core.RuntimeConfig
	Runs    *storage.Store
	Prefs   *settings.Store
	Audio   *audio.Player
	Logger  *log.Logger
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// highScores builds the top-3 table backed by Prefs.
func (s Services) highScores() *breakout.HighScores {
	if s.Prefs == nil {
		return breakout.NewHighScores(nil)
	}
	return breakout.NewHighScores(s.Prefs)
}

// runTotals accumulates level statistics over one campaign run.
type runTotals struct {
	blocks   int
	maxCombo int
	elapsed  float64
}

func (r *runTotals) add(st breakout.LevelStats) {
	r.blocks += st.BlocksDestroyed
	r.maxCombo = max(r.maxCombo, st.MaxCombo)
	r.elapsed += st.TimeElapsed
}

// Model is the Bubble Tea model for a breakout session.
type Model struct {
	game       *breakout.Game
	svc        Services
	screen     *core.Screen
	keyMapper  *KeyMapper
	keys       GameKeyMap
	help       help.Model
	frame      core.InputFrame
	steer      core.Action
	steerTTL   float64
	loop       int64
	lastTick   time.Time
	countdown  string
	totals     *runTotals
	embedded   bool // Owned by another screen; finishing returns instead of quitting
	exitOnDone bool // Embedded game that also owns its program
	quitting   bool
	done       bool // Embedded game finished
}

// NewModel creates a game model sitting at the breakout menu.
func NewModel(svc Services) Model {
	if svc.Runtime.Seed == 0 {
		svc.Runtime.Seed = time.Now().UnixNano()
	}
	game := breakout.NewGame(svc.Config, svc.Runtime.Seed, svc.highScores())

	return Model{
		game:      game,
		svc:       svc,
		screen:    core.NewScreen(svc.Runtime.ScreenW, max(0, svc.Runtime.ScreenH-1)),
		keyMapper: NewKeyMapper(),
		keys:      DefaultGameKeyMap(),
		help:      help.New(),
		frame:     core.NewInputFrame(),
		loop:      nextLoopID(),
		totals:    &runTotals{},
	}
}

// NewTestPlayModel creates a model that plays grid once and then reports
// Done. It never records a score.
func NewTestPlayModel(svc Services, grid breakout.Grid) Model {
	m := NewModel(svc)
	m.embedded = true
	m.game.StartTestPlay(grid)
	return m
}

// NewCampaignModel creates a model that starts a campaign at level right
// away and reports Done once the player leaves it.
func NewCampaignModel(svc Services, level int) Model {
	m := NewModel(svc)
	m.embedded = true
	m.startCampaign(level)
	return m
}

// startCampaign begins a campaign run at level with fresh run totals.
func (m *Model) startCampaign(level int) {
	*m.totals = runTotals{}
	m.game.SetStartLevel(level)
	m.game.StartCampaign()
}

// Game exposes the underlying game.
func (m Model) Game() *breakout.Game {
	return m.game
}

// Done reports whether an embedded game has finished.
func (m Model) Done() bool {
	return m.done
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.svc.Runtime.TickDuration(), m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.svc.Runtime.ScreenW = msg.Width
		m.svc.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(0, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.At)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		if m.embedded && msg.String() == "q" {
			return m.finish()
		}
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionLeft, core.ActionRight:
		m.steer, m.steerTTL = action, steerHold
	default:
		m.frame.Set(action)
	}
	return m, nil
}

// handleTick advances the simulation by the wall time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	dt := frameDelta(m.lastTick, now, m.svc.Runtime.TickSeconds())
	m.lastTick = now

	if m.steerTTL > 0 {
		m.frame.Set(m.steer)
		m.steerTTL -= dt
	}

	before := m.game.Phase()
	events := m.game.Update(dt, breakout.InputFromFrame(m.frame))
	m.frame.Clear()

	m.svc.Audio.PlayEvents(events)
	m.playCountdown()
	m.trackPhase(before, m.game.Phase())

	switch phase := m.game.Phase(); {
	case phase == breakout.PhaseEditor && !m.embedded:
		m.done = true
		m.quitting = true
		return m, tea.Quit
	case phase == breakout.PhaseEditor, phase == breakout.PhaseMenu && m.embedded:
		return m.finish()
	}
	return m, tickCmd(m.svc.Runtime.TickDuration(), m.loop)
}

// finish marks an embedded game done. A game that owns its program exits.
func (m Model) finish() (tea.Model, tea.Cmd) {
	m.done = true
	if m.exitOnDone {
		return m, tea.Quit
	}
	return m, nil
}

// playCountdown plays a cue whenever the countdown label changes.
func (m *Model) playCountdown() {
	label := m.game.CountdownLabel()
	if label == m.countdown {
		return
	}
	m.countdown = label
	switch label {
	case "":
	case "GO!":
		m.svc.Audio.PlayCue(audio.CountdownGo)
	default:
		m.svc.Audio.PlayCue(audio.CountdownTick)
	}
}

// trackPhase accumulates run totals and records finished campaign runs.
func (m *Model) trackPhase(before, after breakout.Phase) {
	if before == after {
		return
	}
	switch {
	case before == breakout.PhaseMenu && after == breakout.PhaseCountdown:
		// Started from the game's own menu rather than startCampaign
		*m.totals = runTotals{}
	case after == breakout.PhaseLevelClear:
		m.totals.add(m.game.LastStats())
		m.svc.logger().Info("level clear", "level", m.game.World.Level, "score", m.game.World.Score)
	case after == breakout.PhaseGameOver:
		m.totals.add(m.game.LastStats())
		m.recordRun()
	}
}

// recordRun saves the finished campaign run to the history database.
func (m *Model) recordRun() {
	logger := m.svc.logger()
	if m.game.Mode() != breakout.ModeCampaign {
		return
	}
	score := m.game.World.Score
	logger.Info("game over", "score", score, "level", m.game.World.Level)
	if m.svc.Runs == nil || score <= 0 {
		return
	}
	run := storage.Run{
		Score:    score,
		Level:    m.game.World.Level,
		MaxCombo: m.totals.maxCombo,
		Blocks:   m.totals.blocks,
		Duration: time.Duration(m.totals.elapsed * float64(time.Second)),
	}
	if _, err := m.svc.Runs.SaveRun(run); err != nil {
		logger.Warn("run not recorded", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".breakout", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.logger().Warn("screenshot dir", "err", err)
		return
	}

	filename := fmt.Sprintf("breakout_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.logger().Warn("screenshot not saved", "err", err)
		return
	}
	m.svc.logger().Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	helpLine := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	return RenderScreen(m.screen) + "\n" + helpLine
}

// Run starts a breakout session in the terminal.
func Run(svc Services, startLevel int) error {
	model := NewModel(svc)
	model.game.SetStartLevel(startLevel)
	return runProgram(model)
}

// RunCampaign starts a campaign at level right away and returns when the
// player leaves it.
func RunCampaign(svc Services, level int) error {
	model := NewCampaignModel(svc, level)
	model.exitOnDone = true
	return runProgram(model)
}

// RunTestPlay plays a single stage and exits when it ends.
func RunTestPlay(svc Services, grid breakout.Grid) error {
	model := NewModel(svc)
	model.game.StartTestPlay(grid)
	return runProgram(model)
}

func runProgram(model tea.Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
