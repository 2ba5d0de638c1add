package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// DraftStage is the stage name the editor saves its work under.
const DraftStage = "draft"

// Editor status messages.
const (
	statusUnclearable = "Stage needs at least one breakable block"
	statusTestDone    = "Test play finished"
	statusCodeSaved   = "Stage code saved as draft"
	statusCodeReady   = "Stage code ready"
	statusCleared     = "Stage cleared"
)

// cycleOrder is the block sequence the cycle key steps through.
var cycleOrder = []breakout.BlockType{
	{},
	breakout.Normal(),
	breakout.Durable(1),
	breakout.Durable(2),
	breakout.Durable(3),
	breakout.Steel(),
	breakout.Explosive(),
}

// nextBlock returns the block after t in cycleOrder. Types outside the
// order, such as Durable(7), restart at the beginning.
func nextBlock(t breakout.BlockType) breakout.BlockType {
	for i, c := range cycleOrder {
		if c == t {
			return cycleOrder[(i+1)%len(cycleOrder)]
		}
	}
	return cycleOrder[0]
}

// EditorModel edits a stage grid and can test play it in place.
type EditorModel struct {
	svc      Services
	grid     breakout.Grid
	row, col int
	keys     EditorKeyMap
	help     help.Model
	status   string
	code     string
	play     *Model
	width    int
	height   int
	quitting bool
}

// NewEditorModel opens grid in the editor.
func NewEditorModel(svc Services, grid breakout.Grid) EditorModel {
	return EditorModel{
		svc:    svc,
		grid:   grid,
		keys:   DefaultEditorKeyMap(),
		help:   help.New(),
		width:  svc.Runtime.ScreenW,
		height: svc.Runtime.ScreenH,
	}
}

// Grid returns the stage being edited.
func (m EditorModel) Grid() breakout.Grid {
	return m.grid
}

// Cursor returns the selected row and column.
func (m EditorModel) Cursor() (int, int) {
	return m.row, m.col
}

// Status returns the last status message.
func (m EditorModel) Status() string {
	return m.status
}

// Code returns the last exported stage code.
func (m EditorModel) Code() string {
	return m.code
}

// Playing reports whether a test play is running.
func (m EditorModel) Playing() bool {
	return m.play != nil
}

// Init initializes the editor.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the editor and for a running test play.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.help.Width = wsm.Width
		m.svc.Runtime.ScreenW = wsm.Width
		m.svc.Runtime.ScreenH = wsm.Height
	}

	if m.play != nil {
		return m.updatePlay(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

// updatePlay forwards msg to the test play and returns to editing when it
// finishes.
func (m EditorModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	play, ok := next.(Model)
	if !ok {
		return m, cmd
	}
	if play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if play.Done() {
		m.play = nil
		m.status = statusTestDone
		return m, nil
	}
	m.play = &play
	return m, cmd
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cell := &m.grid[m.row][m.col]

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveDraft()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.row = max(0, m.row-1)
	case key.Matches(msg, m.keys.Down):
		m.row = min(breakout.GridRows-1, m.row+1)
	case key.Matches(msg, m.keys.Left):
		m.col = max(0, m.col-1)
	case key.Matches(msg, m.keys.Right):
		m.col = min(breakout.GridCols-1, m.col+1)

	case key.Matches(msg, m.keys.Cycle):
		*cell = nextBlock(*cell)
	case key.Matches(msg, m.keys.Place):
		g, err := breakout.ParseGrid([]string{msg.String()})
		if err == nil {
			*cell = g[0][0]
		}
	case key.Matches(msg, m.keys.Erase):
		*cell = breakout.BlockType{}
	case key.Matches(msg, m.keys.Clear):
		m.grid = breakout.Grid{}
		m.status = statusCleared

	case key.Matches(msg, m.keys.Code):
		m.code = breakout.EncodeStage(m.grid)
		m.status = statusCodeReady
		if m.saveDraft() {
			m.status = statusCodeSaved
		}

	case key.Matches(msg, m.keys.TestPlay):
		if !m.grid.Clearable() {
			m.status = statusUnclearable
			return m, nil
		}
		play := NewTestPlayModel(m.svc, m.grid)
		m.play = &play
		m.status = ""
		return m, play.Init()
	}
	return m, nil
}

// saveDraft stores the grid under DraftStage. It reports whether a store
// accepted the write.
func (m EditorModel) saveDraft() bool {
	if m.svc.Runs == nil {
		return false
	}
	if err := m.svc.Runs.SaveStage(DraftStage, breakout.EncodeStage(m.grid)); err != nil {
		m.svc.logger().Warn("draft not saved", "err", err)
		return false
	}
	return true
}

var (
	editorTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	editorPanelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	editorCursorStyle = lipgloss.NewStyle().Reverse(true)
	editorDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	editorWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// View renders the editor, or the test play while one runs.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}
	if m.play != nil {
		return m.play.View()
	}

	var b strings.Builder
	b.WriteString(centerText(editorTitleStyle.Render("S T A G E   E D I T O R"), m.width))
	b.WriteString("\n\n")

	panel := editorPanelStyle.Render(m.renderGrid())
	for _, line := range strings.Split(panel, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	cell := m.grid[m.row][m.col]
	info := "empty"
	if !cell.IsEmpty() {
		info = cell.String()
	}
	pos := fmt.Sprintf("row %d col %d: %s   blocks: %d", m.row+1, m.col+1, info, m.grid.Count())
	b.WriteString(centerText(editorDimStyle.Render(pos), m.width))
	b.WriteString("\n\n")

	if m.status != "" {
		style := editorDimStyle
		if m.status == statusUnclearable {
			style = editorWarnStyle
		}
		b.WriteString(centerText(style.Render(m.status), m.width))
		b.WriteString("\n")
	}
	if m.code != "" {
		b.WriteString(wrapCode(m.code, max(20, m.width-4)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(editorDimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderGrid draws each cell three columns wide with the cursor reversed.
func (m EditorModel) renderGrid() string {
	var b strings.Builder
	for row := range breakout.GridRows {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := range breakout.GridCols {
			t := m.grid[row][col]
			text := " · "
			style := editorDimStyle
			if !t.IsEmpty() {
				glyph, color := breakout.BlockLook(t, row)
				text = strings.Repeat(string(glyph), 3)
				style = styleFor(color)
			}
			if row == m.row && col == m.col {
				style = style.Inherit(editorCursorStyle)
			}
			b.WriteString(style.Render(text))
		}
	}
	return b.String()
}

// wrapCode breaks a stage code into lines of at most width characters.
func wrapCode(code string, width int) string {
	var lines []string
	for len(code) > width {
		lines = append(lines, code[:width])
		code = code[width:]
	}
	lines = append(lines, code)
	return "  " + strings.Join(lines, "\n  ")
}

// RunEditor runs the stage editor and returns the final grid.
func RunEditor(svc Services, grid breakout.Grid) (breakout.Grid, error) {
	p := tea.NewProgram(
		NewEditorModel(svc, grid),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if err != nil {
		return grid, err
	}
	if m, ok := final.(EditorModel); ok {
		return m.Grid(), nil
	}
	return grid, nil
}
