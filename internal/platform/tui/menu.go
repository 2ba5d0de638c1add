package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// MenuChoice is what the launcher menu selected.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceEditor
	ChoiceScores
	ChoiceSettings
	ChoiceQuit
)

// MenuItem is one launcher entry.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

var menuItems = []MenuItem{
	{Title: "Play", Choice: ChoicePlay},
	{Title: "Stage Editor", Choice: ChoiceEditor},
	{Title: "High Scores", Choice: ChoiceScores},
	{Title: "Settings", Choice: ChoiceSettings},
	{Title: "Quit", Choice: ChoiceQuit},
}

// maxStartLevel bounds level select to the built-in patterns plus a few
// generated levels.
var maxStartLevel = breakout.PatternCount() + 5

// MenuModel is the Bubble Tea model for the launcher menu.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	startLevel int
	best       int
	width      int
	height     int
	keyMapper  *KeyMapper
	choice     MenuChoice
}

// NewMenuModel creates the launcher menu. best is shown under the title.
func NewMenuModel(width, height, best int) MenuModel {
	return MenuModel{
		items:      menuItems,
		startLevel: 1,
		best:       best,
		width:      width,
		height:     height,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.items[m.cursor].Choice == ChoicePlay {
			m.startLevel = max(1, m.startLevel-1)
		}

	case MenuActionRight:
		if m.items[m.cursor].Choice == ChoicePlay {
			m.startLevel = min(maxStartLevel, m.startLevel+1)
		}

	case MenuActionSelect:
		m.choice = m.items[m.cursor].Choice
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(editorTitleStyle.Render("B R E A K O U T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(editorDimStyle.Render(fmt.Sprintf("Best: %d", m.best)), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		title := item.Title
		if item.Choice == ChoicePlay {
			title = fmt.Sprintf("Play  < Level %d: %s >", m.startLevel, breakout.LevelName(m.startLevel))
		}
		b.WriteString(centerText(style.Render(cursor+title), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Level  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(editorDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the selected entry, or ChoiceNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// StartLevel returns the selected start level.
func (m MenuModel) StartLevel() int {
	return m.startLevel
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	StartLevel int
	Width      int
	Height     int
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(width, height, best int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(width, height, best),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit}, nil
	}

	return MenuResult{
		Choice:     m.Choice(),
		StartLevel: m.StartLevel(),
		Width:      m.width,
		Height:     m.height,
	}, nil
}
