package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/settings"
)

// Settings rows.
const (
	settingsRowBGM = iota
	settingsRowSFX
	settingsRows
)

const volumeBarWidth = 10

// SettingsModel adjusts the music and effect volumes.
type SettingsModel struct {
	svc       Services
	audio     settings.AudioSettings
	cursor    int
	keyMapper *KeyMapper
	width     int
	done      bool
	quitting  bool
}

// NewSettingsModel loads the current volumes.
func NewSettingsModel(svc Services) SettingsModel {
	a := settings.DefaultAudio()
	if svc.Prefs != nil {
		a = svc.Prefs.LoadAudio()
	}
	return SettingsModel{
		svc:       svc,
		audio:     a,
		keyMapper: NewKeyMapper(),
		width:     svc.Runtime.ScreenW,
	}
}

// Audio returns the current volumes.
func (m SettingsModel) Audio() settings.AudioSettings {
	return m.audio
}

// Done reports whether the user left the screen.
func (m SettingsModel) Done() bool {
	return m.done
}

// IsQuitting returns true if the user asked to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack, MenuActionSelect:
			m.done = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = (m.cursor + settingsRows - 1) % settingsRows
		case MenuActionDown:
			m.cursor = (m.cursor + 1) % settingsRows
		case MenuActionLeft:
			m.adjust(settings.StepDown)
		case MenuActionRight:
			m.adjust(settings.StepUp)
		}
	}
	return m, nil
}

// adjust steps the selected volume and persists the result.
func (m *SettingsModel) adjust(step func(float64) float64) {
	if m.cursor == settingsRowBGM {
		m.audio.BGM = step(m.audio.BGM)
	} else {
		m.audio.SFX = step(m.audio.SFX)
	}
	if m.svc.Prefs != nil {
		m.svc.Prefs.SaveAudio(m.audio)
	}
	m.svc.Audio.SetVolume(m.audio.SFX)
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(editorTitleStyle.Render("S E T T I N G S"), m.width))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value float64
	}{
		{"Music  ", m.audio.BGM},
		{"Effects", m.audio.SFX},
	}
	for i, r := range rows {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		line := fmt.Sprintf("%s%s  %s %3d%%", cursor, r.label, volumeBar(r.value), settings.Percent(r.value))
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(editorDimStyle.Render("Up/Down: Select  |  Left/Right: Adjust  |  Esc: Back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// volumeBar draws v as a fixed-width bar.
func volumeBar(v float64) string {
	filled := settings.Percent(v) * volumeBarWidth / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", volumeBarWidth-filled) + "]"
}

// RunSettings runs the settings screen. It reports whether the user asked
// to quit rather than go back.
func RunSettings(svc Services) (quit bool, err error) {
	p := tea.NewProgram(NewSettingsModel(svc), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(SettingsModel)
	return ok && m.IsQuitting(), nil
}
