package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

func editorPress(t *testing.T, m EditorModel, msgs ...tea.KeyMsg) EditorModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(EditorModel)
	}
	return m
}

func TestNextBlockCycles(t *testing.T) {
	b := breakout.BlockType{}
	for range cycleOrder {
		b = nextBlock(b)
	}
	if !b.IsEmpty() {
		t.Errorf("a full cycle should return to empty, got %v", b)
	}
	if got := nextBlock(breakout.Durable(7)); !got.IsEmpty() {
		t.Errorf("nextBlock(Durable(7)) = %v, expected empty", got)
	}
	if got := nextBlock(breakout.Durable(3)); got != breakout.Steel() {
		t.Errorf("nextBlock(Durable(3)) = %v, expected steel", got)
	}
}

func TestEditorCursorClamps(t *testing.T) {
	m := NewEditorModel(testServices(t), breakout.Grid{})

	m = editorPress(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	if r, c := m.Cursor(); r != 0 || c != 0 {
		t.Errorf("cursor = (%d,%d), expected (0,0)", r, c)
	}

	for range 20 {
		m = editorPress(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight})
	}
	if r, c := m.Cursor(); r != breakout.GridRows-1 || c != breakout.GridCols-1 {
		t.Errorf("cursor = (%d,%d), expected bottom right", r, c)
	}
}

func TestEditorPlacesBlocks(t *testing.T) {
	m := NewEditorModel(testServices(t), breakout.Grid{})

	m = editorPress(t, m, runes("#"), runes("l"), runes("2"), runes("l"), runes("x"), runes("l"), runes("*"))
	g := m.Grid()
	want := []breakout.BlockType{breakout.Normal(), breakout.Durable(2), breakout.Steel(), breakout.Explosive()}
	for col, w := range want {
		if g[0][col] != w {
			t.Errorf("cell (0,%d) = %v, expected %v", col, g[0][col], w)
		}
	}

	m = editorPress(t, m, runes("."))
	if !m.Grid()[0][3].IsEmpty() {
		t.Error("erase should empty the cell")
	}

	m = editorPress(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Grid()[0][3] != breakout.Normal() {
		t.Errorf("cycle from empty = %v, expected normal", m.Grid()[0][3])
	}

	m = editorPress(t, m, runes("C"))
	if m.Grid().Count() != 0 || m.Status() != statusCleared {
		t.Errorf("clear left %d blocks, status %q", m.Grid().Count(), m.Status())
	}
}

func TestEditorRefusesUnclearableTestPlay(t *testing.T) {
	var grid breakout.Grid
	grid[0][0] = breakout.Steel()
	m := NewEditorModel(testServices(t), grid)

	m = editorPress(t, m, runes("t"))
	if m.Playing() {
		t.Fatal("test play should not start without a breakable block")
	}
	if m.Status() != statusUnclearable {
		t.Errorf("status = %q, expected %q", m.Status(), statusUnclearable)
	}
	if !strings.Contains(m.View(), statusUnclearable) {
		t.Error("view should show the refusal")
	}
}

func TestEditorTestPlayReturnsToEditing(t *testing.T) {
	var grid breakout.Grid
	grid[2][4] = breakout.Durable(2)
	m := NewEditorModel(testServices(t), grid)

	next, cmd := m.Update(runes("t"))
	m = next.(EditorModel)
	if !m.Playing() || cmd == nil {
		t.Fatal("test play should start with a tick")
	}

	m = editorPress(t, m, runes("q"))
	if m.Playing() {
		t.Fatal("q during test play should return to the editor")
	}
	if m.quitting {
		t.Error("leaving test play should not quit the editor")
	}
	if m.Status() != statusTestDone {
		t.Errorf("status = %q, expected %q", m.Status(), statusTestDone)
	}
	if m.Grid() != grid {
		t.Error("test play should not change the edited grid")
	}
}

func TestEditorExportsAndSavesDraft(t *testing.T) {
	svc := withRuns(t, testServices(t))
	var grid breakout.Grid
	grid[0][0] = breakout.Explosive()
	grid[6][9] = breakout.Durable(3)
	m := NewEditorModel(svc, grid)

	m = editorPress(t, m, runes("e"))
	if m.Status() != statusCodeSaved {
		t.Errorf("status = %q, expected %q", m.Status(), statusCodeSaved)
	}
	decoded, err := breakout.DecodeStage(m.Code())
	if err != nil {
		t.Fatalf("DecodeStage: %v", err)
	}
	if decoded != grid {
		t.Error("exported code does not round trip to the edited grid")
	}

	code, ok, err := svc.Runs.LoadStage(DraftStage)
	if err != nil || !ok {
		t.Fatalf("LoadStage = %v, %v", ok, err)
	}
	if code != m.Code() {
		t.Error("saved draft differs from exported code")
	}
}

func TestEditorExportWithoutStore(t *testing.T) {
	m := NewEditorModel(testServices(t), breakout.Grid{})
	m = editorPress(t, m, runes("e"))
	if m.Status() != statusCodeReady || m.Code() == "" {
		t.Errorf("status = %q code = %q", m.Status(), m.Code())
	}
}

func TestEditorQuitSavesDraft(t *testing.T) {
	svc := withRuns(t, testServices(t))
	m := NewEditorModel(svc, breakout.Grid{})
	m = editorPress(t, m, runes("#"), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.quitting {
		t.Fatal("esc should leave the editor")
	}

	code, ok, err := svc.Runs.LoadStage(DraftStage)
	if err != nil || !ok {
		t.Fatalf("LoadStage = %v, %v", ok, err)
	}
	g, err := breakout.DecodeStage(code)
	if err != nil {
		t.Fatalf("DecodeStage: %v", err)
	}
	if g[0][0] != breakout.Normal() {
		t.Errorf("draft cell = %v, expected normal", g[0][0])
	}
}

func TestWrapCode(t *testing.T) {
	got := wrapCode("abcdefghij", 4)
	want := "  abcd\n  efgh\n  ij"
	if got != want {
		t.Errorf("wrapCode = %q, expected %q", got, want)
	}
}
