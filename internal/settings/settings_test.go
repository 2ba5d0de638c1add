package settings

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestParseScores(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want [3]int
	}{
		{"three values", "100,50,20", [3]int{100, 50, 20}},
		{"empty", "", [3]int{0, 0, 0}},
		{"single", "100", [3]int{100, 0, 0}},
		{"garbage", "abc,def,ghi", [3]int{0, 0, 0}},
		{"whitespace", " 7 , 5 ,3", [3]int{7, 5, 3}},
		{"invalid entries skipped", "x,40,,30", [3]int{40, 30, 0}},
		{"extra values truncated", "9,8,7,6", [3]int{9, 8, 7}},
		{"negative rejected", "-5,10", [3]int{10, 0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseScores(tc.in); got != tc.want {
				t.Errorf("ParseScores(%q) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatScores(t *testing.T) {
	if got := FormatScores([3]int{100, 50, 20}); got != "100,50,20" {
		t.Errorf("FormatScores = %q", got)
	}
	if got := ParseScores(FormatScores([3]int{3, 2, 1})); got != [3]int{3, 2, 1} {
		t.Errorf("format/parse lost data: %v", got)
	}
}

func TestVolumeStep(t *testing.T) {
	if got := StepUp(0.5); got != 0.6 {
		t.Errorf("StepUp(0.5) = %v, expected 0.6", got)
	}
	if got := StepDown(0.5); got != 0.4 {
		t.Errorf("StepDown(0.5) = %v, expected 0.4", got)
	}
	if got := StepUp(1.0); got != 1.0 {
		t.Errorf("StepUp should clamp at 1, got %v", got)
	}
	if got := StepDown(0.0); got != 0.0 {
		t.Errorf("StepDown should clamp at 0, got %v", got)
	}

	// Repeated steps stay on the grid.
	v := 0.0
	for range 7 {
		v = StepUp(v)
	}
	if Percent(v) != 70 {
		t.Errorf("seven steps up = %d%%, expected 70%%", Percent(v))
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{1.7, 1},
	}
	for _, tc := range tests {
		if got := ClampVolume(tc.in); got != tc.want {
			t.Errorf("ClampVolume(%v) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAudio(t *testing.T) {
	if got := ParseAudio(""); got != DefaultAudio() {
		t.Errorf("empty record should give defaults, got %+v", got)
	}
	if got := ParseAudio("0.3,0.9"); got.BGM != 0.3 || got.SFX != 0.9 {
		t.Errorf("ParseAudio = %+v", got)
	}
	if got := ParseAudio("2,-1"); got.BGM != 1 || got.SFX != 0 {
		t.Errorf("ParseAudio should clamp, got %+v", got)
	}
	if got := ParseAudio("oops,0.2"); got.BGM != DefaultBGM || got.SFX != 0.2 {
		t.Errorf("malformed field should keep default, got %+v", got)
	}
}

func TestStoreScores(t *testing.T) {
	kv := NewMemKV()
	store := NewStore(kv, quietLogger())

	if got := store.LoadScores(); got != [3]int{} {
		t.Errorf("fresh store should load zeros, got %v", got)
	}

	hs := breakout.NewHighScores(store)
	hs.TryInsert(120)
	hs.TryInsert(80)

	raw, ok := kv.Load(KeyScores)
	if !ok || raw != "120,80,0" {
		t.Errorf("persisted scores = %q (ok=%v)", raw, ok)
	}

	reloaded := breakout.NewHighScores(NewStore(kv, quietLogger()))
	if reloaded.Entries() != [3]int{120, 80, 0} {
		t.Errorf("reloaded table = %v", reloaded.Entries())
	}
}

func TestStoreScoresOutOfOrder(t *testing.T) {
	kv := NewMemKV()
	if err := kv.Save(KeyScores, "50,100,0"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	hs := breakout.NewHighScores(NewStore(kv, quietLogger()))
	if hs.Entries() != [3]int{100, 50, 0} {
		t.Fatalf("loaded table = %v, expected it sorted best first", hs.Entries())
	}

	rank, ok := hs.TryInsert(75)
	if !ok || rank != 1 {
		t.Errorf("TryInsert(75) = (%d, %v), expected (1, true)", rank, ok)
	}
	if raw, _ := kv.Load(KeyScores); raw != "100,75,50" {
		t.Errorf("persisted scores = %q, expected %q", raw, "100,75,50")
	}
}

func TestStoreIgnoresSaveFailures(t *testing.T) {
	kv := NewMemKV()
	kv.FailSaves = true
	store := NewStore(kv, quietLogger())

	hs := breakout.NewHighScores(store)
	if _, ok := hs.TryInsert(50); !ok {
		t.Fatal("insert should succeed even when the write fails")
	}
	if hs.Best() != 50 {
		t.Errorf("in-memory table should keep the score, got %d", hs.Best())
	}
	if _, ok := kv.Load(KeyScores); ok {
		t.Error("failed save should not have stored anything")
	}
}

func TestStoreAudio(t *testing.T) {
	kv := NewMemKV()
	store := NewStore(kv, quietLogger())

	if got := store.LoadAudio(); got != DefaultAudio() {
		t.Errorf("fresh store should load defaults, got %+v", got)
	}

	store.SaveAudio(AudioSettings{BGM: 0.2, SFX: 1})
	if got := store.LoadAudio(); got.BGM != 0.2 || got.SFX != 1 {
		t.Errorf("reloaded audio = %+v", got)
	}
}

func TestDegradedGdataKV(t *testing.T) {
	kv := NewGdataKV(nil, quietLogger())

	if err := kv.Save(KeyScores, "1,2,3"); err != nil {
		t.Errorf("degraded save should not fail: %v", err)
	}
	if _, ok := kv.Load(KeyScores); ok {
		t.Error("degraded load should miss")
	}

	store := NewStore(kv, quietLogger())
	if store.LoadScores() != [3]int{} {
		t.Error("degraded store should load zeros")
	}
}
