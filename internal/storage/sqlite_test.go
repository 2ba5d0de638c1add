package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.breakout/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".breakout", "test.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Score: 77, Level: 2}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestScore()
	if err != nil || best != 77 {
		t.Errorf("BestScore() = %d, %v; expected 77", best, err)
	}
}

func TestSaveRunAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Score: 100, Level: 2, MaxCombo: 4, Blocks: 30, Duration: 90 * time.Second},
		{Score: 50, Level: 1, MaxCombo: 2, Blocks: 12, Duration: 40 * time.Second},
		{Score: 200, Level: 3, MaxCombo: 9, Blocks: 61, Duration: 150 * time.Second},
		{Score: 100, Level: 1, MaxCombo: 3, Blocks: 20, Duration: 55 * time.Second},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}
	if top[0].Score != 200 || top[1].Score != 100 || top[2].Score != 100 {
		t.Errorf("Runs not sorted by score: %d, %d, %d", top[0].Score, top[1].Score, top[2].Score)
	}
	if top[1].Level != 2 {
		t.Errorf("Tie should keep the earlier run first, got level %d", top[1].Level)
	}
	if top[0].Duration != 150*time.Second || top[0].MaxCombo != 9 || top[0].Blocks != 61 {
		t.Errorf("Run fields not round-tripped: %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	recent, err := store.RecentRuns(1)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 1 || recent[0].Score != 100 || recent[0].Level != 1 {
		t.Errorf("RecentRuns(1) = %+v", recent)
	}
}

func TestBestScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 with no runs, got %d", best)
	}
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Empty stats = %+v", stats)
	}

	store.SaveRun(Run{Score: 100, Level: 4, MaxCombo: 3, Duration: time.Minute})
	store.SaveRun(Run{Score: 300, Level: 2, MaxCombo: 7, Duration: 2 * time.Minute})

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.BestLevel != 4 || stats.BestCombo != 7 || stats.TotalTime != 3*time.Minute {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(Run{Score: 10, Level: 1})

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
}

func TestStages(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveStage("", "abc"); err == nil {
		t.Error("Expected an error for an empty name")
	}

	if err := store.SaveStage("zigzag", "code1"); err != nil {
		t.Fatalf("SaveStage() failed: %v", err)
	}
	if err := store.SaveStage("arena", "code2"); err != nil {
		t.Fatalf("SaveStage() failed: %v", err)
	}
	if err := store.SaveStage("zigzag", "code3"); err != nil {
		t.Fatalf("SaveStage() overwrite failed: %v", err)
	}

	code, ok, err := store.LoadStage("zigzag")
	if err != nil || !ok || code != "code3" {
		t.Errorf("LoadStage() = %q, %v, %v; expected overwritten code", code, ok, err)
	}
	if _, ok, err := store.LoadStage("missing"); ok || err != nil {
		t.Errorf("LoadStage(missing) = %v, %v", ok, err)
	}

	stages, err := store.Stages()
	if err != nil {
		t.Fatalf("Stages() failed: %v", err)
	}
	if len(stages) != 2 || stages[0].Name != "arena" || stages[1].Name != "zigzag" {
		t.Errorf("Stages() = %+v", stages)
	}

	if err := store.DeleteStage("arena"); err != nil {
		t.Fatalf("DeleteStage() failed: %v", err)
	}
	if err := store.DeleteStage("arena"); err != nil {
		t.Errorf("Deleting a missing stage should not fail: %v", err)
	}
	stages, _ = store.Stages()
	if len(stages) != 1 {
		t.Errorf("Expected 1 stage left, got %d", len(stages))
	}
}
