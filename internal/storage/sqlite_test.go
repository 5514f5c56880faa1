package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(RunRecord{LevelID: "classic", Ticks: score, Score: score, Outcome: OutcomeOver}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	// Different level
	if _, err := store.SaveRun(RunRecord{LevelID: "garden", Ticks: 10, Spawned: 49, Score: 500, Outcome: OutcomeQuit}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	expected := []int{200, 100, 50}
	for i, score := range expected {
		if runs[i].Score != score {
			t.Errorf("runs[%d].Score = %d, expected %d", i, runs[i].Score, score)
		}
	}

	garden, err := store.TopRuns("garden", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(garden) != 1 || garden[0].Spawned != 49 || garden[0].Outcome != OutcomeQuit {
		t.Errorf("garden runs = %+v", garden)
	}
	if garden[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveRun(RunRecord{LevelID: "classic", Score: i, Outcome: OutcomeOver})
	}

	runs, err := store.TopRuns("classic", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Score != 19 {
		t.Errorf("Expected top score 19, got %d", runs[0].Score)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty level, got %d", best)
	}

	store.SaveRun(RunRecord{LevelID: "classic", Score: 100})
	store.SaveRun(RunRecord{LevelID: "classic", Score: 300})
	store.SaveRun(RunRecord{LevelID: "classic", Score: 200})

	best, err = store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score 300, got %d", best)
	}
}

func TestStoreRunIDs(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{LevelID: "classic", Player: "alice", Score: 7})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id %q is not a UUID: %v", id, err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.Player != "alice" || run.Score != 7 {
		t.Errorf("RunByID() = %+v", run)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %+v, %v, expected nil, nil", missing, err)
	}

	fixed := uuid.NewString()
	if got, err := store.SaveRun(RunRecord{ID: fixed, LevelID: "classic"}); err != nil || got != fixed {
		t.Errorf("SaveRun(with ID) = %q, %v, expected %q", got, err, fixed)
	}
	if _, err := store.SaveRun(RunRecord{ID: fixed, LevelID: "classic"}); err == nil {
		t.Error("SaveRun() with a duplicate ID should fail")
	}
	if _, err := store.SaveRun(RunRecord{ID: "not-a-uuid"}); err == nil {
		t.Error("SaveRun() with a malformed ID should fail")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{LevelID: "classic", Score: 1})
	store.SaveRun(RunRecord{LevelID: "garden", Score: 2})
	store.SaveRun(RunRecord{LevelID: "rockfall", Score: 3})

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].LevelID != "rockfall" {
		t.Errorf("most recent run = %s, expected rockfall", runs[0].LevelID)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{LevelID: "classic", Score: 100})
	store.SaveRun(RunRecord{LevelID: "classic", Score: 200})
	store.SaveRun(RunRecord{LevelID: "garden", Score: 500})

	if err := store.ClearRuns("classic"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("classic", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	garden, _ := store.TopRuns("garden", 10)
	if len(garden) != 1 {
		t.Errorf("Expected garden runs to be unaffected, got %d", len(garden))
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(\"\") failed: %v", err)
	}
	recent, _ := store.RecentRuns(10)
	if len(recent) != 0 {
		t.Errorf("Expected no runs after clearing all, got %d", len(recent))
	}
}

func TestStoreTildeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tilesim/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".tilesim", "runs.db")); err != nil {
		t.Errorf("expected database under HOME: %v", err)
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.LevelStats("classic")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if empty != (LevelStats{}) {
		t.Errorf("LevelStats() on empty level = %+v, expected zero value", empty)
	}

	runs := []RunRecord{
		{LevelID: "garden", Ticks: 40, Spawned: 2, Score: 60, Outcome: OutcomeOver},
		{LevelID: "garden", Ticks: 90, Spawned: 1, Score: 100, Outcome: OutcomeComplete},
		{LevelID: "garden", Ticks: 10, Spawned: 0, Score: 10, Outcome: OutcomeQuit},
		{LevelID: "classic", Ticks: 500, Score: 500, Outcome: OutcomeOver},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.LevelStats("garden")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	expected := LevelStats{Runs: 3, BestScore: 100, LongestRun: 90, Grown: 3, Completions: 1}
	if got != expected {
		t.Errorf("LevelStats(garden) = %+v, expected %+v", got, expected)
	}
}
