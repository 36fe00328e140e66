package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

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

func mustSave(t *testing.T, store *Store, run Run) uuid.UUID {
	t.Helper()
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Scenario: "classic", Score: 10, Health: 0, Ticks: 900, Outcome: "game_over"})
	mustSave(t, store, Run{Scenario: "classic", Score: 5, Health: 4, Ticks: 300, Outcome: "quit"})
	mustSave(t, store, Run{Scenario: "classic", Score: 20, Health: 0, Ticks: 2000, Outcome: "game_over"})
	mustSave(t, store, Run{Scenario: "maze", Score: 50, Ticks: 10, Outcome: "quit"})

	runs, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	for i, want := range []int{20, 10, 5} {
		if runs[i].Score != want {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, want)
		}
	}
	if runs[2].Outcome != "quit" || runs[2].Health != 4 || runs[2].Ticks != 300 {
		t.Errorf("unexpected run fields: %+v", runs[2])
	}
	if runs[0].ID == uuid.Nil {
		t.Error("run ID was not assigned")
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not stored")
	}

	maze, err := store.TopRuns("maze", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(maze) != 1 {
		t.Errorf("Expected 1 maze run, got %d", len(maze))
	}
}

func TestStoreTopRunsLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, Run{Scenario: "swarm", Score: (i + 1) * 3, Ticks: 100, Outcome: "game_over"})
	}
	mustSave(t, store, Run{Scenario: "swarm", Score: 15, Ticks: 40, Outcome: "game_over"})

	runs, err := store.TopRuns("swarm", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	// Equal scores: the shorter run ranks first.
	if runs[0].Score != 15 || runs[0].Ticks != 40 {
		t.Errorf("runs[0] = %+v, want the 40 tick run", runs[0])
	}
	if runs[1].Score != 15 || runs[2].Score != 12 {
		t.Errorf("Runs not in expected order: %+v", runs)
	}
}

func TestStoreRunByID(t *testing.T) {
	store := openTestStore(t)

	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	id := mustSave(t, store, Run{Scenario: "maze", Score: 7, Health: 2, Ticks: 55, Outcome: "quit", CreatedAt: at})

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunByID() returned nil")
	}
	if run.ID != id || run.Score != 7 || run.Scenario != "maze" {
		t.Errorf("unexpected run: %+v", run)
	}
	if !run.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", run.CreatedAt, at)
	}

	missing, err := store.RunByID(uuid.New())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown id, got %+v", missing)
	}
}

func TestStoreSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.New()
	got := mustSave(t, store, Run{ID: want, Scenario: "classic", Outcome: "quit"})
	if got != want {
		t.Errorf("SaveRun() id = %v, want %v", got, want)
	}
	if _, err := store.SaveRun(Run{ID: want, Scenario: "classic", Outcome: "quit"}); err == nil {
		t.Error("expected duplicate id to fail")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for an unplayed scenario, got %d", high)
	}

	mustSave(t, store, Run{Scenario: "classic", Score: 10, Outcome: "quit"})
	mustSave(t, store, Run{Scenario: "classic", Score: 30, Outcome: "game_over"})
	mustSave(t, store, Run{Scenario: "classic", Score: 20, Outcome: "game_over"})

	high, err = store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Scenario: "classic", Score: 1, Outcome: "quit"})
	mustSave(t, store, Run{Scenario: "classic", Score: 2, Outcome: "quit"})
	mustSave(t, store, Run{Scenario: "maze", Score: 3, Outcome: "quit"})

	if err := store.ClearRuns("classic"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	classic, _ := store.TopRuns("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic runs after clear, got %d", len(classic))
	}
	maze, _ := store.TopRuns("maze", 10)
	if len(maze) != 1 {
		t.Errorf("maze runs should not be affected by clearing classic")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("classic")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected empty stats: %+v", empty)
	}

	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mustSave(t, store, Run{Scenario: "classic", Score: 4, Ticks: 100, Outcome: "game_over", CreatedAt: late})
	mustSave(t, store, Run{Scenario: "classic", Score: 8, Ticks: 700, Outcome: "game_over", CreatedAt: early})
	mustSave(t, store, Run{Scenario: "swarm", Score: 2, Ticks: 50, Outcome: "quit", CreatedAt: early})

	stats, err := store.Stats("classic")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 2 || stats.HighScore != 8 || stats.TotalScore != 12 || stats.LongestRun != 700 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 6 {
		t.Errorf("AvgScore = %v, want 6", stats.AvgScore)
	}
	if !stats.LastPlayed.Equal(late) {
		t.Errorf("LastPlayed = %v, want %v", stats.LastPlayed, late)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 scenarios, got %d", len(all))
	}
	if all["swarm"].RunsCount != 1 || all["classic"].HighScore != 8 {
		t.Errorf("unexpected all stats: classic=%+v swarm=%+v", all["classic"], all["swarm"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
