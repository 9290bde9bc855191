package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// fakeClock is a settable clock.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

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

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Score: 42}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 42 {
		t.Errorf("HighScore() = %d, expected 42", high)
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(Run{Score: score, Duration: float64(score) / 5, ObstaclesCleared: score / 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	expected := []int{200, 100, 50}
	for i, r := range runs {
		if r.Score != expected[i] {
			t.Errorf("runs[%d].Score = %d, expected %d", i, r.Score, expected[i])
		}
		if r.ID == "" {
			t.Errorf("runs[%d].ID is empty", i)
		}
		if r.CreatedAt.IsZero() {
			t.Errorf("runs[%d].CreatedAt is zero", i)
		}
	}
	if runs[0].Duration != 40 || runs[0].ObstaclesCleared != 20 {
		t.Errorf("runs[0] = %+v, expected duration 40 and 20 cleared", runs[0])
	}
}

func TestStoreSaveRunKeepsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{ID: "fixed-id", Score: 7})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() = %q, expected fixed-id", id)
	}

	r, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r.Score != 7 {
		t.Errorf("Score = %d, expected 7", r.Score)
	}

	if _, err := store.SaveRun(Run{ID: "fixed-id", Score: 8}); err == nil {
		t.Error("SaveRun() with duplicate ID should fail")
	}

	if _, err := store.RunByID("missing"); !errors.Is(err, ErrNoRows) {
		t.Errorf("RunByID(missing) error = %v, expected ErrNoRows", err)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		if _, err := store.SaveRun(Run{Score: i * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns(5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Score != 140 {
		t.Errorf("Top score = %d, expected 140", runs[0].Score)
	}

	runs, err = store.TopRuns(0)
	if err != nil {
		t.Fatalf("TopRuns(0) failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("TopRuns(0) returned %d runs, expected default of 10", len(runs))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty store = %d, expected 0", high)
	}

	store.SaveRun(Run{Score: 30})
	store.SaveRun(Run{Score: 90})

	high, _ = store.HighScore()
	if high != 90 {
		t.Errorf("HighScore() = %d, expected 90", high)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.TopRuns(10)
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	store := openTestStore(t, WithClock(clock.Now))

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty store = %+v", stats)
	}

	store.SaveRun(Run{Score: 10, Duration: 4})
	clock.t = clock.t.Add(time.Hour)
	store.SaveRun(Run{Score: 30, Duration: 8})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.HighScore != 30 {
		t.Errorf("HighScore = %d, expected 30", stats.HighScore)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", stats.AvgScore)
	}
	if stats.TotalDuration != 12 {
		t.Errorf("TotalDuration = %v, expected 12", stats.TotalDuration)
	}
	if !stats.LastPlayed.Equal(clock.t) {
		t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, clock.t)
	}
}

func TestLedgerEmpty(t *testing.T) {
	store := openTestStore(t)

	l, err := store.Ledger()
	if err != nil {
		t.Fatalf("Ledger() failed: %v", err)
	}
	if l.TargetSet() {
		t.Error("TargetSet() = true on empty ledger")
	}
	if l.TodayCalories != 0 {
		t.Errorf("TodayCalories = %v, expected 0", l.TodayCalories)
	}
	if l.Progress() != 0 {
		t.Errorf("Progress() = %v, expected 0", l.Progress())
	}
}

func TestLedgerTargetAndCalories(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	store := openTestStore(t, WithClock(clock.Now))

	if _, err := store.SetTarget(500); err != nil {
		t.Fatalf("SetTarget() failed: %v", err)
	}
	if _, err := store.AddCalories(120); err != nil {
		t.Fatalf("AddCalories() failed: %v", err)
	}
	clock.t = clock.t.Add(3 * time.Hour)
	l, err := store.AddCalories(5.5)
	if err != nil {
		t.Fatalf("AddCalories() failed: %v", err)
	}

	if l.DailyTarget != 500 {
		t.Errorf("DailyTarget = %v, expected 500", l.DailyTarget)
	}
	if l.TodayCalories != 125.5 {
		t.Errorf("TodayCalories = %v, expected 125.5", l.TodayCalories)
	}
	if l.Progress() != 125.5/500 {
		t.Errorf("Progress() = %v, expected %v", l.Progress(), 125.5/500)
	}

	l, _ = store.Ledger()
	if l.TodayCalories != 125.5 {
		t.Errorf("reloaded TodayCalories = %v, expected 125.5", l.TodayCalories)
	}
}

func TestLedgerDayReset(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)}
	store := openTestStore(t, WithClock(clock.Now))

	store.SetTarget(400)
	store.AddCalories(300)

	clock.t = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	l, err := store.Ledger()
	if err != nil {
		t.Fatalf("Ledger() failed: %v", err)
	}
	if l.TodayCalories != 0 {
		t.Errorf("TodayCalories after midnight = %v, expected 0", l.TodayCalories)
	}
	if l.DailyTarget != 400 {
		t.Errorf("DailyTarget after midnight = %v, expected 400", l.DailyTarget)
	}
	if !l.LastUpdated.Equal(clock.t) {
		t.Errorf("LastUpdated = %v, expected %v", l.LastUpdated, clock.t)
	}

	l, _ = store.AddCalories(50)
	if l.TodayCalories != 50 {
		t.Errorf("TodayCalories = %v, expected 50", l.TodayCalories)
	}
}

func TestLedgerRejectsNegative(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SetTarget(-1); err == nil {
		t.Error("SetTarget(-1) should fail")
	}
	if _, err := store.AddCalories(-5); err == nil {
		t.Error("AddCalories(-5) should fail")
	}
}

func TestLedgerReset(t *testing.T) {
	store := openTestStore(t)

	store.SetTarget(600)
	store.AddCalories(10)
	if err := store.ResetLedger(); err != nil {
		t.Fatalf("ResetLedger() failed: %v", err)
	}

	l, _ := store.Ledger()
	if l.TargetSet() || l.TodayCalories != 0 {
		t.Errorf("Ledger() after reset = %+v, expected empty", l)
	}
}
