package history

import (
	"testing"

	"otiyot/internal/models"
	"otiyot/internal/statestore"
)

func TestMergeGrowsAndPersists(t *testing.T) {
	store := statestore.NewMemoryStore()
	tracker := NewTracker(store, models.CategoryRhymes)

	if err := tracker.Merge([]string{"a", "b"}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if err := tracker.Merge([]string{"b", "c"}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	if got := tracker.Len(); got != 3 {
		t.Errorf("expected 3 keys, got %d", got)
	}

	// A fresh tracker over the same store sees everything
	reloaded := NewTracker(store, models.CategoryRhymes)
	if got := reloaded.Len(); got != 3 {
		t.Errorf("expected reloaded tracker to have 3 keys, got %d", got)
	}
	if !reloaded.Seen()["c"] {
		t.Error("reloaded tracker missing key c")
	}
}

func TestTrackersAreIsolatedByCategory(t *testing.T) {
	store := statestore.NewMemoryStore()
	rhymes := NewTracker(store, models.CategoryRhymes)
	reading := NewTracker(store, models.CategoryReading)

	if err := rhymes.Merge([]string{"x"}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if reading.Len() != 0 {
		t.Error("merging into rhymes leaked into reading")
	}
}

func TestCorruptHistoryFallsBackToEmpty(t *testing.T) {
	store := statestore.NewMemoryStore()
	key := statestore.PrefixHistory + string(models.CategoryHangman)
	if err := store.Put(key, "not-a-json-array"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	tracker := NewTracker(store, models.CategoryHangman)
	if got := tracker.Len(); got != 0 {
		t.Errorf("corrupt history should load as empty, got %d keys", got)
	}

	// Tracking still works after the fallback
	if err := tracker.Merge([]string{"a"}); err != nil {
		t.Fatalf("Merge after corrupt load failed: %v", err)
	}
	if NewTracker(store, models.CategoryHangman).Len() != 1 {
		t.Error("merge after corrupt load did not persist")
	}
}

func TestResetClearsEverything(t *testing.T) {
	store := statestore.NewMemoryStore()
	tracker := NewTracker(store, models.CategorySentences)

	if err := tracker.Merge([]string{"a", "b", "c"}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if err := tracker.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if tracker.Len() != 0 {
		t.Error("Reset left keys behind")
	}
	if NewTracker(store, models.CategorySentences).Len() != 0 {
		t.Error("Reset did not clear persisted state")
	}
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	store := statestore.NewMemoryStore()
	tracker := NewTracker(store, models.CategoryHangman)

	if err := tracker.Merge([]string{"old"}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	// Another writer (an import) replaces the persisted set
	key := statestore.PrefixHistory + string(models.CategoryHangman)
	if err := statestore.SaveJSON(store, key, []string{"imported"}); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	tracker.Reload()
	if tracker.Seen()["old"] {
		t.Error("Reload kept a key the store no longer has")
	}
	if !tracker.Seen()["imported"] {
		t.Error("Reload missed the imported key")
	}

	// A merge after the reload keeps the imported key
	if err := tracker.Merge([]string{"new"}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	var persisted []string
	statestore.LoadJSON(store, key, &persisted)
	if len(persisted) != 2 {
		t.Errorf("expected imported and merged keys persisted, got %v", persisted)
	}
}

func TestSeenReturnsACopy(t *testing.T) {
	store := statestore.NewMemoryStore()
	tracker := NewTracker(store, models.CategoryRhymes)
	if err := tracker.Merge([]string{"a"}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	seen := tracker.Seen()
	seen["b"] = true
	if tracker.Len() != 1 {
		t.Error("mutating the returned set must not change the tracker")
	}
}
