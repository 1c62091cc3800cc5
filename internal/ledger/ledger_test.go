package ledger

import (
	"testing"

	"otiyot/internal/models"
	"otiyot/internal/statestore"
)

func testRewards() []models.Reward {
	return []models.Reward{
		{Message: "first"},
		{Message: "second"},
		{Message: "third"},
	}
}

func newTestLedger() (*Ledger, statestore.Store) {
	store := statestore.NewMemoryStore()
	return New(store, testRewards), store
}

func TestEarnAccumulates(t *testing.T) {
	l, _ := newTestLedger()

	for i := 0; i < 5; i++ {
		if _, err := l.Earn(CorrectReward); err != nil {
			t.Fatalf("Earn failed: %v", err)
		}
	}
	if got := l.Total(); got != 15 {
		t.Errorf("expected total 15, got %d", got)
	}
}

func TestEarnRejectsNonPositive(t *testing.T) {
	l, _ := newTestLedger()
	if _, err := l.Earn(0); err == nil {
		t.Error("expected error for zero amount")
	}
	if _, err := l.Earn(-3); err == nil {
		t.Error("expected error for negative amount")
	}
	if got := l.Total(); got != 0 {
		t.Errorf("rejected earns must not change the total, got %d", got)
	}
}

func TestMilestoneFiresOnceAtBoundary(t *testing.T) {
	l, _ := newTestLedger()

	// 33 earns of 3 = 99, no milestone yet
	for i := 0; i < 33; i++ {
		event, err := l.Earn(3)
		if err != nil {
			t.Fatalf("Earn failed: %v", err)
		}
		if event != nil {
			t.Fatalf("unexpected milestone at total %d", l.Total())
		}
	}

	// Crossing 100
	event, err := l.Earn(3)
	if err != nil {
		t.Fatalf("Earn failed: %v", err)
	}
	if event == nil {
		t.Fatal("expected milestone event crossing 100")
	}
	if event.MilestoneTarget != 100 {
		t.Errorf("expected milestone target 100, got %d", event.MilestoneTarget)
	}
	if event.Reward.Message != "first" {
		t.Errorf("expected first reward, got %q", event.Reward.Message)
	}
}

func TestMilestoneMultipleCrossingsSingleEvent(t *testing.T) {
	l, _ := newTestLedger()

	// One large award jumping past 100 and 200 reports only the final
	// milestone
	event, err := l.Earn(250)
	if err != nil {
		t.Fatalf("Earn failed: %v", err)
	}
	if event == nil {
		t.Fatal("expected a milestone event")
	}
	if event.MilestoneTarget != 200 {
		t.Errorf("expected final milestone 200, got %d", event.MilestoneTarget)
	}
	if event.Reward.Message != "second" {
		t.Errorf("expected second reward, got %q", event.Reward.Message)
	}
}

func TestRewardIndexWrapsAround(t *testing.T) {
	l, _ := newTestLedger()

	// Fourth milestone with three rewards cycles back to the first
	event, err := l.Earn(400)
	if err != nil {
		t.Fatalf("Earn failed: %v", err)
	}
	if event == nil {
		t.Fatal("expected a milestone event")
	}
	if event.RewardIndex != 0 || event.Reward.Message != "first" {
		t.Errorf("expected wrap to first reward, got index %d message %q", event.RewardIndex, event.Reward.Message)
	}
}

func TestCompleteLevelDeduplicates(t *testing.T) {
	l, _ := newTestLedger()

	l.CompleteLevel("matching-1")
	l.CompleteLevel("matching-1")
	l.CompleteLevel("rhymes-1")

	snap := l.Snapshot()
	if len(snap.CompletedLevels) != 2 {
		t.Errorf("expected 2 completed levels, got %v", snap.CompletedLevels)
	}
}

func TestLedgerPersistsAcrossRestarts(t *testing.T) {
	store := statestore.NewMemoryStore()
	l := New(store, testRewards)
	if _, err := l.Earn(42); err != nil {
		t.Fatalf("Earn failed: %v", err)
	}
	l.CompleteLevel("reading-2")

	reloaded := New(store, testRewards)
	if got := reloaded.Total(); got != 42 {
		t.Errorf("expected reloaded total 42, got %d", got)
	}
	snap := reloaded.Snapshot()
	if len(snap.CompletedLevels) != 1 || snap.CompletedLevels[0] != "reading-2" {
		t.Errorf("expected completed level to survive reload, got %v", snap.CompletedLevels)
	}
}

func TestCorruptLedgerFallsBackToDefaults(t *testing.T) {
	store := statestore.NewMemoryStore()
	if err := store.Put(statestore.KeyLedger, "{not json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	l := New(store, testRewards)
	if got := l.Total(); got != 0 {
		t.Errorf("corrupt data should yield zero total, got %d", got)
	}
}

func TestReplaceFiresNoMilestone(t *testing.T) {
	l, _ := newTestLedger()

	var events int
	l.Subscribe(func(_ models.Ledger, event *models.MilestoneEvent) {
		if event != nil {
			events++
		}
	})

	l.Replace(models.Ledger{TotalCoins: 350, CompletedLevels: []string{"a"}})
	if events != 0 {
		t.Errorf("Replace must not fire milestone events, got %d", events)
	}
	if got := l.Total(); got != 350 {
		t.Errorf("expected imported total 350, got %d", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	l, _ := newTestLedger()
	l.CompleteLevel("x")

	snap := l.Snapshot()
	snap.CompletedLevels[0] = "mutated"

	if l.Snapshot().CompletedLevels[0] != "x" {
		t.Error("mutating a snapshot leaked into the ledger")
	}
}
