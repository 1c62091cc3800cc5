package engine

import (
	"errors"
	"testing"

	"otiyot/internal/models"
)

func TestChoiceCorrectAwardsOnceAndAdvances(t *testing.T) {
	counter := &pointCounter{}
	r := NewChoiceRound(models.GameMatching, testBatch("a", "b"), counter.award, noRefill, nil)
	defer r.Close()
	r.SetDwell(testDwell, testDwell)

	correct, err := r.Submit("a")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !correct {
		t.Error("expected correct verdict")
	}

	if total, calls := counter.snapshot(); total != 3 || calls != 1 {
		t.Errorf("expected one award of 3, got total=%d calls=%d", total, calls)
	}

	waitFor(t, "advance to second item", func() bool {
		s := r.State()
		return s.Index == 1 && s.Phase == PhasePresenting
	})
}

func TestChoiceInputIgnoredDuringFeedback(t *testing.T) {
	counter := &pointCounter{}
	r := NewChoiceRound(models.GameNaming, testBatch("a", "b"), counter.award, noRefill, nil)
	defer r.Close()

	// Long dwell keeps the round in Feedback while we hammer it
	if _, err := r.Submit("a"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := r.Submit("a"); !errors.Is(err, ErrInputIgnored) {
			t.Fatalf("expected ErrInputIgnored during feedback, got %v", err)
		}
	}

	if total, calls := counter.snapshot(); total != 3 || calls != 1 {
		t.Errorf("repeat taps must not double-score: total=%d calls=%d", total, calls)
	}
}

func TestChoiceWrongAnswerRetriesWithoutPenalty(t *testing.T) {
	counter := &pointCounter{}
	r := NewChoiceRound(models.GameRhymes, testBatch("a", "b"), counter.award, noRefill, nil)
	defer r.Close()
	r.SetDwell(testDwell, testDwell)

	correct, err := r.Submit("wrong")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if correct {
		t.Error("expected incorrect verdict")
	}
	if total, _ := counter.snapshot(); total != 0 {
		t.Errorf("wrong answer must award nothing, got %d", total)
	}

	// Same item reopens for another try
	waitFor(t, "reopen after wrong answer", func() bool {
		s := r.State()
		return s.Phase == PhasePresenting && s.Index == 0
	})

	if _, err := r.Submit("a"); err != nil {
		t.Fatalf("retry Submit failed: %v", err)
	}
	if total, _ := counter.snapshot(); total != 3 {
		t.Errorf("eventual correct answer should award 3, got %d", total)
	}
}

func TestChoiceCompletesWhenRefillEmpty(t *testing.T) {
	counter := &pointCounter{}
	r := NewChoiceRound(models.GameReading, testBatch("a"), counter.award, noRefill, nil)
	defer r.Close()
	r.SetDwell(testDwell, testDwell)

	if _, err := r.Submit("a"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	waitFor(t, "round complete", func() bool {
		return r.State().Phase == PhaseComplete
	})
}

func TestChoiceRefillFailureIsRetryable(t *testing.T) {
	counter := &pointCounter{}
	fail := true
	refill := func() ([]models.ContentItem, error) {
		if fail {
			return nil, errors.New("storage offline")
		}
		return testBatch("c", "d"), nil
	}

	r := NewChoiceRound(models.GameMatching, testBatch("a"), counter.award, refill, nil)
	defer r.Close()
	r.SetDwell(testDwell, testDwell)

	if _, err := r.Submit("a"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	waitFor(t, "load failure flagged", func() bool {
		s := r.State()
		return s.Phase == PhaseLoading && s.LoadFailed
	})

	fail = false
	r.Reload()

	s := r.State()
	if s.Phase != PhasePresenting || s.BatchSize != 2 || s.Index != 0 {
		t.Errorf("expected fresh batch after reload, got phase=%s size=%d index=%d", s.Phase, s.BatchSize, s.Index)
	}
}

func TestChoiceEmptyBatchCompletesImmediately(t *testing.T) {
	r := NewChoiceRound(models.GameMatching, nil, (&pointCounter{}).award, noRefill, nil)
	defer r.Close()
	if got := r.State().Phase; got != PhaseComplete {
		t.Errorf("expected immediate completion, got %s", got)
	}
}

func TestChoiceSnapshotRestoreResumesMidBatch(t *testing.T) {
	counter := &pointCounter{}
	var latest ChoiceSnapshot
	save := func(snapshot interface{}) {
		if snap, ok := snapshot.(ChoiceSnapshot); ok {
			latest = snap
		}
	}

	r := NewChoiceRound(models.GameSentences, testBatch("a", "b", "c"), counter.award, noRefill, save)
	r.SetDwell(testDwell, testDwell)
	if _, err := r.Submit("a"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	waitFor(t, "advance to second item", func() bool {
		return r.State().Index == 1
	})
	r.Close()

	restored := RestoreChoiceRound(latest, counter.award, noRefill, nil)
	defer restored.Close()

	s := restored.State()
	if s.Index != 1 {
		t.Errorf("expected resume at index 1, got %d", s.Index)
	}
	if s.CorrectCount != 1 || s.LocalScore != 3 {
		t.Errorf("expected carried progress, got correct=%d score=%d", s.CorrectCount, s.LocalScore)
	}
	if s.Phase != PhasePresenting {
		t.Errorf("restored round should be presenting, got %s", s.Phase)
	}
}

func TestChoiceOptionsContainAnswer(t *testing.T) {
	r := NewChoiceRound(models.GameMatching, testBatch("a", "b"), (&pointCounter{}).award, noRefill, nil)
	defer r.Close()

	s := r.State()
	if len(s.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(s.Options))
	}
	found := false
	for _, opt := range s.Options {
		if opt == "a" {
			found = true
		}
	}
	if !found {
		t.Error("options missing the correct answer")
	}
}
