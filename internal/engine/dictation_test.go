package engine

import (
	"errors"
	"testing"
)

func TestDictationFinishAwardsThreePerCorrectOnce(t *testing.T) {
	counter := &pointCounter{}
	r := NewDictationRound(testBatch("cat", "dog", "sun"), counter.award, nil)
	defer r.Close()

	if err := r.Answer(0, "cat"); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if err := r.Answer(1, "wrong"); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if err := r.Answer(2, " SUN "); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}

	result := r.Finish()
	if result.CorrectCount != 2 {
		t.Errorf("expected 2 correct, got %d", result.CorrectCount)
	}
	if result.PointsEarned != 6 {
		t.Errorf("expected 6 points, got %d", result.PointsEarned)
	}
	if total, calls := counter.snapshot(); total != 6 || calls != 1 {
		t.Errorf("expected one award of 6, got total=%d calls=%d", total, calls)
	}

	// Calling Finish again returns the same result without awarding
	again := r.Finish()
	if again.PointsEarned != 6 || again.CorrectCount != 2 {
		t.Errorf("second Finish changed the result: %+v", again)
	}
	if total, calls := counter.snapshot(); total != 6 || calls != 1 {
		t.Errorf("second Finish must not award again: total=%d calls=%d", total, calls)
	}
}

func TestDictationPerWordOutcomes(t *testing.T) {
	r := NewDictationRound(testBatch("cat", "dog"), (&pointCounter{}).award, nil)
	defer r.Close()

	if err := r.Answer(0, "cat"); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	result := r.Finish()

	if len(result.PerWord) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(result.PerWord))
	}
	if !result.PerWord[0].IsCorrect || result.PerWord[0].Target != "cat" {
		t.Errorf("unexpected first outcome: %+v", result.PerWord[0])
	}
	if result.PerWord[1].IsCorrect || result.PerWord[1].Answer != "" {
		t.Errorf("unexpected second outcome: %+v", result.PerWord[1])
	}
}

func TestDictationAnswerValidation(t *testing.T) {
	r := NewDictationRound(testBatch("cat"), (&pointCounter{}).award, nil)
	defer r.Close()

	if err := r.Answer(-1, "x"); !errors.Is(err, ErrInputIgnored) {
		t.Errorf("expected ErrInputIgnored for negative index, got %v", err)
	}
	if err := r.Answer(1, "x"); !errors.Is(err, ErrInputIgnored) {
		t.Errorf("expected ErrInputIgnored for out-of-range index, got %v", err)
	}

	r.Finish()
	if err := r.Answer(0, "late"); !errors.Is(err, ErrInputIgnored) {
		t.Errorf("expected ErrInputIgnored after finish, got %v", err)
	}
}

func TestDictationRestartResetsAwardGuard(t *testing.T) {
	counter := &pointCounter{}
	r := NewDictationRound(testBatch("cat"), counter.award, nil)
	defer r.Close()

	if err := r.Answer(0, "cat"); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	r.Finish()
	r.Restart()

	s := r.State()
	if s.Phase != PhasePresenting {
		t.Errorf("expected presenting after restart, got %s", s.Phase)
	}
	if s.Answers[0] != "" {
		t.Errorf("restart should clear answers, got %q", s.Answers[0])
	}

	// A second full pass awards again
	if err := r.Answer(0, "cat"); err != nil {
		t.Fatalf("Answer after restart failed: %v", err)
	}
	r.Finish()
	if total, calls := counter.snapshot(); total != 6 || calls != 2 {
		t.Errorf("expected two awards over two passes, got total=%d calls=%d", total, calls)
	}
}

func TestDictationSnapshotRestore(t *testing.T) {
	var latest DictationSnapshot
	save := func(snapshot interface{}) {
		if snap, ok := snapshot.(DictationSnapshot); ok {
			latest = snap
		}
	}

	r := NewDictationRound(testBatch("cat", "dog"), (&pointCounter{}).award, save)
	if err := r.Answer(0, "cat"); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	r.Close()

	restored := RestoreDictationRound(latest, (&pointCounter{}).award, nil)
	defer restored.Close()

	s := restored.State()
	if s.Answers[0] != "cat" || s.Answers[1] != "" {
		t.Errorf("expected restored answers, got %v", s.Answers)
	}
}
