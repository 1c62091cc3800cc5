package engine

import (
	"sync"

	"github.com/google/uuid"

	"otiyot/internal/ledger"
	"otiyot/internal/models"
)

// DictationRound plays a batch of spoken words the child types back. Points
// are computed once on entering the results state, 3 per correct word, and
// the guard only resets when a new attempt begins.
type DictationRound struct {
	mu sync.Mutex

	id      string
	words   []models.ContentItem
	answers []string
	phase   Phase

	resultsAwarded bool
	correctCount   int
	pointsEarned   int

	award    AwardFunc
	snapshot SnapshotFunc
}

// DictationState is the render view of a dictation round
type DictationState struct {
	RoundID   string   `json:"round_id"`
	Phase     Phase    `json:"phase"`
	WordCount int      `json:"word_count"`
	Answers   []string `json:"answers"`
}

// DictationResult is the outcome shown on the results view
type DictationResult struct {
	CorrectCount int           `json:"correct_count"`
	WordCount    int           `json:"word_count"`
	PointsEarned int           `json:"points_earned"`
	PerWord      []WordOutcome `json:"per_word"`
}

// WordOutcome pairs one target word with the answer given for it
type WordOutcome struct {
	ItemKey   string `json:"item_key"`
	Target    string `json:"target"`
	Answer    string `json:"answer"`
	IsCorrect bool   `json:"is_correct"`
}

// DictationSnapshot is the persisted resume state of a dictation round
type DictationSnapshot struct {
	Words   []models.ContentItem `json:"words"`
	Answers []string             `json:"answers"`
}

// NewDictationRound starts a dictation attempt over a drawn word batch
func NewDictationRound(words []models.ContentItem, award AwardFunc, snapshot SnapshotFunc) *DictationRound {
	r := &DictationRound{
		id:       uuid.New().String(),
		words:    words,
		answers:  make([]string, len(words)),
		phase:    PhasePresenting,
		award:    award,
		snapshot: snapshot,
	}
	if len(words) == 0 {
		r.phase = PhaseComplete
	}
	r.save()
	return r
}

// RestoreDictationRound rebuilds a round from a persisted snapshot
func RestoreDictationRound(snap DictationSnapshot, award AwardFunc, snapshot SnapshotFunc) *DictationRound {
	r := NewDictationRound(snap.Words, award, snapshot)
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(snap.Answers) == len(r.words) {
		copy(r.answers, snap.Answers)
	}
	r.save()
	return r
}

// Answer records the typed answer for one word slot
func (r *DictationRound) Answer(index int, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhasePresenting {
		return ErrInputIgnored
	}
	if index < 0 || index >= len(r.answers) {
		return ErrInputIgnored
	}
	r.answers[index] = text
	r.save()
	return nil
}

// Finish enters the results state and awards 3 × correctCount exactly once.
// Calling Finish again returns the same result without awarding again.
func (r *DictationRound) Finish() DictationResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseComplete {
		r.phase = PhaseComplete
		r.correctCount = 0
		for i, word := range r.words {
			if normalizeAnswer(r.answers[i]) == normalizeAnswer(word.Answer) {
				r.correctCount++
			}
		}
		if !r.resultsAwarded {
			r.resultsAwarded = true
			r.pointsEarned = ledger.CorrectReward * r.correctCount
			if r.pointsEarned > 0 {
				r.award(r.pointsEarned)
			}
		}
		r.save()
	}

	result := DictationResult{
		CorrectCount: r.correctCount,
		WordCount:    len(r.words),
		PointsEarned: r.pointsEarned,
	}
	for i, word := range r.words {
		result.PerWord = append(result.PerWord, WordOutcome{
			ItemKey:   word.Key,
			Target:    word.Answer,
			Answer:    r.answers[i],
			IsCorrect: normalizeAnswer(r.answers[i]) == normalizeAnswer(word.Answer),
		})
	}
	return result
}

// Restart begins a fresh attempt over the same words, resetting the award
// guard
func (r *DictationRound) Restart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers = make([]string, len(r.words))
	r.phase = PhasePresenting
	r.resultsAwarded = false
	r.correctCount = 0
	r.pointsEarned = 0
	if len(r.words) == 0 {
		r.phase = PhaseComplete
	}
	r.save()
}

// State returns the current render view
func (r *DictationRound) State() DictationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return DictationState{
		RoundID:   r.id,
		Phase:     r.phase,
		WordCount: len(r.words),
		Answers:   append([]string(nil), r.answers...),
	}
}

// Words returns the target words, for the audio prompts
func (r *DictationRound) Words() []models.ContentItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ContentItem(nil), r.words...)
}

// Close tears the round down
func (r *DictationRound) Close() {}

// save runs under r.mu
func (r *DictationRound) save() {
	if r.snapshot == nil {
		return
	}
	r.snapshot(DictationSnapshot{
		Words:   r.words,
		Answers: append([]string(nil), r.answers...),
	})
}
