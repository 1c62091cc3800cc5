package engine

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"otiyot/internal/ledger"
	"otiyot/internal/models"
)

const (
	// MaxWrongGuesses ends a hangman word as a loss
	MaxWrongGuesses = 6

	// lossPenalty comes off the local display score only; the global
	// ledger never decreases
	lossPenalty = 1
)

// HangmanRound is the multi-step puzzle variant: each letter guess is an
// independent sub-decision, wrong guesses count against a bound, and one word
// is one item of the batch.
type HangmanRound struct {
	mu sync.Mutex

	id    string
	batch []models.ContentItem
	index int
	phase Phase

	guessed    []string
	wrong      int
	won        bool
	lost       bool
	awarded    bool
	loadFailed bool

	wins       int
	localScore int

	award    AwardFunc
	refill   RefillFunc
	snapshot SnapshotFunc
	sched    *Scheduler
	dwell    time.Duration
}

// HangmanState is the render view of a hangman round
type HangmanState struct {
	RoundID         string   `json:"round_id"`
	Phase           Phase    `json:"phase"`
	ItemKey         string   `json:"item_key,omitempty"`
	Masked          string   `json:"masked"`
	GuessedLetters  []string `json:"guessed_letters"`
	WrongGuesses    int      `json:"wrong_guesses"`
	MaxWrongGuesses int      `json:"max_wrong_guesses"`
	IsWon           bool     `json:"is_won"`
	IsLost          bool     `json:"is_lost"`
	RevealedWord    string   `json:"revealed_word,omitempty"`
	Index           int      `json:"index"`
	BatchSize       int      `json:"batch_size"`
	Wins            int      `json:"wins"`
	LocalScore      int      `json:"local_score"`
	LoadFailed      bool     `json:"load_failed,omitempty"`
}

// HangmanSnapshot is the persisted resume state of a hangman round
type HangmanSnapshot struct {
	Batch      []models.ContentItem `json:"batch"`
	Index      int                  `json:"index"`
	Guessed    []string             `json:"guessed"`
	Wrong      int                  `json:"wrong"`
	Wins       int                  `json:"wins"`
	LocalScore int                  `json:"local_score"`
}

// NewHangmanRound starts a round over a freshly drawn word batch
func NewHangmanRound(batch []models.ContentItem, award AwardFunc, refill RefillFunc, snapshot SnapshotFunc) *HangmanRound {
	r := &HangmanRound{
		id:       uuid.New().String(),
		batch:    batch,
		phase:    PhasePresenting,
		award:    award,
		refill:   refill,
		snapshot: snapshot,
		sched:    NewScheduler(),
		dwell:    FeedbackDwell,
	}
	if len(batch) == 0 {
		r.phase = PhaseComplete
	}
	r.save()
	return r
}

// RestoreHangmanRound rebuilds a round from a persisted snapshot
func RestoreHangmanRound(snap HangmanSnapshot, award AwardFunc, refill RefillFunc, snapshot SnapshotFunc) *HangmanRound {
	r := NewHangmanRound(snap.Batch, award, refill, snapshot)
	r.mu.Lock()
	defer r.mu.Unlock()
	if snap.Index > 0 && snap.Index < len(snap.Batch) {
		r.index = snap.Index
	}
	r.guessed = append([]string(nil), snap.Guessed...)
	r.wrong = snap.Wrong
	r.wins = snap.Wins
	r.localScore = snap.LocalScore
	r.save()
	return r
}

// SetDwell overrides the win auto-advance dwell
func (r *HangmanRound) SetDwell(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dwell = d
}

// Guess resolves one letter. Repeated letters are no-ops; input outside
// Presenting returns ErrInputIgnored.
func (r *HangmanRound) Guess(letter string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePresenting {
		return ErrInputIgnored
	}

	letter = normalizeAnswer(letter)
	runes := []rune(letter)
	if len(runes) != 1 {
		return ErrInputIgnored
	}

	for _, g := range r.guessed {
		if g == letter {
			return nil
		}
	}
	r.guessed = append(r.guessed, letter)

	word := normalizeAnswer(r.batch[r.index].Answer)
	if !strings.Contains(word, letter) {
		r.wrong++
	}

	if !strings.Contains(r.maskedLocked(), "_") {
		r.won = true
		r.phase = PhaseFeedback
		if !r.awarded {
			r.awarded = true
			r.wins++
			r.localScore += ledger.CorrectReward
			r.award(ledger.CorrectReward)
		}
		r.sched.After(r.dwell, r.autoAdvance)
	} else if r.wrong >= MaxWrongGuesses {
		r.lost = true
		r.phase = PhaseFeedback
		r.localScore -= lossPenalty
		if r.localScore < 0 {
			r.localScore = 0
		}
	}

	r.save()
	return nil
}

// RetrySame restarts the current word after a loss
func (r *HangmanRound) RetrySame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.lost {
		return ErrInputIgnored
	}
	r.resetWordLocked()
	r.phase = PhasePresenting
	r.save()
	return nil
}

// Next moves to the following word after a finished one. Wins auto-advance;
// Next exists for the explicit continue after a loss (and is harmless after
// a win whose timer has not fired yet).
func (r *HangmanRound) Next() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.won && !r.lost {
		return ErrInputIgnored
	}
	r.advanceLocked()
	return nil
}

// Reload retries a failed batch refill
func (r *HangmanRound) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseLoading {
		return
	}
	r.loadFailed = false
	r.refillLocked()
}

// State returns the current render view. The word is revealed only on loss.
func (r *HangmanRound) State() HangmanState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := HangmanState{
		RoundID:         r.id,
		Phase:           r.phase,
		GuessedLetters:  append([]string(nil), r.guessed...),
		WrongGuesses:    r.wrong,
		MaxWrongGuesses: MaxWrongGuesses,
		IsWon:           r.won,
		IsLost:          r.lost,
		LoadFailed:      r.loadFailed,
		Index:           r.index,
		BatchSize:       len(r.batch),
		Wins:            r.wins,
		LocalScore:      r.localScore,
	}
	if r.index < len(r.batch) {
		state.ItemKey = r.batch[r.index].Key
		state.Masked = r.maskedLocked()
		if r.lost {
			state.RevealedWord = r.batch[r.index].Answer
		}
	}
	return state
}

// Close tears the round down, cancelling any pending auto-advance
func (r *HangmanRound) Close() {
	r.sched.Stop()
}

func (r *HangmanRound) autoAdvance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.won {
		return
	}
	r.advanceLocked()
}

// advanceLocked runs under r.mu
func (r *HangmanRound) advanceLocked() {
	r.phase = PhaseAdvancing
	r.resetWordLocked()
	r.index++
	if r.index >= len(r.batch) {
		r.refillLocked()
		return
	}
	r.phase = PhasePresenting
	r.save()
}

// refillLocked runs under r.mu. A refill failure keeps the round in Loading
// with nothing presented; Reload retries.
func (r *HangmanRound) refillLocked() {
	r.phase = PhaseLoading
	batch, err := r.refill()
	if err != nil {
		r.loadFailed = true
		r.save()
		return
	}
	if len(batch) == 0 {
		r.phase = PhaseComplete
		r.save()
		return
	}
	r.batch = batch
	r.index = 0
	r.phase = PhasePresenting
	r.save()
}

// resetWordLocked runs under r.mu
func (r *HangmanRound) resetWordLocked() {
	r.guessed = nil
	r.wrong = 0
	r.won = false
	r.lost = false
	r.awarded = false
}

// maskedLocked runs under r.mu; spaces stay visible, unguessed letters show
// as underscores
func (r *HangmanRound) maskedLocked() string {
	word := normalizeAnswer(r.batch[r.index].Answer)
	var masked strings.Builder
	for _, char := range word {
		if char == ' ' {
			masked.WriteRune(' ')
			continue
		}
		found := false
		for _, g := range r.guessed {
			if string(char) == g {
				found = true
				break
			}
		}
		if found {
			masked.WriteRune(char)
		} else {
			masked.WriteRune('_')
		}
	}
	return masked.String()
}

// save runs under r.mu
func (r *HangmanRound) save() {
	if r.snapshot == nil {
		return
	}
	r.snapshot(HangmanSnapshot{
		Batch:      r.batch,
		Index:      r.index,
		Guessed:    append([]string(nil), r.guessed...),
		Wrong:      r.wrong,
		Wins:       r.wins,
		LocalScore: r.localScore,
	})
}
