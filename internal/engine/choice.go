package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"otiyot/internal/content"
	"otiyot/internal/ledger"
	"otiyot/internal/models"
)

// ChoiceRound runs the single-shot multiple choice cycle shared by matching,
// naming, sentence-fill, rhymes and reading comprehension. A correct
// selection awards once, locks the options and auto-advances after the
// feedback dwell; a wrong selection briefly locks, then reopens the same item
// for another try with no penalty.
type ChoiceRound struct {
	mu sync.Mutex

	id      string
	game    models.GameID
	batch   []models.ContentItem
	options []string
	index   int
	phase   Phase

	awarded      bool
	correctCount int
	localScore   int
	lastCorrect  *bool
	loadFailed   bool

	award    AwardFunc
	refill   RefillFunc
	snapshot SnapshotFunc
	sched    *Scheduler

	feedbackDwell time.Duration
	retryDwell    time.Duration
}

// ChoiceState is the render view of a choice round
type ChoiceState struct {
	RoundID      string        `json:"round_id"`
	Game         models.GameID `json:"game"`
	Phase        Phase         `json:"phase"`
	ItemKey      string        `json:"item_key,omitempty"`
	Prompt       string        `json:"prompt"`
	ImageTerm    string        `json:"image_term,omitempty"`
	Options      []string      `json:"options"`
	Index        int           `json:"index"`
	BatchSize    int           `json:"batch_size"`
	CorrectCount int           `json:"correct_count"`
	LocalScore   int           `json:"local_score"`
	LastCorrect  *bool         `json:"last_correct,omitempty"`
	LoadFailed   bool          `json:"load_failed,omitempty"`
}

// ChoiceSnapshot is the persisted resume state of a choice round
type ChoiceSnapshot struct {
	Game         models.GameID        `json:"game"`
	Batch        []models.ContentItem `json:"batch"`
	Index        int                  `json:"index"`
	Options      []string             `json:"options"`
	CorrectCount int                  `json:"correct_count"`
	LocalScore   int                  `json:"local_score"`
}

// NewChoiceRound starts a round over a freshly drawn batch. An empty batch
// completes immediately; callers surface "no content available".
func NewChoiceRound(game models.GameID, batch []models.ContentItem, award AwardFunc, refill RefillFunc, snapshot SnapshotFunc) *ChoiceRound {
	r := &ChoiceRound{
		id:            uuid.New().String(),
		game:          game,
		batch:         batch,
		phase:         PhasePresenting,
		award:         award,
		refill:        refill,
		snapshot:      snapshot,
		sched:         NewScheduler(),
		feedbackDwell: FeedbackDwell,
		retryDwell:    RetryDwell,
	}
	if len(batch) == 0 {
		r.phase = PhaseComplete
	} else {
		r.options = content.Options(batch[0])
	}
	r.save()
	return r
}

// RestoreChoiceRound rebuilds a round from a persisted snapshot, resuming at
// the saved item with the same option order
func RestoreChoiceRound(snap ChoiceSnapshot, award AwardFunc, refill RefillFunc, snapshot SnapshotFunc) *ChoiceRound {
	r := NewChoiceRound(snap.Game, snap.Batch, award, refill, snapshot)
	r.mu.Lock()
	defer r.mu.Unlock()
	if snap.Index > 0 && snap.Index < len(snap.Batch) {
		r.index = snap.Index
		r.options = content.Options(snap.Batch[snap.Index])
	}
	if len(snap.Options) > 0 && snap.Index < len(snap.Batch) {
		r.options = snap.Options
	}
	r.correctCount = snap.CorrectCount
	r.localScore = snap.LocalScore
	r.save()
	return r
}

// SetDwell overrides the transition dwell times
func (r *ChoiceRound) SetDwell(feedback, retry time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedbackDwell = feedback
	r.retryDwell = retry
}

// Submit resolves one answer. Outside Presenting the call returns
// ErrInputIgnored and changes nothing.
func (r *ChoiceRound) Submit(answer string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePresenting {
		return false, ErrInputIgnored
	}

	r.phase = PhaseResolving
	item := r.batch[r.index]
	correct := normalizeAnswer(answer) == normalizeAnswer(item.Answer)
	r.lastCorrect = &correct
	r.phase = PhaseFeedback

	if correct {
		if !r.awarded {
			r.awarded = true
			r.correctCount++
			r.localScore += ledger.CorrectReward
			r.award(ledger.CorrectReward)
		}
		r.sched.After(r.feedbackDwell, r.advance)
	} else {
		r.sched.After(r.retryDwell, r.reopen)
	}

	r.save()
	return correct, nil
}

// Reload retries a failed batch refill
func (r *ChoiceRound) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseLoading {
		return
	}
	r.loadFailed = false
	r.refillLocked()
}

// State returns the current render view
func (r *ChoiceRound) State() ChoiceState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := ChoiceState{
		RoundID:      r.id,
		Game:         r.game,
		Phase:        r.phase,
		Index:        r.index,
		BatchSize:    len(r.batch),
		CorrectCount: r.correctCount,
		LocalScore:   r.localScore,
		LastCorrect:  r.lastCorrect,
		LoadFailed:   r.loadFailed,
	}
	if r.index < len(r.batch) {
		state.ItemKey = r.batch[r.index].Key
		state.Prompt = r.batch[r.index].Prompt
		state.ImageTerm = r.batch[r.index].ImageTerm
		state.Options = append([]string(nil), r.options...)
	}
	return state
}

// Close tears the round down, cancelling any pending timed transition
func (r *ChoiceRound) Close() {
	r.sched.Stop()
}

func (r *ChoiceRound) reopen() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseFeedback {
		return
	}
	r.phase = PhasePresenting
	r.lastCorrect = nil
	r.save()
}

func (r *ChoiceRound) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseFeedback {
		return
	}
	r.phase = PhaseAdvancing
	r.awarded = false
	r.lastCorrect = nil
	r.index++
	if r.index >= len(r.batch) {
		r.refillLocked()
		return
	}
	r.options = content.Options(r.batch[r.index])
	r.phase = PhasePresenting
	r.save()
}

// refillLocked runs under r.mu. A refill failure keeps the round in Loading
// with nothing presented; Reload retries.
func (r *ChoiceRound) refillLocked() {
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
	r.options = content.Options(batch[0])
	r.phase = PhasePresenting
	r.save()
}

// save runs under r.mu
func (r *ChoiceRound) save() {
	if r.snapshot == nil {
		return
	}
	r.snapshot(ChoiceSnapshot{
		Game:         r.game,
		Batch:        r.batch,
		Index:        r.index,
		Options:      append([]string(nil), r.options...),
		CorrectCount: r.correctCount,
		LocalScore:   r.localScore,
	})
}
