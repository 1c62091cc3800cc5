package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"otiyot/internal/ledger"
	"otiyot/internal/models"
)

// Evaluator judges a free-form response (handwriting capture, recorded
// audio, typed text) against a target. Implementations are external
// collaborators; the engine only sees the verdict.
type Evaluator interface {
	Evaluate(ctx context.Context, target, response string) (models.Evaluation, error)
}

// OpenRound drives writing and pronunciation practice through a pluggable
// evaluator. Success mirrors single-shot multiple choice; failure allows
// immediate retry with no penalty; an unavailable evaluator makes the step
// skippable instead of deadlocking.
type OpenRound struct {
	mu sync.Mutex

	id    string
	game  models.GameID
	batch []models.ContentItem
	index int
	phase Phase

	awarded      bool
	correctCount int
	skipped      int
	localScore   int
	lastFeedback string
	loadFailed   bool

	evaluator Evaluator
	wait      time.Duration

	award  AwardFunc
	refill RefillFunc
	sched  *Scheduler

	feedbackDwell time.Duration
	retryDwell    time.Duration
}

// OpenState is the render view of an open-response round
type OpenState struct {
	RoundID      string        `json:"round_id"`
	Game         models.GameID `json:"game"`
	Phase        Phase         `json:"phase"`
	ItemKey      string        `json:"item_key,omitempty"`
	Target       string        `json:"target"`
	ImageTerm    string        `json:"image_term,omitempty"`
	Index        int           `json:"index"`
	BatchSize    int           `json:"batch_size"`
	CorrectCount int           `json:"correct_count"`
	LocalScore   int           `json:"local_score"`
	LastFeedback string        `json:"last_feedback,omitempty"`
	LoadFailed   bool          `json:"load_failed,omitempty"`
}

// NewOpenRound starts an open-response round over a drawn batch. Open rounds
// are not snapshotted: a half-captured free-form response has nothing useful
// to resume into.
func NewOpenRound(game models.GameID, batch []models.ContentItem, evaluator Evaluator, award AwardFunc, refill RefillFunc) *OpenRound {
	r := &OpenRound{
		id:            uuid.New().String(),
		game:          game,
		batch:         batch,
		phase:         PhasePresenting,
		evaluator:     evaluator,
		wait:          EvaluatorWait,
		award:         award,
		refill:        refill,
		sched:         NewScheduler(),
		feedbackDwell: FeedbackDwell,
		retryDwell:    RetryDwell,
	}
	if len(batch) == 0 {
		r.phase = PhaseComplete
	}
	return r
}

// SetDwell overrides the transition dwell times
func (r *OpenRound) SetDwell(feedback, retry time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedbackDwell = feedback
	r.retryDwell = retry
}

// SetEvaluatorWait overrides the bounded evaluator wait
func (r *OpenRound) SetEvaluatorWait(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wait = d
}

// Submit resolves one free-form response. The evaluator races a hard
// timeout; past it the round proceeds with a positive default rather than
// spinning. An evaluator error makes the step skippable: the round advances
// without points and without penalty.
func (r *OpenRound) Submit(ctx context.Context, response string) (models.Evaluation, error) {
	r.mu.Lock()
	if r.phase != PhasePresenting {
		r.mu.Unlock()
		return models.Evaluation{}, ErrInputIgnored
	}
	r.phase = PhaseResolving
	target := r.batch[r.index].Answer
	wait := r.wait
	r.mu.Unlock()

	verdict, failed := r.boundedEvaluate(ctx, target, response, wait)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseResolving {
		// Torn down while the evaluator ran
		return verdict, nil
	}

	r.lastFeedback = verdict.Feedback
	r.phase = PhaseFeedback

	switch {
	case failed:
		r.skipped++
		r.sched.After(r.feedbackDwell, r.advance)
	case verdict.IsCorrect:
		if !r.awarded {
			r.awarded = true
			r.correctCount++
			r.localScore += ledger.CorrectReward
			r.award(ledger.CorrectReward)
		}
		r.sched.After(r.feedbackDwell, r.advance)
	default:
		r.sched.After(r.retryDwell, r.reopen)
	}

	return verdict, nil
}

// boundedEvaluate never blocks past the configured wait
func (r *OpenRound) boundedEvaluate(ctx context.Context, target, response string, wait time.Duration) (models.Evaluation, bool) {
	type outcome struct {
		verdict models.Evaluation
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		verdict, err := r.evaluator.Evaluate(ctx, target, response)
		done <- outcome{verdict, err}
	}()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case out := <-done:
		if out.err != nil {
			return models.Evaluation{Feedback: "נמשיך הלאה, ננסה שוב בפעם הבאה"}, true
		}
		return out.verdict, false
	case <-timer.C:
		return models.Evaluation{IsCorrect: true, Feedback: "כל הכבוד!"}, false
	}
}

// Reload retries a failed batch refill
func (r *OpenRound) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseLoading {
		return
	}
	r.loadFailed = false
	r.refillLocked()
}

// State returns the current render view
func (r *OpenRound) State() OpenState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := OpenState{
		RoundID:      r.id,
		Game:         r.game,
		Phase:        r.phase,
		Index:        r.index,
		BatchSize:    len(r.batch),
		CorrectCount: r.correctCount,
		LocalScore:   r.localScore,
		LastFeedback: r.lastFeedback,
		LoadFailed:   r.loadFailed,
	}
	if r.index < len(r.batch) {
		state.ItemKey = r.batch[r.index].Key
		state.Target = r.batch[r.index].Answer
		state.ImageTerm = r.batch[r.index].ImageTerm
	}
	return state
}

// Close tears the round down, cancelling any pending timed transition
func (r *OpenRound) Close() {
	r.sched.Stop()
}

func (r *OpenRound) reopen() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseFeedback {
		return
	}
	r.phase = PhasePresenting
}

func (r *OpenRound) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseFeedback {
		return
	}
	r.phase = PhaseAdvancing
	r.awarded = false
	r.lastFeedback = ""
	r.index++
	if r.index >= len(r.batch) {
		r.refillLocked()
		return
	}
	r.phase = PhasePresenting
}

// refillLocked runs under r.mu. A refill failure keeps the round in Loading
// with nothing presented; Reload retries.
func (r *OpenRound) refillLocked() {
	r.phase = PhaseLoading
	batch, err := r.refill()
	if err != nil {
		r.loadFailed = true
		return
	}
	if len(batch) == 0 {
		r.phase = PhaseComplete
		return
	}
	r.batch = batch
	r.index = 0
	r.phase = PhasePresenting
}
