package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"otiyot/internal/ledger"
	"otiyot/internal/models"
)

// MemoryRound is the pairing puzzle: the grid holds two cards per item, a
// comparison is two flips, matches leave play. In solo mode matches award
// global points; in team mode they add to the active team's local score and
// keep the turn, while a mismatch passes it.
type MemoryRound struct {
	mu sync.Mutex

	id    string
	cards []memoryCard
	phase Phase

	faceUp     []int
	matched    int
	totalPairs int

	teamMode   bool
	activeTeam int
	teamScores [2]int
	localScore int

	award AwardFunc
	sched *Scheduler
	dwell time.Duration
}

type memoryCard struct {
	key     string
	label   string
	faceUp  bool
	matched bool
}

// MemoryCardView hides the label of face-down cards
type MemoryCardView struct {
	ID      int    `json:"id"`
	FaceUp  bool   `json:"face_up"`
	Matched bool   `json:"matched"`
	Label   string `json:"label,omitempty"`
}

// MemoryState is the render view of a memory round
type MemoryState struct {
	RoundID      string           `json:"round_id"`
	Phase        Phase            `json:"phase"`
	Cards        []MemoryCardView `json:"cards"`
	MatchedPairs int              `json:"matched_pairs"`
	TotalPairs   int              `json:"total_pairs"`
	TeamMode     bool             `json:"team_mode"`
	ActiveTeam   int              `json:"active_team"`
	TeamScores   [2]int           `json:"team_scores"`
	LocalScore   int              `json:"local_score"`
}

// NewMemoryRound builds a shuffled grid of two cards per item
func NewMemoryRound(items []models.ContentItem, teamMode bool, award AwardFunc) *MemoryRound {
	r := &MemoryRound{
		id:         uuid.New().String(),
		phase:      PhasePresenting,
		totalPairs: len(items),
		teamMode:   teamMode,
		award:      award,
		sched:      NewScheduler(),
		dwell:      RetryDwell,
	}
	for _, item := range items {
		r.cards = append(r.cards,
			memoryCard{key: item.Key, label: item.Answer},
			memoryCard{key: item.Key, label: item.Answer},
		)
	}
	rand.Shuffle(len(r.cards), func(i, j int) {
		r.cards[i], r.cards[j] = r.cards[j], r.cards[i]
	})
	if len(items) == 0 {
		r.phase = PhaseComplete
	}
	return r
}

// SetDwell overrides the mismatch revert dwell
func (r *MemoryRound) SetDwell(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dwell = d
}

// Flip turns one card face up. The second flip of a comparison resolves it;
// input outside Presenting returns ErrInputIgnored, flips of matched or
// already-up cards are no-ops.
func (r *MemoryRound) Flip(cardID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePresenting {
		return ErrInputIgnored
	}
	if cardID < 0 || cardID >= len(r.cards) {
		return ErrInputIgnored
	}
	card := &r.cards[cardID]
	if card.matched || card.faceUp {
		return nil
	}

	card.faceUp = true
	r.faceUp = append(r.faceUp, cardID)
	if len(r.faceUp) < 2 {
		return nil
	}

	r.phase = PhaseResolving
	first, second := &r.cards[r.faceUp[0]], &r.cards[r.faceUp[1]]
	if first.key == second.key {
		first.matched = true
		second.matched = true
		r.matched++
		r.faceUp = nil
		if r.teamMode {
			// Match keeps the turn
			r.teamScores[r.activeTeam] += ledger.CorrectReward
		} else {
			r.localScore += ledger.CorrectReward
			r.award(ledger.CorrectReward)
		}
		if r.matched == r.totalPairs {
			r.phase = PhaseComplete
		} else {
			r.phase = PhasePresenting
		}
		return nil
	}

	r.phase = PhaseFeedback
	r.sched.After(r.dwell, r.revert)
	return nil
}

// State returns the current render view
func (r *MemoryRound) State() MemoryState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := MemoryState{
		RoundID:      r.id,
		Phase:        r.phase,
		MatchedPairs: r.matched,
		TotalPairs:   r.totalPairs,
		TeamMode:     r.teamMode,
		ActiveTeam:   r.activeTeam,
		TeamScores:   r.teamScores,
		LocalScore:   r.localScore,
	}
	for i, card := range r.cards {
		view := MemoryCardView{ID: i, FaceUp: card.faceUp, Matched: card.matched}
		if card.faceUp || card.matched {
			view.Label = card.label
		}
		state.Cards = append(state.Cards, view)
	}
	return state
}

// Close tears the round down, cancelling any pending revert
func (r *MemoryRound) Close() {
	r.sched.Stop()
}

func (r *MemoryRound) revert() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase != PhaseFeedback {
		return
	}
	for _, id := range r.faceUp {
		r.cards[id].faceUp = false
	}
	r.faceUp = nil
	if r.teamMode {
		r.activeTeam = 1 - r.activeTeam
	}
	r.phase = PhasePresenting
}
