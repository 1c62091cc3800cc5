// Package engine implements the round state machine shared by every
// mini-game: present a prompt, accept one resolving input, show feedback,
// then advance within the batch or refill from the content pool.
package engine

import (
	"errors"
	"strings"
	"time"

	"otiyot/internal/models"
)

// Phase is the engine's finite state
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhasePresenting Phase = "presenting"
	PhaseResolving  Phase = "resolving"
	PhaseFeedback   Phase = "feedback"
	PhaseAdvancing  Phase = "advancing"
	PhaseComplete   Phase = "complete"
)

// ErrInputIgnored is returned when input arrives while the round is not in
// Presenting. The input is dropped, never queued, and round state is
// unchanged. This is what prevents double-scoring.
var ErrInputIgnored = errors.New("round is not accepting input")

// Default dwell times for timed transitions
const (
	FeedbackDwell = 1500 * time.Millisecond
	RetryDwell    = 800 * time.Millisecond

	// EvaluatorWait bounds any blocking external call feeding a round;
	// past it the round proceeds with a positive default
	EvaluatorWait = 1000 * time.Millisecond
)

// AwardFunc routes earned points to the global ledger
type AwardFunc func(points int)

// RefillFunc supplies the next batch once the current one is exhausted.
// An empty batch with a nil error means the content source is done and the
// round completes.
type RefillFunc func() ([]models.ContentItem, error)

// SnapshotFunc persists a resume snapshot; rounds call it on every state
// transition so a reload never loses more than the in-flight input
type SnapshotFunc func(snapshot interface{})

// normalizeAnswer compares answers case-insensitively, ignoring surrounding
// whitespace
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
