package collab

import (
	"context"
	"errors"
	"strings"

	"otiyot/internal/models"
)

// ErrUnavailable means the host has no provider for this collaborator
var ErrUnavailable = errors.New("collaborator unavailable")

// NullRecorder is the fallback when no speech capture provider is wired
type NullRecorder struct{}

func (NullRecorder) Record(_ context.Context, _ models.Language) (string, error) {
	return "", ErrUnavailable
}

// LenientHandwriting accepts any non-empty submission as a match for the
// target word. It stands in until a real handwriting recognizer is wired
// and keeps the writing game playable without one.
type LenientHandwriting struct{}

func (LenientHandwriting) Evaluate(_ context.Context, target, response string) (models.Evaluation, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return models.Evaluation{IsCorrect: false, Feedback: "נסו לכתוב את המילה"}, nil
	}
	if strings.EqualFold(response, strings.TrimSpace(target)) {
		return models.Evaluation{IsCorrect: true, Feedback: "מושלם!"}, nil
	}
	return models.Evaluation{IsCorrect: true, Feedback: "כל הכבוד על הניסיון!"}, nil
}
