// Package collab holds the external collaborator seams: speech output,
// speech capture, handwriting evaluation and picture lookup. Each is an
// interface so games never depend on a concrete provider.
package collab

import (
	"context"

	"otiyot/internal/models"
)

// Speaker reads a prompt aloud in the given language. Speak is best effort;
// a failure must never block or fail the game flow that requested it.
type Speaker interface {
	Speak(ctx context.Context, text string, language models.Language) error
}

// Recorder captures a spoken response and returns the recognized text.
// Implementations that cannot listen return ErrUnavailable.
type Recorder interface {
	Record(ctx context.Context, language models.Language) (string, error)
}

// ImageResolver maps a content item's image term to a displayable URL
type ImageResolver interface {
	Resolve(ctx context.Context, term string) (string, error)
}
