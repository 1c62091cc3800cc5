package collab

import (
	"context"
	"errors"
	"strings"

	"otiyot/internal/models"
)

// SpokenAnswer judges pronunciation practice. It records the child through
// the Recorder and compares the recognized text to the target word. A
// recorder that cannot listen turns the step into encouragement instead of
// blocking play.
type SpokenAnswer struct {
	Recorder Recorder
	Language models.Language
}

func (s SpokenAnswer) Evaluate(ctx context.Context, target, _ string) (models.Evaluation, error) {
	heard, err := s.Recorder.Record(ctx, s.Language)
	if errors.Is(err, ErrUnavailable) {
		return models.Evaluation{IsCorrect: true, Feedback: "כל הכבוד!"}, nil
	}
	if err != nil {
		return models.Evaluation{}, err
	}
	if strings.EqualFold(strings.TrimSpace(heard), strings.TrimSpace(target)) {
		return models.Evaluation{IsCorrect: true, Feedback: "מושלם!"}, nil
	}
	return models.Evaluation{IsCorrect: false, Feedback: "כמעט! ננסה להגיד שוב"}, nil
}
