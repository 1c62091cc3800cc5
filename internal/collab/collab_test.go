package collab

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"otiyot/internal/models"
)

func TestLenientHandwritingVerdicts(t *testing.T) {
	e := LenientHandwriting{}
	ctx := context.Background()

	tests := []struct {
		name    string
		answer  string
		correct bool
	}{
		{"exact match", "שלום", true},
		{"attempt counts", "שלוםם", true},
		{"whitespace attempt", "  בית ", true},
		{"empty rejected", "", false},
		{"blank rejected", "   ", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict, err := e.Evaluate(ctx, "שלום", tc.answer)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if verdict.IsCorrect != tc.correct {
				t.Errorf("answer %q: got correct=%v, want %v", tc.answer, verdict.IsCorrect, tc.correct)
			}
			if verdict.Feedback == "" {
				t.Error("expected feedback text")
			}
		})
	}
}

func TestStaticImageResolver(t *testing.T) {
	r := StaticImageResolver{BaseURL: "https://img.example.com/cards"}
	got, err := r.Resolve(context.Background(), "dog house")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != "https://img.example.com/cards/dog%20house.png" {
		t.Errorf("unexpected URL %q", got)
	}
}

func TestPreloadSucceedsOnFastServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png bytes"))
	}))
	defer srv.Close()

	if !Preload(context.Background(), srv.Client(), srv.URL+"/cat.png") {
		t.Error("expected preload to succeed against a fast server")
	}
}

func TestPreloadGivesUpOnSlowServer(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
	}))
	defer slow.Close()

	start := time.Now()
	ok := Preload(context.Background(), slow.Client(), slow.URL+"/cat.png")
	if ok {
		t.Error("expected preload to give up on a slow server")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("preload blocked for %v, should bail after the wait window", elapsed)
	}
}

func TestNullRecorderUnavailable(t *testing.T) {
	var r NullRecorder
	if _, err := r.Record(context.Background(), models.LanguageHebrew); err != ErrUnavailable {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestSpokenAnswerWithoutRecorderEncourages(t *testing.T) {
	e := SpokenAnswer{Recorder: NullRecorder{}, Language: models.LanguageHebrew}
	verdict, err := e.Evaluate(context.Background(), "שמש", "")
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if !verdict.IsCorrect {
		t.Error("an unavailable recorder must not fail the child")
	}
}

type fixedRecorder struct {
	heard string
	err   error
}

func (f fixedRecorder) Record(_ context.Context, _ models.Language) (string, error) {
	return f.heard, f.err
}

func TestSpokenAnswerComparesRecognizedText(t *testing.T) {
	tests := []struct {
		name    string
		heard   string
		correct bool
	}{
		{"exact match", "שמש", true},
		{"whitespace tolerated", "  שמש ", true},
		{"wrong word", "ירח", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := SpokenAnswer{Recorder: fixedRecorder{heard: tc.heard}, Language: models.LanguageHebrew}
			verdict, err := e.Evaluate(context.Background(), "שמש", "")
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if verdict.IsCorrect != tc.correct {
				t.Errorf("heard %q: got correct=%v, want %v", tc.heard, verdict.IsCorrect, tc.correct)
			}
		})
	}
}

func TestSpokenAnswerPropagatesRecorderFailure(t *testing.T) {
	e := SpokenAnswer{Recorder: fixedRecorder{err: errors.New("mic broke")}, Language: models.LanguageHebrew}
	if _, err := e.Evaluate(context.Background(), "שמש", ""); err == nil {
		t.Error("expected a non-unavailable recorder error to propagate")
	}
}
