package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"otiyot/internal/collab"
	"otiyot/internal/models"
	"otiyot/internal/security"
	"otiyot/internal/session"
	"otiyot/internal/statestore"
)

func newTestGameHandler() *GameHandler {
	store := statestore.NewMemoryStore()
	orchestrator := session.New(store, models.LanguageHebrew, 3)
	return NewGameHandler(orchestrator, nil, nil, models.LanguageHebrew)
}

func TestStartGameReturnsState(t *testing.T) {
	h := newTestGameHandler()
	defer h.orchestrator.EndGame()

	req := httptest.NewRequest("POST", "/play/matching/start", strings.NewReader("{}"))
	req.SetPathValue("game", "matching")
	rec := httptest.NewRecorder()

	h.StartGame(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var state struct {
		Phase   string   `json:"phase"`
		Options []string `json:"options"`
		Prompt  string   `json:"prompt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if state.Phase != "presenting" {
		t.Errorf("expected presenting phase, got %q", state.Phase)
	}
	if len(state.Options) == 0 {
		t.Error("expected options in the state")
	}
}

func TestStartGameRejectsUnknown(t *testing.T) {
	h := newTestGameHandler()

	req := httptest.NewRequest("POST", "/play/chess/start", strings.NewReader("{}"))
	req.SetPathValue("game", "chess")
	rec := httptest.NewRecorder()

	h.StartGame(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown game, got %d", rec.Code)
	}
}

func TestGameStateWithoutActiveRound(t *testing.T) {
	h := newTestGameHandler()

	req := httptest.NewRequest("GET", "/play/matching/state", nil)
	req.SetPathValue("game", "matching")
	rec := httptest.NewRecorder()

	h.GameState(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 without a round, got %d", rec.Code)
	}
}

func TestSubmitAnswerFlow(t *testing.T) {
	h := newTestGameHandler()
	defer h.orchestrator.EndGame()

	start := httptest.NewRequest("POST", "/play/naming/start", strings.NewReader("{}"))
	start.SetPathValue("game", "naming")
	h.StartGame(httptest.NewRecorder(), start)

	req := httptest.NewRequest("POST", "/play/naming/answer", strings.NewReader(`{"answer":"definitely wrong"}`))
	req.SetPathValue("game", "naming")
	rec := httptest.NewRecorder()

	h.SubmitAnswer(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var state struct {
		LastCorrect *bool `json:"last_correct"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if state.LastCorrect == nil || *state.LastCorrect {
		t.Errorf("expected incorrect verdict in state, got %v", state.LastCorrect)
	}
}

func TestRequireParentBlocksWithoutToken(t *testing.T) {
	gate := security.NewParentGate("test-secret")
	middleware := NewMiddleware(gate)

	called := false
	guarded := middleware.RequireParent(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("POST", "/parent/reset", nil)
	rec := httptest.NewRecorder()
	guarded(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
	if called {
		t.Error("guarded handler ran without a valid token")
	}
}

func TestParentUnlockThenGuardedCall(t *testing.T) {
	store := statestore.NewMemoryStore()
	orchestrator := session.New(store, models.LanguageHebrew, 3)
	gate := security.NewParentGate("test-secret")
	middleware := NewMiddleware(gate)
	h := NewTransferHandler(orchestrator, store, gate)

	// Configure a PIN
	pinReq := httptest.NewRequest("POST", "/parent/pin", strings.NewReader(`{"pin":"1234"}`))
	pinRec := httptest.NewRecorder()
	h.SetPIN(pinRec, pinReq)
	if pinRec.Code != http.StatusNoContent {
		t.Fatalf("SetPIN failed with %d: %s", pinRec.Code, pinRec.Body.String())
	}

	// Wrong PIN is rejected
	badRec := httptest.NewRecorder()
	h.Unlock(badRec, httptest.NewRequest("POST", "/parent/unlock", strings.NewReader(`{"pin":"0000"}`)))
	if badRec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong PIN, got %d", badRec.Code)
	}

	// Correct PIN yields a token
	unlockRec := httptest.NewRecorder()
	h.Unlock(unlockRec, httptest.NewRequest("POST", "/parent/unlock", strings.NewReader(`{"pin":"1234"}`)))
	if unlockRec.Code != http.StatusOK {
		t.Fatalf("Unlock failed with %d", unlockRec.Code)
	}
	var unlock struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(unlockRec.Body.Bytes(), &unlock); err != nil || unlock.Token == "" {
		t.Fatalf("expected a token, got %q err=%v", unlock.Token, err)
	}

	// The token opens a guarded route
	guarded := middleware.RequireParent(h.ExportProgress)
	req := httptest.NewRequest("GET", "/parent/export", nil)
	req.Header.Set("Authorization", "Bearer "+unlock.Token)
	rec := httptest.NewRecorder()
	guarded(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected export to succeed with token, got %d", rec.Code)
	}
}

func TestImportRejectsMalformedDocument(t *testing.T) {
	store := statestore.NewMemoryStore()
	orchestrator := session.New(store, models.LanguageHebrew, 3)
	gate := security.NewParentGate("test-secret")
	h := NewTransferHandler(orchestrator, store, gate)

	req := httptest.NewRequest("POST", "/parent/import", strings.NewReader(`{"progress":{"totalCoins":"NaN"}}`))
	rec := httptest.NewRecorder()
	h.ImportProgress(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for malformed import, got %d", rec.Code)
	}
	if got := orchestrator.Ledger().Total(); got != 0 {
		t.Errorf("rejected import must not change the ledger, got %d", got)
	}
}

func TestReloadBatchServesHangmanRounds(t *testing.T) {
	h := newTestGameHandler()
	defer h.orchestrator.EndGame()

	start := httptest.NewRequest("POST", "/play/hangman/start", strings.NewReader("{}"))
	start.SetPathValue("game", "hangman")
	h.StartGame(httptest.NewRecorder(), start)

	req := httptest.NewRequest("POST", "/play/hangman/reload", nil)
	req.SetPathValue("game", "hangman")
	rec := httptest.NewRecorder()
	h.ReloadBatch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a healthy hangman round, got %d", rec.Code)
	}
	var state struct {
		Masked string `json:"masked"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if state.Masked == "" {
		t.Error("expected a masked word in the reload response")
	}
}

func TestImageResolveBuildsURL(t *testing.T) {
	h := NewImageHandler(collab.StaticImageResolver{BaseURL: "/assets/images"})

	req := httptest.NewRequest("GET", "/images/sun", nil)
	req.SetPathValue("term", "sun")
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		URL   string `json:"url"`
		Ready bool   `json:"ready"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.URL != "/assets/images/sun.png" {
		t.Errorf("unexpected image URL %q", body.URL)
	}
	if !body.Ready {
		t.Error("a local asset path needs no preloading")
	}
}
