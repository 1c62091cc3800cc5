package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"otiyot/internal/collab"
	"otiyot/internal/engine"
	"otiyot/internal/models"
	"otiyot/internal/repository"
	"otiyot/internal/session"
)

// GameHandler handles the play flow for every mini-game
type GameHandler struct {
	orchestrator *session.Orchestrator
	attempts     *repository.AttemptRepository
	speaker      collab.Speaker
	language     models.Language
}

// NewGameHandler creates a new game handler. speaker may be nil; prompts are
// then never pre-voiced.
func NewGameHandler(orchestrator *session.Orchestrator, attempts *repository.AttemptRepository, speaker collab.Speaker, language models.Language) *GameHandler {
	return &GameHandler{
		orchestrator: orchestrator,
		attempts:     attempts,
		speaker:      speaker,
		language:     language,
	}
}

// StartGame begins a round of the requested mini-game
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	game := models.GameID(r.PathValue("game"))

	var body struct {
		TeamMode bool `json:"team_mode"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	if err := h.orchestrator.StartGame(game, body.TeamMode); err != nil {
		if errors.Is(err, session.ErrNoContent) {
			respondWithError(w, http.StatusNotFound, "No content available for this game", "", err)
			return
		}
		respondWithError(w, http.StatusBadRequest, "Could not start game", "StartGame failed", err)
		return
	}

	go h.voicePrompt()
	h.GameState(w, r)
}

// voicePrompt warms the speech cache for the first prompt so playback is
// instant when the client asks for it. Best effort.
func (h *GameHandler) voicePrompt() {
	if h.speaker == nil {
		return
	}

	var text string
	if round, ok := h.orchestrator.ChoiceRound(); ok {
		text = round.State().Prompt
	} else if round, ok := h.orchestrator.OpenRound(); ok {
		text = round.State().Target
	}
	if text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := h.speaker.Speak(ctx, text, h.language); err != nil {
		respondLog("Failed to prepare prompt audio", err)
	}
}

// GameState returns the active round's view state
func (h *GameHandler) GameState(w http.ResponseWriter, r *http.Request) {
	game := models.GameID(r.PathValue("game"))
	active, ok := h.orchestrator.ActiveGame()
	if !ok || active != game {
		http.Error(w, "No active round for this game", http.StatusNotFound)
		return
	}

	if round, ok := h.orchestrator.ChoiceRound(); ok {
		writeJSON(w, http.StatusOK, round.State())
		return
	}
	if round, ok := h.orchestrator.HangmanRound(); ok {
		writeJSON(w, http.StatusOK, round.State())
		return
	}
	if round, ok := h.orchestrator.MemoryRound(); ok {
		writeJSON(w, http.StatusOK, round.State())
		return
	}
	if round, ok := h.orchestrator.DictationRound(); ok {
		writeJSON(w, http.StatusOK, round.State())
		return
	}
	if round, ok := h.orchestrator.OpenRound(); ok {
		writeJSON(w, http.StatusOK, round.State())
		return
	}
	http.Error(w, "No active round", http.StatusNotFound)
}

// SubmitAnswer handles a choice-round answer submission
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	round, ok := h.orchestrator.ChoiceRound()
	if !ok {
		http.Error(w, "No active round", http.StatusNotFound)
		return
	}

	var body struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state := round.State()
	correct, err := round.Submit(body.Answer)
	if errors.Is(err, engine.ErrInputIgnored) {
		// Tap landed between prompts; report current state, no attempt recorded
		writeJSON(w, http.StatusOK, round.State())
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Could not submit answer", "Submit failed", err)
		return
	}

	h.recordAttempt(state.Game, state.ItemKey, body.Answer, correct)
	writeJSON(w, http.StatusOK, round.State())
}

// ReloadBatch retries content loading after a failed draw, for every round
// variant that refills
func (h *GameHandler) ReloadBatch(w http.ResponseWriter, r *http.Request) {
	if round, ok := h.orchestrator.ChoiceRound(); ok {
		round.Reload()
		state := round.State()
		if state.LoadFailed {
			respondWithError(w, http.StatusServiceUnavailable, "Could not load content", "", nil)
			return
		}
		writeJSON(w, http.StatusOK, state)
		return
	}
	if round, ok := h.orchestrator.HangmanRound(); ok {
		round.Reload()
		state := round.State()
		if state.LoadFailed {
			respondWithError(w, http.StatusServiceUnavailable, "Could not load content", "", nil)
			return
		}
		writeJSON(w, http.StatusOK, state)
		return
	}
	if round, ok := h.orchestrator.OpenRound(); ok {
		round.Reload()
		state := round.State()
		if state.LoadFailed {
			respondWithError(w, http.StatusServiceUnavailable, "Could not load content", "", nil)
			return
		}
		writeJSON(w, http.StatusOK, state)
		return
	}
	http.Error(w, "No active round", http.StatusNotFound)
}

// GuessLetter handles a hangman letter guess
func (h *GameHandler) GuessLetter(w http.ResponseWriter, r *http.Request) {
	round, ok := h.orchestrator.HangmanRound()
	if !ok {
		http.Error(w, "No active round", http.StatusNotFound)
		return
	}

	var body struct {
		Letter string `json:"letter"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	before := round.State()
	err := round.Guess(body.Letter)
	if errors.Is(err, engine.ErrInputIgnored) {
		writeJSON(w, http.StatusOK, round.State())
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	after := round.State()
	if after.IsWon && !before.IsWon {
		h.recordAttempt(models.GameHangman, before.ItemKey, body.Letter, true)
	}
	if after.IsLost && !before.IsLost {
		h.recordAttempt(models.GameHangman, before.ItemKey, body.Letter, false)
	}
	writeJSON(w, http.StatusOK, after)
}

// HangmanRetry restarts the same word after a loss
func (h *GameHandler) HangmanRetry(w http.ResponseWriter, r *http.Request) {
	round, ok := h.orchestrator.HangmanRound()
	if !ok {
		http.Error(w, "No active round", http.StatusNotFound)
		return
	}
	round.RetrySame()
	writeJSON(w, http.StatusOK, round.State())
}

// HangmanNext moves to the next word after a loss
func (h *GameHandler) HangmanNext(w http.ResponseWriter, r *http.Request) {
	round, ok := h.orchestrator.HangmanRound()
	if !ok {
		http.Error(w, "No active round", http.StatusNotFound)
		return
	}
	round.Next()
	writeJSON(w, http.StatusOK, round.State())
}

// FlipCard handles a memory card flip
func (h *GameHandler) FlipCard(w http.ResponseWriter, r *http.Request) {
	round, ok := h.orchestrator.MemoryRound()
	if !ok {
		http.Error(w, "No active round", http.StatusNotFound)
		return
	}

	var body struct {
		CardID int `json:"card_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := round.Flip(body.CardID)
	if err != nil && !errors.Is(err, engine.ErrInputIgnored) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, round.State())
}

// DictationAnswer stores one typed word in the dictation sheet
func (h *GameHandler) DictationAnswer(w http.ResponseWriter, r *http.Request) {
	round, ok := h.orchestrator.DictationRound()
	if !ok {
		http.Error(w, "No active round", http.StatusNotFound)
		return
	}

	var body struct {
		Index int    `json:"index"`
		Text  string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := round.Answer(body.Index, body.Text); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, round.State())
}

// DictationFinish grades the dictation sheet and awards points once
func (h *GameHandler) DictationFinish(w http.ResponseWriter, r *http.Request) {
	round, ok := h.orchestrator.DictationRound()
	if !ok {
		http.Error(w, "No active round", http.StatusNotFound)
		return
	}

	result := round.Finish()
	for _, outcome := range result.PerWord {
		h.recordAttempt(models.GameDictation, outcome.ItemKey, outcome.Answer, outcome.IsCorrect)
	}
	writeJSON(w, http.StatusOK, result)
}

// DictationRestart clears the sheet for another pass
func (h *GameHandler) DictationRestart(w http.ResponseWriter, r *http.Request) {
	round, ok := h.orchestrator.DictationRound()
	if !ok {
		http.Error(w, "No active round", http.StatusNotFound)
		return
	}
	round.Restart()
	writeJSON(w, http.StatusOK, round.State())
}

// SubmitResponse evaluates a free-form submission (writing, pronunciation)
func (h *GameHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	round, ok := h.orchestrator.OpenRound()
	if !ok {
		http.Error(w, "No active round", http.StatusNotFound)
		return
	}

	var body struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state := round.State()
	verdict, err := round.Submit(r.Context(), body.Response)
	if errors.Is(err, engine.ErrInputIgnored) {
		writeJSON(w, http.StatusOK, round.State())
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Could not evaluate answer", "Open submit failed", err)
		return
	}

	h.recordAttempt(state.Game, state.ItemKey, body.Response, verdict.IsCorrect)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"evaluation": verdict,
		"state":      round.State(),
	})
}

// EndGame tears down the active round and returns to the menu
func (h *GameHandler) EndGame(w http.ResponseWriter, r *http.Request) {
	h.orchestrator.EndGame()
	w.WriteHeader(http.StatusNoContent)
}

// recordAttempt is best effort; stats must never fail the play flow
func (h *GameHandler) recordAttempt(game models.GameID, itemKey, answer string, correct bool) {
	if h.attempts == nil || itemKey == "" {
		return
	}
	attempt := models.Attempt{
		Game:      game,
		Category:  models.CategoryFor(game),
		ItemKey:   itemKey,
		Answer:    answer,
		IsCorrect: correct,
	}
	if _, err := h.attempts.RecordAttempt(attempt); err != nil {
		respondLog("Failed to record attempt", err)
	}
}
