package handlers

import (
	"encoding/json"
	"net/http"

	"otiyot/internal/content"
	"otiyot/internal/models"
	"otiyot/internal/repository"
	"otiyot/internal/session"
)

// ProgressHandler serves progress, rewards, settings, pets and tutorials
type ProgressHandler struct {
	orchestrator *session.Orchestrator
	attempts     *repository.AttemptRepository
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(orchestrator *session.Orchestrator, attempts *repository.AttemptRepository) *ProgressHandler {
	return &ProgressHandler{
		orchestrator: orchestrator,
		attempts:     attempts,
	}
}

// GetProgress returns the coin total, per-category history counts and
// per-game local scores
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	historyCounts := make(map[string]int)
	for _, category := range models.TrackedCategories {
		historyCounts[string(category)] = h.orchestrator.HistoryLen(category)
	}

	localScores := make(map[string]int)
	for _, game := range models.AllGames {
		if score := h.orchestrator.LocalScore(game); score > 0 {
			localScores[string(game)] = score
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"progress":       h.orchestrator.Ledger().Snapshot(),
		"history":        historyCounts,
		"local_scores":   localScores,
		"pending_reward": h.orchestrator.PendingReward(),
	})
}

// GetStats returns attempt accuracy per game and the most missed items
func (h *ProgressHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.attempts == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{})
		return
	}

	accuracy, err := h.attempts.AccuracyByGame()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stats", "AccuracyByGame failed", err)
		return
	}

	missed, err := h.attempts.MostMissed(10)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stats", "MostMissed failed", err)
		return
	}

	type gameAccuracy struct {
		Correct int `json:"correct"`
		Total   int `json:"total"`
	}
	byGame := make(map[string]gameAccuracy)
	for game, counts := range accuracy {
		byGame[string(game)] = gameAccuracy{Correct: counts[0], Total: counts[1]}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accuracy":    byGame,
		"most_missed": missed,
	})
}

// DismissReward clears the milestone overlay after it is shown
func (h *ProgressHandler) DismissReward(w http.ResponseWriter, r *http.Request) {
	h.orchestrator.DismissReward()
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings returns the current settings without the PIN hash
func (h *ProgressHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings := h.orchestrator.Settings()
	settings.ParentPINHash = ""
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings persists new settings; the PIN hash is preserved because
// it only changes through the parent gate
func (h *ProgressHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var incoming models.Settings
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	current := h.orchestrator.Settings()
	incoming.ParentPINHash = current.ParentPINHash

	if err := h.orchestrator.UpdateSettings(incoming); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save settings", "UpdateSettings failed", err)
		return
	}
	incoming.ParentPINHash = ""
	writeJSON(w, http.StatusOK, incoming)
}

// ListPets returns the pet profiles and which one is selected
func (h *ProgressHandler) ListPets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pets":     content.Pets(),
		"selected": h.orchestrator.Settings().SelectedPetID,
		"chosen":   h.orchestrator.PetSelected(),
	})
}

// SelectPet sets the active pet profile
func (h *ProgressHandler) SelectPet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PetID string `json:"pet_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.orchestrator.SelectPet(body.PetID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to select pet", "SelectPet failed", err)
		return
	}
	writeJSON(w, http.StatusOK, content.PetByID(body.PetID))
}

// GetTutorial reports whether a named tutorial was already dismissed
func (h *ProgressHandler) GetTutorial(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	writeJSON(w, http.StatusOK, map[string]bool{"seen": h.orchestrator.TutorialSeen(key)})
}

// MarkTutorial records a tutorial dismissal
func (h *ProgressHandler) MarkTutorial(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := h.orchestrator.MarkTutorialSeen(key); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save tutorial state", "MarkTutorialSeen failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetHistory clears one category's draw history
func (h *ProgressHandler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.PathValue("category"))
	if err := h.orchestrator.ResetHistory(category); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to reset history", "ResetHistory failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
