package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"otiyot/internal/security"
	"otiyot/internal/session"
	"otiyot/internal/statestore"
	"otiyot/internal/transfer"
)

// maxImportSize bounds uploaded documents
const maxImportSize = 1 << 20

// TransferHandler serves the parent gate and progress import/export
type TransferHandler struct {
	orchestrator *session.Orchestrator
	store        statestore.Store
	gate         *security.ParentGate
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(orchestrator *session.Orchestrator, store statestore.Store, gate *security.ParentGate) *TransferHandler {
	return &TransferHandler{
		orchestrator: orchestrator,
		store:        store,
		gate:         gate,
	}
}

// SetPIN stores a new parent PIN. Allowed without a token only while no PIN
// is configured; changing an existing PIN requires an unlocked gate.
func (h *TransferHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PIN   string `json:"pin"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.PIN) < 4 {
		http.Error(w, "PIN must be at least 4 digits", http.StatusBadRequest)
		return
	}

	settings := h.orchestrator.Settings()
	if settings.ParentPINHash != "" {
		if err := h.gate.Verify(body.Token); err != nil {
			respondWithError(w, http.StatusUnauthorized, "Parent access required", "SetPIN without valid token", err)
			return
		}
	}

	hash, err := security.HashPIN(body.PIN)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save PIN", "HashPIN failed", err)
		return
	}

	settings.ParentPINHash = hash
	if err := h.orchestrator.UpdateSettings(settings); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save PIN", "UpdateSettings failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unlock checks the parent PIN and returns a short-lived access token
func (h *TransferHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.gate.Unlock(body.PIN, h.orchestrator.Settings().ParentPINHash)
	if err != nil {
		if errors.Is(err, security.ErrWrongPIN) {
			http.Error(w, "Incorrect PIN", http.StatusUnauthorized)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to unlock", "Unlock failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ExportProgress downloads the progress document
func (h *TransferHandler) ExportProgress(w http.ResponseWriter, r *http.Request) {
	data, err := transfer.ExportProgress(h.orchestrator.Ledger(), h.store, h.orchestrator.Settings().ChildName)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export progress", "ExportProgress failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="otiyot-progress.json"`)
	w.Write(data)
}

// ImportProgress validates and applies an uploaded progress document
func (h *TransferHandler) ImportProgress(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	if err := h.orchestrator.ImportProgress(data); err != nil {
		if errors.Is(err, transfer.ErrInvalidImport) {
			respondWithError(w, http.StatusUnprocessableEntity, transfer.ErrInvalidImport.Error(), "Rejected import", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to import progress", "ImportProgress failed", err)
		return
	}
	writeJSON(w, http.StatusOK, h.orchestrator.Ledger().Snapshot())
}

// ExportWords downloads a game's custom word list
func (h *TransferHandler) ExportWords(w http.ResponseWriter, r *http.Request) {
	game := r.PathValue("game")
	words := transfer.LoadCustomWords(h.store, game)
	if len(words) == 0 {
		http.Error(w, "No custom words for this game", http.StatusNotFound)
		return
	}

	data, err := transfer.ExportWordList(words)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export words", "ExportWordList failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="otiyot-words.json"`)
	w.Write(data)
}

// ImportWords parses an uploaded word list (enveloped or legacy bare array)
// and stores it for a game
func (h *TransferHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	game := r.PathValue("game")
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		http.Error(w, "Failed to read upload", http.StatusBadRequest)
		return
	}

	words, err := transfer.ParseWordList(data)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, transfer.ErrInvalidImport.Error(), "Rejected word list", err)
		return
	}

	if err := transfer.SaveCustomWords(h.store, game, words); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save words", "SaveCustomWords failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(words)})
}

// ResetAll wipes all progress back to defaults
func (h *TransferHandler) ResetAll(w http.ResponseWriter, r *http.Request) {
	if err := h.orchestrator.ResetAll(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to reset progress", "ResetAll failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
