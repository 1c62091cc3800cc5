package handlers

import (
	"net/http"
	"path/filepath"

	"otiyot/internal/collab"
	"otiyot/internal/models"
)

// AudioHandler serves generated speech audio for prompts
type AudioHandler struct {
	tts      *collab.TTSService
	audioDir string
}

// NewAudioHandler creates a new audio handler
func NewAudioHandler(tts *collab.TTSService, audioDir string) *AudioHandler {
	return &AudioHandler{
		tts:      tts,
		audioDir: audioDir,
	}
}

// Speak generates (or reuses) the MP3 for a prompt and serves it. Failures
// return 404 so the client simply plays nothing.
func (h *AudioHandler) Speak(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		http.Error(w, "Missing text parameter", http.StatusBadRequest)
		return
	}

	language := models.Language(r.URL.Query().Get("lang"))
	if language != models.LanguageEnglish {
		language = models.LanguageHebrew
	}

	filename, err := h.tts.GenerateAudioFile(r.Context(), text, language)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Audio unavailable", "TTS generation failed", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, filepath.Join(h.audioDir, filename))
}
