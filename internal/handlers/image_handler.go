package handlers

import (
	"net/http"
	"strings"
	"time"

	"otiyot/internal/collab"
)

// ImageHandler resolves a content item's image term to a displayable URL
type ImageHandler struct {
	images collab.ImageResolver
	client *http.Client
}

// NewImageHandler creates a new image handler
func NewImageHandler(images collab.ImageResolver) *ImageHandler {
	return &ImageHandler{
		images: images,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Resolve maps an image term to its URL. For remote URLs the image is
// fetched ahead of display with a bounded wait; ready reports whether it
// arrived in time. A slow image means the prompt shows without a picture,
// never an error.
func (h *ImageHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	term := r.PathValue("term")
	if term == "" {
		http.Error(w, "Missing image term", http.StatusBadRequest)
		return
	}

	imageURL, err := h.images.Resolve(r.Context(), term)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "No image for this term", "", err)
		return
	}

	ready := true
	if strings.HasPrefix(imageURL, "http") {
		ready = collab.Preload(r.Context(), h.client, imageURL)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":   imageURL,
		"ready": ready,
	})
}
