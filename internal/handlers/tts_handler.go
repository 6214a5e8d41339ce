package handlers

import (
	"log"
	"net/http"

	"echospell/internal/tts"
)

// TTSHandler serves audio for arbitrary text, used by the reveal view to
// replay the answer.
type TTSHandler struct {
	tts *tts.Service
}

// NewTTSHandler creates a new TTS handler
func NewTTSHandler(ttsService *tts.Service) *TTSHandler {
	return &TTSHandler{tts: ttsService}
}

// GetAudio returns the cached audio URL for a text, generating it if needed.
// TTS failure returns an empty URL rather than an error; audio is optional.
func (h *TTSHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		respondWithError(w, http.StatusBadRequest, "Missing text parameter", "", nil)
		return
	}
	lang := r.URL.Query().Get("lang")

	audio := ""
	if filename, err := h.tts.GenerateAudioFile(text, lang); err != nil {
		log.Printf("Warning: TTS failed for %q: %v", text, err)
	} else {
		audio = "/static/audio/" + filename
	}

	respondJSON(w, http.StatusOK, map[string]string{"audio": audio})
}
