package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"echospell/internal/content"
	"echospell/internal/engine"
	"echospell/internal/service"
	"echospell/internal/tts"
)

// SessionHandler handles the practice session API.
type SessionHandler struct {
	sessions *service.SessionService
	tts      *tts.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *service.SessionService, ttsService *tts.Service) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		tts:      ttsService,
	}
}

// sessionView is the session state exposed to the client. The current
// target is never included; the learner only ever hears it.
type sessionView struct {
	ID               string `json:"id"`
	Language         string `json:"language"`
	Voice            string `json:"voice"`
	Level            int    `json:"level"`
	Mode             string `json:"mode"`
	Correct          int    `json:"correct"`
	Wrong            int    `json:"wrong"`
	Streak           int    `json:"streak"`
	BestStreak       int    `json:"bestStreak"`
	XP               int    `json:"xp"`
	Hearts           int    `json:"hearts"`
	Badges           int    `json:"badges"`
	Ended            bool   `json:"ended"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Audio            string `json:"audio"` // URL of the target's audio, empty if TTS failed
}

func (h *SessionHandler) view(sess *engine.Session) sessionView {
	v := sessionView{
		ID:               sess.ID,
		Language:         sess.Language,
		Voice:            sess.Voice,
		Level:            sess.Level,
		Mode:             string(sess.Mode),
		Correct:          sess.Correct,
		Wrong:            sess.Wrong,
		Streak:           sess.Streak,
		BestStreak:       sess.BestStreak,
		XP:               sess.XP,
		Hearts:           sess.Hearts,
		Badges:           sess.Badges,
		Ended:            sess.Ended,
		RemainingSeconds: int(h.sessions.Remaining(sess).Seconds()),
	}
	if !sess.Ended {
		v.Audio = h.audioURL(sess.Target, sess.Language)
	}
	return v
}

// audioURL generates (or reuses) the audio for a target and returns its URL.
// TTS failure is non-fatal: the learner proceeds without audio.
func (h *SessionHandler) audioURL(target, language string) string {
	if h.tts == nil || target == "" {
		return ""
	}
	filename, err := h.tts.GenerateAudioFile(target, language)
	if err != nil {
		log.Printf("Warning: TTS failed for %q: %v", target, err)
		return ""
	}
	return "/static/audio/" + filename
}

// StartSession creates a new practice session
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
		Voice    string `json:"voice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	sess, err := h.sessions.Start(req.Language, req.Voice)
	if err != nil {
		if errors.Is(err, content.ErrNotConfigured) {
			respondWithError(w, http.StatusInternalServerError, "Content not configured", "Failed to start session", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to start session", "", err)
		return
	}

	respondJSON(w, http.StatusCreated, h.view(sess))
}

// GetSession returns the current session state
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Session not found", "", err)
		return
	}

	respondJSON(w, http.StatusOK, h.view(sess))
}

// submitResponse is the answer-evaluation payload returned to the client.
type submitResponse struct {
	Correct          bool        `json:"correct"`
	Reveal           bool        `json:"reveal"`
	Answer           string      `json:"answer,omitempty"`
	XPEarned         int         `json:"xpEarned"`
	BadgeEarned      bool        `json:"badgeEarned"`
	LeveledUp        bool        `json:"leveledUp"`
	SentenceUnlocked bool        `json:"sentenceUnlocked"`
	HeartLost        bool        `json:"heartLost"`
	SessionOver      bool        `json:"sessionOver"`
	Session          sessionView `json:"session"`
}

// SubmitAnswer evaluates a typed answer
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	out, sess, err := h.sessions.Submit(r.PathValue("id"), req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			respondWithError(w, http.StatusNotFound, "Session not found", "", err)
		case errors.Is(err, engine.ErrSessionEnded):
			respondWithError(w, http.StatusConflict, "Session has ended", "", err)
		case errors.Is(err, content.ErrNotConfigured):
			respondWithError(w, http.StatusInternalServerError, "Content not configured", "Failed to draw next item", err)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to check answer", "", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, submitResponse{
		Correct:          out.Correct,
		Reveal:           out.Reveal,
		Answer:           out.Answer,
		XPEarned:         out.XPEarned,
		BadgeEarned:      out.BadgeEarned,
		LeveledUp:        out.LeveledUp,
		SentenceUnlocked: out.SentenceUnlocked,
		HeartLost:        out.HeartLost,
		SessionOver:      out.SessionOver,
		Session:          h.view(sess),
	})
}

// ResetSession folds the current session and starts a fresh one
func (h *SessionHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Reset(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			respondWithError(w, http.StatusNotFound, "Session not found", "", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to reset session", "", err)
		return
	}

	respondJSON(w, http.StatusOK, h.view(sess))
}

// EndSession closes the session and folds its aggregates
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sessions.End(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			respondWithError(w, http.StatusNotFound, "Session not found", "", err)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to end session", "", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":     summary.Date.Format("2006-01-02"),
		"language": summary.Language,
		"correct":  summary.Correct,
		"wrong":    summary.Wrong,
		"level":    summary.Level,
		"mode":     string(summary.Mode),
		"accuracy": summary.Accuracy(),
	})
}
