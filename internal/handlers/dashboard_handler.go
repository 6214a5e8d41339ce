package handlers

import (
	"net/http"

	"echospell/internal/service"
)

// DashboardHandler serves the parent dashboard data.
type DashboardHandler struct {
	sessions *service.SessionService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(sessions *service.SessionService) *DashboardHandler {
	return &DashboardHandler{sessions: sessions}
}

// GetDashboard returns streak, recent accuracy and struggling words
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")
	if language == "" {
		language = "en"
	}

	data, err := h.sessions.Dashboard(language)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard", "", err)
		return
	}

	respondJSON(w, http.StatusOK, data)
}
