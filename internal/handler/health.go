package handler

import (
	"net/http"
	"time"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	serviceName        string
	suggestionStrategy string
	apiBaseURL         string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(serviceName, suggestionStrategy, apiBaseURL string) *HealthHandler {
	return &HealthHandler{
		serviceName:        serviceName,
		suggestionStrategy: suggestionStrategy,
		apiBaseURL:         apiBaseURL,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   h.serviceName,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":              "ready",
		"suggestion_strategy": h.suggestionStrategy,
		"api_base_url":        h.apiBaseURL,
	})
}
