// Package handler exposes the dialogue service over HTTP.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yukishop/nlp-service/internal/dispatch"
	"github.com/yukishop/nlp-service/internal/model"
	"github.com/yukishop/nlp-service/pkg/logger"
)

// PredictHandler handles the dialogue prediction endpoint.
type PredictHandler struct {
	dispatcher *dispatch.Dispatcher
	logger     *logger.Logger
}

// NewPredictHandler creates a predict handler.
func NewPredictHandler(dispatcher *dispatch.Dispatcher, log *logger.Logger) *PredictHandler {
	return &PredictHandler{
		dispatcher: dispatcher,
		logger:     log,
	}
}

// Predict handles POST /predict. The dispatcher never fails; a missing
// message is the only client error this endpoint produces.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req model.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	resp := h.dispatcher.Process(r.Context(), req.Message, req.SessionID)

	writeJSON(w, http.StatusOK, resp)
}
