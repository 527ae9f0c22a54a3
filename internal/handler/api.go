package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/rewise/internal/domain"
	"github.com/msomdec/rewise/internal/service"
)

// APIHandler exposes the study session and statistics as JSON.
type APIHandler struct {
	study *service.StudyService
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(study *service.StudyService) *APIHandler {
	return &APIHandler{study: study}
}

// HandleSession returns the session position and the card under review.
func (h *APIHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session())
}

// HandleOutcome records an outcome for the current card.
func (h *APIHandler) HandleOutcome(w http.ResponseWriter, r *http.Request) {
	var req OutcomeRequest
	if err := readJSON(r, &req); err != nil || req.Known == nil {
		writeError(w, http.StatusBadRequest, "body must be {\"known\": true|false}")
		return
	}

	if _, err := h.study.RecordOutcome(r.Context(), *req.Known); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session())
}

// HandleReset restarts the session.
func (h *APIHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.study.Reset(r.Context())
	writeJSON(w, http.StatusOK, h.session())
}

// HandleStats returns the review statistics.
func (h *APIHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.study.Stats()
	writeJSON(w, http.StatusOK, toStatsDTO(stats, service.Summarize(stats).SuccessRate))
}

// HandleCards returns the catalog in study order.
func (h *APIHandler) HandleCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCardDTOs(h.study.Cards()))
}

func (h *APIHandler) session() SessionDTO {
	return toSessionDTO(h.study.Position())
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidState), errors.Is(err, domain.ErrOutOfRange):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("study request", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
