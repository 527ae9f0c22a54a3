package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/rewise/internal/service"
	"github.com/msomdec/rewise/internal/view"
)

// StatsHandler serves the statistics dashboard.
type StatsHandler struct {
	study *service.StudyService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(study *service.StudyService) *StatsHandler {
	return &StatsHandler{study: study}
}

// HandlePage renders the statistics dashboard.
func (h *StatsHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if err := view.StatsPage(h.study.Dashboard()).Render(r.Context(), w); err != nil {
		slog.Error("render stats page", "error", err)
	}
}
