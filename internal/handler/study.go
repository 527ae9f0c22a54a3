package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/rewise/internal/domain"
	"github.com/msomdec/rewise/internal/service"
	"github.com/msomdec/rewise/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// StudyHandler serves the study page and its datastar actions.
type StudyHandler struct {
	study *service.StudyService
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(study *service.StudyService) *StudyHandler {
	return &StudyHandler{study: study}
}

// HandlePage renders the study page.
func (h *StudyHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if err := view.StudyPage(h.studyView()).Render(r.Context(), w); err != nil {
		slog.Error("render study page", "error", err)
	}
}

// HandleOutcome records whether the reviewer knew the current card and
// patches the study content with the next card or the summary.
func (h *StudyHandler) HandleOutcome(w http.ResponseWriter, r *http.Request) {
	known, err := strconv.ParseBool(r.URL.Query().Get("known"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if _, err := h.study.RecordOutcome(r.Context(), known); err != nil {
		if errors.Is(err, domain.ErrInvalidState) {
			sse := datastar.NewSSE(w, r)
			sse.Redirect("/study")
			return
		}
		slog.Error("record outcome", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.patchContent(w, r)
}

// HandleReset restarts the session from the first card.
func (h *StudyHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.study.Reset(r.Context())
	h.patchContent(w, r)
}

func (h *StudyHandler) patchContent(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(
		view.StudyFragment(h.studyView()),
		datastar.WithSelectorID(view.StudyContentID),
	); err != nil {
		slog.Error("patch study content", "error", err)
	}
}

func (h *StudyHandler) studyView() view.StudyView {
	state, card := h.study.Position()
	v := view.StudyView{State: state}
	if card != nil {
		v.Card = *card
		return v
	}
	v.Summary = h.study.Summary()
	return v
}
