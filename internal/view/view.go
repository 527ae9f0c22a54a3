package view

import (
	"github.com/msomdec/rewise/internal/domain"
	"github.com/msomdec/rewise/internal/service"
)

// StudyContentID is the element patched by study actions.
const StudyContentID = "study-content"

// StudyView is what the study page needs to render.
type StudyView struct {
	State   domain.SessionState
	Card    domain.Flashcard // Zero when the session is complete
	Summary service.CompletionSummary
}

// weeklyPeak is the largest day total, at least 1, used to scale the bars.
func weeklyPeak(points []service.ChartPoint) int {
	peak := 1
	for _, p := range points {
		peak = max(peak, p.Total)
	}
	return peak
}
