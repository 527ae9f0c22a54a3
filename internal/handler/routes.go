package handler

import (
	"net/http"

	"github.com/msomdec/rewise/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Mutating routes
// are rate limited per client when limiter is non-nil.
func RegisterRoutes(mux *http.ServeMux, study *service.StudyService, limiter *service.TokenBucket) {
	studyHandler := NewStudyHandler(study)
	statsHandler := NewStatsHandler(study)
	apiHandler := NewAPIHandler(study)

	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimit(limiter, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /{$}", HandleHome)

	// Study pages (datastar SSE for actions).
	mux.HandleFunc("GET /study", studyHandler.HandlePage)
	mux.Handle("POST /study/outcome", limited(studyHandler.HandleOutcome))
	mux.Handle("POST /study/reset", limited(studyHandler.HandleReset))
	mux.HandleFunc("GET /stats", statsHandler.HandlePage)

	// JSON API.
	mux.HandleFunc("GET /api/session", apiHandler.HandleSession)
	mux.Handle("POST /api/session/outcome", limited(apiHandler.HandleOutcome))
	mux.Handle("POST /api/session/reset", limited(apiHandler.HandleReset))
	mux.HandleFunc("GET /api/stats", apiHandler.HandleStats)
	mux.HandleFunc("GET /api/cards", apiHandler.HandleCards)
}
