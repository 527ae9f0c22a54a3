package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/msomdec/rewise/internal/domain"
	"github.com/msomdec/rewise/internal/handler"
	"github.com/msomdec/rewise/internal/repository/sqlite"
	"github.com/msomdec/rewise/internal/service"
)

func newTestStudy(t *testing.T, n int) *service.StudyService {
	t.Helper()
	return newTestStudyWithClock(t, n, func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) })
}

func newTestStudyWithClock(t *testing.T, n int, now func() time.Time) *service.StudyService {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cards := make([]domain.Flashcard, n)
	for i := range cards {
		cards[i] = domain.Flashcard{
			ID:       int64(i + 1),
			Question: "Question " + string(rune('A'+i)),
			Answer:   "Answer " + string(rune('A'+i)),
		}
	}
	study, err := service.NewStudyService(context.Background(), db.KV(), cards, now, time.UTC)
	if err != nil {
		t.Fatalf("NewStudyService: %v", err)
	}
	return study
}

func newTestServer(t *testing.T, study *service.StudyService, limiter *service.TokenBucket) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, study, limiter)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)
	return srv
}

// noRedirectClient returns redirects to the caller instead of following them.
var noRedirectClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}
