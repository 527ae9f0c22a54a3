package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/msomdec/rewise/internal/handler"
	"github.com/msomdec/rewise/internal/service"
)

func TestSecurityHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.SecurityHeaders(inner).ServeHTTP(w, req)

	for _, name := range []string{"Content-Security-Policy", "X-Content-Type-Options", "X-Frame-Options", "Referrer-Policy"} {
		if w.Header().Get(name) == "" {
			t.Errorf("expected %s header", name)
		}
	}
}

func TestRateLimit_RejectsWhenBucketEmpty(t *testing.T) {
	limiter := service.NewTokenBucket(0, 1)
	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	h := handler.RateLimit(limiter, inner)

	req := httptest.NewRequest(http.MethodPost, "/study/reset", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected 429, got %d", w.Code)
	}
	if calls != 1 {
		t.Errorf("inner handler called %d times, want 1", calls)
	}

	// Another client has its own bucket.
	other := httptest.NewRequest(http.MethodPost, "/study/reset", nil)
	other.RemoteAddr = "192.0.2.2:1234"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, other)
	if w.Code != http.StatusOK {
		t.Fatalf("other client: expected 200, got %d", w.Code)
	}
}

func TestRateLimit_AppliesToMutatingRoutesOnly(t *testing.T) {
	srv := newTestServer(t, newTestStudy(t, 3), service.NewTokenBucket(0, 1))

	resp, err := http.Post(srv.URL+"/api/session/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	resp, err = http.Post(srv.URL+"/api/session/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}

	for i := 0; i < 3; i++ {
		resp, err := http.Get(srv.URL + "/api/session")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("read route should not be limited, got %d", resp.StatusCode)
		}
	}
}
