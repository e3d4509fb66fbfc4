package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(2, time.Hour)

	if !limiter.Allow("10.0.0.1") || !limiter.Allow("10.0.0.1") {
		t.Fatal("expected the first two requests to be allowed")
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("expected the third request to be rejected")
	}
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("clients must have independent budgets")
	}
}

func TestRateLimiterWindowResets(t *testing.T) {
	limiter := NewRateLimiter(1, 50*time.Millisecond)

	if !limiter.Allow("client") {
		t.Fatal("expected first request to be allowed")
	}
	if limiter.Allow("client") {
		t.Fatal("expected second request in the same window to be rejected")
	}

	time.Sleep(80 * time.Millisecond)
	if !limiter.Allow("client") {
		t.Fatal("expected a request in the next window to be allowed")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	limiter := NewRateLimiter(1, time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := limiter.Middleware(zap.NewNop())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.RemoteAddr = "198.51.100.7:4242"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	// Same host on another port shares the budget.
	req.RemoteAddr = "198.51.100.7:5151"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rr.Code)
	}
}
