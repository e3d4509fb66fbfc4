package server

import (
	"net"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// RateLimiter allows each client a fixed number of requests per window.
// Counters expire with their window, so idle clients cost nothing.
type RateLimiter struct {
	capacity int
	window   time.Duration
	clients  *cache.Cache
}

// NewRateLimiter creates a limiter allowing capacity requests per window.
func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		capacity: capacity,
		window:   window,
		clients:  cache.New(window, 2*window),
	}
}

// Allow records one request for key and reports whether it is within budget.
func (r *RateLimiter) Allow(key string) bool {
	if err := r.clients.Add(key, 1, r.window); err == nil {
		return true
	}

	n, err := r.clients.IncrementInt(key, 1)
	if err != nil {
		// The window expired between Add and IncrementInt.
		r.clients.Set(key, 1, r.window)
		return true
	}
	return n <= r.capacity
}

// Middleware rejects requests from clients that exhausted their budget.
func (r *RateLimiter) Middleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ip, _, err := net.SplitHostPort(req.RemoteAddr)
			if err != nil {
				ip = req.RemoteAddr
			}

			if !r.Allow(ip) {
				logger.Warn("rate limit exceeded",
					zap.String("op", "server.RateLimiter"),
					zap.String("client", ip),
					zap.String("path", req.URL.Path),
				)
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}
