// Package middleware holds the HTTP middleware shared by the API routes.
package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/juju/clock"
)

// RateLimiter limits requests per client IP over a sliding window.
type RateLimiter struct {
	requests map[string][]time.Time
	mu       sync.Mutex
	clock    clock.Clock
}

// NewRateLimiter creates a limiter driven by clk; nil means the wall clock.
func NewRateLimiter(clk clock.Clock) *RateLimiter {
	if clk == nil {
		clk = clock.WallClock
	}
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		clock:    clk,
	}
}

// Limit rejects a client's request with 429 once it has made maxRequests
// within window. A non-positive maxRequests disables limiting.
func (m *RateLimiter) Limit(maxRequests int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxRequests <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.allow(getClientIP(r), maxRequests, window) {
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *RateLimiter) allow(client string, maxRequests int, window time.Duration) bool {
	now := m.clock.Now()
	windowStart := now.Add(-window)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked(windowStart)
	kept := m.requests[client]
	if len(kept) >= maxRequests {
		return false
	}
	m.requests[client] = append(kept, now)
	return true
}

// pruneLocked drops timestamps older than windowStart and forgets clients
// with none left, so the map only holds clients active in the window.
func (m *RateLimiter) pruneLocked(windowStart time.Time) {
	for client, stamps := range m.requests {
		kept := stamps[:0]
		for _, ts := range stamps {
			if ts.After(windowStart) {
				kept = append(kept, ts)
			}
		}
		if len(kept) == 0 {
			delete(m.requests, client)
			continue
		}
		m.requests[client] = kept
	}
}

// getClientIP extracts the client IP from the request
func getClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	ip := r.RemoteAddr
	if colonIndex := strings.LastIndex(ip, ":"); colonIndex != -1 {
		ip = ip[:colonIndex]
	}
	return ip
}
