package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	clk := testclock.NewClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	limiter := NewRateLimiter(clk)

	t.Run("rate limit not exceeded", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/fleet", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		w := httptest.NewRecorder()

		handlerCalled := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCalled = true
		})

		limiter.Limit(5, time.Minute)(handler).ServeHTTP(w, req)
		assert.True(t, handlerCalled)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rate limit exceeded then window passes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/fleet", nil)
		req.RemoteAddr = "192.168.1.2:12345"

		calls := 0
		handler := limiter.Limit(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, 1, calls)

		clk.Advance(61 * time.Second)
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("disabled", func(t *testing.T) {
		handler := limiter.Limit(0, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	clk := testclock.NewClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	limiter := NewRateLimiter(clk)
	handler := limiter.Limit(5, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		req := httptest.NewRequest("GET", "/api/fleet", nil)
		req.Header.Set("X-Forwarded-For", ip)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Len(t, limiter.requests, 3)

	clk.Advance(2 * time.Minute)
	req := httptest.NewRequest("GET", "/api/fleet", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.9")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, limiter.requests, 1)
	assert.Contains(t, limiter.requests, "10.0.0.9")
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, remote: "1.1.1.1:80", want: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "10.0.0.3"}, remote: "1.1.1.1:80", want: "10.0.0.3"},
		{name: "remote addr", remote: "1.1.1.1:80", want: "1.1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	clk := testclock.NewClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	ok := RequestLogger(logger, clk)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/fleet", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, 200, entry.Data["status"])
	assert.Equal(t, 5, entry.Data["bytes"])
	assert.Equal(t, "/api/fleet", entry.Data["path"])

	failing := RequestLogger(logger, clk)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	failing.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/fleet", nil))
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, 500, hook.LastEntry().Data["status"])
}
