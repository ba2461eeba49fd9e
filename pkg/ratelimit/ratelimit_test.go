package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/payments/1", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"), "other clients have their own bucket")
}

func TestGetLimiter_SameIP(t *testing.T) {
	limiter := NewIPRateLimiter(5, 10)

	assert.Same(t, limiter.GetLimiter("10.0.0.1"), limiter.GetLimiter("10.0.0.1"))
	assert.NotSame(t, limiter.GetLimiter("10.0.0.1"), limiter.GetLimiter("10.0.0.2"))
}

func TestCleanup(t *testing.T) {
	limiter := NewIPRateLimiter(5, 10)
	limiter.GetLimiter("10.0.0.1")
	limiter.ips["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)
	limiter.GetLimiter("10.0.0.2")

	limiter.cleanup(idleTimeout)

	assert.NotContains(t, limiter.ips, "10.0.0.1")
	assert.Contains(t, limiter.ips, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", clientIP(req))

	req.RemoteAddr = "203.0.113.7:443"
	assert.Equal(t, "203.0.113.7", clientIP(req))
}
