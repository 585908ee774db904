//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gin-booking-engine/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(l *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bookings", l.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func post(r *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.RemoteAddr = ip + ":40000"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_PerClientBucket(t *testing.T) {
	l := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 2})
	frozen := time.Date(2030, 6, 3, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return frozen }
	r := newLimitedRouter(l)

	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, post(r, "10.0.0.1"))
	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.2"), "other clients keep their own bucket")

	frozen = frozen.Add(time.Second)
	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.1"), "bucket refills over time")
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := newLimitedRouter(NewRateLimiter(config.RateLimitConfig{RPS: 0, Burst: 0}))
	for range 5 {
		require.Equal(t, http.StatusCreated, post(r, "10.0.0.1"))
	}
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	l := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1})
	now := time.Date(2030, 6, 3, 8, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := range limiterSweepSize {
		l.allow(string(rune('a'+i%26)) + time.Duration(i).String())
	}
	require.Len(t, l.limiters, limiterSweepSize)

	now = now.Add(limiterIdleTTL + time.Minute)
	l.allow("fresh")
	assert.Len(t, l.limiters, 1)
}

func TestRateLimiter_SweepsAtMostOncePerInterval(t *testing.T) {
	l := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1})
	start := time.Date(2030, 6, 3, 8, 0, 0, 0, time.UTC)
	now := start
	l.now = func() time.Time { return now }

	for i := range limiterSweepSize {
		l.allow("client-" + time.Duration(i).String())
	}
	l.allow("first")
	require.Equal(t, start, l.lastSweep, "a full table triggers a sweep")
	require.Len(t, l.limiters, limiterSweepSize+1, "nothing was idle yet")

	// Every bucket goes idle, but the last sweep is too recent to repeat.
	for _, cl := range l.limiters {
		cl.lastSeen = start.Add(-2 * limiterIdleTTL)
	}
	now = start.Add(limiterSweepInterval / 2)
	l.allow("second")
	assert.Equal(t, start, l.lastSweep)
	assert.Len(t, l.limiters, limiterSweepSize+2)

	now = start.Add(limiterSweepInterval)
	l.allow("third")
	assert.Equal(t, now, l.lastSweep)
	assert.Len(t, l.limiters, 2, "only buckets seen since the interval remain")
}
