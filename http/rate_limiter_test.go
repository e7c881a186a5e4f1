package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edu-loan/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: slog.LevelError, Output: io.Discard})
}

func newTestLimiter(t *testing.T, capacity int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl, err := NewRateLimiter(capacity, window, "@every 1h", testLogger())
	require.NoError(t, err)
	t.Cleanup(rl.Stop)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_AllowsUpToCapacity(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Minute)

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))

	assert.True(t, rl.Allow("2.2.2.2"), "buckets are per client")
}

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	rl, now := newTestLimiter(t, 1, time.Minute)

	assert.True(t, rl.Allow("ip"))
	assert.False(t, rl.Allow("ip"))

	*now = now.Add(time.Minute)
	assert.True(t, rl.Allow("ip"))
}

func TestRateLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	rl, now := newTestLimiter(t, 2, time.Minute)

	rl.Allow("old")
	*now = now.Add(2 * time.Hour)
	rl.Allow("fresh")

	assert.Equal(t, 1, rl.cleanup())
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "fresh")
}

func TestNewRateLimiter_InvalidCleanupSpec(t *testing.T) {
	_, err := NewRateLimiter(1, time.Minute, "not a schedule", testLogger())
	assert.ErrorContains(t, err, "register rate limiter cleanup")
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, _ := newTestLimiter(t, 1, 30*time.Second)

	r := gin.New()
	r.Use(RateLimitMiddleware(rl))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}
