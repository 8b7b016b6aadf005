package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/middleware"
	"github.com/dmitrymomot/waypoint/pkg/ratelimiter"
)

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (*ratelimiter.Result, error) {
	return nil, errors.New("redis down")
}

func (brokenLimiter) AllowN(context.Context, string, int) (*ratelimiter.Result, error) {
	return nil, errors.New("redis down")
}

func newLimiter(t *testing.T, capacity int) *ratelimiter.Bucket {
	t.Helper()

	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity:       capacity,
		RefillRate:     1,
		RefillInterval: time.Minute,
	})
	require.NoError(t, err)
	return limiter
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	r := newRouter(ok, middleware.RateLimit(middleware.RateLimitConfig{
		Limiter:    newLimiter(t, 2),
		SetHeaders: true,
	}))

	for i := 1; i >= 0; i-- {
		w := do(r, request(http.MethodGet, nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, []string{string(rune('0' + i))}, w.Header().Values("X-RateLimit-Remaining"))
	}

	w := do(r, request(http.MethodGet, nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"code":"too_many_requests"`)
	assert.Contains(t, w.Body.String(), `"retry_after":`)
}

func TestRateLimitKeyedByIP(t *testing.T) {
	t.Parallel()

	r := newRouter(ok, middleware.RateLimit(middleware.RateLimitConfig{Limiter: newLimiter(t, 1)}))

	assert.Equal(t, http.StatusOK, do(r, request(http.MethodGet, nil, "X-Forwarded-For", "203.0.113.1")).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, request(http.MethodGet, nil, "X-Forwarded-For", "203.0.113.1")).Code)
	assert.Equal(t, http.StatusOK, do(r, request(http.MethodGet, nil, "X-Forwarded-For", "203.0.113.2")).Code)
}

func TestRateLimitCustomKeyAndSkip(t *testing.T) {
	t.Parallel()

	r := newRouter(ok, middleware.RateLimit(middleware.RateLimitConfig{
		Limiter:      newLimiter(t, 1),
		KeyExtractor: func(ctx *handler.Context) string { return ctx.Header("X-API-Key") },
		Skip:         func(ctx *handler.Context) bool { return ctx.Header("X-Internal") == "1" },
	}))

	assert.Equal(t, http.StatusOK, do(r, request(http.MethodGet, nil, "X-API-Key", "a")).Code)
	assert.Equal(t, http.StatusOK, do(r, request(http.MethodGet, nil, "X-API-Key", "b")).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, request(http.MethodGet, nil, "X-API-Key", "a")).Code)
	assert.Equal(t, http.StatusOK, do(r, request(http.MethodGet, nil, "X-API-Key", "a", "X-Internal", "1")).Code)
}

func TestRateLimitLimiterError(t *testing.T) {
	t.Parallel()

	r := newRouter(ok, middleware.RateLimit(middleware.RateLimitConfig{Limiter: brokenLimiter{}}))

	w := do(r, request(http.MethodGet, nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "redis down")
}

func TestRateLimitRequiresLimiter(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { middleware.RateLimit(middleware.RateLimitConfig{}) })
}

func TestRateLimitKeyExtractors(t *testing.T) {
	t.Parallel()

	spoofed := func(r http.Handler, n int) *httptest.ResponseRecorder {
		return do(r, request(http.MethodGet, nil, "X-Forwarded-For", "198.51.100."+strconv.Itoa(n)))
	}

	t.Run("default trusts forwarded header", func(t *testing.T) {
		r := newRouter(ok, middleware.RateLimit(middleware.RateLimitConfig{Limiter: newLimiter(t, 1)}))
		assert.Equal(t, http.StatusOK, spoofed(r, 1).Code)
		assert.Equal(t, http.StatusOK, spoofed(r, 2).Code)
	})

	t.Run("remote addr ignores forwarded header", func(t *testing.T) {
		r := newRouter(ok, middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:      newLimiter(t, 1),
			KeyExtractor: middleware.RemoteAddrKey,
		}))
		assert.Equal(t, http.StatusOK, spoofed(r, 1).Code)
		assert.Equal(t, http.StatusTooManyRequests, spoofed(r, 2).Code)
	})
}
