package middleware

import (
	"fmt"
	"math"
	"net"
	"strconv"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limit stage.
type RateLimitConfig struct {
	Skip func(ctx *handler.Context) bool

	// Limiter is required.
	Limiter ratelimiter.RateLimiter

	// KeyExtractor picks the bucket key. Default ctx.IP, which trusts the
	// first X-Forwarded-For entry: a client can pick a fresh bucket per
	// request by changing that header. Deployments not behind a proxy that
	// overwrites it should use RemoteAddrKey or their own extractor.
	KeyExtractor func(ctx *handler.Context) string

	// SetHeaders adds X-RateLimit-* headers, and Retry-After on denial.
	SetHeaders bool
}

// RemoteAddrKey keys buckets by the transport-level peer address and
// ignores forwarding headers.
func RemoteAddrKey(ctx *handler.Context) string {
	addr := ctx.Request().RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// RateLimit consumes one token per request and fails with
// response.ErrTooManyRequests when the bucket is empty. Limiter errors are
// returned as is and end up as 500.
func RateLimit(cfg RateLimitConfig) handler.BeforeFunc {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = func(ctx *handler.Context) string {
			return ctx.IP
		}
	}

	return func(ctx *handler.Context, next handler.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			next(ctx)
			return nil
		}

		result, err := cfg.Limiter.Allow(ctx, cfg.KeyExtractor(ctx))
		if err != nil {
			return fmt.Errorf("rate limit check: %w", err)
		}

		if cfg.SetHeaders {
			ctx.Reply.
				SetHeader("X-RateLimit-Limit", strconv.Itoa(result.Limit)).
				SetHeader("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining))).
				SetHeader("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		}

		if !result.Allowed() {
			retryAfter := int(math.Ceil(result.RetryAfter().Seconds()))
			if cfg.SetHeaders {
				ctx.Reply.SetHeader("Retry-After", strconv.Itoa(retryAfter))
			}
			return response.ErrTooManyRequests.WithDetails(map[string]any{"retry_after": retryAfter})
		}

		next(ctx)
		return nil
	}
}
