package middleware

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
)

// DefaultBodyLimit is 4 MB.
const DefaultBodyLimit int64 = 4 << 20

// BodyLimitConfig configures the request body limit stage.
type BodyLimitConfig struct {
	Skip func(ctx *handler.Context) bool

	// MaxSize in bytes. Default DefaultBodyLimit.
	MaxSize int64

	// ContentTypeLimit overrides MaxSize per media type,
	// e.g. {"multipart/form-data": 32 << 20}.
	ContentTypeLimit map[string]int64
}

// BodyLimit limits request bodies to DefaultBodyLimit.
func BodyLimit() handler.BeforeFunc {
	return BodyLimitWithConfig(BodyLimitConfig{})
}

// BodyLimitWithSize limits request bodies to maxSize bytes.
func BodyLimitWithSize(maxSize int64) handler.BeforeFunc {
	return BodyLimitWithConfig(BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig rejects requests whose declared Content-Length is too
// large with response.ErrRequestEntityTooLarge, and caps the body reader
// for requests that do not declare one.
func BodyLimitWithConfig(cfg BodyLimitConfig) handler.BeforeFunc {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultBodyLimit
	}

	return func(ctx *handler.Context, next handler.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			next(ctx)
			return nil
		}

		req := ctx.Request()
		limit := cfg.MaxSize
		if len(cfg.ContentTypeLimit) > 0 {
			if mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type")); err == nil {
				if l, ok := cfg.ContentTypeLimit[mediaType]; ok {
					limit = l
				}
			}
		}

		if req.ContentLength > limit {
			return response.ErrRequestEntityTooLarge.
				WithMessage(fmt.Sprintf("request body too large: %s, limit %s", formatBytes(req.ContentLength), formatBytes(limit))).
				WithDetails(map[string]any{"limit": limit, "size": req.ContentLength})
		}

		if req.Body != nil && req.Body != http.NoBody {
			req.Body = http.MaxBytesReader(nil, req.Body, limit)
		}

		next(ctx)
		return nil
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
