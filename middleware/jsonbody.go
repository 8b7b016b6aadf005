package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
)

// JSONBodyConfig configures the JSON body stage.
type JSONBodyConfig struct {
	Skip func(ctx *handler.Context) bool

	// New returns the value to decode into, usually a pointer to a struct.
	// Default decodes into map[string]any.
	New func(ctx *handler.Context) any

	// DisallowUnknownFields rejects objects with fields New's type lacks.
	DisallowUnknownFields bool

	// RequireJSON rejects bodies with a non-JSON Content-Type. By default
	// such bodies are left unread.
	RequireJSON bool
}

// JSONBody decodes JSON request bodies into ctx.Body as map[string]any.
func JSONBody() handler.BeforeFunc {
	return JSONBodyWithConfig(JSONBodyConfig{})
}

// JSONBodyWithConfig decodes JSON request bodies into ctx.Body. Requests
// without a body continue with a nil ctx.Body. Malformed JSON fails with
// response.ErrBadRequest and an oversized body with
// response.ErrRequestEntityTooLarge.
func JSONBodyWithConfig(cfg JSONBodyConfig) handler.BeforeFunc {
	if cfg.New == nil {
		cfg.New = func(*handler.Context) any { return &map[string]any{} }
	}

	return func(ctx *handler.Context, next handler.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			next(ctx)
			return nil
		}

		req := ctx.Request()
		if req.Body == nil || req.Body == http.NoBody || req.ContentLength == 0 {
			next(ctx)
			return nil
		}

		if !isJSON(req.Header.Get("Content-Type")) {
			if cfg.RequireJSON {
				return response.ErrUnsupportedMediaType.WithMessage("expected a JSON request body")
			}
			next(ctx)
			return nil
		}

		dst := cfg.New(ctx)
		dec := json.NewDecoder(req.Body)
		if cfg.DisallowUnknownFields {
			dec.DisallowUnknownFields()
		}

		if err := dec.Decode(dst); err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.Is(err, io.EOF):
				next(ctx)
				return nil
			case errors.As(err, &tooLarge):
				return response.ErrRequestEntityTooLarge.WithDetails(map[string]any{"limit": tooLarge.Limit})
			default:
				return response.ErrBadRequest.WithMessage("invalid JSON body").WithError(err)
			}
		}

		if m, ok := dst.(*map[string]any); ok {
			ctx.Body = *m
		} else {
			ctx.Body = dst
		}

		next(ctx)
		return nil
	}
}

// Body returns ctx.Body as T.
func Body[T any](ctx *handler.Context) (T, bool) {
	v, ok := ctx.Body.(T)
	return v, ok
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
