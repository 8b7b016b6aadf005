package middleware

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/waypoint/core/handler"
)

const maxRequestIDLength = 128

// RequestIDConfig configures the request ID stage.
type RequestIDConfig struct {
	Skip func(ctx *handler.Context) bool
	// Generator replaces the id assigned by the router. Default keeps it.
	Generator func() string
	// HeaderName is read when UseExisting is set and always written to the
	// response. Default "X-Request-ID".
	HeaderName string
	// UseExisting accepts a well-formed incoming id instead of a new one.
	UseExisting bool
}

// RequestID echoes the request id in the X-Request-ID response header.
func RequestID() handler.BeforeFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig sets ctx.RequestID according to cfg and echoes it
// in the response header.
func RequestIDWithConfig(cfg RequestIDConfig) handler.BeforeFunc {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}

	return func(ctx *handler.Context, next handler.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			next(ctx)
			return nil
		}

		id := ctx.RequestID
		if cfg.Generator != nil {
			id = cfg.Generator()
		}
		if cfg.UseExisting {
			if incoming := ctx.Header(cfg.HeaderName); validRequestID(incoming) {
				id = incoming
			}
		}
		if id == "" {
			id = uuid.NewString()
		}

		ctx.RequestID = id
		ctx.Reply.SetHeader(cfg.HeaderName, id)

		next(ctx)
		return nil
	}
}

// validRequestID accepts short printable ASCII ids.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
