package health

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
)

// Readiness runs every check in order and answers "READY" when all pass.
// The first failure is logged and returned as response.ErrServiceUnavailable
// without the cause.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(ctx *handler.Context) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				return response.ErrServiceUnavailable
			}
		}
		return ctx.Reply.Text("READY")
	}
}
