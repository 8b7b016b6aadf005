package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
)

// LoggingConfig configures the request logging stage.
type LoggingConfig struct {
	Skip func(ctx *handler.Context) bool

	// Logger defaults to a discard logger.
	Logger *slog.Logger

	// Level for successful requests. Client errors log at Warn and server
	// errors at Error regardless.
	Level slog.Level

	// SlowRequestThreshold raises successful requests to Warn. Default 5s.
	SlowRequestThreshold time.Duration

	// Component attribute. Default "http".
	Component string

	// Now replaces time.Now for latency measurement.
	Now func() time.Time
}

// LoggingWithLogger logs one line per request to log.
func LoggingWithLogger(log *slog.Logger) handler.FinallyFunc {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig returns a finally-stage that logs one line per request
// with method, path, route, status, size, latency and the captured error.
// Register it after the stage that writes error responses so that it sees
// the final status. When nothing was sent yet, the status is derived from
// the captured error.
func LoggingWithConfig(cfg LoggingConfig) handler.FinallyFunc {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return func(ctx *handler.Context, err error) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		latency := cfg.Now().Sub(ctx.StartedAt)
		status := ctx.Reply.StatusCode()
		if !ctx.Reply.Sent() {
			status = http.StatusInternalServerError
			if err != nil {
				status = response.FromError(err).Status
			}
		}

		attrs := []slog.Attr{
			logger.Component(cfg.Component),
			logger.Event("request"),
			logger.RequestID(ctx.RequestID),
			logger.Method(ctx.Method),
			logger.Path(ctx.Path),
			logger.Route(ctx.Route),
			logger.StatusCode(status),
			logger.BytesOut(int64(ctx.Reply.Size())),
			logger.Latency(latency),
			logger.ClientIP(ctx.IP),
			logger.UserAgent(ctx.Header("User-Agent")),
		}
		if err != nil {
			attrs = append(attrs, logger.Error(err))
		}

		level := cfg.Level
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		case latency > cfg.SlowRequestThreshold:
			level = slog.LevelWarn
			attrs = append(attrs, slog.Bool("slow", true))
		}

		cfg.Logger.LogAttrs(ctx, level, "request completed", attrs...)
		return nil
	}
}
