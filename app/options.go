package app

import (
	"log/slog"

	"github.com/dmitrymomot/waypoint/core/router"
	"github.com/dmitrymomot/waypoint/core/server"
	"github.com/dmitrymomot/waypoint/pkg/ratelimiter"
)

// Option customizes an App. Options run after the environment config is
// loaded and before defaults are built.
type Option func(*App) error

// WithConfig replaces the environment config.
func WithConfig(cfg Config) Option {
	return func(app *App) error {
		app.config = cfg
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(app *App) error {
		if logger == nil {
			return ErrNilLogger
		}
		app.logger = logger
		return nil
	}
}

// WithRouter uses r as the root router. The standard stages are appended
// to it, so only routes registered later run through them.
func WithRouter(r *router.Router) Option {
	return func(app *App) error {
		if r == nil {
			return ErrNilRouter
		}
		app.router = r
		return nil
	}
}

func WithServer(s *server.Server) Option {
	return func(app *App) error {
		if s == nil {
			return ErrNilServer
		}
		app.server = s
		return nil
	}
}

// WithRateLimiterStore skips the memory/Redis store selection. A
// *ratelimiter.MemoryStore passed here still gets its cleanup loop run.
func WithRateLimiterStore(store ratelimiter.Store) Option {
	return func(app *App) error {
		if store == nil {
			return ErrNilStore
		}
		app.store = store
		return nil
	}
}
