package router

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Router during creation.
type Option func(*Router)

// WithPrefix sets the path the router's routes are registered under.
func WithPrefix(prefix string) Option {
	return func(rt *Router) {
		rt.prefix = prefix
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Router) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithNotFound replaces the response written when no route matches.
// The handler runs without any middleware.
func WithNotFound(h http.Handler) Option {
	return func(rt *Router) {
		if h != nil {
			rt.notFound = h
		}
	}
}

// WithRequestIDGenerator replaces the default UUID v4 request ID generator.
func WithRequestIDGenerator(fn func() string) Option {
	return func(rt *Router) {
		if fn != nil {
			rt.newRequestID = fn
		}
	}
}

// WithClock sets the time source used for request start timestamps.
func WithClock(now func() time.Time) Option {
	return func(rt *Router) {
		if now != nil {
			rt.now = now
		}
	}
}
