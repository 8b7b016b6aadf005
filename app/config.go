package app

import (
	"github.com/dmitrymomot/waypoint/core/server"
	"github.com/dmitrymomot/waypoint/pkg/ratelimiter"
)

// Config is the application configuration loaded from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"waypoint"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// RedisURL switches the rate limiter to the shared Redis store.
	// Empty keeps buckets in process memory.
	RedisURL string `env:"REDIS_URL"`

	// TrustProxy keys rate limit buckets by the X-Forwarded-For client.
	// Disable it when no proxy overwrites that header.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"true"`

	BodyLimit   int64    `env:"BODY_LIMIT" envDefault:"4194304"`
	CORSOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	Server    server.Config
	RateLimit ratelimiter.Config
}

// IsProduction reports whether the app runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
