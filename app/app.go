package app

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/waypoint/core/config"
	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/health"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
	"github.com/dmitrymomot/waypoint/core/server"
	"github.com/dmitrymomot/waypoint/integration/database/redis"
	"github.com/dmitrymomot/waypoint/middleware"
	"github.com/dmitrymomot/waypoint/pkg/ratelimiter"
)

// Probe routes registered on the root router, under its prefix if it has
// one. They bypass rate limiting.
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
)

// App is a runnable service built around the root router.
type App struct {
	config Config
	logger *slog.Logger
	router *router.Router
	server *server.Server
	store  ratelimiter.Store
	redis  *goredis.Client

	healthchecks []func(context.Context) error

	prepare sync.Once
}

// New loads Config from the environment, applies opts and builds every
// component that was not supplied through an option. The standard stages
// are installed on the router before New returns, so routes registered via
// Router afterwards run through them.
func New(ctx context.Context, opts ...Option) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = logger.New(
			logger.WithEnvironment(app.config.Env, app.config.AppName),
			logger.WithLevel(logger.ParseLevel(app.config.LogLevel)),
			logger.WithContextExtractors(requestIDExtractor),
		)
	}

	if app.store == nil {
		if err := app.initStore(ctx); err != nil {
			return nil, err
		}
	}

	limiter, err := ratelimiter.NewBucket(app.store, app.config.RateLimit)
	if err != nil {
		app.close()
		return nil, err
	}

	if app.router == nil {
		app.router = router.New(router.WithLogger(app.logger))
	}
	app.installStages(limiter)
	app.router.Get(LivenessPath, health.Liveness)
	app.router.Get(ReadinessPath, health.Readiness(app.logger, app.healthchecks...))

	if app.server == nil {
		srv, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			app.close()
			return nil, err
		}
		app.server = srv
	}

	return app, nil
}

// Config returns the effective configuration.
func (a *App) Config() Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Router returns the root router for route registration.
func (a *App) Router() *router.Router {
	return a.router
}

// Addr returns the server address, the bound one while running.
func (a *App) Addr() string {
	return a.server.Addr()
}

// Handler finalizes the route table and returns the root handler. Every
// pattern without an OPTIONS route gets one, so CORS preflight requests
// reach the middleware chain. The route table is frozen afterwards.
func (a *App) Handler() http.Handler {
	a.prepare.Do(a.registerOptions)
	return a.router
}

// Run serves until ctx is cancelled or a component fails, then releases
// the Redis connection if the app opened one.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(gctx, a.Handler()))
	if ms, ok := a.store.(*ratelimiter.MemoryStore); ok {
		g.Go(ms.Run(gctx))
	}

	a.logger.InfoContext(ctx, "application started",
		logger.Component("app"),
		slog.String("addr", a.config.Server.Addr),
		slog.String("env", a.config.Env),
	)

	err := g.Wait()
	if err != nil {
		a.logger.ErrorContext(ctx, "application stopped", logger.Component("app"), logger.Error(err))
		return err
	}

	a.logger.InfoContext(ctx, "application stopped", logger.Component("app"))
	return nil
}

func (a *App) initStore(ctx context.Context) error {
	if a.config.RedisURL == "" {
		a.store = ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(a.logger))
		return nil
	}

	client, err := redis.Connect(ctx, redis.Config{
		ConnectionURL:  a.config.RedisURL,
		RetryAttempts:  3,
		RetryInterval:  time.Second,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		return err
	}

	store, err := ratelimiter.NewRedisStore(client, ratelimiter.WithKeyPrefix(a.config.AppName+":ratelimit:"))
	if err != nil {
		_ = client.Close()
		return err
	}

	a.redis = client
	a.store = store
	a.healthchecks = append(a.healthchecks, redis.Healthcheck(client))
	return nil
}

func (a *App) installStages(limiter ratelimiter.RateLimiter) {
	liveness := router.Join(a.router.Prefix(), LivenessPath)
	readiness := router.Join(a.router.Prefix(), ReadinessPath)

	var keyExtractor func(*handler.Context) string
	if !a.config.TrustProxy {
		keyExtractor = middleware.RemoteAddrKey
	}

	security := middleware.DevelopmentSecurity
	if a.config.IsProduction() {
		security = middleware.StrictSecurity
	}

	a.router.UseBefore(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true}),
		middleware.SecurityHeadersWithConfig(security),
		middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: a.config.CORSOrigins}),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:      limiter,
			KeyExtractor: keyExtractor,
			SetHeaders:   true,
			Skip: func(ctx *handler.Context) bool {
				return ctx.Route == liveness || ctx.Route == readiness
			},
		}),
		middleware.Cookies(),
		middleware.BodyLimitWithSize(a.config.BodyLimit),
		middleware.JSONBody(),
	)
	a.router.Finally(
		response.ErrorResponder(a.logger),
		middleware.LoggingWithLogger(a.logger),
	)
}

func (a *App) registerOptions() {
	methods := make(map[string][]string)
	var patterns []string
	for _, r := range a.router.Routes() {
		if _, ok := methods[r.Pattern]; !ok {
			patterns = append(patterns, r.Pattern)
		}
		methods[r.Pattern] = append(methods[r.Pattern], r.Method)
	}

	// Routes reports full patterns while Options joins the router prefix
	// again, so register relative to the prefix.
	prefix := a.router.Prefix()
	for _, pattern := range patterns {
		if slices.Contains(methods[pattern], http.MethodOptions) {
			continue
		}
		relative := pattern
		if prefix != "/" {
			relative = strings.TrimPrefix(pattern, prefix)
		}
		allow := strings.Join(append(methods[pattern], http.MethodOptions), ", ")
		a.router.Options(relative, func(ctx *handler.Context) error {
			return ctx.Reply.Status(http.StatusNoContent).SetHeader("Allow", allow).Send(nil)
		})
	}
}

func (a *App) close() {
	if a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		a.logger.Error("failed to close redis client", logger.Component("app"), logger.Error(err))
	}
	a.redis = nil
}

// requestIDExtractor adds the request id to records logged with a
// *handler.Context.
func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	hc, ok := ctx.(*handler.Context)
	if !ok || hc.RequestID == "" {
		return slog.Attr{}, false
	}
	return logger.RequestID(hc.RequestID), true
}
