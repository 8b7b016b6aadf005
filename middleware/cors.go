package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// CORSConfig configures the CORS stage.
type CORSConfig struct {
	Skip func(ctx *handler.Context) bool

	// AllowOrigins lists accepted origins. Empty or "*" accepts any.
	AllowOrigins []string

	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool

	// MaxAge of a preflight result in seconds.
	MaxAge int

	// AllowOriginFunc takes precedence over AllowOrigins. It returns the
	// value for Access-Control-Allow-Origin and whether the origin is accepted.
	AllowOriginFunc func(origin string) (string, bool)
}

// CORS accepts any origin with the default methods and headers.
func CORS() handler.BeforeFunc {
	return CORSWithConfig(CORSConfig{})
}

// CORSWithConfig answers preflight requests itself and halts the pipeline;
// other requests get the CORS response headers and continue. A preflight
// route still has to exist (router.Options) for the stage to run.
func CORSWithConfig(cfg CORSConfig) handler.BeforeFunc {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}
	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
		}
	}

	allowMethods := strings.Join(cfg.AllowMethods, ",")
	allowHeaders := strings.Join(cfg.AllowHeaders, ",")
	exposeHeaders := strings.Join(cfg.ExposeHeaders, ",")
	anyOrigin := len(cfg.AllowOrigins) == 0 || slices.Contains(cfg.AllowOrigins, "*")

	resolve := func(origin string) (string, bool) {
		switch {
		case cfg.AllowOriginFunc != nil:
			return cfg.AllowOriginFunc(origin)
		case anyOrigin:
			return "*", true
		case slices.Contains(cfg.AllowOrigins, origin):
			return origin, true
		}
		return "", false
	}

	return func(ctx *handler.Context, next handler.Next) error {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			next(ctx)
			return nil
		}

		origin := ctx.Header("Origin")
		allowedOrigin, allowed := resolve(origin)
		reply := ctx.Reply

		requestMethod := ctx.Header("Access-Control-Request-Method")
		if ctx.Method == http.MethodOptions && requestMethod != "" {
			reply.SetHeader("Vary", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers")

			if !allowed || !slices.Contains(cfg.AllowMethods, requestMethod) {
				_ = reply.Status(http.StatusForbidden).Send(nil)
				return handler.ErrHalt
			}

			reply.SetHeader("Access-Control-Allow-Origin", allowedOrigin).
				SetHeader("Access-Control-Allow-Methods", allowMethods)
			if ctx.Header("Access-Control-Request-Headers") != "" {
				reply.SetHeader("Access-Control-Allow-Headers", allowHeaders)
			}
			if cfg.AllowCredentials && allowedOrigin != "*" {
				reply.SetHeader("Access-Control-Allow-Credentials", "true")
			}
			if cfg.MaxAge > 0 {
				reply.SetHeader("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
			}

			_ = reply.Status(http.StatusNoContent).Send(nil)
			return handler.ErrHalt
		}

		if allowed && origin != "" {
			reply.SetHeader("Access-Control-Allow-Origin", allowedOrigin).
				SetHeader("Vary", "Origin")
			if cfg.AllowCredentials && allowedOrigin != "*" {
				reply.SetHeader("Access-Control-Allow-Credentials", "true")
			}
			if exposeHeaders != "" {
				reply.SetHeader("Access-Control-Expose-Headers", exposeHeaders)
			}
		}

		next(ctx)
		return nil
	}
}

// AllowOriginSubdomain accepts domain and any of its subdomains, with or
// without a port.
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(domain, "*."), "."))
	suffix := "." + domain

	return func(origin string) (string, bool) {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return "", false
		}

		host := strings.ToLower(u.Hostname())
		if host == domain || strings.HasSuffix(host, suffix) {
			return origin, true
		}
		return "", false
	}
}
