package middleware

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/waypoint/core/handler"
)

// SecurityHeadersConfig lists the header values to send. Empty values are
// not sent.
type SecurityHeadersConfig struct {
	Skip func(ctx *handler.Context) bool

	ContentTypeOptions        string
	FrameOptions              string
	StrictTransportSecurity   string
	ContentSecurityPolicy     string
	ReferrerPolicy            string
	PermissionsPolicy         string
	CrossOriginOpenerPolicy   string
	CrossOriginResourcePolicy string

	CustomHeaders map[string]string

	// IsDevelopment drops Strict-Transport-Security.
	IsDevelopment bool
}

var (
	// StrictSecurity suits JSON APIs that never render HTML.
	StrictSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "DENY",
		StrictTransportSecurity:   "max-age=63072000; includeSubDomains; preload",
		ContentSecurityPolicy:     "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:            "no-referrer",
		PermissionsPolicy:         "camera=(), geolocation=(), microphone=(), payment=(), usb=()",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
	}

	BalancedSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "SAMEORIGIN",
		StrictTransportSecurity:   "max-age=31536000; includeSubDomains",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		PermissionsPolicy:         "geolocation=(), microphone=(), camera=()",
		CrossOriginOpenerPolicy:   "same-origin-allow-popups",
		CrossOriginResourcePolicy: "cross-origin",
	}

	DevelopmentSecurity = SecurityHeadersConfig{
		ContentTypeOptions: "nosniff",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      true,
	}
)

// SecurityHeaders applies BalancedSecurity.
func SecurityHeaders() handler.BeforeFunc {
	return SecurityHeadersWithConfig(BalancedSecurity)
}

// SecurityHeadersWithConfig sets the configured headers on the reply
// unless a header of the same name is already present.
func SecurityHeadersWithConfig(cfg SecurityHeadersConfig) handler.BeforeFunc {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := map[string]string{
		"X-Content-Type-Options":       cfg.ContentTypeOptions,
		"X-Frame-Options":              cfg.FrameOptions,
		"Strict-Transport-Security":    cfg.StrictTransportSecurity,
		"Content-Security-Policy":      cfg.ContentSecurityPolicy,
		"Referrer-Policy":              cfg.ReferrerPolicy,
		"Permissions-Policy":           cfg.PermissionsPolicy,
		"Cross-Origin-Opener-Policy":   cfg.CrossOriginOpenerPolicy,
		"Cross-Origin-Resource-Policy": cfg.CrossOriginResourcePolicy,
	}
	maps.Copy(headers, cfg.CustomHeaders)
	maps.DeleteFunc(headers, func(_, v string) bool { return v == "" })
	names := slices.Sorted(maps.Keys(headers))

	return func(ctx *handler.Context, next handler.Next) error {
		if cfg.Skip == nil || !cfg.Skip(ctx) {
			for _, name := range names {
				ctx.Reply.SetHeader(name, headers[name])
			}
		}

		next(ctx)
		return nil
	}
}
