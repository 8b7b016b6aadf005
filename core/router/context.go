package router

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/pkg/clientip"
)

// newContext assembles the per-request context for a matched route.
func (rt *Router) newContext(w http.ResponseWriter, r *http.Request, path string, rte *route, params map[string]string) *handler.Context {
	ctx := handler.NewContext(w, r)
	if ctx.URL == "" {
		ctx.URL = r.URL.String()
	}
	ctx.Path = path
	ctx.Route = rte.matcher.Pattern()
	ctx.Headers = normalizeHeaders(r)
	ctx.IP = clientip.GetIP(r)
	ctx.RequestID = rt.newRequestID()
	ctx.StartedAt = rt.now()
	if params != nil {
		ctx.Params = params
	}

	q, err := parseQuery(r.URL.RawQuery)
	if err != nil {
		rt.logger.Debug("malformed query string",
			logger.Component("router"),
			logger.Path(path),
			logger.Query(r.URL.RawQuery),
			logger.Error(err),
		)
	}
	ctx.Query = q

	return ctx
}

// normalizeHeaders lower-cases header names and keeps the first value of
// each. The Host header, which net/http moves to r.Host, is restored.
func normalizeHeaders(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.Header)+1)
	for name, values := range r.Header {
		if len(values) == 0 {
			continue
		}
		out[strings.ToLower(name)] = values[0]
	}
	if _, ok := out["host"]; !ok && r.Host != "" {
		out["host"] = r.Host
	}
	return out
}

// parseQuery parses a form-encoded query string. Keys seen once map to a
// string, repeated keys map to a []string in order of appearance. On a
// malformed query the pairs that did parse are returned with the error.
func parseQuery(raw string) (handler.Query, error) {
	q := handler.Query{}
	if raw == "" {
		return q, nil
	}

	values, err := url.ParseQuery(raw)
	for key, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			q[key] = vs[0]
		default:
			q[key] = vs
		}
	}
	return q, err
}

// logAttrs returns the request attributes attached to router log lines.
func logAttrs(ctx *handler.Context) []slog.Attr {
	return []slog.Attr{
		logger.Component("router"),
		logger.RequestID(ctx.RequestID),
		logger.Method(ctx.Method),
		logger.Path(ctx.Path),
		logger.Route(ctx.Route),
	}
}
