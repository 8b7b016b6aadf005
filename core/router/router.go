package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
)

// Router is a route registry with router-wide middleware. The root
// application router and mountable sub-routers share this type.
//
// A Router is built during a single-threaded setup phase. The first served
// request freezes it; from then on it is read-only and safe for concurrent use.
type Router struct {
	prefix  string
	before  []handler.BeforeFunc
	after   []handler.AfterFunc
	finally []handler.FinallyFunc
	tables  map[string]*routeTable
	methods []string // first-registration order, for Routes

	logger       *slog.Logger
	notFound     http.Handler
	newRequestID func() string
	now          func() time.Time

	serving atomic.Bool
}

// Route describes a single registered route.
type Route struct {
	Method  string
	Pattern string
}

// route is one registered (method, full path) entry. Its chains are private
// copies and never alias another route's chains.
type route struct {
	method  string
	matcher *Matcher
	handler handler.HandlerFunc
	before  []handler.BeforeFunc
	after   []handler.AfterFunc
	finally []handler.FinallyFunc
}

// routeTable holds the routes of one HTTP method.
type routeTable struct {
	static map[string]*route
	order  []*route
	index  map[string]int
}

var methods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodTrace:   {},
}

// New creates a router with the given options.
func New(opts ...Option) *Router {
	rt := &Router{
		tables:       make(map[string]*routeTable),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
		notFound:     http.HandlerFunc(defaultNotFound),
		newRequestID: func() string { return uuid.New().String() },
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(rt)
	}

	rt.prefix = Normalize(rt.prefix)
	return rt
}

// Prefix returns the path the router's routes are registered under.
func (rt *Router) Prefix() string {
	return rt.prefix
}

// UseBefore appends router-wide before-stages. Only routes registered after
// this call receive them.
func (rt *Router) UseBefore(mw ...handler.BeforeFunc) *Router {
	rt.checkOpen()
	for _, fn := range mw {
		if fn == nil {
			panic(fmt.Errorf("%w passed to UseBefore", ErrNilMiddleware))
		}
	}
	rt.before = append(rt.before, mw...)
	return rt
}

// UseAfter appends router-wide after-stages. Only routes registered after
// this call receive them.
func (rt *Router) UseAfter(mw ...handler.AfterFunc) *Router {
	rt.checkOpen()
	for _, fn := range mw {
		if fn == nil {
			panic(fmt.Errorf("%w passed to UseAfter", ErrNilMiddleware))
		}
	}
	rt.after = append(rt.after, mw...)
	return rt
}

// Finally appends router-wide finally-stages. Only routes registered after
// this call receive them.
func (rt *Router) Finally(mw ...handler.FinallyFunc) *Router {
	rt.checkOpen()
	for _, fn := range mw {
		if fn == nil {
			panic(fmt.Errorf("%w passed to Finally", ErrNilMiddleware))
		}
	}
	rt.finally = append(rt.finally, mw...)
	return rt
}

// Get registers a handler for GET requests.
func (rt *Router) Get(pattern string, h handler.HandlerFunc) *RouteScope {
	return rt.Handle(http.MethodGet, pattern, h)
}

// Head registers a handler for HEAD requests.
func (rt *Router) Head(pattern string, h handler.HandlerFunc) *RouteScope {
	return rt.Handle(http.MethodHead, pattern, h)
}

// Post registers a handler for POST requests.
func (rt *Router) Post(pattern string, h handler.HandlerFunc) *RouteScope {
	return rt.Handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (rt *Router) Put(pattern string, h handler.HandlerFunc) *RouteScope {
	return rt.Handle(http.MethodPut, pattern, h)
}

// Patch registers a handler for PATCH requests.
func (rt *Router) Patch(pattern string, h handler.HandlerFunc) *RouteScope {
	return rt.Handle(http.MethodPatch, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (rt *Router) Delete(pattern string, h handler.HandlerFunc) *RouteScope {
	return rt.Handle(http.MethodDelete, pattern, h)
}

// Options registers a handler for OPTIONS requests.
func (rt *Router) Options(pattern string, h handler.HandlerFunc) *RouteScope {
	return rt.Handle(http.MethodOptions, pattern, h)
}

// Handle registers h for method under the router's prefix joined with
// pattern. The route starts with copies of the router-wide chains as they are
// at this moment. Registering the same method and path again replaces the
// earlier route.
//
// Handle panics on an unknown method, a nil handler, an invalid pattern or a
// duplicate parameter name: a broken route table must stop the application
// from starting.
func (rt *Router) Handle(method string, pattern string, h handler.HandlerFunc) *RouteScope {
	rt.checkOpen()

	method = strings.ToUpper(method)
	if _, ok := methods[method]; !ok {
		panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
	}
	if h == nil {
		panic(fmt.Errorf("%w for %s %s", ErrNilHandler, method, pattern))
	}

	m, err := Compile(Join(rt.prefix, pattern))
	if err != nil {
		panic(err)
	}

	r := &route{
		method:  method,
		matcher: m,
		handler: h,
		before:  slices.Clone(rt.before),
		after:   slices.Clone(rt.after),
		finally: slices.Clone(rt.finally),
	}
	rt.insert(r)

	return &RouteScope{router: rt, route: r}
}

// Routes returns all registered routes, grouped by method in the order the
// methods were first used and by registration order within a method.
func (rt *Router) Routes() []Route {
	var out []Route
	for _, method := range rt.methods {
		for _, r := range rt.tables[method].order {
			out = append(out, Route{Method: method, Pattern: r.matcher.Pattern()})
		}
	}
	return out
}

// insert stores r, replacing any route with the same method and path in place.
func (rt *Router) insert(r *route) {
	t, ok := rt.tables[r.method]
	if !ok {
		t = &routeTable{
			static: make(map[string]*route),
			index:  make(map[string]int),
		}
		rt.tables[r.method] = t
		rt.methods = append(rt.methods, r.method)
	}

	pattern := r.matcher.Pattern()
	if i, exists := t.index[pattern]; exists {
		rt.logger.Debug("route replaced",
			logger.Component("router"),
			logger.Method(r.method),
			logger.Path(pattern),
		)
		t.order[i] = r
	} else {
		t.index[pattern] = len(t.order)
		t.order = append(t.order, r)
	}

	if r.matcher.Static() {
		t.static[pattern] = r
	} else {
		delete(t.static, pattern)
	}
}

// lookup finds the route for method and a normalized path. Parameter-free
// routes match first; parameterised routes are tried in registration order.
func (rt *Router) lookup(method, path string) (*route, map[string]string) {
	t, ok := rt.tables[method]
	if !ok {
		return nil, nil
	}

	if r, ok := t.static[path]; ok {
		return r, nil
	}

	for _, r := range t.order {
		if r.matcher.Static() {
			continue
		}
		if params, ok := r.matcher.Match(path); ok {
			return r, params
		}
	}
	return nil, nil
}

func (rt *Router) checkOpen() {
	if rt.serving.Load() {
		panic(ErrRouterFrozen)
	}
}

// RouteScope attaches middleware to a single route.
type RouteScope struct {
	router *Router
	route  *route
}

// Before appends before-stages to this route only.
func (s *RouteScope) Before(mw ...handler.BeforeFunc) *RouteScope {
	s.router.checkOpen()
	for _, fn := range mw {
		if fn == nil {
			panic(fmt.Errorf("%w passed to Before", ErrNilMiddleware))
		}
	}
	s.route.before = append(s.route.before, mw...)
	return s
}

// After appends after-stages to this route only.
func (s *RouteScope) After(mw ...handler.AfterFunc) *RouteScope {
	s.router.checkOpen()
	for _, fn := range mw {
		if fn == nil {
			panic(fmt.Errorf("%w passed to After", ErrNilMiddleware))
		}
	}
	s.route.after = append(s.route.after, mw...)
	return s
}

// Finally appends finally-stages to this route only.
func (s *RouteScope) Finally(mw ...handler.FinallyFunc) *RouteScope {
	s.router.checkOpen()
	for _, fn := range mw {
		if fn == nil {
			panic(fmt.Errorf("%w passed to Finally", ErrNilMiddleware))
		}
	}
	s.route.finally = append(s.route.finally, mw...)
	return s
}

// Done returns the router the route belongs to.
func (s *RouteScope) Done() *Router {
	return s.router
}
