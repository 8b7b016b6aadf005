package handler

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Context is the per-request object threaded through every pipeline stage.
// It is owned by the goroutine serving the request and must not be retained
// after the finally-chain returns.
type Context struct {
	Method    string
	URL       string // raw request URI, query included
	Path      string // normalized request path
	Route     string // pattern of the matched route
	Headers   map[string]string
	IP        string
	Cookies   map[string]string // nil unless a cookie-parsing stage ran
	RequestID string
	StartedAt time.Time
	Params    map[string]string
	Query     Query
	Body      any
	State     State
	Reply     *Reply

	req *http.Request
}

// NewContext returns a context bound to the given request and response sink.
// Callers fill in the remaining metadata.
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		Method: r.Method,
		URL:    r.RequestURI,
		Params: map[string]string{},
		Query:  Query{},
		State:  State{},
		Reply:  NewReply(w),
		req:    r,
	}
}

// Request returns the underlying *http.Request.
func (c *Context) Request() *http.Request {
	return c.req
}

// Param returns the path parameter by name.
func (c *Context) Param(name string) string {
	return c.Params[name]
}

// Header returns a request header by its case-insensitive name.
func (c *Context) Header(name string) string {
	return c.Headers[strings.ToLower(name)]
}

// Deadline delegates to the request context.
func (c *Context) Deadline() (time.Time, bool) {
	return c.req.Context().Deadline()
}

// Done delegates to the request context.
func (c *Context) Done() <-chan struct{} {
	return c.req.Context().Done()
}

// Err delegates to the request context.
func (c *Context) Err() error {
	return c.req.Context().Err()
}

// Value delegates to the request context.
func (c *Context) Value(key any) any {
	return c.req.Context().Value(key)
}

var _ context.Context = (*Context)(nil)
