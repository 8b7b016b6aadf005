package handler

// HandlerFunc is the terminal request-processing function of a route.
// It writes its response through ctx.Reply.
type HandlerFunc func(ctx *Context) error

// Next is the continuation handed to a before-stage. Calling it signals that
// the pipeline may advance; the context passed in becomes the context of the
// remaining stages. A nil context keeps the current one.
type Next func(ctx *Context)

// BeforeFunc runs prior to the handler. It must either call next, return an
// error, or return ErrHalt after writing a response.
type BeforeFunc func(ctx *Context, next Next) error

// AfterFunc runs after a handler completed without error.
type AfterFunc func(ctx *Context) error

// FinallyFunc runs exactly once per matched request, whatever happened
// before it. err is the captured stage error, or nil.
type FinallyFunc func(ctx *Context, err error) error
