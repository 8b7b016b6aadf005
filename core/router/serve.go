package router

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
)

// ServeHTTP implements http.Handler. The first call freezes the registry.
//
// A request without a matching route gets the not-found response and runs
// no middleware. A matched request runs its before-chain, handler and
// after-chain, stopping at the first failing stage, and then always runs its
// finally-chain once. If nothing was sent by then, a generic fallback
// response is written.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !rt.serving.Load() {
		rt.serving.Store(true)
	}

	// Patterns are stored decoded, so match on the decoded path. An encoded
	// separator becomes a real one here and can never end up inside a
	// parameter value.
	path := Normalize(r.URL.Path)

	rte, params := rt.lookup(r.Method, path)
	if rte == nil {
		rt.notFound.ServeHTTP(w, r)
		return
	}

	ctx := rt.newContext(w, r, path, rte, params)
	rt.execute(ctx, rte)
}

// execute drives the lifecycle of a matched request.
func (rt *Router) execute(ctx *handler.Context, rte *route) {
	ctx, proceed, err := runBefore(ctx, rte.before)

	if proceed {
		if herr := call(func() error { return rte.handler(ctx) }); herr != nil {
			err = &handler.StageError{Stage: handler.StageHandler, Err: herr}
		}
	}

	if proceed && err == nil {
		for i, fn := range rte.after {
			if aerr := call(func() error { return fn(ctx) }); aerr != nil {
				err = &handler.StageError{Stage: handler.StageAfter, Index: i, Err: aerr}
				break
			}
		}
	}

	rt.runFinally(ctx, rte.finally, err)

	if !ctx.Reply.Sent() {
		rt.fallback(ctx, err)
	}
}

// runBefore executes the before-chain. It returns the context to use for the
// rest of the pipeline, whether the handler should run, and the captured
// error if a stage failed.
func runBefore(ctx *handler.Context, chain []handler.BeforeFunc) (*handler.Context, bool, error) {
	for i, fn := range chain {
		continued := false
		next := func(c *handler.Context) {
			if continued {
				return
			}
			continued = true
			if c != nil {
				ctx = c
			}
		}

		err := call(func() error { return fn(ctx, next) })
		switch {
		case errors.Is(err, handler.ErrHalt):
			return ctx, false, nil
		case err != nil:
			return ctx, false, &handler.StageError{Stage: handler.StageBefore, Index: i, Err: err}
		case continued:
			continue
		case ctx.Reply.Sent():
			return ctx, false, nil
		default:
			return ctx, false, &handler.StageError{Stage: handler.StageBefore, Index: i, Err: handler.ErrNoContinuation}
		}
	}
	return ctx, true, nil
}

// runFinally executes every finally-stage with the captured error. Failing
// stages are logged and do not stop the remaining ones.
func (rt *Router) runFinally(ctx *handler.Context, chain []handler.FinallyFunc, err error) {
	for i, fn := range chain {
		ferr := call(func() error { return fn(ctx, err) })
		if ferr == nil {
			continue
		}

		attrs := append(logAttrs(ctx), logger.Stage(handler.StageFinally.String()), logger.Index(i), logger.Error(ferr))
		var pe *handler.PanicError
		if errors.As(ferr, &pe) {
			attrs = append(attrs, logger.Stack(pe.Stack))
		}
		rt.logger.LogAttrs(ctx, slog.LevelError, "finally stage failed", attrs...)
	}
}

// fallback writes the last-resort response when no stage replied.
func (rt *Router) fallback(ctx *handler.Context, err error) {
	status := http.StatusInternalServerError
	message := ErrNoResponseWritten.Error()

	if err != nil {
		status = fallbackStatus(err)
		message = http.StatusText(status)
		rt.logger.LogAttrs(ctx, slog.LevelError, "unhandled request error",
			append(logAttrs(ctx), logger.StatusCode(status), logger.Error(err))...)
	} else {
		rt.logger.LogAttrs(ctx, slog.LevelWarn, "no response written",
			logAttrs(ctx)...)
	}

	ctx.Reply.DelHeader("Content-Type").
		SetHeader("X-Content-Type-Options", "nosniff").
		Status(status)
	_ = ctx.Reply.Text(message)
}

// call runs fn and converts a panic into a *handler.PanicError.
func call(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &handler.PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	return fn()
}

func defaultNotFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "404 Not Found", http.StatusNotFound)
}
