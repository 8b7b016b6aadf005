// Package handler defines the request pipeline vocabulary shared by the router
// and by middleware: the per-request Context, the reply writer, and the
// function types for the four kinds of pipeline stages.
//
// # Pipeline Stages
//
// Every matched request runs through the same lifecycle:
//
//	before-chain → handler → after-chain → finally-chain
//
//	// Terminal handler, writes through ctx.Reply
//	type HandlerFunc func(ctx *Context) error
//
//	// Runs before the handler, must call next to proceed
//	type BeforeFunc func(ctx *Context, next Next) error
//
//	// Runs after a successful handler
//	type AfterFunc func(ctx *Context) error
//
//	// Runs exactly once per request with the captured error (or nil)
//	type FinallyFunc func(ctx *Context, err error) error
//
// # Before-Stages and the Continuation
//
// A before-stage advances the pipeline by calling next. It stops the pipeline
// either by returning an error, which is carried to the finally-chain, or by
// writing a response and returning ErrHalt:
//
//	func requireToken(ctx *handler.Context, next handler.Next) error {
//		token := ctx.Header("Authorization")
//		if token == "" {
//			ctx.Reply.Status(http.StatusUnauthorized).Text("missing token")
//			return handler.ErrHalt
//		}
//		ctx.State.Merge(handler.State{"token": token})
//		next(ctx)
//		return nil
//	}
//
// A stage that neither continues, fails, nor responds is reported to the
// finally-chain as ErrNoContinuation instead of leaving the request hanging.
//
// # Context
//
// Context carries normalized request metadata (lower-cased headers, client IP,
// request ID, path parameters, parsed query) and an additive State map. It
// implements context.Context by delegating to the request context, so it can be
// passed directly to storage or network calls:
//
//	func showUser(ctx *handler.Context) error {
//		user, err := users.Get(ctx, ctx.Param("id"))
//		if err != nil {
//			return err
//		}
//		return ctx.Reply.JSON(user)
//	}
//
// # Reply Writer
//
// Reply sends exactly one response. Headers are set only if absent, the status
// may be changed until the first send, and any later send returns
// ErrResponseSent without touching the connection:
//
//	ctx.Reply.Status(http.StatusCreated).SetHeader("Location", "/users/42")
//	return ctx.Reply.JSON(user)
//
// # Errors
//
// Errors raised by stages reach finally-stages wrapped in *StageError, which
// records the stage and chain position; recovered panics arrive as
// *PanicError. Both unwrap, so errors.Is and errors.As see the original error.
package handler
