// Package router dispatches HTTP requests through a staged middleware
// pipeline. Routes are registered per method with path patterns, and each
// route carries its own copy of the before, after and finally chains that
// were in effect when it was registered.
//
// # Patterns
//
// A pattern is a slash-separated path. A segment starting with ':' followed
// by letters, digits or underscores declares a named parameter; the rest of
// the segment is literal, so "/files/:name.json" captures "report" from
// "/files/report.json". A colon anywhere else is a literal character.
// Matching runs on the decoded request path, so literals may hold any
// characters and a parameter always matches one non-empty segment. An
// encoded "%2F" separates segments like "/" does.
//
// Paths are normalized before matching: repeated slashes collapse, the
// trailing slash is dropped and a leading slash is added.
//
//	r := router.New(router.WithPrefix("/api"))
//	r.Get("/users/:id", func(ctx *handler.Context) error {
//		return ctx.Reply.JSON(map[string]string{"id": ctx.Param("id")})
//	})
//
// # Matching
//
// Static patterns are looked up first. Parameterised patterns are then tried
// in registration order and the first match wins. Registering the same
// method and pattern again replaces the earlier route in place.
//
// # Middleware
//
// UseBefore, UseAfter and Finally append to the router-wide chains. Only
// routes registered afterwards see the addition. Handle returns a
// RouteScope for route-local stages:
//
//	r.Post("/orders", createOrder).
//		Before(requireAuth).
//		After(audit)
//
// # Mounting
//
// Mount copies every route of a child router into the parent under the
// parent's prefix. The parent's before-chain runs ahead of the child's,
// while the child's after and finally chains run ahead of the parent's.
// Changes made to either router after Mount are not shared.
//
//	api := router.New(router.WithPrefix("/api"))
//	users := router.New(router.WithPrefix("/users"))
//	users.Get("/:id", getUser)
//	api.Mount(users) // GET /api/users/:id
//
// # Lifecycle
//
// The first request freezes the router; further registration panics with
// ErrRouterFrozen. Unmatched requests get a plain 404 without running any
// stage. For matched requests the before-chain, handler and after-chain
// run until one fails, then the finally-chain runs exactly once with the
// captured error. When no stage sent a response, a text fallback is
// written with the status reported by the error, or 500.
package router
