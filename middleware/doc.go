// Package middleware provides pipeline stages for common cross-cutting
// concerns. Before-stages run ahead of the handler and call next to
// continue; finally-stages run once per request after everything else.
//
//	r := router.New()
//	r.UseBefore(
//		middleware.RequestID(),
//		middleware.SecurityHeaders(),
//		middleware.CORS(),
//		middleware.RateLimit(middleware.RateLimitConfig{Limiter: limiter}),
//		middleware.Cookies(),
//		middleware.BodyLimit(),
//		middleware.JSONBody(),
//	)
//	r.Finally(
//		response.ErrorResponder(log),
//		middleware.LoggingWithLogger(log),
//	)
//
// Stages that reject a request return a response.HTTPError, leaving the
// wire format to response.ErrorResponder. Header-setting stages use
// Reply.SetHeader, which never overwrites a header that is already set.
//
// Every config struct has a Skip func; when it returns true the stage
// only calls next.
package middleware
