// Package logger builds *slog.Logger values and provides attribute helpers
// with stable keys shared by the router, the middleware and the server.
//
// WithEnvironment picks a preset from the deployment name: development logs
// text at debug level with source locations, staging and production log
// JSON at info level. Every preset adds service and env attributes.
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "api"),
//		logger.WithLevel(logger.ParseLevel(os.Getenv("LOG_LEVEL"))),
//	)
//
// A ContextExtractor lifts one attribute out of the context passed to
// InfoContext, LogAttrs and friends. Handlers log with the *handler.Context
// they receive, so an extractor can add the request id to every line:
//
//	logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//		hc, ok := ctx.(*handler.Context)
//		if !ok {
//			return slog.Attr{}, false
//		}
//		return logger.RequestID(hc.RequestID), true
//	})
package logger
