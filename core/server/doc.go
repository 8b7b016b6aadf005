// Package server runs an http.Handler with production timeouts and graceful
// shutdown. It is meant to be driven by an errgroup:
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	return g.Wait()
//
// Run returns nil once the context is cancelled and in-flight requests have
// drained, or the listener error if the server could not start.
package server
