// Package health provides handlers for liveness and readiness probes.
//
//	r.Get("/health/live", health.Liveness)
//	r.Get("/health/ready", health.Readiness(log, redis.Healthcheck(client)))
//	r.Get("/ping", health.NoContent)
//
// Dependency checks follow the func(context.Context) error signature and
// receive the request context.
package health
