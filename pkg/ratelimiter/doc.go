// Package ratelimiter implements token bucket rate limiting over pluggable
// storage.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request consumes tokens; a request that needs more
// tokens than are available is denied and consumes nothing.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       100,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	result, err := limiter.Allow(ctx, clientIP)
//	if err != nil {
//		return err
//	}
//	if !result.Allowed() {
//		// retry after result.RetryAfter()
//	}
//
// MemoryStore keeps buckets in process and drops idle ones while its Run
// loop is active. RedisStore keeps them in Redis, updated atomically by a
// Lua script, so several instances share one limit:
//
//	client, err := redis.Connect(ctx, redisCfg)
//	store, err := ratelimiter.NewRedisStore(client)
package ratelimiter
