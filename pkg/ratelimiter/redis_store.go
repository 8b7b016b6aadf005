package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript refills and consumes a bucket stored as a hash with the
// fields tokens and refill (unix milliseconds) in one atomic step.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local want = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refill')
local tokens = tonumber(state[1])
local refill = tonumber(state[2])
if tokens == nil or refill == nil then
	tokens = capacity
	refill = now
end

local intervals = math.floor((now - refill) / interval)
if intervals > 0 then
	intervals = math.min(intervals, math.floor(capacity / rate) + 1)
	tokens = math.min(tokens + intervals * rate, capacity)
	refill = refill + intervals * interval
	if tokens == capacity then
		refill = now
	end
end

local remaining
if tokens < want then
	remaining = tokens - want
else
	tokens = tokens - want
	remaining = tokens
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'refill', refill)
redis.call('PEXPIRE', KEYS[1], ttl)
return {remaining, refill + interval}
`)

// RedisClient is the subset of the go-redis client used by RedisStore.
// *redis.Client, *redis.ClusterClient and *redis.Ring all satisfy it.
type RedisClient interface {
	redis.Scripter
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps buckets in Redis so that several instances share limits.
type RedisStore struct {
	client RedisClient
	prefix string
	now    func() time.Time
}

var _ Store = (*RedisStore)(nil)

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the prefix of bucket keys. Default "ratelimit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.prefix = prefix
	}
}

// WithRedisStoreClock replaces time.Now. Instances sharing a store should
// have reasonably synchronized clocks.
func WithRedisStoreClock(now func() time.Time) RedisStoreOption {
	return func(rs *RedisStore) {
		if now != nil {
			rs.now = now
		}
	}
}

// NewRedisStore creates a store over client.
func NewRedisStore(client RedisClient, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, ErrNilStore
	}

	rs := &RedisStore{
		client: client,
		prefix: "ratelimit:",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs, nil
}

// Key returns the Redis key used for a bucket.
func (rs *RedisStore) Key(key string) string {
	return rs.prefix + key
}

// ConsumeTokens implements Store.
func (rs *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	interval := cfg.RefillInterval.Milliseconds()
	if interval <= 0 {
		return 0, time.Time{}, fmt.Errorf("%w: refill interval below one millisecond", ErrInvalidConfig)
	}

	refills := int64((cfg.Capacity + cfg.RefillRate - 1) / cfg.RefillRate)
	ttl := (refills + 1) * interval

	out, err := consumeScript.Run(ctx, rs.client, []string{rs.Key(key)},
		cfg.Capacity, cfg.RefillRate, interval, rs.now().UnixMilli(), tokens, ttl,
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("consume tokens for %q: %w", key, err)
	}
	if len(out) != 2 {
		return 0, time.Time{}, fmt.Errorf("consume tokens for %q: unexpected reply %v", key, out)
	}

	return int(out[0]), time.UnixMilli(out[1]), nil
}

// Reset implements Store.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.Key(key)).Err(); err != nil {
		return fmt.Errorf("reset bucket %q: %w", key, err)
	}
	return nil
}
