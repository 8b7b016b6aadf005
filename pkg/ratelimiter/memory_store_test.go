package ratelimiter_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var testConfig = ratelimiter.Config{Capacity: 5, RefillRate: 2, RefillInterval: time.Second}

func TestMemoryStoreConsumeAndRefill(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreClock(clock.Now))
	ctx := context.Background()

	remaining, resetAt, err := store.ConsumeTokens(ctx, "k", 5, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, clock.Now().Add(time.Second), resetAt)

	// Denied requests report the shortfall and consume nothing.
	remaining, _, err = store.ConsumeTokens(ctx, "k", 3, testConfig)
	require.NoError(t, err)
	assert.Equal(t, -3, remaining)

	clock.Advance(1500 * time.Millisecond)
	remaining, resetAt, err = store.ConsumeTokens(ctx, "k", 1, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
	// Partial intervals carry over to the next refill.
	assert.Equal(t, clock.Now().Add(500*time.Millisecond), resetAt)

	clock.Advance(time.Hour)
	remaining, _, err = store.ConsumeTokens(ctx, "k", 1, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 4, remaining, "refill is capped at capacity")
}

func TestMemoryStoreReset(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	ctx := context.Background()

	_, _, err := store.ConsumeTokens(ctx, "k", 5, testConfig)
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx, "k"))

	remaining, _, err := store.ConsumeTokens(ctx, "k", 1, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)
}

func TestMemoryStoreRemoveStale(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithMemoryStoreClock(clock.Now),
		ratelimiter.WithStaleAfter(time.Minute),
	)
	ctx := context.Background()

	_, _, _ = store.ConsumeTokens(ctx, "old", 1, testConfig)
	clock.Advance(2 * time.Minute)
	_, _, _ = store.ConsumeTokens(ctx, "fresh", 1, testConfig)

	assert.Equal(t, 1, store.RemoveStale())

	stats := store.Stats()
	assert.Equal(t, int64(2), stats.BucketsCreated)
	assert.Equal(t, int64(1), stats.BucketsRemoved)
	assert.Equal(t, 1, stats.ActiveBuckets)
	assert.False(t, stats.IsRunning)
}

func TestMemoryStoreRun(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(10 * time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- store.Run(ctx)() }()

	require.Eventually(t, func() bool { return store.Stats().IsRunning }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, store.Run(ctx)(), ratelimiter.ErrAlreadyRunning)

	cancel()
	assert.NoError(t, <-done)
	assert.False(t, store.Stats().IsRunning)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore()
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       100,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := range 200 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := limiter.Allow(context.Background(), "shared")
			if err == nil && res.Allowed() {
				allowed.Add(1)
			}
			_, _ = limiter.Allow(context.Background(), fmt.Sprintf("own-%d", i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowed.Load())
	assert.Equal(t, 201, store.Stats().ActiveBuckets)
}
