package ratelimiter

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/waypoint/core/logger"
)

type memoryBucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*memoryBucket

	cleanupInterval time.Duration
	staleAfter      time.Duration
	logger          *slog.Logger
	now             func() time.Time

	running atomic.Bool
	created atomic.Int64
	removed atomic.Int64
}

var _ Store = (*MemoryStore)(nil)

// MemoryStoreStats is a snapshot of store counters.
type MemoryStoreStats struct {
	BucketsCreated int64
	BucketsRemoved int64
	ActiveBuckets  int
	IsRunning      bool
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often stale buckets are dropped by Run.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if interval > 0 {
			ms.cleanupInterval = interval
		}
	}
}

// WithStaleAfter sets how long an untouched bucket is kept.
func WithStaleAfter(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.staleAfter = d
		}
	}
}

func WithMemoryStoreLogger(log *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if log != nil {
			ms.logger = log
		}
	}
}

// WithMemoryStoreClock replaces time.Now.
func WithMemoryStoreClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if now != nil {
			ms.now = now
		}
	}
}

// NewMemoryStore creates an empty store. Stale buckets are only removed
// while Run is active.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*memoryBucket),
		cleanupInterval: 5 * time.Minute,
		staleAfter:      time.Hour,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(ms)
	}

	return ms
}

// ConsumeTokens implements Store.
func (ms *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &memoryBucket{tokens: cfg.Capacity, lastRefill: now}
		ms.buckets[key] = b
		ms.created.Add(1)
	}
	b.lastAccess = now

	if intervals := int64(now.Sub(b.lastRefill) / cfg.RefillInterval); intervals > 0 {
		// Cap before multiplying so long idle periods cannot overflow.
		intervals = min(intervals, int64(cfg.Capacity/cfg.RefillRate+1))
		b.tokens = min(b.tokens+int(intervals)*cfg.RefillRate, cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
		if b.tokens == cfg.Capacity {
			b.lastRefill = now
		}
	}

	resetAt := b.lastRefill.Add(cfg.RefillInterval)
	if b.tokens < tokens {
		return b.tokens - tokens, resetAt, nil
	}

	b.tokens -= tokens
	return b.tokens, resetAt, nil
}

// Reset implements Store.
func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.buckets, key)
	return nil
}

// Run returns a function for errgroup.Go that removes stale buckets every
// cleanup interval until ctx is cancelled.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		if !ms.running.CompareAndSwap(false, true) {
			return ErrAlreadyRunning
		}
		defer ms.running.Store(false)

		ms.logger.InfoContext(ctx, "rate limiter cleanup started",
			logger.Component("ratelimiter"),
			slog.Duration("interval", ms.cleanupInterval),
		)

		ticker := time.NewTicker(ms.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				ms.logger.Info("rate limiter cleanup stopped", logger.Component("ratelimiter"))
				return nil
			case <-ticker.C:
				if n := ms.RemoveStale(); n > 0 {
					ms.logger.DebugContext(ctx, "removed stale buckets",
						logger.Component("ratelimiter"),
						slog.Int("count", n),
					)
				}
			}
		}
	}
}

// RemoveStale drops buckets untouched for longer than the stale period and
// returns how many were removed.
func (ms *MemoryStore) RemoveStale() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	removed := 0
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > ms.staleAfter {
			delete(ms.buckets, key)
			removed++
		}
	}

	ms.removed.Add(int64(removed))
	return removed
}

// Stats returns a snapshot of the store counters.
func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.Lock()
	active := len(ms.buckets)
	ms.mu.Unlock()

	return MemoryStoreStats{
		BucketsCreated: ms.created.Load(),
		BucketsRemoved: ms.removed.Load(),
		ActiveBuckets:  active,
		IsRunning:      ms.running.Load(),
	}
}
