package ignored

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"datencheck/internal/ignored/metrics"
	id "datencheck/pkg/domain"
	psync "datencheck/pkg/platform/sync"
)

const cacheKeyPrefix = "datencheck:ignored:"

// CachedStore puts a Redis read-through cache in front of another Store.
// Code sets are cached per person; writes go to the backing store first and
// then invalidate the person's entry. Redis failures degrade to the backing
// store.
type CachedStore struct {
	inner   Store
	client  goredis.Cmdable
	ttl     time.Duration
	group   singleflight.Group
	locks   *psync.ShardedMutex
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type CachedOption func(*CachedStore)

func WithCacheLogger(logger *slog.Logger) CachedOption {
	return func(c *CachedStore) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithCacheMetrics(m *metrics.Metrics) CachedOption {
	return func(c *CachedStore) {
		c.metrics = m
	}
}

func NewCachedStore(inner Store, client goredis.Cmdable, ttl time.Duration, opts ...CachedOption) *CachedStore {
	if inner == nil {
		panic("ignored: backing store is required")
	}
	if client == nil {
		panic("ignored: redis client is required")
	}
	c := &CachedStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
		locks:  psync.NewShardedMutex(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(tree id.TreeID, xref id.Xref) string {
	return cacheKeyPrefix + tree.String() + ":" + xref.String()
}

// encodeCodes joins codes with commas. The empty string is a cached empty set.
func encodeCodes(c Codes) string {
	return strings.Join(c.Sorted(), ",")
}

func decodeCodes(raw string) Codes {
	if raw == "" {
		return make(Codes)
	}
	return NewCodes(strings.Split(raw, ",")...)
}

func (c *CachedStore) IgnoredCodes(ctx context.Context, tree id.TreeID, xref id.Xref) (Codes, error) {
	key := cacheKey(tree, xref)
	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		c.hit()
		return decodeCodes(raw), nil
	case errors.Is(err, goredis.Nil):
	default:
		c.logger.WarnContext(ctx, "ignored cache read failed",
			"tree_id", tree,
			"xref", xref,
			"error", err,
		)
	}
	c.miss()

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.locks.RLock(key)
		defer c.locks.RUnlock(key)
		codes, err := c.inner.IgnoredCodes(ctx, tree, xref)
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, codes)
		return codes, nil
	})
	if err != nil {
		return nil, err
	}
	// Callers sharing a flight must not share a mutable map.
	return NewCodes(v.(Codes).Sorted()...), nil
}

func (c *CachedStore) set(ctx context.Context, key string, codes Codes) {
	if err := c.client.Set(ctx, key, encodeCodes(codes), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "ignored cache write failed", "key", key, "error", err)
	}
}

func (c *CachedStore) invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.WarnContext(ctx, "ignored cache invalidation failed", "key", key, "error", err)
	}
}

func (c *CachedStore) Ignore(ctx context.Context, rec Record) error {
	key := cacheKey(rec.TreeID, rec.Xref)
	c.locks.Lock(key)
	defer c.locks.Unlock(key)
	if err := c.inner.Ignore(ctx, rec); err != nil {
		return err
	}
	c.invalidate(ctx, key)
	return nil
}

func (c *CachedStore) Unignore(ctx context.Context, tree id.TreeID, xref id.Xref, code string) (bool, error) {
	key := cacheKey(tree, xref)
	c.locks.Lock(key)
	defer c.locks.Unlock(key)
	removed, err := c.inner.Unignore(ctx, tree, xref, code)
	if err != nil {
		return false, err
	}
	if removed {
		c.invalidate(ctx, key)
	}
	return removed, nil
}

// List always reads the backing store.
func (c *CachedStore) List(ctx context.Context, tree id.TreeID) ([]Record, error) {
	return c.inner.List(ctx, tree)
}

// Warm loads the code sets of xrefs into Redis in one pipeline, leaving
// existing entries alone. It is a no-op when the backing store cannot read in
// batches. Warm takes no per-person locks; an ignore racing a warm-up can be
// served stale until the TTL expires.
func (c *CachedStore) Warm(ctx context.Context, tree id.TreeID, xrefs []id.Xref) error {
	batch, ok := c.inner.(BatchReader)
	if !ok || len(xrefs) == 0 {
		return nil
	}
	byXref, err := batch.IgnoredCodesBatch(ctx, tree, xrefs)
	if err != nil {
		return fmt.Errorf("warm ignored cache: %w", err)
	}
	_, err = c.client.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for xref, codes := range byXref {
			p.SetNX(ctx, cacheKey(tree, xref), encodeCodes(codes), c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("warm ignored cache: %w", err)
	}
	return nil
}

func (c *CachedStore) hit() {
	if c.metrics != nil {
		c.metrics.CacheHits.Inc()
	}
}

func (c *CachedStore) miss() {
	if c.metrics != nil {
		c.metrics.CacheMisses.Inc()
	}
}

var _ Store = (*CachedStore)(nil)
