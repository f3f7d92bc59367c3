// Package query is a key-based read-through cache for backend fetches. Pages
// fetch through it so independent queries (featured products, categories) run
// concurrently while concurrent requests for the same key collapse into one
// backend call. Entries expire by TTL; stores never read from here, only
// pages do.
package query

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"shopfront/internal/logging"
)

type entry struct {
	value   any
	expires time.Time
}

// Cache deduplicates and memoizes keyed fetches.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time
	log     *zap.Logger
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
		log:     logging.Get(logging.CategoryQuery),
	}
}

// Do returns the cached value for key if fresh, otherwise runs fn and caches
// its result for ttl. Concurrent calls for the same key share one fn
// invocation. Errors are never cached.
func (c *Cache) Do(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		c.log.Debug("cache hit", zap.String("key", key))
		return e.value, nil
	}
	c.mu.Unlock()

	ch := c.group.DoChan(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{value: value, expires: c.now().Add(ttl)}
		c.mu.Unlock()
		return value, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		// The shared fetch keeps running for other waiters; only this
		// caller gives up.
		return nil, ctx.Err()
	}
}

// Invalidate drops every entry whose key starts with prefix. An empty prefix
// drops everything.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Fetch is the typed wrapper around Cache.Do.
func Fetch[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	v, err := c.Do(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
