package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/edu-platform/campus-timetable/pkg/errors"
)

// cacheStore is the subset of CacheRepository the context cache needs.
// Grounded on internal/repository.CacheRepository's Get/Set pair.
type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ContextCache memoizes a loaded SolveContext in Redis so a retried solve
// for the same (career, term, shift, period, weekday mask) skips the Input
// Loader's repository round-trips.
type ContextCache struct {
	store  cacheStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewContextCache wires a cache store with a TTL. A nil store disables
// caching entirely; every call becomes a no-op miss.
func NewContextCache(store cacheStore, ttl time.Duration, logger *zap.Logger) *ContextCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &ContextCache{store: store, ttl: ttl, logger: logger}
}

func contextCacheKey(req Request) string {
	return fmt.Sprintf("timetable:solve-context:%s:%d:%s:%s:%v", req.CareerID, req.TermIndex, req.Shift, req.AcademicPeriod, req.Weekdays)
}

// Load returns a cached SolveContext for req, or ok=false on a miss or when
// caching is disabled.
func (c *ContextCache) Load(ctx context.Context, req Request) (*SolveContext, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}

	var sc SolveContext
	err := c.store.Get(ctx, contextCacheKey(req), &sc)
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) && c.logger != nil {
			c.logger.Warn("context cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return &sc, true
}

// Store saves sc under req's key. Failures are logged, never surfaced: the
// cache is a latency optimization, not a correctness dependency.
func (c *ContextCache) Store(ctx context.Context, req Request, sc *SolveContext) {
	if c == nil || c.store == nil || sc == nil {
		return
	}
	if err := c.store.Set(ctx, contextCacheKey(req), sc, c.ttl); err != nil && c.logger != nil {
		c.logger.Warn("context cache write failed", zap.Error(err))
	}
}

// CachingLoader decorates an inputLoader with the context cache, serving a
// fresh Load only on a cache miss.
type CachingLoader struct {
	inner inputLoader
	cache *ContextCache
}

// NewCachingLoader wraps inner with cache. A nil cache makes this a
// pass-through.
func NewCachingLoader(inner inputLoader, cache *ContextCache) *CachingLoader {
	return &CachingLoader{inner: inner, cache: cache}
}

func (c *CachingLoader) Load(ctx context.Context, req Request) (*SolveContext, error) {
	if sc, ok := c.cache.Load(ctx, req); ok {
		// The cached instance carries the request that first loaded it;
		// this run's submitter, group label and solver options apply.
		sc.Request = req
		return sc, nil
	}

	sc, err := c.inner.Load(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Store(ctx, req, sc)
	return sc, nil
}
