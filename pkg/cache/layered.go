package cache

import (
	"context"
	"errors"
	"time"
)

// LayeredCache is a two level cache: L1 in memory, L2 in Redis.
type LayeredCache struct {
	l1    *MemoryCache
	l2    Service
	l1TTL time.Duration
}

var _ Service = (*LayeredCache)(nil)

// NewLayeredCache fronts l2 with a bounded memory cache.
func NewLayeredCache(l2 Service, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{
		MemoryMaxSize: 1000,
		MemoryTTL:     time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &LayeredCache{
		l1:    NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize), WithMemoryDefaultTTL(cfg.MemoryTTL)),
		l2:    l2,
		l1TTL: cfg.MemoryTTL,
	}
}

// Set writes through: L2 first, then L1.
func (lc *LayeredCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	if err := lc.l2.Set(ctx, key, data, expiration); err != nil {
		return err
	}
	_ = lc.l1.Set(ctx, key, data, lc.memoryTTL(expiration))
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string, dest interface{}) error {
	var data []byte
	if err := lc.l1.Get(ctx, key, &data); err == nil {
		return decode(data, dest)
	}

	var raw []byte
	if err := lc.l2.Get(ctx, key, &raw); err != nil {
		return err
	}
	_ = lc.l1.Set(ctx, key, raw, lc.l1TTL)
	return decode(raw, dest)
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.l1.Delete(ctx, keys...)
	return lc.l2.Delete(ctx, keys...)
}

func (lc *LayeredCache) DeleteByPattern(ctx context.Context, pattern string) error {
	_ = lc.l1.DeleteByPattern(ctx, pattern)
	return lc.l2.DeleteByPattern(ctx, pattern)
}

func (lc *LayeredCache) Exists(ctx context.Context, keys ...string) (bool, error) {
	if ok, _ := lc.l1.Exists(ctx, keys...); ok {
		return true, nil
	}
	return lc.l2.Exists(ctx, keys...)
}

// Locks live only in L2 so they are shared across processes.
func (lc *LayeredCache) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return lc.l2.TryLock(ctx, key, ttl)
}

func (lc *LayeredCache) Unlock(ctx context.Context, key string) error {
	return lc.l2.Unlock(ctx, key)
}

// Close closes both layers.
func (lc *LayeredCache) Close() error {
	return errors.Join(lc.l1.Close(), lc.l2.Close())
}

func (lc *LayeredCache) memoryTTL(expiration time.Duration) time.Duration {
	if expiration > 0 && expiration < lc.l1TTL {
		return expiration
	}
	return lc.l1TTL
}
