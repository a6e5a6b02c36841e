package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SwingSignal/internal/domain/models"
	drepo "SwingSignal/internal/domain/repository"
	pkgcache "SwingSignal/pkg/cache"
)

const keyPrefix = "analysis"

// AnalysisCache stores analysis results in a pkg/cache backend.
type AnalysisCache struct {
	backend pkgcache.Service
}

var _ drepo.AnalysisCache = (*AnalysisCache)(nil)

func NewAnalysisCache(backend pkgcache.Service) *AnalysisCache {
	return &AnalysisCache{backend: backend}
}

// Key builds analysis:{symbol}:{mode}:{timeframe}:{horizon}.
func Key(symbol, mode, timeframe string, horizonDays int) string {
	return pkgcache.Key(keyPrefix, symbol, mode, timeframe, horizonDays)
}

func (c *AnalysisCache) Get(ctx context.Context, key string) (*models.AnalysisResult, bool, error) {
	var res models.AnalysisResult
	if err := c.backend.Get(ctx, key, &res); err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("analysis cache get %s: %w", key, err)
	}
	return &res, true, nil
}

func (c *AnalysisCache) Set(ctx context.Context, key string, res *models.AnalysisResult, ttl time.Duration) error {
	if res == nil {
		return nil
	}
	if err := c.backend.Set(ctx, key, res, ttl); err != nil {
		return fmt.Errorf("analysis cache set %s: %w", key, err)
	}
	return nil
}

// InvalidateSymbol drops every cached analysis of symbol.
func (c *AnalysisCache) InvalidateSymbol(ctx context.Context, symbol string) error {
	return c.backend.DeleteByPattern(ctx, pkgcache.Key(keyPrefix, symbol, "*"))
}
