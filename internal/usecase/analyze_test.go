package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingSignal/internal/domain/models"
	"SwingSignal/internal/service/cache"
	"SwingSignal/internal/services/profiles"
	pkgcache "SwingSignal/pkg/cache"
	applogger "SwingSignal/pkg/logger"
	"SwingSignal/pkg/metrics"
)

type analyzeFixture struct {
	store     *fakeStore
	analyzer  *fakeAnalyzer
	publisher *fakePublisher
	memory    *pkgcache.MemoryCache
	uc        *AnalyzeUseCase
}

func newAnalyzeFixture(t *testing.T) *analyzeFixture {
	t.Helper()
	f := &analyzeFixture{
		store:     newFakeStore(),
		analyzer:  &fakeAnalyzer{category: models.CategoryBuy},
		publisher: &fakePublisher{},
		memory:    pkgcache.NewMemoryCache(),
	}
	t.Cleanup(func() { _ = f.memory.Close() })

	f.store.bars["AAPL"] = dailyBars(300, now)
	f.store.bars["MSFT"] = dailyBars(300, now)
	history := NewHistoryUseCase(f.store, nil, false, applogger.Nop())
	f.uc = NewAnalyzeUseCase(history, profiles.Default(), f.analyzer, metrics.Nop{}, applogger.Nop(),
		WithAnalysisCache(cache.NewAnalysisCache(f.memory), time.Minute),
		WithSignalPublisher(f.publisher),
		WithClock(func() time.Time { return now }),
	)
	return f
}

func TestAnalyze_CachesAndPublishesFreshResults(t *testing.T) {
	f := newAnalyzeFixture(t)
	ctx := context.Background()

	res, err := f.uc.Analyze(ctx, AnalyzeParams{Symbol: "aapl"})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, models.CategoryBuy, res.Recommendation.Category)

	again, err := f.uc.Analyze(ctx, AnalyzeParams{Symbol: "AAPL", Mode: "balanced", Timeframe: "short", Horizon: 365})
	require.NoError(t, err)
	assert.Equal(t, res.Price, again.Price)

	assert.Equal(t, 1, f.analyzer.Calls())
	require.Len(t, f.publisher.single, 1)
	assert.Equal(t, "AAPL", f.publisher.single[0].Symbol)

	ok, err := f.memory.Exists(ctx, cache.Key("AAPL", "balanced", "short", 365))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAnalyze_CapitalBypassesCache(t *testing.T) {
	f := newAnalyzeFixture(t)
	ctx := context.Background()

	_, err := f.uc.Analyze(ctx, AnalyzeParams{Symbol: "AAPL"})
	require.NoError(t, err)
	res, err := f.uc.Analyze(ctx, AnalyzeParams{Symbol: "AAPL", Capital: 50000})
	require.NoError(t, err)

	assert.NotNil(t, res.Position)
	assert.Equal(t, 2, f.analyzer.Calls())
}

func TestAnalyze_DifferentKeysMiss(t *testing.T) {
	f := newAnalyzeFixture(t)
	ctx := context.Background()

	_, err := f.uc.Analyze(ctx, AnalyzeParams{Symbol: "AAPL", Mode: "balanced"})
	require.NoError(t, err)
	_, err = f.uc.Analyze(ctx, AnalyzeParams{Symbol: "AAPL", Mode: "aggressive"})
	require.NoError(t, err)
	_, err = f.uc.Analyze(ctx, AnalyzeParams{Symbol: "AAPL", Mode: "balanced", Horizon: 200})
	require.NoError(t, err)

	assert.Equal(t, 3, f.analyzer.Calls())
}

func TestAnalyze_Preconditions(t *testing.T) {
	f := newAnalyzeFixture(t)
	ctx := context.Background()

	_, err := f.uc.Analyze(ctx, AnalyzeParams{})
	assert.ErrorIs(t, err, ErrSymbolRequired)

	_, err = f.uc.Analyze(ctx, AnalyzeParams{Symbol: "AAPL", Mode: "reckless"})
	assert.ErrorIs(t, err, profiles.ErrUnknownRiskMode)
	assert.True(t, IsPrecondition(err))

	_, err = f.uc.Analyze(ctx, AnalyzeParams{Symbol: "AAPL", Timeframe: "long"})
	assert.ErrorIs(t, err, profiles.ErrUnknownTimeframe)

	_, err = f.uc.Analyze(ctx, AnalyzeParams{Symbol: "NONE"})
	assert.ErrorIs(t, err, ErrInsufficientHistory)

	assert.Zero(t, f.analyzer.Calls())
	assert.Empty(t, f.publisher.single)
}
