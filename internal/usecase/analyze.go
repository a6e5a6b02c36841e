package usecase

import (
	"context"
	"time"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	domsvc "SwingSignal/internal/domain/service"
	"SwingSignal/internal/service/cache"
	"SwingSignal/internal/services/profiles"
	applogger "SwingSignal/pkg/logger"
)

const DefaultHorizonDays = 365

// AnalyzeUseCase runs the live analysis for one symbol.
type AnalyzeUseCase struct {
	history   *HistoryUseCase
	book      *profiles.Book
	analyzer  domsvc.Analyzer
	cache     domrepo.AnalysisCache
	publisher domrepo.SignalPublisher
	metrics   domrepo.Metrics
	cacheTTL  time.Duration
	now       func() time.Time
	log       *applogger.Logger
}

type AnalyzeOption func(*AnalyzeUseCase)

// WithAnalysisCache enables result caching for ttl.
func WithAnalysisCache(c domrepo.AnalysisCache, ttl time.Duration) AnalyzeOption {
	return func(uc *AnalyzeUseCase) {
		uc.cache = c
		uc.cacheTTL = ttl
	}
}

// WithSignalPublisher publishes a DailySignal for every fresh analysis.
func WithSignalPublisher(p domrepo.SignalPublisher) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.publisher = p }
}

func WithClock(now func() time.Time) AnalyzeOption {
	return func(uc *AnalyzeUseCase) { uc.now = now }
}

func NewAnalyzeUseCase(history *HistoryUseCase, book *profiles.Book, analyzer domsvc.Analyzer, metrics domrepo.Metrics, log *applogger.Logger, opts ...AnalyzeOption) *AnalyzeUseCase {
	uc := &AnalyzeUseCase{
		history:  history,
		book:     book,
		analyzer: analyzer,
		metrics:  metrics,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type AnalyzeParams struct {
	Symbol    string
	Mode      string
	Timeframe string
	Horizon   int
	Capital   float64
}

// Analyze returns the analysis of p.Symbol as of the latest bar. Requests
// with a capital are sized per caller and skip the cache.
func (uc *AnalyzeUseCase) Analyze(ctx context.Context, p AnalyzeParams) (*models.AnalysisResult, error) {
	res, fresh, err := uc.analyze(ctx, p)
	if err != nil {
		return nil, err
	}
	if fresh {
		uc.publish(ctx, res)
	}
	return res, nil
}

// analyze reports whether the result was computed rather than served from
// the cache.
func (uc *AnalyzeUseCase) analyze(ctx context.Context, p AnalyzeParams) (*models.AnalysisResult, bool, error) {
	start := uc.now()
	symbol := domrepo.NormalizeSymbol(p.Symbol)
	if symbol == "" {
		return nil, false, ErrSymbolRequired
	}
	tfKey := domrepo.NormalizeTimeframe(p.Timeframe)
	modeKey := domrepo.NormalizeRiskMode(p.Mode)
	tf, err := uc.book.Timeframe(tfKey)
	if err != nil {
		return nil, false, err
	}
	mode, err := uc.book.RiskMode(modeKey)
	if err != nil {
		return nil, false, err
	}
	horizon := p.Horizon
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}

	key := cache.Key(symbol, string(modeKey), string(tfKey), horizon)
	useCache := uc.cache != nil && p.Capital <= 0
	if useCache {
		if res, ok, err := uc.cache.Get(ctx, key); err != nil {
			uc.log.Warn("analysis cache read failed", applogger.String("key", key), applogger.Error(err))
		} else if ok {
			return res, false, nil
		}
	}

	to := uc.now().UTC()
	from := to.AddDate(0, 0, -horizon)
	bars, err := uc.history.Load(ctx, symbol, from, to, 0)
	if err != nil {
		uc.metrics.RecordError("history")
		return nil, false, err
	}

	res, err := uc.analyzer.Analyze(bars, tf, mode, domsvc.AnalyzeOptions{Symbol: symbol, Capital: p.Capital})
	if err != nil {
		uc.metrics.RecordError("analyze")
		return nil, false, err
	}
	uc.metrics.RecordAnalysis(mode.Name, string(res.Recommendation.Category))
	uc.metrics.RecordLatency("analyze", uc.now().Sub(start).Seconds())

	if useCache {
		if err := uc.cache.Set(ctx, key, res, uc.cacheTTL); err != nil {
			uc.log.Warn("analysis cache write failed", applogger.String("key", key), applogger.Error(err))
		}
	}
	return res, true, nil
}

func (uc *AnalyzeUseCase) publish(ctx context.Context, res *models.AnalysisResult) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, res.Signal()); err != nil {
		uc.metrics.RecordError("publish")
		uc.log.Warn("signal publish failed", applogger.String("symbol", res.Symbol), applogger.Error(err))
	}
}
