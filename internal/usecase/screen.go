package usecase

import (
	"context"
	"sync"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	"SwingSignal/internal/services/risk"
	applogger "SwingSignal/pkg/logger"
)

// ScreenUseCase analyzes a symbol list with bounded concurrency and
// allocates capital across the buy candidates.
type ScreenUseCase struct {
	analyze     *AnalyzeUseCase
	publisher   domrepo.SignalPublisher
	concurrency int
	log         *applogger.Logger
}

// NewScreenUseCase builds the screener. publisher may be nil.
func NewScreenUseCase(analyze *AnalyzeUseCase, publisher domrepo.SignalPublisher, concurrency int, log *applogger.Logger) *ScreenUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ScreenUseCase{analyze: analyze, publisher: publisher, concurrency: concurrency, log: log}
}

type ScreenParams struct {
	Symbols   []string
	Mode      string
	Timeframe string
	Horizon   int
	Capital   float64
}

// Screen never fails because of a single symbol; per-symbol failures are
// reported in the result. Results keep the input order.
func (uc *ScreenUseCase) Screen(ctx context.Context, p ScreenParams) (*models.ScreenResult, error) {
	symbols := dedupe(p.Symbols)
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}

	type outcome struct {
		res *models.AnalysisResult
		err error
	}
	outcomes := make([]outcome, len(symbols))

	sem := make(chan struct{}, uc.concurrency)
	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				outcomes[i] = outcome{err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			res, _, err := uc.analyze.analyze(ctx, AnalyzeParams{
				Symbol:    sym,
				Mode:      p.Mode,
				Timeframe: p.Timeframe,
				Horizon:   p.Horizon,
			})
			outcomes[i] = outcome{res: res, err: err}
		}(i, sym)
	}
	wg.Wait()

	out := &models.ScreenResult{
		Mode:      string(domrepo.NormalizeRiskMode(p.Mode)),
		Timeframe: string(domrepo.NormalizeTimeframe(p.Timeframe)),
		Errors:    map[string]string{},
	}
	var candidates []models.Candidate
	var signals []models.DailySignal
	for i, o := range outcomes {
		if o.err != nil {
			out.Errors[symbols[i]] = o.err.Error()
			uc.log.Debug("screen symbol failed", applogger.String("symbol", symbols[i]), applogger.Error(o.err))
			continue
		}
		out.Results = append(out.Results, o.res)
		signals = append(signals, o.res.Signal())
		candidates = append(candidates, models.Candidate{
			Symbol:         o.res.Symbol,
			Recommendation: o.res.Recommendation,
			Confidence:     o.res.Score.Confidence,
			Entry:          o.res.Price,
			RiskReward:     o.res.RiskReward,
		})
	}
	if len(out.Errors) == 0 {
		out.Errors = nil
	}
	out.Allocation = risk.Allocate(p.Capital, candidates)

	if uc.publisher != nil && len(signals) > 0 {
		if err := uc.publisher.PublishBatch(ctx, signals); err != nil {
			uc.log.Warn("screen signal publish failed", applogger.Int("signals", len(signals)), applogger.Error(err))
		}
	}
	return out, nil
}

func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = domrepo.NormalizeSymbol(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
