package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	domsvc "SwingSignal/internal/domain/service"
)

var now = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

// dailyBars returns n consecutive calendar-day bars ending at end.
func dailyBars(n int, end time.Time) models.Bars {
	bars := make(models.Bars, n)
	start := end.AddDate(0, 0, -(n - 1))
	for i := range bars {
		c := 100 + float64(i)*0.1
		bars[i] = models.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	return bars
}

type fakeStore struct {
	mu          sync.Mutex
	bars        map[string]models.Bars
	saved       map[string]int
	reads       int
	latestReads int
	getErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{bars: map[string]models.Bars{}, saved: map[string]int{}}
}

func (s *fakeStore) GetDailyBars(_ context.Context, symbol string, from, to time.Time) (models.Bars, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.getErr != nil {
		return nil, s.getErr
	}
	var out models.Bars
	for _, b := range s.bars[symbol] {
		if !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) GetLatestBars(_ context.Context, symbol string, n int) (models.Bars, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latestReads++
	all := s.bars[symbol]
	if len(all) > n {
		all = all[len(all)-n:]
	}
	return all, nil
}

func (s *fakeStore) SaveBars(_ context.Context, symbol string, bars models.Bars) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bars[symbol] = bars
	s.saved[symbol] += len(bars)
	return nil
}

type fakeUpstream struct {
	mu    sync.Mutex
	bars  map[string]models.Bars
	err   error
	calls int
}

func (u *fakeUpstream) GetDailyBars(_ context.Context, symbol string, _, _ time.Time) (models.Bars, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.err != nil {
		return nil, u.err
	}
	return u.bars[symbol], nil
}

type fakeAnalyzer struct {
	mu       sync.Mutex
	calls    int
	category models.Category
	err      error
}

var _ domsvc.Analyzer = (*fakeAnalyzer)(nil)

func (a *fakeAnalyzer) Analyze(bars models.Bars, tf models.TimeframeConfig, mode models.RiskModeConfig, opts domsvc.AnalyzeOptions) (*models.AnalysisResult, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	cat := a.category
	if cat == "" {
		cat = models.CategoryHold
	}
	res := &models.AnalysisResult{
		Symbol:         opts.Symbol,
		Timeframe:      tf.Name,
		Mode:           mode.Name,
		AsOf:           bars.Last().Date,
		Price:          bars.Last().Close,
		Recommendation: models.Recommendation{Label: string(cat), Category: cat},
		Score:          models.ScoreCard{Confidence: 60},
		RiskReward:     models.RiskReward{Ratio: 2, Minimum: 1.5, Valid: true},
	}
	if opts.Capital > 0 {
		res.Position = &models.PositionPlan{}
	}
	return res, nil
}

func (a *fakeAnalyzer) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

type fakePublisher struct {
	mu      sync.Mutex
	single  []models.DailySignal
	batches [][]models.DailySignal
}

func (p *fakePublisher) Publish(_ context.Context, s models.DailySignal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.single = append(p.single, s)
	return nil
}

func (p *fakePublisher) PublishBatch(_ context.Context, signals []models.DailySignal) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, signals)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeBacktestStore struct {
	mu   sync.Mutex
	runs map[string]*models.BacktestResult
}

func newFakeBacktestStore() *fakeBacktestStore {
	return &fakeBacktestStore{runs: map[string]*models.BacktestResult{}}
}

func (s *fakeBacktestStore) SaveRun(_ context.Context, res *models.BacktestResult) error {
	if res.RunID == "" {
		return errors.New("run id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[res.RunID] = res
	return nil
}

func (s *fakeBacktestStore) GetRun(_ context.Context, runID string) (*models.BacktestRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.runs[runID]
	if !ok {
		return nil, domrepo.ErrNotFound
	}
	return &models.BacktestRun{
		RunID:           res.RunID,
		Symbol:          res.Symbol,
		Mode:            res.Mode,
		Timeframe:       res.Timeframe,
		FromDate:        res.From,
		ToDate:          res.To,
		Skipped:         len(res.Skipped),
		BacktestMetrics: res.Metrics,
	}, nil
}

func (s *fakeBacktestStore) ListTrades(_ context.Context, runID string) ([]models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.runs[runID]
	if !ok {
		return nil, domrepo.ErrNotFound
	}
	return res.Trades, nil
}

type enqueued struct {
	msgType string
	payload json.RawMessage
}

type fakeQueue struct {
	msgs []enqueued
}

func (q *fakeQueue) Enqueue(_ context.Context, msgType string, payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	q.msgs = append(q.msgs, enqueued{msgType: msgType, payload: b})
	return "msg-1", nil
}
