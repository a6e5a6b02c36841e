package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	"SwingSignal/internal/services/backtest"
	"SwingSignal/internal/services/profiles"
	applogger "SwingSignal/pkg/logger"
	"SwingSignal/pkg/queue"
)

// JobTypeBacktest routes queued backtests to BacktestJob.
const JobTypeBacktest = "backtest.run"

// warmupCalendarDays covers backtest.WarmupBars trading days before the
// requested start.
const warmupCalendarDays = backtest.WarmupBars*7/5 + 10

// BacktestUseCase runs, stores and looks up backtests.
type BacktestUseCase struct {
	history   *HistoryUseCase
	book      *profiles.Book
	simulator *backtest.Simulator
	store     domrepo.BacktestStore
	queue     queue.Publisher
	metrics   domrepo.Metrics
	timeout   time.Duration
	log       *applogger.Logger
}

// NewBacktestUseCase builds the use case. store and q may be nil, which
// disables persistence and asynchronous runs.
func NewBacktestUseCase(history *HistoryUseCase, book *profiles.Book, simulator *backtest.Simulator, store domrepo.BacktestStore, q queue.Publisher, metrics domrepo.Metrics, timeout time.Duration, log *applogger.Logger) *BacktestUseCase {
	return &BacktestUseCase{
		history:   history,
		book:      book,
		simulator: simulator,
		store:     store,
		queue:     q,
		metrics:   metrics,
		timeout:   timeout,
		log:       log,
	}
}

type BacktestParams struct {
	Symbol    string
	Mode      string
	Timeframe string
	Capital   float64
	From      time.Time
	To        time.Time
}

var (
	ErrQueueDisabled = errors.New("asynchronous backtests are not configured")
	ErrStoreDisabled = errors.New("backtest storage is not configured")
)

// Run executes a backtest synchronously and stores it when a store is
// configured. A run cut short by the timeout is returned as partial.
func (uc *BacktestUseCase) Run(ctx context.Context, p BacktestParams) (*models.BacktestResult, error) {
	return uc.execute(ctx, uuid.NewString(), p)
}

// Submit queues a backtest and returns its run id.
func (uc *BacktestUseCase) Submit(ctx context.Context, p BacktestParams) (string, error) {
	if uc.queue == nil {
		return "", ErrQueueDisabled
	}
	if err := uc.validate(p); err != nil {
		return "", err
	}
	job := models.BacktestJob{
		RunID:     uuid.NewString(),
		Symbol:    domrepo.NormalizeSymbol(p.Symbol),
		Mode:      p.Mode,
		Timeframe: p.Timeframe,
		Capital:   p.Capital,
		From:      p.From,
		To:        p.To,
	}
	if _, err := uc.queue.Enqueue(ctx, JobTypeBacktest, job); err != nil {
		return "", fmt.Errorf("enqueue backtest: %w", err)
	}
	uc.log.Info("backtest queued", applogger.String("run_id", job.RunID), applogger.String("symbol", job.Symbol))
	return job.RunID, nil
}

// Get returns a stored run and its trades.
func (uc *BacktestUseCase) Get(ctx context.Context, runID string) (*models.BacktestReport, error) {
	if uc.store == nil {
		return nil, ErrStoreDisabled
	}
	run, err := uc.store.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	trades, err := uc.store.ListTrades(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &models.BacktestReport{Run: run, Trades: trades}, nil
}

func (uc *BacktestUseCase) validate(p BacktestParams) error {
	if domrepo.NormalizeSymbol(p.Symbol) == "" {
		return ErrSymbolRequired
	}
	if !p.From.Before(p.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRange)
	}
	if _, err := uc.book.Timeframe(domrepo.NormalizeTimeframe(p.Timeframe)); err != nil {
		return err
	}
	_, err := uc.book.RiskMode(domrepo.NormalizeRiskMode(p.Mode))
	return err
}

func (uc *BacktestUseCase) execute(ctx context.Context, runID string, p BacktestParams) (*models.BacktestResult, error) {
	if err := uc.validate(p); err != nil {
		return nil, err
	}
	symbol := domrepo.NormalizeSymbol(p.Symbol)
	tf, _ := uc.book.Timeframe(domrepo.NormalizeTimeframe(p.Timeframe))
	mode, _ := uc.book.RiskMode(domrepo.NormalizeRiskMode(p.Mode))

	bars, err := uc.history.Load(ctx, symbol, p.From.AddDate(0, 0, -warmupCalendarDays), p.To, backtest.WarmupBars+1)
	if err != nil {
		uc.metrics.RecordError("history")
		return nil, err
	}

	runCtx := ctx
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := uc.simulator.Run(runCtx, bars, backtest.Config{
		Symbol:    symbol,
		Capital:   p.Capital,
		Start:     p.From,
		Timeframe: tf,
		Mode:      mode,
	})
	if err != nil {
		// the caller's own cancellation is an error; our timeout is a partial run
		if res == nil || ctx.Err() != nil || !errors.Is(err, context.DeadlineExceeded) {
			uc.metrics.RecordError("backtest")
			return nil, err
		}
		uc.log.Warn("backtest timed out, keeping partial result",
			applogger.String("run_id", runID), applogger.Int("days", len(res.Equity)))
	}
	res.RunID = runID
	uc.metrics.RecordLatency("backtest", time.Since(start).Seconds())
	uc.metrics.RecordBacktest(symbol, res.Metrics.TotalTrades, len(res.Skipped))

	if uc.store != nil {
		if err := uc.store.SaveRun(ctx, res); err != nil {
			uc.metrics.RecordError("backtest_store")
			return nil, fmt.Errorf("store backtest %s: %w", runID, err)
		}
	}
	return res, nil
}

// BacktestJob runs queued backtests.
type BacktestJob struct {
	uc *BacktestUseCase
}

var _ queue.Job = (*BacktestJob)(nil)

func NewBacktestJob(uc *BacktestUseCase) *BacktestJob {
	return &BacktestJob{uc: uc}
}

func (j *BacktestJob) Name() string { return "backtest" }

func (j *BacktestJob) Type() string { return JobTypeBacktest }

func (j *BacktestJob) Handle(ctx context.Context, payload json.RawMessage) error {
	job, err := queue.Decode[models.BacktestJob](payload)
	if err != nil {
		return queue.Permanent(err)
	}
	res, err := j.uc.execute(ctx, job.RunID, BacktestParams{
		Symbol:    job.Symbol,
		Mode:      job.Mode,
		Timeframe: job.Timeframe,
		Capital:   job.Capital,
		From:      job.From,
		To:        job.To,
	})
	if err != nil {
		if IsPrecondition(err) {
			err = queue.Permanent(err)
		}
		return fmt.Errorf("backtest run %s: %w", job.RunID, err)
	}
	j.uc.log.Info("backtest finished",
		applogger.String("run_id", job.RunID),
		applogger.Int("trades", res.Metrics.TotalTrades),
		applogger.Float64("return_pct", res.Metrics.TotalReturnPct))
	return nil
}
