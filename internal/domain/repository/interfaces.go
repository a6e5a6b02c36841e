package repository

import (
	"context"
	"errors"
	"time"

	"SwingSignal/internal/domain/models"
)

// ErrNotFound is returned by stores when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

// SignalPublisher pushes daily signals to the message bus.
type SignalPublisher interface {
	Publish(ctx context.Context, s models.DailySignal) error
	PublishBatch(ctx context.Context, signals []models.DailySignal) error
	Close() error
}

// BacktestStore persists finished backtest runs.
type BacktestStore interface {
	SaveRun(ctx context.Context, res *models.BacktestResult) error
	GetRun(ctx context.Context, runID string) (*models.BacktestRun, error)
	ListTrades(ctx context.Context, runID string) ([]models.Trade, error)
}

// AnalysisCache holds recent analysis results.
type AnalysisCache interface {
	Get(ctx context.Context, key string) (*models.AnalysisResult, bool, error)
	Set(ctx context.Context, key string, res *models.AnalysisResult, ttl time.Duration) error
}

type Metrics interface {
	RecordAnalysis(mode, category string)
	RecordBacktest(symbol string, trades, skipped int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
