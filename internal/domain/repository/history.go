package repository

import (
	"context"
	"time"

	"SwingSignal/internal/domain/models"
)

// HistoryProvider supplies daily bars for a symbol, oldest first.
type HistoryProvider interface {
	GetDailyBars(ctx context.Context, symbol string, from, to time.Time) (models.Bars, error)
}

// BarStore is a HistoryProvider that can also persist bars.
type BarStore interface {
	HistoryProvider
	GetLatestBars(ctx context.Context, symbol string, n int) (models.Bars, error)
	SaveBars(ctx context.Context, symbol string, bars models.Bars) error
}
