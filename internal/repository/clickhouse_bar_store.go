package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	pkgch "SwingSignal/pkg/clickhouse"
	applogger "SwingSignal/pkg/logger"
)

// BarSchema creates the daily bar table. ReplacingMergeTree keeps the latest
// write per (symbol, date), so re-fetching history is idempotent.
var BarSchema = []string{
	`CREATE DATABASE IF NOT EXISTS swingsignal`,
	`CREATE TABLE IF NOT EXISTS swingsignal.daily_bars (
		symbol      LowCardinality(String),
		date        Date,
		open        Float64,
		high        Float64,
		low         Float64,
		close       Float64,
		volume      Float64,
		inserted_at DateTime DEFAULT now()
	) ENGINE = ReplacingMergeTree(inserted_at)
	ORDER BY (symbol, date)`,
}

// CHBarStore implements repository.BarStore backed by ClickHouse.
type CHBarStore struct {
	db  *sql.DB
	log *applogger.Logger
}

var _ domrepo.BarStore = (*CHBarStore)(nil)

func NewCHBarStore(ch *pkgch.Client, log *applogger.Logger) *CHBarStore {
	return &CHBarStore{db: ch.DB(), log: log}
}

func (s *CHBarStore) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) (models.Bars, error) {
	const q = `
		SELECT date, open, high, low, close, volume
		FROM swingsignal.daily_bars FINAL
		WHERE symbol = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to)
	if err != nil {
		s.log.Error("clickhouse daily_bars query", applogger.String("symbol", symbol), applogger.Error(err))
		return nil, fmt.Errorf("get daily bars: %w", err)
	}
	defer rows.Close()

	out, err := scanBars(rows, 256)
	if err != nil {
		return nil, err
	}
	s.log.Debug("clickhouse daily_bars ok",
		applogger.String("symbol", symbol),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return out, nil
}

// GetLatestBars returns the n most recent bars, oldest first.
func (s *CHBarStore) GetLatestBars(ctx context.Context, symbol string, n int) (models.Bars, error) {
	const q = `
		SELECT date, open, high, low, close, volume
		FROM swingsignal.daily_bars FINAL
		WHERE symbol = ?
		ORDER BY date DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, symbol, n)
	if err != nil {
		return nil, fmt.Errorf("get latest bars: %w", err)
	}
	defer rows.Close()

	out, err := scanBars(rows, n)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// SaveBars writes bars in one batch.
func (s *CHBarStore) SaveBars(ctx context.Context, symbol string, bars models.Bars) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO swingsignal.daily_bars (symbol, date, open, high, low, close, volume)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, b.Date.UTC(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("append bar %s: %w", b.Date.Format("2006-01-02"), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bars: %w", err)
	}

	s.log.Info("daily bars stored", applogger.String("symbol", symbol), applogger.Int("rows", len(bars)))
	return nil
}

func scanBars(rows *sql.Rows, capHint int) (models.Bars, error) {
	out := make(models.Bars, 0, capHint)
	for rows.Next() {
		var b models.PriceBar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
