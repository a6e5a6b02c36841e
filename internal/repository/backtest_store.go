package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
	pkgch "SwingSignal/pkg/clickhouse"
	applogger "SwingSignal/pkg/logger"
)

// BacktestSchema creates the run summary, trade ledger and equity curve tables.
var BacktestSchema = []string{
	`CREATE DATABASE IF NOT EXISTS swingsignal`,
	`CREATE TABLE IF NOT EXISTS swingsignal.backtest_runs (
		run_id                String,
		symbol                LowCardinality(String),
		mode                  LowCardinality(String),
		timeframe             LowCardinality(String),
		from_date             Date,
		to_date               Date,
		skipped_days          Int64,
		created_at            DateTime,
		initial_capital       Float64,
		final_capital         Float64,
		total_return          Float64,
		total_return_pct      Float64,
		total_trades          Int64,
		wins                  Int64,
		losses                Int64,
		win_rate              Float64,
		avg_win               Float64,
		avg_loss              Float64,
		max_drawdown_pct      Float64,
		annualized_volatility Float64,
		sharpe                Float64
	) ENGINE = MergeTree ORDER BY (run_id)`,
	`CREATE TABLE IF NOT EXISTS swingsignal.backtest_trades (
		run_id      String,
		symbol      LowCardinality(String),
		entry_date  Date,
		entry_price Float64,
		exit_date   Date,
		exit_price  Float64,
		shares      Int64,
		pnl         Float64,
		pnl_pct     Float64,
		exit_reason LowCardinality(String)
	) ENGINE = MergeTree ORDER BY (run_id, entry_date)`,
	`CREATE TABLE IF NOT EXISTS swingsignal.backtest_equity (
		run_id String,
		date   Date,
		equity Float64,
		price  Float64
	) ENGINE = MergeTree ORDER BY (run_id, date)`,
}

const (
	insertRunQuery = `INSERT INTO swingsignal.backtest_runs (
		run_id, symbol, mode, timeframe, from_date, to_date, skipped_days, created_at,
		initial_capital, final_capital, total_return, total_return_pct, total_trades,
		wins, losses, win_rate, avg_win, avg_loss, max_drawdown_pct, annualized_volatility, sharpe
	) VALUES (
		:run_id, :symbol, :mode, :timeframe, :from_date, :to_date, :skipped_days, :created_at,
		:initial_capital, :final_capital, :total_return, :total_return_pct, :total_trades,
		:wins, :losses, :win_rate, :avg_win, :avg_loss, :max_drawdown_pct, :annualized_volatility, :sharpe
	)`

	selectRunQuery = `SELECT
		run_id, symbol, mode, timeframe, from_date, to_date, skipped_days, created_at,
		initial_capital, final_capital, total_return, total_return_pct, total_trades,
		wins, losses, win_rate, avg_win, avg_loss, max_drawdown_pct, annualized_volatility, sharpe
	FROM swingsignal.backtest_runs
	WHERE run_id = ?
	LIMIT 1`

	selectTradesQuery = `SELECT
		symbol, entry_date, entry_price, exit_date, exit_price, shares, pnl, pnl_pct, exit_reason
	FROM swingsignal.backtest_trades
	WHERE run_id = ?
	ORDER BY entry_date ASC`
)

// CHBacktestStore implements repository.BacktestStore with sqlx over ClickHouse.
type CHBacktestStore struct {
	db  *sqlx.DB
	log *applogger.Logger
	now func() time.Time
}

var _ domrepo.BacktestStore = (*CHBacktestStore)(nil)

func NewCHBacktestStore(ch *pkgch.Client, log *applogger.Logger) *CHBacktestStore {
	return newBacktestStore(ch.DBx(), log)
}

func newBacktestStore(db *sqlx.DB, log *applogger.Logger) *CHBacktestStore {
	return &CHBacktestStore{db: db, log: log, now: time.Now}
}

// SaveRun stores the summary row, then the trade ledger and equity curve.
func (s *CHBacktestStore) SaveRun(ctx context.Context, res *models.BacktestResult) error {
	if res == nil || res.RunID == "" {
		return errors.New("save run: run id is required")
	}

	run := models.BacktestRun{
		RunID:           res.RunID,
		Symbol:          res.Symbol,
		Mode:            res.Mode,
		Timeframe:       res.Timeframe,
		FromDate:        res.From.UTC(),
		ToDate:          res.To.UTC(),
		Skipped:         len(res.Skipped),
		CreatedAt:       s.now().UTC().Truncate(time.Second),
		BacktestMetrics: res.Metrics,
	}
	if _, err := s.db.NamedExecContext(ctx, insertRunQuery, run); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if err := s.insertTrades(ctx, res.RunID, res.Trades); err != nil {
		return err
	}
	if err := s.insertEquity(ctx, res.RunID, res.Equity); err != nil {
		return err
	}

	s.log.Info("backtest run stored",
		applogger.String("run_id", res.RunID),
		applogger.String("symbol", res.Symbol),
		applogger.Int("trades", len(res.Trades)),
		applogger.Int("equity_points", len(res.Equity)),
	)
	return nil
}

func (s *CHBacktestStore) insertTrades(ctx context.Context, runID string, trades []models.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	return s.batch(ctx, `INSERT INTO swingsignal.backtest_trades (run_id, symbol, entry_date, entry_price, exit_date, exit_price, shares, pnl, pnl_pct, exit_reason)`,
		len(trades), func(i int) []interface{} {
			t := trades[i]
			return []interface{}{runID, t.Symbol, t.EntryDate.UTC(), t.EntryPrice, t.ExitDate.UTC(), t.ExitPrice, t.Shares, t.PnL, t.PnLPct, t.ExitReason}
		})
}

func (s *CHBacktestStore) insertEquity(ctx context.Context, runID string, points []models.EquityPoint) error {
	if len(points) == 0 {
		return nil
	}
	return s.batch(ctx, `INSERT INTO swingsignal.backtest_equity (run_id, date, equity, price)`,
		len(points), func(i int) []interface{} {
			p := points[i]
			return []interface{}{runID, p.Date.UTC(), p.Equity, p.Price}
		})
}

// batch sends n rows through one prepared statement inside a transaction,
// which clickhouse-go turns into a single block insert.
func (s *CHBacktestStore) batch(ctx context.Context, query string, n int, row func(int) []interface{}) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			return fmt.Errorf("append row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetRun returns repository.ErrNotFound for unknown ids.
func (s *CHBacktestStore) GetRun(ctx context.Context, runID string) (*models.BacktestRun, error) {
	var run models.BacktestRun
	if err := s.db.GetContext(ctx, &run, selectRunQuery, runID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("backtest run %s: %w", runID, domrepo.ErrNotFound)
		}
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

func (s *CHBacktestStore) ListTrades(ctx context.Context, runID string) ([]models.Trade, error) {
	trades := []models.Trade{}
	if err := s.db.SelectContext(ctx, &trades, selectTradesQuery, runID); err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}
