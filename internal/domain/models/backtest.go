package models

import "time"

// Position is the single open slot of a backtest.
type Position struct {
	EntryDate  time.Time `json:"entry_date"`
	EntryPrice float64   `json:"entry_price"`
	Shares     int64     `json:"shares"`
	StopLoss   float64   `json:"stop_loss"`
	Target     float64   `json:"target"`
}

// Exit reasons, in check priority order.
const (
	ExitStopLoss    = "Stop Loss"
	ExitTargetHit   = "Target Hit"
	ExitSellSignal  = "Sell Signal"
	ExitEndOfPeriod = "End of Period"
)

// Trade is a closed position.
type Trade struct {
	Symbol     string    `json:"symbol" db:"symbol"`
	EntryDate  time.Time `json:"entry_date" db:"entry_date"`
	EntryPrice float64   `json:"entry_price" db:"entry_price"`
	ExitDate   time.Time `json:"exit_date" db:"exit_date"`
	ExitPrice  float64   `json:"exit_price" db:"exit_price"`
	Shares     int64     `json:"shares" db:"shares"`
	PnL        float64   `json:"pnl" db:"pnl"`
	PnLPct     float64   `json:"pnl_pct" db:"pnl_pct"`
	ExitReason string    `json:"exit_reason" db:"exit_reason"`
}

type EquityPoint struct {
	Date   time.Time `json:"date" db:"date"`
	Equity float64   `json:"equity" db:"equity"`
	Price  float64   `json:"price" db:"price"`
}

// SkippedDay records a simulated day whose computation failed.
type SkippedDay struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

// BacktestMetrics are computed once at the end of a run.
type BacktestMetrics struct {
	InitialCapital float64 `json:"initial_capital" db:"initial_capital"`
	FinalCapital   float64 `json:"final_capital" db:"final_capital"`
	TotalReturn    float64 `json:"total_return" db:"total_return"`
	TotalReturnPct float64 `json:"total_return_pct" db:"total_return_pct"`
	TotalTrades    int     `json:"total_trades" db:"total_trades"`
	Wins           int     `json:"wins" db:"wins"`
	Losses         int     `json:"losses" db:"losses"`
	WinRate        float64 `json:"win_rate" db:"win_rate"`
	AvgWin         float64 `json:"avg_win" db:"avg_win"`
	AvgLoss        float64 `json:"avg_loss" db:"avg_loss"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct" db:"max_drawdown_pct"`
	Volatility     float64 `json:"annualized_volatility" db:"annualized_volatility"`
	Sharpe         float64 `json:"sharpe" db:"sharpe"`
	BestTrade      *Trade  `json:"best_trade,omitempty" db:"-"`
	WorstTrade     *Trade  `json:"worst_trade,omitempty" db:"-"`
}

type BacktestResult struct {
	RunID     string          `json:"run_id,omitempty"`
	Symbol    string          `json:"symbol"`
	Mode      string          `json:"mode"`
	Timeframe string          `json:"timeframe"`
	From      time.Time       `json:"from"`
	To        time.Time       `json:"to"`
	Metrics   BacktestMetrics `json:"metrics"`
	Trades    []Trade         `json:"trades"`
	Equity    []EquityPoint   `json:"equity"`
	Skipped   []SkippedDay    `json:"skipped,omitempty"`
	Partial   bool            `json:"partial"`
}

// BacktestRun is the stored summary row of a finished run.
type BacktestRun struct {
	RunID     string    `json:"run_id" db:"run_id"`
	Symbol    string    `json:"symbol" db:"symbol"`
	Mode      string    `json:"mode" db:"mode"`
	Timeframe string    `json:"timeframe" db:"timeframe"`
	FromDate  time.Time `json:"from" db:"from_date"`
	ToDate    time.Time `json:"to" db:"to_date"`
	Skipped   int       `json:"skipped_days" db:"skipped_days"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	BacktestMetrics
}

// BacktestReport is a stored run with its trade ledger.
type BacktestReport struct {
	Run    *BacktestRun `json:"run"`
	Trades []Trade      `json:"trades"`
}

// BacktestJob is the queued form of an asynchronous backtest.
type BacktestJob struct {
	RunID     string    `json:"run_id"`
	Symbol    string    `json:"symbol"`
	Mode      string    `json:"mode"`
	Timeframe string    `json:"timeframe"`
	Capital   float64   `json:"capital"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
}
