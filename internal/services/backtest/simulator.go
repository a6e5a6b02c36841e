// Package backtest replays the analysis pipeline one trading day at a time
// over historical bars.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SwingSignal/internal/domain/models"
	domsvc "SwingSignal/internal/domain/service"
	"SwingSignal/internal/services/risk"
	applogger "SwingSignal/pkg/logger"
)

// WarmupBars is the first simulated index; earlier bars only feed indicators.
const WarmupBars = 50

var ErrInsufficientHistory = errors.New("backtest needs more than 50 bars")

// Config describes one run. Timeframe and Mode are read-only. Bars before
// Start only warm up the indicators; a zero Start simulates from WarmupBars.
type Config struct {
	Symbol    string
	Capital   float64
	Start     time.Time
	Timeframe models.TimeframeConfig
	Mode      models.RiskModeConfig
}

// Simulator holds no per-run state and may run several symbols at once.
type Simulator struct {
	analyzer domsvc.Analyzer
	log      *applogger.Logger
}

// NewSimulator builds a simulator. log may be nil.
func NewSimulator(analyzer domsvc.Analyzer, log *applogger.Logger) *Simulator {
	return &Simulator{analyzer: analyzer, log: log}
}

// ledger is the mutable state of a single run.
type ledger struct {
	symbol string
	cash   float64
	pos    *models.Position
	trades []models.Trade
	equity []models.EquityPoint
}

func (l *ledger) close(bar models.PriceBar, reason string) {
	p := l.pos
	proceeds := float64(p.Shares) * bar.Close
	pnl := (bar.Close - p.EntryPrice) * float64(p.Shares)
	l.cash += proceeds
	l.trades = append(l.trades, models.Trade{
		Symbol:     l.symbol,
		EntryDate:  p.EntryDate,
		EntryPrice: p.EntryPrice,
		ExitDate:   bar.Date,
		ExitPrice:  bar.Close,
		Shares:     p.Shares,
		PnL:        pnl,
		PnLPct:     (bar.Close - p.EntryPrice) / p.EntryPrice * 100,
		ExitReason: reason,
	})
	l.pos = nil
}

func (l *ledger) mark(bar models.PriceBar) {
	value := l.cash
	if l.pos != nil {
		value += float64(l.pos.Shares) * bar.Close
	}
	l.equity = append(l.equity, models.EquityPoint{Date: bar.Date, Equity: value, Price: bar.Close})
}

// Run simulates bars in order. Each day only sees bars up to and including
// itself. A day whose analysis fails is logged and skipped. When ctx is
// cancelled the run stops and the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, bars models.Bars, cfg Config) (*models.BacktestResult, error) {
	if len(bars) <= WarmupBars {
		return nil, fmt.Errorf("%w: have %d", ErrInsufficientHistory, len(bars))
	}
	if cfg.Capital <= 0 {
		return nil, &risk.ValidationError{Field: "capital", Reason: "must be positive"}
	}

	first := startIndex(bars, cfg.Start)
	if first >= len(bars) {
		return nil, fmt.Errorf("%w: no bars on or after %s", ErrInsufficientHistory, cfg.Start.Format(time.DateOnly))
	}

	log := s.log.With(applogger.String("symbol", cfg.Symbol), applogger.String("mode", cfg.Mode.Name))
	l := &ledger{symbol: cfg.Symbol, cash: cfg.Capital}
	res := &models.BacktestResult{
		Symbol:    cfg.Symbol,
		Mode:      cfg.Mode.Name,
		Timeframe: cfg.Timeframe.Name,
		From:      bars[first].Date,
		To:        bars.Last().Date,
	}
	opts := domsvc.AnalyzeOptions{Symbol: cfg.Symbol}

	var runErr error
	for i := first; i < len(bars); i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			res.Partial = true
			break
		}

		bar := bars[i]
		a, err := s.analyzer.Analyze(bars[:i+1], cfg.Timeframe, cfg.Mode, opts)
		if err != nil {
			log.Warn("backtest day skipped", applogger.Time("date", bar.Date), applogger.Error(err))
			res.Skipped = append(res.Skipped, models.SkippedDay{Date: bar.Date, Reason: err.Error()})
			// stop and target are price-only and still apply
			if l.pos != nil {
				if reason := exitReason(l.pos, bar.Close, nil); reason != "" {
					l.close(bar, reason)
				}
			}
			l.mark(bar)
			continue
		}

		if l.pos == nil {
			s.maybeEnter(l, bar, a, cfg, log)
		} else if reason := exitReason(l.pos, bar.Close, a); reason != "" {
			l.close(bar, reason)
		}
		l.mark(bar)
	}

	// an open position implies at least one marked day
	if l.pos != nil {
		l.close(bars[first+len(l.equity)-1], models.ExitEndOfPeriod)
	}

	res.Trades = l.trades
	res.Equity = l.equity
	res.Metrics = Summarize(cfg.Capital, l.cash, l.trades, l.equity)
	if len(res.Skipped) > 0 {
		res.Partial = true
	}
	return res, runErr
}

func (s *Simulator) maybeEnter(l *ledger, bar models.PriceBar, a *models.AnalysisResult, cfg Config, log *applogger.Logger) {
	if a.Recommendation.Category != models.CategoryBuy || a.BuyGate.Blocked {
		return
	}
	stop := a.Stops.Recommended.Price
	plan, err := risk.PositionSize(l.cash, bar.Close, stop, cfg.Mode.RiskPerTrade)
	if err != nil {
		log.Debug("entry not sized", applogger.Time("date", bar.Date), applogger.Error(err))
		return
	}
	if plan.Shares <= 0 {
		log.Debug("entry sized to zero shares", applogger.Time("date", bar.Date))
		return
	}
	l.cash -= float64(plan.Shares) * bar.Close
	l.pos = &models.Position{
		EntryDate:  bar.Date,
		EntryPrice: bar.Close,
		Shares:     plan.Shares,
		StopLoss:   stop,
		Target:     a.Targets.Recommended.Price,
	}
}

// startIndex is the first simulated bar: not before WarmupBars and not
// before start.
func startIndex(bars models.Bars, start time.Time) int {
	i := WarmupBars
	for i < len(bars) && bars[i].Date.Before(start) {
		i++
	}
	return i
}

// exitReason applies the exit checks in priority order. A nil analysis only
// checks stop and target.
func exitReason(p *models.Position, price float64, a *models.AnalysisResult) string {
	switch {
	case price <= p.StopLoss:
		return models.ExitStopLoss
	case price >= p.Target:
		return models.ExitTargetHit
	case a != nil && a.Recommendation.Category == models.CategorySell && !a.SellGate.Blocked:
		return models.ExitSellSignal
	}
	return ""
}
