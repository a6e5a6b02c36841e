package backtest

import (
	"SwingSignal/internal/domain/models"
	"SwingSignal/internal/services/features"
)

// Summarize computes the end-of-run statistics.
func Summarize(initial, final float64, trades []models.Trade, equity []models.EquityPoint) models.BacktestMetrics {
	m := models.BacktestMetrics{
		InitialCapital: initial,
		FinalCapital:   final,
		TotalReturn:    final - initial,
		TotalTrades:    len(trades),
	}
	if initial > 0 {
		m.TotalReturnPct = (final - initial) / initial * 100
	}

	var winSum, lossSum float64
	for i := range trades {
		t := &trades[i]
		switch {
		case t.PnL > 0:
			m.Wins++
			winSum += t.PnL
		case t.PnL < 0:
			m.Losses++
			lossSum += t.PnL
		}
		if m.BestTrade == nil || t.PnL > m.BestTrade.PnL {
			m.BestTrade = t
		}
		if m.WorstTrade == nil || t.PnL < m.WorstTrade.PnL {
			m.WorstTrade = t
		}
	}
	if m.TotalTrades > 0 {
		m.WinRate = float64(m.Wins) / float64(m.TotalTrades) * 100
	}
	if m.Wins > 0 {
		m.AvgWin = winSum / float64(m.Wins)
	}
	if m.Losses > 0 {
		m.AvgLoss = lossSum / float64(m.Losses)
	}

	values := make([]float64, len(equity))
	for i, p := range equity {
		values[i] = p.Equity
	}
	m.MaxDrawdownPct = features.MaxDrawdownPct(values)
	returns := features.LogReturns(values)
	m.Volatility = features.RealizedVolatility(returns, 0, features.TradingDaysPerYear)
	m.Sharpe = features.Sharpe(returns, features.TradingDaysPerYear)
	return m
}
