// Package features derives return statistics from price or equity series.
package features

import (
	"math"
)

// TradingDaysPerYear annualizes daily statistics.
const TradingDaysPerYear = 252.0

// LogReturns computes r_t = ln(v_t / v_{t-1}). Non-positive values yield a
// zero return for that step. Returns nil for fewer than two points.
func LogReturns(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		prev, cur := values[i-1], values[i]
		if prev <= 0 || cur <= 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, math.Log(cur/prev))
	}
	return out
}

// meanStd returns the sample mean and standard deviation.
func meanStd(xs []float64) (float64, float64) {
	if len(xs) < 2 {
		return 0, 0
	}
	n := float64(len(xs))
	sum := 0.0
	for _, r := range xs {
		sum += r
	}
	mean := sum / n
	ss := 0.0
	for _, r := range xs {
		ss += (r - mean) * (r - mean)
	}
	return mean, math.Sqrt(ss / (n - 1))
}

// RealizedVolatility annualizes the standard deviation of the last window
// returns. A window <= 0 uses every return.
func RealizedVolatility(returns []float64, window int, barsPerYear float64) float64 {
	if window <= 0 || window > len(returns) {
		window = len(returns)
	}
	if window < 2 {
		return 0
	}
	_, sd := meanStd(returns[len(returns)-window:])
	return sd * math.Sqrt(barsPerYear)
}

// Sharpe is the annualized mean over annualized deviation of returns with a
// zero risk-free rate. Zero when returns do not vary.
func Sharpe(returns []float64, barsPerYear float64) float64 {
	mean, sd := meanStd(returns)
	if sd == 0 {
		return 0
	}
	return mean / sd * math.Sqrt(barsPerYear)
}

// MaxDrawdownPct is the largest peak-to-trough decline in percent.
func MaxDrawdownPct(values []float64) float64 {
	peak, worst := 0.0, 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if dd := (peak - v) / peak * 100; dd > worst {
				worst = dd
			}
		}
	}
	return worst
}
