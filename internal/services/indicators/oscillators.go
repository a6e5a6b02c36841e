package indicators

import (
	"math"

	"github.com/markcheno/go-talib"

	"SwingSignal/internal/domain/models"
)

const (
	ZoneExtremelyOverbought = "extremely_overbought"
	ZoneOverbought          = "overbought"
	ZoneSlightlyOverbought  = "slightly_overbought"
	ZoneNeutral             = "neutral"
	ZoneSlightlyOversold    = "slightly_oversold"
	ZoneOversold            = "oversold"
	ZoneExtremelyOversold   = "extremely_oversold"

	Rising  = "rising"
	Falling = "falling"
	Flat    = "neutral"

	// NeutralRSI stands in for RSI values the warm-up has not produced yet.
	NeutralRSI = 50.0
)

// rsiLookback is how far back RSIDirection compares.
const rsiLookback = 5

func computeOscillators(snap *models.IndicatorSnapshot, s series, tf models.TimeframeConfig) {
	snap.RSI = clamp(last(s.rsi), 0, 100)
	snap.RSIZone = RSIZone(snap.RSI)
	snap.RSIDirection = RSIDirection(s.rsi)

	k, d := talib.Stoch(s.high, s.low, s.close, tf.StochK, tf.StochSlowing, talib.SMA, tf.StochD, talib.SMA)
	snap.StochK = last(k)
	snap.StochD = last(d)
	snap.StochZone = StochZone(snap.StochK)
}

// rsiSeries fills warm-up and undefined slots with NeutralRSI. talib reports
// 0 when a window has neither gains nor losses, which is undefined, not oversold.
func rsiSeries(closes []float64, period int) []float64 {
	rsi := talib.Rsi(closes, period)
	for i, v := range rsi {
		if i < period || math.IsNaN(v) || (v == 0 && flatWindow(closes, i, period)) {
			rsi[i] = NeutralRSI
		}
	}
	return rsi
}

// flatWindow reports whether closes[i-period..i] are all equal.
func flatWindow(closes []float64, i, period int) bool {
	if i < period {
		return false
	}
	for j := i - period + 1; j <= i; j++ {
		if closes[j] != closes[j-1] {
			return false
		}
	}
	return true
}

// RSIZone buckets an RSI reading.
func RSIZone(rsi float64) string {
	switch {
	case rsi >= 80:
		return ZoneExtremelyOverbought
	case rsi >= 70:
		return ZoneOverbought
	case rsi >= 60:
		return ZoneSlightlyOverbought
	case rsi >= 40:
		return ZoneNeutral
	case rsi >= 30:
		return ZoneSlightlyOversold
	case rsi >= 20:
		return ZoneOversold
	default:
		return ZoneExtremelyOversold
	}
}

// RSIDirection compares the last RSI value against the one five bars back.
// A move of more than five points in either direction counts.
func RSIDirection(rsi []float64) string {
	if len(rsi) <= rsiLookback {
		return Flat
	}
	delta := last(rsi) - back(rsi, rsiLookback)
	switch {
	case delta > 5:
		return Rising
	case delta < -5:
		return Falling
	default:
		return Flat
	}
}

// StochZone buckets a stochastic %K reading.
func StochZone(k float64) string {
	switch {
	case k < 15:
		return ZoneExtremelyOversold
	case k < 20:
		return ZoneOversold
	case k > 85:
		return ZoneExtremelyOverbought
	case k > 80:
		return ZoneOverbought
	default:
		return ZoneNeutral
	}
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
