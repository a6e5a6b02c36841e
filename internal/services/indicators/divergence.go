package indicators

import (
	"SwingSignal/internal/domain/models"
)

const (
	DivergenceBullish = "bullish"
	DivergenceBearish = "bearish"
	DivergenceNone    = "none"
)

func computeDivergence(snap *models.IndicatorSnapshot, s series, tf models.TimeframeConfig) {
	snap.RSIDivergence = Divergence(s.high, s.low, s.rsi, tf.DivergenceWindow, tf.RSIPeriod)
	snap.MACDDivergence = Divergence(s.high, s.low, s.hist, tf.DivergenceWindow, tf.MACDSlow+tf.MACDSignal-2)
	snap.Divergence = CombineDivergence(snap.RSIDivergence, snap.MACDDivergence)
}

// Divergence splits the trailing window in half. Price making a higher high
// while the indicator makes a lower high is bearish; the mirror on lows is
// bullish. Indicator values before warm are ignored by shrinking the window.
func Divergence(highs, lows, ind []float64, window, warm int) string {
	n := len(ind)
	if avail := n - warm; window > avail {
		window = avail
	}
	if window < 4 || len(highs) != n || len(lows) != n {
		return DivergenceNone
	}

	start := n - window
	mid := start + window/2

	if maxOf(highs[mid:]) > maxOf(highs[start:mid]) && maxOf(ind[mid:]) < maxOf(ind[start:mid]) {
		return DivergenceBearish
	}
	if minOf(lows[mid:]) < minOf(lows[start:mid]) && minOf(ind[mid:]) > minOf(ind[start:mid]) {
		return DivergenceBullish
	}
	return DivergenceNone
}

// CombineDivergence lets a bearish reading win over a bullish one.
func CombineDivergence(subs ...string) string {
	bullish := false
	for _, d := range subs {
		if d == DivergenceBearish {
			return DivergenceBearish
		}
		if d == DivergenceBullish {
			bullish = true
		}
	}
	if bullish {
		return DivergenceBullish
	}
	return DivergenceNone
}
