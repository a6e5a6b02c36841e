package indicators

import (
	"github.com/markcheno/go-talib"

	"SwingSignal/internal/domain/models"
)

const (
	AlignStrongBullish = "strong_bullish"
	AlignBullish       = "bullish"
	AlignNeutral       = "neutral"
	AlignBearish       = "bearish"
	AlignStrongBearish = "strong_bearish"
)

const (
	CrossBullish = "bullish"
	CrossBearish = "bearish"
	CrossNone    = "none"

	HistExpanding   = "expanding"
	HistContracting = "contracting"
)

const (
	ADXAbsent     = "absent"
	ADXWeak       = "weak"
	ADXModerate   = "moderate"
	ADXStrong     = "strong"
	ADXVeryStrong = "very_strong"

	// TrendADX is the ADX level at which a trend is considered present.
	TrendADX = 25.0
)

func computeTrend(snap *models.IndicatorSnapshot, s series, tf models.TimeframeConfig) {
	snap.EMAFast = ema(s.close, tf.EMAFast)
	snap.EMAMedium = ema(s.close, tf.EMAMedium)
	snap.EMASlow = ema(s.close, tf.EMASlow)
	snap.EMATrend = ema(s.close, tf.EMATrend)
	snap.EMAAlignment = EMAAlignment(snap.Price, snap.EMAFast, snap.EMAMedium, snap.EMASlow, snap.EMATrend)

	snap.MACD = last(s.macd)
	snap.MACDSignal = last(s.signal)
	snap.MACDHist = last(s.hist)
	snap.MACDCrossover = MACDCrossover(back(s.hist, 1), snap.MACDHist)
	snap.MACDHistDirection = HistDirection(snap.MACDHist, back(s.hist, 3))

	snap.ADX = last(talib.Adx(s.high, s.low, s.close, tf.ADXPeriod))
	snap.PlusDI = last(talib.PlusDI(s.high, s.low, s.close, tf.ADXPeriod))
	snap.MinusDI = last(talib.MinusDI(s.high, s.low, s.close, tf.ADXPeriod))
	snap.ADXStrength = ADXStrength(snap.ADX)
	snap.TrendExists = snap.ADX >= TrendADX
	snap.TrendDirection = DIDirection(snap.PlusDI, snap.MinusDI)
}

// ema returns the latest EMA value. Periods longer than the series are
// clamped to the series length.
func ema(closes []float64, period int) float64 {
	if period > len(closes) {
		period = len(closes)
	}
	if period < 2 {
		return last(closes)
	}
	return last(talib.Ema(closes, period))
}

// EMAAlignment classifies the stacking order of the four EMAs.
func EMAAlignment(price, fast, medium, slow, trend float64) string {
	switch {
	case fast > medium && medium > slow && slow > trend:
		return AlignStrongBullish
	case fast < medium && medium < slow && slow < trend:
		return AlignStrongBearish
	case price > trend && fast > medium:
		return AlignBullish
	case price < trend && fast < medium:
		return AlignBearish
	default:
		return AlignNeutral
	}
}

// MACDCrossover reports a histogram sign flip between the last two bars.
func MACDCrossover(prev, cur float64) string {
	switch {
	case prev <= 0 && cur > 0:
		return CrossBullish
	case prev >= 0 && cur < 0:
		return CrossBearish
	default:
		return CrossNone
	}
}

// HistDirection compares the histogram against its value three bars back.
func HistDirection(cur, prior float64) string {
	if abs(cur) > abs(prior) {
		return HistExpanding
	}
	return HistContracting
}

func ADXStrength(adx float64) string {
	switch {
	case adx < 20:
		return ADXAbsent
	case adx < 25:
		return ADXWeak
	case adx < 40:
		return ADXModerate
	case adx < 60:
		return ADXStrong
	default:
		return ADXVeryStrong
	}
}

// DIDirection needs a spread of more than five points to call a side.
func DIDirection(plus, minus float64) string {
	switch {
	case plus-minus > 5:
		return string(models.Bullish)
	case minus-plus > 5:
		return string(models.Bearish)
	default:
		return string(models.Neutral)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
