package indicators

import (
	"github.com/markcheno/go-talib"

	"SwingSignal/internal/domain/models"
)

const (
	VolVeryLow  = "very_low"
	VolLow      = "low"
	VolModerate = "moderate"
	VolHigh     = "high"
	VolVeryHigh = "very_high"

	BBBelowLower = "below_lower"
	BBLowerHalf  = "lower_half"
	BBUpperHalf  = "upper_half"
	BBAboveUpper = "above_upper"
)

func computeVolatility(snap *models.IndicatorSnapshot, s series, tf models.TimeframeConfig) {
	snap.ATR = last(talib.Atr(s.high, s.low, s.close, tf.ATRPeriod))
	if snap.Price > 0 {
		snap.ATRPercent = snap.ATR / snap.Price * 100
	}
	snap.Volatility = VolatilityLevel(snap.ATRPercent)

	upper, middle, lower := talib.BBands(s.close, tf.BollingerPeriod, tf.BollingerStdDev, tf.BollingerStdDev, talib.SMA)
	snap.BBUpper = last(upper)
	snap.BBMiddle = last(middle)
	snap.BBLower = last(lower)
	snap.BBPercentB = PercentB(snap.Price, snap.BBUpper, snap.BBLower)
	snap.BBPosition = BandPosition(snap.BBPercentB)
}

// VolatilityLevel buckets ATR expressed as a percent of price.
func VolatilityLevel(atrPct float64) string {
	switch {
	case atrPct < 0.75:
		return VolVeryLow
	case atrPct < 1.5:
		return VolLow
	case atrPct < 3:
		return VolModerate
	case atrPct < 5:
		return VolHigh
	default:
		return VolVeryHigh
	}
}

// PercentB locates price inside the bands; 0.5 when the bands collapse.
func PercentB(price, upper, lower float64) float64 {
	width := upper - lower
	if width <= 0 {
		return 0.5
	}
	return (price - lower) / width
}

func BandPosition(pctB float64) string {
	switch {
	case pctB < 0:
		return BBBelowLower
	case pctB < 0.5:
		return BBLowerHalf
	case pctB <= 1:
		return BBUpperHalf
	default:
		return BBAboveUpper
	}
}
