package indicators

import (
	"github.com/markcheno/go-talib"

	"SwingSignal/internal/domain/models"
)

const (
	VolumeVeryLow  = "very_low"
	VolumeLow      = "low"
	VolumeNormal   = "normal"
	VolumeHigh     = "high"
	VolumeVeryHigh = "very_high"
)

// obvTrendPct is the percent change over the OBV window that counts as a trend.
const obvTrendPct = 5.0

func computeVolume(snap *models.IndicatorSnapshot, s series, tf models.TimeframeConfig) {
	snap.Volume = last(s.volume)
	snap.VolumeAvg = last(talib.Sma(s.volume, tf.VolumeAvgPeriod))
	snap.VolumeRatio = 1
	if snap.VolumeAvg > 0 {
		snap.VolumeRatio = snap.Volume / snap.VolumeAvg
	}
	snap.VolumeLevel = VolumeLevel(snap.VolumeRatio)

	obv := talib.Obv(s.close, s.volume)
	snap.OBV = last(obv)
	snap.OBVTrend = OBVTrend(snap.OBV, back(obv, tf.OBVWindow))
}

func VolumeLevel(ratio float64) string {
	switch {
	case ratio < 0.5:
		return VolumeVeryLow
	case ratio < 0.7:
		return VolumeLow
	case ratio < 1.5:
		return VolumeNormal
	case ratio < 2.0:
		return VolumeHigh
	default:
		return VolumeVeryHigh
	}
}

// OBVTrend compares OBV against its value one window back. A zero base
// falls back to the sign of the change.
func OBVTrend(cur, prior float64) string {
	change := cur - prior
	if prior == 0 {
		switch {
		case change > 0:
			return Rising
		case change < 0:
			return Falling
		default:
			return Flat
		}
	}
	pct := change / abs(prior) * 100
	switch {
	case pct >= obvTrendPct:
		return Rising
	case pct <= -obvTrendPct:
		return Falling
	default:
		return Flat
	}
}
