package indicators

import (
	"fmt"

	"SwingSignal/internal/domain/models"
)

const (
	ProximityAt   = "at"
	ProximityNear = "near"
	ProximityFar  = "far"
)

var (
	RetracementRatios = []float64{0.236, 0.382, 0.5, 0.618, 0.786}
	ExtensionRatios   = []float64{1.272, 1.618, 2.0, 2.618}
)

func computeLevels(snap *models.IndicatorSnapshot, s series, tf models.TimeframeConfig) {
	snap.Support = minOf(tail(s.low, tf.SupportLookback))
	snap.Resistance = maxOf(tail(s.high, tf.SupportLookback))
	snap.High52W = maxOf(tail(s.high, tf.YearWindow))
	snap.Low52W = minOf(tail(s.low, tf.YearWindow))

	if snap.Price > 0 {
		snap.SupportDistancePct = (snap.Price - snap.Support) / snap.Price * 100
		snap.ResistanceDistPct = (snap.Resistance - snap.Price) / snap.Price * 100
	}
	snap.SupportProximity = Proximity(snap.SupportDistancePct)
	snap.ResistanceProximity = Proximity(snap.ResistanceDistPct)

	snap.FibRetracements = Retracements(snap.High52W, snap.Low52W)
	snap.FibExtensions = Extensions(snap.High52W, snap.Low52W)
	snap.FibNearest = Nearest(snap.Price, snap.FibRetracements, snap.FibExtensions)
}

// Proximity buckets an absolute percent distance to a level.
func Proximity(distPct float64) string {
	d := abs(distPct)
	switch {
	case d <= 2:
		return ProximityAt
	case d <= 5:
		return ProximityNear
	default:
		return ProximityFar
	}
}

// Retracements measures down from the high.
func Retracements(high, low float64) []models.Level {
	span := high - low
	out := make([]models.Level, 0, len(RetracementRatios))
	for _, r := range RetracementRatios {
		out = append(out, models.Level{Name: ratioName(r), Price: high - r*span})
	}
	return out
}

// Extensions project up from the low.
func Extensions(high, low float64) []models.Level {
	span := high - low
	out := make([]models.Level, 0, len(ExtensionRatios))
	for _, r := range ExtensionRatios {
		out = append(out, models.Level{Name: ratioName(r), Price: low + r*span})
	}
	return out
}

// Nearest picks the level closest to price across all sets.
func Nearest(price float64, sets ...[]models.Level) models.Level {
	var best models.Level
	bestDist := -1.0
	for _, set := range sets {
		for _, l := range set {
			d := abs(l.Price - price)
			if bestDist < 0 || d < bestDist {
				best, bestDist = l, d
			}
		}
	}
	return best
}

func ratioName(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}

func computeMomentum(snap *models.IndicatorSnapshot, s series, tf models.TimeframeConfig) {
	base := back(s.close, tf.MomentumPeriod)
	if base > 0 {
		snap.Momentum = (snap.Price - base) / base * 100
	}
	snap.MomentumDirection = MomentumDirection(snap.Momentum)
}

const (
	MomentumStrongUp   = "strong_up"
	MomentumUp         = "up"
	MomentumFlat       = "flat"
	MomentumDown       = "down"
	MomentumStrongDown = "strong_down"
)

func MomentumDirection(pct float64) string {
	switch {
	case pct > 5:
		return MomentumStrongUp
	case pct > 2:
		return MomentumUp
	case pct < -5:
		return MomentumStrongDown
	case pct < -2:
		return MomentumDown
	default:
		return MomentumFlat
	}
}
