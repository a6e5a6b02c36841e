package risk

import (
	"math"

	"SwingSignal/internal/domain/models"
)

// trailATR is how far behind the best price the stop trails once trailing
// starts.
const trailATR = 1.5

// Trailing builds the stop schedule for an entry: an initial stop k ATR
// against the position, breakeven after one risk unit of gain, trailing after
// two. Short plans mirror long ones around entry.
func Trailing(entry, atr, k float64, dir models.TradeDirection) models.TrailingPlan {
	unit := k * atr
	sign := 1.0
	if dir == models.Short {
		sign = -1
	} else {
		dir = models.Long
	}
	return models.TrailingPlan{
		Direction:        dir,
		Entry:            entry,
		ATR:              atr,
		InitialStop:      entry - sign*unit,
		RiskUnit:         unit,
		BreakevenTrigger: entry + sign*unit,
		TrailTrigger:     entry + 2*sign*unit,
		TrailDistance:    trailATR * atr,
	}
}

// TrailingStop returns the effective stop given the best price seen since
// entry: the highest high for a long, the lowest low for a short. The stop
// never moves against the position.
func TrailingStop(plan models.TrailingPlan, best float64) float64 {
	if plan.Direction == models.Short {
		switch {
		case best <= plan.TrailTrigger:
			return math.Min(plan.Entry, best+plan.TrailDistance)
		case best <= plan.BreakevenTrigger:
			return plan.Entry
		default:
			return plan.InitialStop
		}
	}
	switch {
	case best >= plan.TrailTrigger:
		return math.Max(plan.Entry, best-plan.TrailDistance)
	case best >= plan.BreakevenTrigger:
		return plan.Entry
	default:
		return plan.InitialStop
	}
}
