package indicators

const (
	PhaseStrongUptrend   = "strong_uptrend"
	PhaseUptrend         = "uptrend"
	PhaseWeakUptrend     = "weak_uptrend"
	PhaseConsolidation   = "consolidation"
	PhaseWeakDowntrend   = "weak_downtrend"
	PhaseDowntrend       = "downtrend"
	PhaseStrongDowntrend = "strong_downtrend"
)

// MarketPhase combines EMA alignment, trend presence and price position
// relative to the trend EMA.
func MarketPhase(alignment string, trendExists bool, price, trendEMA float64) string {
	above := price > trendEMA
	below := price < trendEMA

	switch {
	case alignment == AlignStrongBullish && trendExists && above:
		return PhaseStrongUptrend
	case isBullish(alignment) && trendExists && above:
		return PhaseUptrend
	case isBullish(alignment) && above:
		return PhaseWeakUptrend
	case alignment == AlignStrongBearish && trendExists && below:
		return PhaseStrongDowntrend
	case isBearish(alignment) && trendExists && below:
		return PhaseDowntrend
	case isBearish(alignment) && below:
		return PhaseWeakDowntrend
	default:
		return PhaseConsolidation
	}
}

func isBullish(alignment string) bool {
	return alignment == AlignBullish || alignment == AlignStrongBullish
}

func isBearish(alignment string) bool {
	return alignment == AlignBearish || alignment == AlignStrongBearish
}
