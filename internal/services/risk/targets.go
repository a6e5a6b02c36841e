package risk

import (
	"math"
	"sort"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
)

// stopBuffer is the ATR fraction placed beyond a support or resistance stop.
const stopBuffer = 0.5

// Targets projects candidate exits for a trade taken at the snapshot price
// and picks the one the mode prefers.
func Targets(snap *models.IndicatorSnapshot, mode models.RiskModeConfig, dir models.TradeDirection) (models.TargetPlan, error) {
	price, atr := snap.Price, snap.ATR
	if atr <= 0 {
		return models.TargetPlan{}, ErrNoVolatility
	}
	sign := 1.0
	if dir == models.Short {
		sign = -1
	}
	beyond := func(p float64) bool { return sign*(p-price) > 0 }
	target := func(method string, p float64) models.PriceTarget {
		return models.PriceTarget{Method: method, Price: p, DistancePct: pct(p, price)}
	}

	plan := models.TargetPlan{Direction: dir}
	move := mode.ATRTargetMultiplier * atr
	plan.ATRTarget = target("atr", price+sign*move)

	levels := []float64{snap.Resistance, snap.High52W}
	fibs := snap.FibExtensions
	if dir == models.Short {
		levels = []float64{snap.Support, snap.Low52W}
		fibs = descending(snap.FibRetracements)
	}
	if p, ok := nearestBeyond(levels, beyond, sign, price); ok {
		plan.LevelTarget = target("level", p)
	}

	var fib []float64
	for _, l := range fibs {
		if beyond(l.Price) {
			fib = append(fib, l.Price)
		}
	}
	// price already past the mapped levels: project from the ATR move
	if len(fib) < 1 {
		fib = append(fib, price+sign*move*1.272)
	}
	if len(fib) < 2 {
		fib = append(fib, price+sign*math.Max(move*1.618, abs(fib[0]-price)*1.272))
	}
	plan.FibTarget1 = target("fibonacci", fib[0])
	plan.FibTarget2 = target("fibonacci", fib[1])

	// conservative takes the closest candidate past price
	plan.Conservative = plan.ATRTarget
	for _, c := range []models.PriceTarget{plan.LevelTarget, plan.FibTarget1} {
		if c.Price > 0 && beyond(c.Price) && abs(c.Price-price) < abs(plan.Conservative.Price-price) {
			plan.Conservative = c
		}
	}
	plan.Aggressive = plan.FibTarget2

	switch domrepo.RiskMode(mode.Name) {
	case domrepo.ModeConservative:
		plan.Recommended = plan.Conservative
	case domrepo.ModeAggressive:
		plan.Recommended = plan.Aggressive
	default:
		plan.Recommended = plan.ATRTarget
	}
	return plan, nil
}

// Stops places an ATR stop and a level stop and keeps the tighter one.
func Stops(snap *models.IndicatorSnapshot, mode models.RiskModeConfig, dir models.TradeDirection) (models.StopPlan, error) {
	price, atr := snap.Price, snap.ATR
	if atr <= 0 {
		return models.StopPlan{}, ErrNoVolatility
	}
	stop := func(method string, p float64) models.PriceTarget {
		return models.PriceTarget{Method: method, Price: p, DistancePct: pct(p, price)}
	}

	plan := models.StopPlan{Direction: dir}
	if dir == models.Short {
		plan.ATRStop = stop("atr", price+mode.ATRStopMultiplier*atr)
		plan.LevelStop = stop("resistance", snap.Resistance+stopBuffer*atr)
		plan.Recommended = plan.ATRStop
		if plan.LevelStop.Price > price && plan.LevelStop.Price < plan.ATRStop.Price {
			plan.Recommended = plan.LevelStop
		}
		return plan, nil
	}

	plan.ATRStop = stop("atr", price-mode.ATRStopMultiplier*atr)
	plan.LevelStop = stop("support", snap.Support-stopBuffer*atr)
	plan.Recommended = plan.ATRStop
	if plan.LevelStop.Price < price && plan.LevelStop.Price > plan.ATRStop.Price {
		plan.Recommended = plan.LevelStop
	}
	return plan, nil
}

func nearestBeyond(levels []float64, beyond func(float64) bool, sign, price float64) (float64, bool) {
	best, found := 0.0, false
	for _, l := range levels {
		if l <= 0 || !beyond(l) {
			continue
		}
		if !found || sign*(l-best) < 0 {
			best, found = l, true
		}
	}
	return best, found
}

func descending(levels []models.Level) []models.Level {
	out := append([]models.Level(nil), levels...)
	sort.Slice(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	return out
}

func pct(p, ref float64) float64 {
	if ref == 0 {
		return 0
	}
	return (p - ref) / ref * 100
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
