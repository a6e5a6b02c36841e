package risk

import (
	"github.com/shopspring/decimal"

	"SwingSignal/internal/domain/models"
)

// maxStopFraction bounds the stop distance relative to entry.
const maxStopFraction = 0.5

// PositionSize applies the fixed-fraction rule: risk capital*riskPerTrade on
// the distance to the stop, capped so the position never exceeds capital.
func PositionSize(capital, entry, stop, riskPerTrade float64) (models.PositionPlan, error) {
	switch {
	case capital <= 0:
		return models.PositionPlan{}, &ValidationError{Field: "capital", Reason: "must be positive"}
	case entry <= 0:
		return models.PositionPlan{}, &ValidationError{Field: "entry", Reason: "must be positive"}
	case stop <= 0:
		return models.PositionPlan{}, &ValidationError{Field: "stop", Reason: "must be positive"}
	case riskPerTrade <= 0 || riskPerTrade > 1:
		return models.PositionPlan{}, &ValidationError{Field: "risk_per_trade", Reason: "must be in (0, 1]"}
	case stop == entry:
		return models.PositionPlan{}, &ValidationError{Field: "stop", Reason: "equals entry", Err: ErrZeroRisk}
	}

	capD := decimal.NewFromFloat(capital)
	entryD := decimal.NewFromFloat(entry)
	dist := entryD.Sub(decimal.NewFromFloat(stop)).Abs()
	if dist.GreaterThan(entryD.Mul(decimal.NewFromFloat(maxStopFraction))) {
		return models.PositionPlan{}, &ValidationError{Field: "stop", Reason: "farther than 50% from entry", Err: ErrStopTooWide}
	}

	riskAmount := capD.Mul(decimal.NewFromFloat(riskPerTrade))
	shares := riskAmount.Div(dist).Floor()
	capped := false
	if shares.Mul(entryD).GreaterThan(capD) {
		shares = capD.Div(entryD).Floor()
		capped = true
	}

	value := shares.Mul(entryD)
	actual := shares.Mul(dist)
	hundred := decimal.NewFromInt(100)

	return models.PositionPlan{
		Capital:       capital,
		Entry:         entry,
		Stop:          stop,
		RiskPerTrade:  riskPerTrade,
		RiskAmount:    riskAmount.InexactFloat64(),
		Shares:        shares.IntPart(),
		PositionValue: value.InexactFloat64(),
		ActualRisk:    actual.InexactFloat64(),
		ActualRiskPct: actual.Div(capD).Mul(hundred).InexactFloat64(),
		CapitalPct:    value.Div(capD).Mul(hundred).InexactFloat64(),
		Capped:        capped,
	}, nil
}
