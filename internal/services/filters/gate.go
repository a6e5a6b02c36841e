// Package filters evaluates the hard veto rules for buy and sell decisions.
package filters

import (
	"fmt"

	"SwingSignal/internal/domain/models"
)

// Side selects which rule list a Gate evaluates.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Gate holds an immutable copy of the rule tables.
type Gate struct {
	buy  []models.FilterRule
	sell []models.FilterRule
}

func NewGate(set models.FilterSet) *Gate {
	return &Gate{
		buy:  append([]models.FilterRule(nil), set.Buy...),
		sell: append([]models.FilterRule(nil), set.Sell...),
	}
}

// Evaluate runs every rule for side against snap. All triggered reasons are
// returned in rule order.
func (g *Gate) Evaluate(snap *models.IndicatorSnapshot, side Side) models.GateResult {
	rules := g.buy
	if side == Sell {
		rules = g.sell
	}

	var res models.GateResult
	for _, r := range rules {
		if Triggered(snap, r) {
			res.Blocked = true
			res.Reasons = append(res.Reasons, r.Reason)
		}
	}
	return res
}

// Triggered reports whether one rule holds. Unknown indicator names never
// trigger.
func Triggered(snap *models.IndicatorSnapshot, r models.FilterRule) bool {
	if v, ok := snap.Value(r.Indicator); ok {
		return compare(v, r.Operator, r.Threshold)
	}
	if l, ok := snap.Label(r.Indicator); ok {
		switch r.Operator {
		case "==":
			return l == r.Label
		case "!=":
			return l != r.Label
		}
	}
	return false
}

func compare(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	case "!=":
		return v != threshold
	}
	return false
}

// Describe renders a rule for logs and API output.
func Describe(r models.FilterRule) string {
	if r.Label != "" {
		return fmt.Sprintf("%s %s %s", r.Indicator, r.Operator, r.Label)
	}
	return fmt.Sprintf("%s %s %g", r.Indicator, r.Operator, r.Threshold)
}
