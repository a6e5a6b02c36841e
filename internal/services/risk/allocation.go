package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"SwingSignal/internal/domain/models"
)

// Allocate splits capital across BUY candidates with a valid risk/reward in
// proportion to confidence. Every other candidate is returned as a
// rejection with its reason.
func Allocate(capital float64, candidates []models.Candidate) models.Allocation {
	out := models.Allocation{Capital: capital}

	var eligible []models.Candidate
	for _, c := range candidates {
		if reason := rejectReason(c); reason != "" {
			out.Rejected = append(out.Rejected, models.Rejection{Symbol: c.Symbol, Reason: reason})
			continue
		}
		eligible = append(eligible, c)
	}

	total := decimal.Zero
	for _, c := range eligible {
		total = total.Add(decimal.NewFromFloat(c.Confidence))
	}

	capD := decimal.NewFromFloat(capital)
	if capD.IsNegative() {
		capD = decimal.Zero
	}
	invested := decimal.Zero
	for _, c := range eligible {
		conf := decimal.NewFromFloat(c.Confidence)
		entry := decimal.NewFromFloat(c.Entry)
		// truncate to cents so the amounts never sum past capital
		amount := capD.Mul(conf).Div(total).Truncate(2)
		shares := amount.Div(entry).Floor()
		spent := shares.Mul(entry)
		invested = invested.Add(spent)

		out.Lines = append(out.Lines, models.AllocationLine{
			Symbol:     c.Symbol,
			Confidence: c.Confidence,
			Weight:     conf.Div(total).InexactFloat64(),
			Amount:     amount.InexactFloat64(),
			Entry:      c.Entry,
			Shares:     shares.IntPart(),
			Invested:   spent.InexactFloat64(),
		})
	}

	out.Invested = invested.InexactFloat64()
	out.Remaining = capD.Sub(invested).InexactFloat64()
	return out
}

func rejectReason(c models.Candidate) string {
	switch {
	case c.Recommendation.Category != models.CategoryBuy:
		return fmt.Sprintf("recommendation is %s, not a buy", c.Recommendation.Label)
	case !c.RiskReward.Valid:
		return fmt.Sprintf("risk/reward %.2f below minimum %.2f", c.RiskReward.Ratio, c.RiskReward.Minimum)
	case c.Entry <= 0:
		return "entry price must be positive"
	case c.Confidence <= 0:
		return "confidence must be positive"
	}
	return ""
}
