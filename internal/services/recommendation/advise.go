package recommendation

import (
	"fmt"

	"SwingSignal/internal/domain/models"
	"SwingSignal/internal/services/scoring"
)

const (
	AdviceRiskRewardLow       = "risk_reward_below_minimum"
	AdviceRiskRewardUndefined = "risk_reward_undefined"
	AdviceWeakTrend           = "trend_below_minimum_adx"
	AdvicePatternConflict     = "pattern_contradiction"
	AdviceLowConviction       = "low_conviction_strong_label"
)

// AdviceInput carries what the advisory pass looks at.
type AdviceInput struct {
	Recommendation models.Recommendation
	Score          models.ScoreCard
	Snapshot       *models.IndicatorSnapshot
	RiskReward     models.RiskReward
	RiskRewardErr  error
	Mode           models.RiskModeConfig
}

// Advise re-checks an actionable recommendation against the secondary rules
// callers may care about. It never alters the recommendation.
func Advise(in AdviceInput) []models.Advisory {
	cat := in.Recommendation.Category
	if cat != models.CategoryBuy && cat != models.CategorySell {
		return nil
	}

	var out []models.Advisory
	switch {
	case in.RiskRewardErr != nil:
		out = append(out, models.Advisory{
			Code:    AdviceRiskRewardUndefined,
			Message: fmt.Sprintf("risk/reward could not be computed: %v", in.RiskRewardErr),
		})
	case !in.RiskReward.Valid:
		out = append(out, models.Advisory{
			Code:    AdviceRiskRewardLow,
			Message: fmt.Sprintf("risk/reward %.2f is below the %.2f minimum", in.RiskReward.Ratio, in.RiskReward.Minimum),
		})
	}

	if cat == models.CategoryBuy && in.Snapshot != nil && in.Snapshot.ADX < in.Mode.MinTrendADX {
		out = append(out, models.Advisory{
			Code:    AdviceWeakTrend,
			Message: fmt.Sprintf("ADX %.1f is below the %.0f trend minimum", in.Snapshot.ADX, in.Mode.MinTrendADX),
		})
	}

	if in.Snapshot != nil {
		against := models.PatternBearish
		if cat == models.CategorySell {
			against = models.PatternBullish
		}
		for _, p := range in.Snapshot.Patterns {
			if p.Kind == against && p.Strength == models.StrengthStrong {
				out = append(out, models.Advisory{
					Code:    AdvicePatternConflict,
					Message: fmt.Sprintf("%s pattern %q contradicts the %s", p.Kind, p.Name, in.Recommendation.Label),
				})
				break
			}
		}
	}

	// conviction reads the confidence from the side of the call
	conviction := in.Score.Confidence
	if cat == models.CategorySell {
		conviction = 100 - conviction
	}
	strong := in.Recommendation.Label == models.LabelStrongBuy || in.Recommendation.Label == models.LabelStrongSell
	if level := scoring.ConfidenceLevel(conviction); strong && level != "very_high" {
		out = append(out, models.Advisory{
			Code:    AdviceLowConviction,
			Message: fmt.Sprintf("%s issued at %s conviction (%.1f)", in.Recommendation.Label, level, conviction),
		})
	}
	return out
}
