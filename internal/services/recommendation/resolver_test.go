package recommendation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"SwingSignal/internal/domain/models"
	"SwingSignal/internal/services/profiles"
)

var (
	open    = models.GateResult{}
	blocked = models.GateResult{Blocked: true, Reasons: []string{"x"}}
)

func TestResolve_Balanced(t *testing.T) {
	th := profiles.Balanced().Thresholds

	tests := []struct {
		conf     float64
		label    string
		category models.Category
	}{
		{85, models.LabelStrongBuy, models.CategoryBuy},
		{80, models.LabelStrongBuy, models.CategoryBuy},
		{70, models.LabelBuy, models.CategoryBuy},
		{60, models.LabelWeakBuy, models.CategoryBuy},
		{55, models.LabelHold, models.CategoryHold},
		{45, models.LabelHold, models.CategoryHold},
		{35, models.LabelWeakSell, models.CategorySell},
		{25, models.LabelSell, models.CategorySell},
		{10, models.LabelStrongSell, models.CategorySell},
		{0, models.LabelStrongSell, models.CategorySell},
	}
	for _, tt := range tests {
		got := Resolve(tt.conf, open, open, th)
		assert.Equal(t, tt.label, got.Label, "conf=%v", tt.conf)
		assert.Equal(t, tt.category, got.Category, "conf=%v", tt.conf)
	}
}

func TestResolve_Gates(t *testing.T) {
	th := profiles.Balanced().Thresholds

	got := Resolve(85, blocked, open, th)
	assert.Equal(t, models.LabelBuyBlocked, got.Label)
	assert.Equal(t, models.CategoryBlocked, got.Category)

	got = Resolve(50, blocked, open, th)
	assert.Equal(t, models.CategoryBlocked, got.Category)

	// a blocked buy gate is irrelevant to a bearish reading
	got = Resolve(10, blocked, open, th)
	assert.Equal(t, models.LabelStrongSell, got.Label)

	got = Resolve(10, open, blocked, th)
	assert.Equal(t, models.LabelSellBlocked, got.Label)

	got = Resolve(70, open, blocked, th)
	assert.Equal(t, models.LabelBuy, got.Label)
}

func TestResolve_ModesDiffer(t *testing.T) {
	assert.Equal(t, models.LabelBuy, Resolve(75, open, open, profiles.Conservative().Thresholds).Label)
	assert.Equal(t, models.LabelStrongBuy, Resolve(75, open, open, profiles.Aggressive().Thresholds).Label)
}

func TestAdvise(t *testing.T) {
	mode := profiles.Balanced()
	buy := models.Recommendation{Label: models.LabelStrongBuy, Category: models.CategoryBuy}

	t.Run("clean strong buy", func(t *testing.T) {
		got := Advise(AdviceInput{
			Recommendation: buy,
			Score:          models.ScoreCard{Confidence: 90},
			Snapshot:       &models.IndicatorSnapshot{ADX: 30},
			RiskReward:     models.RiskReward{Ratio: 2.5, Minimum: 2, Valid: true},
			Mode:           mode,
		})
		assert.Empty(t, got)
	})

	t.Run("collects every advisory", func(t *testing.T) {
		got := Advise(AdviceInput{
			Recommendation: buy,
			Score:          models.ScoreCard{Confidence: 78},
			Snapshot: &models.IndicatorSnapshot{ADX: 12, Patterns: []models.Pattern{
				{Kind: models.PatternBearish, Strength: models.StrengthStrong, Name: "Evening Star"},
			}},
			RiskReward: models.RiskReward{Ratio: 1.2, Minimum: 2},
			Mode:       mode,
		})
		codes := make([]string, 0, len(got))
		for _, a := range got {
			codes = append(codes, a.Code)
		}
		assert.Equal(t, []string{AdviceRiskRewardLow, AdviceWeakTrend, AdvicePatternConflict, AdviceLowConviction}, codes)
	})

	t.Run("undefined risk reward on a sell", func(t *testing.T) {
		got := Advise(AdviceInput{
			Recommendation: models.Recommendation{Label: models.LabelStrongSell, Category: models.CategorySell},
			Score:          models.ScoreCard{Confidence: 5},
			Snapshot:       &models.IndicatorSnapshot{ADX: 5},
			RiskRewardErr:  errors.New("zero risk"),
			Mode:           mode,
		})
		if assert.Len(t, got, 1) {
			assert.Equal(t, AdviceRiskRewardUndefined, got[0].Code)
		}
	})

	t.Run("hold gets no advice", func(t *testing.T) {
		got := Advise(AdviceInput{Recommendation: models.Recommendation{Label: models.LabelHold, Category: models.CategoryHold}})
		assert.Nil(t, got)
	})
}
