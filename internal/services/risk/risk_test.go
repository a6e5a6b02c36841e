package risk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingSignal/internal/domain/models"
	"SwingSignal/internal/services/indicators"
	"SwingSignal/internal/services/profiles"
)

func snapshot() *models.IndicatorSnapshot {
	return &models.IndicatorSnapshot{
		Price:           100,
		ATR:             2,
		Support:         96,
		Resistance:      104,
		High52W:         120,
		Low52W:          80,
		FibRetracements: indicators.Retracements(120, 80),
		FibExtensions:   indicators.Extensions(120, 80),
	}
}

func TestRiskReward(t *testing.T) {
	t.Run("balanced two to one", func(t *testing.T) {
		rr, err := RiskReward(100, 110, 95, profiles.Balanced().MinRiskReward)
		require.NoError(t, err)
		assert.InDelta(t, 2.0, rr.Ratio, 1e-12)
		assert.True(t, rr.Valid)
	})

	t.Run("below minimum", func(t *testing.T) {
		rr, err := RiskReward(100, 105, 95, 2)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, rr.Ratio, 1e-12)
		assert.False(t, rr.Valid)
	})

	t.Run("zero risk", func(t *testing.T) {
		_, err := RiskReward(100, 110, 100, 2)
		assert.True(t, errors.Is(err, ErrZeroRisk))
	})

	t.Run("scale invariant", func(t *testing.T) {
		base, err := RiskReward(37.5, 44.1, 35.2, 2)
		require.NoError(t, err)
		for _, k := range []float64{0.01, 0.5, 3, 1000} {
			scaled, err := RiskReward(37.5*k, 44.1*k, 35.2*k, 2)
			require.NoError(t, err)
			assert.InDelta(t, base.Ratio, scaled.Ratio, 1e-9, "k=%v", k)
		}
	})
}

func TestPositionSize(t *testing.T) {
	t.Run("one percent rule", func(t *testing.T) {
		p, err := PositionSize(100000, 100, 95, profiles.Balanced().RiskPerTrade)
		require.NoError(t, err)
		assert.Equal(t, int64(200), p.Shares)
		assert.Equal(t, 20000.0, p.PositionValue)
		assert.InDelta(t, 1000.0, p.ActualRisk, 1e-9)
		assert.InDelta(t, 1.0, p.ActualRiskPct, 1e-9)
		assert.InDelta(t, 20.0, p.CapitalPct, 1e-9)
		assert.False(t, p.Capped)
	})

	t.Run("capped by capital", func(t *testing.T) {
		p, err := PositionSize(10000, 100, 99.9, 0.02)
		require.NoError(t, err)
		assert.True(t, p.Capped)
		assert.Equal(t, int64(100), p.Shares)
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name                 string
			capital, entry, stop float64
			also                 error
		}{
			{"zero capital", 0, 100, 95, nil},
			{"negative entry", 1000, -1, 95, nil},
			{"zero stop", 1000, 100, 0, nil},
			{"stop equals entry", 1000, 100, 100, ErrZeroRisk},
			{"stop too wide", 1000, 100, 40, ErrStopTooWide},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := PositionSize(c.capital, c.entry, c.stop, 0.01)
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				var ve *ValidationError
				assert.True(t, errors.As(err, &ve))
				if c.also != nil {
					assert.True(t, errors.Is(err, c.also))
				}
			})
		}
	})

	t.Run("never exceeds capital", func(t *testing.T) {
		for _, capital := range []float64{500, 2500.5, 10000, 123456.78} {
			for _, entry := range []float64{0.37, 3.3, 17.99, 250, 4999} {
				for _, stopFrac := range []float64{0.999, 0.97, 0.8, 0.55} {
					for _, rpt := range []float64{0.005, 0.01, 0.02, 1} {
						p, err := PositionSize(capital, entry, entry*stopFrac, rpt)
						require.NoError(t, err)
						assert.LessOrEqual(t, float64(p.Shares)*entry, capital+1e-9)
						assert.GreaterOrEqual(t, p.Shares, int64(0))
					}
				}
			}
		}
	})
}

func TestTargets(t *testing.T) {
	snap := snapshot()

	t.Run("balanced long uses the ATR target", func(t *testing.T) {
		plan, err := Targets(snap, profiles.Balanced(), models.Long)
		require.NoError(t, err)
		assert.Equal(t, 106.0, plan.ATRTarget.Price)
		assert.InDelta(t, 6.0, plan.ATRTarget.DistancePct, 1e-9)
		assert.Equal(t, 104.0, plan.LevelTarget.Price)
		assert.Equal(t, plan.ATRTarget, plan.Recommended)
		// 80 + 1.272*40, 80 + 1.618*40
		assert.InDelta(t, 130.88, plan.FibTarget1.Price, 1e-9)
		assert.InDelta(t, 144.72, plan.FibTarget2.Price, 1e-9)
	})

	t.Run("conservative takes the nearest target above price", func(t *testing.T) {
		plan, err := Targets(snap, profiles.Conservative(), models.Long)
		require.NoError(t, err)
		assert.Equal(t, 104.0, plan.Recommended.Price)
		assert.Equal(t, "level", plan.Recommended.Method)
	})

	t.Run("aggressive takes the second extension", func(t *testing.T) {
		plan, err := Targets(snap, profiles.Aggressive(), models.Long)
		require.NoError(t, err)
		assert.Equal(t, plan.FibTarget2, plan.Recommended)
	})

	t.Run("short mirrors", func(t *testing.T) {
		plan, err := Targets(snap, profiles.Balanced(), models.Short)
		require.NoError(t, err)
		assert.Equal(t, 94.0, plan.ATRTarget.Price)
		assert.Equal(t, 96.0, plan.LevelTarget.Price)
		assert.Less(t, plan.FibTarget1.Price, 100.0)
		assert.Less(t, plan.FibTarget2.Price, plan.FibTarget1.Price)
		assert.Equal(t, 96.0, plan.Conservative.Price)
	})

	t.Run("price beyond every extension still projects above", func(t *testing.T) {
		s := snapshot()
		s.Price = 250
		plan, err := Targets(s, profiles.Aggressive(), models.Long)
		require.NoError(t, err)
		assert.Greater(t, plan.FibTarget1.Price, 250.0)
		assert.Greater(t, plan.FibTarget2.Price, plan.FibTarget1.Price)
	})

	t.Run("zero ATR", func(t *testing.T) {
		s := snapshot()
		s.ATR = 0
		_, err := Targets(s, profiles.Balanced(), models.Long)
		assert.True(t, errors.Is(err, ErrNoVolatility))
	})
}

func TestTargetsAndStopsBracketPrice(t *testing.T) {
	for _, mode := range []models.RiskModeConfig{profiles.Conservative(), profiles.Balanced(), profiles.Aggressive()} {
		for _, price := range []float64{81, 95, 100, 119, 150} {
			s := snapshot()
			s.Price = price
			s.Support = price * 0.96
			s.Resistance = price * 1.04

			long, err := Targets(s, mode, models.Long)
			require.NoError(t, err)
			lstop, err := Stops(s, mode, models.Long)
			require.NoError(t, err)
			assert.Greater(t, long.Recommended.Price, price, "%s long target @%v", mode.Name, price)
			assert.Less(t, lstop.Recommended.Price, price, "%s long stop @%v", mode.Name, price)

			short, err := Targets(s, mode, models.Short)
			require.NoError(t, err)
			sstop, err := Stops(s, mode, models.Short)
			require.NoError(t, err)
			assert.Less(t, short.Recommended.Price, price, "%s short target @%v", mode.Name, price)
			assert.Greater(t, sstop.Recommended.Price, price, "%s short stop @%v", mode.Name, price)
		}
	}
}

func TestStops(t *testing.T) {
	snap := snapshot()

	plan, err := Stops(snap, profiles.Balanced(), models.Long)
	require.NoError(t, err)
	assert.Equal(t, 96.0, plan.ATRStop.Price)
	assert.Equal(t, 95.0, plan.LevelStop.Price)
	assert.Equal(t, 96.0, plan.Recommended.Price)

	snap.Support = 99
	plan, err = Stops(snap, profiles.Balanced(), models.Long)
	require.NoError(t, err)
	assert.Equal(t, 98.0, plan.Recommended.Price)
	assert.Equal(t, "support", plan.Recommended.Method)

	short, err := Stops(snapshot(), profiles.Balanced(), models.Short)
	require.NoError(t, err)
	assert.Equal(t, 104.0, short.ATRStop.Price)
	assert.Equal(t, 105.0, short.LevelStop.Price)
	assert.Equal(t, 104.0, short.Recommended.Price)
}

func TestTrailing(t *testing.T) {
	plan := Trailing(100, 2, 2, models.Long)
	assert.Equal(t, models.Long, plan.Direction)
	assert.Equal(t, 96.0, plan.InitialStop)
	assert.Equal(t, 104.0, plan.BreakevenTrigger)
	assert.Equal(t, 108.0, plan.TrailTrigger)
	assert.Equal(t, 3.0, plan.TrailDistance)

	assert.Equal(t, 96.0, TrailingStop(plan, 103))
	assert.Equal(t, 100.0, TrailingStop(plan, 104))
	assert.Equal(t, 100.0, TrailingStop(plan, 107.9))
	assert.Equal(t, 105.0, TrailingStop(plan, 108))
	assert.Equal(t, 112.0, TrailingStop(plan, 115))
}

func TestTrailingShort(t *testing.T) {
	plan := Trailing(100, 2, 2, models.Short)
	assert.Equal(t, models.Short, plan.Direction)
	assert.Equal(t, 104.0, plan.InitialStop)
	assert.Equal(t, 96.0, plan.BreakevenTrigger)
	assert.Equal(t, 92.0, plan.TrailTrigger)

	assert.Equal(t, 104.0, TrailingStop(plan, 97))
	assert.Equal(t, 100.0, TrailingStop(plan, 96))
	assert.Equal(t, 100.0, TrailingStop(plan, 92.1))
	assert.Equal(t, 95.0, TrailingStop(plan, 92))
	assert.Equal(t, 88.0, TrailingStop(plan, 85))
}

func TestAllocate(t *testing.T) {
	buy := models.Recommendation{Label: models.LabelBuy, Category: models.CategoryBuy}
	valid := models.RiskReward{Ratio: 2.5, Minimum: 2, Valid: true}

	cands := []models.Candidate{
		{Symbol: "AAA", Recommendation: buy, Confidence: 80, Entry: 50, RiskReward: valid},
		{Symbol: "BBB", Recommendation: buy, Confidence: 60, Entry: 33.3, RiskReward: valid},
		{Symbol: "CCC", Recommendation: models.Recommendation{Label: models.LabelHold, Category: models.CategoryHold}, Confidence: 50, Entry: 10, RiskReward: valid},
		{Symbol: "DDD", Recommendation: buy, Confidence: 70, Entry: 20, RiskReward: models.RiskReward{Ratio: 1.1, Minimum: 2}},
		{Symbol: "EEE", Recommendation: buy, Confidence: 60, Entry: 7.77, RiskReward: valid},
	}

	alloc := Allocate(100000, cands)
	require.Len(t, alloc.Lines, 3)
	require.Len(t, alloc.Rejected, 2)
	assert.Equal(t, "CCC", alloc.Rejected[0].Symbol)
	assert.Contains(t, alloc.Rejected[0].Reason, "HOLD")
	assert.Equal(t, "DDD", alloc.Rejected[1].Symbol)

	var weights, amounts, invested float64
	for _, l := range alloc.Lines {
		weights += l.Weight
		amounts += l.Amount
		invested += l.Invested
		assert.LessOrEqual(t, l.Invested, l.Amount)
		assert.InDelta(t, float64(l.Shares)*l.Entry, l.Invested, 1e-6)
	}
	assert.InDelta(t, 1.0, weights, 1e-9)
	assert.LessOrEqual(t, amounts, 100000.0)
	assert.InDelta(t, invested, alloc.Invested, 1e-6)
	assert.InDelta(t, 100000-alloc.Invested, alloc.Remaining, 1e-6)

	assert.Equal(t, "AAA", alloc.Lines[0].Symbol)
	assert.InDelta(t, 0.4, alloc.Lines[0].Weight, 1e-12)
	assert.Equal(t, 40000.0, alloc.Lines[0].Amount)
	assert.Equal(t, int64(800), alloc.Lines[0].Shares)
}

func TestAllocate_NoCandidates(t *testing.T) {
	alloc := Allocate(5000, nil)
	assert.Empty(t, alloc.Lines)
	assert.Equal(t, 5000.0, alloc.Remaining)
}
