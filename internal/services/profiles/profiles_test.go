package profiles

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domrepo "SwingSignal/internal/domain/repository"
)

func TestDefault_Validates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestBook_Lookup(t *testing.T) {
	b := Default()

	tf, err := b.Timeframe(domrepo.TimeframeMedium)
	require.NoError(t, err)
	assert.Equal(t, 20, tf.EMAFast)
	assert.Equal(t, 50, tf.SupportLookback)

	m, err := b.RiskMode(domrepo.ModeBalanced)
	require.NoError(t, err)
	assert.Equal(t, 0.01, m.RiskPerTrade)
	assert.Equal(t, 2.0, m.MinRiskReward)

	_, err = b.Timeframe("weekly")
	assert.True(t, errors.Is(err, ErrUnknownTimeframe))

	_, err = b.RiskMode("yolo")
	assert.True(t, errors.Is(err, ErrUnknownRiskMode))
}

func TestBook_FiltersAreCopies(t *testing.T) {
	b := Default()
	f := b.Filters()
	f.Buy[0].Threshold = 1
	assert.Equal(t, 80.0, b.Filters().Buy[0].Threshold)
}

func TestParse(t *testing.T) {
	t.Run("overrides one mode", func(t *testing.T) {
		doc := []byte(`
modes:
  aggressive:
    risk_per_trade: 0.03
    min_risk_reward: 1.2
    atr_stop_multiplier: 3
    atr_target_multiplier: 5
    min_trend_adx: 10
    multipliers: {trend: 1, momentum: 1.5, confirmation: 1, pattern: 1.5}
    thresholds: {strong_buy: 70, buy: 60, weak_buy: 52, hold_upper: 47, hold_lower: 40, weak_sell: 30, sell: 15, strong_sell: 0}
`)
		b, err := Parse(doc)
		require.NoError(t, err)
		m, err := b.RiskMode(domrepo.ModeAggressive)
		require.NoError(t, err)
		assert.Equal(t, "aggressive", m.Name)
		assert.Equal(t, 0.03, m.RiskPerTrade)

		bal, err := b.RiskMode(domrepo.ModeBalanced)
		require.NoError(t, err)
		assert.Equal(t, 0.01, bal.RiskPerTrade)
	})

	t.Run("rejects unknown mode key", func(t *testing.T) {
		_, err := Parse([]byte("modes:\n  reckless:\n    risk_per_trade: 0.5\n"))
		assert.True(t, errors.Is(err, ErrUnknownRiskMode))
	})

	t.Run("rejects non decreasing thresholds", func(t *testing.T) {
		doc := []byte(`
modes:
  balanced:
    risk_per_trade: 0.01
    min_risk_reward: 2
    atr_stop_multiplier: 2
    atr_target_multiplier: 3
    min_trend_adx: 20
    thresholds: {strong_buy: 60, buy: 70, weak_buy: 58, hold_upper: 50, hold_lower: 42, weak_sell: 32, sell: 20, strong_sell: 0}
`)
		_, err := Parse(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "strictly decreasing")
	})

	t.Run("rejects long warm-up", func(t *testing.T) {
		doc := []byte(`
timeframes:
  short:
    ema_fast: 9
    ema_medium: 21
    ema_slow: 50
    ema_trend: 200
    rsi_period: 14
    macd_fast: 12
    macd_slow: 26
    macd_signal: 9
    adx_period: 14
    atr_period: 14
    bollinger_period: 20
    bollinger_stddev: 2
    stoch_k: 14
    stoch_slowing: 3
    stoch_d: 3
    volume_avg_period: 20
    obv_window: 10
    support_lookback: 120
    momentum_period: 10
    divergence_window: 14
    year_window: 252
`)
		_, err := Parse(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "support_lookback")
	})

	t.Run("rejects bad filter operator", func(t *testing.T) {
		_, err := Parse([]byte("filters:\n  buy:\n    - {indicator: rsi, operator: '~', threshold: 70, reason: x}\n"))
		require.Error(t, err)
	})
}
