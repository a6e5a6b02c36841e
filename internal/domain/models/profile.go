package models

// TimeframeConfig holds indicator periods for one analysis horizon.
type TimeframeConfig struct {
	Name             string  `yaml:"name" json:"name" validate:"required"`
	EMAFast          int     `yaml:"ema_fast" json:"ema_fast" validate:"gte=2"`
	EMAMedium        int     `yaml:"ema_medium" json:"ema_medium" validate:"gtfield=EMAFast"`
	EMASlow          int     `yaml:"ema_slow" json:"ema_slow" validate:"gtfield=EMAMedium"`
	EMATrend         int     `yaml:"ema_trend" json:"ema_trend" validate:"gtfield=EMASlow"`
	RSIPeriod        int     `yaml:"rsi_period" json:"rsi_period" validate:"gte=2"`
	MACDFast         int     `yaml:"macd_fast" json:"macd_fast" validate:"gte=2"`
	MACDSlow         int     `yaml:"macd_slow" json:"macd_slow" validate:"gtfield=MACDFast"`
	MACDSignal       int     `yaml:"macd_signal" json:"macd_signal" validate:"gte=2"`
	ADXPeriod        int     `yaml:"adx_period" json:"adx_period" validate:"gte=2"`
	ATRPeriod        int     `yaml:"atr_period" json:"atr_period" validate:"gte=1"`
	BollingerPeriod  int     `yaml:"bollinger_period" json:"bollinger_period" validate:"gte=2"`
	BollingerStdDev  float64 `yaml:"bollinger_stddev" json:"bollinger_stddev" validate:"gt=0"`
	StochK           int     `yaml:"stoch_k" json:"stoch_k" validate:"gte=1"`
	StochSlowing     int     `yaml:"stoch_slowing" json:"stoch_slowing" validate:"gte=1"`
	StochD           int     `yaml:"stoch_d" json:"stoch_d" validate:"gte=1"`
	VolumeAvgPeriod  int     `yaml:"volume_avg_period" json:"volume_avg_period" validate:"gte=1"`
	OBVWindow        int     `yaml:"obv_window" json:"obv_window" validate:"gte=1"`
	SupportLookback  int     `yaml:"support_lookback" json:"support_lookback" validate:"gte=2"`
	MomentumPeriod   int     `yaml:"momentum_period" json:"momentum_period" validate:"gte=1"`
	DivergenceWindow int     `yaml:"divergence_window" json:"divergence_window" validate:"gte=4"`
	YearWindow       int     `yaml:"year_window" json:"year_window" validate:"gte=1"`
}

// CategoryMultipliers scale each scoring category for a risk mode.
type CategoryMultipliers struct {
	Trend        float64 `yaml:"trend" json:"trend" validate:"gte=0"`
	Momentum     float64 `yaml:"momentum" json:"momentum" validate:"gte=0"`
	Confirmation float64 `yaml:"confirmation" json:"confirmation" validate:"gte=0"`
	Pattern      float64 `yaml:"pattern" json:"pattern" validate:"gte=0"`
}

// RecommendationThresholds are the eight cut points, highest first.
type RecommendationThresholds struct {
	StrongBuy  float64 `yaml:"strong_buy" json:"strong_buy"`
	Buy        float64 `yaml:"buy" json:"buy"`
	WeakBuy    float64 `yaml:"weak_buy" json:"weak_buy"`
	HoldUpper  float64 `yaml:"hold_upper" json:"hold_upper"`
	HoldLower  float64 `yaml:"hold_lower" json:"hold_lower"`
	WeakSell   float64 `yaml:"weak_sell" json:"weak_sell"`
	Sell       float64 `yaml:"sell" json:"sell"`
	StrongSell float64 `yaml:"strong_sell" json:"strong_sell"`
}

// Ordered returns the cut points top-down.
func (t RecommendationThresholds) Ordered() [8]float64 {
	return [8]float64{t.StrongBuy, t.Buy, t.WeakBuy, t.HoldUpper, t.HoldLower, t.WeakSell, t.Sell, t.StrongSell}
}

// RiskModeConfig holds the risk appetite parameters for one mode.
type RiskModeConfig struct {
	Name                string                   `yaml:"name" json:"name" validate:"required"`
	RiskPerTrade        float64                  `yaml:"risk_per_trade" json:"risk_per_trade" validate:"gt=0,lte=0.1"`
	MinRiskReward       float64                  `yaml:"min_risk_reward" json:"min_risk_reward" validate:"gt=0"`
	ATRStopMultiplier   float64                  `yaml:"atr_stop_multiplier" json:"atr_stop_multiplier" validate:"gt=0"`
	ATRTargetMultiplier float64                  `yaml:"atr_target_multiplier" json:"atr_target_multiplier" validate:"gt=0"`
	MinTrendADX         float64                  `yaml:"min_trend_adx" json:"min_trend_adx" validate:"gte=0,lte=100"`
	Multipliers         CategoryMultipliers      `yaml:"multipliers" json:"multipliers"`
	Thresholds          RecommendationThresholds `yaml:"thresholds" json:"thresholds"`
}

// FilterRule is one hard-filter tuple. Numeric operators compare Threshold
// against the named value; == and != compare Label against the named label.
type FilterRule struct {
	Indicator string  `yaml:"indicator" json:"indicator" validate:"required"`
	Operator  string  `yaml:"operator" json:"operator" validate:"oneof=> >= < <= == !="`
	Threshold float64 `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Label     string  `yaml:"label,omitempty" json:"label,omitempty"`
	Reason    string  `yaml:"reason" json:"reason" validate:"required"`
}

// FilterSet groups the buy and sell veto rules.
type FilterSet struct {
	Buy  []FilterRule `yaml:"buy" json:"buy" validate:"dive"`
	Sell []FilterRule `yaml:"sell" json:"sell" validate:"dive"`
}
