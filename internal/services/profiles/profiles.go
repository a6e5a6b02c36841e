// Package profiles holds the immutable timeframe, risk-mode and hard-filter
// tables the analysis core is parameterized with.
package profiles

import (
	"errors"
	"fmt"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
)

var (
	ErrUnknownTimeframe = errors.New("unknown timeframe")
	ErrUnknownRiskMode  = errors.New("unknown risk mode")
)

// Book is a frozen set of profiles. Lookups return copies.
type Book struct {
	timeframes map[domrepo.Timeframe]models.TimeframeConfig
	modes      map[domrepo.RiskMode]models.RiskModeConfig
	filters    models.FilterSet
}

// Timeframe looks up a timeframe profile by key.
func (b *Book) Timeframe(tf domrepo.Timeframe) (models.TimeframeConfig, error) {
	c, ok := b.timeframes[tf]
	if !ok {
		return models.TimeframeConfig{}, fmt.Errorf("%w: %q", ErrUnknownTimeframe, tf)
	}
	return c, nil
}

// RiskMode looks up a risk-mode profile by key.
func (b *Book) RiskMode(m domrepo.RiskMode) (models.RiskModeConfig, error) {
	c, ok := b.modes[m]
	if !ok {
		return models.RiskModeConfig{}, fmt.Errorf("%w: %q", ErrUnknownRiskMode, m)
	}
	return c, nil
}

// Filters returns a copy of the hard-filter rules.
func (b *Book) Filters() models.FilterSet {
	return models.FilterSet{
		Buy:  append([]models.FilterRule(nil), b.filters.Buy...),
		Sell: append([]models.FilterRule(nil), b.filters.Sell...),
	}
}

// Default returns the built-in book.
func Default() *Book {
	return &Book{
		timeframes: map[domrepo.Timeframe]models.TimeframeConfig{
			domrepo.TimeframeShort:  ShortTimeframe(),
			domrepo.TimeframeMedium: MediumTimeframe(),
		},
		modes: map[domrepo.RiskMode]models.RiskModeConfig{
			domrepo.ModeConservative: Conservative(),
			domrepo.ModeBalanced:     Balanced(),
			domrepo.ModeAggressive:   Aggressive(),
		},
		filters: DefaultFilters(),
	}
}

func ShortTimeframe() models.TimeframeConfig {
	return models.TimeframeConfig{
		Name:    string(domrepo.TimeframeShort),
		EMAFast: 9, EMAMedium: 21, EMASlow: 50, EMATrend: 200,
		RSIPeriod: 14,
		MACDFast:  12, MACDSlow: 26, MACDSignal: 9,
		ADXPeriod: 14, ATRPeriod: 14,
		BollingerPeriod: 20, BollingerStdDev: 2.0,
		StochK: 14, StochSlowing: 3, StochD: 3,
		VolumeAvgPeriod: 20, OBVWindow: 10,
		SupportLookback: 20, MomentumPeriod: 10,
		DivergenceWindow: 14, YearWindow: 252,
	}
}

func MediumTimeframe() models.TimeframeConfig {
	return models.TimeframeConfig{
		Name:    string(domrepo.TimeframeMedium),
		EMAFast: 20, EMAMedium: 50, EMASlow: 100, EMATrend: 200,
		RSIPeriod: 14,
		MACDFast:  12, MACDSlow: 26, MACDSignal: 9,
		ADXPeriod: 14, ATRPeriod: 14,
		BollingerPeriod: 20, BollingerStdDev: 2.0,
		StochK: 14, StochSlowing: 3, StochD: 3,
		VolumeAvgPeriod: 20, OBVWindow: 10,
		SupportLookback: 50, MomentumPeriod: 20,
		DivergenceWindow: 30, YearWindow: 252,
	}
}

func Conservative() models.RiskModeConfig {
	return models.RiskModeConfig{
		Name:                string(domrepo.ModeConservative),
		RiskPerTrade:        0.005,
		MinRiskReward:       2.5,
		ATRStopMultiplier:   1.5,
		ATRTargetMultiplier: 2.5,
		MinTrendADX:         25,
		Multipliers:         models.CategoryMultipliers{Trend: 1.2, Momentum: 0.8, Confirmation: 1.0, Pattern: 0.7},
		Thresholds:          models.RecommendationThresholds{StrongBuy: 85, Buy: 72, WeakBuy: 62, HoldUpper: 52, HoldLower: 45, WeakSell: 35, Sell: 22, StrongSell: 0},
	}
}

func Balanced() models.RiskModeConfig {
	return models.RiskModeConfig{
		Name:                string(domrepo.ModeBalanced),
		RiskPerTrade:        0.01,
		MinRiskReward:       2.0,
		ATRStopMultiplier:   2.0,
		ATRTargetMultiplier: 3.0,
		MinTrendADX:         20,
		Multipliers:         models.CategoryMultipliers{Trend: 1.0, Momentum: 1.0, Confirmation: 1.0, Pattern: 1.0},
		Thresholds:          models.RecommendationThresholds{StrongBuy: 80, Buy: 68, WeakBuy: 58, HoldUpper: 50, HoldLower: 42, WeakSell: 32, Sell: 20, StrongSell: 0},
	}
}

func Aggressive() models.RiskModeConfig {
	return models.RiskModeConfig{
		Name:                string(domrepo.ModeAggressive),
		RiskPerTrade:        0.02,
		MinRiskReward:       1.5,
		ATRStopMultiplier:   2.5,
		ATRTargetMultiplier: 4.0,
		MinTrendADX:         15,
		Multipliers:         models.CategoryMultipliers{Trend: 0.9, Momentum: 1.2, Confirmation: 1.0, Pattern: 1.3},
		Thresholds:          models.RecommendationThresholds{StrongBuy: 75, Buy: 62, WeakBuy: 54, HoldUpper: 48, HoldLower: 40, WeakSell: 30, Sell: 18, StrongSell: 0},
	}
}

func DefaultFilters() models.FilterSet {
	return models.FilterSet{
		Buy: []models.FilterRule{
			{Indicator: "rsi", Operator: ">=", Threshold: 80, Reason: "RSI extremely overbought"},
			{Indicator: "divergence", Operator: "==", Label: "bearish", Reason: "Bearish divergence between price and momentum"},
			{Indicator: "market_phase", Operator: "==", Label: "strong_downtrend", Reason: "Strong downtrend in progress"},
			{Indicator: "volume_ratio", Operator: "<", Threshold: 0.5, Reason: "Volume too thin to confirm entry"},
		},
		Sell: []models.FilterRule{
			{Indicator: "rsi", Operator: "<=", Threshold: 20, Reason: "RSI extremely oversold"},
			{Indicator: "divergence", Operator: "==", Label: "bullish", Reason: "Bullish divergence between price and momentum"},
			{Indicator: "market_phase", Operator: "==", Label: "strong_uptrend", Reason: "Strong uptrend in progress"},
		},
	}
}
