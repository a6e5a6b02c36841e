package repository

import "strings"

// Timeframe selects an analysis horizon profile.
type Timeframe string

const (
	TimeframeShort  Timeframe = "short"
	TimeframeMedium Timeframe = "medium"
)

// RiskMode selects a risk appetite profile.
type RiskMode string

const (
	ModeConservative RiskMode = "conservative"
	ModeBalanced     RiskMode = "balanced"
	ModeAggressive   RiskMode = "aggressive"
)

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	switch tf {
	case TimeframeShort, TimeframeMedium:
		return true
	default:
		return false
	}
}

// IsValidRiskMode returns true if m is a supported mode.
func IsValidRiskMode(m RiskMode) bool {
	switch m {
	case ModeConservative, ModeBalanced, ModeAggressive:
		return true
	default:
		return false
	}
}

func DefaultTimeframe() Timeframe { return TimeframeShort }

func DefaultRiskMode() RiskMode { return ModeBalanced }

// NormalizeTimeframe lowercases s and falls back to the default when empty.
// Unknown values are returned as-is so lookups can reject them.
func NormalizeTimeframe(s string) Timeframe {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultTimeframe()
	}
	return Timeframe(s)
}

// NormalizeRiskMode lowercases s and falls back to the default when empty.
func NormalizeRiskMode(s string) RiskMode {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultRiskMode()
	}
	return RiskMode(s)
}

// NormalizeSymbol uppercases and trims a ticker.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
