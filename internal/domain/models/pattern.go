package models

// PatternKind is the directional bias of a detected pattern.
type PatternKind string

const (
	PatternBullish PatternKind = "bullish"
	PatternBearish PatternKind = "bearish"
	PatternNeutral PatternKind = "neutral"
)

// PatternStrength grades how reliable a pattern is.
type PatternStrength string

const (
	StrengthWeak     PatternStrength = "weak"
	StrengthModerate PatternStrength = "moderate"
	StrengthStrong   PatternStrength = "strong"
)

// Pattern is a candlestick or chart formation found at the end of a series.
// Scoring only reads Kind, Strength and Confidence.
type Pattern struct {
	Kind        PatternKind     `json:"kind"`
	Strength    PatternStrength `json:"strength"`
	Confidence  float64         `json:"confidence"` // 0..100
	Name        string          `json:"name"`
	Description string          `json:"description"`
}

// StrengthFactor maps strength to a 0..1 weight.
func (p Pattern) StrengthFactor() float64 {
	switch p.Strength {
	case StrengthStrong:
		return 1.0
	case StrengthModerate:
		return 0.6
	case StrengthWeak:
		return 0.3
	default:
		return 0
	}
}
