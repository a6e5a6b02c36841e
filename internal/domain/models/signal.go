package models

// Direction is the bias a single signal contributes.
type Direction string

const (
	Bullish Direction = "bullish"
	Bearish Direction = "bearish"
	Neutral Direction = "neutral"
)

// SignalEntry is one weighted signal after mode multipliers are applied.
type SignalEntry struct {
	Category  string    `json:"category"`
	Score     float64   `json:"score"`
	Direction Direction `json:"direction"`
}

// ScoreCard is the scoring engine output.
type ScoreCard struct {
	Signals         map[string]SignalEntry `json:"signals"`
	BullishScore    float64                `json:"bullish_score"`
	BearishScore    float64                `json:"bearish_score"`
	NetScore        float64                `json:"net_score"`
	MaxScore        float64                `json:"max_score"`
	Confidence      float64                `json:"confidence"`
	ConfidenceLevel string                 `json:"confidence_level"`
}

// GateResult is the outcome of evaluating one direction's hard filters.
type GateResult struct {
	Blocked bool     `json:"blocked"`
	Reasons []string `json:"reasons,omitempty"`
}
