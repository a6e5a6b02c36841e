package models

import "time"

// AnalysisResult is the full live analysis output for one symbol.
type AnalysisResult struct {
	Symbol         string            `json:"symbol"`
	Timeframe      string            `json:"timeframe"`
	Mode           string            `json:"mode"`
	AsOf           time.Time         `json:"as_of"`
	Price          float64           `json:"price"`
	Snapshot       IndicatorSnapshot `json:"snapshot"`
	BuyGate        GateResult        `json:"buy_gate"`
	SellGate       GateResult        `json:"sell_gate"`
	Score          ScoreCard         `json:"score"`
	Recommendation Recommendation    `json:"recommendation"`
	Targets        TargetPlan        `json:"targets"`
	Stops          StopPlan          `json:"stops"`
	RiskReward     RiskReward        `json:"risk_reward"`
	RiskRewardErr  string            `json:"risk_reward_error,omitempty"`
	Trailing       TrailingPlan      `json:"trailing"`
	Position       *PositionPlan     `json:"position,omitempty"`
	Advisories     []Advisory        `json:"advisories,omitempty"`
}

// DailySignal is the compact form published to the signal bus.
type DailySignal struct {
	Symbol     string    `json:"symbol"`
	Timeframe  string    `json:"timeframe"`
	Mode       string    `json:"mode"`
	AsOf       time.Time `json:"as_of"`
	Price      float64   `json:"price"`
	Label      string    `json:"label"`
	Category   Category  `json:"category"`
	Confidence float64   `json:"confidence"`
	Target     float64   `json:"target"`
	Stop       float64   `json:"stop"`
	RiskReward float64   `json:"risk_reward"`
	Phase      string    `json:"market_phase"`
}

// Signal builds the compact bus form of a result.
func (r *AnalysisResult) Signal() DailySignal {
	return DailySignal{
		Symbol:     r.Symbol,
		Timeframe:  r.Timeframe,
		Mode:       r.Mode,
		AsOf:       r.AsOf,
		Price:      r.Price,
		Label:      r.Recommendation.Label,
		Category:   r.Recommendation.Category,
		Confidence: r.Score.Confidence,
		Target:     r.Targets.Recommended.Price,
		Stop:       r.Stops.Recommended.Price,
		RiskReward: r.RiskReward.Ratio,
		Phase:      r.Snapshot.MarketPhase,
	}
}

// ScanRequest asks the service to screen a list of symbols.
type ScanRequest struct {
	Symbols   []string `json:"symbols"`
	Mode      string   `json:"mode"`
	Timeframe string   `json:"timeframe"`
	Capital   float64  `json:"capital"`
}

// ScreenResult is the outcome of screening a symbol list. Symbols that
// failed to analyze are listed in Errors and left out of Allocation.
type ScreenResult struct {
	Mode       string            `json:"mode"`
	Timeframe  string            `json:"timeframe"`
	Results    []*AnalysisResult `json:"results"`
	Errors     map[string]string `json:"errors,omitempty"`
	Allocation Allocation        `json:"allocation"`
}
