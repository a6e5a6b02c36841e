package models

// TradeDirection selects long or short geometry for targets and stops.
type TradeDirection string

const (
	Long  TradeDirection = "long"
	Short TradeDirection = "short"
)

// PriceTarget is a price level with its distance from the current price.
type PriceTarget struct {
	Method      string  `json:"method"`
	Price       float64 `json:"price"`
	DistancePct float64 `json:"distance_pct"`
}

type TargetPlan struct {
	Direction    TradeDirection `json:"direction"`
	ATRTarget    PriceTarget    `json:"atr_target"`
	LevelTarget  PriceTarget    `json:"level_target"`
	FibTarget1   PriceTarget    `json:"fib_target_1"`
	FibTarget2   PriceTarget    `json:"fib_target_2"`
	Conservative PriceTarget    `json:"conservative"`
	Aggressive   PriceTarget    `json:"aggressive"`
	Recommended  PriceTarget    `json:"recommended"`
}

type StopPlan struct {
	Direction   TradeDirection `json:"direction"`
	ATRStop     PriceTarget    `json:"atr_stop"`
	LevelStop   PriceTarget    `json:"level_stop"`
	Recommended PriceTarget    `json:"recommended"`
}

type RiskReward struct {
	Entry   float64 `json:"entry"`
	Target  float64 `json:"target"`
	Stop    float64 `json:"stop"`
	Ratio   float64 `json:"ratio"`
	Minimum float64 `json:"minimum"`
	Valid   bool    `json:"valid"`
}

// TrailingPlan describes how the stop moves as a trade gains.
type TrailingPlan struct {
	Direction        TradeDirection `json:"direction"`
	Entry            float64        `json:"entry"`
	ATR              float64        `json:"atr"`
	InitialStop      float64        `json:"initial_stop"`
	RiskUnit         float64        `json:"risk_unit"`
	BreakevenTrigger float64        `json:"breakeven_trigger"`
	TrailTrigger     float64        `json:"trail_trigger"`
	TrailDistance    float64        `json:"trail_distance"`
}

type PositionPlan struct {
	Capital       float64 `json:"capital"`
	Entry         float64 `json:"entry"`
	Stop          float64 `json:"stop"`
	RiskPerTrade  float64 `json:"risk_per_trade"`
	RiskAmount    float64 `json:"risk_amount"`
	Shares        int64   `json:"shares"`
	PositionValue float64 `json:"position_value"`
	ActualRisk    float64 `json:"actual_risk"`
	ActualRiskPct float64 `json:"actual_risk_pct"`
	CapitalPct    float64 `json:"capital_pct"`
	Capped        bool    `json:"capped"`
}

// Candidate is one symbol offered to portfolio allocation.
type Candidate struct {
	Symbol         string         `json:"symbol"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     float64        `json:"confidence"`
	Entry          float64        `json:"entry"`
	RiskReward     RiskReward     `json:"risk_reward"`
}

type AllocationLine struct {
	Symbol     string  `json:"symbol"`
	Confidence float64 `json:"confidence"`
	Weight     float64 `json:"weight"`
	Amount     float64 `json:"amount"`
	Entry      float64 `json:"entry"`
	Shares     int64   `json:"shares"`
	Invested   float64 `json:"invested"`
}

type Rejection struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

type Allocation struct {
	Capital   float64          `json:"capital"`
	Lines     []AllocationLine `json:"lines"`
	Rejected  []Rejection      `json:"rejected"`
	Invested  float64          `json:"invested"`
	Remaining float64          `json:"remaining"`
}
