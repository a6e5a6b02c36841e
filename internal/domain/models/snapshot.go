package models

// Level is a named price level (support, Fibonacci ratio, ...).
type Level struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// IndicatorSnapshot is the flat result of one indicator pass over a series.
// It is produced once per analysis and never mutated afterwards.
type IndicatorSnapshot struct {
	Price     float64 `json:"price"`
	PrevClose float64 `json:"prev_close"`

	EMAFast      float64 `json:"ema_fast"`
	EMAMedium    float64 `json:"ema_medium"`
	EMASlow      float64 `json:"ema_slow"`
	EMATrend     float64 `json:"ema_trend"`
	EMAAlignment string  `json:"ema_alignment"`

	RSI          float64 `json:"rsi"`
	RSIZone      string  `json:"rsi_zone"`
	RSIDirection string  `json:"rsi_direction"`

	MACD              float64 `json:"macd"`
	MACDSignal        float64 `json:"macd_signal"`
	MACDHist          float64 `json:"macd_hist"`
	MACDCrossover     string  `json:"macd_crossover"`
	MACDHistDirection string  `json:"macd_hist_direction"`

	ADX            float64 `json:"adx"`
	PlusDI         float64 `json:"plus_di"`
	MinusDI        float64 `json:"minus_di"`
	ADXStrength    string  `json:"adx_strength"`
	TrendExists    bool    `json:"trend_exists"`
	TrendDirection string  `json:"trend_direction"`

	ATR        float64 `json:"atr"`
	ATRPercent float64 `json:"atr_pct"`
	Volatility string  `json:"volatility"`

	BBUpper    float64 `json:"bb_upper"`
	BBMiddle   float64 `json:"bb_middle"`
	BBLower    float64 `json:"bb_lower"`
	BBPercentB float64 `json:"bb_percent_b"`
	BBPosition string  `json:"bb_position"`

	StochK    float64 `json:"stoch_k"`
	StochD    float64 `json:"stoch_d"`
	StochZone string  `json:"stoch_zone"`

	Volume      float64 `json:"volume"`
	VolumeAvg   float64 `json:"volume_avg"`
	VolumeRatio float64 `json:"volume_ratio"`
	VolumeLevel string  `json:"volume_level"`
	OBV         float64 `json:"obv"`
	OBVTrend    string  `json:"obv_trend"`

	Support             float64 `json:"support"`
	Resistance          float64 `json:"resistance"`
	High52W             float64 `json:"high_52w"`
	Low52W              float64 `json:"low_52w"`
	SupportDistancePct  float64 `json:"support_distance_pct"`
	ResistanceDistPct   float64 `json:"resistance_distance_pct"`
	SupportProximity    string  `json:"support_proximity"`
	ResistanceProximity string  `json:"resistance_proximity"`

	FibRetracements []Level `json:"fib_retracements"`
	FibExtensions   []Level `json:"fib_extensions"`
	FibNearest      Level   `json:"fib_nearest"`

	Momentum          float64 `json:"momentum"`
	MomentumDirection string  `json:"momentum_direction"`

	RSIDivergence  string `json:"rsi_divergence"`
	MACDDivergence string `json:"macd_divergence"`
	Divergence     string `json:"divergence"`

	MarketPhase string `json:"market_phase"`

	Patterns []Pattern `json:"patterns,omitempty"`
}

// Value returns a numeric indicator by its snapshot name.
func (s *IndicatorSnapshot) Value(name string) (float64, bool) {
	switch name {
	case "price":
		return s.Price, true
	case "ema_fast":
		return s.EMAFast, true
	case "ema_medium":
		return s.EMAMedium, true
	case "ema_slow":
		return s.EMASlow, true
	case "ema_trend":
		return s.EMATrend, true
	case "rsi":
		return s.RSI, true
	case "macd":
		return s.MACD, true
	case "macd_signal":
		return s.MACDSignal, true
	case "macd_hist":
		return s.MACDHist, true
	case "adx":
		return s.ADX, true
	case "plus_di":
		return s.PlusDI, true
	case "minus_di":
		return s.MinusDI, true
	case "atr":
		return s.ATR, true
	case "atr_pct":
		return s.ATRPercent, true
	case "bb_percent_b":
		return s.BBPercentB, true
	case "stoch_k":
		return s.StochK, true
	case "stoch_d":
		return s.StochD, true
	case "volume_ratio":
		return s.VolumeRatio, true
	case "support_distance_pct":
		return s.SupportDistancePct, true
	case "resistance_distance_pct":
		return s.ResistanceDistPct, true
	case "momentum":
		return s.Momentum, true
	}
	return 0, false
}

// Label returns a categorical indicator by its snapshot name.
func (s *IndicatorSnapshot) Label(name string) (string, bool) {
	switch name {
	case "ema_alignment":
		return s.EMAAlignment, true
	case "rsi_zone":
		return s.RSIZone, true
	case "rsi_direction":
		return s.RSIDirection, true
	case "macd_crossover":
		return s.MACDCrossover, true
	case "macd_hist_direction":
		return s.MACDHistDirection, true
	case "adx_strength":
		return s.ADXStrength, true
	case "trend_direction":
		return s.TrendDirection, true
	case "trend_exists":
		if s.TrendExists {
			return "true", true
		}
		return "false", true
	case "volatility":
		return s.Volatility, true
	case "bb_position":
		return s.BBPosition, true
	case "stoch_zone":
		return s.StochZone, true
	case "volume_level":
		return s.VolumeLevel, true
	case "obv_trend":
		return s.OBVTrend, true
	case "support_proximity":
		return s.SupportProximity, true
	case "resistance_proximity":
		return s.ResistanceProximity, true
	case "momentum_direction":
		return s.MomentumDirection, true
	case "rsi_divergence":
		return s.RSIDivergence, true
	case "macd_divergence":
		return s.MACDDivergence, true
	case "divergence":
		return s.Divergence, true
	case "market_phase":
		return s.MarketPhase, true
	}
	return "", false
}
