// Package scoring converts an indicator snapshot into weighted bullish and
// bearish signals and a 0-100 confidence figure.
package scoring

import (
	"math"

	"SwingSignal/internal/domain/models"
	"SwingSignal/internal/services/indicators"
)

const (
	CategoryTrend        = "trend"
	CategoryMomentum     = "momentum"
	CategoryConfirmation = "confirmation"
	CategoryPattern      = "pattern"
)

// Weights are the base points each signal can contribute before the risk
// mode multipliers are applied.
type Weights struct {
	EMAAlignment float64
	MACD         float64
	ADXTrend     float64
	MarketPhase  float64

	RSI        float64
	Stochastic float64
	Momentum   float64

	Volume     float64
	OBV        float64
	Bollinger  float64
	Divergence float64

	Pattern float64
}

func DefaultWeights() Weights {
	return Weights{
		EMAAlignment: 15, MACD: 10, ADXTrend: 10, MarketPhase: 5,
		RSI: 12, Stochastic: 8, Momentum: 10,
		Volume: 8, OBV: 7, Bollinger: 7, Divergence: 8,
		Pattern: 20,
	}
}

// Max is the sum of all base weights.
func (w Weights) Max() float64 {
	return w.EMAAlignment + w.MACD + w.ADXTrend + w.MarketPhase +
		w.RSI + w.Stochastic + w.Momentum +
		w.Volume + w.OBV + w.Bollinger + w.Divergence +
		w.Pattern
}

// signal is one named contribution in a fixed evaluation order.
type signal struct {
	name   string
	points float64
}

type Engine struct {
	w Weights
}

func NewEngine(w Weights) *Engine {
	return &Engine{w: w}
}

// Score evaluates all four categories and aggregates them.
func (e *Engine) Score(snap *models.IndicatorSnapshot, mode models.RiskModeConfig) models.ScoreCard {
	card := models.ScoreCard{
		Signals:  make(map[string]models.SignalEntry, 12),
		MaxScore: e.w.Max(),
	}
	add := func(category string, mult float64, name string, points float64) {
		s := points * mult
		card.Signals[name] = models.SignalEntry{Category: category, Score: s, Direction: direction(s)}
		switch {
		case s > 0:
			card.BullishScore += s
		case s < 0:
			card.BearishScore += -s
		}
	}

	for _, sg := range e.trend(snap) {
		add(CategoryTrend, mode.Multipliers.Trend, sg.name, sg.points)
	}
	for _, sg := range e.momentum(snap) {
		add(CategoryMomentum, mode.Multipliers.Momentum, sg.name, sg.points)
	}
	for _, sg := range e.confirmation(snap) {
		add(CategoryConfirmation, mode.Multipliers.Confirmation, sg.name, sg.points)
	}
	add(CategoryPattern, mode.Multipliers.Pattern, "pattern", e.pattern(snap.Patterns))

	card.NetScore = card.BullishScore - card.BearishScore
	card.Confidence = Confidence(card.NetScore, card.MaxScore)
	card.ConfidenceLevel = ConfidenceLevel(card.Confidence)
	return card
}

// Confidence maps a net score onto [0,100] with 50 as neutral.
func Confidence(net, max float64) float64 {
	if max <= 0 {
		return 50
	}
	return math.Max(0, math.Min(100, 50+net/max*50))
}

func ConfidenceLevel(c float64) string {
	switch {
	case c >= 80:
		return "very_high"
	case c >= 65:
		return "high"
	case c >= 45:
		return "medium"
	case c >= 30:
		return "low"
	default:
		return "very_low"
	}
}

func direction(score float64) models.Direction {
	switch {
	case score > 0:
		return models.Bullish
	case score < 0:
		return models.Bearish
	default:
		return models.Neutral
	}
}

// inTrend reports an established trend in the given DI direction.
func inTrend(snap *models.IndicatorSnapshot, dir models.Direction) bool {
	return snap.TrendExists && snap.TrendDirection == string(dir)
}

// trendAware zeroes counter-trend extremes: overbought readings while a
// bullish trend runs and oversold readings while a bearish one does.
func trendAware(snap *models.IndicatorSnapshot, frac float64) float64 {
	if frac < 0 && inTrend(snap, models.Bullish) {
		return 0
	}
	if frac > 0 && inTrend(snap, models.Bearish) {
		return 0
	}
	return frac
}

func (e *Engine) trend(snap *models.IndicatorSnapshot) []signal {
	return []signal{
		{"ema_alignment", e.w.EMAAlignment * alignmentFrac(snap.EMAAlignment)},
		{"macd", e.w.MACD * macdFrac(snap)},
		{"adx_trend", e.w.ADXTrend * adxFrac(snap)},
		{"market_phase", e.w.MarketPhase * phaseFrac(snap.MarketPhase)},
	}
}

func alignmentFrac(a string) float64 {
	switch a {
	case indicators.AlignStrongBullish:
		return 1
	case indicators.AlignBullish:
		return 0.65
	case indicators.AlignBearish:
		return -0.65
	case indicators.AlignStrongBearish:
		return -1
	}
	return 0
}

func macdFrac(snap *models.IndicatorSnapshot) float64 {
	switch snap.MACDCrossover {
	case indicators.CrossBullish:
		return 1
	case indicators.CrossBearish:
		return -1
	}
	switch {
	case snap.MACDHist > 0 && snap.MACD > 0:
		return 0.7
	case snap.MACDHist > 0:
		return 0.4
	case snap.MACDHist < 0 && snap.MACD < 0:
		return -0.7
	case snap.MACDHist < 0:
		return -0.4
	}
	return 0
}

func adxFrac(snap *models.IndicatorSnapshot) float64 {
	var strength float64
	switch snap.ADXStrength {
	case indicators.ADXVeryStrong, indicators.ADXStrong:
		strength = 1
	case indicators.ADXModerate:
		strength = 0.8
	case indicators.ADXWeak:
		strength = 0.4
	}
	switch snap.TrendDirection {
	case string(models.Bullish):
		return strength
	case string(models.Bearish):
		return -strength
	}
	return 0
}

func phaseFrac(p string) float64 {
	switch p {
	case indicators.PhaseStrongUptrend:
		return 1
	case indicators.PhaseUptrend:
		return 0.8
	case indicators.PhaseWeakUptrend:
		return 0.4
	case indicators.PhaseWeakDowntrend:
		return -0.4
	case indicators.PhaseDowntrend:
		return -0.8
	case indicators.PhaseStrongDowntrend:
		return -1
	}
	return 0
}

func (e *Engine) momentum(snap *models.IndicatorSnapshot) []signal {
	return []signal{
		{"rsi", e.w.RSI * rsiFrac(snap)},
		{"stochastic", e.w.Stochastic * stochFrac(snap)},
		{"momentum", e.w.Momentum * momentumFrac(snap.MomentumDirection)},
	}
}

func rsiFrac(snap *models.IndicatorSnapshot) float64 {
	var zone float64
	switch snap.RSIZone {
	case indicators.ZoneExtremelyOversold:
		zone = 1
	case indicators.ZoneOversold:
		zone = 0.75
	case indicators.ZoneSlightlyOversold:
		zone = 0.35
	case indicators.ZoneSlightlyOverbought:
		zone = -0.35
	case indicators.ZoneOverbought:
		zone = -0.75
	case indicators.ZoneExtremelyOverbought:
		zone = -1
	case indicators.ZoneNeutral:
		switch snap.RSIDirection {
		case indicators.Rising:
			return 0.25
		case indicators.Falling:
			return -0.25
		}
		return 0
	}
	return trendAware(snap, zone)
}

func stochFrac(snap *models.IndicatorSnapshot) float64 {
	var zone float64
	switch snap.StochZone {
	case indicators.ZoneExtremelyOversold:
		zone = 1
	case indicators.ZoneOversold:
		zone = 0.75
	case indicators.ZoneOverbought:
		zone = -0.75
	case indicators.ZoneExtremelyOverbought:
		zone = -1
	default:
		switch {
		case snap.StochK > snap.StochD:
			return 0.35
		case snap.StochK < snap.StochD:
			return -0.35
		}
		return 0
	}
	return trendAware(snap, zone)
}

func momentumFrac(dir string) float64 {
	switch dir {
	case indicators.MomentumStrongUp:
		return 1
	case indicators.MomentumUp:
		return 0.6
	case indicators.MomentumDown:
		return -0.6
	case indicators.MomentumStrongDown:
		return -1
	}
	return 0
}

func (e *Engine) confirmation(snap *models.IndicatorSnapshot) []signal {
	return []signal{
		{"volume", e.w.Volume * volumeFrac(snap)},
		{"obv", e.w.OBV * obvFrac(snap.OBVTrend)},
		{"bollinger", e.w.Bollinger * bollingerFrac(snap)},
		{"divergence", e.w.Divergence * divergenceFrac(snap.Divergence)},
	}
}

// volumeFrac signs the volume reading by the day's price move: heavy volume
// confirms the move, thin volume undercuts it.
func volumeFrac(snap *models.IndicatorSnapshot) float64 {
	var move float64
	switch {
	case snap.Price > snap.PrevClose:
		move = 1
	case snap.Price < snap.PrevClose:
		move = -1
	default:
		return 0
	}
	var level float64
	switch snap.VolumeLevel {
	case indicators.VolumeVeryHigh:
		level = 1
	case indicators.VolumeHigh:
		level = 0.75
	case indicators.VolumeNormal:
		level = 0.25
	case indicators.VolumeLow:
		level = -0.25
	case indicators.VolumeVeryLow:
		level = -0.5
	}
	return level * move
}

func obvFrac(trend string) float64 {
	switch trend {
	case indicators.Rising:
		return 1
	case indicators.Falling:
		return -1
	}
	return 0
}

func bollingerFrac(snap *models.IndicatorSnapshot) float64 {
	var pos float64
	switch snap.BBPosition {
	case indicators.BBBelowLower:
		pos = 1
	case indicators.BBLowerHalf:
		pos = 0.4
	case indicators.BBAboveUpper:
		pos = -1
	}
	return trendAware(snap, pos)
}

func divergenceFrac(d string) float64 {
	switch d {
	case indicators.DivergenceBullish:
		return 1
	case indicators.DivergenceBearish:
		return -1
	}
	return 0
}

// pattern nets the strongest bullish and strongest bearish pattern, capped
// to the pattern weight either way.
func (e *Engine) pattern(ps []models.Pattern) float64 {
	var bull, bear float64
	for _, p := range ps {
		pts := e.w.Pattern * p.StrengthFactor() * p.Confidence / 100
		switch p.Kind {
		case models.PatternBullish:
			bull = math.Max(bull, pts)
		case models.PatternBearish:
			bear = math.Max(bear, pts)
		}
	}
	return math.Max(-e.w.Pattern, math.Min(e.w.Pattern, bull-bear))
}
