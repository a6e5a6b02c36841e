// Package patterns detects candlestick formations on the most recent bars.
package patterns

import (
	"math"

	"SwingSignal/internal/domain/models"
	domsvc "SwingSignal/internal/domain/service"
)

// CandleDetector looks at the last one to three candles of a series.
type CandleDetector struct {
	// trend context for reversal patterns
	trendBars int
}

var _ domsvc.PatternDetector = (*CandleDetector)(nil)

func NewCandleDetector() *CandleDetector {
	return &CandleDetector{trendBars: 5}
}

type candle struct {
	open, high, low, close float64
}

func (c candle) body() float64      { return math.Abs(c.close - c.open) }
func (c candle) span() float64      { return c.high - c.low }
func (c candle) bullish() bool      { return c.close > c.open }
func (c candle) bearish() bool      { return c.close < c.open }
func (c candle) upperWick() float64 { return c.high - math.Max(c.open, c.close) }
func (c candle) lowerWick() float64 { return math.Min(c.open, c.close) - c.low }
func (c candle) mid() float64       { return (c.open + c.close) / 2 }

func toCandle(b models.PriceBar) candle {
	return candle{open: b.Open, high: b.High, low: b.Low, close: b.Close}
}

// Detect returns every pattern found at the end of bars, in a fixed order.
func (d *CandleDetector) Detect(bars models.Bars) []models.Pattern {
	n := len(bars)
	if n < 3 {
		return nil
	}
	c0 := toCandle(bars[n-1])
	c1 := toCandle(bars[n-2])
	c2 := toCandle(bars[n-3])
	prior := d.priorMove(bars)

	var out []models.Pattern
	add := func(p models.Pattern, ok bool) {
		if ok {
			out = append(out, p)
		}
	}

	add(engulfing(c1, c0))
	add(hammer(c0, prior))
	add(shootingStar(c0, prior))
	add(morningStar(c2, c1, c0))
	add(eveningStar(c2, c1, c0))
	add(threeSoldiers(c2, c1, c0))
	add(threeCrows(c2, c1, c0))
	add(doji(c0))
	return out
}

// priorMove is the close-to-close change over the bars leading into the
// last candle.
func (d *CandleDetector) priorMove(bars models.Bars) float64 {
	n := len(bars)
	from := n - 1 - d.trendBars
	if from < 0 {
		from = 0
	}
	return bars[n-2].Close - bars[from].Close
}

func engulfing(prev, cur candle) (models.Pattern, bool) {
	switch {
	case prev.bearish() && cur.bullish() && cur.open <= prev.close && cur.close >= prev.open && cur.body() > prev.body():
		return models.Pattern{
			Kind:        models.PatternBullish,
			Strength:    models.StrengthStrong,
			Confidence:  70,
			Name:        "Bullish Engulfing",
			Description: "White body fully engulfs the prior black body",
		}, true
	case prev.bullish() && cur.bearish() && cur.open >= prev.close && cur.close <= prev.open && cur.body() > prev.body():
		return models.Pattern{
			Kind:        models.PatternBearish,
			Strength:    models.StrengthStrong,
			Confidence:  70,
			Name:        "Bearish Engulfing",
			Description: "Black body fully engulfs the prior white body",
		}, true
	}
	return models.Pattern{}, false
}

func hammer(c candle, prior float64) (models.Pattern, bool) {
	if c.span() == 0 || prior >= 0 {
		return models.Pattern{}, false
	}
	body := c.body()
	if body > 0 && c.lowerWick() >= 2*body && c.upperWick() <= 0.3*body && body <= 0.4*c.span() {
		return models.Pattern{
			Kind:        models.PatternBullish,
			Strength:    models.StrengthModerate,
			Confidence:  60,
			Name:        "Hammer",
			Description: "Long lower shadow after a decline",
		}, true
	}
	return models.Pattern{}, false
}

func shootingStar(c candle, prior float64) (models.Pattern, bool) {
	if c.span() == 0 || prior <= 0 {
		return models.Pattern{}, false
	}
	body := c.body()
	if body > 0 && c.upperWick() >= 2*body && c.lowerWick() <= 0.3*body && body <= 0.4*c.span() {
		return models.Pattern{
			Kind:        models.PatternBearish,
			Strength:    models.StrengthModerate,
			Confidence:  60,
			Name:        "Shooting Star",
			Description: "Long upper shadow after an advance",
		}, true
	}
	return models.Pattern{}, false
}

func morningStar(first, star, last candle) (models.Pattern, bool) {
	if first.bearish() && first.body() > 0 && star.body() < 0.5*first.body() &&
		last.bullish() && last.close > first.mid() {
		return models.Pattern{
			Kind:        models.PatternBullish,
			Strength:    models.StrengthStrong,
			Confidence:  75,
			Name:        "Morning Star",
			Description: "Small-bodied candle between a decline and a strong recovery",
		}, true
	}
	return models.Pattern{}, false
}

func eveningStar(first, star, last candle) (models.Pattern, bool) {
	if first.bullish() && first.body() > 0 && star.body() < 0.5*first.body() &&
		last.bearish() && last.close < first.mid() {
		return models.Pattern{
			Kind:        models.PatternBearish,
			Strength:    models.StrengthStrong,
			Confidence:  75,
			Name:        "Evening Star",
			Description: "Small-bodied candle between an advance and a sharp reversal",
		}, true
	}
	return models.Pattern{}, false
}

func threeSoldiers(a, b, c candle) (models.Pattern, bool) {
	if a.bullish() && b.bullish() && c.bullish() &&
		b.close > a.close && c.close > b.close &&
		b.open > a.open && c.open > b.open &&
		solid(a) && solid(b) && solid(c) {
		return models.Pattern{
			Kind:        models.PatternBullish,
			Strength:    models.StrengthModerate,
			Confidence:  65,
			Name:        "Three White Soldiers",
			Description: "Three advancing white candles with progressively higher closes",
		}, true
	}
	return models.Pattern{}, false
}

func threeCrows(a, b, c candle) (models.Pattern, bool) {
	if a.bearish() && b.bearish() && c.bearish() &&
		b.close < a.close && c.close < b.close &&
		b.open < a.open && c.open < b.open &&
		solid(a) && solid(b) && solid(c) {
		return models.Pattern{
			Kind:        models.PatternBearish,
			Strength:    models.StrengthModerate,
			Confidence:  65,
			Name:        "Three Black Crows",
			Description: "Three declining black candles with progressively lower closes",
		}, true
	}
	return models.Pattern{}, false
}

func doji(c candle) (models.Pattern, bool) {
	if c.span() > 0 && c.body() <= 0.1*c.span() {
		return models.Pattern{
			Kind:        models.PatternNeutral,
			Strength:    models.StrengthWeak,
			Confidence:  50,
			Name:        "Doji",
			Description: "Open and close nearly equal; indecision",
		}, true
	}
	return models.Pattern{}, false
}

// solid is a candle whose body covers at least half its range.
func solid(c candle) bool {
	return c.span() > 0 && c.body() >= 0.5*c.span()
}
