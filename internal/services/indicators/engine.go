// Package indicators turns an OHLCV series into a flat IndicatorSnapshot.
// Everything here is a pure function of its inputs.
package indicators

import (
	"errors"
	"fmt"

	"github.com/markcheno/go-talib"

	"SwingSignal/internal/domain/models"
)

// MinBars is the shortest series Compute accepts.
const MinBars = 50

var ErrInsufficientHistory = errors.New("insufficient price history")

// Compute runs every indicator over bars using the periods in tf. Callers
// must supply at least MinBars bars. A panic raised by the underlying math
// library is returned as an error.
func Compute(bars models.Bars, tf models.TimeframeConfig) (snap *models.IndicatorSnapshot, err error) {
	if len(bars) < MinBars {
		return nil, fmt.Errorf("%w: have %d bars, need %d", ErrInsufficientHistory, len(bars), MinBars)
	}

	defer func() {
		if r := recover(); r != nil {
			snap = nil
			err = fmt.Errorf("compute indicators: %v", r)
		}
	}()

	s := series{
		open:   bars.Opens(),
		high:   bars.Highs(),
		low:    bars.Lows(),
		close:  bars.Closes(),
		volume: bars.Volumes(),
	}
	s.rsi = rsiSeries(s.close, tf.RSIPeriod)
	s.macd, s.signal, s.hist = talib.Macd(s.close, tf.MACDFast, tf.MACDSlow, tf.MACDSignal)

	snap = &models.IndicatorSnapshot{
		Price:     last(s.close),
		PrevClose: back(s.close, 1),
	}

	computeTrend(snap, s, tf)
	computeOscillators(snap, s, tf)
	computeVolatility(snap, s, tf)
	computeVolume(snap, s, tf)
	computeLevels(snap, s, tf)
	computeMomentum(snap, s, tf)
	computeDivergence(snap, s, tf)
	snap.MarketPhase = MarketPhase(snap.EMAAlignment, snap.TrendExists, snap.Price, snap.EMATrend)

	return snap, nil
}

type series struct {
	open, high, low, close, volume []float64

	// shared by several indicator groups
	rsi, macd, signal, hist []float64
}

func last(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return xs[len(xs)-1]
}

// back returns the value n bars before the last one, or 0 when out of range.
func back(xs []float64, n int) float64 {
	i := len(xs) - 1 - n
	if i < 0 || i >= len(xs) {
		return 0
	}
	return xs[i]
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func tail(xs []float64, n int) []float64 {
	if n > len(xs) {
		n = len(xs)
	}
	return xs[len(xs)-n:]
}
