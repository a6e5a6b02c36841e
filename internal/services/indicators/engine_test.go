package indicators

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SwingSignal/internal/domain/models"
	"SwingSignal/internal/services/profiles"
)

func linearBars(n int, start, step float64) models.Bars {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make(models.Bars, n)
	for i := range bars {
		c := start + step*float64(i)
		bars[i] = models.PriceBar{
			Date:   day.AddDate(0, 0, i),
			Open:   c - step/2,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}

func waveBars(n int) models.Bars {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make(models.Bars, n)
	for i := range bars {
		c := 100 + 10*math.Sin(float64(i)/6) + 3*math.Cos(float64(i)/2.5)
		bars[i] = models.PriceBar{
			Date:   day.AddDate(0, 0, i),
			Open:   c - 0.3,
			High:   c + 1.2,
			Low:    c - 1.1,
			Close:  c,
			Volume: 800_000 + 200_000*math.Sin(float64(i)/3),
		}
	}
	return bars
}

func TestCompute_InsufficientHistory(t *testing.T) {
	_, err := Compute(linearBars(MinBars-1, 100, 1), profiles.ShortTimeframe())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientHistory))
}

func TestCompute_RisingSeries(t *testing.T) {
	snap, err := Compute(linearBars(300, 100, 1), profiles.ShortTimeframe())
	require.NoError(t, err)

	assert.Equal(t, 399.0, snap.Price)
	assert.Equal(t, 398.0, snap.PrevClose)
	assert.Equal(t, AlignStrongBullish, snap.EMAAlignment)
	assert.True(t, snap.TrendExists)
	assert.Equal(t, string(models.Bullish), snap.TrendDirection)
	assert.Equal(t, PhaseStrongUptrend, snap.MarketPhase)
	assert.Greater(t, snap.MACD, 0.0)
	assert.InDelta(t, 2.0, snap.ATR, 1e-6)
	assert.Equal(t, VolVeryLow, snap.Volatility)
	assert.Greater(t, snap.Momentum, 0.0)
	assert.Equal(t, VolumeNormal, snap.VolumeLevel)
	assert.Len(t, snap.FibRetracements, len(RetracementRatios))
	assert.Len(t, snap.FibExtensions, len(ExtensionRatios))
	assert.GreaterOrEqual(t, snap.RSI, 0.0)
	assert.LessOrEqual(t, snap.RSI, 100.0)
}

func TestCompute_FallingSeries(t *testing.T) {
	snap, err := Compute(linearBars(300, 400, -1), profiles.MediumTimeframe())
	require.NoError(t, err)

	assert.Equal(t, AlignStrongBearish, snap.EMAAlignment)
	assert.Equal(t, string(models.Bearish), snap.TrendDirection)
	assert.Equal(t, PhaseStrongDowntrend, snap.MarketPhase)
	assert.Less(t, snap.Momentum, 0.0)
}

func TestCompute_ShortSeriesClampsEMA(t *testing.T) {
	snap, err := Compute(linearBars(MinBars, 100, 0.5), profiles.ShortTimeframe())
	require.NoError(t, err)
	assert.Greater(t, snap.EMATrend, 0.0)
	assert.Less(t, snap.EMATrend, snap.Price)
}

func TestCompute_RSIBounded(t *testing.T) {
	bars := waveBars(260)
	for end := MinBars; end <= len(bars); end += 7 {
		snap, err := Compute(bars[:end], profiles.ShortTimeframe())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, snap.RSI, 0.0)
		assert.LessOrEqual(t, snap.RSI, 100.0)
		assert.Equal(t, RSIZone(snap.RSI), snap.RSIZone)
	}
}

func TestCompute_FlatSeriesRSIIsNeutral(t *testing.T) {
	snap, err := Compute(linearBars(80, 100, 0), profiles.ShortTimeframe())
	require.NoError(t, err)
	assert.Equal(t, NeutralRSI, snap.RSI)
	assert.Equal(t, ZoneNeutral, snap.RSIZone)
	assert.Equal(t, Flat, snap.RSIDirection)
}

func TestRSISeries(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   float64
	}{
		{"flat", linearCloses(40, 100, 0), NeutralRSI},
		{"falling", linearCloses(40, 200, -1), 0},
		{"rising", linearCloses(40, 100, 1), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsi := rsiSeries(tt.closes, 14)
			assert.InDelta(t, tt.want, rsi[len(rsi)-1], 1e-9)
			for i := 0; i < 14; i++ {
				assert.Equal(t, NeutralRSI, rsi[i])
			}
		})
	}
}

func linearCloses(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestCompute_Deterministic(t *testing.T) {
	bars := waveBars(120)
	a, err := Compute(bars, profiles.MediumTimeframe())
	require.NoError(t, err)
	b, err := Compute(bars, profiles.MediumTimeframe())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRSIZone(t *testing.T) {
	tests := []struct {
		rsi  float64
		want string
	}{
		{100, ZoneExtremelyOverbought},
		{80, ZoneExtremelyOverbought},
		{79.9, ZoneOverbought},
		{70, ZoneOverbought},
		{65, ZoneSlightlyOverbought},
		{60, ZoneSlightlyOverbought},
		{50, ZoneNeutral},
		{40, ZoneNeutral},
		{35, ZoneSlightlyOversold},
		{25, ZoneOversold},
		{20, ZoneOversold},
		{19.99, ZoneExtremelyOversold},
		{0, ZoneExtremelyOversold},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RSIZone(tt.rsi), "rsi=%v", tt.rsi)
	}
}

func TestRSIDirection(t *testing.T) {
	tests := []struct {
		name string
		rsi  []float64
		want string
	}{
		{"rising 45 to 52", []float64{45, 46, 48, 49, 51, 52}, Rising},
		{"falling", []float64{60, 58, 57, 55, 54, 53}, Falling},
		{"exactly five is neutral", []float64{45, 46, 47, 48, 49, 50}, Flat},
		{"too short", []float64{40, 70}, Flat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RSIDirection(tt.rsi))
		})
	}
}

func TestEMAAlignment(t *testing.T) {
	assert.Equal(t, AlignStrongBullish, EMAAlignment(110, 105, 104, 103, 100))
	assert.Equal(t, AlignBullish, EMAAlignment(110, 105, 104, 106, 100))
	assert.Equal(t, AlignStrongBearish, EMAAlignment(90, 95, 96, 97, 100))
	assert.Equal(t, AlignBearish, EMAAlignment(90, 95, 96, 94, 100))
	assert.Equal(t, AlignNeutral, EMAAlignment(101, 99, 100, 98, 100))
}

func TestMACDHelpers(t *testing.T) {
	assert.Equal(t, CrossBullish, MACDCrossover(-0.1, 0.2))
	assert.Equal(t, CrossBullish, MACDCrossover(0, 0.2))
	assert.Equal(t, CrossBearish, MACDCrossover(0.1, -0.2))
	assert.Equal(t, CrossNone, MACDCrossover(0.1, 0.2))

	assert.Equal(t, HistExpanding, HistDirection(-0.5, 0.2))
	assert.Equal(t, HistContracting, HistDirection(0.1, 0.2))
}

func TestBuckets(t *testing.T) {
	assert.Equal(t, ADXAbsent, ADXStrength(19))
	assert.Equal(t, ADXWeak, ADXStrength(24))
	assert.Equal(t, ADXModerate, ADXStrength(25))
	assert.Equal(t, ADXStrong, ADXStrength(45))
	assert.Equal(t, ADXVeryStrong, ADXStrength(60))

	assert.Equal(t, string(models.Neutral), DIDirection(25, 21))
	assert.Equal(t, string(models.Bullish), DIDirection(30, 21))
	assert.Equal(t, string(models.Bearish), DIDirection(15, 21))

	assert.Equal(t, VolLow, VolatilityLevel(1))
	assert.Equal(t, VolVeryHigh, VolatilityLevel(5))

	assert.Equal(t, BBBelowLower, BandPosition(-0.1))
	assert.Equal(t, BBLowerHalf, BandPosition(0.2))
	assert.Equal(t, BBUpperHalf, BandPosition(1))
	assert.Equal(t, BBAboveUpper, BandPosition(1.2))
	assert.Equal(t, 0.5, PercentB(10, 10, 10))

	assert.Equal(t, ZoneExtremelyOversold, StochZone(10))
	assert.Equal(t, ZoneOversold, StochZone(18))
	assert.Equal(t, ZoneNeutral, StochZone(50))
	assert.Equal(t, ZoneOverbought, StochZone(82))
	assert.Equal(t, ZoneExtremelyOverbought, StochZone(90))

	assert.Equal(t, VolumeVeryLow, VolumeLevel(0.3))
	assert.Equal(t, VolumeLow, VolumeLevel(0.6))
	assert.Equal(t, VolumeNormal, VolumeLevel(1))
	assert.Equal(t, VolumeHigh, VolumeLevel(1.7))
	assert.Equal(t, VolumeVeryHigh, VolumeLevel(2))

	assert.Equal(t, Rising, OBVTrend(105, 100))
	assert.Equal(t, Flat, OBVTrend(104, 100))
	assert.Equal(t, Falling, OBVTrend(-110, -100))
	assert.Equal(t, Rising, OBVTrend(5, 0))

	assert.Equal(t, ProximityAt, Proximity(-1.5))
	assert.Equal(t, ProximityNear, Proximity(4))
	assert.Equal(t, ProximityFar, Proximity(9))

	assert.Equal(t, MomentumStrongUp, MomentumDirection(6))
	assert.Equal(t, MomentumUp, MomentumDirection(3))
	assert.Equal(t, MomentumFlat, MomentumDirection(-1))
	assert.Equal(t, MomentumDown, MomentumDirection(-3))
	assert.Equal(t, MomentumStrongDown, MomentumDirection(-6))
}

func TestFibonacci(t *testing.T) {
	ret := Retracements(200, 100)
	require.Len(t, ret, 5)
	assert.Equal(t, "23.6%", ret[0].Name)
	assert.InDelta(t, 176.4, ret[0].Price, 1e-9)
	assert.InDelta(t, 150, ret[2].Price, 1e-9)

	ext := Extensions(200, 100)
	require.Len(t, ext, 4)
	assert.InDelta(t, 227.2, ext[0].Price, 1e-9)
	assert.InDelta(t, 300, ext[2].Price, 1e-9)

	near := Nearest(152, ret, ext)
	assert.Equal(t, "50.0%", near.Name)
	near = Nearest(230, ret, ext)
	assert.Equal(t, "127.2%", near.Name)
}

func TestDivergence(t *testing.T) {
	highs := []float64{10, 11, 12, 11, 12, 13, 14, 13}
	lows := []float64{9, 10, 11, 10, 11, 12, 13, 12}

	t.Run("bearish on higher high with lower indicator high", func(t *testing.T) {
		ind := []float64{60, 70, 75, 65, 62, 68, 66, 60}
		assert.Equal(t, DivergenceBearish, Divergence(highs, lows, ind, 8, 0))
	})

	t.Run("bullish on lower low with higher indicator low", func(t *testing.T) {
		h := []float64{14, 13, 12, 13, 12, 11, 10, 11}
		l := []float64{13, 12, 11, 12, 11, 10, 9, 10}
		ind := []float64{40, 30, 25, 35, 38, 32, 34, 36}
		assert.Equal(t, DivergenceBullish, Divergence(h, l, ind, 8, 0))
	})

	t.Run("none when indicator confirms", func(t *testing.T) {
		ind := []float64{50, 52, 54, 53, 56, 58, 60, 59}
		assert.Equal(t, DivergenceNone, Divergence(highs, lows, ind, 8, 0))
	})

	t.Run("window shrinks past warm-up", func(t *testing.T) {
		ind := []float64{0, 0, 0, 0, 0, 0, 60, 50}
		assert.Equal(t, DivergenceNone, Divergence(highs, lows, ind, 8, 6))
	})

	t.Run("bearish wins", func(t *testing.T) {
		assert.Equal(t, DivergenceBearish, CombineDivergence(DivergenceBullish, DivergenceBearish))
		assert.Equal(t, DivergenceBullish, CombineDivergence(DivergenceNone, DivergenceBullish))
		assert.Equal(t, DivergenceNone, CombineDivergence(DivergenceNone, DivergenceNone))
	})
}

func TestMarketPhase(t *testing.T) {
	tests := []struct {
		align string
		trend bool
		price float64
		want  string
	}{
		{AlignStrongBullish, true, 110, PhaseStrongUptrend},
		{AlignBullish, true, 110, PhaseUptrend},
		{AlignStrongBullish, false, 110, PhaseWeakUptrend},
		{AlignBullish, true, 90, PhaseConsolidation},
		{AlignNeutral, true, 110, PhaseConsolidation},
		{AlignStrongBearish, true, 90, PhaseStrongDowntrend},
		{AlignBearish, true, 90, PhaseDowntrend},
		{AlignBearish, false, 90, PhaseWeakDowntrend},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MarketPhase(tt.align, tt.trend, tt.price, 100), "%s/%v/%v", tt.align, tt.trend, tt.price)
	}
}
