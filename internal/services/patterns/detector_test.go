package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"SwingSignal/internal/domain/models"
)

func bar(o, h, l, c float64) models.PriceBar {
	return models.PriceBar{Open: o, High: h, Low: l, Close: c, Volume: 1000}
}

func names(ps []models.Pattern) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestCandleDetector_Detect(t *testing.T) {
	d := NewCandleDetector()

	tests := []struct {
		name string
		bars models.Bars
		want string
		kind models.PatternKind
	}{
		{
			name: "bullish engulfing",
			bars: models.Bars{bar(12, 12.5, 11.5, 12), bar(11.5, 11.8, 10.8, 11), bar(10.8, 12.4, 10.6, 12.2)},
			want: "Bullish Engulfing",
			kind: models.PatternBullish,
		},
		{
			name: "bearish engulfing",
			bars: models.Bars{bar(10, 10.5, 9.5, 10), bar(10.5, 11.3, 10.4, 11.2), bar(11.4, 11.5, 10, 10.2)},
			want: "Bearish Engulfing",
			kind: models.PatternBearish,
		},
		{
			name: "hammer after decline",
			bars: models.Bars{bar(15, 15.2, 14.8, 15), bar(14, 14.2, 13.8, 14), bar(13, 13.2, 12.8, 13), bar(12, 12.2, 11.8, 12), bar(11, 11.2, 10.8, 11), bar(10, 10.55, 8, 10.5)},
			want: "Hammer",
			kind: models.PatternBullish,
		},
		{
			name: "shooting star after advance",
			bars: models.Bars{bar(5, 5.2, 4.8, 5), bar(6, 6.2, 5.8, 6), bar(7, 7.2, 6.8, 7), bar(8, 8.2, 7.8, 8), bar(9, 9.2, 8.8, 9), bar(10, 12, 9.45, 9.5)},
			want: "Shooting Star",
			kind: models.PatternBearish,
		},
		{
			name: "morning star",
			bars: models.Bars{bar(12, 12.1, 9.9, 10), bar(9.8, 10, 9.5, 9.7), bar(9.9, 11.6, 9.8, 11.5)},
			want: "Morning Star",
			kind: models.PatternBullish,
		},
		{
			name: "evening star",
			bars: models.Bars{bar(10, 12.1, 9.9, 12), bar(12.2, 12.5, 12, 12.3), bar(12.1, 12.2, 10.4, 10.5)},
			want: "Evening Star",
			kind: models.PatternBearish,
		},
		{
			name: "three white soldiers",
			bars: models.Bars{bar(10, 11.1, 9.9, 11), bar(10.8, 12.1, 10.7, 12), bar(11.8, 13.1, 11.7, 13)},
			want: "Three White Soldiers",
			kind: models.PatternBullish,
		},
		{
			name: "three black crows",
			bars: models.Bars{bar(13, 13.1, 11.9, 12), bar(12.2, 12.3, 10.9, 11), bar(11.2, 11.3, 9.9, 10)},
			want: "Three Black Crows",
			kind: models.PatternBearish,
		},
		{
			name: "doji",
			bars: models.Bars{bar(10, 10.5, 9.5, 10.2), bar(10.2, 10.6, 9.9, 10.3), bar(10.3, 11, 9.6, 10.32)},
			want: "Doji",
			kind: models.PatternNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.bars)
			assert.Contains(t, names(got), tt.want)
			for _, p := range got {
				if p.Name == tt.want {
					assert.Equal(t, tt.kind, p.Kind)
					assert.Greater(t, p.StrengthFactor(), 0.0)
					assert.LessOrEqual(t, p.Confidence, 100.0)
				}
			}
		})
	}
}

func TestCandleDetector_ShortSeries(t *testing.T) {
	assert.Empty(t, NewCandleDetector().Detect(models.Bars{bar(1, 2, 0.5, 1.5)}))
}
