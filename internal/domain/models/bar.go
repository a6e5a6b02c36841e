package models

import "time"

// PriceBar is one daily OHLCV record.
type PriceBar struct {
	Date   time.Time `json:"date" db:"date"`
	Open   float64   `json:"open" db:"open"`
	High   float64   `json:"high" db:"high"`
	Low    float64   `json:"low" db:"low"`
	Close  float64   `json:"close" db:"close"`
	Volume float64   `json:"volume" db:"volume"`
}

// Bars is a chronologically ordered bar series.
type Bars []PriceBar

func (b Bars) Closes() []float64 {
	out := make([]float64, len(b))
	for i := range b {
		out[i] = b[i].Close
	}
	return out
}

func (b Bars) Highs() []float64 {
	out := make([]float64, len(b))
	for i := range b {
		out[i] = b[i].High
	}
	return out
}

func (b Bars) Lows() []float64 {
	out := make([]float64, len(b))
	for i := range b {
		out[i] = b[i].Low
	}
	return out
}

func (b Bars) Opens() []float64 {
	out := make([]float64, len(b))
	for i := range b {
		out[i] = b[i].Open
	}
	return out
}

func (b Bars) Volumes() []float64 {
	out := make([]float64, len(b))
	for i := range b {
		out[i] = b[i].Volume
	}
	return out
}

// Last returns the most recent bar. Callers guarantee a non-empty series.
func (b Bars) Last() PriceBar { return b[len(b)-1] }
