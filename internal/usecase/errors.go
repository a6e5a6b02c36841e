package usecase

import (
	"errors"

	"SwingSignal/internal/services/backtest"
	"SwingSignal/internal/services/indicators"
	"SwingSignal/internal/services/profiles"
	"SwingSignal/internal/services/risk"
)

var (
	ErrSymbolRequired      = errors.New("symbol required")
	ErrInsufficientHistory = errors.New("not enough price history")
	ErrInvalidRange        = errors.New("invalid date range")
	ErrNoSymbols           = errors.New("no symbols to screen")
)

// IsPrecondition reports whether err was caused by bad caller input rather
// than a failing dependency.
func IsPrecondition(err error) bool {
	for _, target := range []error{
		ErrSymbolRequired,
		ErrInsufficientHistory,
		ErrInvalidRange,
		ErrNoSymbols,
		indicators.ErrInsufficientHistory,
		backtest.ErrInsufficientHistory,
		profiles.ErrUnknownTimeframe,
		profiles.ErrUnknownRiskMode,
		risk.ErrInvalidInput,
		risk.ErrZeroRisk,
		risk.ErrStopTooWide,
		risk.ErrNoVolatility,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
