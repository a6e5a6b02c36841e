// Package risk computes targets, stops, risk/reward, trailing-stop plans,
// position sizes and portfolio allocations.
package risk

import (
	"errors"
	"fmt"
)

var (
	ErrZeroRisk     = errors.New("stop equals entry, risk is zero")
	ErrInvalidInput = errors.New("invalid risk input")
	ErrStopTooWide  = errors.New("stop distance exceeds 50% of entry")
	ErrNoVolatility = errors.New("ATR is zero, cannot project levels")
)

// ValidationError is a caller-recoverable sizing failure. It matches
// ErrInvalidInput and, when set, the more specific Err.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidInput, e.Err}
	}
	return []error{ErrInvalidInput}
}
