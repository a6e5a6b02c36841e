package risk

import (
	"SwingSignal/internal/domain/models"
)

// RiskReward returns |target-entry| / |entry-stop| and whether it meets
// minimum.
func RiskReward(entry, target, stop, minimum float64) (models.RiskReward, error) {
	if entry <= 0 || target <= 0 || stop <= 0 {
		return models.RiskReward{}, &ValidationError{Field: "price", Reason: "entry, target and stop must be positive"}
	}
	risk := abs(entry - stop)
	if risk == 0 {
		return models.RiskReward{}, ErrZeroRisk
	}
	ratio := abs(target-entry) / risk
	return models.RiskReward{
		Entry:   entry,
		Target:  target,
		Stop:    stop,
		Ratio:   ratio,
		Minimum: minimum,
		Valid:   ratio >= minimum,
	}, nil
}
