package profiles

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"SwingSignal/internal/domain/models"
	domrepo "SwingSignal/internal/domain/repository"
)

// MaxWarmup is the longest indicator warm-up a profile may ask for, EMA
// periods excepted (those are clamped to the series).
const MaxWarmup = 50

// File is the on-disk strategy override document. Absent sections keep the
// built-in values.
type File struct {
	Timeframes map[string]models.TimeframeConfig `yaml:"timeframes"`
	Modes      map[string]models.RiskModeConfig  `yaml:"modes"`
	Filters    *models.FilterSet                 `yaml:"filters"`
}

// Load reads a strategy file and merges it over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Book, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy file: %w", err)
	}
	return Parse(raw)
}

// Parse merges a YAML strategy document over the defaults and validates the
// result.
func Parse(raw []byte) (*Book, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse strategy file: %w", err)
	}

	b := Default()
	for key, tf := range f.Timeframes {
		k := domrepo.NormalizeTimeframe(key)
		if !domrepo.IsValidTimeframe(k) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTimeframe, key)
		}
		if tf.Name == "" {
			tf.Name = string(k)
		}
		b.timeframes[k] = tf
	}
	for key, m := range f.Modes {
		k := domrepo.NormalizeRiskMode(key)
		if !domrepo.IsValidRiskMode(k) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRiskMode, key)
		}
		if m.Name == "" {
			m.Name = string(k)
		}
		b.modes[k] = m
	}
	if f.Filters != nil {
		b.filters = *f.Filters
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks struct tags plus the cross-field rules tags cannot express.
func (b *Book) Validate() error {
	v := validator.New()
	for k, tf := range b.timeframes {
		if err := v.Struct(tf); err != nil {
			return fmt.Errorf("timeframe %s: %w", k, err)
		}
		if err := checkWarmup(tf); err != nil {
			return fmt.Errorf("timeframe %s: %w", k, err)
		}
	}
	for k, m := range b.modes {
		if err := v.Struct(m); err != nil {
			return fmt.Errorf("mode %s: %w", k, err)
		}
		cuts := m.Thresholds.Ordered()
		for i := 1; i < len(cuts); i++ {
			if cuts[i] >= cuts[i-1] {
				return fmt.Errorf("mode %s: thresholds must be strictly decreasing (%v)", k, cuts)
			}
		}
		if cuts[0] > 100 || cuts[len(cuts)-1] < 0 {
			return fmt.Errorf("mode %s: thresholds must lie within [0,100]", k)
		}
	}
	if err := v.Struct(b.filters); err != nil {
		return fmt.Errorf("filters: %w", err)
	}
	return nil
}

func checkWarmup(tf models.TimeframeConfig) error {
	need := map[string]int{
		"rsi_period":        tf.RSIPeriod + 1,
		"macd":              tf.MACDSlow + tf.MACDSignal,
		"adx_period":        2 * tf.ADXPeriod,
		"atr_period":        tf.ATRPeriod + 1,
		"bollinger_period":  tf.BollingerPeriod,
		"stochastic":        tf.StochK + tf.StochSlowing + tf.StochD,
		"volume_avg_period": tf.VolumeAvgPeriod,
		"obv_window":        tf.OBVWindow + 1,
		"support_lookback":  tf.SupportLookback,
		"momentum_period":   tf.MomentumPeriod + 1,
		"divergence_window": tf.DivergenceWindow,
	}
	for name, n := range need {
		if n > MaxWarmup {
			return fmt.Errorf("%s needs %d bars, limit is %d", name, n, MaxWarmup)
		}
	}
	return nil
}
