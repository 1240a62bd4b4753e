package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ThresholdConfig holds the warning and critical usage ratios for a
// run. Supplied once at startup and immutable afterwards.
type ThresholdConfig struct {
	Warning  float64 `json:"warning"`
	Critical float64 `json:"critical"`
}

// ParseRatio converts a threshold argument into a ratio in [0,1]. Both
// ratio notation ("0.9") and percentage notation ("90%", or any bare
// value above 1) are accepted.
func ParseRatio(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	percent := strings.HasSuffix(trimmed, "%")
	trimmed = strings.TrimSuffix(trimmed, "%")

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid threshold %q: not a number", s)
	}
	if percent || value > 1 {
		value /= 100
	}
	if value < 0 || value > 1 {
		return 0, fmt.Errorf("invalid threshold %q: must be within [0,1] or [0%%,100%%]", s)
	}
	return value, nil
}

// ParseThresholds builds a validated ThresholdConfig from the raw
// --warning and --critical arguments. Every problem is reported, not
// just the first one.
func ParseThresholds(warning, critical string) (ThresholdConfig, error) {
	var errs *multierror.Error

	w, err := ParseRatio(warning)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("warning: %w", err))
	}
	c, err := ParseRatio(critical)
	if err != nil {
		errs = multierror.Append(errs, fmt.Errorf("critical: %w", err))
	}
	if errs.ErrorOrNil() != nil {
		return ThresholdConfig{}, errs.ErrorOrNil()
	}

	cfg := ThresholdConfig{Warning: w, Critical: c}
	if err := cfg.Validate(); err != nil {
		return ThresholdConfig{}, err
	}
	return cfg, nil
}

// Validate enforces 0 <= Warning < Critical <= 1.
func (c ThresholdConfig) Validate() error {
	var errs *multierror.Error
	if c.Warning < 0 || c.Warning > 1 {
		errs = multierror.Append(errs, fmt.Errorf("warning threshold %v is outside [0,1]", c.Warning))
	}
	if c.Critical < 0 || c.Critical > 1 {
		errs = multierror.Append(errs, fmt.Errorf("critical threshold %v is outside [0,1]", c.Critical))
	}
	if c.Warning >= c.Critical {
		errs = multierror.Append(errs, fmt.Errorf("warning threshold %v must be below critical threshold %v", c.Warning, c.Critical))
	}
	return errs.ErrorOrNil()
}
