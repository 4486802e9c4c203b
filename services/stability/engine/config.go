// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"
)

// Engine configuration constants.
const (
	// DefaultTrialCount is the number of Monte Carlo trials per run.
	DefaultTrialCount = 1000

	// DefaultRiskMultiplier amplifies local failure probability in the
	// baseline cascade propagation.
	DefaultRiskMultiplier = 1.25

	// DefaultAttenuationFactor is the damping base for distance-attenuated
	// influence.
	DefaultAttenuationFactor = 1.2

	// DefaultFailedTrialTolerance is the failed-trial fraction above which
	// a run escalates to a fatal error.
	DefaultFailedTrialTolerance = 0.05

	// maxWorkers caps the worker pool regardless of CPU count. Trials are
	// CPU-bound; oversubscription only adds scheduling overhead.
	maxWorkers = 16
)

// configValidate is the validator instance for engine configuration.
var configValidate = validator.New()

// Config controls a stability run. The zero value is not usable directly;
// call Validate (or start from DefaultConfig) to apply defaults.
type Config struct {
	// TrialCount is the number of Monte Carlo trials.
	TrialCount int `validate:"gt=0"`

	// Workers is the worker-pool size. 0 selects min(NumCPU, 16).
	Workers int `validate:"gte=0"`

	// Seed is the base seed. Trial i draws from a substream derived from
	// (Seed, i), so runs with equal Seed and TrialCount are reproducible.
	Seed uint64

	// RiskMultiplier amplifies local failure probability in the baseline
	// cascade. Must be > 0.
	RiskMultiplier float64 `validate:"gt=0"`

	// AttenuationFactor is the damping base for distance-attenuated
	// influence in the baseline scores. Must be > 0.
	AttenuationFactor float64 `validate:"gt=0"`

	// FailedTrialTolerance is the accepted failed-trial fraction in [0, 1].
	FailedTrialTolerance float64 `validate:"gte=0,lte=1"`
}

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() Config {
	return Config{
		TrialCount:           DefaultTrialCount,
		Workers:              defaultWorkers(),
		RiskMultiplier:       DefaultRiskMultiplier,
		AttenuationFactor:    DefaultAttenuationFactor,
		FailedTrialTolerance: DefaultFailedTrialTolerance,
	}
}

// Validate applies defaults for unset fields, then checks the result.
// Returns an error wrapping ErrInvalidConfig when a field is out of range.
func (c *Config) Validate() error {
	if c.TrialCount == 0 {
		c.TrialCount = DefaultTrialCount
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers()
	}
	if c.RiskMultiplier == 0 {
		c.RiskMultiplier = DefaultRiskMultiplier
	}
	if c.AttenuationFactor == 0 {
		c.AttenuationFactor = DefaultAttenuationFactor
	}
	if c.FailedTrialTolerance == 0 {
		c.FailedTrialTolerance = DefaultFailedTrialTolerance
	}
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func defaultWorkers() int {
	w := runtime.NumCPU()
	if w > maxWorkers {
		w = maxWorkers
	}
	return w
}
