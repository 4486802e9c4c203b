// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package snapshot

import "fmt"

// Distribution type tags. Only beta is implemented; anything else falls back
// to uniform[0,1] at sampling time with a recorded warning.
const (
	DistributionBeta    = "beta"
	DistributionUniform = "uniform"
)

// Sampled attributes. Each node may declare one distribution per attribute.
const (
	AttrImportance = "importance"
	AttrInfluence  = "influence"
)

// SamplingDistribution declares how one node attribute is resampled during
// Monte Carlo trials.
type SamplingDistribution struct {
	// Type is the distribution tag, e.g. "beta". Unsupported types are a
	// data-quality warning, not an error.
	Type string `json:"type" yaml:"type"`

	// Alpha and Beta are the beta-distribution shape parameters.
	Alpha float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Beta  float64 `json:"beta,omitempty" yaml:"beta,omitempty"`

	// Lower and Upper clamp the drawn sample. Both zero means "not
	// declared" and the [0, 1] default applies. A degenerate [0, 0] clamp
	// is therefore not expressible; upstream documents never declare one
	// and the wire format (omitted fields decode to zero) could not
	// distinguish it anyway.
	Lower float64 `json:"lower,omitempty" yaml:"lower,omitempty"`
	Upper float64 `json:"upper,omitempty" yaml:"upper,omitempty"`
}

// Bounds returns the clamp interval, substituting the [0, 1] default when the
// declaration left both ends zero.
func (d SamplingDistribution) Bounds() (lower, upper float64) {
	if d.Lower == 0 && d.Upper == 0 {
		return 0, 1
	}
	return d.Lower, d.Upper
}

// Validate checks that the clamp interval is non-empty.
func (d SamplingDistribution) Validate() error {
	lower, upper := d.Bounds()
	if lower > upper {
		return fmt.Errorf("%w: [%g, %g]", ErrDistributionBounds, lower, upper)
	}
	return nil
}

// NodeDistributions holds the per-attribute sampling declarations for one
// node. A nil entry means "not declared" and samples fall back to uniform.
type NodeDistributions struct {
	Importance *SamplingDistribution `json:"importance,omitempty" yaml:"importance,omitempty"`
	Influence  *SamplingDistribution `json:"influence,omitempty" yaml:"influence,omitempty"`
}

// ForAttribute returns the declaration for the named attribute, or nil.
func (nd *NodeDistributions) ForAttribute(attr string) *SamplingDistribution {
	if nd == nil {
		return nil
	}
	switch attr {
	case AttrImportance:
		return nd.Importance
	case AttrInfluence:
		return nd.Influence
	default:
		return nil
	}
}

// DistributionTable maps node ID to its sampling declarations. Nodes absent
// from the table sample uniform[0,1] for both attributes.
type DistributionTable map[string]NodeDistributions

// Validate checks every declared clamp interval.
func (t DistributionTable) Validate() error {
	for id, nd := range t {
		if nd.Importance != nil {
			if err := nd.Importance.Validate(); err != nil {
				return fmt.Errorf("node %q importance: %w", id, err)
			}
		}
		if nd.Influence != nil {
			if err := nd.Influence.Validate(); err != nil {
				return fmt.Errorf("node %q influence: %w", id, err)
			}
		}
	}
	return nil
}

// CovarianceMatrix is a declared node-to-node covariance for correlated
// sampling.
//
// Limitation: the sampler draws every attribute independently and does NOT
// honor the declared covariance. The field is validated for shape and carried
// through so downstream consumers can see what the upstream declared, matching
// the behavior of the original analysis service. Correlated sampling is an
// open product question, not an engine bug.
type CovarianceMatrix [][]float64

// Validate checks the matrix is NxN for n nodes. An empty matrix is valid
// (nothing declared).
func (c CovarianceMatrix) Validate(n int) error {
	if len(c) == 0 {
		return nil
	}
	if len(c) != n {
		return fmt.Errorf("%w: %d rows for %d nodes", ErrCovarianceDimension, len(c), n)
	}
	for i, row := range c {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns for %d nodes",
				ErrCovarianceDimension, i, len(row), n)
		}
	}
	return nil
}
