// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/bellwether-analytics/bellwether/services/stability/snapshot"
)

// attrSampler draws one node attribute. Resolved once per run from the
// snapshot's distribution table so per-trial sampling is allocation-free and
// fallback warnings are recorded once per node/attribute, not once per trial.
type attrSampler struct {
	uniform      bool
	alpha, beta  float64
	lower, upper float64
}

// sample draws one value and clamps it to the declared bounds.
func (s attrSampler) sample(rng *rand.Rand) float64 {
	var v float64
	if s.uniform {
		v = rng.Float64()
	} else {
		v = betaSample(rng, s.alpha, s.beta)
	}
	return math.Max(s.lower, math.Min(s.upper, v))
}

// nodeSamplers holds the resolved importance and influence samplers for one
// node, in snapshot index order.
type nodeSamplers struct {
	importance attrSampler
	influence  attrSampler
}

// buildSamplers resolves the distribution table into concrete samplers.
// Missing or unsupported declarations fall back to uniform[0,1]; each
// substitution is recorded as a data-quality warning.
func buildSamplers(snap *snapshot.AnalysisSnapshot, diag *Diagnostics) []nodeSamplers {
	samplers := make([]nodeSamplers, snap.NodeCount())
	for i, node := range snap.Nodes {
		samplers[i] = nodeSamplers{
			importance: resolveSampler(node.ID, snapshot.AttrImportance,
				snap.DistributionFor(node.ID, snapshot.AttrImportance), diag),
			influence: resolveSampler(node.ID, snapshot.AttrInfluence,
				snap.DistributionFor(node.ID, snapshot.AttrInfluence), diag),
		}
	}
	return samplers
}

func resolveSampler(nodeID, attr string, dist *snapshot.SamplingDistribution, diag *Diagnostics) attrSampler {
	if dist == nil {
		diag.record(Warning{
			Code:    WarnMissingDistribution,
			Message: fmt.Sprintf("no %s distribution declared, sampling uniform[0,1]", attr),
			NodeID:  nodeID,
			Trial:   -1,
		})
		return attrSampler{uniform: true, lower: 0, upper: 1}
	}

	lower, upper := dist.Bounds()
	switch {
	case dist.Type == snapshot.DistributionBeta && dist.Alpha > 0 && dist.Beta > 0:
		return attrSampler{alpha: dist.Alpha, beta: dist.Beta, lower: lower, upper: upper}
	case dist.Type == snapshot.DistributionUniform:
		return attrSampler{uniform: true, lower: lower, upper: upper}
	default:
		diag.record(Warning{
			Code: WarnUnsupportedDistribution,
			Message: fmt.Sprintf("%s distribution type %q (alpha=%g, beta=%g) not supported, sampling uniform[0,1]",
				attr, dist.Type, dist.Alpha, dist.Beta),
			NodeID: nodeID,
			Trial:  -1,
		})
		return attrSampler{uniform: true, lower: lower, upper: upper}
	}
}

// trialRNG returns the random source for one trial. The stream is a pure
// function of (base seed, trial index), which gives reproducible runs and
// disjoint, non-overlapping streams across parallel workers.
func trialRNG(baseSeed uint64, trial int) *rand.Rand {
	return rand.New(rand.NewPCG(baseSeed, uint64(trial)))
}

// betaSample draws from Beta(alpha, beta) as G1/(G1+G2) with two gamma
// variates. Shape parameters must be positive; resolveSampler guarantees
// that.
func betaSample(rng *rand.Rand, alpha, beta float64) float64 {
	g1 := gammaSample(rng, alpha)
	g2 := gammaSample(rng, beta)
	if g1+g2 == 0 {
		// Both variates underflowed; split the difference.
		return 0.5
	}
	return g1 / (g1 + g2)
}

// gammaSample draws from Gamma(shape, 1) using the Marsaglia-Tsang squeeze
// method. Shapes below 1 use the boost G(a) = G(a+1) * U^(1/a).
func gammaSample(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		return gammaSample(rng, shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / (3.0 * math.Sqrt(d))
	for {
		x := rng.NormFloat64()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}
