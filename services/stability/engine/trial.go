// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/bellwether-analytics/bellwether/services/stability/aggregate"
	"github.com/bellwether-analytics/bellwether/services/stability/quadrant"
)

// Trial phases. Each trial advances strictly Sampling -> Propagating ->
// Classifying; the failing phase is recorded on the outcome for diagnostics.
const (
	phaseSampling     = "sampling"
	phasePropagating  = "propagating"
	phaseClassifying  = "classifying"
	propagationFactor = 0.5
)

// trialPlan is the read-only per-run state shared by every trial: the
// resolved samplers, the topological order, and the parent lists. Built once
// before the first trial is launched.
type trialPlan struct {
	samplers []nodeSamplers
	order    []int
	parents  [][]int
	seed     uint64
}

// runTrial executes one Monte Carlo trial. A panic anywhere in the trial is
// converted into a failed outcome so a single malformed entry cannot abort
// the whole run.
func (p *trialPlan) runTrial(trial int) (outcome aggregate.TrialOutcome) {
	phase := phaseSampling
	defer func() {
		if r := recover(); r != nil {
			outcome.Failed = true
			outcome.FailedPhase = phase
			slog.Error("stability trial failed",
				slog.Int("trial", trial),
				slog.String("phase", phase),
				slog.Any("panic", r),
			)
		}
	}()

	rng := trialRNG(p.seed, trial)
	n := len(p.samplers)

	// Sampling: one importance and one influence draw per node, clamped to
	// the declared bounds.
	importance := make([]float64, n)
	influence := make([]float64, n)
	for i := range p.samplers {
		importance[i] = p.samplers[i].importance.sample(rng)
		influence[i] = p.samplers[i].influence.sample(rng)
	}

	// Propagating: local risk first, then a single forward pass in
	// topological order so a parent's propagated value is finalized before
	// any child reads it. The update is capped at 1.0 so chains of
	// high-risk parents cannot compound risk past a probability.
	phase = phasePropagating
	risk := make([]float64, n)
	for i := 0; i < n; i++ {
		risk[i] = importance[i] * (1.0 - influence[i])
	}
	for _, i := range p.order {
		parents := p.parents[i]
		if len(parents) == 0 {
			continue
		}
		maxParent := 0.0
		for _, parent := range parents {
			if risk[parent] > maxParent {
				maxParent = risk[parent]
			}
		}
		risk[i] = math.Min(1.0, risk[i]+propagationFactor*risk[i]*maxParent)
	}

	// Classifying: batch-relative median thresholds over this trial's own
	// vectors, the same rule the baseline classification uses.
	phase = phaseClassifying
	quadrants, err := quadrant.Classify(risk, influence, quadrant.ByMedian)
	if err != nil {
		panic(fmt.Sprintf("classify trial %d: %v", trial, err))
	}

	return aggregate.TrialOutcome{
		Risk:      risk,
		Influence: influence,
		Quadrants: quadrants,
	}
}
