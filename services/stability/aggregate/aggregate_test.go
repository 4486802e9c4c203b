// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package aggregate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellwether-analytics/bellwether/services/stability/quadrant"
	"github.com/bellwether-analytics/bellwether/services/stability/snapshot"
)

// twoNodeOutcomes builds three completed trials plus one failed trial for two
// nodes "alpha" and "beta". Every statistic below is computed by hand from
// these values.
func twoNodeOutcomes() (snapshot.NodeIndex, []quadrant.Quadrant, []TrialOutcome) {
	index := snapshot.NodeIndex{"alpha", "beta"}
	baseline := []quadrant.Quadrant{quadrant.Q1, quadrant.Q4}
	outcomes := []TrialOutcome{
		{
			Risk:      []float64{0.2, 0.1},
			Influence: []float64{0.5, 0.9},
			Quadrants: []quadrant.Quadrant{quadrant.Q1, quadrant.Q4},
		},
		{
			Risk:      []float64{0.4, 0.1},
			Influence: []float64{0.5, 0.7},
			Quadrants: []quadrant.Quadrant{quadrant.Q1, quadrant.Q4},
		},
		{
			Risk:      []float64{0.6, 0.1},
			Influence: []float64{0.5, 0.8},
			Quadrants: []quadrant.Quadrant{quadrant.Q2, quadrant.Q4},
		},
		{
			// Failed trials carry no usable vectors and must not leak
			// into any statistic.
			Failed:      true,
			FailedPhase: "sampling",
		},
	}
	return index, baseline, outcomes
}

func TestAggregate_AttributeStatistics(t *testing.T) {
	index, baseline, outcomes := twoNodeOutcomes()
	report := Aggregate(index, baseline, outcomes)

	assert.Equal(t, 4, report.TrialCount)
	assert.Equal(t, 3, report.CompletedTrials)
	assert.Equal(t, 1, report.FailedTrials)
	require.Len(t, report.Nodes, 2)

	alpha := report.StatsFor("alpha")
	require.NotNil(t, alpha)

	// Risk samples 0.2, 0.4, 0.6: mean 0.4, population variance 0.08/3.
	assert.InDelta(t, 0.4, alpha.Risk.Mean, 1e-12)
	assert.InDelta(t, 0.08/3.0, alpha.Risk.Variance, 1e-12)
	assert.InDelta(t, math.Sqrt(0.08/3.0), alpha.Risk.StdDev, 1e-12)

	margin := 1.96 * math.Sqrt(0.08/3.0)
	assert.InDelta(t, 0.4-margin, alpha.Risk.CI95.Lower, 1e-12)
	assert.InDelta(t, 0.4+margin, alpha.Risk.CI95.Upper, 1e-12)
	assert.InDelta(t, math.Sqrt(0.08/3.0)/0.4, alpha.Risk.CV, 1e-12)

	// Constant influence samples collapse to zero spread.
	assert.InDelta(t, 0.5, alpha.Influence.Mean, 1e-12)
	assert.Zero(t, alpha.Influence.Variance)
	assert.Zero(t, alpha.Influence.CV)

	beta := report.StatsFor("beta")
	require.NotNil(t, beta)
	assert.InDelta(t, 0.8, beta.Influence.Mean, 1e-12)
	assert.InDelta(t, 0.02/3.0, beta.Influence.Variance, 1e-12)
}

func TestAggregate_QuadrantCountsAndFlips(t *testing.T) {
	index, baseline, outcomes := twoNodeOutcomes()
	report := Aggregate(index, baseline, outcomes)

	alpha := report.StatsFor("alpha")
	require.NotNil(t, alpha)
	assert.Equal(t, [4]int{2, 1, 0, 0}, alpha.QuadrantCounts)
	assert.Equal(t, 1, alpha.FlipCount, "one trial left the Q1 baseline")
	assert.InDelta(t, 2.0/3.0, alpha.QuadrantStability, 1e-12)

	beta := report.StatsFor("beta")
	require.NotNil(t, beta)
	assert.Equal(t, [4]int{0, 0, 0, 3}, beta.QuadrantCounts)
	assert.Zero(t, beta.FlipCount)
	assert.InDelta(t, 1.0, beta.QuadrantStability, 1e-12)
}

// TestAggregate_OverallStability pins the blended score on the hand-worked
// batch. alpha holds both batch maxima (average variance and flips), so both
// of its normalized penalty terms are ~1; beta's average variance is a quarter
// of the maximum and it never flipped.
func TestAggregate_OverallStability(t *testing.T) {
	index, baseline, outcomes := twoNodeOutcomes()
	report := Aggregate(index, baseline, outcomes)

	alpha := report.StatsFor("alpha")
	beta := report.StatsFor("beta")
	require.NotNil(t, alpha)
	require.NotNil(t, beta)

	// alpha: 0.5*(2/3) + 0.25*(1-1) + 0.25*(1-1).
	assert.InDelta(t, 1.0/3.0, alpha.OverallStability, 1e-6)
	// beta: 0.5*1 + 0.25*(1-0.25) + 0.25*(1-0).
	assert.InDelta(t, 0.9375, beta.OverallStability, 1e-6)
	assert.InDelta(t, (1.0/3.0+0.9375)/2.0, report.MeanStability, 1e-6)

	assert.Equal(t, []string{"beta", "alpha"}, report.StabilityRank)
}

func TestAggregate_RankTieBreaksByID(t *testing.T) {
	index := snapshot.NodeIndex{"zeta", "alpha", "mid"}
	baseline := []quadrant.Quadrant{quadrant.Q1, quadrant.Q1, quadrant.Q1}
	outcomes := []TrialOutcome{
		{
			Risk:      []float64{0.3, 0.3, 0.3},
			Influence: []float64{0.6, 0.6, 0.6},
			Quadrants: []quadrant.Quadrant{quadrant.Q1, quadrant.Q1, quadrant.Q1},
		},
	}
	report := Aggregate(index, baseline, outcomes)

	// Identical statistics everywhere: rank falls back to ID order.
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, report.StabilityRank)
}

func TestAggregate_AllTrialsFailed(t *testing.T) {
	index := snapshot.NodeIndex{"alpha"}
	outcomes := []TrialOutcome{
		{Failed: true, FailedPhase: "sampling"},
		{Failed: true, FailedPhase: "propagating"},
	}
	report := Aggregate(index, []quadrant.Quadrant{quadrant.Q3}, outcomes)

	assert.Equal(t, 2, report.FailedTrials)
	assert.Zero(t, report.CompletedTrials)
	require.Len(t, report.Nodes, 1)
	assert.Zero(t, report.Nodes[0].QuadrantStability)
	assert.Zero(t, report.Nodes[0].Risk.Mean)
}

func TestAggregate_NoOutcomes(t *testing.T) {
	index := snapshot.NodeIndex{"alpha", "beta"}
	report := Aggregate(index, nil, nil)

	assert.Zero(t, report.TrialCount)
	assert.Zero(t, report.CompletedTrials)
	require.Len(t, report.Nodes, 2)
	assert.Len(t, report.StabilityRank, 2)
}

func TestReport_StatsFor(t *testing.T) {
	index, baseline, outcomes := twoNodeOutcomes()
	report := Aggregate(index, baseline, outcomes)

	assert.NotNil(t, report.StatsFor("alpha"))
	assert.Nil(t, report.StatsFor("missing"))
}
