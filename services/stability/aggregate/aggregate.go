// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package aggregate

import (
	"math"
	"sort"

	"github.com/bellwether-analytics/bellwether/services/stability/quadrant"
	"github.com/bellwether-analytics/bellwether/services/stability/snapshot"
)

const (
	// zScore95 is the two-sided z value for a 95% confidence interval.
	zScore95 = 1.96

	// epsilon keeps batch-relative normalizations finite when every node
	// has zero variance or zero flips.
	epsilon = 1e-9
)

// Weights of the overall-stability blend.
const (
	quadrantWeight = 0.5
	varianceWeight = 0.25
	flipWeight     = 0.25
)

// Aggregate reduces N trial outcomes into a Report.
//
// Description:
//
//	Computes per-node mean/variance/stddev and 95% CI for risk and
//	influence over completed trials, quadrant occupancy counts, flip counts
//	against the baseline classification, quadrant stability, coefficients
//	of variation, and the blended overall stability score. Variance and
//	flip normalizations are batch-relative: they divide by the maximum
//	observed across all nodes in this run (plus epsilon), so a node's
//	overall stability depends on the whole batch.
//
//	Failed trials are excluded from every statistic; aggregation is
//	commutative, so outcome completion order never affects the result.
//
// Inputs:
//
//   - index: canonical node ordering.
//   - baseline: baseline quadrant per node, from point estimates.
//   - outcomes: all trial outcomes, completed and failed.
//
// Outputs:
//
//   - *Report: per-node statistics in index order. RunID and the baseline
//     supplement fields are left for the engine to fill in.
func Aggregate(index snapshot.NodeIndex, baseline []quadrant.Quadrant, outcomes []TrialOutcome) *Report {
	n := len(index)
	report := &Report{
		Index:      index,
		Nodes:      make([]NodeStats, n),
		TrialCount: len(outcomes),
	}

	completed := make([]*TrialOutcome, 0, len(outcomes))
	for i := range outcomes {
		if outcomes[i].Failed {
			report.FailedTrials++
			continue
		}
		completed = append(completed, &outcomes[i])
	}
	report.CompletedTrials = len(completed)

	for i := 0; i < n; i++ {
		stats := &report.Nodes[i]
		stats.ID = index[i]
		if len(baseline) > i {
			stats.Baseline = baseline[i]
		}

		riskValues := make([]float64, len(completed))
		influenceValues := make([]float64, len(completed))
		for t, outcome := range completed {
			riskValues[t] = outcome.Risk[i]
			influenceValues[t] = outcome.Influence[i]

			q := outcome.Quadrants[i]
			stats.QuadrantCounts[q]++
			if q != stats.Baseline {
				stats.FlipCount++
			}
		}

		stats.Risk = attributeStats(riskValues)
		stats.Influence = attributeStats(influenceValues)

		maxCount := 0
		for _, c := range stats.QuadrantCounts {
			if c > maxCount {
				maxCount = c
			}
		}
		if len(completed) > 0 {
			stats.QuadrantStability = float64(maxCount) / float64(len(completed))
		}
	}

	applyOverallStability(report)
	rankNodes(report)
	return report
}

// attributeStats computes mean, population variance, stddev, CI95, and CV
// over the trial values of one attribute.
func attributeStats(values []float64) AttributeStats {
	var stats AttributeStats
	if len(values) == 0 {
		return stats
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	stats.Mean = sum / float64(len(values))

	sq := 0.0
	for _, v := range values {
		d := v - stats.Mean
		sq += d * d
	}
	stats.Variance = sq / float64(len(values))
	stats.StdDev = math.Sqrt(stats.Variance)

	margin := zScore95 * stats.StdDev
	stats.CI95 = Interval{Lower: stats.Mean - margin, Upper: stats.Mean + margin}

	if stats.Mean > 0 {
		stats.CV = stats.StdDev / stats.Mean
	}
	return stats
}

// applyOverallStability fills in the blended score:
//
//	0.5*quadrantStability + 0.25*(1 - normVariance) + 0.25*(1 - normFlips)
//
// where normVariance divides each node's mean risk/influence variance by the
// batch maximum and normFlips divides each node's flip count by the batch
// maximum, both with an epsilon to keep the division finite.
func applyOverallStability(report *Report) {
	maxAvgVariance := 0.0
	maxFlips := 0
	for i := range report.Nodes {
		avgVar := (report.Nodes[i].Risk.Variance + report.Nodes[i].Influence.Variance) / 2.0
		if avgVar > maxAvgVariance {
			maxAvgVariance = avgVar
		}
		if report.Nodes[i].FlipCount > maxFlips {
			maxFlips = report.Nodes[i].FlipCount
		}
	}

	total := 0.0
	for i := range report.Nodes {
		stats := &report.Nodes[i]
		avgVar := (stats.Risk.Variance + stats.Influence.Variance) / 2.0
		normVariance := avgVar / (maxAvgVariance + epsilon)
		normFlips := float64(stats.FlipCount) / (float64(maxFlips) + epsilon)

		stats.OverallStability = quadrantWeight*stats.QuadrantStability +
			varianceWeight*(1.0-normVariance) +
			flipWeight*(1.0-normFlips)
		total += stats.OverallStability
	}
	if len(report.Nodes) > 0 {
		report.MeanStability = total / float64(len(report.Nodes))
	}
}

// rankNodes fills StabilityRank: node IDs by descending overall stability,
// ties broken by ID for a deterministic ordering.
func rankNodes(report *Report) {
	rank := make([]string, len(report.Nodes))
	byID := make(map[string]float64, len(report.Nodes))
	for i := range report.Nodes {
		rank[i] = report.Nodes[i].ID
		byID[report.Nodes[i].ID] = report.Nodes[i].OverallStability
	}
	sort.Slice(rank, func(a, b int) bool {
		if byID[rank[a]] != byID[rank[b]] {
			return byID[rank[a]] > byID[rank[b]]
		}
		return rank[a] < rank[b]
	})
	report.StabilityRank = rank
}
