// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package aggregate reduces Monte Carlo trial outcomes into the per-node
// stability statistics of the final report.
package aggregate

import (
	"github.com/bellwether-analytics/bellwether/services/stability/quadrant"
	"github.com/bellwether-analytics/bellwether/services/stability/snapshot"
)

// TrialOutcome is the result of one Monte Carlo trial: per-node risk and
// influence vectors in snapshot index order plus the resulting quadrants.
// Outcomes are ephemeral; they exist only to feed Aggregate.
type TrialOutcome struct {
	// Risk and Influence are per-node trial scores.
	Risk      []float64
	Influence []float64

	// Quadrants is the per-node trial classification.
	Quadrants []quadrant.Quadrant

	// Failed marks a trial that errored or panicked. Failed trials are
	// excluded from every statistic.
	Failed bool

	// FailedPhase names the phase that failed, for diagnostics.
	FailedPhase string
}

// Interval is a symmetric 95% confidence interval.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// AttributeStats holds the cross-trial statistics of one sampled attribute.
type AttributeStats struct {
	Mean     float64  `json:"mean"`
	Variance float64  `json:"variance"`
	StdDev   float64  `json:"std_dev"`
	CI95     Interval `json:"ci95"`

	// CV is the coefficient of variation: StdDev/Mean, defined as 0 when
	// Mean <= 0.
	CV float64 `json:"cv"`
}

// NodeStats is the full per-node stability summary.
type NodeStats struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	// Baseline is the quadrant from the snapshot's point estimates.
	Baseline quadrant.Quadrant `json:"baseline"`

	Risk      AttributeStats `json:"risk"`
	Influence AttributeStats `json:"influence"`

	// QuadrantCounts is the number of completed trials landing in each
	// quadrant, indexed Q1..Q4.
	QuadrantCounts [quadrant.NumQuadrants]int `json:"quadrant_counts"`

	// FlipCount is the number of completed trials whose quadrant differs
	// from Baseline.
	FlipCount int `json:"flip_count"`

	// QuadrantStability is max(QuadrantCounts)/N over completed trials.
	QuadrantStability float64 `json:"quadrant_stability"`

	// OverallStability blends quadrant stability, normalized variance, and
	// normalized flips into a single score in [0, 1].
	OverallStability float64 `json:"overall_stability"`

	// Baseline-analysis supplements (point estimates, not trial samples).
	Centrality          float64 `json:"centrality"`
	PropagatedRisk      float64 `json:"propagated_risk"`
	AttenuatedInfluence float64 `json:"attenuated_influence"`
	CriticalPath        bool    `json:"critical_path,omitempty"`
}

// Report is the stability report for one run. Read-only downstream.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`

	// Index is the canonical node ordering needed to interpret positional
	// data.
	Index snapshot.NodeIndex `json:"index"`

	// Nodes holds per-node statistics in index order.
	Nodes []NodeStats `json:"nodes"`

	// StabilityRank orders node IDs by descending overall stability,
	// ties broken by ID.
	StabilityRank []string `json:"stability_rank"`

	// TrialCount is the number of trials requested; CompletedTrials and
	// FailedTrials partition it.
	TrialCount      int `json:"trial_count"`
	CompletedTrials int `json:"completed_trials"`
	FailedTrials    int `json:"failed_trials"`

	// MeanStability is the mean per-node overall stability, a single
	// run-level stability index in [0, 1].
	MeanStability float64 `json:"mean_stability"`
}

// StatsFor returns the statistics for a node ID, or nil when absent.
func (r *Report) StatsFor(id string) *NodeStats {
	for i := range r.Nodes {
		if r.Nodes[i].ID == id {
			return &r.Nodes[i]
		}
	}
	return nil
}
