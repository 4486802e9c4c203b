// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine orchestrates Monte Carlo stability runs: per-trial sampling
// from the snapshot's distributions, graph-aware risk propagation, per-trial
// quadrant classification, and concurrent execution of independent trials.
//
// # Concurrency Model
//
// Trials are embarrassingly parallel. Every worker reads only the immutable
// snapshot plus precomputed read-only structures (topological order, parent
// lists, per-attribute samplers) and writes exclusively to its own output
// slot. Results are identical regardless of worker count because each trial's
// random stream is a deterministic function of the trial index.
//
// # Error Taxonomy
//
//   - Configuration errors abort the run before any trial is launched.
//   - Data-quality warnings (cycle detected, missing or unsupported
//     distributions) accumulate into Diagnostics and never abort the run.
//   - Trial-local failures mark that trial failed and excluded from
//     aggregation; the run aborts only when the failed fraction exceeds the
//     configured tolerance.
package engine

import "errors"

// Sentinel errors for stability runs.
var (
	// ErrNilSnapshot is returned when Run receives a nil snapshot.
	ErrNilSnapshot = errors.New("nil snapshot")

	// ErrSnapshotUnresolved is returned when the snapshot was never
	// resolved (no node index or adjacency materialized).
	ErrSnapshotUnresolved = errors.New("snapshot not resolved")

	// ErrTooManyFailedTrials is returned when the fraction of failed trials
	// exceeds Config.FailedTrialTolerance.
	ErrTooManyFailedTrials = errors.New("failed-trial fraction exceeds tolerance")

	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)
