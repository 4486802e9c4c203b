// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"log/slog"
	"sync"
)

// Warning codes for data-quality diagnostics.
const (
	// WarnIncompleteOrder: topological sort could not order every node;
	// propagation used the partial order.
	WarnIncompleteOrder = "incomplete_topological_order"

	// WarnMissingDistribution: a node/attribute had no declared sampling
	// distribution; uniform[0,1] was substituted.
	WarnMissingDistribution = "missing_distribution"

	// WarnUnsupportedDistribution: a declared distribution type or shape is
	// not supported; uniform[0,1] was substituted.
	WarnUnsupportedDistribution = "unsupported_distribution"

	// WarnTrialFailed: a single trial failed and was excluded from
	// aggregation.
	WarnTrialFailed = "trial_failed"
)

// Warning is one recorded data-quality diagnostic.
type Warning struct {
	// Code is one of the Warn* constants.
	Code string `json:"code"`

	// Message is a human-readable description with enough context to fix
	// the snapshot.
	Message string `json:"message"`

	// NodeID names the affected node, when node-scoped.
	NodeID string `json:"node_id,omitempty"`

	// Trial is the affected trial index for trial-scoped warnings, else -1.
	Trial int `json:"trial"`
}

// Diagnostics accumulates non-fatal warnings during a run. Warnings are
// surfaced to the caller alongside the report and never silently dropped.
//
// Thread Safety: safe for concurrent use; trial workers record failures
// concurrently.
type Diagnostics struct {
	mu       sync.Mutex
	warnings []Warning
}

// Warnings returns a copy of the recorded warnings.
func (d *Diagnostics) Warnings() []Warning {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Warning, len(d.warnings))
	copy(out, d.warnings)
	return out
}

// HasCode reports whether any warning with the given code was recorded.
func (d *Diagnostics) HasCode(code string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, w := range d.warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func (d *Diagnostics) record(w Warning) {
	d.mu.Lock()
	d.warnings = append(d.warnings, w)
	d.mu.Unlock()

	slog.Warn("stability diagnostic",
		slog.String("code", w.Code),
		slog.String("message", w.Message),
		slog.String("node_id", w.NodeID),
		slog.Int("trial", w.Trial),
	)
}
