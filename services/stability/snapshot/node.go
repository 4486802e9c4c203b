// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package snapshot

// Node is a single deliverable in the dependency graph, carrying the point
// estimates produced by the upstream analysis.
//
// Scores are conceptually in [0, 1] but the range is not hard-enforced; the
// upstream service occasionally emits values slightly outside it and the
// engine tolerates that.
type Node struct {
	// ID uniquely identifies the node within the snapshot.
	ID string `json:"id" yaml:"id" validate:"required"`

	// Name is an optional human-readable label. Defaults to ID downstream.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Importance is the point-estimate importance score.
	Importance float64 `json:"importance" yaml:"importance"`

	// Influence is the point-estimate influence score.
	Influence float64 `json:"influence" yaml:"influence"`

	// Risk is the point-estimate local risk level.
	Risk float64 `json:"risk" yaml:"risk"`

	// CriticalPath marks nodes lying on a chain whose cumulative risk is of
	// particular interest.
	CriticalPath bool `json:"critical_path,omitempty" yaml:"critical_path,omitempty"`
}

// DisplayName returns Name, falling back to ID when unset.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// NodeIndex is the canonical ordering of node IDs. All positional arrays in
// the engine (adjacency rows, sample vectors, report statistics) follow this
// ordering.
type NodeIndex []string

// NewNodeIndex builds the canonical ordering from a node list, preserving the
// order in which nodes appear in the snapshot.
func NewNodeIndex(nodes []Node) NodeIndex {
	idx := make(NodeIndex, len(nodes))
	for i, n := range nodes {
		idx[i] = n.ID
	}
	return idx
}

// PositionOf returns the position of id in the index, or -1 when absent.
func (x NodeIndex) PositionOf(id string) int {
	for i, v := range x {
		if v == id {
			return i
		}
	}
	return -1
}

// positions returns a lookup map from node ID to position. Used internally
// when resolving edge lists and dependency chains.
func (x NodeIndex) positions() map[string]int {
	m := make(map[string]int, len(x))
	for i, v := range x {
		m[v] = i
	}
	return m
}
