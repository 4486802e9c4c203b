// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

// AllTargets passed as end makes AllPaths enumerate paths to every reachable
// node instead of a single destination.
const AllTargets = -1

// PathVisitor receives each enumerated path. The slice is reused between
// calls; visitors must copy it if they retain it. Returning false stops the
// enumeration early.
type PathVisitor func(path []int) bool

// AllPaths enumerates simple paths from start using depth-first search and
// streams them to the visitor, avoiding materialization of the full path set.
//
// When end is AllTargets, every path from start to every reachable node is
// emitted (including the single-element path [start]). Otherwise only paths
// terminating at end are emitted.
//
// A node already on the current path is never revisited. The graph is assumed
// acyclic, but the guard keeps the enumeration finite if a cycle slips
// through upstream validation.
func AllPaths(adj [][]float64, start, end int, visit PathVisitor) {
	if start < 0 || start >= len(adj) {
		return
	}
	onPath := make([]bool, len(adj))
	path := make([]int, 0, len(adj))
	dfsPaths(adj, start, end, path, onPath, visit)
}

// CollectPaths materializes the paths emitted by AllPaths. Intended for small
// graphs and tests; large graphs should stream via AllPaths directly.
func CollectPaths(adj [][]float64, start, end int) [][]int {
	var paths [][]int
	AllPaths(adj, start, end, func(p []int) bool {
		cp := make([]int, len(p))
		copy(cp, p)
		paths = append(paths, cp)
		return true
	})
	return paths
}

func dfsPaths(adj [][]float64, current, end int, path []int, onPath []bool, visit PathVisitor) bool {
	path = append(path, current)
	onPath[current] = true
	defer func() { onPath[current] = false }()

	if end == AllTargets || current == end {
		if !visit(path) {
			return false
		}
		if current == end && end != AllTargets {
			return true
		}
	}

	for child, w := range adj[current] {
		if w <= 0 || onPath[child] {
			continue
		}
		if !dfsPaths(adj, child, end, path, onPath, visit) {
			return false
		}
	}
	return true
}

// PathStats summarizes the path structure rooted at a node.
type PathStats struct {
	// TotalPaths is the number of simple paths from the root.
	TotalPaths int `json:"total_paths"`

	// Longest and Shortest are hop counts (path length minus one).
	Longest  int `json:"longest"`
	Shortest int `json:"shortest"`

	// MeanLength is the mean hop count across all paths.
	MeanLength float64 `json:"mean_length"`
}

// PathStatsFrom computes path statistics for all paths rooted at start.
func PathStatsFrom(adj [][]float64, start int) PathStats {
	stats := PathStats{Shortest: -1}
	totalHops := 0
	AllPaths(adj, start, AllTargets, func(p []int) bool {
		hops := len(p) - 1
		stats.TotalPaths++
		totalHops += hops
		if hops > stats.Longest {
			stats.Longest = hops
		}
		if stats.Shortest < 0 || hops < stats.Shortest {
			stats.Shortest = hops
		}
		return true
	})
	if stats.Shortest < 0 {
		stats.Shortest = 0
	}
	if stats.TotalPaths > 0 {
		stats.MeanLength = float64(totalHops) / float64(stats.TotalPaths)
	}
	return stats
}
