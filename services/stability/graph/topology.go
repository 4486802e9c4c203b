// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package graph implements pure functions over an adjacency-matrix
// representation of the dependency DAG: topological ordering, neighborhood
// lookups, reachability, path enumeration, and eigenvector centrality.
//
// All functions treat the matrix as read-only and allocate their own outputs,
// so they are safe for concurrent use across Monte Carlo workers.
//
// A matrix entry adj[i][j] > 0 means a directed edge i->j with that weight.
package graph

import (
	"log/slog"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("bellwether.stability.graph")

// TopologicalOrder computes a topological ordering of the graph using Kahn's
// algorithm over in-degree counts.
//
// Description:
//
//	Returns node indices in an order where every edge i->j has i before j.
//	When the graph contains a cycle or an inconsistency that prevents a full
//	ordering, the returned order is PARTIAL (fewer elements than nodes) and
//	complete is false. Cycles are a soft failure: downstream propagation
//	proceeds with whatever order was produced and the caller surfaces a
//	warning diagnostic.
//
// Outputs:
//
//   - order: node indices, parents before children. May be shorter than the
//     node count.
//   - complete: true when every node was ordered.
//
// Complexity: O(V^2) for the dense matrix representation.
func TopologicalOrder(adj [][]float64) (order []int, complete bool) {
	n := len(adj)
	if n == 0 {
		return nil, true
	}

	inDegree := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if adj[i][j] > 0 {
				inDegree[j]++
			}
		}
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order = make([]int, 0, n)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for j := 0; j < n; j++ {
			if adj[current][j] > 0 {
				inDegree[j]--
				if inDegree[j] == 0 {
					queue = append(queue, j)
				}
			}
		}
	}

	complete = len(order) == n
	if !complete {
		slog.Warn("topological sort incomplete, graph may contain cycles",
			slog.Int("ordered", len(order)),
			slog.Int("nodes", n),
		)
	}
	return order, complete
}

// Parents returns the indices with an edge into node i.
func Parents(adj [][]float64, i int) []int {
	var parents []int
	for p := range adj {
		if adj[p][i] > 0 {
			parents = append(parents, p)
		}
	}
	return parents
}

// Children returns the indices with an edge from node i.
func Children(adj [][]float64, i int) []int {
	var children []int
	for c := range adj[i] {
		if adj[i][c] > 0 {
			children = append(children, c)
		}
	}
	return children
}

// ReachableFrom returns the set of indices reachable from start via directed
// edges, including start itself. Uses BFS with a visited set, so it
// terminates even on inputs with residual cycles.
func ReachableFrom(adj [][]float64, start int) map[int]bool {
	visited := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range Children(adj, current) {
			if !visited[child] {
				visited[child] = true
				queue = append(queue, child)
			}
		}
	}
	return visited
}

// InDegree returns the number of incoming edges per node.
func InDegree(adj [][]float64) []int {
	n := len(adj)
	deg := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if adj[i][j] > 0 {
				deg[j]++
			}
		}
	}
	return deg
}

// OutDegree returns the number of outgoing edges per node.
func OutDegree(adj [][]float64) []int {
	deg := make([]int, len(adj))
	for i, row := range adj {
		for _, w := range row {
			if w > 0 {
				deg[i]++
			}
		}
	}
	return deg
}
