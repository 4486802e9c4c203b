// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package snapshot

import "fmt"

// DefaultEdgeWeight is used when an edge or chain link declares no weight.
const DefaultEdgeWeight = 1.0

// Edge is a weighted directed dependency between two nodes. From depends
// nothing on To; an edge From->To means To's success depends on From.
type Edge struct {
	From   string  `json:"from" yaml:"from" validate:"required"`
	To     string  `json:"to" yaml:"to" validate:"required"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// AdjacencyMatrix is a square nonnegative matrix ordered consistently with a
// NodeIndex. A[i][j] > 0 means an edge i->j with that dependency strength.
type AdjacencyMatrix [][]float64

// NewAdjacencyMatrix allocates an n x n zero matrix.
func NewAdjacencyMatrix(n int) AdjacencyMatrix {
	m := make(AdjacencyMatrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// Size returns the matrix dimension.
func (m AdjacencyMatrix) Size() int { return len(m) }

// Validate checks that the matrix is square with dimension n and that every
// entry is nonnegative.
func (m AdjacencyMatrix) Validate(n int) error {
	if len(m) != n {
		return fmt.Errorf("%w: %d rows for %d nodes", ErrAdjacencyDimension, len(m), n)
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d columns for %d nodes",
				ErrAdjacencyDimension, i, len(row), n)
		}
		for j, w := range row {
			if w < 0 {
				return fmt.Errorf("%w: A[%d][%d] = %g", ErrNegativeEdgeWeight, i, j, w)
			}
		}
	}
	return nil
}

// EdgeCount returns the number of nonzero entries.
func (m AdjacencyMatrix) EdgeCount() int {
	count := 0
	for _, row := range m {
		for _, w := range row {
			if w > 0 {
				count++
			}
		}
	}
	return count
}

// AdjacencyFromEdges builds the matrix from an explicit edge list. Edges with
// zero weight receive DefaultEdgeWeight. Unknown node IDs are an error.
func AdjacencyFromEdges(index NodeIndex, edges []Edge) (AdjacencyMatrix, error) {
	pos := index.positions()
	m := NewAdjacencyMatrix(len(index))
	for _, e := range edges {
		i, ok := pos[e.From]
		if !ok {
			return nil, fmt.Errorf("%w: edge source %q", ErrUnknownNodeID, e.From)
		}
		j, ok := pos[e.To]
		if !ok {
			return nil, fmt.Errorf("%w: edge target %q", ErrUnknownNodeID, e.To)
		}
		w := e.Weight
		if w < 0 {
			return nil, fmt.Errorf("%w: edge %s->%s weight %g", ErrNegativeEdgeWeight, e.From, e.To, w)
		}
		if w == 0 {
			w = DefaultEdgeWeight
		}
		m[i][j] = w
	}
	return m, nil
}

// AdjacencyFromChains reconstructs the matrix from dependency chains: ordered
// node-ID sequences where each node depends on its predecessor. Consecutive
// pairs become edges with DefaultEdgeWeight; repeated pairs are idempotent.
//
// The upstream analysis frequently reports the graph as a set of critical
// chains rather than an explicit edge list, so this is the common build path.
func AdjacencyFromChains(index NodeIndex, chains [][]string) (AdjacencyMatrix, error) {
	pos := index.positions()
	m := NewAdjacencyMatrix(len(index))
	for ci, chain := range chains {
		for k := 0; k+1 < len(chain); k++ {
			i, ok := pos[chain[k]]
			if !ok {
				return nil, fmt.Errorf("%w: chain %d references %q", ErrUnknownNodeID, ci, chain[k])
			}
			j, ok := pos[chain[k+1]]
			if !ok {
				return nil, fmt.Errorf("%w: chain %d references %q", ErrUnknownNodeID, ci, chain[k+1])
			}
			m[i][j] = DefaultEdgeWeight
		}
	}
	return m, nil
}
