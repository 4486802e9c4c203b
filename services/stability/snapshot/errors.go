// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package snapshot defines the immutable input to a stability run.
//
// An AnalysisSnapshot bundles the risk nodes, their dependency structure, and
// the per-node sampling distributions produced by the upstream analysis
// service. The snapshot is decoded (or constructed) once per analysis and is
// read-only for the lifetime of the run.
//
// # Ownership Model
//
// The engine shares one snapshot across all Monte Carlo workers without
// locking. Callers MUST NOT mutate a snapshot after handing it to the engine.
//
// # Lifecycle
//
//  1. Decode with DecodeJSON/DecodeYAML, or build the struct directly
//  2. Call Resolve() to catch configuration errors before any trial runs
//  3. Pass to engine.Run; discard after the report is produced
package snapshot

import "errors"

// Sentinel errors for snapshot validation. All of these are configuration
// errors in the sense of the engine's error taxonomy: they abort a run before
// any trial is launched.
var (
	// ErrEmptyNodeSet is returned when a snapshot contains no nodes.
	ErrEmptyNodeSet = errors.New("snapshot contains no nodes")

	// ErrDuplicateNodeID is returned when two nodes share an identifier.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrAdjacencyDimension is returned when the adjacency matrix is not
	// square or its size disagrees with the node count.
	ErrAdjacencyDimension = errors.New("adjacency dimensions inconsistent with node count")

	// ErrUnknownNodeID is returned when an edge or dependency chain
	// references a node that is not in the node list.
	ErrUnknownNodeID = errors.New("unknown node ID")

	// ErrNegativeEdgeWeight is returned for edges with weight < 0. The
	// adjacency matrix must stay nonnegative for centrality to be defined.
	ErrNegativeEdgeWeight = errors.New("negative edge weight")

	// ErrCovarianceDimension is returned when a declared covariance matrix
	// is not NxN for N nodes.
	ErrCovarianceDimension = errors.New("covariance dimensions inconsistent with node count")

	// ErrDistributionBounds is returned when a sampling distribution
	// declares an empty clamp interval (lower > upper).
	ErrDistributionBounds = errors.New("invalid distribution bounds")
)
