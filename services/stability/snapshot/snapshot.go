// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// snapshotValidate is the validator instance for snapshot documents.
var snapshotValidate = validator.New()

// AnalysisSnapshot is the complete, immutable input to a stability run.
//
// The dependency structure may be supplied three ways, checked in order of
// precedence during Resolve():
//
//  1. Adjacency: an explicit matrix ordered like the node list
//  2. Edges: a weighted edge list
//  3. Chains: ordered node-ID sequences from critical-chain analysis
//
// Thread Safety: read-only after Resolve(); safe to share across workers.
type AnalysisSnapshot struct {
	// Nodes is the node list. Its order defines the NodeIndex.
	Nodes []Node `json:"nodes" yaml:"nodes" validate:"required,min=1,dive"`

	// Adjacency is the explicit dependency matrix, if supplied.
	Adjacency AdjacencyMatrix `json:"adjacency,omitempty" yaml:"adjacency,omitempty"`

	// Edges is the weighted edge list, used when Adjacency is absent.
	Edges []Edge `json:"edges,omitempty" yaml:"edges,omitempty"`

	// Chains holds dependency chains, used when both Adjacency and Edges
	// are absent.
	Chains [][]string `json:"chains,omitempty" yaml:"chains,omitempty"`

	// Distributions is the per-node sampling-distribution table.
	Distributions DistributionTable `json:"distributions,omitempty" yaml:"distributions,omitempty"`

	// Covariance is declared but not honored by the sampler. See
	// CovarianceMatrix for the documented limitation.
	Covariance CovarianceMatrix `json:"covariance,omitempty" yaml:"covariance,omitempty"`

	// index and adjacency are materialized by Resolve.
	index     NodeIndex
	adjacency AdjacencyMatrix
}

// DecodeJSON decodes a snapshot document and resolves it.
func DecodeJSON(data []byte) (*AnalysisSnapshot, error) {
	var s AnalysisSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := s.Resolve(); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeYAML decodes a snapshot document and resolves it.
func DecodeYAML(data []byte) (*AnalysisSnapshot, error) {
	var s AnalysisSnapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := s.Resolve(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Resolve validates the snapshot and materializes the NodeIndex and the
// adjacency matrix. It must be called once before the snapshot is used;
// DecodeJSON/DecodeYAML call it on the caller's behalf.
//
// All failures here are configuration errors: the engine refuses to launch
// any trial against an unresolved or invalid snapshot.
func (s *AnalysisSnapshot) Resolve() error {
	if len(s.Nodes) == 0 {
		return ErrEmptyNodeSet
	}
	if err := snapshotValidate.Struct(s); err != nil {
		return fmt.Errorf("snapshot validation: %w", err)
	}

	seen := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	s.index = NewNodeIndex(s.Nodes)

	switch {
	case s.Adjacency != nil:
		if err := s.Adjacency.Validate(len(s.Nodes)); err != nil {
			return err
		}
		s.adjacency = s.Adjacency
	case len(s.Edges) > 0:
		m, err := AdjacencyFromEdges(s.index, s.Edges)
		if err != nil {
			return err
		}
		s.adjacency = m
	default:
		m, err := AdjacencyFromChains(s.index, s.Chains)
		if err != nil {
			return err
		}
		s.adjacency = m
	}

	if err := s.Distributions.Validate(); err != nil {
		return err
	}
	if err := s.Covariance.Validate(len(s.Nodes)); err != nil {
		return err
	}
	return nil
}

// Index returns the canonical node ordering. Resolve must have succeeded.
func (s *AnalysisSnapshot) Index() NodeIndex { return s.index }

// AdjacencyResolved returns the materialized adjacency matrix.
func (s *AnalysisSnapshot) AdjacencyResolved() AdjacencyMatrix { return s.adjacency }

// NodeCount returns the number of nodes.
func (s *AnalysisSnapshot) NodeCount() int { return len(s.Nodes) }

// PointEstimates returns the baseline risk and influence vectors in index
// order, used for the baseline quadrant classification.
func (s *AnalysisSnapshot) PointEstimates() (riskVec, influenceVec []float64) {
	riskVec = make([]float64, len(s.Nodes))
	influenceVec = make([]float64, len(s.Nodes))
	for i, n := range s.Nodes {
		riskVec[i] = n.Risk
		influenceVec[i] = n.Influence
	}
	return riskVec, influenceVec
}

// DistributionFor returns the declared distribution for a node attribute, or
// nil when the node or attribute has no declaration.
func (s *AnalysisSnapshot) DistributionFor(nodeID, attr string) *SamplingDistribution {
	nd, ok := s.Distributions[nodeID]
	if !ok {
		return nil
	}
	return nd.ForAttribute(attr)
}
