// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellwether-analytics/bellwether/services/stability/snapshot"
)

func TestTrialRNG_Deterministic(t *testing.T) {
	a := trialRNG(42, 7)
	b := trialRNG(42, 7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64(), "draw %d", i)
	}
}

func TestTrialRNG_DisjointStreams(t *testing.T) {
	a := trialRNG(42, 0)
	b := trialRNG(42, 1)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	assert.Zero(t, same, "trial streams must not overlap")
}

func TestBetaSample_Range(t *testing.T) {
	rng := trialRNG(1, 0)
	for _, shape := range []struct{ alpha, beta float64 }{
		{2, 5}, {5, 2}, {1, 1}, {0.5, 0.5}, {0.3, 4},
	} {
		for i := 0; i < 1000; i++ {
			v := betaSample(rng, shape.alpha, shape.beta)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

// TestBetaSample_Mean checks the empirical mean against alpha/(alpha+beta).
func TestBetaSample_Mean(t *testing.T) {
	rng := trialRNG(1, 0)
	const n = 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += betaSample(rng, 2, 5)
	}
	assert.InDelta(t, 2.0/7.0, sum/n, 0.01)
}

func TestResolveSampler_Beta(t *testing.T) {
	diag := &Diagnostics{}
	s := resolveSampler("node1", snapshot.AttrImportance, &snapshot.SamplingDistribution{
		Type: snapshot.DistributionBeta, Alpha: 2, Beta: 5, Lower: 0.2, Upper: 0.8,
	}, diag)

	assert.False(t, s.uniform)
	assert.Empty(t, diag.Warnings())

	rng := trialRNG(3, 0)
	for i := 0; i < 500; i++ {
		v := s.sample(rng)
		assert.GreaterOrEqual(t, v, 0.2, "clamped to declared lower bound")
		assert.LessOrEqual(t, v, 0.8, "clamped to declared upper bound")
	}
}

func TestResolveSampler_MissingFallsBack(t *testing.T) {
	diag := &Diagnostics{}
	s := resolveSampler("node1", snapshot.AttrInfluence, nil, diag)

	assert.True(t, s.uniform)
	assert.Equal(t, 0.0, s.lower)
	assert.Equal(t, 1.0, s.upper)
	require.Len(t, diag.Warnings(), 1)
	assert.Equal(t, WarnMissingDistribution, diag.Warnings()[0].Code)
	assert.Equal(t, "node1", diag.Warnings()[0].NodeID)
}

func TestResolveSampler_UnsupportedFallsBack(t *testing.T) {
	tests := []struct {
		name string
		dist snapshot.SamplingDistribution
	}{
		{"unknown type", snapshot.SamplingDistribution{Type: "cauchy"}},
		{"beta with zero alpha", snapshot.SamplingDistribution{Type: snapshot.DistributionBeta, Beta: 2}},
		{"beta with negative beta", snapshot.SamplingDistribution{Type: snapshot.DistributionBeta, Alpha: 2, Beta: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag := &Diagnostics{}
			s := resolveSampler("node1", snapshot.AttrImportance, &tt.dist, diag)

			assert.True(t, s.uniform)
			require.Len(t, diag.Warnings(), 1)
			assert.Equal(t, WarnUnsupportedDistribution, diag.Warnings()[0].Code)
		})
	}
}

func TestResolveSampler_ExplicitUniform(t *testing.T) {
	diag := &Diagnostics{}
	s := resolveSampler("node1", snapshot.AttrImportance, &snapshot.SamplingDistribution{
		Type: snapshot.DistributionUniform,
	}, diag)

	assert.True(t, s.uniform)
	assert.Empty(t, diag.Warnings(), "explicit uniform is supported, not a fallback")
}

func TestBuildSamplers(t *testing.T) {
	snap := &snapshot.AnalysisSnapshot{
		Nodes: []snapshot.Node{
			{ID: "a"},
			{ID: "b"},
		},
		Distributions: snapshot.DistributionTable{
			"a": {
				Importance: &snapshot.SamplingDistribution{Type: snapshot.DistributionBeta, Alpha: 2, Beta: 2},
				Influence:  &snapshot.SamplingDistribution{Type: snapshot.DistributionBeta, Alpha: 3, Beta: 1},
			},
		},
	}
	require.NoError(t, snap.Resolve())

	diag := &Diagnostics{}
	samplers := buildSamplers(snap, diag)

	require.Len(t, samplers, 2)
	assert.False(t, samplers[0].importance.uniform)
	assert.False(t, samplers[0].influence.uniform)
	assert.True(t, samplers[1].importance.uniform)
	assert.True(t, samplers[1].influence.uniform)
	assert.Len(t, diag.Warnings(), 2, "one warning per missing attribute")
}
