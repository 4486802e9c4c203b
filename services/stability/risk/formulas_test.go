// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoid_Bounds(t *testing.T) {
	for _, x := range []float64{-50, -10, -1, -0.001, 0.001, 1, 10, 50} {
		y := Sigmoid(x)
		assert.Greater(t, y, 0.0, "sigmoid(%g)", x)
		assert.Less(t, y, 1.0, "sigmoid(%g)", x)
	}
	assert.Equal(t, 0.5, Sigmoid(0))
}

func TestSigmoid_Monotone(t *testing.T) {
	prev := Sigmoid(-20)
	for x := -19.0; x <= 20; x++ {
		y := Sigmoid(x)
		assert.Greater(t, y, prev)
		prev = y
	}
}

func TestSigmoidSlice(t *testing.T) {
	out := SigmoidSlice([]float64{0, 0})
	assert.Equal(t, []float64{0.5, 0.5}, out)
}

func TestInfluenceScore(t *testing.T) {
	// Distance 0 is raw sigmoid.
	got, err := InfluenceScore(0, 0, 1.2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)

	// With attenuation > 1, each hop strictly reduces the score.
	prev := math.Inf(1)
	for distance := 0; distance < 5; distance++ {
		got, err := InfluenceScore(1.0, distance, 1.2)
		require.NoError(t, err)
		assert.Less(t, got, prev, "distance %d", distance)
		prev = got
	}
}

func TestInfluenceScore_InvalidAttenuation(t *testing.T) {
	for _, factor := range []float64{0, -1} {
		_, err := InfluenceScore(1.0, 1, factor)
		assert.ErrorIs(t, err, ErrInvalidAttenuation)
	}
}

func TestCascadeSuccess_NoParents(t *testing.T) {
	// Empty parent product is 1: success depends only on local reliability.
	got, err := CascadeSuccess(0.3, 1.2, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.64, got, 1e-12)
}

func TestCascadeSuccess_MultiplierCap(t *testing.T) {
	// 0.9 * 2.0 caps at 1: certain local failure.
	got, err := CascadeSuccess(0.9, 2.0, nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCascadeSuccess_WithParents(t *testing.T) {
	got, err := CascadeSuccess(0.3, 1.2, []float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.32, got, 1e-12)

	// A second parent multiplies in.
	got, err = CascadeSuccess(0.3, 1.2, []float64{0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.16, got, 1e-12)
}

func TestCascadeSuccess_InvalidMultiplier(t *testing.T) {
	_, err := CascadeSuccess(0.3, 0, nil)
	assert.ErrorIs(t, err, ErrInvalidMultiplier)
}

// TestCascadeSuccess_Monotone verifies that raising the multiplier or any
// parent's failure probability never raises the success probability.
func TestCascadeSuccess_Monotone(t *testing.T) {
	prev := math.Inf(1)
	for _, multiplier := range []float64{0.5, 1.0, 1.5, 2.0, 3.0} {
		got, err := CascadeSuccess(0.3, multiplier, []float64{0.8})
		require.NoError(t, err)
		assert.LessOrEqual(t, got, prev, "multiplier %g", multiplier)
		prev = got
	}

	prev = math.Inf(1)
	for _, parentFailure := range []float64{0, 0.25, 0.5, 0.75, 1.0} {
		got, err := CascadeSuccess(0.3, 1.2, []float64{1 - parentFailure})
		require.NoError(t, err)
		assert.LessOrEqual(t, got, prev, "parent failure %g", parentFailure)
		prev = got
	}
}

func TestCascadeRisk(t *testing.T) {
	// Examples from the cascading failure model: R = 1 - (1-p*mu)*prod(1-Rp).
	got, err := CascadeRisk(0.3, 1.2, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.36, got, 1e-12)

	got, err = CascadeRisk(0.3, 1.2, []float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.68, got, 1e-12)

	// All parents failed: risk saturates at 1.
	got, err = CascadeRisk(0.0, 1.2, []float64{1.0})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestWeightedAlignment(t *testing.T) {
	tests := []struct {
		name    string
		scores  map[string]float64
		weights map[string]float64
		want    float64
	}{
		{
			name:    "full overlap",
			scores:  map[string]float64{"a": 0.5, "b": 1.0},
			weights: map[string]float64{"a": 2.0, "b": 0.5},
			want:    1.5,
		},
		{
			name:    "partial overlap ignores unmatched attributes",
			scores:  map[string]float64{"a": 0.5, "orphan": 9.0},
			weights: map[string]float64{"a": 2.0, "unused": 9.0},
			want:    1.0,
		},
		{
			name:    "no overlap",
			scores:  map[string]float64{"a": 1.0},
			weights: map[string]float64{"b": 1.0},
			want:    0,
		},
		{
			name: "empty maps",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WeightedAlignment(tt.scores, tt.weights), 1e-12)
		})
	}
}
