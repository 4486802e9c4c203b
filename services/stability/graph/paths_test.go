// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectPaths_AllTargets(t *testing.T) {
	paths := CollectPaths(diamond(), 0, AllTargets)

	// [A], [A B], [A B D], [A C], [A C D]
	assert.ElementsMatch(t, [][]int{
		{0},
		{0, 1},
		{0, 1, 3},
		{0, 2},
		{0, 2, 3},
	}, paths)
}

func TestCollectPaths_SingleTarget(t *testing.T) {
	paths := CollectPaths(diamond(), 0, 3)

	assert.ElementsMatch(t, [][]int{
		{0, 1, 3},
		{0, 2, 3},
	}, paths)
}

func TestCollectPaths_InvalidStart(t *testing.T) {
	assert.Empty(t, CollectPaths(diamond(), -1, AllTargets))
	assert.Empty(t, CollectPaths(diamond(), 99, AllTargets))
}

// TestAllPaths_CycleGuard verifies enumeration terminates on cyclic input:
// the on-path guard stops the A->B->A loop.
func TestAllPaths_CycleGuard(t *testing.T) {
	paths := CollectPaths(twoCycle(), 0, AllTargets)

	assert.ElementsMatch(t, [][]int{
		{0},
		{0, 1},
	}, paths)
}

// TestAllPaths_EarlyStop verifies the visitor can stop enumeration.
func TestAllPaths_EarlyStop(t *testing.T) {
	count := 0
	AllPaths(diamond(), 0, AllTargets, func(path []int) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestPathStatsFrom(t *testing.T) {
	stats := PathStatsFrom(diamond(), 0)

	require.Equal(t, 5, stats.TotalPaths)
	assert.Equal(t, 2, stats.Longest)
	assert.Equal(t, 0, stats.Shortest)
	// Hop counts: 0, 1, 2, 1, 2 -> mean 1.2
	assert.InDelta(t, 1.2, stats.MeanLength, 1e-9)
}

func TestPathStatsFrom_Sink(t *testing.T) {
	stats := PathStatsFrom(diamond(), 3)

	assert.Equal(t, 1, stats.TotalPaths)
	assert.Equal(t, 0, stats.Longest)
	assert.Equal(t, 0, stats.Shortest)
	assert.Zero(t, stats.MeanLength)
}
