// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package quadrant

import (
	"fmt"
	"sort"
)

// Thresholds are the high/low cut points for each axis. Unset values
// (ByMedian) are replaced with the population median of the batch being
// classified, which makes classification batch-relative.
type Thresholds struct {
	Risk      float64
	Influence float64

	// explicit marks thresholds supplied by the caller rather than derived.
	explicit bool
}

// ByMedian requests batch-relative median thresholds.
var ByMedian = Thresholds{}

// Explicit returns fixed thresholds for both axes.
func Explicit(riskT, influenceT float64) Thresholds {
	return Thresholds{Risk: riskT, Influence: influenceT, explicit: true}
}

// Classify assigns a quadrant to every (risk, influence) pair.
//
// Description:
//
//	When thresholds are ByMedian, the cut points are the population medians
//	of the supplied vectors, so the same node can land in different quadrants
//	depending on the batch it is classified with. Per-trial classification
//	uses the trial's own medians, exactly like the baseline classification
//	uses the snapshot's.
//
//	Tie-break: a value exactly equal to its threshold counts as high (>=).
//
// Inputs:
//
//   - riskVec, influenceVec: equal-length score vectors.
//   - t: Explicit(...) thresholds or ByMedian.
//
// Outputs:
//
//   - []Quadrant: one quadrant per pair, same ordering as the input.
//   - error: non-nil on length mismatch.
func Classify(riskVec, influenceVec []float64, t Thresholds) ([]Quadrant, error) {
	if len(riskVec) != len(influenceVec) {
		return nil, fmt.Errorf("vector length mismatch: %d risk vs %d influence",
			len(riskVec), len(influenceVec))
	}
	if !t.explicit {
		t.Risk = Median(riskVec)
		t.Influence = Median(influenceVec)
	}
	out := make([]Quadrant, len(riskVec))
	for i := range riskVec {
		out[i] = ClassifyPoint(riskVec[i], influenceVec[i], t.Risk, t.Influence)
	}
	return out, nil
}

// ClassifyPoint classifies a single pair against explicit thresholds.
//
// Callers of the scalar form must pass explicit thresholds: the median of a
// single point is the point itself, which degenerates the split (the point
// always classifies as Q1). The batch form handles median derivation.
func ClassifyPoint(riskScore, influenceScore, riskT, influenceT float64) Quadrant {
	highRisk := riskScore >= riskT
	highInfluence := influenceScore >= influenceT

	switch {
	case highRisk && highInfluence:
		return Q1
	case !highRisk && highInfluence:
		return Q2
	case highRisk && !highInfluence:
		return Q3
	default:
		return Q4
	}
}

// Median returns the population median of values: the middle element for odd
// counts, the mean of the two middle elements for even counts. Returns 0 for
// an empty slice. The input is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}
