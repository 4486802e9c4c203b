// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package risk provides the closed-form scoring primitives of the stability
// engine: sigmoid bounding, distance-attenuated influence, cascading
// topological success probability, and weighted multi-attribute alignment.
//
// All functions are pure and safe for concurrent use.
package risk

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for invalid formula parameters. Both are configuration
// errors: the engine rejects them before launching any trial.
var (
	// ErrInvalidAttenuation is returned for attenuation factors <= 0.
	ErrInvalidAttenuation = errors.New("attenuation factor must be positive")

	// ErrInvalidMultiplier is returned for risk multipliers <= 0.
	ErrInvalidMultiplier = errors.New("risk multiplier must be positive")
)

// Sigmoid computes the logistic function 1 / (1 + e^-x). Output is strictly
// inside (0, 1) for finite x; Sigmoid(0) == 0.5.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// SigmoidSlice applies Sigmoid elementwise, returning a new slice.
func SigmoidSlice(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Sigmoid(x)
	}
	return out
}

// InfluenceScore computes a distance-attenuated influence score:
//
//	sigmoid(ceScore) * attenuation^(-distance)
//
// distance is a nonnegative hop count from the influence source. With
// attenuation > 1, larger distance strictly reduces the score; attenuation
// must be > 0 or ErrInvalidAttenuation is returned.
func InfluenceScore(ceScore float64, distance int, attenuation float64) (float64, error) {
	if attenuation <= 0 {
		return 0, fmt.Errorf("%w: %g", ErrInvalidAttenuation, attenuation)
	}
	return Sigmoid(ceScore) * math.Pow(attenuation, -float64(distance)), nil
}

// CascadeSuccess computes the cascading topological success probability:
//
//	localFailure = min(1, localFailureProb * multiplier)
//	success      = (1 - localFailure) * product(parentSuccess)
//
// The empty product is 1, so a root node's success depends only on its own
// reliability. multiplier must be > 0 or ErrInvalidMultiplier is returned.
//
// The result is monotone non-increasing in the multiplier and in every
// parent's failure probability: a node cannot become more likely to succeed
// because a dependency became less reliable.
func CascadeSuccess(localFailureProb, multiplier float64, parentSuccess []float64) (float64, error) {
	if multiplier <= 0 {
		return 0, fmt.Errorf("%w: %g", ErrInvalidMultiplier, multiplier)
	}
	localFailure := math.Min(1.0, localFailureProb*multiplier)
	success := 1.0 - localFailure
	for _, p := range parentSuccess {
		success *= p
	}
	return clamp01(success), nil
}

// CascadeRisk is the failure-side counterpart of CascadeSuccess:
//
//	R = 1 - (1 - min(1, p*mu)) * product(1 - parentRisk)
//
// expressed over parent risk scores rather than success probabilities.
func CascadeRisk(localFailureProb, multiplier float64, parentRisks []float64) (float64, error) {
	if multiplier <= 0 {
		return 0, fmt.Errorf("%w: %g", ErrInvalidMultiplier, multiplier)
	}
	parentSuccess := make([]float64, len(parentRisks))
	for i, r := range parentRisks {
		parentSuccess[i] = 1.0 - r
	}
	success, err := CascadeSuccess(localFailureProb, multiplier, parentSuccess)
	if err != nil {
		return 0, err
	}
	return clamp01(1.0 - success), nil
}

// WeightedAlignment sums score*weight over the attributes present in BOTH
// maps. Attributes present in only one map are silently ignored; the upstream
// scorer and the weight profile evolve independently and partial overlap is
// normal, not an error.
func WeightedAlignment(scores, weights map[string]float64) float64 {
	total := 0.0
	for attr, score := range scores {
		if weight, ok := weights[attr]; ok {
			total += score * weight
		}
	}
	return total
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
