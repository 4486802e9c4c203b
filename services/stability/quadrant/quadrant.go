// Copyright (C) 2026 Bellwether Analytics (engineering@bellwether-analytics.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package quadrant classifies (risk, influence) pairs into the four strategic
// quadrants of the 2x2 action matrix.
package quadrant

// Quadrant is one of the four risk/influence classification buckets.
type Quadrant int

// The four quadrants with fixed semantics. Classification always assigns
// explicitly; the zero value carries no "unset" meaning.
const (
	// Q1: high risk, high influence. Action: mitigate.
	Q1 Quadrant = iota
	// Q2: low risk, high influence. Action: automate.
	Q2
	// Q3: high risk, low influence. Action: contingency.
	Q3
	// Q4: low risk, low influence. Action: delegate.
	Q4

	// NumQuadrants is the number of quadrants, for count arrays.
	NumQuadrants = 4
)

// String returns the quadrant label.
func (q Quadrant) String() string {
	switch q {
	case Q1:
		return "Q1"
	case Q2:
		return "Q2"
	case Q3:
		return "Q3"
	case Q4:
		return "Q4"
	default:
		return "unknown"
	}
}

// Action returns the strategic action associated with the quadrant.
func (q Quadrant) Action() string {
	switch q {
	case Q1:
		return "Mitigate"
	case Q2:
		return "Automate"
	case Q3:
		return "Contingency"
	case Q4:
		return "Delegate"
	default:
		return "unknown"
	}
}

// MarshalText renders the quadrant label for JSON/YAML documents.
func (q Quadrant) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}
