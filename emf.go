// Package emf estimates, by Monte Carlo simulation over random clustered
// base-station topologies, the mean electromagnetic power-flux density and
// the coverage probability seen by a user as a function of the user's
// distance from the city centre.
package emf

import "github.com/wiless/vlib"

// TrialMetric holds the aggregates derived from one random topology draw.
// It is consumed by the per-distance accumulator and then discarded.
type TrialMetric struct {
	UserDistanceM float64
	TotalRxPowerW float64
	BestRxPowerW  float64
	SINR          float64
	Covered       bool
	FluxWm2       float64
}

// SweepResult holds the three index-aligned output sequences of a distance
// sweep, ordered by ascending distance, plus per-distance diagnostics.
type SweepResult struct {
	Distances    vlib.VectorF
	MeanFlux     vlib.VectorF
	CoverageProb vlib.VectorF
	FluxStdErr   vlib.VectorF
	Anomalies    vlib.VectorI
}
