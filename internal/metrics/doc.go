// Package metrics aggregates per-frame engine stats into run summaries.
// Every type here satisfies sim.Metric.
package metrics

import "github.com/san-kum/atmos/internal/sim"

// Default returns a fresh set of the standard run metrics.
func Default(frameInterval float64) []sim.Metric {
	return []sim.Metric{
		NewPeakPopulation(),
		NewMeanPopulation(),
		NewDetonationRate(frameInterval),
		NewPeakSparks(),
		NewSpread(),
	}
}
