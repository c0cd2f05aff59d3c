// Package stats computes tail percentiles over per-block scan timings.
package stats

import (
	"math"
	"sort"
	"time"
)

// TailLatency holds p50, p95 and max of a set of durations.
type TailLatency struct {
	P50, P95, Max time.Duration
}

// CalculateTailLatency computes P50, P95 and Max of per-block scan times.
//
// Parameters:
//   - samples: Durations in any order (may be empty); not modified
//
// Returns:
//   - TailLatency: Zero value for no samples
//
// Algorithm:
//  1. Sort a copy of samples in ascending order
//  2. Take P50 and P95 with the nearest-rank method
//  3. With few samples P95 equals Max
func CalculateTailLatency(samples []time.Duration) TailLatency {
	if len(samples) == 0 {
		return TailLatency{}
	}

	sorted := make([]time.Duration, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return TailLatency{
		P50: Percentile(sorted, 0.50),
		P95: Percentile(sorted, 0.95),
		Max: sorted[len(sorted)-1],
	}
}

// Percentile returns the value at p of an ascending slice using the
// nearest-rank method.
//
// Parameters:
//   - sorted: Durations in ascending order
//   - p: Percentile as a fraction (e.g., 0.95)
//
// Returns:
//   - time.Duration: sorted[ceil(n*p)-1], clamped to the slice; 0 if empty
func Percentile(sorted []time.Duration, p float64) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	index := int(math.Ceil(float64(n)*p)) - 1
	if index >= n {
		index = n - 1
	}
	if index < 0 {
		index = 0
	}

	return sorted[index]
}
