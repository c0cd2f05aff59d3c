package stats

import (
	"testing"
	"time"
)

func TestCalculateTailLatency(t *testing.T) {
	ms := time.Millisecond

	tests := []struct {
		name    string
		samples []time.Duration
		want    TailLatency
	}{
		{"empty", nil, TailLatency{}},
		{"single", []time.Duration{40 * ms}, TailLatency{P50: 40 * ms, P95: 40 * ms, Max: 40 * ms}},
		{"unsorted small", []time.Duration{30 * ms, 10 * ms, 20 * ms}, TailLatency{P50: 20 * ms, P95: 30 * ms, Max: 30 * ms}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTailLatency(tt.samples)
			if got != tt.want {
				t.Errorf("CalculateTailLatency() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateTailLatencyDoesNotMutate(t *testing.T) {
	samples := []time.Duration{3, 1, 2}
	CalculateTailLatency(samples)
	if samples[0] != 3 || samples[1] != 1 || samples[2] != 2 {
		t.Errorf("input was reordered: %v", samples)
	}
}

func TestPercentileHundredSamples(t *testing.T) {
	sorted := make([]time.Duration, 100)
	for i := range sorted {
		sorted[i] = time.Duration(i + 1)
	}

	if got := Percentile(sorted, 0.50); got != 50 {
		t.Errorf("p50 = %d, want 50", got)
	}
	if got := Percentile(sorted, 0.95); got != 95 {
		t.Errorf("p95 = %d, want 95", got)
	}
	if got := Percentile(sorted, 0); got != 1 {
		t.Errorf("p0 = %d, want 1", got)
	}
}
