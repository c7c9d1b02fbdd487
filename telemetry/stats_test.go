package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tens := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p10", tens, 0.1, 1},
		{"p90", tens, 0.9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{1.0, 0.2, 0.9, 0.4, 0.5, 0.6, 0.7, 0.8, 0.3, 0.1}
	s := ComputeSpeedStats(values)

	if math.Abs(s.Mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", s.Mean)
	}
	// Sample standard deviation of 0.1..1.0
	if math.Abs(s.Std-0.30277) > 0.001 {
		t.Errorf("std = %v, want ~0.3028", s.Std)
	}
	if s.P10 != 0.1 || s.P50 != 0.5 || s.P90 != 0.9 {
		t.Errorf("percentiles = %v %v %v, want 0.1 0.5 0.9", s.P10, s.P50, s.P90)
	}
	if s.Max != 1.0 {
		t.Errorf("max = %v, want 1", s.Max)
	}

	// Input order is left alone
	if values[0] != 1.0 || values[1] != 0.2 {
		t.Error("ComputeSpeedStats sorted its input")
	}
}

func TestComputeSpeedStatsSmall(t *testing.T) {
	if s := ComputeSpeedStats(nil); s != (SpeedStats{}) {
		t.Errorf("empty input = %+v, want zero", s)
	}

	s := ComputeSpeedStats([]float64{0.2})
	if s.Mean != 0.2 || s.Std != 0 || s.P50 != 0.2 {
		t.Errorf("single value stats = %+v", s)
	}
}
