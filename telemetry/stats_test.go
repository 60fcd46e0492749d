package telemetry

import (
	"math"
	"testing"
)

func TestPercentileBounds(t *testing.T) {
	ten := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{5}, 0.5, 5},
		{"zero is min", ten, 0, 1},
		{"one is max", ten, 1, 10},
		{"below range clamps", ten, -1, 1},
		{"above range clamps", ten, 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(tt.sorted, tt.p); got != tt.want {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestPercentileMonotonic(t *testing.T) {
	sorted := []float64{0.1, 0.15, 0.4, 0.4, 0.8, 0.95, 1}
	prev := math.Inf(-1)
	for i := 0; i <= 20; i++ {
		v := Percentile(sorted, float64(i)/20)
		if v < prev {
			t.Fatalf("percentile decreased at p=%v: %v < %v", float64(i)/20, v, prev)
		}
		if v < sorted[0] || v > sorted[len(sorted)-1] {
			t.Fatalf("percentile %v outside data range", v)
		}
		prev = v
	}
}

func TestComputeAlphaStats(t *testing.T) {
	// Unsorted on purpose
	values := []float64{1.0, 0.1, 0.9, 0.2, 0.8, 0.3, 0.7, 0.4, 0.6, 0.5}
	mean, p10, p50, p90 := ComputeAlphaStats(values)

	if math.Abs(mean-0.55) > 1e-9 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if !(0.1 <= p10 && p10 <= p50 && p50 <= p90 && p90 <= 1.0) {
		t.Errorf("percentiles out of order: p10=%v p50=%v p90=%v", p10, p50, p90)
	}
	if p10 > 0.2 || p90 < 0.9 {
		t.Errorf("tail percentiles p10=%v p90=%v too far inside", p10, p90)
	}
	if math.Abs(p50-0.5) > 0.05+1e-9 {
		t.Errorf("p50 = %v, want about 0.5", p50)
	}

	if values[0] != 1.0 || values[1] != 0.1 {
		t.Error("ComputeAlphaStats reordered its input")
	}
}

func TestComputeAlphaStatsEmpty(t *testing.T) {
	if mean, p10, p50, p90 := ComputeAlphaStats(nil); mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty input should give zeros")
	}
}
