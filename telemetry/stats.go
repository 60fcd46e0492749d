package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Tree state at window end
	TreeGrown      bool    `csv:"tree_grown"`
	GrowthProgress float64 `csv:"growth_progress"`

	// Heart population at window end
	Hearts   int `csv:"hearts"`
	Growing  int `csv:"growing"`
	Blooming int `csv:"blooming"`
	Floating int `csv:"floating"`

	// Events during window
	Spawned int `csv:"spawned"`
	Refused int `csv:"refused"`
	Evicted int `csv:"evicted"`
	Retired int `csv:"retired"`

	// Opacity distribution (sampled at window end)
	AlphaMean float64 `csv:"alpha_mean"`
	AlphaP10  float64 `csv:"alpha_p10"`
	AlphaP50  float64 `csv:"alpha_p50"`
	AlphaP90  float64 `csv:"alpha_p90"`
}

// Percentile returns the p-th quantile (p in [0, 1]) of an ascending slice,
// linearly interpolating the empirical distribution. Empty input gives 0.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(max(0, min(1, p)), stat.LinInterp, sorted, nil)
}

// ComputeAlphaStats returns the mean and the 10th, 50th and 90th
// percentiles of heart opacities. values is not modified.
func ComputeAlphaStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return stat.Mean(sorted, nil), Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Bool("tree_grown", s.TreeGrown),
		slog.Float64("growth_progress", s.GrowthProgress),
		slog.Group("hearts",
			slog.Int("live", s.Hearts),
			slog.Int("growing", s.Growing),
			slog.Int("blooming", s.Blooming),
			slog.Int("floating", s.Floating),
		),
		slog.Group("events",
			slog.Int("spawned", s.Spawned),
			slog.Int("refused", s.Refused),
			slog.Int("evicted", s.Evicted),
			slog.Int("retired", s.Retired),
		),
		slog.Group("alpha",
			slog.Float64("mean", s.AlphaMean),
			slog.Float64("p10", s.AlphaP10),
			slog.Float64("p50", s.AlphaP50),
			slog.Float64("p90", s.AlphaP90),
		),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats() {
	slog.Info("window_stats", "window", s)
}
