package game

import (
	"log/slog"

	"github.com/pthm-cable/heartbloom/systems"
	"github.com/pthm-cable/heartbloom/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	tick := g.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick, g.sample())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sample collects the animation state at a window boundary.
func (g *Game) sample() telemetry.Sample {
	g.alphas = g.alphas[:0]
	g.hearts.ForEach(func(h systems.HeartView) {
		g.alphas = append(g.alphas, h.Alpha)
	})

	c := g.hearts.Counters()
	return telemetry.Sample{
		TreeGrown:      g.clock.TreeGrown,
		GrowthProgress: g.growth.Progress(),
		Hearts:         g.hearts.Count(),
		Phases:         g.hearts.PhaseCounts(),
		Counters: telemetry.Counters{
			Spawned: c.Spawned,
			Refused: c.Refused,
			Evicted: c.Evicted,
			Retired: c.Retired,
		},
		Alphas: g.alphas,
	}
}
