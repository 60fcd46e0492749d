// Package telemetry provides animation health tracking, milestones, and CSV output.
package telemetry

import "github.com/pthm-cable/heartbloom/components"

// Counters are cumulative heart lifecycle counts as reported by the heart
// system. The collector turns them into per-window deltas.
type Counters struct {
	Spawned int
	Refused int
	Evicted int
	Retired int
}

// Sample is the animation state observed at the end of a window.
type Sample struct {
	TreeGrown      bool
	GrowthProgress float64
	Hearts         int
	Phases         [components.NumPhases]int
	Counters       Counters
	Alphas         []float64
}

// Collector groups ticks into time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Cumulative counters at the start of the current window
	last Counters
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and starts the next window.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	mean, p10, p50, p90 := ComputeAlphaStats(s.Alphas)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		TreeGrown:      s.TreeGrown,
		GrowthProgress: s.GrowthProgress,

		Hearts:   s.Hearts,
		Growing:  s.Phases[components.PhaseGrowing],
		Blooming: s.Phases[components.PhaseBlooming],
		Floating: s.Phases[components.PhaseFloating],

		Spawned: s.Counters.Spawned - c.last.Spawned,
		Refused: s.Counters.Refused - c.last.Refused,
		Evicted: s.Counters.Evicted - c.last.Evicted,
		Retired: s.Counters.Retired - c.last.Retired,

		AlphaMean: mean,
		AlphaP10:  p10,
		AlphaP50:  p50,
		AlphaP90:  p90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.last = s.Counters

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
