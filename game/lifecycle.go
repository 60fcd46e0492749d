package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/heartbloom/systems"
)

// onTrigger starts the music and the tree. Runs once per game.
func (g *Game) onTrigger(cause TriggerCause) {
	if g.player != nil {
		g.player.SetVolume(g.cfg.Audio.Volume)
		if err := g.player.Play(); err != nil {
			// Music is optional; the animation runs without it.
			slog.Debug("audio_play_failed", "error", err)
		}
	}

	g.growth.Start(g.generateTree())

	slog.Info("intro_triggered",
		"cause", cause.String(),
		"sim_time", g.clock.Time,
		"ticks_to_grow", g.growth.TicksToComplete(),
	)
}

// onTreeGrown bakes the finished tree and starts hearts and text.
func (g *Game) onTreeGrown() {
	now := g.clock.Time
	g.clock.TreeGrown = true
	g.bakeTree()
	g.intro.Reveal()
	g.text.Show(now)

	interval := g.cfg.Hearts.BurstInterval
	for i := 0; i < g.cfg.Hearts.BurstCount; i++ {
		g.timers.After(now, float64(i)*interval, g.spawnHeart)
	}

	slog.Info("tree_grown",
		"tick", g.clock.Frame,
		"sim_time", now,
		"segments", len(g.growth.Segments()),
	)
}

// spawnSteady adds a heart every SpawnEvery frames once the tree is grown.
func (g *Game) spawnSteady() {
	if !g.clock.TreeGrown {
		return
	}
	if g.clock.Frame%int64(g.cfg.Hearts.SpawnEvery) != 0 {
		return
	}
	if g.hearts.Count() >= g.hearts.Max() && !g.cfg.Hearts.EvictOldest {
		return
	}
	g.spawnHeart()
}

func (g *Game) spawnHeart() {
	g.hearts.Spawn(g.layout)
}

// generateTree builds the tree for the current layout. The fullness jitter
// source is reseeded so a resize regenerates the same shape.
func (g *Game) generateTree() []systems.Segment {
	params := systems.TreeParamsFromConfig(g.cfg.Tree, g.layout.Base)
	return systems.GenerateTree(params, rand.New(rand.NewSource(g.treeSeed)))
}

func (g *Game) bakeTree() {
	if g.surface == nil {
		return
	}
	g.surface.BakeTree(g.growth.Segments())
}
