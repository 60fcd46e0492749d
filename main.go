package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heartbloom/audio"
	"github.com/pthm-cable/heartbloom/components"
	"github.com/pthm-cable/heartbloom/config"
	"github.com/pthm-cable/heartbloom/game"
	"github.com/pthm-cable/heartbloom/renderer"
	"github.com/pthm-cable/heartbloom/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	page := flag.String("page", "tree", "Scene to show: tree or reveal")
	autoClick := flag.Bool("auto-click", false, "Start the tree without waiting for a click")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	startPage, err := game.ParsePage(*page)
	if err != nil {
		slog.Error("invalid flag", "error", err)
		os.Exit(2)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	opts := game.Options{
		Seed:           rngSeed,
		Page:           startPage,
		Headless:       *headless,
		LogStats:       *logStats,
		StatsWindowSec: statsWindowSec,
		OutputDir:      *outputDir,
		AutoClick:      *autoClick,
	}

	if *headless {
		runHeadless(opts, *maxTicks)
		return
	}
	runWindowed(cfg, opts, *maxTicks)
}

// runHeadless steps the animation on the CPU only, no raylib calls.
func runHeadless(opts game.Options, maxTicks int) {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"page", opts.Page.String(),
		"stats_window", opts.StatsWindowSec,
		"max_ticks", maxTicks,
	)

	if maxTicks <= 0 {
		slog.Warn("headless run without -max-ticks never stops")
	}
	for maxTicks <= 0 || int(g.Tick()) < maxTicks {
		g.UpdateHeadless()
	}
	slog.Info("max ticks reached", "tick", g.Tick(), "hearts", g.Hearts().Count())
}

func runWindowed(cfg *config.Config, opts game.Options, maxTicks int) {
	flags := uint32(rl.FlagMsaa4xHint)
	if cfg.Screen.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	surface := renderer.NewSurface(cfg.Screen.Width, cfg.Screen.Height)
	opts.Surface = surface

	var music *audio.Music
	if cfg.Audio.Path != "" {
		m, err := audio.Open(cfg.Audio.Path)
		if err != nil {
			slog.Warn("music unavailable, continuing without sound", "path", cfg.Audio.Path, "error", err)
		} else {
			music = m
			opts.Player = m
		}
	}
	defer music.Close()

	hud := ui.NewHUD()
	var g *game.Game
	opts.Overlay = func() {
		hud.Draw(hudData(g.Status()))
		hud.DrawControls(int32(rl.GetScreenHeight()), "[Click/Space] Start  [F3] HUD")
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		in := renderer.PollInput()
		if in.Resized {
			g.Resize(in.Width, in.Height)
		}
		// The reveal page only reacts to pointer clicks on its button
		if in.Key || (in.Pointer && g.Page() == game.PageTree) {
			g.Click()
		}
		if in.HUD {
			hud.Toggle()
		}

		music.Update()
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}

func hudData(s game.Status) ui.HUDData {
	return ui.HUDData{
		Tick:           s.Tick,
		FPS:            rl.GetFPS(),
		SimTime:        s.SimTime,
		Page:           s.Page.String(),
		Intro:          s.Intro.String(),
		GrowthProgress: s.GrowthProgress,
		GrowthTarget:   s.GrowthTarget,
		Hearts:         s.Hearts,
		MaxHearts:      s.MaxHearts,
		Growing:        s.Phases[components.PhaseGrowing],
		Blooming:       s.Phases[components.PhaseBlooming],
		Floating:       s.Phases[components.PhaseFloating],
		Spawned:        s.Counters.Spawned,
		Refused:        s.Counters.Refused,
		Evicted:        s.Counters.Evicted,
		Retired:        s.Counters.Retired,
	}
}
