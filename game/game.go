// Package game runs the birthday animation: intro, growing tree, hearts,
// text and the age reveal page.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/heartbloom/components"
	"github.com/pthm-cable/heartbloom/config"
	"github.com/pthm-cable/heartbloom/systems"
	"github.com/pthm-cable/heartbloom/telemetry"
)

// Page selects which scene the game shows.
type Page uint8

const (
	PageTree Page = iota
	PageReveal
)

func (p Page) String() string {
	if p == PageReveal {
		return "reveal"
	}
	return "tree"
}

// ParsePage parses a -page flag value.
func ParsePage(s string) (Page, error) {
	switch s {
	case "", "tree":
		return PageTree, nil
	case "reveal":
		return PageReveal, nil
	default:
		return PageTree, fmt.Errorf("unknown page %q (want tree or reveal)", s)
	}
}

// Options configures a new game.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64
	Page           Page
	Headless       bool
	LogStats       bool
	StatsWindowSec float64 // 0 uses config
	OutputDir      string
	AutoClick      bool // click once on the first update

	Surface Surface // nil draws nothing
	Player  Player  // nil plays nothing

	StatsCallback func(telemetry.WindowStats)

	// Overlay, if set, draws on top of each frame before it is presented.
	Overlay func()
}

// Status is a summary of the animation for debug overlays.
type Status struct {
	Tick           int32
	SimTime        float64
	Page           Page
	Intro          IntroState
	GrowthProgress float64
	GrowthTarget   float64
	TreeGrown      bool
	Hearts         int
	MaxHearts      int
	Phases         [components.NumPhases]int
	Counters       systems.HeartCounters
}

// Game holds the complete animation state.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64

	surface Surface
	player  Player

	page      Page
	clock     Clock
	timers    Timers
	autoClick bool
	headless  bool

	layout   systems.Layout
	treeSeed int64
	growth   *systems.GrowthAnimator
	hearts   *systems.HeartSystem
	intro    *Intro
	text     *TextReveal
	reveal   *RevealPage

	// Scratch buffers reused every frame
	visible []systems.Segment
	lines   []LineView
	alphas  []float64

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	overlay       func()
}

// NewGameWithOptions creates a game ready for its first Update.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := &Game{
		cfg:           cfg,
		rng:           rng,
		rngSeed:       opts.Seed,
		surface:       opts.Surface,
		player:        opts.Player,
		page:          opts.Page,
		autoClick:     opts.AutoClick,
		headless:      opts.Headless,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		overlay:       opts.Overlay,
	}

	g.layout = systems.NewLayout(float64(cfg.Screen.Width), float64(cfg.Screen.Height), cfg.Tree.BaseOffset)
	g.treeSeed = rng.Int63()
	g.growth = systems.NewGrowthAnimator(cfg.Growth, cfg.Tree.Depth, g.onTreeGrown)
	g.hearts = systems.NewHeartSystem(cfg.Hearts, cfg.Derived.Palette, rng)
	g.intro = NewIntro(cfg.Intro, g.onTrigger)
	g.text = NewTextReveal(cfg.Text, &g.timers)
	g.reveal = NewRevealPage(cfg.Reveal, &g.timers)

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, cfg.Derived.DT32)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarks = telemetry.NewBookmarkDetector(cfg.Hearts.Max)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("setting up output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}
	g.outputManager = om

	slog.Debug("game created",
		"seed", opts.Seed,
		"page", g.page.String(),
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"headless", opts.Headless,
	)

	return g, nil
}

// Update runs one animation step and records frame timing.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.step()
}

// UpdateHeadless runs one animation step without frame timing.
func (g *Game) UpdateHeadless() {
	g.step()
}

func (g *Game) step() {
	if g.autoClick && g.clock.Frame == 0 {
		g.Click()
	}

	dt := g.cfg.Physics.DT
	g.perfCollector.StartTick()
	g.clock.Advance(dt)
	now := g.clock.Time

	g.perfCollector.StartPhase(telemetry.PhaseTimers)
	if g.page == PageTree {
		g.intro.Update(now)
	}
	g.timers.Run(now)

	if g.page == PageTree {
		g.perfCollector.StartPhase(telemetry.PhaseGrowth)
		g.growth.Tick()

		g.perfCollector.StartPhase(telemetry.PhaseSpawn)
		g.spawnSteady()

		g.perfCollector.StartPhase(telemetry.PhaseHearts)
		g.hearts.Step(dt, now)
	}

	g.perfCollector.StartPhase(telemetry.PhaseText)
	g.text.Update(dt)
	g.reveal.Update(dt)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// Click delivers a user click (mouse, space or enter) to the active page.
func (g *Game) Click() {
	switch g.page {
	case PageReveal:
		if g.reveal.Click(g.clock.Time) {
			slog.Info("reveal_burn_started", "sim_time", g.clock.Time)
		}
	default:
		g.intro.Trigger(TriggerClick)
	}
}

// Resize recomputes the layout for a new surface size. The tree is
// regenerated at the new origin and hearts follow it.
func (g *Game) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if float64(width) == g.layout.Width && float64(height) == g.layout.Height {
		return
	}

	old := g.layout
	g.layout = systems.NewLayout(float64(width), float64(height), g.cfg.Tree.BaseOffset)

	if g.surface != nil {
		g.surface.Resize(width, height)
	}
	if g.growth.State() != systems.GrowthNotStarted {
		g.growth.Replace(g.generateTree())
	}
	if g.clock.TreeGrown {
		g.bakeTree()
	}
	g.hearts.Relayout(old, g.layout)

	slog.Info("surface_resized", "width", width, "height", height)
}

// Unload releases output files and drawing resources.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	if g.surface != nil {
		g.surface.Unload()
	}
}

// Tick returns the number of updates run so far.
func (g *Game) Tick() int32 {
	return int32(g.clock.Frame)
}

// Page returns the scene being shown.
func (g *Game) Page() Page { return g.page }

// Status summarizes the current state.
func (g *Game) Status() Status {
	return Status{
		Tick:           g.Tick(),
		SimTime:        g.clock.Time,
		Page:           g.page,
		Intro:          g.intro.State(),
		GrowthProgress: g.growth.Progress(),
		GrowthTarget:   float64(g.cfg.Tree.Depth) + g.cfg.Growth.Margin,
		TreeGrown:      g.clock.TreeGrown,
		Hearts:         g.hearts.Count(),
		MaxHearts:      g.hearts.Max(),
		Phases:         g.hearts.PhaseCounts(),
		Counters:       g.hearts.Counters(),
	}
}

// Clock returns a copy of the animation clock.
func (g *Game) Clock() Clock { return g.clock }

// Layout returns the current scene layout.
func (g *Game) Layout() systems.Layout { return g.layout }

// Growth returns the tree growth animator.
func (g *Game) Growth() *systems.GrowthAnimator { return g.growth }

// Hearts returns the heart system.
func (g *Game) Hearts() *systems.HeartSystem { return g.hearts }

// Intro returns the intro sequencer.
func (g *Game) Intro() *Intro { return g.intro }

// Text returns the text reveal.
func (g *Game) Text() *TextReveal { return g.text }

// Reveal returns the age reveal page.
func (g *Game) Reveal() *RevealPage { return g.reveal }
