package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/heartbloom/components"
	"github.com/pthm-cable/heartbloom/config"
	"github.com/pthm-cable/heartbloom/systems"
	"github.com/pthm-cable/heartbloom/telemetry"
)

func newTestGame(t *testing.T, mutate func(*config.Config), opts Options) (*Game, *recordingSurface, *failingPlayer) {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	surface := &recordingSurface{width: cfg.Screen.Width, height: cfg.Screen.Height}
	player := &failingPlayer{}

	opts.Config = cfg
	opts.Surface = surface
	opts.Player = player
	if opts.Seed == 0 {
		opts.Seed = 1
	}

	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	return g, surface, player
}

func frame(g *Game) {
	g.Update()
	g.Draw()
}

func TestTreeGrowsAndHeartsBloom(t *testing.T) {
	g, s, player := newTestGame(t, nil, Options{})

	// Before the trigger only the prompt is drawn
	frame(g)
	if len(s.buttons) != 1 || s.segments != 0 {
		t.Fatalf("expected prompt only, got %d buttons %d segments", len(s.buttons), s.segments)
	}

	g.Click()
	if g.Intro().State() != IntroGrowing {
		t.Fatalf("intro state %s after click, want growing", g.Intro().State())
	}
	if player.plays != 1 || player.volume != 0.4 {
		t.Errorf("expected one Play at volume 0.4, got %d plays at %v", player.plays, player.volume)
	}

	frames := 0
	sawPartial := false
	for !g.Clock().TreeGrown && frames < 200 {
		frame(g)
		frames++
		if s.segments > 0 && s.segments < len(g.Growth().Segments()) {
			sawPartial = true
		}
	}
	if !g.Clock().TreeGrown {
		t.Fatal("tree never finished growing")
	}
	if frames != g.Growth().TicksToComplete() {
		t.Errorf("tree grew in %d frames, want %d", frames, g.Growth().TicksToComplete())
	}
	if !sawPartial {
		t.Error("never drew a partially grown tree")
	}
	if s.bakes != 1 || s.bakedCount != len(g.Growth().Segments()) {
		t.Errorf("expected one bake of the full tree, got %d bakes of %d segments", s.bakes, s.bakedCount)
	}
	if s.bakeInFrame {
		t.Error("tree baked inside a frame")
	}
	if g.Intro().State() != IntroRevealed {
		t.Errorf("intro state %s after growth, want revealed", g.Intro().State())
	}

	// Grown tree is blitted from the baked layer
	frame(g)
	if s.bakedBlits != 1 || s.segments != 0 {
		t.Errorf("expected baked blit only, got %d blits %d segments", s.bakedBlits, s.segments)
	}
	if len(s.buttons) != 0 {
		t.Error("prompt still drawn after trigger")
	}

	for i := 0; i < 600; i++ {
		frame(g)
		if n := g.Hearts().Count(); n > g.Hearts().Max() {
			t.Fatalf("heart count %d exceeds max", n)
		}
	}

	counts := g.Hearts().PhaseCounts()
	if counts[components.PhaseBlooming]+counts[components.PhaseFloating] == 0 {
		t.Errorf("expected settled hearts, got counts %v", counts)
	}
	if len(s.hearts) == 0 {
		t.Error("no hearts drawn")
	}
	if !g.Text().Visible() || len(s.texts) != len(config.Default().Text.Lines) {
		t.Errorf("expected all %d text lines drawn, got %d", len(config.Default().Text.Lines), len(s.texts))
	}
}

func TestDrawOrder(t *testing.T) {
	g, s, _ := newTestGame(t, nil, Options{})
	frame(g)
	if len(s.clears) != 1 || s.clears[0] != g.cfg.Derived.Background {
		t.Errorf("expected one clear to background, got %v", s.clears)
	}
	if s.frames != 1 || s.inFrame {
		t.Error("frame not closed")
	}
}

func TestTimeoutTriggers(t *testing.T) {
	g, _, player := newTestGame(t, nil, Options{})

	for g.Clock().Time < 2.9 {
		g.Update()
	}
	if g.Intro().State() != IntroAwaiting {
		t.Fatalf("intro started before the timeout at %.2fs", g.Clock().Time)
	}

	for g.Clock().Time < 3.1 {
		g.Update()
	}
	if g.Intro().State() != IntroGrowing || g.Intro().Cause() != TriggerTimeout {
		t.Fatalf("expected timeout trigger, got %s by %s", g.Intro().State(), g.Intro().Cause())
	}

	// A later click does nothing
	g.Click()
	if g.Intro().Cause() != TriggerTimeout || player.plays != 1 {
		t.Errorf("click after timeout retriggered: cause %s, %d plays", g.Intro().Cause(), player.plays)
	}
}

func TestTriggerOnce(t *testing.T) {
	g, _, player := newTestGame(t, nil, Options{})

	g.Click()
	g.Update()
	progress := g.Growth().Progress()
	g.Click()
	g.Click()

	if player.plays != 1 {
		t.Errorf("expected a single Play, got %d", player.plays)
	}
	if g.Growth().Progress() != progress {
		t.Error("extra clicks restarted growth")
	}
}

func TestNilPlayerTolerated(t *testing.T) {
	g, err := NewGameWithOptions(Options{Config: config.Default(), Seed: 3})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	defer g.Unload()

	g.Click()
	for i := 0; i < 100; i++ {
		g.UpdateHeadless()
		g.Draw()
	}
	if !g.Clock().TreeGrown {
		t.Error("tree should grow without a player or surface")
	}
}

func TestBurstSpacing(t *testing.T) {
	g, _, _ := newTestGame(t, func(c *config.Config) {
		c.Hearts.SpawnEvery = 1 << 30 // steady spawning off
	}, Options{})

	g.Click()
	for !g.Clock().TreeGrown {
		g.Update()
	}
	grownAt := g.Clock().Time

	for g.Clock().Time < grownAt+0.7 {
		g.Update()
	}
	mid := g.Hearts().Counters().Spawned
	if mid <= 1 || mid >= 30 {
		t.Errorf("expected a partial burst 0.7s in, got %d hearts", mid)
	}

	for g.Clock().Time < grownAt+2 {
		g.Update()
	}
	if n := g.Hearts().Counters().Spawned; n != 30 {
		t.Errorf("expected a burst of 30 hearts, got %d", n)
	}
}

func TestResizeMidAnimation(t *testing.T) {
	g, s, _ := newTestGame(t, nil, Options{})

	g.Click()
	for i := 0; i < 30; i++ {
		frame(g)
	}
	progress := g.Growth().Progress()

	g.Resize(640, 480)
	if s.width != 640 || s.height != 480 {
		t.Errorf("surface not resized, got %dx%d", s.width, s.height)
	}
	want := r2.Vec{X: 320, Y: 400}
	if g.Layout().Base != want {
		t.Errorf("tree base %v, want %v", g.Layout().Base, want)
	}
	if g.Growth().Segments()[0].Start != want {
		t.Errorf("tree not regenerated at new origin: trunk starts at %v", g.Growth().Segments()[0].Start)
	}
	if g.Growth().Progress() != progress {
		t.Error("resize reset growth progress")
	}

	for !g.Clock().TreeGrown {
		frame(g)
	}
	for i := 0; i < 60; i++ {
		frame(g)
	}

	// Resizing a grown tree rebakes it
	bakes := s.bakes
	g.Resize(1024, 768)
	if s.bakes != bakes+1 {
		t.Errorf("expected a rebake on resize, got %d bakes", s.bakes-bakes)
	}
	l := g.Layout()
	g.Hearts().ForEach(func(h systems.HeartView) {
		if !l.Contains(h.Target) {
			t.Errorf("heart target %v outside %vx%v", h.Target, l.Width, l.Height)
		}
	})

	// Same size is a no-op
	g.Resize(1024, 768)
	if s.bakes != bakes+1 {
		t.Error("same-size resize rebaked")
	}
}

func TestSameTreeAfterResize(t *testing.T) {
	g, _, _ := newTestGame(t, nil, Options{Seed: 99})
	g.Click()
	g.Update()

	before := g.Growth().Segments()
	base := g.Layout().Base
	g.Resize(900, 900)
	after := g.Growth().Segments()
	delta := r2.Sub(g.Layout().Base, base)

	if len(before) != len(after) {
		t.Fatalf("segment count changed: %d vs %d", len(before), len(after))
	}
	for i := range before {
		moved := r2.Add(before[i].End, delta)
		if r2.Norm(r2.Sub(moved, after[i].End)) > 1e-6 {
			t.Fatalf("segment %d changed shape on resize", i)
		}
	}
}

func TestRevealPageFlow(t *testing.T) {
	g, s, _ := newTestGame(t, nil, Options{Page: PageReveal})

	frame(g)
	if len(s.buttons) != 1 || s.buttons[0].Label != "Burn it" {
		t.Fatalf("expected the burn button, got %+v", s.buttons)
	}

	s.clickButtons = true
	frame(g)
	s.clickButtons = false
	if g.Reveal().State() != RevealBurning {
		t.Fatalf("reveal state %s after button click", g.Reveal().State())
	}
	start := g.Clock().Time

	frame(g)
	if !s.buttons[0].Disabled || s.buttons[0].Label != "Burning…" {
		t.Errorf("button during burn = %+v", s.buttons[0])
	}

	// The tree page never runs
	if g.Intro().State() != IntroAwaiting || g.Hearts().Count() != 0 {
		t.Error("tree scene ran on the reveal page")
	}

	for g.Clock().Time < start+1.5 {
		frame(g)
	}
	if g.Reveal().View().Number != "19" {
		t.Error("number swapped before the burn finished")
	}

	for g.Clock().Time < start+1.7 {
		frame(g)
	}
	v := g.Reveal().View()
	if v.Number != "20" || !v.SubtitleVisible || v.Subtitle != "A new chapter." || v.ButtonVisible {
		t.Errorf("unexpected view after burn: %+v", v)
	}
	if len(s.buttons) != 0 {
		t.Error("button still drawn after burn")
	}
}

func TestHeadlessTelemetry(t *testing.T) {
	dir := t.TempDir()
	var windows []telemetry.WindowStats

	cfg := config.Default()
	g, err := NewGameWithOptions(Options{
		Config:         cfg,
		Seed:           5,
		Headless:       true,
		AutoClick:      true,
		StatsWindowSec: 1,
		OutputDir:      dir,
		StatsCallback:  func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}

	for i := 0; i < 400; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	if len(windows) < 3 {
		t.Fatalf("expected at least 3 stats windows, got %d", len(windows))
	}
	if windows[0].TreeGrown {
		t.Error("tree should still be growing in the first window")
	}
	last := windows[len(windows)-1]
	if !last.TreeGrown || last.Hearts == 0 {
		t.Errorf("expected a grown tree with hearts by the last window, got %+v", last)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	rows := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(rows) != len(windows)+1 {
		t.Errorf("expected %d csv rows plus header, got %d lines", len(windows), len(rows))
	}
	for _, name := range []string{"perf.csv", "bookmarks.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		in      string
		want    Page
		wantErr bool
	}{
		{"", PageTree, false},
		{"tree", PageTree, false},
		{"reveal", PageReveal, false},
		{"cake", PageTree, true},
	}
	for _, tt := range tests {
		got, err := ParsePage(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePage(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestOverlayAndStatus(t *testing.T) {
	overlays := 0
	g, s, _ := newTestGame(t, nil, Options{Overlay: func() { overlays++ }})

	g.Click()
	for i := 0; i < 3; i++ {
		frame(g)
	}
	if overlays != 3 || s.inFrame {
		t.Errorf("overlay drawn %d times, want 3 inside frames", overlays)
	}

	st := g.Status()
	if st.Tick != 3 || st.Intro != IntroGrowing || st.TreeGrown {
		t.Errorf("unexpected status %+v", st)
	}
	if st.GrowthTarget != 11 || st.MaxHearts != 150 {
		t.Errorf("growth target %v max %d, want 11 and 150", st.GrowthTarget, st.MaxHearts)
	}
}

func TestHeartsSpawnedAfterShrinkStayOnScreen(t *testing.T) {
	g, _, _ := newTestGame(t, nil, Options{})

	g.Click()
	for !g.Clock().TreeGrown {
		frame(g)
	}
	g.Resize(400, 300)

	for i := 0; i < 3000; i++ {
		frame(g)
	}

	l := g.Layout()
	if g.Hearts().Count() != g.Hearts().Max() {
		t.Fatalf("expected a full crown, got %d of %d hearts", g.Hearts().Count(), g.Hearts().Max())
	}
	outside := 0
	g.Hearts().ForEach(func(h systems.HeartView) {
		if !l.Contains(h.Target) {
			outside++
		}
		if h.Phase == components.PhaseGrowing {
			t.Errorf("heart still chasing %v after 50s", h.Target)
		}
	})
	if outside != 0 {
		t.Errorf("%d hearts target points outside %vx%v", outside, l.Width, l.Height)
	}
}
