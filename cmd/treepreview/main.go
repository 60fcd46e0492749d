// Tree preview tool - interactive branch generator tuning with sliders.
//
// Usage: go run ./cmd/treepreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/heartbloom/config"
	"github.com/pthm-cable/heartbloom/renderer"
	"github.com/pthm-cable/heartbloom/systems"
)

const (
	windowWidth  = 1200
	windowHeight = 760
	previewWidth = 760
	panelWidth   = windowWidth - previewWidth - 30
)

// slider binds one float parameter to a raygui slider.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(*config.TreeConfig) float64
	set      func(*config.TreeConfig, float64)
}

var sliders = []slider{
	{"Depth", 1, 11, "%.0f",
		func(c *config.TreeConfig) float64 { return float64(c.Depth) },
		func(c *config.TreeConfig, v float64) { c.Depth = int(math.Round(v)) }},
	{"Trunk length", 40, 200, "%.0f",
		func(c *config.TreeConfig) float64 { return c.TrunkLength },
		func(c *config.TreeConfig, v float64) { c.TrunkLength = v }},
	{"Branch angle (rad)", 0.1, 1.2, "%.2f",
		func(c *config.TreeConfig) float64 { return c.BranchAngle },
		func(c *config.TreeConfig, v float64) { c.BranchAngle = v }},
	{"Length decay", 0.5, 0.95, "%.2f",
		func(c *config.TreeConfig) float64 { return c.LengthDecay },
		func(c *config.TreeConfig, v float64) { c.LengthDecay = v }},
	{"Width decay", 0.5, 0.95, "%.2f",
		func(c *config.TreeConfig) float64 { return c.WidthDecay },
		func(c *config.TreeConfig, v float64) { c.WidthDecay = v }},
	{"Fullness jitter", 0, 2, "%.2f",
		func(c *config.TreeConfig) float64 { return c.FullnessJitter },
		func(c *config.TreeConfig, v float64) { c.FullnessJitter = v }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	config.MustInit(*configPath)
	cfg := config.Cfg()
	defaults := cfg.Tree

	rl.InitWindow(windowWidth, windowHeight, "Tree Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	surface := renderer.NewSurface(windowWidth, windowHeight)
	defer surface.Unload()

	params := defaults
	seed := int64(12345)
	origin := r2.Vec{X: previewWidth / 2, Y: windowHeight - defaults.BaseOffset}

	var segs []systems.Segment
	var growth *systems.GrowthAnimator
	var visible []systems.Segment
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			segs = systems.GenerateTree(systems.TreeParamsFromConfig(params, origin), rand.New(rand.NewSource(seed)))
			growth = nil
			needsRegen = false
		}

		drawn := segs
		if growth != nil {
			growth.Tick()
			visible = growth.Visible(visible)
			drawn = visible
		}

		surface.BeginFrame()
		surface.Clear(cfg.Derived.Background)

		rl.BeginScissorMode(10, 10, previewWidth, windowHeight-20)
		surface.DrawSegments(drawn)
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewWidth, windowHeight-20, rl.DarkGray)

		statsY := int32(20)
		rl.DrawText(fmt.Sprintf("Segments: %d  Seed: %d", len(segs), seed), 20, statsY, 16, rl.LightGray)
		if growth != nil {
			rl.DrawText(fmt.Sprintf("Growth: %s %.2f", growth.State(), growth.Progress()), 20, statsY+20, 16, rl.LightGray)
		}

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Tree Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		for i := range sliders {
			s := &sliders[i]
			cur := float32(s.get(&params))
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
			if next != cur {
				s.set(&params, float64(next))
				needsRegen = true
			}
			panelY += 35
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Grow") {
			growth = systems.NewGrowthAnimator(cfg.Growth, params.Depth, nil)
			growth.Start(segs)
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Show All") {
			growth = nil
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			seed = 12345
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		snippet := treeYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 25
		for _, line := range strings.Split(snippet, "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		surface.EndFrame()
	}
}

// treeYAML renders the tuned parameters as a config.yaml tree section.
func treeYAML(t config.TreeConfig) string {
	out, err := yaml.Marshal(map[string]config.TreeConfig{"tree": t})
	if err != nil {
		return err.Error()
	}
	return strings.TrimRight(string(out), "\n")
}
