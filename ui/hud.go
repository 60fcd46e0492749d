package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the debug HUD.
type HUDData struct {
	Tick           int32
	FPS            int32
	SimTime        float64
	Page           string
	Intro          string
	GrowthProgress float64
	GrowthTarget   float64
	Hearts         int
	MaxHearts      int
	Growing        int
	Blooming       int
	Floating       int
	Spawned        int
	Refused        int
	Evicted        int
	Retired        int
}

// HUD renders the debug heads-up display in the top-left corner.
type HUD struct {
	renderer *Renderer
	visible  bool
	width    int32
}

// NewHUD creates a hidden HUD.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer(), width: 260}
}

// Toggle switches visibility and returns the new state.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// Visible reports whether the HUD is drawn.
func (h *HUD) Visible() bool {
	return h.visible
}

// Draw renders the HUD if visible.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}

	r := h.renderer
	pad := r.Theme.Padding
	x := pad + pad
	y := pad + pad

	r.DrawPanel(pad, pad, h.width, 11*r.Theme.LineHeight+3*pad)

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("%s | tick %d | %d fps", data.Page, data.Tick, data.FPS))
	y = r.DrawLabelValue(x, y, "Time", fmt.Sprintf("%.2fs", data.SimTime))
	y = r.DrawLabelValue(x, y, "Intro", data.Intro)

	growth := float32(0)
	if data.GrowthTarget > 0 {
		growth = float32(data.GrowthProgress / data.GrowthTarget)
	}
	y = r.DrawBar(x, y, "Growth", growth, h.width-2*pad)
	y = r.DrawCountBar(x, y, "Hearts", data.Hearts, data.MaxHearts, h.width-2*pad)
	y = r.DrawLabelValue(x, y, "Phases", fmt.Sprintf("%d / %d / %d", data.Growing, data.Blooming, data.Floating))
	y = r.DrawLabelValue(x, y, "Spawned", fmt.Sprintf("%d (%d refused)", data.Spawned, data.Refused))
	r.DrawLabelValue(x, y, "Removed", fmt.Sprintf("%d evicted, %d retired", data.Evicted, data.Retired))
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	if !h.visible {
		return
	}
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
