// Package renderer draws the animation with raylib.
package renderer

import (
	"image/color"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/heartbloom/game"
	"github.com/pthm-cable/heartbloom/systems"
)

// heartCurvePoints is the tessellation per Bézier curve of a heart.
const heartCurvePoints = 6

// guiTextSize is the raygui button label size.
const guiTextSize = 20

// Surface draws frames to the raylib window. The finished tree is cached in
// a render texture so it is not redrawn segment by segment every frame.
type Surface struct {
	width, height int32

	tree       rl.RenderTexture2D
	treeLoaded bool

	// Scratch buffers for heart tessellation
	outline []r2.Vec
	fan     []rl.Vector2
}

// NewSurface creates a surface for a window of the given size. Must be
// called after rl.InitWindow.
func NewSurface(width, height int) *Surface {
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, guiTextSize)
	return &Surface{
		width:   int32(width),
		height:  int32(height),
		outline: make([]r2.Vec, 0, 4*heartCurvePoints),
		fan:     make([]rl.Vector2, 0, 4*heartCurvePoints+2),
	}
}

// Resize drops the baked tree; the next BakeTree allocates a texture of the
// new size.
func (s *Surface) Resize(width, height int) {
	s.width = int32(width)
	s.height = int32(height)
	s.unloadTree()
}

// BeginFrame starts drawing to the window.
func (s *Surface) BeginFrame() {
	rl.BeginDrawing()
}

// EndFrame presents the frame.
func (s *Surface) EndFrame() {
	rl.EndDrawing()
}

// Clear fills the window with bg.
func (s *Surface) Clear(bg color.RGBA) {
	rl.ClearBackground(bg)
}

// DrawSegments draws tree segments as round-capped lines.
func (s *Surface) DrawSegments(segs []systems.Segment) {
	for i := range segs {
		drawSegment(&segs[i])
	}
}

func drawSegment(seg *systems.Segment) {
	start := vec(seg.Start)
	end := vec(seg.End)
	width := float32(seg.Width)
	rl.DrawLineEx(start, end, width, seg.Color)
	rl.DrawCircleV(start, width/2, seg.Color)
	rl.DrawCircleV(end, width/2, seg.Color)
}

// BakeTree renders segs into the offscreen tree layer.
func (s *Surface) BakeTree(segs []systems.Segment) {
	if !s.treeLoaded {
		s.tree = rl.LoadRenderTexture(s.width, s.height)
		s.treeLoaded = true
	}

	rl.BeginTextureMode(s.tree)
	rl.ClearBackground(rl.Blank)
	s.DrawSegments(segs)
	rl.EndTextureMode()
}

// DrawBakedTree blits the tree layer. Render textures are stored upside
// down, hence the negative source height.
func (s *Surface) DrawBakedTree() {
	if !s.treeLoaded {
		return
	}
	tex := s.tree.Texture
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(tex.Width), Height: -float32(tex.Height)}
	rl.DrawTextureRec(tex, src, rl.Vector2{}, rl.White)
}

// DrawHeart fills a heart shape as a triangle fan.
func (s *Surface) DrawHeart(h systems.HeartView) {
	s.outline = systems.HeartOutline(s.outline[:0], h.Pos, h.Size, heartCurvePoints)

	s.fan = s.fan[:0]
	s.fan = append(s.fan, vec(systems.HeartFanCenter(h.Pos, h.Size)))
	for _, p := range s.outline {
		s.fan = append(s.fan, vec(p))
	}
	s.fan = append(s.fan, s.fan[1]) // close the outline

	rl.DrawTriangleFan(s.fan, rl.ColorAlpha(h.Color, float32(h.Alpha)))
}

// DrawText draws a line of text with the default font.
func (s *Surface) DrawText(t game.TextItem) {
	text := displayText(t.Text)
	size := int32(t.Size)
	x := int32(t.X)
	if t.Centered {
		x -= rl.MeasureText(text, size) / 2
	}
	rl.DrawText(text, x, int32(t.Y), size, rl.ColorAlpha(t.Color, float32(t.Alpha)))
}

// Button draws a raygui button and reports a click.
func (s *Surface) Button(b game.ButtonItem) bool {
	rect := rl.Rectangle{
		X:      float32(b.X - b.W/2),
		Y:      float32(b.Y - b.H/2),
		Width:  float32(b.W),
		Height: float32(b.H),
	}
	if b.Disabled {
		gui.Disable()
		defer gui.Enable()
	}
	return gui.Button(rect, displayText(b.Label)) && !b.Disabled
}

// Unload releases GPU resources.
func (s *Surface) Unload() {
	s.unloadTree()
}

func (s *Surface) unloadTree() {
	if s.treeLoaded {
		rl.UnloadRenderTexture(s.tree)
		s.treeLoaded = false
	}
}

func vec(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

// displayText replaces characters the default font has no glyph for.
var displayText = strings.NewReplacer("…", "...", "’", "'", "“", "\"", "”", "\"").Replace

// Compile-time check
var _ game.Surface = (*Surface)(nil)
