package game

import (
	"image/color"

	"github.com/pthm-cable/heartbloom/systems"
)

// TextItem is one line of text to draw.
type TextItem struct {
	Text     string
	X, Y     float64
	Size     int
	Color    color.RGBA
	Alpha    float64
	Centered bool // X is the horizontal center rather than the left edge
}

// ButtonItem describes an immediate-mode button centered on X, Y.
type ButtonItem struct {
	Label    string
	X, Y     float64
	W, H     float64
	Disabled bool
}

// Surface is where a frame is drawn. BakeTree is only called outside
// BeginFrame/EndFrame.
type Surface interface {
	Resize(width, height int)
	BeginFrame()
	Clear(bg color.RGBA)
	DrawSegments(segs []systems.Segment)
	BakeTree(segs []systems.Segment)
	DrawBakedTree()
	DrawHeart(h systems.HeartView)
	DrawText(t TextItem)
	// Button draws b and reports whether it was clicked this frame.
	Button(b ButtonItem) bool
	EndFrame()
	Unload()
}

// Player plays the background music.
type Player interface {
	SetVolume(v float64)
	Play() error
}
