package game

import (
	"errors"
	"image/color"

	"github.com/pthm-cable/heartbloom/systems"
)

// recordingSurface records what each frame draws.
type recordingSurface struct {
	width, height int

	frames     int
	inFrame    bool
	bakes      int
	bakedCount int // segments in the last bake
	unloaded   bool

	// Reset at BeginFrame
	clears       []color.RGBA
	segments     int
	bakedBlits   int
	hearts       []systems.HeartView
	texts        []TextItem
	buttons      []ButtonItem
	bakeInFrame  bool
	clickButtons bool
}

func (s *recordingSurface) Resize(w, h int) { s.width, s.height = w, h }

func (s *recordingSurface) BeginFrame() {
	s.frames++
	s.inFrame = true
	s.clears = s.clears[:0]
	s.segments = 0
	s.bakedBlits = 0
	s.hearts = s.hearts[:0]
	s.texts = s.texts[:0]
	s.buttons = s.buttons[:0]
}

func (s *recordingSurface) Clear(bg color.RGBA) { s.clears = append(s.clears, bg) }

func (s *recordingSurface) DrawSegments(segs []systems.Segment) { s.segments += len(segs) }

func (s *recordingSurface) BakeTree(segs []systems.Segment) {
	if s.inFrame {
		s.bakeInFrame = true
	}
	s.bakes++
	s.bakedCount = len(segs)
}

func (s *recordingSurface) DrawBakedTree() { s.bakedBlits++ }

func (s *recordingSurface) DrawHeart(h systems.HeartView) { s.hearts = append(s.hearts, h) }

func (s *recordingSurface) DrawText(t TextItem) { s.texts = append(s.texts, t) }

func (s *recordingSurface) Button(b ButtonItem) bool {
	s.buttons = append(s.buttons, b)
	return s.clickButtons && !b.Disabled
}

func (s *recordingSurface) EndFrame() { s.inFrame = false }

func (s *recordingSurface) Unload() { s.unloaded = true }

// failingPlayer records calls and always fails to play, like a browser
// blocking autoplay.
type failingPlayer struct {
	volume float64
	plays  int
}

func (p *failingPlayer) SetVolume(v float64) { p.volume = v }

func (p *failingPlayer) Play() error {
	p.plays++
	return errors.New("autoplay blocked")
}
