package game

import (
	"image/color"

	"github.com/pthm-cable/heartbloom/systems"
)

// Button and text sizes for the prompt and the reveal page.
const (
	buttonWidth      = 220
	buttonHeight     = 48
	lineSpacing      = 1.6 // line height as a multiple of font size
	revealNumberSize = 160
	revealSubSize    = 32
)

// Draw renders the current frame.
func (g *Game) Draw() {
	s := g.surface
	if s == nil {
		return
	}

	s.BeginFrame()
	s.Clear(g.cfg.Derived.Background)

	if g.page == PageReveal {
		g.drawReveal(s)
	} else {
		g.drawTree(s)
		g.drawHearts(s)
		g.drawText(s)
		g.drawPrompt(s)
	}

	if g.overlay != nil {
		g.overlay()
	}
	s.EndFrame()
}

// drawTree blits the baked tree once grown, otherwise draws the visible
// part of the growing tree.
func (g *Game) drawTree(s Surface) {
	if g.clock.TreeGrown {
		s.DrawBakedTree()
		return
	}
	g.visible = g.growth.Visible(g.visible)
	if len(g.visible) > 0 {
		s.DrawSegments(g.visible)
	}
}

func (g *Game) drawHearts(s Surface) {
	g.hearts.ForEach(func(h systems.HeartView) {
		if h.Alpha > 0 {
			s.DrawHeart(h)
		}
	})
}

func (g *Game) drawText(s Surface) {
	if !g.text.Visible() {
		return
	}
	size := g.cfg.Text.FontSize
	g.lines = g.text.Lines(g.lines)
	for i, line := range g.lines {
		if line.Alpha <= 0 {
			continue
		}
		s.DrawText(TextItem{
			Text:     line.Text,
			X:        g.layout.Width / 2,
			Y:        g.cfg.Text.Top + float64(i)*float64(size)*lineSpacing,
			Size:     size,
			Color:    g.cfg.Derived.TextColor,
			Alpha:    line.Alpha,
			Centered: true,
		})
	}
}

func (g *Game) drawPrompt(s Surface) {
	if !g.intro.PromptVisible() {
		return
	}
	clicked := s.Button(ButtonItem{
		Label: g.intro.Prompt(),
		X:     g.layout.Width / 2,
		Y:     g.layout.Height / 2,
		W:     buttonWidth,
		H:     buttonHeight,
	})
	if clicked {
		g.Click()
	}
}

func (g *Game) drawReveal(s Surface) {
	v := g.reveal.View()
	cx, cy := g.layout.Width/2, g.layout.Height/2

	s.DrawText(TextItem{
		Text:     v.Number,
		X:        cx,
		Y:        cy - revealNumberSize,
		Size:     revealNumberSize,
		Color:    lerpRGBA(g.cfg.Derived.TextColor, g.cfg.Derived.BurnColor, v.Burn),
		Alpha:    1 - 0.7*v.Burn,
		Centered: true,
	})

	if v.SubtitleVisible {
		s.DrawText(TextItem{
			Text:     v.Subtitle,
			X:        cx,
			Y:        cy + revealSubSize,
			Size:     revealSubSize,
			Color:    g.cfg.Derived.TextColor,
			Alpha:    1,
			Centered: true,
		})
	}

	if v.ButtonVisible {
		clicked := s.Button(ButtonItem{
			Label:    v.ButtonLabel,
			X:        cx,
			Y:        cy + 3*revealSubSize,
			W:        buttonWidth,
			H:        buttonHeight,
			Disabled: v.ButtonDisabled,
		})
		if clicked {
			g.Click()
		}
	}
}

// lerpRGBA blends a toward b by t in [0, 1].
func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
