package game

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/heartbloom/config"
)

// LineView is one text line as it should be drawn.
type LineView struct {
	Text  string
	Alpha float64
}

type textLine struct {
	text  string
	delay float64
	fade  *gween.Tween
	alpha float64
}

// TextReveal fades in the greeting lines one after another once shown.
type TextReveal struct {
	lines        []textLine
	fadeDuration float64
	timers       *Timers
	visible      bool
}

// NewTextReveal creates a hidden reveal for cfg.Lines. Line i fades in
// i*LineDelay seconds after Show.
func NewTextReveal(cfg config.TextConfig, timers *Timers) *TextReveal {
	lines := make([]textLine, len(cfg.Lines))
	for i, text := range cfg.Lines {
		lines[i] = textLine{text: text, delay: float64(i) * cfg.LineDelay}
	}
	return &TextReveal{
		lines:        lines,
		fadeDuration: cfg.FadeDuration,
		timers:       timers,
	}
}

// Show makes the container visible and schedules each line's fade.
// Later calls do nothing.
func (r *TextReveal) Show(now float64) {
	if r.visible {
		return
	}
	r.visible = true
	for i := range r.lines {
		line := &r.lines[i]
		r.timers.After(now, line.delay, func() {
			if r.fadeDuration <= 0 {
				line.alpha = 1
				return
			}
			line.fade = gween.New(0, 1, float32(r.fadeDuration), ease.OutQuad)
		})
	}
}

// Update advances running fades by dt seconds.
func (r *TextReveal) Update(dt float64) {
	for i := range r.lines {
		line := &r.lines[i]
		if line.fade == nil {
			continue
		}
		v, done := line.fade.Update(float32(dt))
		line.alpha = clamp01(float64(v))
		if done {
			line.alpha = 1
			line.fade = nil
		}
	}
}

// Visible reports whether Show has been called.
func (r *TextReveal) Visible() bool { return r.visible }

// Delay returns the reveal delay of line i.
func (r *TextReveal) Delay(i int) float64 { return r.lines[i].delay }

// Lines appends the current line views to dst.
func (r *TextReveal) Lines(dst []LineView) []LineView {
	dst = dst[:0]
	for _, l := range r.lines {
		dst = append(dst, LineView{Text: l.text, Alpha: l.alpha})
	}
	return dst
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
