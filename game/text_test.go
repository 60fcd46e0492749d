package game

import (
	"math"
	"testing"

	"github.com/pthm-cable/heartbloom/config"
)

func TestTextRevealDelays(t *testing.T) {
	cfg := config.Default().Text
	var tm Timers
	r := NewTextReveal(cfg, &tm)

	for i := range cfg.Lines {
		if want := float64(i) * cfg.LineDelay; r.Delay(i) != want {
			t.Errorf("line %d delay %v, want %v", i, r.Delay(i), want)
		}
	}

	if r.Visible() {
		t.Fatal("reveal visible before Show")
	}
	r.Show(10)
	if !r.Visible() {
		t.Fatal("Show did not make the reveal visible")
	}

	const dt = 1.0 / 60.0
	prev := make([]float64, len(cfg.Lines))
	var lines []LineView
	for now := 10.0; now < 10+float64(len(cfg.Lines))*cfg.LineDelay+cfg.FadeDuration+0.5; now += dt {
		tm.Run(now)
		r.Update(dt)
		lines = r.Lines(lines)

		for i, l := range lines {
			if l.Alpha < prev[i] {
				t.Fatalf("line %d alpha fell from %v to %v", i, prev[i], l.Alpha)
			}
			// Nothing shows before the line's delay
			if now < 10+r.Delay(i)-1e-9 && l.Alpha > 0 {
				t.Fatalf("line %d visible at %.3f before its delay %.2f", i, now-10, r.Delay(i))
			}
			prev[i] = l.Alpha
		}
	}

	for i, l := range lines {
		if math.Abs(l.Alpha-1) > 1e-9 {
			t.Errorf("line %d alpha %v, want 1", i, l.Alpha)
		}
	}
}

func TestTextRevealShowOnce(t *testing.T) {
	cfg := config.Default().Text
	var tm Timers
	r := NewTextReveal(cfg, &tm)

	r.Show(0)
	r.Show(0)
	if tm.Pending() != len(cfg.Lines) {
		t.Errorf("expected %d scheduled fades, got %d", len(cfg.Lines), tm.Pending())
	}
}

func TestTextRevealInstantFade(t *testing.T) {
	cfg := config.Default().Text
	cfg.FadeDuration = 0
	var tm Timers
	r := NewTextReveal(cfg, &tm)

	r.Show(0)
	tm.Run(0)
	lines := r.Lines(nil)
	if lines[0].Alpha != 1 {
		t.Errorf("first line alpha %v, want 1 with no fade", lines[0].Alpha)
	}
	if lines[1].Alpha != 0 {
		t.Errorf("second line alpha %v before its delay", lines[1].Alpha)
	}
}
