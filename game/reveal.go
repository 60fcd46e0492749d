package game

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/heartbloom/config"
)

// RevealState is the age reveal page's state.
type RevealState uint8

const (
	RevealIdle RevealState = iota
	RevealBurning
	RevealDone
)

func (s RevealState) String() string {
	switch s {
	case RevealIdle:
		return "idle"
	case RevealBurning:
		return "burning"
	case RevealDone:
		return "done"
	default:
		return "unknown"
	}
}

// RevealView is what the age reveal page shows this frame.
type RevealView struct {
	Number          string
	Burn            float64 // burn transition progress in [0, 1]
	Subtitle        string
	SubtitleVisible bool
	ButtonLabel     string
	ButtonVisible   bool
	ButtonDisabled  bool
}

// RevealPage burns the old number away and shows the new one.
type RevealPage struct {
	cfg    config.RevealConfig
	timers *Timers

	state RevealState
	burn  *gween.Tween
	level float64
}

// NewRevealPage creates an idle page.
func NewRevealPage(cfg config.RevealConfig, timers *Timers) *RevealPage {
	return &RevealPage{cfg: cfg, timers: timers}
}

// Click starts the burn. Returns false if it already started.
func (p *RevealPage) Click(now float64) bool {
	if p.state != RevealIdle {
		return false
	}
	p.state = RevealBurning
	if p.cfg.BurnDelay > 0 {
		p.burn = gween.New(0, 1, float32(p.cfg.BurnDelay), ease.InQuad)
	}
	p.timers.After(now, p.cfg.BurnDelay, p.finish)
	return true
}

func (p *RevealPage) finish() {
	p.state = RevealDone
	p.burn = nil
	p.level = 0
}

// Update advances the burn transition by dt seconds.
func (p *RevealPage) Update(dt float64) {
	if p.burn == nil {
		return
	}
	v, _ := p.burn.Update(float32(dt))
	p.level = clamp01(float64(v))
}

// State returns the current state.
func (p *RevealPage) State() RevealState { return p.state }

// View returns what to draw.
func (p *RevealPage) View() RevealView {
	v := RevealView{
		Number:        p.cfg.Number,
		Burn:          p.level,
		Subtitle:      p.cfg.Subtitle,
		ButtonLabel:   p.cfg.Button,
		ButtonVisible: true,
	}
	switch p.state {
	case RevealBurning:
		v.ButtonLabel = p.cfg.BurningLabel
		v.ButtonDisabled = true
	case RevealDone:
		v.Number = p.cfg.NewNumber
		v.SubtitleVisible = true
		v.ButtonVisible = false
	}
	return v
}
