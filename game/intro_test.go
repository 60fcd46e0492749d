package game

import (
	"testing"

	"github.com/pthm-cable/heartbloom/config"
)

func TestIntroTriggerOnce(t *testing.T) {
	var causes []TriggerCause
	in := NewIntro(config.Default().Intro, func(c TriggerCause) { causes = append(causes, c) })

	if !in.PromptVisible() {
		t.Error("prompt hidden before trigger")
	}
	if !in.Trigger(TriggerClick) {
		t.Fatal("first trigger refused")
	}
	if in.Trigger(TriggerClick) {
		t.Error("second trigger accepted")
	}
	in.Update(100)

	if len(causes) != 1 || causes[0] != TriggerClick {
		t.Errorf("expected a single click trigger, got %v", causes)
	}
	if in.PromptVisible() {
		t.Error("prompt visible after trigger")
	}

	in.Reveal()
	if in.State() != IntroRevealed {
		t.Errorf("state %s after reveal, want revealed", in.State())
	}
}

func TestIntroTimeout(t *testing.T) {
	cfg := config.Default().Intro
	fired := 0
	in := NewIntro(cfg, func(TriggerCause) { fired++ })

	in.Update(cfg.TriggerTimeout - 0.01)
	if fired != 0 {
		t.Fatal("fired before the timeout")
	}
	in.Update(cfg.TriggerTimeout)
	if fired != 1 || in.Cause() != TriggerTimeout {
		t.Errorf("expected one timeout trigger, fired %d cause %s", fired, in.Cause())
	}
}

func TestIntroRevealBeforeTrigger(t *testing.T) {
	in := NewIntro(config.Default().Intro, nil)
	in.Reveal()
	if in.State() != IntroAwaiting {
		t.Errorf("reveal before trigger moved state to %s", in.State())
	}
}

func TestIntroTimeoutDisabled(t *testing.T) {
	cfg := config.Default().Intro
	cfg.TriggerTimeout = 0
	in := NewIntro(cfg, nil)
	in.Update(1e6)
	if in.State() != IntroAwaiting {
		t.Error("zero timeout should never auto start")
	}
}
