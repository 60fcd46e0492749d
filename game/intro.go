package game

import "github.com/pthm-cable/heartbloom/config"

// IntroState is the intro sequencer's state.
type IntroState uint8

const (
	IntroAwaiting IntroState = iota // prompt shown, waiting for a trigger
	IntroGrowing                    // tree growing
	IntroRevealed                   // tree grown, hearts and text running
)

func (s IntroState) String() string {
	switch s {
	case IntroAwaiting:
		return "awaiting"
	case IntroGrowing:
		return "growing"
	case IntroRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// TriggerCause records what started the intro.
type TriggerCause uint8

const (
	TriggerClick TriggerCause = iota
	TriggerTimeout
)

func (c TriggerCause) String() string {
	if c == TriggerTimeout {
		return "timeout"
	}
	return "click"
}

// Intro starts the animation on the first click or after a timeout,
// whichever comes first.
type Intro struct {
	timeout float64
	prompt  string

	state     IntroState
	cause     TriggerCause
	onTrigger func(TriggerCause)
}

// NewIntro creates a sequencer. onTrigger runs once, on the first trigger.
// A non-positive timeout disables the automatic start.
func NewIntro(cfg config.IntroConfig, onTrigger func(TriggerCause)) *Intro {
	return &Intro{
		timeout:   cfg.TriggerTimeout,
		prompt:    cfg.Prompt,
		onTrigger: onTrigger,
	}
}

// Trigger starts the intro. Returns false if it already started.
func (i *Intro) Trigger(cause TriggerCause) bool {
	if i.state != IntroAwaiting {
		return false
	}
	i.state = IntroGrowing
	i.cause = cause
	if i.onTrigger != nil {
		i.onTrigger(cause)
	}
	return true
}

// Update fires the timeout trigger once now passes it.
func (i *Intro) Update(now float64) {
	if i.state == IntroAwaiting && i.timeout > 0 && now >= i.timeout {
		i.Trigger(TriggerTimeout)
	}
}

// Reveal marks the tree as grown.
func (i *Intro) Reveal() {
	if i.state == IntroGrowing {
		i.state = IntroRevealed
	}
}

// State returns the current state.
func (i *Intro) State() IntroState { return i.state }

// Cause returns what triggered the intro. Only meaningful after a trigger.
func (i *Intro) Cause() TriggerCause { return i.cause }

// PromptVisible reports whether the start prompt should be drawn.
func (i *Intro) PromptVisible() bool { return i.state == IntroAwaiting }

// Prompt returns the prompt label.
func (i *Intro) Prompt() string { return i.prompt }
