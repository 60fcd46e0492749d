package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/heartbloom/config"
)

// GrowthState is the growth animator's state.
type GrowthState uint8

const (
	GrowthNotStarted GrowthState = iota
	GrowthGrowing
	GrowthComplete
)

func (s GrowthState) String() string {
	switch s {
	case GrowthNotStarted:
		return "not_started"
	case GrowthGrowing:
		return "growing"
	case GrowthComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// GrowthAnimator reveals a generated tree one level at a time.
// The integer part of progress is the number of fully drawn levels and the
// fractional part is how far the next level has grown.
type GrowthAnimator struct {
	increment float64
	margin    float64
	depth     int

	state    GrowthState
	progress float64
	ticks    int
	segments []Segment

	onComplete func()
}

// NewGrowthAnimator creates an animator. onComplete runs exactly once, on
// the tick that enters GrowthComplete.
func NewGrowthAnimator(cfg config.GrowthConfig, depth int, onComplete func()) *GrowthAnimator {
	return &GrowthAnimator{
		increment:  cfg.Increment,
		margin:     cfg.Margin,
		depth:      depth,
		onComplete: onComplete,
	}
}

// Start begins growing segments. Only the first call has any effect.
func (a *GrowthAnimator) Start(segments []Segment) bool {
	if a.state != GrowthNotStarted {
		return false
	}
	a.segments = segments
	a.state = GrowthGrowing
	return true
}

// Tick advances progress by one increment. Returns true on the tick that
// completes growth.
func (a *GrowthAnimator) Tick() bool {
	if a.state != GrowthGrowing {
		return false
	}
	a.ticks++
	a.progress += a.increment
	if a.progress < float64(a.depth)+a.margin {
		return false
	}
	a.state = GrowthComplete
	if a.onComplete != nil {
		a.onComplete()
	}
	return true
}

// State returns the current state.
func (a *GrowthAnimator) State() GrowthState { return a.state }

// Progress returns the current progress value.
func (a *GrowthAnimator) Progress() float64 { return a.progress }

// Ticks returns how many growing ticks have run.
func (a *GrowthAnimator) Ticks() int { return a.ticks }

// Segments returns the full tree being grown.
func (a *GrowthAnimator) Segments() []Segment { return a.segments }

// TicksToComplete is the number of ticks Tick needs to reach GrowthComplete.
func (a *GrowthAnimator) TicksToComplete() int {
	return int(math.Ceil((float64(a.depth) + a.margin) / a.increment))
}

// Replace swaps in a regenerated tree (after a resize) without touching progress.
func (a *GrowthAnimator) Replace(segments []Segment) {
	if a.state == GrowthNotStarted {
		return
	}
	a.segments = segments
}

// Visible appends the segments to draw this frame to dst.
func (a *GrowthAnimator) Visible(dst []Segment) []Segment {
	dst = dst[:0]
	if a.state == GrowthNotStarted {
		return dst
	}
	if a.state == GrowthComplete {
		return append(dst, a.segments...)
	}

	full := int(math.Floor(a.progress))
	frac := a.progress - float64(full)
	for _, s := range a.segments {
		switch {
		case s.Level < full:
			dst = append(dst, s)
		case s.Level == full && frac > 0:
			s.End = r2.Add(s.Start, r2.Scale(frac, r2.Sub(s.End, s.Start)))
			dst = append(dst, s)
		}
	}
	return dst
}
