// Package components defines ECS components for heart particles.
package components

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Phase is a heart's lifecycle phase. Phases only move forward.
type Phase uint8

const (
	PhaseGrowing  Phase = iota // rising toward its target, fading in
	PhaseBlooming              // at target, finishing the fade in
	PhaseFloating              // idle drift
	numPhases
)

// NumPhases is the number of lifecycle phases.
const NumPhases = int(numPhases)

func (p Phase) String() string {
	switch p {
	case PhaseGrowing:
		return "growing"
	case PhaseBlooming:
		return "blooming"
	case PhaseFloating:
		return "floating"
	default:
		return "unknown"
	}
}

// Position represents a heart's screen position.
type Position struct {
	r2.Vec
}

// Velocity represents a heart's velocity in pixels per reference frame.
type Velocity struct {
	r2.Vec
}

// Target is the point a growing heart is pulled toward.
type Target struct {
	r2.Vec
}

// Appearance holds how a heart is drawn.
type Appearance struct {
	Size  float64
	Color color.RGBA
	Alpha float64 // always within [0, 1]
}

// Bloom holds lifecycle state.
type Bloom struct {
	Phase       Phase
	FloatOffset float64 // phase offset for idle drift
	Life        float64 // seconds of floating left (decaying hearts only)
	Serial      uint64  // spawn order, lower is older
}

// Advance moves to next if it is later than the current phase.
// Returns true if the phase changed.
func (b *Bloom) Advance(next Phase) bool {
	if next <= b.Phase {
		return false
	}
	b.Phase = next
	return true
}
