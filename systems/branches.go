// Package systems provides the tree and heart simulation.
package systems

import (
	"image/color"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/heartbloom/config"
)

// Segment is one stroked branch line.
type Segment struct {
	Start, End r2.Vec
	Width      float64
	Color      color.RGBA
	Depth      int // remaining depth when emitted (trunk has the largest)
	Level      int // distance from the trunk (trunk is 0)
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.End, s.Start))
}

// TreeParams describes one tree.
type TreeParams struct {
	Origin      r2.Vec
	Length      float64
	Angle       float64 // radians, -Pi/2 points up
	Width       float64
	Depth       int
	BranchAngle float64
	LengthDecay float64
	WidthDecay  float64

	// Fullness branches grow at even depths above FullnessMinDepth.
	FullnessMinDepth int
	FullnessLength   float64
	FullnessJitter   float64

	ColorBase [3]int
	ColorStep [3]int
}

// TreeParamsFromConfig builds params for a tree rooted at origin.
func TreeParamsFromConfig(cfg config.TreeConfig, origin r2.Vec) TreeParams {
	p := TreeParams{
		Origin:           origin,
		Length:           cfg.TrunkLength,
		Angle:            -math.Pi / 2,
		Width:            cfg.TrunkWidth,
		Depth:            cfg.Depth,
		BranchAngle:      cfg.BranchAngle,
		LengthDecay:      cfg.LengthDecay,
		WidthDecay:       cfg.WidthDecay,
		FullnessMinDepth: cfg.FullnessMinDepth,
		FullnessLength:   cfg.FullnessLength,
		FullnessJitter:   cfg.FullnessJitter,
	}
	copy(p.ColorBase[:], cfg.ColorBase)
	copy(p.ColorStep[:], cfg.ColorStep)
	return p
}

// GenerateTree returns every segment of the tree, parents before children.
// rng only affects fullness branch angles.
func GenerateTree(p TreeParams, rng *rand.Rand) []Segment {
	if p.Depth <= 0 {
		return nil
	}
	segs := make([]Segment, 0, estimateSegments(p.Depth))
	return branch(segs, p, rng, p.Origin, p.Length, p.Angle, p.Width, p.Depth, 0)
}

func branch(segs []Segment, p TreeParams, rng *rand.Rand, from r2.Vec, length, angle, width float64, depth, level int) []Segment {
	if depth <= 0 {
		return segs
	}

	end := r2.Add(from, r2.Vec{X: math.Cos(angle) * length, Y: math.Sin(angle) * length})
	segs = append(segs, Segment{
		Start: from,
		End:   end,
		Width: width,
		Color: DepthColor(p.ColorBase, p.ColorStep, depth),
		Depth: depth,
		Level: level,
	})

	childLen := length * p.LengthDecay
	childWidth := width * p.WidthDecay

	segs = branch(segs, p, rng, end, childLen, angle-p.BranchAngle, childWidth, depth-1, level+1)
	segs = branch(segs, p, rng, end, childLen, angle+p.BranchAngle, childWidth, depth-1, level+1)

	if depth > p.FullnessMinDepth && depth%2 == 0 {
		jitter := 0.0
		if p.FullnessJitter != 0 && rng != nil {
			jitter = (rng.Float64() - 0.5) * p.FullnessJitter
		}
		segs = branch(segs, p, rng, end, childLen*p.FullnessLength, angle+jitter, childWidth, depth-1, level+1)
	}
	return segs
}

// DepthColor is the linear gradient used for branches: base - step*depth,
// clamped to a byte per channel.
func DepthColor(base, step [3]int, depth int) color.RGBA {
	ch := func(i int) uint8 {
		v := base[i] - step[i]*depth
		return uint8(max(0, min(255, v)))
	}
	return color.RGBA{R: ch(0), G: ch(1), B: ch(2), A: 255}
}

// estimateSegments is a capacity hint, the binary tree plus fullness slack.
func estimateSegments(depth int) int {
	if depth > 16 {
		return 1 << 16
	}
	return (1<<depth)*3/2 + 1
}
