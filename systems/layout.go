package systems

import "gonum.org/v1/gonum/spatial/r2"

// Layout is the dimension-dependent placement of the scene.
type Layout struct {
	Width, Height float64
	Base          r2.Vec // tree origin
}

// NewLayout centers the tree horizontally, baseOffset above the bottom edge.
func NewLayout(width, height, baseOffset float64) Layout {
	return Layout{
		Width:  width,
		Height: height,
		Base:   r2.Vec{X: width / 2, Y: height - baseOffset},
	}
}

// Clamp returns v limited to the layout bounds.
func (l Layout) Clamp(v r2.Vec) r2.Vec {
	return r2.Vec{
		X: max(0, min(l.Width, v.X)),
		Y: max(0, min(l.Height, v.Y)),
	}
}

// Contains reports whether v lies inside the layout bounds.
func (l Layout) Contains(v r2.Vec) bool {
	return v.X >= 0 && v.X <= l.Width && v.Y >= 0 && v.Y <= l.Height
}
