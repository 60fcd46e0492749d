package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// HeartCurve is the classic parametric heart, y pointing down:
//
//	x = 16 sin³t
//	y = -(13 cos t - 5 cos 2t - 2 cos 3t - cos 4t)
func HeartCurve(t float64) r2.Vec {
	s := math.Sin(t)
	return r2.Vec{
		X: 16 * s * s * s,
		Y: -(13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)),
	}
}

// heartBeziers are the four cubic curves of a heart glyph in unit size,
// centered on the origin: notch, left lobe, bottom tip, right lobe, notch.
var heartBeziers = [4][4]r2.Vec{
	{{X: 0, Y: -0.3}, {X: -0.5, Y: -0.8}, {X: -1, Y: -0.3}, {X: -1, Y: 0}},
	{{X: -1, Y: 0}, {X: -1, Y: 0.6}, {X: 0, Y: 0.9}, {X: 0, Y: 1}},
	{{X: 0, Y: 1}, {X: 0, Y: 0.9}, {X: 1, Y: 0.6}, {X: 1, Y: 0}},
	{{X: 1, Y: 0}, {X: 1, Y: -0.3}, {X: 0.5, Y: -0.8}, {X: 0, Y: -0.3}},
}

// HeartOutline appends the tessellated outline of a heart of the given size
// at center to dst. Each curve contributes perCurve points; the outline runs
// notch, left lobe, tip, right lobe and does not repeat the first point.
func HeartOutline(dst []r2.Vec, center r2.Vec, size float64, perCurve int) []r2.Vec {
	if perCurve < 1 {
		perCurve = 1
	}
	for _, c := range heartBeziers {
		for i := 0; i < perCurve; i++ {
			t := float64(i) / float64(perCurve)
			p := cubic(c[0], c[1], c[2], c[3], t)
			dst = append(dst, r2.Add(center, r2.Scale(size, p)))
		}
	}
	return dst
}

// HeartFanCenter is the point inside the heart every outline point can see,
// used as the hub of a triangle fan.
func HeartFanCenter(center r2.Vec, size float64) r2.Vec {
	return r2.Vec{X: center.X, Y: center.Y + 0.1*size}
}

func cubic(p0, p1, p2, p3 r2.Vec, t float64) r2.Vec {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return r2.Vec{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}
