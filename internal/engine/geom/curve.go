package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
	"honnef.co/go/curve"
)

// Pt converts v to a curve point.
func Pt(v r2.Vec) curve.Point {
	return curve.Pt(v.X, v.Y)
}

// FromPt converts a curve point back to a vector.
func FromPt(p curve.Point) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Cubic returns the cubic Bezier with control points c.
func Cubic(c [4]r2.Vec) curve.CubicBez {
	return curve.CubicBez{P0: Pt(c[0]), P1: Pt(c[1]), P2: Pt(c[2]), P3: Pt(c[3])}
}
