package geom

import (
	"math"

	"go.trai.ch/forma/internal/core/domain"
	"gonum.org/v1/gonum/spatial/r2"
	"honnef.co/go/curve"
)

// Circumcircle returns the circle through a, b and c.
// It reports false for collinear points.
func Circumcircle(a, b, c r2.Vec) (r2.Vec, float64, bool) {
	ab := r2.Sub(b, a)
	ac := r2.Sub(c, a)
	d := 2 * Cross2(ab, ac)
	if math.Abs(d) < 1e-12 {
		return r2.Vec{}, 0, false
	}
	ab2, ac2 := r2.Norm2(ab), r2.Norm2(ac)
	off := r2.Vec{
		X: (ac.Y*ab2 - ab.Y*ac2) / d,
		Y: (ab.X*ac2 - ac.X*ab2) / d,
	}
	return r2.Add(a, off), r2.Norm(off), true
}

// ArcThrough flattens the arc from a through m to b into chords within maxErr.
// The result excludes a and ends exactly at b. Collinear input degenerates to
// the straight segment. A maxErr that is not positive or exceeds the radius
// is treated as the radius.
func ArcThrough(a, m, b r2.Vec, maxErr float64) []r2.Vec {
	c, r, ok := Circumcircle(a, m, b)
	if !ok {
		return []r2.Vec{b}
	}
	angle := func(p r2.Vec) float64 { return math.Atan2(p.Y-c.Y, p.X-c.X) }
	mod := func(x float64) float64 {
		x = math.Mod(x, 2*math.Pi)
		if x < 0 {
			x += 2 * math.Pi
		}
		return x
	}
	ta := angle(a)
	sweep := mod(angle(b) - ta)
	if mod(angle(m)-ta) > sweep {
		sweep -= 2 * math.Pi
	}

	tol := maxErr
	if tol <= 0 || tol > r {
		tol = r
	}
	arc := curve.Arc{
		Center:     Pt(c),
		Radii:      curve.Vec(r, r),
		StartAngle: ta,
		SweepAngle: sweep,
	}

	var out []r2.Vec
	for el := range curve.Flatten(arc.PathElements(tol), tol) {
		if el.Kind == curve.LineToKind {
			out = append(out, FromPt(el.P0))
		}
	}
	if len(out) == 0 {
		return []r2.Vec{b}
	}
	out[len(out)-1] = b
	return out
}

// Flatten expands every arc segment of c into chords within maxErr.
// The result is an open point list; the closing edge stays implicit.
func Flatten(c domain.Contour, maxErr float64) []r2.Vec {
	if len(c.Arcs) == 0 {
		return append([]r2.Vec(nil), c.Points...)
	}
	n := len(c.Points)
	out := make([]r2.Vec, 0, 4*n)
	for i, p := range c.Points {
		out = append(out, p)
		mid, ok := c.IsArc(i)
		if !ok {
			continue
		}
		next := c.Points[(i+1)%n]
		arc := ArcThrough(p, mid, next, maxErr)
		// Drop the end point; it is the next contour point.
		out = append(out, arc[:len(arc)-1]...)
	}
	return out
}
