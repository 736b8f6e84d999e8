// Package geom provides 2-D and 3-D helpers shared by the geometry pipeline.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Eps is the general-purpose length tolerance for coincidence tests.
const Eps = 1e-9

// Unit2 returns v normalized, or the zero vector when v has no length.
func Unit2(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n < Eps {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// Unit3 returns v normalized, or the zero vector when v has no length.
func Unit3(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < Eps {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// LeftNormal rotates v by +90 degrees.
func LeftNormal(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// Cross2 returns the z component of the 3-D cross product of a and b.
func Cross2(a, b r2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Lerp2 interpolates between a and b.
func Lerp2(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Lerp3 interpolates between a and b.
func Lerp3(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// Lerp interpolates between two scalars.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Dist2 returns the distance between a and b.
func Dist2(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}

// Near2 reports whether a and b are within eps of each other.
func Near2(a, b r2.Vec, eps float64) bool {
	return r2.Norm2(r2.Sub(a, b)) <= eps*eps
}

// Dir returns the unit vector at deg degrees from +X.
func Dir(deg float64) r2.Vec {
	s, c := math.Sincos(Radians(deg))
	return r2.Vec{X: c, Y: s}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Smoothstep is the cubic Hermite ease between edge0 and edge1.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	t = math.Max(0, math.Min(1, t))
	return t * t * (3 - 2*t)
}

// UnwrapDegrees returns the angle equivalent to a (mod 360) closest to ref.
func UnwrapDegrees(a, ref float64) float64 {
	for a-ref > 180 {
		a -= 360
	}
	for a-ref < -180 {
		a += 360
	}
	return a
}

// Bounds returns the axis-aligned bounding box of pts.
func Bounds(pts []r2.Vec) (lo, hi r2.Vec) {
	if len(pts) == 0 {
		return r2.Vec{}, r2.Vec{}
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// SignedArea returns the shoelace area of the closed loop pts.
// Counter-clockwise loops are positive.
func SignedArea(pts []r2.Vec) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += Cross2(pts[i], pts[j])
	}
	return a / 2
}

// PolylineLength returns the summed segment length of an open polyline.
func PolylineLength(pts []r2.Vec) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += Dist2(pts[i-1], pts[i])
	}
	return l
}

// Dedupe drops consecutive points closer than eps, keeping the first of each run.
func Dedupe(pts []r2.Vec, eps float64) []r2.Vec {
	if len(pts) == 0 {
		return nil
	}
	out := make([]r2.Vec, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if !Near2(p, out[len(out)-1], eps) {
			out = append(out, p)
		}
	}
	return out
}
