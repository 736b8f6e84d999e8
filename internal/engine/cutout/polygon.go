// Package cutout is the planar polygon toolkit behind the base plate: corner
// fillets, pruning, slots, intersections and containment tests.
package cutout

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
	"go.trai.ch/forma/internal/engine/geom"
)

// Open drops a closing copy of the first point, if present.
func Open(loop []r2.Vec) []r2.Vec {
	if n := len(loop); n > 1 && loop[0] == loop[n-1] {
		return loop[:n-1]
	}
	return loop
}

// Prune removes edges shorter than minEdge and vertices closer than
// collinearTol to the line through their neighbours. At least three points
// are always kept. The loop is treated as closed.
func Prune(loop []r2.Vec, minEdge, collinearTol float64) []r2.Vec {
	pts := append([]r2.Vec(nil), Open(loop)...)
	if len(pts) <= 3 {
		return pts
	}

	// Short edges.
	out := pts[:1]
	for _, p := range pts[1:] {
		if geom.Dist2(p, out[len(out)-1]) >= minEdge {
			out = append(out, p)
		}
	}
	for len(out) > 3 && geom.Dist2(out[0], out[len(out)-1]) < minEdge {
		out = out[:len(out)-1]
	}
	pts = out

	// Near-collinear vertices. Each pass removes at most every other vertex so
	// the tolerance is measured against neighbours that survive.
	for changed := true; changed && len(pts) > 3; {
		changed = false
		keep := make([]r2.Vec, 0, len(pts))
		removedPrev, removedFirst := false, false
		n := len(pts)
		for i := range pts {
			prev, next := pts[(i-1+n)%n], pts[(i+1)%n]
			blocked := removedPrev || (i == n-1 && removedFirst)
			if !blocked && n-(i-len(keep)) > 3 && lineDistance(pts[i], prev, next) < collinearTol {
				removedPrev = true
				removedFirst = removedFirst || i == 0
				changed = true
				continue
			}
			removedPrev = false
			keep = append(keep, pts[i])
		}
		if len(keep) < 3 {
			break
		}
		pts = keep
	}
	return pts
}

// lineDistance is the perpendicular distance of p from the line through a and b.
func lineDistance(p, a, b r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l := r2.Norm(ab)
	if l < geom.Eps {
		return geom.Dist2(p, a)
	}
	return math.Abs(geom.Cross2(ab, r2.Sub(p, a))) / l
}

// PointInPolygon reports whether p lies inside the closed loop by ray parity.
func PointInPolygon(p r2.Vec, loop []r2.Vec) bool {
	pts := Open(loop)
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// SegmentIntersection returns the crossing point of segments a and b.
func SegmentIntersection(a0, a1, b0, b1 r2.Vec) (r2.Vec, bool) {
	ta, _, ok := geom.SegmentIntersect(a0, a1, b0, b1)
	if !ok {
		return r2.Vec{}, false
	}
	return geom.Lerp2(a0, a1, ta), true
}

// Hit is a crossing between two closed loops.
type Hit struct {
	Point r2.Vec
	SegA  int
	TA    float64
	SegB  int
	TB    float64
}

// LoopIntersections returns every crossing between closed loops a and b, in
// order along a.
func LoopIntersections(a, b []r2.Vec) []Hit {
	a, b = Open(a), Open(b)
	var hits []Hit
	for i := range a {
		a0, a1 := a[i], a[(i+1)%len(a)]
		for j := range b {
			ta, tb, ok := geom.SegmentIntersect(a0, a1, b[j], b[(j+1)%len(b)])
			if !ok || ta == 1 {
				continue
			}
			hits = append(hits, Hit{Point: geom.Lerp2(a0, a1, ta), SegA: i, TA: ta, SegB: j, TB: tb})
		}
	}
	slices.SortFunc(hits, func(x, y Hit) int {
		if c := cmp.Compare(x.SegA, y.SegA); c != 0 {
			return c
		}
		return cmp.Compare(x.TA, y.TA)
	})
	return hits
}

// RayFirstHit returns the first point where the ray from origin along dir
// meets the closed loop.
func RayFirstHit(origin, dir r2.Vec, loop []r2.Vec) (r2.Vec, bool) {
	pts := Open(loop)
	closed := append(append([]r2.Vec(nil), pts...), pts[0])
	hit, ok := geom.RayPolylineHit(origin, dir, closed, geom.Eps)
	return hit.Point, ok
}

// TrimAtRay cuts the open polyline at its first hit by the ray. Without a
// hit the polyline is returned unchanged.
func TrimAtRay(poly []r2.Vec, origin, dir r2.Vec) []r2.Vec {
	hit, ok := geom.RayPolylineHit(origin, dir, poly, geom.Eps)
	if !ok {
		return poly
	}
	out := make([]r2.Vec, 0, hit.Segment+2)
	out = append(out, poly[:hit.Segment+1]...)
	return append(out, hit.Point)
}
