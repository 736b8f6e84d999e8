package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SegmentIntersect solves a0 + ta·(a1−a0) = b0 + tb·(b1−b0).
// It reports false for parallel segments and for solutions outside both unit ranges.
func SegmentIntersect(a0, a1, b0, b1 r2.Vec) (ta, tb float64, ok bool) {
	r := r2.Sub(a1, a0)
	s := r2.Sub(b1, b0)
	den := Cross2(r, s)
	if math.Abs(den) < 1e-12 {
		return 0, 0, false
	}
	qp := r2.Sub(b0, a0)
	ta = Cross2(qp, s) / den
	tb = Cross2(qp, r) / den
	if ta < 0 || ta > 1 || tb < 0 || tb > 1 {
		return 0, 0, false
	}
	return ta, tb, true
}

// RayHit is the result of a ray/polyline query.
type RayHit struct {
	Point r2.Vec
	// Segment is the index of the polyline segment hit.
	Segment int
	// T is the fraction along the hit segment.
	T float64
	// Dist is the distance from the ray origin.
	Dist float64
}

// RayPolylineHit returns the hit nearest to origin along dir on the open
// polyline pts. Hits closer than minDist are ignored.
func RayPolylineHit(origin, dir r2.Vec, pts []r2.Vec, minDist float64) (RayHit, bool) {
	dir = Unit2(dir)
	if dir == (r2.Vec{}) {
		return RayHit{}, false
	}
	best := RayHit{Dist: math.Inf(1)}
	found := false
	for i := 0; i+1 < len(pts); i++ {
		s := r2.Sub(pts[i+1], pts[i])
		den := Cross2(dir, s)
		if math.Abs(den) < 1e-12 {
			continue
		}
		qp := r2.Sub(pts[i], origin)
		d := Cross2(qp, s) / den
		u := Cross2(qp, dir) / den
		if d < minDist || u < 0 || u > 1 {
			continue
		}
		if d < best.Dist {
			best = RayHit{Point: r2.Add(origin, r2.Scale(d, dir)), Segment: i, T: u, Dist: d}
			found = true
		}
	}
	return best, found
}

// Resample redistributes the open polyline pts to n points evenly spaced by
// arc length. The end points are kept exactly.
func Resample(pts []r2.Vec, n int) []r2.Vec {
	if n < 2 || len(pts) == 0 {
		return append([]r2.Vec(nil), pts...)
	}
	out := make([]r2.Vec, n)
	total := PolylineLength(pts)
	if len(pts) == 1 || total < Eps {
		for i := range out {
			out[i] = pts[0]
		}
		return out
	}

	out[0] = pts[0]
	out[n-1] = pts[len(pts)-1]
	j := 0
	walked := 0.0
	for i := 1; i < n-1; i++ {
		target := total * float64(i) / float64(n-1)
		for j+1 < len(pts)-1 && walked+Dist2(pts[j], pts[j+1]) < target {
			walked += Dist2(pts[j], pts[j+1])
			j++
		}
		seg := Dist2(pts[j], pts[j+1])
		t := 0.0
		if seg > 0 {
			t = math.Min(1, (target-walked)/seg)
		}
		out[i] = Lerp2(pts[j], pts[j+1], t)
	}
	return out
}
