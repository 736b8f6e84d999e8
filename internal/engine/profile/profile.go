// Package profile synthesizes closed cross-section loops from profile descriptors.
//
// A profile lives in a station's local plane: x runs laterally, y vertically.
// The outer boundary is a cubic from the origin to the descriptor's end point.
// The inner boundary is the outer one offset inward by the wall thickness.
package profile

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
)

const (
	// Samples is the number of points sampled along the outer cubic.
	Samples = 70
	// DedupeEps merges near-coincident samples.
	DedupeEps = 1e-6

	minThickness = 1e-3
	minChord     = 1e-6
)

// Meta is the end-point metadata of a loop.
type Meta struct {
	OuterEnd r2.Vec
	InnerEnd r2.Vec
	// EndNormal is the outer boundary's unit left normal at its end.
	EndNormal r2.Vec
}

// Loop is a closed cross-section: the outer boundary followed by the reversed
// inner boundary.
type Loop struct {
	Outer []r2.Vec
	Inner []r2.Vec
	// Points is Outer, then Inner reversed, then a closing copy of Outer[0].
	Points []r2.Vec
	// Sign is the inward offset direction with respect to the left normal.
	Sign float64
	// Fallback marks the unit-square loop used for degenerate descriptors.
	Fallback bool
	Meta     Meta
}

// ControlPolygon returns the cubic control points of desc.
// P1 and P2 are clamped to the bounding box of P0 and P3.
func ControlPolygon(desc domain.ProfileDescriptor) [4]r2.Vec {
	d := desc.Clamp()
	p0 := r2.Vec{}
	p3 := r2.Vec{X: d.EndX, Y: d.EndZ}
	p1 := r2.Vec{X: 0, Y: d.StartHandle}
	p2 := r2.Sub(p3, r2.Scale(d.EndHandle, geom.Dir(d.EndAngleDeg-180)))

	lo := r2.Vec{X: math.Min(p0.X, p3.X), Y: math.Min(p0.Y, p3.Y)}
	hi := r2.Vec{X: math.Max(p0.X, p3.X), Y: math.Max(p0.Y, p3.Y)}
	return [4]r2.Vec{p0, clampBox(p1, lo, hi), clampBox(p2, lo, hi), p3}
}

func clampBox(p, lo, hi r2.Vec) r2.Vec {
	return r2.Vec{X: domain.Clamp(p.X, lo.X, hi.X), Y: domain.Clamp(p.Y, lo.Y, hi.Y)}
}

// outerCurve samples the outer boundary and its left normals.
// It reports false when the descriptor is degenerate.
func outerCurve(desc domain.ProfileDescriptor) (pts, normals []r2.Vec, ok bool) {
	c := ControlPolygon(desc)
	if r2.Norm(r2.Sub(c[3], c[0])) < minChord {
		return nil, nil, false
	}

	bez := geom.Cubic(c)
	raw := make([]r2.Vec, Samples)
	for i := range raw {
		raw[i] = geom.FromPt(bez.Eval(float64(i) / float64(Samples-1)))
	}
	pts = geom.Dedupe(raw, DedupeEps)
	if len(pts) < 3 {
		return nil, nil, false
	}
	// Keep the exact end point even when its sample was merged away.
	pts[len(pts)-1] = c[3]

	normals = make([]r2.Vec, len(pts))
	for i := range pts {
		var d r2.Vec
		if i+1 < len(pts) {
			d = r2.Sub(pts[i+1], pts[i])
		} else {
			d = r2.Sub(pts[i], pts[i-1])
		}
		normals[i] = geom.LeftNormal(geom.Unit2(d))
	}
	return pts, normals, true
}

// InwardSign decides which side of the outer boundary is inside the shell.
// It offsets the curve midpoint both ways and picks the side landing nearer
// the chord midpoint. Ties pick the right side (-1).
//
// This is a heuristic: highly curved or very short profiles can be misclassified.
func InwardSign(mid, normal, chordMid r2.Vec, thickness float64) float64 {
	left := r2.Add(mid, r2.Scale(thickness, normal))
	right := r2.Sub(mid, r2.Scale(thickness, normal))
	if geom.Dist2(left, chordMid) < geom.Dist2(right, chordMid) {
		return 1
	}
	return -1
}

func signOf(pts, normals []r2.Vec, thickness float64) float64 {
	m := len(pts) / 2
	chordMid := geom.Lerp2(pts[0], pts[len(pts)-1], 0.5)
	return InwardSign(pts[m], normals[m], chordMid, thickness)
}

// WallThickness returns the effective wall thickness for t.
func WallThickness(t float64) float64 {
	if math.IsNaN(t) || t < minThickness {
		return minThickness
	}
	return t
}

// Build synthesizes the closed loop of desc with the given wall thickness.
// Degenerate descriptors yield the unit-square fallback loop.
func Build(desc domain.ProfileDescriptor, thickness float64) Loop {
	thickness = WallThickness(thickness)
	outer, normals, ok := outerCurve(desc)
	if !ok {
		return Fallback()
	}

	sign := signOf(outer, normals, thickness)
	inner := make([]r2.Vec, len(outer))
	for i := range outer {
		inner[i] = r2.Add(outer[i], r2.Scale(sign*thickness, normals[i]))
	}
	inner[0].Y = 0
	outer[0].Y = 0
	collapseLoops(inner)

	n := len(outer) - 1
	return newLoop(outer, inner, sign, Meta{
		OuterEnd:  outer[n],
		InnerEnd:  inner[n],
		EndNormal: normals[n],
	})
}

// Endpoint returns the end metadata Build would produce, without building the
// inner boundary.
func Endpoint(desc domain.ProfileDescriptor, thickness float64) Meta {
	thickness = WallThickness(thickness)
	outer, normals, ok := outerCurve(desc)
	if !ok {
		return Fallback().Meta
	}
	sign := signOf(outer, normals, thickness)
	n := len(outer) - 1
	return Meta{
		OuterEnd:  outer[n],
		InnerEnd:  r2.Add(outer[n], r2.Scale(sign*thickness, normals[n])),
		EndNormal: normals[n],
	}
}

// Fallback returns the unit-square loop.
func Fallback() Loop {
	outer := []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}}
	inner := []r2.Vec{{X: 1, Y: 0}, {X: 1, Y: 1}}
	l := newLoop(outer, inner, -1, Meta{
		OuterEnd:  outer[1],
		InnerEnd:  inner[1],
		EndNormal: r2.Vec{X: -1},
	})
	l.Fallback = true
	return l
}

func newLoop(outer, inner []r2.Vec, sign float64, meta Meta) Loop {
	pts := make([]r2.Vec, 0, len(outer)+len(inner)+1)
	pts = append(pts, outer...)
	for i := len(inner) - 1; i >= 0; i-- {
		pts = append(pts, inner[i])
	}
	pts = append(pts, outer[0])
	return Loop{Outer: outer, Inner: inner, Points: pts, Sign: sign, Meta: meta}
}

// collapseLoops removes self-intersections of an offset polyline in place.
// Every point strictly between two crossing segments moves onto the crossing,
// so the point count is unchanged.
func collapseLoops(pts []r2.Vec) {
	for i := 0; i+1 < len(pts); i++ {
		for j := len(pts) - 2; j > i+1; j-- {
			ta, _, ok := geom.SegmentIntersect(pts[i], pts[i+1], pts[j], pts[j+1])
			if !ok {
				continue
			}
			x := geom.Lerp2(pts[i], pts[i+1], ta)
			for k := i + 1; k <= j; k++ {
				pts[k] = x
			}
			// Resume at segment j, which now starts at the crossing.
			i = j - 1
			break
		}
	}
}
