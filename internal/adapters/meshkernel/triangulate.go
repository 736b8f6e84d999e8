package meshkernel

import (
	"math"
	"slices"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r2"
)

// ring flattens c at tol and drops repeated and closing points.
func ring(c domain.Contour, tol float64) []r2.Vec {
	pts := geom.Dedupe(geom.Flatten(c, tol), geom.Eps)
	if n := len(pts); n > 1 && geom.Near2(pts[0], pts[n-1], geom.Eps) {
		pts = pts[:n-1]
	}
	return pts
}

// oriented returns pts wound counter-clockwise when ccw is true, clockwise otherwise.
func oriented(pts []r2.Vec, ccw bool) []r2.Vec {
	out := slices.Clone(pts)
	if (geom.SignedArea(out) > 0) != ccw {
		slices.Reverse(out)
	}
	return out
}

// bridge splices every hole into outer through a zero-width channel, giving a
// single weakly simple polygon. outer must be counter-clockwise and every hole
// clockwise and strictly inside it.
func bridge(outer []r2.Vec, holes [][]r2.Vec) ([]r2.Vec, error) {
	poly := slices.Clone(outer)
	pending := slices.Clone(holes)
	// Rightmost holes first keeps later channels from crossing earlier ones.
	slices.SortFunc(pending, func(a, b []r2.Vec) int {
		ax, bx := maxX(a), maxX(b)
		switch {
		case ax > bx:
			return -1
		case ax < bx:
			return 1
		default:
			return 0
		}
	})

	for hi, h := range pending {
		m := 0
		for i, p := range h {
			if p.X > h[m].X {
				m = i
			}
		}
		anchor := h[m]

		order := make([]int, len(poly))
		for i := range order {
			order[i] = i
		}
		slices.SortFunc(order, func(a, b int) int {
			da, db := geom.Dist2(anchor, poly[a]), geom.Dist2(anchor, poly[b])
			switch {
			case da < db:
				return -1
			case da > db:
				return 1
			default:
				return a - b
			}
		})

		best := -1
		for _, i := range order {
			if visible(anchor, poly[i], poly, pending[hi:]) {
				best = i
				break
			}
		}
		if best < 0 {
			return nil, zerr.With(domain.ErrKernelOperation, "reason", "no bridge to hole")
		}

		merged := make([]r2.Vec, 0, len(poly)+len(h)+2)
		merged = append(merged, poly[:best+1]...)
		merged = append(merged, h[m:]...)
		merged = append(merged, h[:m+1]...)
		merged = append(merged, poly[best:]...)
		poly = merged
	}
	return poly, nil
}

func maxX(pts []r2.Vec) float64 {
	x := math.Inf(-1)
	for _, p := range pts {
		x = math.Max(x, p.X)
	}
	return x
}

// visible reports whether segment a–b crosses no edge of the given loops
// away from its own end points.
func visible(a, b r2.Vec, poly []r2.Vec, holes [][]r2.Vec) bool {
	const eps = 1e-9
	blocked := func(loop []r2.Vec) bool {
		for i := range loop {
			p, q := loop[i], loop[(i+1)%len(loop)]
			ta, tb, ok := geom.SegmentIntersect(a, b, p, q)
			if !ok {
				continue
			}
			if ta > eps && ta < 1-eps && tb > -eps && tb < 1+eps {
				return true
			}
		}
		return false
	}
	if blocked(poly) {
		return false
	}
	for _, h := range holes {
		if blocked(h) {
			return false
		}
	}
	return true
}

// earClip triangulates a counter-clockwise, weakly simple polygon and returns
// counter-clockwise index triples into pts.
func earClip(pts []r2.Vec) [][3]int {
	n := len(pts)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([][3]int, 0, n-2)

	for len(idx) > 3 {
		clipped := false
		for k := range idx {
			i0, i1, i2 := idx[(k+len(idx)-1)%len(idx)], idx[k], idx[(k+1)%len(idx)]
			a, b, c := pts[i0], pts[i1], pts[i2]
			cross := geom.Cross2(r2.Sub(b, a), r2.Sub(c, b))
			if cross <= 1e-14 {
				continue
			}
			if containsAny(pts, idx, a, b, c) {
				continue
			}
			tris = append(tris, [3]int{i0, i1, i2})
			idx = slices.Delete(idx, k, k+1)
			clipped = true
			break
		}
		if !clipped {
			// Degenerate remainder: drop the flattest vertex so the loop
			// terminates. Its sliver contributes no area.
			k := flattest(pts, idx)
			idx = slices.Delete(idx, k, k+1)
		}
	}
	a, b, c := pts[idx[0]], pts[idx[1]], pts[idx[2]]
	if geom.Cross2(r2.Sub(b, a), r2.Sub(c, b)) > 1e-14 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

func containsAny(pts []r2.Vec, idx []int, a, b, c r2.Vec) bool {
	for _, j := range idx {
		p := pts[j]
		if p == a || p == b || p == c {
			continue
		}
		if inTriangle(p, a, b, c) {
			return true
		}
	}
	return false
}

// inTriangle is inclusive of the boundary.
func inTriangle(p, a, b, c r2.Vec) bool {
	const eps = -1e-12
	return geom.Cross2(r2.Sub(b, a), r2.Sub(p, a)) >= eps &&
		geom.Cross2(r2.Sub(c, b), r2.Sub(p, b)) >= eps &&
		geom.Cross2(r2.Sub(a, c), r2.Sub(p, c)) >= eps
}

func flattest(pts []r2.Vec, idx []int) int {
	best, bestArea := 0, math.Inf(1)
	for k := range idx {
		a, b, c := pts[idx[(k+len(idx)-1)%len(idx)]], pts[idx[k]], pts[idx[(k+1)%len(idx)]]
		area := math.Abs(geom.Cross2(r2.Sub(b, a), r2.Sub(c, b)))
		if area < bestArea {
			best, bestArea = k, area
		}
	}
	return best
}

// triangulate fills outer minus holes. The returned polygon holds the vertex
// positions the triangles index into.
func triangulate(outer []r2.Vec, holes [][]r2.Vec) ([]r2.Vec, [][3]int, error) {
	outer = oriented(outer, true)
	cw := make([][]r2.Vec, 0, len(holes))
	for _, h := range holes {
		if len(h) >= 3 {
			cw = append(cw, oriented(h, false))
		}
	}
	poly := outer
	if len(cw) > 0 {
		var err error
		poly, err = bridge(outer, cw)
		if err != nil {
			return nil, nil, err
		}
	}
	return poly, earClip(poly), nil
}
