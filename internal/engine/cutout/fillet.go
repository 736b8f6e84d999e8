package cutout

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
)

// FilletOptions configures FilletCorners.
type FilletOptions struct {
	Radius float64
	// MinArc is the arc length walked from a corner to reach the stable
	// neighbours that define its edge directions.
	MinArc float64
	// MinTurnDeg leaves corners turning less than this sharp.
	MinTurnDeg float64
	// Flatness is the chord deviation of sampled fillets. Zero emits
	// three-point arc segments instead.
	Flatness float64
}

// corner is one fillet to splice into a loop.
type corner struct {
	index  int
	d      float64
	t1, t2 r2.Vec
	mid    r2.Vec
}

// FilletCorners rounds every corner of the closed loop by opt.Radius. The
// radius shrinks where neighbouring corners leave too little room.
func FilletCorners(loop []r2.Vec, opt FilletOptions) domain.Contour {
	r := newRing(loop)
	if len(r.pts) < 3 || opt.Radius <= 0 || r.total <= 0 {
		return domain.NewContour(append([]r2.Vec(nil), r.pts...))
	}
	m := opt.MinArc
	if m <= 0 {
		m = opt.Radius
	}
	m = math.Min(m, r.total/4)

	idx := findCorners(r, m, geom.Radians(opt.MinTurnDeg))
	if len(idx) == 0 {
		return domain.NewContour(append([]r2.Vec(nil), r.pts...))
	}

	corners := make([]corner, 0, len(idx))
	for k, c := range idx {
		gapPrev, gapNext := r.total, r.total
		if len(idx) > 1 {
			gapPrev = r.wrap(r.cum[c] - r.cum[idx[(k-1+len(idx))%len(idx)]])
			gapNext = r.wrap(r.cum[idx[(k+1)%len(idx)]] - r.cum[c])
		}
		if cr, ok := solveCorner(r, c, m, opt.Radius, 0.45*math.Min(gapPrev, gapNext)); ok {
			corners = append(corners, cr)
		}
	}
	return splice(r, corners, opt.Flatness)
}

// findCorners returns one vertex per cluster of vertices whose stable turning
// angle exceeds minTurn. Within a cluster the sharpest local turn wins.
func findCorners(r ring, m, minTurn float64) []int {
	n := len(r.pts)
	var cand []int
	for i := range r.pts {
		b, f := r.at(r.cum[i]-m), r.at(r.cum[i]+m)
		if math.Abs(turn(b, r.pts[i], f)) >= minTurn {
			cand = append(cand, i)
		}
	}
	if len(cand) == 0 {
		return nil
	}

	var groups [][]int
	for _, i := range cand {
		if len(groups) > 0 {
			g := groups[len(groups)-1]
			if r.cum[i]-r.cum[g[len(g)-1]] < m {
				groups[len(groups)-1] = append(g, i)
				continue
			}
		}
		groups = append(groups, []int{i})
	}
	if len(groups) > 1 {
		first, last := groups[0], groups[len(groups)-1]
		if r.total-r.cum[last[len(last)-1]]+r.cum[first[0]] < m {
			groups[0] = append(last, first...)
			groups = groups[:len(groups)-1]
		}
	}

	out := make([]int, 0, len(groups))
	for _, g := range groups {
		best := slices.MaxFunc(g, func(a, b int) int {
			ta := math.Abs(turn(r.pts[(a-1+n)%n], r.pts[a], r.pts[(a+1)%n]))
			tb := math.Abs(turn(r.pts[(b-1+n)%n], r.pts[b], r.pts[(b+1)%n]))
			return cmp.Compare(ta, tb)
		})
		out = append(out, best)
	}
	slices.Sort(out)
	return out
}

// solveCorner places the tangent circle at vertex c using the half-angle
// relation d = r / tan(θ/2) between the stable edge directions.
func solveCorner(r ring, c int, m, radius, maxD float64) (corner, bool) {
	v := r.pts[c]
	u1 := geom.Unit2(r2.Sub(r.at(r.cum[c]-m), v))
	u2 := geom.Unit2(r2.Sub(r.at(r.cum[c]+m), v))
	theta := math.Acos(domain.Clamp(r2.Dot(u1, u2), -1, 1))
	if theta < 1e-6 || math.Pi-theta < 1e-6 {
		return corner{}, false
	}
	half := theta / 2
	d := math.Min(radius/math.Tan(half), maxD)
	if d <= geom.Eps {
		return corner{}, false
	}
	rEff := d * math.Tan(half)
	bis := geom.Unit2(r2.Add(u1, u2))
	center := r2.Add(v, r2.Scale(rEff/math.Sin(half), bis))

	return corner{
		index: c,
		d:     d,
		t1:    r.at(r.cum[c] - d),
		t2:    r.at(r.cum[c] + d),
		mid:   r2.Sub(center, r2.Scale(rEff, bis)),
	}, true
}

// splice rebuilds the loop with every corner replaced by its fillet.
func splice(r ring, corners []corner, flatness float64) domain.Contour {
	type item struct {
		key    float64
		vertex int
		corner int
	}
	inside := func(i int) bool {
		for _, c := range corners {
			rel := r.wrap(r.cum[i] - (r.cum[c.index] - c.d))
			if rel <= 2*c.d+1e-12 || rel >= r.total-1e-12 {
				return true
			}
		}
		return false
	}

	items := make([]item, 0, len(r.pts)+len(corners))
	for i := range r.pts {
		if !inside(i) {
			items = append(items, item{key: r.cum[i], vertex: i, corner: -1})
		}
	}
	for k, c := range corners {
		items = append(items, item{key: r.wrap(r.cum[c.index] - c.d), vertex: -1, corner: k})
	}
	slices.SortStableFunc(items, func(a, b item) int { return cmp.Compare(a.key, b.key) })

	out := domain.Contour{Points: make([]r2.Vec, 0, len(items)+len(corners)*8)}
	for _, it := range items {
		if it.corner < 0 {
			out.Points = append(out.Points, r.pts[it.vertex])
			continue
		}
		c := corners[it.corner]
		if flatness <= 0 {
			if out.Arcs == nil {
				out.Arcs = make(map[int]r2.Vec, len(corners))
			}
			out.Arcs[len(out.Points)] = c.mid
			out.Points = append(out.Points, c.t1, c.t2)
			continue
		}
		out.Points = append(out.Points, c.t1)
		out.Points = append(out.Points, geom.ArcThrough(c.t1, c.mid, c.t2, flatness)...)
	}
	return out
}
