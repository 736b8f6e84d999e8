package cutout

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"go.trai.ch/forma/internal/engine/geom"
)

// ring is a closed loop parametrized by arc length.
type ring struct {
	pts   []r2.Vec
	cum   []float64
	total float64
}

func newRing(loop []r2.Vec) ring {
	pts := Open(loop)
	cum := make([]float64, len(pts))
	var total float64
	for i := range pts {
		cum[i] = total
		total += geom.Dist2(pts[i], pts[(i+1)%len(pts)])
	}
	return ring{pts: pts, cum: cum, total: total}
}

func (r ring) wrap(s float64) float64 {
	if r.total <= 0 {
		return 0
	}
	s = math.Mod(s, r.total)
	if s < 0 {
		s += r.total
	}
	return s
}

// segment locates s and returns the segment index and the fraction along it.
func (r ring) segment(s float64) (int, float64) {
	s = r.wrap(s)
	i := sort.SearchFloat64s(r.cum, s)
	if i == len(r.cum) || r.cum[i] > s {
		i--
	}
	i = max(i, 0)
	l := r.segLen(i)
	if l <= 0 {
		return i, 0
	}
	return i, math.Min(1, (s-r.cum[i])/l)
}

func (r ring) segLen(i int) float64 {
	return geom.Dist2(r.pts[i], r.pts[(i+1)%len(r.pts)])
}

func (r ring) at(s float64) r2.Vec {
	i, t := r.segment(s)
	return geom.Lerp2(r.pts[i], r.pts[(i+1)%len(r.pts)], t)
}

// position returns the arc length of a point on segment i at fraction t.
func (r ring) position(i int, t float64) float64 {
	return r.cum[i] + t*r.segLen(i)
}

// walk returns the polyline from s0 to s0+d, including both ends. A negative
// d walks backwards.
func (r ring) walk(s0, d float64) []r2.Vec {
	out := []r2.Vec{r.at(s0)}
	n := len(r.pts)
	i, _ := r.segment(s0)
	if d >= 0 {
		walked := r.cum[i] + r.segLen(i) - r.wrap(s0)
		for k := 1; walked < d && k <= n; k++ {
			out = append(out, r.pts[(i+k)%n])
			walked += r.segLen((i + k) % n)
		}
	} else {
		walked := r.wrap(s0) - r.cum[i]
		for k := 0; walked < -d && k < n; k++ {
			out = append(out, r.pts[(i-k+n)%n])
			walked += r.segLen((i - k - 1 + 2*n) % n)
		}
	}
	out = append(out, r.at(s0+d))
	if len(out) > 2 {
		out = geom.Dedupe(out, geom.Eps)
	}
	return out
}

// turn is the signed turning angle at b between a→b and b→c.
func turn(a, b, c r2.Vec) float64 {
	u, v := r2.Sub(b, a), r2.Sub(c, b)
	return math.Atan2(geom.Cross2(u, v), r2.Dot(u, v))
}
