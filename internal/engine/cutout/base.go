package cutout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/forma/internal/engine/path"
)

// Outline cleanup and meshing tolerances.
const (
	OutlineMinEdge      = 0.5
	OutlineCollinearTol = 0.005
	OutlineMinTurnDeg   = 30
	PatchFlatness       = 0.05
)

// BaseOutline offsets the path by half the plate width on each side, tapering
// linearly from HeelWidth at the path start to ForeWidth at its tip. The loop
// is counter-clockwise, pruned, and rounded by CornerRadius.
func BaseOutline(c *path.Curve, p domain.BaseParams) domain.Contour {
	l := c.Length()
	right := make([]r2.Vec, 0, c.Len())
	left := make([]r2.Vec, 0, c.Len())
	for _, st := range c.Samples {
		t := 0.0
		if l > 0 {
			t = st.S / l
		}
		half := geom.Lerp(p.HeelWidth, p.ForeWidth, t) / 2
		n := geom.LeftNormal(st.Tan)
		right = append(right, r2.Sub(st.Pos, r2.Scale(half, n)))
		left = append(left, r2.Add(st.Pos, r2.Scale(half, n)))
	}

	loop := right
	for i := len(left) - 1; i >= 0; i-- {
		loop = append(loop, left[i])
	}
	loop = Prune(geom.Dedupe(loop, geom.Eps), OutlineMinEdge, OutlineCollinearTol)
	if p.CornerRadius <= 0 {
		return domain.NewContour(loop)
	}
	return FilletCorners(loop, FilletOptions{
		Radius:     p.CornerRadius,
		MinArc:     p.CornerRadius,
		MinTurnDeg: OutlineMinTurnDeg,
	})
}

// Hole is one screw hole or slot cut through the plate.
type Hole struct {
	Center r2.Vec
	Tan    r2.Vec
	// Slot is the centre distance of a slot's end circles, zero for round holes.
	Slot    float64
	Contour domain.Contour
}

// HoleLayout places PairCount hole pairs along the path. Pair i sits at
// Start + i·PairSpacing, odd pairs shifted by SecondaryOffset, with the two
// holes of a pair Lateral apart across the path. Pairs beyond either path end
// are skipped.
func HoleLayout(c *path.Curve, p domain.HoleParams) []Hole {
	l := c.Length()
	var holes []Hole
	for i := range p.PairCount {
		s := p.Start + float64(i)*p.PairSpacing
		if i%2 == 1 {
			s += p.SecondaryOffset
		}
		if s < 0 || s > l {
			continue
		}
		st := c.StationAtLength(s)
		n := geom.LeftNormal(st.Tan)
		for _, side := range [2]float64{-1, 1} {
			center := r2.Add(st.Pos, r2.Scale(side*p.Lateral/2, n))
			holes = append(holes, Hole{
				Center:  center,
				Tan:     st.Tan,
				Slot:    p.SlotLength,
				Contour: slot(center, st.Tan, p.SlotLength, p.Diameter),
			})
		}
	}
	return holes
}

func slot(center, tan r2.Vec, length, diameter float64) domain.Contour {
	if length <= 0 {
		return Circle(center, diameter/2)
	}
	h := r2.Scale(length/2, tan)
	return Stadium(r2.Sub(center, h), r2.Add(center, h), diameter)
}

// WasherPads returns one pad outline beneath each hole, following the hole's
// slot axis. Disabled washers yield nil.
func WasherPads(holes []Hole, w domain.WasherParams) []domain.Contour {
	if !w.Enabled {
		return nil
	}
	pads := make([]domain.Contour, 0, len(holes))
	for _, h := range holes {
		pads = append(pads, slot(h.Center, h.Tan, h.Slot, w.Diameter))
	}
	return pads
}

// SeamPatches fills the sharp notches left where a washer pad crosses the plate
// outline. Each crossing gets a small wedge bounded by both curves and closed
// by a fillet of PatchRadius, walking at most PatchWalk along either curve.
func SeamPatches(outline domain.Contour, pads []domain.Contour, w domain.WasherParams) []domain.Contour {
	if !w.Enabled || !w.Patches || w.PatchWalk <= 0 {
		return nil
	}
	ro := newRing(geom.Flatten(outline, PatchFlatness))
	if len(ro.pts) < 3 {
		return nil
	}

	var out []domain.Contour
	for _, pad := range pads {
		rp := newRing(geom.Flatten(pad, PatchFlatness))
		if len(rp.pts) < 3 {
			continue
		}
		for _, h := range distinctHits(LoopIntersections(ro.pts, rp.pts)) {
			if patch, ok := bestPatch(ro, rp, h, w); ok {
				out = append(out, patch)
			}
		}
	}
	return out
}

func distinctHits(hits []Hit) []Hit {
	out := hits[:0:0]
	for _, h := range hits {
		dup := false
		for _, o := range out {
			if geom.Near2(h.Point, o.Point, 1e-6) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, h)
		}
	}
	return out
}

// wedge is one candidate patch at a crossing.
type wedge struct {
	contour domain.Contour
	h       r2.Vec
	t1, t2  r2.Vec
}

// bestPatch tries the four quadrants around a crossing and keeps the most
// plausible one.
func bestPatch(ro, rp ring, h Hit, w domain.WasherParams) (domain.Contour, bool) {
	sO := ro.position(h.SegA, h.TA)
	sP := rp.position(h.SegB, h.TB)

	var best wedge
	bestVotes := 0
	for _, dir := range [4][2]float64{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		wg, ok := buildWedge(ro, rp, h.Point, sO, sP, dir[0], dir[1], w)
		if !ok {
			continue
		}
		if votes := patchPlausible(wg, ro.pts, rp.pts); votes >= 2 && votes > bestVotes {
			best, bestVotes = wg, votes
		}
	}
	return best.contour, bestVotes > 0
}

func buildWedge(ro, rp ring, h r2.Vec, sO, sP, dO, dP float64, w domain.WasherParams) (wedge, bool) {
	walk := math.Min(w.PatchWalk, math.Min(ro.total, rp.total)/4)
	e1 := ro.at(sO + dO*walk)
	e2 := rp.at(sP + dP*walk)
	u1, u2 := geom.Unit2(r2.Sub(e1, h)), geom.Unit2(r2.Sub(e2, h))
	theta := math.Acos(domain.Clamp(r2.Dot(u1, u2), -1, 1))
	if theta < 1e-3 || math.Pi-theta < 1e-3 {
		return wedge{}, false
	}
	half := theta / 2
	d := walk
	if w.PatchRadius > 0 {
		d = math.Min(w.PatchRadius/math.Tan(half), walk)
	}

	side1 := ro.walk(sO, dO*d)
	side2 := rp.walk(sP, dP*d)
	if len(side1) < 2 || len(side2) < 2 {
		return wedge{}, false
	}
	t1, t2 := side1[len(side1)-1], side2[len(side2)-1]

	rEff := d * math.Tan(half)
	bis := geom.Unit2(r2.Add(u1, u2))
	center := r2.Add(h, r2.Scale(rEff/math.Sin(half), bis))
	mid := r2.Sub(center, r2.Scale(rEff, bis))

	pts := make([]r2.Vec, 0, len(side1)+len(side2))
	pts = append(pts, side1...)
	arc := len(pts) - 1
	for i := len(side2) - 1; i >= 1; i-- {
		pts = append(pts, side2[i])
	}
	if len(pts) < 3 {
		return wedge{}, false
	}
	return wedge{
		contour: domain.Contour{Points: pts, Arcs: map[int]r2.Vec{arc: mid}},
		h:       h,
		t1:      t1,
		t2:      t2,
	}, true
}

// patchPlausible counts sample points near the wedge apex that lie outside
// both the outline and the pad. A real notch scores at least two of three.
func patchPlausible(wg wedge, outline, pad []r2.Vec) int {
	a, b := r2.Sub(wg.t1, wg.h), r2.Sub(wg.t2, wg.h)
	votes := 0
	for _, w := range [3][2]float64{{0.1, 0.1}, {0.2, 0.05}, {0.05, 0.2}} {
		p := r2.Add(wg.h, r2.Add(r2.Scale(w[0], a), r2.Scale(w[1], b)))
		if !PointInPolygon(p, outline) && !PointInPolygon(p, pad) {
			votes++
		}
	}
	return votes
}
