package meshkernel

import (
	"slices"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// maxRing caps the resampled point count of a loft section.
const maxRing = 512

// builder accumulates flat-shaded triangles. Each triangle owns its three
// vertices so every vertex carries its face normal.
type builder struct {
	m domain.Mesh
}

func newBuilder() *builder {
	return &builder{m: domain.Mesh{Positions: []float32{}, Normals: []float32{}, Indices: []uint32{}}}
}

func (b *builder) tri(p0, p1, p2 r3.Vec) {
	n := r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0))
	if r3.Norm(n) < 1e-12 {
		return
	}
	n = geom.Unit3(n)
	//nolint:gosec // G115: vertex counts stay far below 2^32
	base := uint32(len(b.m.Positions) / 3)
	for _, p := range []r3.Vec{p0, p1, p2} {
		b.m.Positions = append(b.m.Positions, float32(p.X), float32(p.Y), float32(p.Z))
		b.m.Normals = append(b.m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	b.m.Indices = append(b.m.Indices, base, base+1, base+2)
}

// face emits a triangle wound as given, or reversed when flip is set.
func (b *builder) face(flip bool, p0, p1, p2 r3.Vec) {
	if flip {
		b.tri(p0, p2, p1)
		return
	}
	b.tri(p0, p1, p2)
}

func (b *builder) mesh() *domain.Mesh {
	out := b.m
	return &out
}

func mesh(s *Solid, tol float64) (*domain.Mesh, error) {
	switch s.kind {
	case kindPrism:
		return meshPrism(s, tol)
	case kindLoft:
		return meshLoft(s, tol)
	default:
		members := s.Members()
		parts := make([]*domain.Mesh, 0, len(members))
		for _, m := range members {
			pm, err := mesh(m, tol)
			if err != nil {
				return nil, err
			}
			parts = append(parts, pm)
		}
		return domain.MergeMeshes(parts...), nil
	}
}

func meshPrism(s *Solid, tol float64) (*domain.Mesh, error) {
	outer := oriented(ring(s.outline, tol), true)
	holes := make([][]r2.Vec, 0, len(s.holes))
	for _, h := range s.holes {
		holes = append(holes, oriented(ring(h, tol), false))
	}
	poly, tris, err := triangulate(outer, holes)
	if err != nil {
		return nil, zerr.With(err, "solid", s.id)
	}

	lift := func(p r2.Vec, h float64) r3.Vec {
		return r3.Add(s.plane.Map(p), r3.Scale(h, s.plane.Normal))
	}
	d := s.distance
	down := d*r3.Dot(s.plane.Normal, axis(s.plane)) < 0
	b := newBuilder()

	for _, t := range tris {
		a, c, e := poly[t[0]], poly[t[1]], poly[t[2]]
		// Counter-clockwise triangles face +normal: the far cap when sweeping
		// up, the base cap when sweeping down.
		b.face(down, lift(a, d), lift(c, d), lift(e, d))
		b.face(!down, lift(a, 0), lift(c, 0), lift(e, 0))
	}

	walls := append([][]r2.Vec{outer}, holes...)
	for _, loop := range walls {
		for i := range loop {
			p, q := loop[i], loop[(i+1)%len(loop)]
			b0, b1 := lift(p, 0), lift(q, 0)
			t0, t1 := lift(p, d), lift(q, d)
			b.face(down, b0, b1, t1)
			b.face(down, b0, t1, t0)
		}
	}
	return b.mesh(), nil
}

func meshLoft(s *Solid, tol float64) (*domain.Mesh, error) {
	locals := make([][]r2.Vec, len(s.sections))
	n := 0
	for i, sec := range s.sections {
		locals[i] = ring(sec.contour, tol)
		n = max(n, len(locals[i]))
	}
	n = min(n, maxRing)
	if n < 3 {
		return nil, zerr.With(domain.ErrEmptySketch, "solid", s.id)
	}

	rings := make([][]r3.Vec, len(s.sections))
	for i, sec := range s.sections {
		locals[i] = closedResample(locals[i], n)
		rings[i] = make([]r3.Vec, n)
		for j, p := range locals[i] {
			rings[i][j] = sec.plane.Map(p)
		}
	}

	first, last := s.sections[0].plane, s.sections[len(s.sections)-1].plane
	along := r3.Sub(centroid(rings[len(rings)-1]), centroid(rings[0]))
	forward := r3.Dot(along, axis(first)) >= 0
	ccw := geom.SignedArea(locals[0]) > 0

	b := newBuilder()
	flipSides := ccw != forward
	for k := 0; k+1 < len(rings); k++ {
		r0, r1 := rings[k], rings[k+1]
		for i := range n {
			j := (i + 1) % n
			b.face(flipSides, r0[i], r0[j], r1[j])
			b.face(flipSides, r0[i], r1[j], r1[i])
		}
	}

	capLoop(b, first, locals[0], forward)
	capLoop(b, last, locals[len(locals)-1], r3.Dot(along, axis(last)) < 0)
	return b.mesh(), nil
}

// axis is the direction counter-clockwise local loops wind around.
func axis(p domain.Plane) r3.Vec {
	return r3.Cross(p.XDir, p.YDir)
}

// capLoop fills a section. The cap faces against axis(plane) when back is set.
func capLoop(b *builder, plane domain.Plane, local []r2.Vec, back bool) {
	pts := oriented(local, true)
	for _, t := range earClip(pts) {
		b.face(back, plane.Map(pts[t[0]]), plane.Map(pts[t[1]]), plane.Map(pts[t[2]]))
	}
}

// closedResample spreads n points evenly around the closed loop pts, starting
// at pts[0].
func closedResample(pts []r2.Vec, n int) []r2.Vec {
	if len(pts) == n {
		return pts
	}
	closed := append(slices.Clone(pts), pts[0])
	out := geom.Resample(closed, n+1)
	return out[:n]
}

func centroid(pts []r3.Vec) r3.Vec {
	var c r3.Vec
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	if len(pts) == 0 {
		return c
	}
	return r3.Scale(1/float64(len(pts)), c)
}
