package meshkernel

import (
	"math"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sketch is a contour on a plane.
type Sketch struct {
	plane   domain.Plane
	contour domain.Contour
}

var _ ports.Sketch = (*Sketch)(nil)

// Plane returns the plane the sketch lies on.
func (s *Sketch) Plane() domain.Plane {
	return s.plane
}

type kind int

const (
	kindPrism kind = iota
	kindLoft
	kindCompound
)

// Solid is an immutable solid description. Meshes are derived on demand.
type Solid struct {
	id   string
	kind kind

	// Prism: outline swept along the plane normal by distance, minus holes.
	plane    domain.Plane
	outline  domain.Contour
	holes    []domain.Contour
	distance float64
	fillet   float64

	sections []*Sketch
	parts    []*Solid
}

var _ ports.Solid = (*Solid)(nil)

// Handle returns the kernel-scoped identifier.
func (s *Solid) Handle() string {
	return s.id
}

// FilletRadius returns the radius recorded on a prism's top edges, zero when unrounded.
func (s *Solid) FilletRadius() float64 {
	return s.fillet
}

// Members returns the leaf solids of a compound, or s itself.
func (s *Solid) Members() []*Solid {
	if s.kind != kindCompound {
		return []*Solid{s}
	}
	var out []*Solid
	for _, p := range s.parts {
		out = append(out, p.Members()...)
	}
	return out
}

// span returns the signed interval a prism occupies along axis n.
func (s *Solid) span(n r3.Vec) (lo, hi float64) {
	a := r3.Dot(s.plane.Origin, n)
	b := a + s.distance*r3.Dot(s.plane.Normal, n)
	return math.Min(a, b), math.Max(a, b)
}

// project expresses a world point in the prism plane's local coordinates.
func (s *Solid) project(p r3.Vec) r2.Vec {
	d := r3.Sub(p, s.plane.Origin)
	return r2.Vec{X: r3.Dot(d, s.plane.XDir), Y: r3.Dot(d, s.plane.YDir)}
}

// footprint maps tool's outline into s's plane.
func (s *Solid) footprint(tool *Solid) domain.Contour {
	out := domain.Contour{Points: make([]r2.Vec, len(tool.outline.Points))}
	for i, p := range tool.outline.Points {
		out.Points[i] = s.project(tool.plane.Map(p))
	}
	if len(tool.outline.Arcs) > 0 {
		out.Arcs = make(map[int]r2.Vec, len(tool.outline.Arcs))
		for i, m := range tool.outline.Arcs {
			out.Arcs[i] = s.project(tool.plane.Map(m))
		}
	}
	return out
}

func asSolid(s ports.Solid) (*Solid, error) {
	ms, ok := s.(*Solid)
	if !ok || ms == nil {
		return nil, zerr.With(domain.ErrKernelOperation, "reason", "solid from another kernel")
	}
	return ms, nil
}

func asSketch(s ports.Sketch) (*Sketch, error) {
	ms, ok := s.(*Sketch)
	if !ok || ms == nil {
		return nil, zerr.With(domain.ErrKernelOperation, "reason", "sketch from another kernel")
	}
	return ms, nil
}
