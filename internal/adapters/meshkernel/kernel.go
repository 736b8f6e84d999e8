// Package meshkernel is a built-in preview geometry kernel. It keeps solids as
// prisms, lofts and compounds and triangulates them on demand. Booleans are
// limited to what a preview needs: fuse collects an assembly, cut subtracts
// coaxial prism footprints.
package meshkernel

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/engine/cutout"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Name identifies the kernel in capability reports.
const Name = "meshkernel"

// ExportTolerance is the chord deviation used for file export.
const ExportTolerance = domain.MinTolerance

// containmentTolerance flattens arcs for containment tests.
const containmentTolerance = 0.05

// Kernel implements ports.Kernel. It is safe for concurrent use.
type Kernel struct {
	seq atomic.Uint64
}

var _ ports.Kernel = (*Kernel)(nil)

// New creates a new Kernel.
func New() *Kernel {
	return &Kernel{}
}

func (k *Kernel) handle() string {
	return fmt.Sprintf("mesh-%d", k.seq.Add(1))
}

// Capabilities reports STL export and validated fillets.
func (k *Kernel) Capabilities() domain.Capabilities {
	return domain.Capabilities{
		Name:    Name,
		Formats: []domain.ExportFormat{domain.FormatSTL},
		Fillet:  true,
	}
}

// Sketch validates contour and places it on plane.
func (k *Kernel) Sketch(ctx context.Context, plane domain.Plane, contour domain.Contour) (ports.Sketch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, p := range contour.Points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return nil, zerr.With(domain.ErrKernelOperation, "reason", "non-finite sketch point")
		}
	}
	if len(ring(contour, containmentTolerance)) < 3 {
		return nil, zerr.With(domain.ErrEmptySketch, "points", len(contour.Points))
	}
	return &Sketch{plane: plane, contour: contour}, nil
}

// Extrude sweeps sketch along its plane normal.
func (k *Kernel) Extrude(ctx context.Context, sketch ports.Sketch, distance float64) (ports.Solid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sk, err := asSketch(sketch)
	if err != nil {
		return nil, err
	}
	if math.Abs(distance) < geom.Eps {
		return nil, zerr.With(domain.ErrKernelOperation, "reason", "zero extrusion distance")
	}
	return &Solid{
		id:       k.handle(),
		kind:     kindPrism,
		plane:    sk.plane,
		outline:  sk.contour,
		distance: distance,
	}, nil
}

// Loft records the ordered sections. Meshing resamples them to a common count.
func (k *Kernel) Loft(ctx context.Context, sketches []ports.Sketch) (ports.Solid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(sketches) < 2 {
		return nil, zerr.With(domain.ErrKernelOperation, "sections", len(sketches))
	}
	sections := make([]*Sketch, len(sketches))
	for i, s := range sketches {
		sk, err := asSketch(s)
		if err != nil {
			return nil, err
		}
		sections[i] = sk
	}
	return &Solid{id: k.handle(), kind: kindLoft, sections: sections}, nil
}

// Fuse collects a and b into one assembly. Overlapping volumes stay
// separate shells; a preview does not need them merged.
func (k *Kernel) Fuse(ctx context.Context, a, b ports.Solid) (ports.Solid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sa, err := asSolid(a)
	if err != nil {
		return nil, err
	}
	sb, err := asSolid(b)
	if err != nil {
		return nil, err
	}
	parts := append(sa.Members(), sb.Members()...)
	return &Solid{id: k.handle(), kind: kindCompound, parts: parts}, nil
}

// Cut subtracts tool from target. The tool must be prisms parallel to the
// target prisms that pass fully through every member they touch.
func (k *Kernel) Cut(ctx context.Context, target, tool ports.Solid) (ports.Solid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	st, err := asSolid(target)
	if err != nil {
		return nil, err
	}
	sc, err := asSolid(tool)
	if err != nil {
		return nil, err
	}

	members := slices.Clone(st.Members())
	for _, t := range sc.Members() {
		if t.kind != kindPrism {
			return nil, zerr.With(domain.ErrUnsupportedCut, "tool", "loft")
		}
		for i, m := range members {
			next, err := cutMember(m, t)
			if err != nil {
				return nil, err
			}
			members[i] = next
		}
	}

	if len(members) == 1 {
		out := *members[0]
		out.id = k.handle()
		return &out, nil
	}
	return &Solid{id: k.handle(), kind: kindCompound, parts: members}, nil
}

// cutMember returns m with t's footprint added as a hole, or m unchanged when
// t misses it.
func cutMember(m, t *Solid) (*Solid, error) {
	if m.kind != kindPrism {
		return nil, zerr.With(domain.ErrUnsupportedCut, "target", "loft")
	}
	n := m.plane.Normal
	if math.Abs(r3.Dot(n, t.plane.Normal)) < 1-1e-9 {
		return nil, zerr.With(domain.ErrUnsupportedCut, "reason", "tool not parallel to target")
	}

	mlo, mhi := m.span(n)
	tlo, thi := t.span(n)
	if thi <= mlo+geom.Eps || tlo >= mhi-geom.Eps {
		return m, nil
	}
	if tlo > mlo+geom.Eps || thi < mhi-geom.Eps {
		return nil, zerr.With(domain.ErrUnsupportedCut, "reason", "blind cut")
	}

	hole := m.footprint(t)
	pts := ring(hole, containmentTolerance)
	outer := ring(m.outline, containmentTolerance)
	inside := 0
	for _, p := range pts {
		if cutout.PointInPolygon(p, outer) && !inHoles(p, m.holes) {
			inside++
		}
	}
	switch inside {
	case 0:
		return m, nil
	case len(pts):
	default:
		return nil, zerr.With(domain.ErrUnsupportedCut, "reason", "tool crosses the target boundary")
	}

	out := *m
	out.holes = append(slices.Clone(m.holes), hole)
	return &out, nil
}

func inHoles(p r2.Vec, holes []domain.Contour) bool {
	for _, h := range holes {
		if cutout.PointInPolygon(p, ring(h, containmentTolerance)) {
			return true
		}
	}
	return false
}

// Fillet records radius on a prism's top edges after checking it fits the
// prism height. The preview mesh keeps sharp edges.
func (k *Kernel) Fillet(ctx context.Context, solid ports.Solid, edges domain.EdgeSelection, radius float64) (ports.Solid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := asSolid(solid)
	if err != nil {
		return nil, err
	}
	if s.kind != kindPrism {
		return nil, zerr.With(zerr.With(domain.ErrFilletFailed, "edges", string(edges)), "reason", "not a prism")
	}
	if radius <= 0 || radius >= math.Abs(s.distance) {
		return nil, zerr.With(zerr.With(domain.ErrFilletFailed, "radius", radius), "height", math.Abs(s.distance))
	}
	out := *s
	out.id = k.handle()
	out.fillet = radius
	return &out, nil
}

// Triangulate meshes solid with chords deviating at most tolerance from arcs.
func (k *Kernel) Triangulate(ctx context.Context, solid ports.Solid, tolerance float64) (*domain.Mesh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := asSolid(solid)
	if err != nil {
		return nil, err
	}
	return mesh(s, domain.QuantizeTolerance(tolerance))
}

// Export serializes solid. Only binary STL is available.
func (k *Kernel) Export(ctx context.Context, solid ports.Solid, format domain.ExportFormat) ([]byte, error) {
	if format != domain.FormatSTL {
		return nil, zerr.With(domain.ErrUnsupportedFormat, "format", string(format))
	}
	m, err := k.Triangulate(ctx, solid, ExportTolerance)
	if err != nil {
		return nil, err
	}
	return EncodeSTL(m)
}
