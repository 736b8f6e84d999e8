// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/forma/internal/core/domain"
)

// Solid is an opaque solid handle owned by the kernel that produced it.
type Solid interface {
	// Handle returns a kernel-scoped identifier, stable for the solid's lifetime.
	Handle() string
}

// Sketch is a closed planar profile placed on a plane.
type Sketch interface {
	// Plane returns the plane the sketch lies on.
	Plane() domain.Plane
}

// Kernel is the geometry engine that turns planar sketches into solids.
//
// Implementations are responsible for:
//   - Building sketches from closed point loops, honoring three-point arc segments
//   - Solid construction (extrude, loft) and booleans (fuse, cut)
//   - Edge rounding, triangulation and file export
//
//go:generate go run go.uber.org/mock/mockgen -source=kernel.go -destination=mocks/mock_kernel.go -package=mocks
type Kernel interface {
	// Sketch builds a closed sketch of contour on plane.
	Sketch(ctx context.Context, plane domain.Plane, contour domain.Contour) (Sketch, error)
	// Extrude sweeps a sketch along its plane normal by a signed distance.
	Extrude(ctx context.Context, sketch Sketch, distance float64) (Solid, error)
	// Loft builds a solid through an ordered sequence of sketches on distinct planes.
	Loft(ctx context.Context, sketches []Sketch) (Solid, error)
	// Fuse returns the union of a and b.
	Fuse(ctx context.Context, a, b Solid) (Solid, error)
	// Cut returns target with tool removed.
	Cut(ctx context.Context, target, tool Solid) (Solid, error)
	// Fillet rounds the selected edges of solid by radius.
	Fillet(ctx context.Context, solid Solid, edges domain.EdgeSelection, radius float64) (Solid, error)
	// Triangulate produces a flat mesh buffer within the given deviation tolerance.
	Triangulate(ctx context.Context, solid Solid, tolerance float64) (*domain.Mesh, error)
	// Export serializes solid to the given format.
	Export(ctx context.Context, solid Solid, format domain.ExportFormat) ([]byte, error)
	// Capabilities reports the optional operations and formats the kernel supports.
	Capabilities() domain.Capabilities
}

// KernelFactory performs the one-time, potentially slow, kernel initialization.
type KernelFactory interface {
	// Init loads and initializes a kernel instance.
	Init(ctx context.Context) (Kernel, error)
}
