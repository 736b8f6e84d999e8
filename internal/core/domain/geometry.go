package domain

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Contour is a closed planar point loop. The closing segment from the last point
// back to the first is implicit. A segment i→i+1 listed in Arcs is a three-point
// arc passing through Arcs[i].
type Contour struct {
	Points []r2.Vec
	Arcs   map[int]r2.Vec
}

// NewContour returns a contour made of straight segments only.
func NewContour(pts []r2.Vec) Contour {
	return Contour{Points: pts}
}

// Len returns the number of points.
func (c Contour) Len() int {
	return len(c.Points)
}

// IsArc reports whether segment i is a three-point arc and returns its midpoint.
func (c Contour) IsArc(i int) (r2.Vec, bool) {
	if c.Arcs == nil {
		return r2.Vec{}, false
	}
	mid, ok := c.Arcs[i]
	return mid, ok
}

// Plane is an oriented sketch plane. Local (x, y) maps to Origin + x·XDir + y·YDir.
type Plane struct {
	Origin r3.Vec
	XDir   r3.Vec
	YDir   r3.Vec
	Normal r3.Vec
	// AngleDeg is the rotation of Normal about the world Z axis, unwrapped
	// along a loft sequence.
	AngleDeg float64
}

// XYPlane returns the world XY plane lifted to height z.
func XYPlane(z float64) Plane {
	return Plane{
		Origin: r3.Vec{Z: z},
		XDir:   r3.Vec{X: 1},
		YDir:   r3.Vec{Y: 1},
		Normal: r3.Vec{Z: 1},
	}
}

// Map lifts a local point into world space.
func (p Plane) Map(v r2.Vec) r3.Vec {
	return r3.Add(p.Origin, r3.Add(r3.Scale(v.X, p.XDir), r3.Scale(v.Y, p.YDir)))
}

// Mesh is a flat triangulated buffer.
type Mesh struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals,omitempty"`
	Indices   []uint32  `json:"indices"`
}

// VertexCount returns the number of vertices in the buffer.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles in the buffer.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// MergeMeshes concatenates buffers, rebasing each mesh's indices onto the
// running vertex count. Vertices are not deduplicated across meshes.
// Normals are kept only when every input carries them.
func MergeMeshes(meshes ...*Mesh) *Mesh {
	out := &Mesh{Positions: []float32{}, Indices: []uint32{}}
	withNormals := len(meshes) > 0
	for _, m := range meshes {
		if m != nil && len(m.Positions) > 0 && len(m.Normals) != len(m.Positions) {
			withNormals = false
		}
	}
	if withNormals {
		out.Normals = []float32{}
	}

	var base uint32
	for _, m := range meshes {
		if m == nil {
			continue
		}
		out.Positions = append(out.Positions, m.Positions...)
		if withNormals {
			out.Normals = append(out.Normals, m.Normals...)
		}
		for _, idx := range m.Indices {
			out.Indices = append(out.Indices, idx+base)
		}
		//nolint:gosec // G115: vertex counts stay far below 2^32
		base += uint32(len(m.Positions) / 3)
	}
	return out
}

// EdgeSelection names the set of edges a fillet applies to.
type EdgeSelection string

const (
	// EdgesTopOutline selects the edges bounding the top face of a prism.
	EdgesTopOutline EdgeSelection = "top-outline"
	// EdgesAll selects every edge of the solid.
	EdgesAll EdgeSelection = "all"
)

// Capabilities describes what a geometry kernel can do.
type Capabilities struct {
	Name    string
	Formats []ExportFormat
	Fillet  bool
}

// Supports reports whether the kernel can export format f.
func (c Capabilities) Supports(f ExportFormat) bool {
	for _, have := range c.Formats {
		if have == f {
			return true
		}
	}
	return false
}
