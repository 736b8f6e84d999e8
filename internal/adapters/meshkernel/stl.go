package meshkernel

import (
	"bytes"
	"encoding/binary"
	"math"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/spatial/r3"
)

const stlHeader = "forma binary STL"

// EncodeSTL writes m as binary STL. Facet normals are recomputed from the
// vertex positions.
func EncodeSTL(m *domain.Mesh) ([]byte, error) {
	if m == nil {
		m = &domain.Mesh{}
	}
	if len(m.Indices)%3 != 0 {
		return nil, zerr.With(domain.ErrKernelOperation, "indices", len(m.Indices))
	}
	count := m.TriangleCount()

	var buf bytes.Buffer
	buf.Grow(84 + 50*count)
	header := make([]byte, 80)
	copy(header, stlHeader)
	buf.Write(header)
	//nolint:gosec // G115: triangle counts stay far below 2^32
	_ = binary.Write(&buf, binary.LittleEndian, uint32(count))

	vertex := func(i uint32) (r3.Vec, error) {
		at := int(i) * 3
		if at+2 >= len(m.Positions) {
			return r3.Vec{}, zerr.With(domain.ErrKernelOperation, "index", i)
		}
		return r3.Vec{X: float64(m.Positions[at]), Y: float64(m.Positions[at+1]), Z: float64(m.Positions[at+2])}, nil
	}

	facet := make([]float32, 12)
	for t := range count {
		var p [3]r3.Vec
		for k := range 3 {
			v, err := vertex(m.Indices[3*t+k])
			if err != nil {
				return nil, err
			}
			p[k] = v
		}
		n := r3.Cross(r3.Sub(p[1], p[0]), r3.Sub(p[2], p[0]))
		if l := r3.Norm(n); l > 0 {
			n = r3.Scale(1/l, n)
		}
		facet[0], facet[1], facet[2] = float32(n.X), float32(n.Y), float32(n.Z)
		for k := range 3 {
			facet[3+3*k] = float32(p[k].X)
			facet[4+3*k] = float32(p[k].Y)
			facet[5+3*k] = float32(p[k].Z)
		}
		_ = binary.Write(&buf, binary.LittleEndian, facet)
		_ = binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes(), nil
}

// STLTriangleCount reads the facet count of a binary STL, checking the
// payload length against it.
func STLTriangleCount(data []byte) (int, bool) {
	if len(data) < 84 {
		return 0, false
	}
	n := binary.LittleEndian.Uint32(data[80:84])
	if uint64(len(data)) != 84+50*uint64(n) || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
