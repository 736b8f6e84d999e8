package meshkernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/engine/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

func trianglesArea(pts []r2.Vec, tris [][3]int) float64 {
	var a float64
	for _, t := range tris {
		a += geom.SignedArea([]r2.Vec{pts[t[0]], pts[t[1]], pts[t[2]]})
	}
	return a
}

func TestEarClip_Concave(t *testing.T) {
	l := []r2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 4}, {X: 0, Y: 4}}
	tris := earClip(l)
	assert.Len(t, tris, 4)
	assert.InDelta(t, 7, trianglesArea(l, tris), 1e-12)
	for _, tr := range tris {
		assert.Positive(t, geom.SignedArea([]r2.Vec{l[tr[0]], l[tr[1]], l[tr[2]]}))
	}
}

func TestTriangulate_WithHoles(t *testing.T) {
	outer := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	hole := func(cx, cy float64) []r2.Vec {
		return []r2.Vec{{X: cx - 1, Y: cy - 1}, {X: cx + 1, Y: cy - 1}, {X: cx + 1, Y: cy + 1}, {X: cx - 1, Y: cy + 1}}
	}

	poly, tris, err := triangulate(outer, [][]r2.Vec{hole(5, 5)})
	require.NoError(t, err)
	assert.Len(t, poly, 4+4+2)
	assert.Len(t, tris, 8)
	assert.InDelta(t, 96, trianglesArea(poly, tris), 1e-9)
}

func TestTriangulate_ClockwiseOuter(t *testing.T) {
	outer := []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 0}}
	poly, tris, err := triangulate(outer, nil)
	require.NoError(t, err)
	assert.InDelta(t, 9, trianglesArea(poly, tris), 1e-12)
}

func TestClosedResample(t *testing.T) {
	sq := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	out := closedResample(sq, 8)
	require.Len(t, out, 8)
	assert.Equal(t, sq[0], out[0])
	assert.InDelta(t, 0.5, out[1].X, 1e-12)
	assert.InDelta(t, 1, geom.SignedArea(out), 1e-12)
	assert.Equal(t, sq, closedResample(sq, 4))
	assert.False(t, math.IsNaN(out[7].Y))
}
