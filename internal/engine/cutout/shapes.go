package cutout

import (
	"gonum.org/v1/gonum/spatial/r2"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
)

// Circle returns a circle as two half-circle arc segments.
func Circle(center r2.Vec, r float64) domain.Contour {
	return domain.Contour{
		Points: []r2.Vec{
			{X: center.X + r, Y: center.Y},
			{X: center.X - r, Y: center.Y},
		},
		Arcs: map[int]r2.Vec{
			0: {X: center.X, Y: center.Y + r},
			1: {X: center.X, Y: center.Y - r},
		},
	}
}

// Stadium returns a slot whose semicircular ends are centred on c1 and c2.
// Coincident centres degrade to a circle.
func Stadium(c1, c2 r2.Vec, diameter float64) domain.Contour {
	r := diameter / 2
	axis := r2.Sub(c2, c1)
	if r2.Norm(axis) < geom.Eps {
		return Circle(c1, r)
	}
	d := geom.Unit2(axis)
	n := geom.LeftNormal(d)
	return domain.Contour{
		Points: []r2.Vec{
			r2.Sub(c1, r2.Scale(r, n)),
			r2.Sub(c2, r2.Scale(r, n)),
			r2.Add(c2, r2.Scale(r, n)),
			r2.Add(c1, r2.Scale(r, n)),
		},
		Arcs: map[int]r2.Vec{
			1: r2.Add(c2, r2.Scale(r, d)),
			3: r2.Sub(c1, r2.Scale(r, d)),
		},
	}
}
