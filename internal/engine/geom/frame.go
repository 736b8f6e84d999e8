package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"go.trai.ch/forma/internal/core/domain"
)

// Station is a resolved point on the path.
type Station struct {
	Pos r2.Vec
	// Tan is the unit tangent.
	Tan r2.Vec
	// S is the cumulative arc length from the path start.
	S float64
}

// Side selects which side of the path a local frame opens towards.
type Side int

const (
	// Left opens along the path's left normal.
	Left Side = 1
	// Right mirrors Left across the path.
	Right Side = -1
)

// Frame is a station's local frame. Local x runs along Lateral, local z along Up.
type Frame struct {
	Origin  r3.Vec
	Forward r3.Vec
	Lateral r3.Vec
	Up      r3.Vec
}

// NewFrame builds the local frame of st opening towards side.
func NewFrame(st Station, side Side) Frame {
	tan := Unit2(st.Tan)
	if tan == (r2.Vec{}) {
		tan = r2.Vec{Y: 1}
	}
	n := LeftNormal(tan)
	s := float64(side)
	return Frame{
		Origin:  r3.Vec{X: st.Pos.X, Y: st.Pos.Y},
		Forward: r3.Vec{X: tan.X, Y: tan.Y},
		Lateral: r3.Vec{X: s * n.X, Y: s * n.Y},
		Up:      r3.Vec{Z: 1},
	}
}

// Map lifts local (x, z) into world space.
func (f Frame) Map(x, z float64) r3.Vec {
	return r3.Add(f.Origin, r3.Add(r3.Scale(x, f.Lateral), r3.Scale(z, f.Up)))
}

// MapVec lifts a local point into world space.
func (f Frame) MapVec(v r2.Vec) r3.Vec {
	return f.Map(v.X, v.Y)
}

// MapDir lifts a local direction into world space.
func (f Frame) MapDir(v r2.Vec) r3.Vec {
	return r3.Add(r3.Scale(v.X, f.Lateral), r3.Scale(v.Y, f.Up))
}

// Project drops p onto the frame's plane and returns its local coordinates.
// It is the closed-form inverse of Map for points on the plane.
func (f Frame) Project(p r3.Vec) r2.Vec {
	d := r3.Sub(p, f.Origin)
	return r2.Vec{X: r3.Dot(d, f.Lateral), Y: r3.Dot(d, f.Up)}
}

// Plane returns the sketch plane of the frame. Its normal is Forward on both
// sides, so the mirrored side's (XDir, YDir, Normal) basis is left-handed.
func (f Frame) Plane() domain.Plane {
	n := f.Forward
	return domain.Plane{
		Origin:   f.Origin,
		XDir:     f.Lateral,
		YDir:     f.Up,
		Normal:   n,
		AngleDeg: Degrees(math.Atan2(n.Y, n.X)),
	}
}
