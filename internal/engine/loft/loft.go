// Package loft turns fitted station profiles into a single lofted solid.
package loft

import (
	"context"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/forma/internal/engine/profile"
	"go.trai.ch/forma/internal/engine/railfit"
	"go.trai.ch/zerr"
)

// ThinExtrusion is the extrusion depth used when there is a single station.
const ThinExtrusion = 0.1

// Profile is one cross-section placed on a station frame.
type Profile struct {
	Frame geom.Frame
	Loop  profile.Loop
}

// FromSections adapts fitted sections.
func FromSections(sections []railfit.Section) []Profile {
	out := make([]Profile, len(sections))
	for i, s := range sections {
		out[i] = Profile{Frame: s.Frame, Loop: s.Loop}
	}
	return out
}

// Contour drops the loop's closing point; contours close implicitly.
func Contour(l profile.Loop) domain.Contour {
	pts := l.Points
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return domain.NewContour(pts)
}

// Planes returns one plane per profile with its rotation angle unwrapped
// against the previous plane.
func Planes(profiles []Profile) []domain.Plane {
	planes := make([]domain.Plane, len(profiles))
	for i, p := range profiles {
		pl := p.Frame.Plane()
		if i > 0 {
			pl.AngleDeg = geom.UnwrapDegrees(pl.AngleDeg, planes[i-1].AngleDeg)
		}
		planes[i] = pl
	}
	return planes
}

// Assemble sketches every profile on its plane and requests one loft.
// A single profile is extruded by ThinExtrusion instead.
func Assemble(ctx context.Context, k ports.Kernel, profiles []Profile) (ports.Solid, error) {
	if len(profiles) == 0 {
		return nil, zerr.With(domain.ErrEmptySketch, "profiles", 0)
	}

	planes := Planes(profiles)
	sketches := make([]ports.Sketch, len(profiles))
	for i, p := range profiles {
		sk, err := k.Sketch(ctx, planes[i], Contour(p.Loop))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to sketch loft section"), "section", i)
		}
		sketches[i] = sk
	}

	if len(sketches) < 2 {
		solid, err := k.Extrude(ctx, sketches[0], ThinExtrusion)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to extrude single section")
		}
		return solid, nil
	}

	solid, err := k.Loft(ctx, sketches)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to loft sections"), "sections", len(sketches))
	}
	return solid, nil
}
