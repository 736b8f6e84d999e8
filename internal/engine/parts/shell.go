package parts

import (
	"context"
	"math"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/forma/internal/engine/loft"
	"go.trai.ch/forma/internal/engine/path"
	"go.trai.ch/forma/internal/engine/profile"
	"go.trai.ch/forma/internal/engine/railfit"
	"go.trai.ch/zerr"
)

// Toe fits and lofts both halves of the toe shell and fuses them.
func (b *Builder) Toe(ctx context.Context, p domain.Params) (ports.Solid, error) {
	curve, err := path.New(p.Path)
	if err != nil {
		return nil, err
	}

	halves := make([]ports.Solid, 0, len(sides))
	for _, side := range sides {
		sections := railfit.Fit(curve, railfit.ToeConfig(p.Toe, curve.Length(), side))
		solid, err := loft.Assemble(ctx, b.kernel, loft.FromSections(sections))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to loft toe"), "side", int(side))
		}
		halves = append(halves, solid)
	}
	return b.fuseAll(ctx, halves)
}

// HeelProfiles places the capped heel profile on evenly spaced stations from
// the path start to the heel length.
func HeelProfiles(c *path.Curve, h domain.HeelParams, side geom.Side) []loft.Profile {
	length := math.Min(h.Length, c.Length())
	n := max(h.Stations, 1)
	loop := profile.CapNormal(profile.Build(h.Profile.Clamp(), h.Thickness), h.Height)

	out := make([]loft.Profile, 0, n)
	for i := range n {
		s := 0.0
		if n > 1 {
			s = length * float64(i) / float64(n-1)
		}
		st := c.StationAtLength(s)
		out = append(out, loft.Profile{Frame: geom.NewFrame(st, side), Loop: loop})
	}
	return out
}

// Heel lofts both halves of the heel shell and fuses them.
func (b *Builder) Heel(ctx context.Context, p domain.Params) (ports.Solid, error) {
	curve, err := path.New(p.Path)
	if err != nil {
		return nil, err
	}

	halves := make([]ports.Solid, 0, len(sides))
	for _, side := range sides {
		solid, err := loft.Assemble(ctx, b.kernel, HeelProfiles(curve, p.Heel, side))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to loft heel"), "side", int(side))
		}
		halves = append(halves, solid)
	}
	return b.fuseAll(ctx, halves)
}
