package parts

import (
	"context"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/engine/cutout"
	"go.trai.ch/forma/internal/engine/path"
	"go.trai.ch/zerr"
)

// FilletSequence lists the fractions of the requested top-edge radius tried in
// turn before the fillet is skipped.
var FilletSequence = []float64{1, 0.5, 0.25}

// holeClearance extends hole tools past both faces of the plate.
const holeClearance = 1.0

// Base builds the plate: the outline extruded upward, top edges rounded,
// washer pads and seam patches fused beneath, holes cut through.
func (b *Builder) Base(ctx context.Context, p domain.Params) (ports.Solid, error) {
	curve, err := path.New(p.Path)
	if err != nil {
		return nil, err
	}

	outline := cutout.BaseOutline(curve, p.Base)
	body, err := b.prism(ctx, 0, outline, p.Base.Thickness)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to extrude base outline")
	}

	body = b.filletTop(ctx, body, p.Base.FilletRadius)

	holes := cutout.HoleLayout(curve, p.Holes)
	pads := cutout.WasherPads(holes, p.Washers)
	for i, pad := range pads {
		solid, err := b.prism(ctx, 0, pad, -p.Washers.Thickness)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to extrude washer pad"), "pad", i)
		}
		if body, err = b.kernel.Fuse(ctx, body, solid); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to fuse washer pad"), "pad", i)
		}
	}

	for i, patch := range cutout.SeamPatches(outline, pads, p.Washers) {
		solid, err := b.prism(ctx, -p.Washers.Thickness, patch, p.Washers.Thickness+p.Base.Thickness)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to extrude seam patch"), "patch", i)
		}
		if body, err = b.kernel.Fuse(ctx, body, solid); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to fuse seam patch"), "patch", i)
		}
	}

	bottom := -holeClearance
	if p.Washers.Enabled {
		bottom -= p.Washers.Thickness
	}
	height := p.Base.Thickness + holeClearance - bottom
	for i, h := range holes {
		tool, err := b.prism(ctx, bottom, h.Contour, height)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to extrude hole"), "hole", i)
		}
		if body, err = b.kernel.Cut(ctx, body, tool); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to cut hole"), "hole", i)
		}
	}
	return body, nil
}

// prism sketches contour on the horizontal plane at z and extrudes it by a
// signed height.
func (b *Builder) prism(ctx context.Context, z float64, c domain.Contour, height float64) (ports.Solid, error) {
	sk, err := b.kernel.Sketch(ctx, domain.XYPlane(z), c)
	if err != nil {
		return nil, err
	}
	return b.kernel.Extrude(ctx, sk, height)
}

// filletTop rounds the top outline edges, retrying with smaller radii. The
// unrounded body is kept when every attempt fails.
func (b *Builder) filletTop(ctx context.Context, body ports.Solid, radius float64) ports.Solid {
	if radius <= 0 {
		return body
	}
	if !b.kernel.Capabilities().Fillet {
		b.warnf("kernel %s cannot fillet, keeping sharp base edges", b.kernel.Capabilities().Name)
		return body
	}
	for _, f := range FilletSequence {
		r := radius * f
		rounded, err := b.kernel.Fillet(ctx, body, domain.EdgesTopOutline, r)
		if err == nil {
			return rounded
		}
		b.warnf("base fillet of %.3g failed: %v", r, err)
	}
	b.warnf("skipping base fillet after %d attempts", len(FilletSequence))
	return body
}
