// Package railfit fits one profile per station so the swept shell follows two
// interpolated boundary rails.
package railfit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/forma/internal/engine/path"
	"go.trai.ch/forma/internal/engine/profile"
)

// Strength bounds for anchor tangents.
const (
	MinStrength = 0.2
	MaxStrength = 8.0
)

const (
	// preAnchorNormalWeight blends anchor A's end normal into its open-end tangent.
	preAnchorNormalWeight = 0.55
	// preAnchorScale is the open-end tangent magnitude relative to |AB|.
	preAnchorScale = 0.30
)

// Anchor pins a profile descriptor to an arc-length position on the path.
type Anchor struct {
	S        float64
	Desc     domain.ProfileDescriptor
	Strength float64
}

// Rounding shrinks the profile height near anchor A.
type Rounding struct {
	Shrink float64
	Band   float64
}

// Config drives one rail fit.
type Config struct {
	Anchors         [3]Anchor
	Thickness       float64
	StationsPerSpan int
	Side            geom.Side
	Rounding        Rounding
}

// ToeConfig maps toe parameters onto a fit along a path of the given length.
// The anchors are laid out so that C lands at or before the path tip.
func ToeConfig(p domain.ToeParams, length float64, side geom.Side) Config {
	sA := math.Max(0, length-(p.LenAB+p.LenBC))
	sB := math.Min(sA+p.LenAB, length)
	sC := math.Min(sB+p.LenBC, length)
	return Config{
		Anchors: [3]Anchor{
			{S: sA, Desc: p.A, Strength: p.StrengthA},
			{S: sB, Desc: p.B, Strength: p.StrengthB},
			{S: sC, Desc: p.C, Strength: p.StrengthC},
		},
		Thickness:       p.Thickness,
		StationsPerSpan: p.StationsPerSpan,
		Side:            side,
		Rounding:        Rounding{Shrink: p.RoundShrink, Band: p.RoundBand},
	}
}

// Rails are the outer and inner target curves through three anchors.
type Rails struct {
	S      [3]float64
	Outer  [3]r3.Vec
	Inner  [3]r3.Vec
	Descs  [3]domain.ProfileDescriptor
	outerT [3]r3.Vec
	innerT [3]r3.Vec
}

// NewRails maps the anchor descriptors through their station frames and
// derives the Hermite tangents of both rails.
func NewRails(c *path.Curve, cfg Config) Rails {
	var r Rails
	var strength [3]float64
	var normalA r3.Vec
	for k, a := range cfg.Anchors {
		r.S[k] = a.S
		r.Descs[k] = a.Desc.Clamp()
		strength[k] = domain.Clamp(a.Strength, MinStrength, MaxStrength)

		f := geom.NewFrame(c.StationAtLength(a.S), cfg.Side)
		m := profile.Endpoint(r.Descs[k], cfg.Thickness)
		r.Outer[k] = f.MapVec(m.OuterEnd)
		r.Inner[k] = f.MapVec(m.InnerEnd)
		if k == 0 {
			normalA = geom.Unit3(f.MapDir(m.EndNormal))
		}
	}
	r.outerT = tangents(r.Outer, strength, normalA)
	r.innerT = tangents(r.Inner, strength, normalA)
	return r
}

// tangents derives the per-anchor Hermite tangents of one rail.
func tangents(p [3]r3.Vec, strength [3]float64, normalA r3.Vec) [3]r3.Vec {
	var t [3]r3.Vec

	ab := r3.Sub(p[1], p[0])
	dir := r3.Add(
		r3.Scale(1-preAnchorNormalWeight, geom.Unit3(ab)),
		r3.Scale(preAnchorNormalWeight, normalA),
	)
	t[0] = r3.Scale(preAnchorScale*r3.Norm(ab)/strength[0], geom.Unit3(dir))
	t[1] = r3.Scale(0.5/strength[1], r3.Sub(p[2], p[0]))
	t[2] = r3.Scale(0.5/strength[2], r3.Sub(p[2], p[1]))
	return t
}

func hermite(p0, t0, p1, t1 r3.Vec, u float64) r3.Vec {
	u2, u3 := u*u, u*u*u
	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2
	return r3.Add(
		r3.Add(r3.Scale(h00, p0), r3.Scale(h10, t0)),
		r3.Add(r3.Scale(h01, p1), r3.Scale(h11, t1)),
	)
}

// span locates s between two anchors. It returns the lower anchor index and
// the normalized position within the span.
func (r Rails) span(s float64) (int, float64) {
	k := 0
	if s > r.S[1] {
		k = 1
	}
	length := r.S[k+1] - r.S[k]
	if length < geom.Eps {
		return k, 1
	}
	return k, domain.Clamp((s-r.S[k])/length, 0, 1)
}

// At returns both rail points at arc length s.
func (r Rails) At(s float64) (outer, inner r3.Vec) {
	k, u := r.span(s)
	outer = hermite(r.Outer[k], r.outerT[k], r.Outer[k+1], r.outerT[k+1], u)
	inner = hermite(r.Inner[k], r.innerT[k], r.Inner[k+1], r.innerT[k+1], u)
	return outer, inner
}

// handles interpolates the handle lengths linearly and the end angle the
// short way round.
func (r Rails) handles(s float64) (start, end, angle float64) {
	k, u := r.span(s)
	a, b := r.Descs[k], r.Descs[k+1]
	start = geom.Lerp(a.StartHandle, b.StartHandle, u)
	end = geom.Lerp(a.EndHandle, b.EndHandle, u)
	angle = a.EndAngleDeg + u*(geom.UnwrapDegrees(b.EndAngleDeg, a.EndAngleDeg)-a.EndAngleDeg)
	return start, end, angle
}
