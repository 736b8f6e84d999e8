package railfit

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/forma/internal/engine/path"
	"go.trai.ch/forma/internal/engine/profile"
)

// Angle search schedule.
const (
	SweepSamples  = 17
	SweepHalfDeg  = 55.0
	RefinePasses  = 3
	RefineSamples = 9
	RefineShrink  = 0.35

	polishIterations = 60
	polishTolDeg     = 1e-10
)

// Section is one fitted station.
type Section struct {
	Station geom.Station
	Frame   geom.Frame
	Desc    domain.ProfileDescriptor
	// FitError is the squared distance from the achieved inner end to the
	// nearest point the wall can reach towards the desired inner end.
	FitError float64
	// Residual is the squared 3-D distance from the achieved inner end to the
	// desired inner rail point. It is PlaneResidual plus the squared offset of
	// the rail point from the station plane.
	Residual float64
	// PlaneResidual is the squared distance from the achieved inner end to the
	// desired point projected onto the station plane. Its floor is
	// (|desired-outer| - thickness)², where the wall cannot stretch further.
	PlaneResidual float64
	Loop          profile.Loop
}

// Fit produces one section per station between anchors A and C.
// Degenerate anchor layouts collapse spans and never fail.
func Fit(c *path.Curve, cfg Config) []Section {
	rails := NewRails(c, cfg)
	stations := Stations(rails.S, cfg.StationsPerSpan)

	sections := make([]Section, 0, len(stations))
	for _, s := range stations {
		sections = append(sections, fitStation(c, cfg, rails, s))
	}
	return sections
}

// Stations returns the sorted, de-duplicated arc-length positions sampled
// across both spans.
func Stations(anchors [3]float64, perSpan int) []float64 {
	perSpan = max(perSpan, 1)
	out := []float64{anchors[0]}
	for k := range 2 {
		a, b := anchors[k], anchors[k+1]
		for i := 1; i <= perSpan; i++ {
			s := geom.Lerp(a, b, float64(i)/float64(perSpan))
			if s-out[len(out)-1] > geom.Eps {
				out = append(out, s)
			}
		}
	}
	return slices.Clip(out)
}

// leadingShrink is the height reduction at s, fading out over the band after A.
func leadingShrink(r Rounding, sA, s float64) float64 {
	if r.Shrink <= 0 {
		return 0
	}
	return r.Shrink * (1 - geom.Smoothstep(0, r.Band, s-sA))
}

func fitStation(c *path.Curve, cfg Config, rails Rails, s float64) Section {
	st := c.StationAtLength(s)
	frame := geom.NewFrame(st, cfg.Side)

	outerW, innerW := rails.At(s)
	if shrink := leadingShrink(cfg.Rounding, rails.S[0], s); shrink > 0 {
		outerW.Z -= shrink
		innerW.Z -= shrink
	}

	// The outer end is a pure change of coordinates.
	outer := frame.Project(outerW)
	desired := frame.Project(innerW)
	start, end, guess := rails.handles(s)

	desc := domain.ProfileDescriptor{
		EndX:        outer.X,
		EndZ:        outer.Y,
		StartHandle: start,
		EndHandle:   end,
	}
	// The achieved end stays on the plane, so the in-plane distance has the
	// same minimizer as the 3-D one.
	objective := func(angle float64) float64 {
		d := desc
		d.EndAngleDeg = angle
		m := profile.Endpoint(d, cfg.Thickness)
		return r2.Norm2(r2.Sub(m.InnerEnd, desired))
	}
	desc.EndAngleDeg = domain.WrapDegrees(SearchAngle(objective, guess))
	desc = desc.Clamp()

	loop := profile.Build(desc, cfg.Thickness)
	achieved := loop.Meta.InnerEnd
	reach := r2.Add(loop.Meta.OuterEnd, r2.Scale(
		profile.WallThickness(cfg.Thickness), geom.Unit2(r2.Sub(desired, loop.Meta.OuterEnd)),
	))

	return Section{
		Station:       st,
		Frame:         frame,
		Desc:          desc,
		FitError:      r2.Norm2(r2.Sub(achieved, reach)),
		Residual:      r3.Norm2(r3.Sub(frame.MapVec(achieved), innerW)),
		PlaneResidual: r2.Norm2(r2.Sub(achieved, desired)),
		Loop:          loop,
	}
}

// SearchAngle minimizes f over angles near guess without derivatives: a
// coarse sweep, shrinking refinement passes around the running best, then a
// golden-section polish of the last bracket.
func SearchAngle(f func(float64) float64, guess float64) float64 {
	best, bestVal := guess, f(guess)
	try := func(a float64) {
		if v := f(a); v < bestVal {
			best, bestVal = a, v
		}
	}

	half := SweepHalfDeg
	for k := range SweepSamples {
		try(guess - half + 2*half*float64(k)/float64(SweepSamples-1))
	}
	step := 2 * half / float64(SweepSamples-1)

	for range RefinePasses {
		half *= RefineShrink
		center := best
		for k := range RefineSamples {
			try(center - half + 2*half*float64(k)/float64(RefineSamples-1))
		}
		step = 2 * half / float64(RefineSamples-1)
	}

	a, v := goldenSection(f, best-step, best+step)
	if v < bestVal {
		return a
	}
	return best
}

func goldenSection(f func(float64) float64, lo, hi float64) (float64, float64) {
	invPhi := (math.Sqrt(5) - 1) / 2
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	f1, f2 := f(x1), f(x2)
	for range polishIterations {
		if hi-lo < polishTolDeg {
			break
		}
		if f1 < f2 {
			hi, x2, f2 = x2, x1, f1
			x1 = hi - invPhi*(hi-lo)
			f1 = f(x1)
		} else {
			lo, x1, f1 = x1, x2, f2
			x2 = lo + invPhi*(hi-lo)
			f2 = f(x2)
		}
	}
	if f1 < f2 {
		return x1, f1
	}
	return x2, f2
}
