// Package path samples the 2-D reference path the parts are swept along.
package path

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/zerr"
)

const (
	// SamplesPerSegment is the fixed sampling density of each spline segment.
	SamplesPerSegment = 80
	// ControlEps keeps the derived control heights strictly ordered.
	ControlEps = 1e-3

	dedupeEps  = 1e-9
	minSamples = 4
)

// Curve is a densely sampled path.
type Curve struct {
	Controls [4]r2.Vec
	Samples  []geom.Station
	// ControlIndex maps each control point to its sample index.
	ControlIndex [4]int
}

// Controls derives the four control points from path parameters.
func Controls(p domain.PathParams) [4]r2.Vec {
	length := domain.Clamp(p.Length, 50, 2000)
	pctA := domain.Clamp(p.PctA, 1, 100)
	pctB := domain.Clamp(p.PctB, 1, 100)

	p3y := domain.Clamp(length*pctA/100, 1, length-ControlEps)
	p2y := domain.Clamp(p3y*pctB/100, ControlEps, p3y-ControlEps)

	return [4]r2.Vec{
		{X: 0, Y: 0},
		{X: domain.Clamp(p.OffsetB, -1000, 1000), Y: p2y},
		{X: domain.Clamp(p.OffsetA, -1000, 1000), Y: p3y},
		{X: domain.Clamp(p.OffsetTip, -1000, 1000), Y: length},
	}
}

// New samples the path described by p.
func New(p domain.PathParams) (*Curve, error) {
	return FromControls(Controls(p))
}

// FromControls samples a padded Catmull-Rom spline through ctrl.
// The first and last control points are duplicated as phantom neighbours.
func FromControls(ctrl [4]r2.Vec) (*Curve, error) {
	q := [6]r2.Vec{ctrl[0], ctrl[0], ctrl[1], ctrl[2], ctrl[3], ctrl[3]}

	c := &Curve{Controls: ctrl}
	samples := make([]geom.Station, 0, 3*SamplesPerSegment+1)
	for seg := range 3 {
		p0, p1, p2, p3 := q[seg], q[seg+1], q[seg+2], q[seg+3]
		start := 0
		if seg > 0 {
			start = 1
		}
		for i := start; i <= SamplesPerSegment; i++ {
			t := float64(i) / SamplesPerSegment
			pos := catmullRom(p0, p1, p2, p3, t)
			tan := geom.Unit2(catmullRomDeriv(p0, p1, p2, p3, t))
			if tan == (r2.Vec{}) {
				tan = geom.Unit2(r2.Sub(p2, p1))
			}

			if n := len(samples); n > 0 && geom.Near2(pos, samples[n-1].Pos, dedupeEps) {
				if i == SamplesPerSegment {
					c.ControlIndex[seg+1] = n - 1
				}
				continue
			}
			samples = append(samples, geom.Station{Pos: pos, Tan: tan})
			if i == SamplesPerSegment {
				c.ControlIndex[seg+1] = len(samples) - 1
			}
		}
	}

	if len(samples) < minSamples {
		return nil, zerr.With(domain.ErrDegeneratePath, "samples", len(samples))
	}

	for i := 1; i < len(samples); i++ {
		samples[i].S = samples[i-1].S + geom.Dist2(samples[i-1].Pos, samples[i].Pos)
	}
	// Chord fallback for samples whose analytic tangent vanished.
	for i := range samples {
		if samples[i].Tan != (r2.Vec{}) {
			continue
		}
		j, k := max(i-1, 0), min(i+1, len(samples)-1)
		samples[i].Tan = geom.Unit2(r2.Sub(samples[k].Pos, samples[j].Pos))
	}

	c.Samples = samples
	return c, nil
}

func catmullRom(p0, p1, p2, p3 r2.Vec, t float64) r2.Vec {
	t2, t3 := t*t, t*t*t
	a := r2.Scale(2, p1)
	b := r2.Scale(t, r2.Sub(p2, p0))
	c := r2.Scale(t2, r2.Add(r2.Sub(r2.Scale(2, p0), r2.Scale(5, p1)), r2.Sub(r2.Scale(4, p2), p3)))
	d := r2.Scale(t3, r2.Add(r2.Sub(r2.Scale(3, p1), p0), r2.Sub(p3, r2.Scale(3, p2))))
	return r2.Scale(0.5, r2.Add(r2.Add(a, b), r2.Add(c, d)))
}

func catmullRomDeriv(p0, p1, p2, p3 r2.Vec, t float64) r2.Vec {
	b := r2.Sub(p2, p0)
	c := r2.Scale(2*t, r2.Add(r2.Sub(r2.Scale(2, p0), r2.Scale(5, p1)), r2.Sub(r2.Scale(4, p2), p3)))
	d := r2.Scale(3*t*t, r2.Add(r2.Sub(r2.Scale(3, p1), p0), r2.Sub(p3, r2.Scale(3, p2))))
	return r2.Scale(0.5, r2.Add(b, r2.Add(c, d)))
}

// Len returns the number of samples.
func (c *Curve) Len() int {
	return len(c.Samples)
}

// Length returns the total arc length.
func (c *Curve) Length() float64 {
	return c.Samples[len(c.Samples)-1].S
}

// IndexAtLength returns the first sample index whose cumulative length is at
// least target. Targets past the end resolve to the last sample.
func (c *Curve) IndexAtLength(target float64) int {
	for i, s := range c.Samples {
		if s.S >= target {
			return i
		}
	}
	return len(c.Samples) - 1
}

// EvalAtLength resolves target within the sample range [i0, i1] by linear
// interpolation of position and tangent. The tangent is renormalized.
// Targets outside the range resolve to its ends.
func (c *Curve) EvalAtLength(i0, i1 int, target float64) geom.Station {
	last := len(c.Samples) - 1
	i0 = min(max(i0, 0), last)
	i1 = min(max(i1, i0), last)

	if i0 == i1 || target <= c.Samples[i0].S {
		return c.Samples[i0]
	}
	if target >= c.Samples[i1].S {
		return c.Samples[i1]
	}

	j := i0
	for j+1 < i1 && c.Samples[j+1].S < target {
		j++
	}
	a, b := c.Samples[j], c.Samples[j+1]
	span := b.S - a.S
	t := 0.0
	if span > 0 {
		t = (target - a.S) / span
	}
	tan := geom.Unit2(geom.Lerp2(a.Tan, b.Tan, t))
	if tan == (r2.Vec{}) {
		tan = a.Tan
	}
	return geom.Station{
		Pos: geom.Lerp2(a.Pos, b.Pos, t),
		Tan: tan,
		S:   target,
	}
}

// StationAtLength resolves target anywhere on the path.
func (c *Curve) StationAtLength(target float64) geom.Station {
	if math.IsNaN(target) {
		target = 0
	}
	return c.EvalAtLength(0, len(c.Samples)-1, target)
}

// StationAtIndex returns sample i, clamped to the valid range.
func (c *Curve) StationAtIndex(i int) geom.Station {
	return c.Samples[min(max(i, 0), len(c.Samples)-1)]
}

// ControlStation returns the station at control point k.
func (c *Curve) ControlStation(k int) geom.Station {
	return c.StationAtIndex(c.ControlIndex[min(max(k, 0), 3)])
}
