package profile

import (
	"gonum.org/v1/gonum/spatial/r2"
	"go.trai.ch/forma/internal/engine/geom"
)

// clipAt truncates pts at its first upward crossing of y = h.
func clipAt(pts []r2.Vec, h float64) ([]r2.Vec, bool) {
	if h <= 0 {
		return nil, false
	}
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		if a.Y < h && b.Y >= h {
			f := (h - a.Y) / (b.Y - a.Y)
			out := make([]r2.Vec, 0, i+2)
			out = append(out, pts[:i+1]...)
			out = append(out, r2.Vec{X: geom.Lerp(a.X, b.X, f), Y: h})
			return out, true
		}
	}
	return nil, false
}

func endNormal(pts []r2.Vec) r2.Vec {
	n := len(pts)
	return geom.LeftNormal(geom.Unit2(r2.Sub(pts[n-1], pts[n-2])))
}

// rebuild resamples clipped boundaries back to the loop's point count.
func rebuild(l Loop, outer, inner []r2.Vec, normal r2.Vec) Loop {
	n := len(l.Outer)
	outer = geom.Resample(outer, n)
	inner = geom.Resample(inner, n)
	return newLoop(outer, inner, l.Sign, Meta{
		OuterEnd:  outer[n-1],
		InnerEnd:  inner[n-1],
		EndNormal: normal,
	})
}

// ClipHorizontal truncates both boundaries at height h.
// A loop whose outer boundary stays below h is returned unchanged.
func ClipHorizontal(l Loop, h float64) Loop {
	if l.Fallback {
		return l
	}
	outer, ok := clipAt(l.Outer, h)
	if !ok {
		return l
	}
	inner, ok := clipAt(l.Inner, h)
	if !ok {
		inner = l.Inner
	}
	return rebuild(l, outer, inner, endNormal(outer))
}

// CapNormal clips the outer boundary at height h and ends the inner boundary
// where the inward normal ray from the clipped outer end first meets it.
// Without a hit it falls back to ClipHorizontal.
func CapNormal(l Loop, h float64) Loop {
	if l.Fallback {
		return l
	}
	outer, ok := clipAt(l.Outer, h)
	if !ok {
		return l
	}
	end := outer[len(outer)-1]
	normal := endNormal(outer)
	dir := r2.Scale(l.Sign, normal)
	hit, ok := geom.RayPolylineHit(end, dir, l.Inner, geom.Eps)
	if !ok {
		return ClipHorizontal(l, h)
	}

	inner := make([]r2.Vec, 0, hit.Segment+2)
	inner = append(inner, l.Inner[:hit.Segment+1]...)
	inner = append(inner, hit.Point)
	return rebuild(l, outer, inner, normal)
}
