package railfit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/forma/internal/engine/path"
	"go.trai.ch/forma/internal/engine/profile"
	"go.trai.ch/forma/internal/engine/railfit"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func defaultCurve(t *testing.T) *path.Curve {
	t.Helper()
	c, err := path.New(domain.DefaultParams().Path)
	require.NoError(t, err)
	return c
}

func testToe(strength float64) domain.ToeParams {
	p := domain.DefaultParams().Toe
	p.Thickness = 8
	p.A = domain.ProfileDescriptor{EndX: 55, EndZ: 50, StartHandle: 20, EndHandle: 20, EndAngleDeg: -135}
	p.B = domain.ProfileDescriptor{EndX: 48, EndZ: 44, StartHandle: 20, EndHandle: 20, EndAngleDeg: -130}
	p.C = domain.ProfileDescriptor{EndX: 42, EndZ: 40, StartHandle: 20, EndHandle: 20, EndAngleDeg: -125}
	p.StrengthA, p.StrengthB, p.StrengthC = strength, strength, strength
	p.RoundShrink = 0
	return p
}

func TestFit_InnerRailConverges(t *testing.T) {
	c := defaultCurve(t)
	for _, strength := range []float64{0.5, 1, 4} {
		for _, side := range []geom.Side{geom.Left, geom.Right} {
			cfg := railfit.ToeConfig(testToe(strength), c.Length(), side)
			sections := railfit.Fit(c, cfg)

			require.Len(t, sections, 2*cfg.StationsPerSpan+1)
			for i, sec := range sections {
				assert.Less(t, sec.FitError, 1e-6, "strength %v side %v station %d", strength, side, i)
				assert.False(t, sec.Loop.Fallback)
			}
		}
	}
}

func TestFit_ResidualIsTheWallReachGap(t *testing.T) {
	c := defaultCurve(t)
	for _, strength := range []float64{0.5, 4} {
		for _, side := range []geom.Side{geom.Left, geom.Right} {
			toe := testToe(strength)
			cfg := railfit.ToeConfig(toe, c.Length(), side)
			rails := railfit.NewRails(c, cfg)

			for i, sec := range railfit.Fit(c, cfg) {
				_, innerW := rails.At(sec.Station.S)
				desired := sec.Frame.Project(innerW)
				gap := r2.Norm(r2.Sub(desired, sec.Loop.Meta.OuterEnd)) - profile.WallThickness(toe.Thickness)
				assert.InDelta(t, gap*gap, sec.PlaneResidual, 1e-9,
					"strength %v side %v station %d", strength, side, i)

				off := r3.Dot(r3.Sub(innerW, sec.Frame.Origin), sec.Frame.Forward)
				assert.InDelta(t, sec.PlaneResidual+off*off, sec.Residual, 1e-9,
					"strength %v side %v station %d", strength, side, i)
			}
		}
	}
}

func TestFit_OuterRailIsExact(t *testing.T) {
	c := defaultCurve(t)
	cfg := railfit.ToeConfig(testToe(1), c.Length(), geom.Left)
	rails := railfit.NewRails(c, cfg)

	for _, sec := range railfit.Fit(c, cfg) {
		outer, _ := rails.At(sec.Station.S)
		want := sec.Frame.Project(outer)
		assert.InDelta(t, want.X, sec.Loop.Meta.OuterEnd.X, 1e-9)
		assert.InDelta(t, want.Y, sec.Loop.Meta.OuterEnd.Y, 1e-9)
	}
}

func TestFit_AnchorsReproduceDescriptors(t *testing.T) {
	c := defaultCurve(t)
	toe := testToe(1)
	cfg := railfit.ToeConfig(toe, c.Length(), geom.Left)
	sections := railfit.Fit(c, cfg)

	first, last := sections[0], sections[len(sections)-1]
	assert.InDelta(t, toe.A.EndX, first.Desc.EndX, 1e-9)
	assert.InDelta(t, toe.A.EndZ, first.Desc.EndZ, 1e-9)
	assert.InDelta(t, toe.A.EndAngleDeg, first.Desc.EndAngleDeg, 1e-6)
	assert.InDelta(t, toe.C.EndX, last.Desc.EndX, 1e-9)
	assert.InDelta(t, toe.C.EndAngleDeg, last.Desc.EndAngleDeg, 1e-6)
	assert.InDelta(t, 0, first.Residual, 1e-9)
}

func TestFit_LeadingEdgeShrink(t *testing.T) {
	c := defaultCurve(t)
	toe := testToe(1)
	toe.RoundShrink = 4
	toe.RoundBand = 12
	cfg := railfit.ToeConfig(toe, c.Length(), geom.Left)
	sections := railfit.Fit(c, cfg)

	assert.InDelta(t, toe.A.EndZ-4, sections[0].Desc.EndZ, 1e-9)
	assert.InDelta(t, toe.C.EndZ, sections[len(sections)-1].Desc.EndZ, 1e-9)
	for _, sec := range sections {
		assert.Less(t, sec.FitError, 1e-6)
	}
}

func TestFit_CoincidentAnchorsDegrade(t *testing.T) {
	c := defaultCurve(t)
	toe := testToe(1)
	toe.LenAB, toe.LenBC = 0, 0
	toe.StrengthA = 0
	sections := railfit.Fit(c, railfit.ToeConfig(toe, c.Length(), geom.Left))

	require.Len(t, sections, 1)
	sec := sections[0]
	for _, v := range []float64{sec.Desc.EndX, sec.Desc.EndZ, sec.Desc.EndAngleDeg, sec.FitError, sec.Residual} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestFit_Deterministic(t *testing.T) {
	c := defaultCurve(t)
	cfg := railfit.ToeConfig(domain.DefaultParams().Toe, c.Length(), geom.Right)
	assert.Equal(t, railfit.Fit(c, cfg), railfit.Fit(c, cfg))
}

func TestToeConfig_AnchorLayout(t *testing.T) {
	toe := domain.DefaultParams().Toe
	cfg := railfit.ToeConfig(toe, 195, geom.Left)
	assert.InDelta(t, 150, cfg.Anchors[0].S, 1e-12)
	assert.InDelta(t, 175, cfg.Anchors[1].S, 1e-12)
	assert.InDelta(t, 195, cfg.Anchors[2].S, 1e-12)

	short := railfit.ToeConfig(toe, 30, geom.Left)
	assert.InDelta(t, 0, short.Anchors[0].S, 1e-12)
	assert.InDelta(t, 25, short.Anchors[1].S, 1e-12)
	assert.InDelta(t, 30, short.Anchors[2].S, 1e-12)
}

func TestStations(t *testing.T) {
	got := railfit.Stations([3]float64{10, 20, 20}, 2)
	assert.Equal(t, []float64{10, 15, 20}, got)
}

func TestSearchAngle(t *testing.T) {
	f := func(a float64) float64 { return (a - 37.3) * (a - 37.3) }
	assert.InDelta(t, 37.3, railfit.SearchAngle(f, 0), 1e-6)
	assert.InDelta(t, -20.25, railfit.SearchAngle(func(a float64) float64 { return math.Abs(a + 20.25) }, -40), 1e-6)
}
