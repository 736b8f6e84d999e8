package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/core/domain"
)

func TestParams_ClampSaturates(t *testing.T) {
	p := domain.DefaultParams()
	p.Path.Length = 10
	p.Path.PctA = 500
	p.Toe.StrengthA = 0
	p.Toe.A.EndAngleDeg = 190
	p.Heel.Stations = 1000
	p.Holes.Diameter = math.NaN()

	got := p.Clamp()

	assert.InDelta(t, 50, got.Path.Length, 1e-12)
	assert.InDelta(t, 100, got.Path.PctA, 1e-12)
	assert.InDelta(t, 0.2, got.Toe.StrengthA, 1e-12)
	assert.InDelta(t, -170, got.Toe.A.EndAngleDeg, 1e-9)
	assert.Equal(t, 128, got.Heel.Stations)
	assert.InDelta(t, 0.5, got.Holes.Diameter, 1e-12)
}

func TestParams_DefaultsAreInRange(t *testing.T) {
	p := domain.DefaultParams()
	assert.Equal(t, p, p.Clamp())
}

func TestParams_ApplyLegacy(t *testing.T) {
	p := domain.DefaultParams()
	err := p.ApplyLegacy(map[string]float64{
		"path_length":      250,
		"toe_b_end_x":      41,
		"washers_enabled":  1,
		"holes_pair_count": 3.4,
	})
	require.NoError(t, err)

	assert.InDelta(t, 250, p.Path.Length, 1e-12)
	assert.InDelta(t, 41, p.Toe.B.EndX, 1e-12)
	assert.True(t, p.Washers.Enabled)
	assert.Equal(t, 3, p.Holes.PairCount)
}

func TestParams_ApplyLegacyUnknownKey(t *testing.T) {
	p := domain.DefaultParams()
	err := p.ApplyLegacy(map[string]float64{"not_a_key": 1})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownParam.Error())
}

func TestParams_Value(t *testing.T) {
	p := domain.DefaultParams()
	v, err := p.Value("heel_profile_end_z")
	require.NoError(t, err)
	assert.InDelta(t, p.Heel.Profile.EndZ, v, 1e-12)

	_, err = p.Value("bogus")
	assert.Error(t, err)
}

func TestPartKeys(t *testing.T) {
	base, err := domain.PartKeys(domain.PartBase)
	require.NoError(t, err)
	toe, err := domain.PartKeys(domain.PartToe)
	require.NoError(t, err)

	assert.Contains(t, base, "path_length")
	assert.Contains(t, base, "holes_diameter")
	assert.NotContains(t, base, "toe_len_ab")
	assert.Contains(t, toe, "toe_c_end_angle")
	assert.NotContains(t, toe, "heel_height")

	_, err = domain.PartKeys("sole")
	assert.ErrorContains(t, err, domain.ErrUnknownPart.Error())
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{190, -170},
		{-190, 170},
		{540, -180},
		{725, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, domain.WrapDegrees(tt.in), 1e-9, "in=%v", tt.in)
	}
}

func TestQuantizeTolerance(t *testing.T) {
	assert.InDelta(t, 0.05, domain.QuantizeTolerance(0.001), 1e-12)
	assert.InDelta(t, 10, domain.QuantizeTolerance(42), 1e-12)
	assert.InDelta(t, 0.123, domain.QuantizeTolerance(0.12345), 1e-12)
	assert.InDelta(t, 0.05, domain.QuantizeTolerance(math.NaN()), 1e-12)
}

func TestPartSet_Enabled(t *testing.T) {
	set := domain.PartSet{
		domain.PartHeel: {Enabled: true},
		domain.PartBase: {Enabled: true},
		domain.PartToe:  {Enabled: false},
	}
	assert.Equal(t, []domain.PartName{domain.PartBase, domain.PartHeel}, set.Enabled())
	assert.Len(t, domain.AllEnabled().Enabled(), 3)
}
