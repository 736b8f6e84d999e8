package parts_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/core/ports/mocks"
	"go.trai.ch/forma/internal/engine/geom"
	"go.trai.ch/forma/internal/engine/parts"
	"go.trai.ch/forma/internal/engine/path"
	"go.uber.org/mock/gomock"
)

type stubSolid string

func (s stubSolid) Handle() string { return string(s) }

// permissiveKernel accepts every construction call and records fillet radii.
func permissiveKernel(ctrl *gomock.Controller, caps domain.Capabilities) *mocks.MockKernel {
	k := mocks.NewMockKernel(ctrl)
	sk := mocks.NewMockSketch(ctrl)
	k.EXPECT().Capabilities().Return(caps).AnyTimes()
	k.EXPECT().Sketch(gomock.Any(), gomock.Any(), gomock.Any()).Return(sk, nil).AnyTimes()
	k.EXPECT().Extrude(gomock.Any(), sk, gomock.Any()).Return(stubSolid("prism"), nil).AnyTimes()
	k.EXPECT().Loft(gomock.Any(), gomock.Any()).Return(stubSolid("loft"), nil).AnyTimes()
	k.EXPECT().Fuse(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubSolid("fused"), nil).AnyTimes()
	k.EXPECT().Cut(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubSolid("cut"), nil).AnyTimes()
	return k
}

func TestBase_FilletRetriesSmallerRadii(t *testing.T) {
	ctrl := gomock.NewController(t)
	k := permissiveKernel(ctrl, domain.Capabilities{Name: "test", Fillet: true})
	logger := mocks.NewMockLogger(ctrl)

	var radii []float64
	k.EXPECT().Fillet(gomock.Any(), gomock.Any(), domain.EdgesTopOutline, gomock.Any()).DoAndReturn(
		func(_ context.Context, s ports.Solid, _ domain.EdgeSelection, r float64) (ports.Solid, error) {
			radii = append(radii, r)
			if len(radii) < 3 {
				return nil, domain.ErrFilletFailed
			}
			return stubSolid("rounded"), nil
		}).Times(3)
	logger.EXPECT().Warn(gomock.Any()).Times(2)

	p := domain.DefaultParams()
	p.Base.FilletRadius = 2
	_, err := parts.NewBuilder(k, logger).Build(context.Background(), domain.PartBase, p)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 0.5}, radii)
}

func TestBase_FilletSkippedAfterSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	k := permissiveKernel(ctrl, domain.Capabilities{Name: "test", Fillet: true})
	logger := mocks.NewMockLogger(ctrl)

	k.EXPECT().Fillet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrFilletFailed).Times(len(parts.FilletSequence))
	logger.EXPECT().Warn(gomock.Any()).Times(len(parts.FilletSequence) + 1)

	solid, err := parts.NewBuilder(k, logger).Base(context.Background(), domain.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, "cut", solid.Handle())
}

func TestBase_CutsEveryHole(t *testing.T) {
	ctrl := gomock.NewController(t)
	k := mocks.NewMockKernel(ctrl)
	sk := mocks.NewMockSketch(ctrl)
	k.EXPECT().Capabilities().Return(domain.Capabilities{}).AnyTimes()
	k.EXPECT().Sketch(gomock.Any(), gomock.Any(), gomock.Any()).Return(sk, nil).AnyTimes()
	k.EXPECT().Extrude(gomock.Any(), sk, gomock.Any()).Return(stubSolid("prism"), nil).AnyTimes()
	k.EXPECT().Fuse(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	p := domain.DefaultParams()
	p.Holes.PairCount = 3
	k.EXPECT().Cut(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubSolid("cut"), nil).Times(6)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := parts.NewBuilder(k, logger).Base(context.Background(), p)
	require.NoError(t, err)
}

func TestBase_WashersFusedBeneath(t *testing.T) {
	ctrl := gomock.NewController(t)
	k := mocks.NewMockKernel(ctrl)
	k.EXPECT().Capabilities().Return(domain.Capabilities{Fillet: true}).AnyTimes()
	k.EXPECT().Extrude(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubSolid("prism"), nil).AnyTimes()
	k.EXPECT().Fillet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(stubSolid("rounded"), nil)
	k.EXPECT().Fuse(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubSolid("fused"), nil).Times(4)
	k.EXPECT().Cut(gomock.Any(), gomock.Any(), gomock.Any()).Return(stubSolid("cut"), nil).Times(4)

	var planesZ []float64
	k.EXPECT().Sketch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, pl domain.Plane, _ domain.Contour) (ports.Sketch, error) {
			planesZ = append(planesZ, pl.Origin.Z)
			return mocks.NewMockSketch(ctrl), nil
		}).AnyTimes()

	p := domain.DefaultParams()
	p.Washers.Enabled = true
	_, err := parts.NewBuilder(k, nil).Base(context.Background(), p)
	require.NoError(t, err)

	// Outline, four pads, four hole tools below the pads.
	require.Len(t, planesZ, 9)
	assert.InDelta(t, -(1 + p.Washers.Thickness), planesZ[len(planesZ)-1], 1e-12)
}

func TestToe_FusesBothSides(t *testing.T) {
	ctrl := gomock.NewController(t)
	k := mocks.NewMockKernel(ctrl)
	sk := mocks.NewMockSketch(ctrl)
	k.EXPECT().Sketch(gomock.Any(), gomock.Any(), gomock.Any()).Return(sk, nil).AnyTimes()
	k.EXPECT().Loft(gomock.Any(), gomock.Any()).Return(stubSolid("half"), nil).Times(2)
	k.EXPECT().Fuse(gomock.Any(), stubSolid("half"), stubSolid("half")).Return(stubSolid("toe"), nil)

	solid, err := parts.NewBuilder(k, nil).Build(context.Background(), domain.PartToe, domain.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, "toe", solid.Handle())
}

func TestHeel_LoftFailureIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	k := mocks.NewMockKernel(ctrl)
	sk := mocks.NewMockSketch(ctrl)
	k.EXPECT().Sketch(gomock.Any(), gomock.Any(), gomock.Any()).Return(sk, nil).AnyTimes()
	k.EXPECT().Loft(gomock.Any(), gomock.Any()).Return(nil, errors.New("kernel down"))

	_, err := parts.NewBuilder(k, nil).Heel(context.Background(), domain.DefaultParams())
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to loft heel")
}

func TestBuild_UnknownPart(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := parts.NewBuilder(mocks.NewMockKernel(ctrl), nil).Build(context.Background(), "sole", domain.DefaultParams())
	assert.ErrorContains(t, err, domain.ErrUnknownPart.Error())
}

func TestHeelProfiles_Stations(t *testing.T) {
	p := domain.DefaultParams()
	c, err := path.New(p.Path)
	require.NoError(t, err)

	profiles := parts.HeelProfiles(c, p.Heel, geom.Left)
	require.Len(t, profiles, p.Heel.Stations)
	assert.InDelta(t, 0, profiles[0].Frame.Origin.Y, 1e-9)

	last := c.StationAtLength(p.Heel.Length).Pos
	assert.InDelta(t, last.X, profiles[len(profiles)-1].Frame.Origin.X, 1e-9)
	assert.InDelta(t, last.Y, profiles[len(profiles)-1].Frame.Origin.Y, 1e-9)

	for _, pr := range profiles {
		for _, pt := range pr.Loop.Outer {
			assert.LessOrEqual(t, pt.Y, p.Heel.Height+1e-9)
		}
	}
}
