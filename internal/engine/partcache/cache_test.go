package partcache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/core/ports/mocks"
	"go.trai.ch/forma/internal/engine/partcache"
	"go.uber.org/mock/gomock"
)

type fakeSolid string

func (s fakeSolid) Handle() string { return string(s) }

func fp(digest string) domain.Fingerprint {
	return domain.Fingerprint{Part: domain.PartBase, Key: "k=" + digest, Digest: digest}
}

func countingBuild(n *int) partcache.BuildFunc {
	return func(context.Context) (ports.Solid, error) {
		*n++
		return fakeSolid(fmt.Sprintf("solid-%d", *n)), nil
	}
}

func newCache(t *testing.T) *partcache.Cache {
	t.Helper()
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockFingerprinter(ctrl)
	keys.EXPECT().MeshKey(gomock.Any(), gomock.Any()).DoAndReturn(
		func(f domain.Fingerprint, tol float64) string {
			return fmt.Sprintf("%s@%.3f", f.Digest, tol)
		}).AnyTimes()
	return partcache.New(keys)
}

func TestGetOrBuild_HitOnMatchingFingerprint(t *testing.T) {
	c := newCache(t)
	var builds int
	ctx := context.Background()

	e1, st, err := c.GetOrBuild(ctx, domain.PartBase, fp("a"), domain.PartFlags{Enabled: true}, countingBuild(&builds))
	require.NoError(t, err)
	assert.Equal(t, domain.PartStatusBuilt, st)

	e2, st, err := c.GetOrBuild(ctx, domain.PartBase, fp("a"), domain.PartFlags{Enabled: true}, countingBuild(&builds))
	require.NoError(t, err)
	assert.Equal(t, domain.PartStatusCached, st)
	assert.Equal(t, e1.Solid, e2.Solid)
	assert.Equal(t, 1, builds)

	_, st, err = c.GetOrBuild(ctx, domain.PartBase, fp("b"), domain.PartFlags{Enabled: true}, countingBuild(&builds))
	require.NoError(t, err)
	assert.Equal(t, domain.PartStatusBuilt, st)
	assert.Equal(t, 2, builds)

	assert.Equal(t, partcache.Stats{Hits: 1, Builds: 2}, c.Stats())
}

func TestGetOrBuild_FreezeAndForce(t *testing.T) {
	c := newCache(t)
	var builds int
	ctx := context.Background()

	_, _, err := c.GetOrBuild(ctx, domain.PartToe, fp("a"), domain.PartFlags{}, countingBuild(&builds))
	require.NoError(t, err)

	e, st, err := c.GetOrBuild(ctx, domain.PartToe, fp("changed"), domain.PartFlags{Freeze: true}, countingBuild(&builds))
	require.NoError(t, err)
	assert.Equal(t, domain.PartStatusFrozen, st)
	assert.Equal(t, "a", e.Fingerprint.Digest)
	assert.Equal(t, 1, builds)

	_, st, err = c.GetOrBuild(ctx, domain.PartToe, fp("a"), domain.PartFlags{Force: true, Freeze: true}, countingBuild(&builds))
	require.NoError(t, err)
	assert.Equal(t, domain.PartStatusBuilt, st)
	assert.Equal(t, 2, builds)
}

func TestGetOrBuild_FreezeWithoutEntryBuilds(t *testing.T) {
	c := newCache(t)
	var builds int

	_, st, err := c.GetOrBuild(context.Background(), domain.PartHeel, fp("a"), domain.PartFlags{Freeze: true}, countingBuild(&builds))
	require.NoError(t, err)
	assert.Equal(t, domain.PartStatusBuilt, st)
	assert.Equal(t, 1, builds)
}

func TestGetOrBuild_FailureKeepsPreviousEntry(t *testing.T) {
	c := newCache(t)
	var builds int
	ctx := context.Background()

	_, _, err := c.GetOrBuild(ctx, domain.PartBase, fp("a"), domain.PartFlags{}, countingBuild(&builds))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, st, err := c.GetOrBuild(ctx, domain.PartBase, fp("b"), domain.PartFlags{}, func(context.Context) (ports.Solid, error) {
		return nil, boom
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to build part")
	assert.Equal(t, domain.PartStatusFailed, st)

	e, ok := c.Lookup(domain.PartBase)
	require.True(t, ok)
	assert.Equal(t, "a", e.Fingerprint.Digest)
}

func TestMesh_KeyedByFingerprintAndTolerance(t *testing.T) {
	c := newCache(t)
	var builds, meshes int
	ctx := context.Background()
	tri := func(_ context.Context, s ports.Solid, tol float64) (*domain.Mesh, error) {
		meshes++
		return &domain.Mesh{Positions: []float32{float32(tol)}}, nil
	}

	_, err := c.Mesh(ctx, domain.PartBase, 0.1, tri)
	assert.ErrorContains(t, err, domain.ErrPartNotBuilt.Error())

	_, _, err = c.GetOrBuild(ctx, domain.PartBase, fp("a"), domain.PartFlags{}, countingBuild(&builds))
	require.NoError(t, err)

	m1, err := c.Mesh(ctx, domain.PartBase, 0.1, tri)
	require.NoError(t, err)
	m2, err := c.Mesh(ctx, domain.PartBase, 0.10004, tri)
	require.NoError(t, err)
	assert.Same(t, m1, m2)
	assert.Equal(t, 1, meshes)

	_, err = c.Mesh(ctx, domain.PartBase, 0.001, tri)
	require.NoError(t, err)
	assert.Equal(t, 2, meshes)

	_, _, err = c.GetOrBuild(ctx, domain.PartBase, fp("b"), domain.PartFlags{}, countingBuild(&builds))
	require.NoError(t, err)
	m3, err := c.Mesh(ctx, domain.PartBase, 0.05, tri)
	require.NoError(t, err)
	assert.Equal(t, 3, meshes)
	assert.InDelta(t, 0.05, m3.Positions[0], 1e-6)

	assert.Equal(t, 1, c.Stats().MeshHits)
}

func TestInvalidateAndSnapshot(t *testing.T) {
	c := newCache(t)
	var builds int
	ctx := context.Background()

	for _, p := range domain.AllParts() {
		_, _, err := c.GetOrBuild(ctx, p, fp(string(p)), domain.PartFlags{}, countingBuild(&builds))
		require.NoError(t, err)
	}
	assert.Len(t, c.Snapshot(), 3)

	c.Invalidate(domain.PartToe)
	snap := c.Snapshot()
	assert.Len(t, snap, 2)
	assert.NotContains(t, snap, domain.PartToe)

	_, st, err := c.GetOrBuild(ctx, domain.PartToe, fp("toe"), domain.PartFlags{}, countingBuild(&builds))
	require.NoError(t, err)
	assert.Equal(t, domain.PartStatusBuilt, st)
}
