package fingerprint_test

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/adapters/fingerprint"
	"go.trai.ch/forma/internal/core/domain"
)

func TestFingerprint_Deterministic(t *testing.T) {
	f := fingerprint.New()
	p := domain.DefaultParams()

	a, err := f.Fingerprint(domain.PartBase, p)
	require.NoError(t, err)
	b, err := f.Fingerprint(domain.PartBase, p)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Len(t, a.Digest, 16)
	assert.True(t, strings.HasPrefix(a.Key, "forma/v1|base|"))
}

func TestFingerprint_OnlyRelevantKeys(t *testing.T) {
	f := fingerprint.New()
	p := domain.DefaultParams()
	before, err := f.Fingerprint(domain.PartBase, p)
	require.NoError(t, err)

	p.Heel.Height += 5
	after, err := f.Fingerprint(domain.PartBase, p)
	require.NoError(t, err)
	assert.True(t, before.Equal(after), "heel height must not affect the base")

	p.Holes.Diameter += 1
	changed, err := f.Fingerprint(domain.PartBase, p)
	require.NoError(t, err)
	assert.False(t, before.Equal(changed))
}

func TestFingerprint_ClampsBeforeEncoding(t *testing.T) {
	f := fingerprint.New()
	p := domain.DefaultParams()
	p.Path.Length = 1e9

	q := domain.DefaultParams()
	q.Path.Length = 2000

	a, err := f.Fingerprint(domain.PartToe, p)
	require.NoError(t, err)
	b, err := f.Fingerprint(domain.PartToe, q)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestFingerprint_UnknownPart(t *testing.T) {
	_, err := fingerprint.New().Fingerprint("sole", domain.DefaultParams())
	assert.ErrorContains(t, err, domain.ErrUnknownPart.Error())
}

func TestFingerprint_DefaultKeys(t *testing.T) {
	f := fingerprint.New()
	for _, part := range domain.AllParts() {
		t.Run(string(part), func(t *testing.T) {
			fp, err := f.Fingerprint(part, domain.DefaultParams())
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, "defaults_"+string(part), []byte(strings.ReplaceAll(fp.Key, ";", "\n")+"\n"))
		})
	}
}

func TestMeshKey(t *testing.T) {
	f := fingerprint.New()
	fp := domain.Fingerprint{Part: domain.PartBase, Digest: "00000000deadbeef"}

	assert.Equal(t, "00000000deadbeef@0.100", f.MeshKey(fp, 0.10004))
	assert.Equal(t, "00000000deadbeef@0.050", f.MeshKey(fp, 0.001))
	assert.Equal(t, f.MeshKey(fp, 0.1), f.MeshKey(fp, 0.1004))
	assert.NotEqual(t, f.MeshKey(fp, 0.1), f.MeshKey(fp, 0.2))
}
