package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/adapters/config"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "forma.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
version: "1"
params:
  path:
    length: 240
  toe:
    b:
      endAngleDeg: -130
  washers:
    enabled: true
`)
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any())

	p, err := config.NewLoader(log).Load(path)
	require.NoError(t, err)

	def := domain.DefaultParams()
	assert.InDelta(t, 240, p.Path.Length, 1e-12)
	assert.InDelta(t, def.Path.PctA, p.Path.PctA, 1e-12)
	assert.InDelta(t, -130, p.Toe.B.EndAngleDeg, 1e-12)
	assert.InDelta(t, def.Toe.B.EndX, p.Toe.B.EndX, 1e-12)
	assert.True(t, p.Washers.Enabled)
}

func TestLoad_LegacyKeys(t *testing.T) {
	path := writeFile(t, `
legacy:
  path_length: 300
  heel_stations: 1000
`)
	p, err := config.NewLoader(nil).Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 300, p.Path.Length, 1e-12)
	assert.Equal(t, 128, p.Heel.Stations)
}

func TestLoad_ClampsOutOfRange(t *testing.T) {
	path := writeFile(t, `
params:
  path:
    length: 5
  toe:
    strengthA: 100
`)
	p, err := config.NewLoader(nil).Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 50, p.Path.Length, 1e-12)
	assert.InDelta(t, 8, p.Toe.StrengthA, 1e-12)
}

func TestLoad_Errors(t *testing.T) {
	loader := config.NewLoader(nil)

	_, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)

	_, err = loader.Load(writeFile(t, "params: [1, 2"))
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)

	_, err = loader.Load(writeFile(t, "params:\n  path:\n    lenght: 3\n"))
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)

	_, err = loader.Load(writeFile(t, "legacy:\n  nope: 1\n"))
	assert.ErrorIs(t, err, domain.ErrConfigParseFailed)
	assert.ErrorContains(t, err, domain.ErrUnknownParam.Error())
}

func TestLoad_EmptyPathAndEmptyFile(t *testing.T) {
	loader := config.NewLoader(nil)

	p, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultParams(), p)

	p, err = loader.Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultParams(), p)
}

func TestMarshal_RoundTrip(t *testing.T) {
	p := domain.DefaultParams()
	p.Holes.SlotLength = 6

	data, err := config.Marshal(p)
	require.NoError(t, err)

	got, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
