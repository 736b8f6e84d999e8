package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_Levels(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, slog.LevelInfo)

	lg.Info("building toe")
	lg.Warn("fillet retry")
	lg.Error(errors.New("kernel down"))

	assert.Equal(t, "building toe\n! fillet retry\n✗ Error: kernel down\n", buf.String())
}

func TestLogger_FiltersBelowLevel(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, slog.LevelWarn)

	lg.Info("hidden")
	lg.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_ErrorChain(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, slog.LevelInfo)

	err := zerr.With(zerr.Wrap(zerr.New("kernel operation failed"), "failed to build part"), "part", "toe")
	lg.Error(err)

	assert.Contains(t, buf.String(), "✗ Error: failed to build part\n       part: toe\n\n  Caused by:\n    → kernel operation failed")
}

func TestLogger_JSONMode(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf, slog.LevelInfo)
	lg.SetJSON(true)

	lg.Error(errors.New("boom"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "boom", rec["error"])
}

func TestLogger_SetOutput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var first, second bytes.Buffer
	lg := logger.NewWithWriter(&first, slog.LevelInfo)

	lg.Info("one")
	lg.SetOutput(&second)
	lg.Info("two")

	assert.Equal(t, "one\n", first.String())
	assert.Equal(t, "two\n", second.String())
}

func TestLogger_NilErrorIgnored(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter(&buf, slog.LevelInfo).Error(nil)
	assert.Empty(t, buf.String())
}
