package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/forma/internal/adapters/fingerprint"
	"go.trai.ch/forma/internal/adapters/logger"
	"go.trai.ch/forma/internal/adapters/telemetry"
	"go.trai.ch/forma/internal/app"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func components(t *testing.T, loader *mocks.MockParamsLoader, logs io.Writer) ComponentProvider {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logger.NewWithWriter(logs, slog.LevelInfo)
	a := app.New(mocks.NewMockKernelFactory(ctrl), fingerprint.New(), telemetry.NewNoop(), log)
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: log, Loader: loader, Telemetry: telemetry.NewNoop()}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	stdout := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, nil, stdout, io.Discard,
		components(t, mocks.NewMockParamsLoader(ctrl), io.Discard))
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "forma version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, nil, io.Discard, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that a failing command is logged once and exits 1.
func TestRun_ExecutionError(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockParamsLoader(ctrl)
	loader.EXPECT().Load("missing.yaml").Return(domain.Params{}, domain.ErrConfigReadFailed)

	logs := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build", "missing.yaml"}, nil, io.Discard, io.Discard,
		components(t, loader, logs))

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, logs.String(), domain.ErrConfigReadFailed.Error())
}

// TestRun_RequestFailureNotLoggedTwice verifies that errors already answered by the app are not repeated.
func TestRun_RequestFailureNotLoggedTwice(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockParamsLoader(ctrl)
	loader.EXPECT().Load("").Return(domain.DefaultParams(), nil)

	logs := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"export", "--parts", ""}, nil, io.Discard, io.Discard,
		components(t, loader, logs))

	assert.Equal(t, 1, exitCode)
	assert.Equal(t, 1, bytes.Count(logs.Bytes(), []byte(domain.ErrNothingEnabled.Error())))
}
