package app_test

import (
	"context"
	"errors"
	"iter"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/app"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func channelSeq(ch <-chan ports.WatchEvent) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range ch {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestWatch_RebuildsAfterDebouncedEdits(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, cancel := context.WithCancel(t.Context())

		events := make(chan ports.WatchEvent)
		files := mocks.NewMockWatcher(ctrl)
		files.EXPECT().Start(gomock.Any(), "params.yaml").Return(nil)
		files.EXPECT().Events().Return(channelSeq(events))
		files.EXPECT().Stop().Return(nil)

		loader := mocks.NewMockParamsLoader(ctrl)
		loader.EXPECT().Load("params.yaml").Return(domain.DefaultParams(), nil).Times(2)

		// Nothing enabled keeps the kernel out of the loop.
		a := newApp(mocks.NewMockKernelFactory(ctrl))
		var out responses
		done := make(chan error, 1)
		go func() {
			done <- a.Watch(ctx, files, loader, app.WatchOptions{
				ParamsPath: "params.yaml",
				Parts:      domain.PartSet{},
				Debounce:   100 * time.Millisecond,
			}, out.emit)
		}()

		synctest.Wait()
		require.Len(t, out.terminal(), 1, "initial build")

		for range 3 {
			events <- ports.WatchEvent{Path: "/work/params.yaml", Operation: ports.OpWrite}
			time.Sleep(20 * time.Millisecond)
		}
		time.Sleep(200 * time.Millisecond)
		synctest.Wait()

		terminal := out.terminal()
		require.Len(t, terminal, 2, "one rebuild per burst")
		for _, resp := range terminal {
			assert.Equal(t, domain.ResponseMesh, resp.Type)
		}
		assert.NotEqual(t, terminal[0].ID, terminal[1].ID)

		cancel()
		close(events)
		require.NoError(t, <-done)
	})
}

func TestWatch_LoadErrorIsReported(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ctx, cancel := context.WithCancel(t.Context())

		events := make(chan ports.WatchEvent)
		files := mocks.NewMockWatcher(ctrl)
		files.EXPECT().Start(gomock.Any(), "bad.yaml").Return(nil)
		files.EXPECT().Events().Return(channelSeq(events))
		files.EXPECT().Stop().Return(nil)

		loader := mocks.NewMockParamsLoader(ctrl)
		loader.EXPECT().Load("bad.yaml").Return(domain.Params{}, domain.ErrConfigParseFailed)

		a := newApp(mocks.NewMockKernelFactory(ctrl))
		var out responses
		done := make(chan error, 1)
		go func() {
			done <- a.Watch(ctx, files, loader, app.WatchOptions{ParamsPath: "bad.yaml"}, out.emit)
		}()

		synctest.Wait()
		resp := out.last(t)
		assert.Equal(t, domain.ResponseError, resp.Type)
		assert.Contains(t, resp.Text, domain.ErrConfigParseFailed.Error())

		cancel()
		close(events)
		require.NoError(t, <-done)
	})
}

func TestWatch_StartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mocks.NewMockWatcher(ctrl)
	files.EXPECT().Start(gomock.Any(), "gone.yaml").Return(errors.New("no such directory"))

	a := newApp(mocks.NewMockKernelFactory(ctrl))
	err := a.Watch(t.Context(), files, mocks.NewMockParamsLoader(ctrl), app.WatchOptions{ParamsPath: "gone.yaml"}, func(domain.Response) {})
	assert.ErrorContains(t, err, "no such directory")
}
