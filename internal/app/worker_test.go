package app_test

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/app"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// scriptedHandler answers every request after a delay and panics on "boom".
type scriptedHandler struct {
	delay time.Duration
	seen  []string
}

func (h *scriptedHandler) Handle(_ context.Context, req domain.Request, emit app.Emitter) {
	h.seen = append(h.seen, req.ID)
	if req.ID == "boom" {
		panic("kernel exploded")
	}
	time.Sleep(h.delay)
	emit(domain.Response{ID: req.ID, Type: domain.ResponsePong})
}

func TestWorker_RecoversFromPanic(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		log := mocks.NewMockLogger(ctrl)
		log.EXPECT().Error(gomock.Any()).Times(1)

		q := app.NewQueue()
		h := &scriptedHandler{}
		var out responses
		require.NoError(t, q.Push(job("boom", domain.RequestPing, &out)))
		require.NoError(t, q.Push(job("p1", domain.RequestPing, &out)))
		q.Close()

		err := app.NewWorker(h, q, log).Run(t.Context())
		require.NoError(t, err)

		got := out.list()
		require.Len(t, got, 2)
		assert.Equal(t, domain.ResponseError, got[0].Type)
		assert.Contains(t, got[0].Text, domain.ErrRequestPanicked.Error())
		assert.Equal(t, domain.Response{ID: "p1", Type: domain.ResponsePong}, got[1])
	})
}

func TestWorker_CoalescesBuildsBehindRunningOne(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		q := app.NewQueue()
		h := &scriptedHandler{delay: time.Second}
		var out responses

		done := make(chan error, 1)
		go func() { done <- app.NewWorker(h, q, nil).Run(t.Context()) }()

		require.NoError(t, q.Push(job("b1", domain.RequestBuild, &out)))
		synctest.Wait()
		// b1 is running; b2 and b3 wait behind it and b3 supersedes b2.
		require.NoError(t, q.Push(job("b2", domain.RequestBuild, &out)))
		require.NoError(t, q.Push(job("b3", domain.RequestBuild, &out)))

		time.Sleep(3 * time.Second)
		synctest.Wait()
		q.Close()
		require.NoError(t, <-done)

		assert.Equal(t, []string{"b1", "b3"}, h.seen)
		terminal := out.terminal()
		require.Len(t, terminal, 3)
		assert.Equal(t, "b2", terminal[0].ID)
		assert.Equal(t, domain.ResponseError, terminal[0].Type)
		assert.Equal(t, "b1", terminal[1].ID)
		assert.Equal(t, "b3", terminal[2].ID)
	})
}

func TestWorker_StopsOnCancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() { done <- app.NewWorker(&scriptedHandler{}, app.NewQueue(), nil).Run(ctx) }()

		synctest.Wait()
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}
