package app_test

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/app"
	"go.trai.ch/forma/internal/core/ports"
	"go.trai.ch/forma/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestKernelProvider_SharesInFlightInit(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		k := mocks.NewMockKernel(ctrl)
		f := mocks.NewMockKernelFactory(ctrl)
		f.EXPECT().Init(gomock.Any()).DoAndReturn(func(context.Context) (ports.Kernel, error) {
			time.Sleep(time.Second)
			return k, nil
		}).Times(1)

		p := app.NewKernelProvider(f)
		var wg sync.WaitGroup
		got := make([]ports.Kernel, 4)
		for i := range got {
			wg.Go(func() {
				kernel, err := p.Get(t.Context())
				assert.NoError(t, err)
				got[i] = kernel
			})
		}
		wg.Wait()

		for _, kernel := range got {
			assert.Same(t, k, kernel)
		}

		again, err := p.Get(t.Context())
		require.NoError(t, err)
		assert.Same(t, k, again)
	})
}
