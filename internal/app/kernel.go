package app

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// KernelProvider initializes the geometry kernel once. Concurrent callers
// share the in-flight initialization. A failed initialization is not
// memoized, so the next call retries.
type KernelProvider struct {
	factory ports.KernelFactory
	group   singleflight.Group

	mu     sync.Mutex
	kernel ports.Kernel
}

// NewKernelProvider creates a provider over factory.
func NewKernelProvider(factory ports.KernelFactory) *KernelProvider {
	return &KernelProvider{factory: factory}
}

func (p *KernelProvider) cached() ports.Kernel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kernel
}

// Get returns the kernel, initializing it on first use.
func (p *KernelProvider) Get(ctx context.Context) (ports.Kernel, error) {
	if k := p.cached(); k != nil {
		return k, nil
	}

	v, err, _ := p.group.Do("kernel", func() (any, error) {
		if k := p.cached(); k != nil {
			return k, nil
		}
		k, err := p.factory.Init(ctx)
		if err != nil {
			return nil, errors.Join(domain.ErrKernelInit, err)
		}
		p.mu.Lock()
		p.kernel = k
		p.mu.Unlock()
		return k, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(ports.Kernel), nil //nolint:forcetypeassert // the group only stores kernels
}
