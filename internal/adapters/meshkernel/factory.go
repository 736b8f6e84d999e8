package meshkernel

import (
	"context"

	"go.trai.ch/forma/internal/core/ports"
)

// Factory initializes mesh kernels. Initialization is immediate.
type Factory struct{}

var _ ports.KernelFactory = Factory{}

// Init returns a fresh Kernel unless ctx is already done.
func (Factory) Init(ctx context.Context) (ports.Kernel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return New(), nil
}
