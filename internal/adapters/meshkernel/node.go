package meshkernel

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forma/internal/core/ports"
)

// NodeID is the unique identifier for the kernel factory Graft node.
const NodeID graft.ID = "adapter.kernel_factory"

func init() {
	graft.Register(graft.Node[ports.KernelFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.KernelFactory, error) {
			return Factory{}, nil
		},
	})
}
