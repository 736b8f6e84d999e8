package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forma/internal/adapters/logger"
	"go.trai.ch/forma/internal/core/ports"
)

// NodeID is the graft node of the params loader.
const NodeID graft.ID = "adapter.params_loader"

func init() {
	graft.Register(graft.Node[ports.ParamsLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ParamsLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
