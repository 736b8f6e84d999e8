package artifact

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forma/internal/core/ports"
)

// NodeID is the unique identifier for the artifact store Graft node.
const NodeID graft.ID = "adapter.artifact_store"

// DefaultDir is where exports land when no output directory is given.
const DefaultDir = "."

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactStore, error) {
			return NewStore(DefaultDir)
		},
	})
}
