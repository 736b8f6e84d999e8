package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forma/internal/adapters/artifact"    //nolint:depguard // Wired in app layer
	"go.trai.ch/forma/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/forma/internal/adapters/fingerprint" //nolint:depguard // Wired in app layer
	"go.trai.ch/forma/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/forma/internal/adapters/meshkernel"  //nolint:depguard // Wired in app layer
	"go.trai.ch/forma/internal/adapters/telemetry"   //nolint:depguard // Wired in app layer
	"go.trai.ch/forma/internal/adapters/watcher"     //nolint:depguard // Wired in app layer
	"go.trai.ch/forma/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			meshkernel.NodeID,
			fingerprint.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			factory, err := graft.Dep[ports.KernelFactory](ctx)
			if err != nil {
				return nil, err
			}

			keys, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(factory, keys, tel, log), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			artifact.NodeID,
			watcher.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			loader, err := graft.Dep[ports.ParamsLoader](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			files, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:       a,
				Logger:    log,
				Loader:    loader,
				Artifacts: store,
				Watcher:   files,
				Telemetry: tel,
			}, nil
		},
	})
}
