package app

import (
	"go.trai.ch/forma/internal/adapters/artifact" //nolint:depguard // Wired in app layer
	"go.trai.ch/forma/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Loader    ports.ParamsLoader
	Artifacts ports.ArtifactStore
	Watcher   ports.Watcher
	Telemetry ports.Telemetry
}

// ArtifactsAt returns the artifact store rooted at dir. The empty string
// selects the default store.
func (c *Components) ArtifactsAt(dir string) (ports.ArtifactStore, error) {
	if dir == "" || dir == artifact.DefaultDir {
		return c.Artifacts, nil
	}
	return artifact.NewStore(dir)
}
