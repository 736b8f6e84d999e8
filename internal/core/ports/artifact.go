package ports

import "go.trai.ch/forma/internal/core/domain"

// ArtifactStore persists exported files.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifact.go -destination=mocks/mock_artifact.go -package=mocks
type ArtifactStore interface {
	// Write stores file and returns the path it was written to.
	Write(file domain.File) (string, error)
}
