package telemetry

import (
	"context"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
)

// Noop discards every vertex.
type Noop struct{}

var _ ports.Telemetry = Noop{}

// NewNoop creates a telemetry sink that records nothing.
func NewNoop() Noop {
	return Noop{}
}

// Record returns ctx unchanged and a vertex that ignores all calls.
func (Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (noopVertex) Log(domain.LogLevel, string) {}
func (noopVertex) Cached()                     {}
func (noopVertex) Complete(error)              {}
