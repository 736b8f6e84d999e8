package telemetry

import (
	"context"
	"errors"

	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
)

// Fanout records every vertex on each of its sinks.
type Fanout []ports.Telemetry

var _ ports.Telemetry = Fanout(nil)

// Record starts a vertex on every sink. Each sink sees the context returned by
// the previous one, so span parents propagate.
func (f Fanout) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vs := make(fanoutVertex, 0, len(f))
	for _, sink := range f {
		var v ports.Vertex
		ctx, v = sink.Record(ctx, name)
		vs = append(vs, v)
	}
	return ctx, vs
}

// Close closes every sink and joins their errors.
func (f Fanout) Close() error {
	var errs []error
	for _, sink := range f {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type fanoutVertex []ports.Vertex

func (vs fanoutVertex) Log(level domain.LogLevel, msg string) {
	for _, v := range vs {
		v.Log(level, msg)
	}
}

func (vs fanoutVertex) Cached() {
	for _, v := range vs {
		v.Cached()
	}
}

func (vs fanoutVertex) Complete(err error) {
	for _, v := range vs {
		v.Complete(err)
	}
}
