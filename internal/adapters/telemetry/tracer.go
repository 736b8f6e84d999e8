// Package telemetry records part builds as OpenTelemetry spans.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/forma/internal/core/ports"
)

// InstrumentationName scopes every span forma emits.
const InstrumentationName = "go.trai.ch/forma"

// AttrCached marks a span whose part was served from the cache.
const AttrCached = "forma.cached"

// Tracer is a ports.Telemetry backed by an OpenTelemetry tracer.
type Tracer struct {
	provider trace.TracerProvider
	tracer   trace.Tracer
}

var _ ports.Telemetry = (*Tracer)(nil)

// NewTracer creates a Tracer on provider.
func NewTracer(provider trace.TracerProvider) *Tracer {
	return &Tracer{
		provider: provider,
		tracer:   provider.Tracer(InstrumentationName),
	}
}

// Record starts a span named name as a child of any span in ctx.
func (t *Tracer) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &Span{span: span}
}

// Close shuts the provider down when it supports it, flushing span processors.
func (t *Tracer) Close() error {
	if sd, ok := t.provider.(interface{ Shutdown(context.Context) error }); ok {
		return sd.Shutdown(context.Background())
	}
	return nil
}

// Span adapts one trace.Span to ports.Vertex. Complete ends the span once.
type Span struct {
	span trace.Span
	once sync.Once
}

// Log adds a log event to the span.
func (s *Span) Log(level domain.LogLevel, msg string) {
	s.span.AddEvent("log", trace.WithAttributes(
		attribute.String("level", level.String()),
		attribute.String("message", msg),
	))
}

// Cached tags the span as a cache hit.
func (s *Span) Cached() {
	s.span.SetAttributes(attribute.Bool(AttrCached, true))
}

// Complete records err, if any, and ends the span.
func (s *Span) Complete(err error) {
	s.once.Do(func() {
		if err != nil {
			s.span.RecordError(err)
			s.span.SetStatus(codes.Error, err.Error())
		} else {
			s.span.SetStatus(codes.Ok, "")
		}
		s.span.End()
	})
}
