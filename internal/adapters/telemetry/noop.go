package telemetry

import (
	"context"

	"go.trai.ch/forge/internal/core/ports"
)

var _ ports.Tracer = (*NoopTracer)(nil)

// NoopTracer discards all spans. Used in tests and wherever tracing is not
// wired up.
type NoopTracer struct{}

// NewNoop creates a NoopTracer.
func NewNoop() *NoopTracer {
	return &NoopTracer{}
}

// Start returns the context unchanged and a span that does nothing.
func (t *NoopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End()                     {}
func (noopSpan) RecordError(error)        {}
func (noopSpan) SetAttribute(string, any) {}
