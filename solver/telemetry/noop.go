package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// NoopTelemetry discards everything: logs, metrics, and spans. It
// satisfies Logger, Metrics, and Tracer at once, so a host that wants no
// instrumentation at all can plug one zero value into every Options field
// instead of three.
type NoopTelemetry struct{}

type noopSpan struct{}

// NewNoopLogger returns the shared no-op Logger.
func NewNoopLogger() Logger { return NoopTelemetry{} }

// NewNoopMetrics returns the shared no-op Metrics recorder.
func NewNoopMetrics() Metrics { return NoopTelemetry{} }

// NewNoopTracer returns the shared no-op Tracer.
func NewNoopTracer() Tracer { return NoopTelemetry{} }

func (NoopTelemetry) Debug(context.Context, string, ...any) {}
func (NoopTelemetry) Info(context.Context, string, ...any)  {}
func (NoopTelemetry) Warn(context.Context, string, ...any)  {}
func (NoopTelemetry) Error(context.Context, string, ...any) {}

func (NoopTelemetry) IncCounter(string, float64, ...string)        {}
func (NoopTelemetry) RecordTimer(string, time.Duration, ...string) {}
func (NoopTelemetry) RecordGauge(string, float64, ...string)       {}

func (NoopTelemetry) StartSpan(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, Span) {
	return ctx, noopSpan{}
}
func (NoopTelemetry) SpanFromContext(context.Context) Span { return noopSpan{} }

func (noopSpan) End(...trace.SpanEndOption)              {}
func (noopSpan) AddEvent(string, ...any)                 {}
func (noopSpan) SetStatus(codes.Code, string)            {}
func (noopSpan) RecordError(error, ...trace.EventOption) {}
