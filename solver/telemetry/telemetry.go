// Package telemetry is the ambient logging/metrics/tracing stack shared by
// the planner, scheduler, and component packages. component.Options and
// system.Options take a Logger, Metrics, and Tracer; plan.Hierarchical and
// schedule.Run take a Tracer argument. Each defaults to the no-op
// implementation when left nil; a host process opts into the clue/OTEL
// stack explicitly.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type (
	// Logger emits structured log messages keyed by alternating
	// (key, value) pairs, following the level conventions most Go
	// structured loggers use.
	Logger interface {
		Debug(ctx context.Context, msg string, keyvals ...any)
		Info(ctx context.Context, msg string, keyvals ...any)
		Warn(ctx context.Context, msg string, keyvals ...any)
		Error(ctx context.Context, msg string, keyvals ...any)
	}

	// Metrics records counters, timers, and gauges tagged by alternating
	// (key, value) string pairs.
	Metrics interface {
		IncCounter(name string, value float64, tags ...string)
		RecordTimer(name string, duration time.Duration, tags ...string)
		RecordGauge(name string, value float64, tags ...string)
	}

	// Tracer starts and retrieves spans.
	Tracer interface {
		StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span)
		SpanFromContext(ctx context.Context) Span
	}

	// Span is a single unit of tracing work.
	Span interface {
		End(opts ...trace.SpanEndOption)
		AddEvent(name string, attrs ...any)
		SetStatus(code codes.Code, description string)
		RecordError(err error, opts ...trace.EventOption)
	}
)
