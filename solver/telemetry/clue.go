package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"goa.design/clue/log"
)

// ClueTelemetry is the production Logger+Metrics+Tracer: logging delegates
// to goa.design/clue/log (format and debug settings come from the context,
// set via log.Context and log.WithFormat/log.WithDebug), metrics and spans
// delegate to the global OTEL meter/tracer providers, configured by the
// host via clue.ConfigureOpenTelemetry before invoking solver methods.
type ClueTelemetry struct {
	meter  metric.Meter
	tracer trace.Tracer
}

type clueSpan struct {
	span trace.Span
}

// NewClueTelemetry builds a ClueTelemetry instrumented under name, the
// OTEL meter/tracer instrumentation scope (e.g. the importing package's
// path).
func NewClueTelemetry(name string) *ClueTelemetry {
	return &ClueTelemetry{
		meter:  otel.Meter(name),
		tracer: otel.Tracer(name),
	}
}

// NewClueLogger returns a Logger backed by goa.design/clue/log.
func NewClueLogger() Logger { return ClueTelemetry{} }

// NewClueMetrics returns a Metrics recorder backed by the global OTEL
// MeterProvider under the solver's instrumentation name.
func NewClueMetrics() Metrics { return NewClueTelemetry("github.com/hotdrink-go/hotdrink/solver") }

// NewClueTracer returns a Tracer backed by the global OTEL TracerProvider
// under the solver's instrumentation name.
func NewClueTracer() Tracer { return NewClueTelemetry("github.com/hotdrink-go/hotdrink/solver") }

func (ClueTelemetry) Debug(ctx context.Context, msg string, keyvals ...any) {
	log.Debug(ctx, withMsg(msg, keyvals)...)
}

func (ClueTelemetry) Info(ctx context.Context, msg string, keyvals ...any) {
	log.Info(ctx, withMsg(msg, keyvals)...)
}

func (ClueTelemetry) Warn(ctx context.Context, msg string, keyvals ...any) {
	fields := append([]log.Fielder{log.KV{K: "msg", V: msg}, log.KV{K: "severity", V: "warning"}}, fielders(keyvals)...)
	log.Warn(ctx, fields...)
}

func (ClueTelemetry) Error(ctx context.Context, msg string, keyvals ...any) {
	log.Error(ctx, nil, withMsg(msg, keyvals)...)
}

func withMsg(msg string, keyvals []any) []log.Fielder {
	return append([]log.Fielder{log.KV{K: "msg", V: msg}}, fielders(keyvals)...)
}

func (c ClueTelemetry) IncCounter(name string, value float64, tags ...string) {
	counter, err := c.meter.Float64Counter(name)
	if err != nil {
		return
	}
	counter.Add(context.Background(), value, metric.WithAttributes(tagAttrs(tags)...))
}

func (c ClueTelemetry) RecordTimer(name string, duration time.Duration, tags ...string) {
	histogram, err := c.meter.Float64Histogram(name)
	if err != nil {
		return
	}
	histogram.Record(context.Background(), duration.Seconds(), metric.WithAttributes(tagAttrs(tags)...))
}

func (c ClueTelemetry) RecordGauge(name string, value float64, tags ...string) {
	// OTEL has no synchronous gauge instrument; a histogram is the closest
	// fit for a point-in-time value recorded from application code.
	histogram, err := c.meter.Float64Histogram(name + "_gauge")
	if err != nil {
		return
	}
	histogram.Record(context.Background(), value, metric.WithAttributes(tagAttrs(tags)...))
}

func (c ClueTelemetry) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, Span) {
	newCtx, span := c.tracer.Start(ctx, name, opts...)
	return newCtx, clueSpan{span: span}
}

func (c ClueTelemetry) SpanFromContext(ctx context.Context) Span {
	return clueSpan{span: trace.SpanFromContext(ctx)}
}

func (s clueSpan) End(opts ...trace.SpanEndOption) { s.span.End(opts...) }

func (s clueSpan) AddEvent(name string, attrs ...any) {
	s.span.AddEvent(name, trace.WithAttributes(kvAttrs(attrs)...))
}

func (s clueSpan) SetStatus(code codes.Code, description string) {
	s.span.SetStatus(code, description)
}

func (s clueSpan) RecordError(err error, opts ...trace.EventOption) {
	s.span.RecordError(err, opts...)
}

// pair is one (key, value) entry parsed out of an alternating variadic
// list. A non-string key drops the pair; a trailing unpaired key gets a
// nil value.
type pair struct {
	key string
	val any
}

func pairs(args []any) []pair {
	var out []pair
	for i := 0; i < len(args); i += 2 {
		k, ok := args[i].(string)
		if !ok {
			continue
		}
		var v any
		if i+1 < len(args) {
			v = args[i+1]
		}
		out = append(out, pair{key: k, val: v})
	}
	return out
}

func fielders(keyvals []any) []log.Fielder {
	ps := pairs(keyvals)
	if len(ps) == 0 {
		return nil
	}
	out := make([]log.Fielder, len(ps))
	for i, p := range ps {
		out[i] = log.KV{K: p.key, V: p.val}
	}
	return out
}

func tagAttrs(tags []string) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for i := 0; i < len(tags); i += 2 {
		v := ""
		if i+1 < len(tags) {
			v = tags[i+1]
		}
		attrs = append(attrs, attribute.String(tags[i], v))
	}
	return attrs
}

func kvAttrs(keyvals []any) []attribute.KeyValue {
	ps := pairs(keyvals)
	if len(ps) == 0 {
		return nil
	}
	out := make([]attribute.KeyValue, len(ps))
	for i, p := range ps {
		out[i] = valueAttr(p.key, p.val)
	}
	return out
}

func valueAttr(key string, v any) attribute.KeyValue {
	switch val := v.(type) {
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case float64:
		return attribute.Float64(key, val)
	case bool:
		return attribute.Bool(key, val)
	default:
		return attribute.String(key, "")
	}
}
