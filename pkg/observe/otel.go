package observe

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for shopkit applications.
const defaultTracerName = "shopkit"

// TraceConfig configures the OpenTelemetry instrumentation.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "shopkit").
	TracerName string

	// IncludeUserEmail includes the user email in auth spans.
	// May contain sensitive information - disabled by default.
	IncludeUserEmail bool
}

// TraceOption configures the OpenTelemetry instrumentation.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithIncludeUserEmail enables including the user email in spans.
func WithIncludeUserEmail(include bool) TraceOption {
	return func(c *TraceConfig) {
		c.IncludeUserEmail = include
	}
}

// Tracer traces storefront operations.
type Tracer struct {
	cfg    TraceConfig
	tracer trace.Tracer
}

// NewTracer creates a Tracer using the globally registered provider.
func NewTracer(opts ...TraceOption) *Tracer {
	cfg := TraceConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Tracer{
		cfg:    cfg,
		tracer: otel.Tracer(cfg.TracerName),
	}
}

// StartOp starts a span for a store operation, e.g. "session.login".
func (t *Tracer) StartOp(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := t.tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindInternal))
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return ctx, span
}

// AuthAttrs builds the attributes for an auth span, honoring the
// email privacy setting.
func (t *Tracer) AuthAttrs(email string) []attribute.KeyValue {
	if !t.cfg.IncludeUserEmail {
		return nil
	}
	return []attribute.KeyValue{attribute.String("user.email", email)}
}

// EndOp finishes the span, recording err if non-nil.
func EndOp(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
