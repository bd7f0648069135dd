package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName names the tracer behind the service spans
const TracerName = "wms-backend"

// Span attribute keys used by the generation services
const (
	SpanAttrTenantID      = "tenant_id"
	SpanAttrDepositID     = "deposit_id"
	SpanAttrStructureSlug = "structure_slug"
	SpanAttrGroupID       = "group_id"
	SpanAttrTotalCount    = "total_count"
	SpanAttrSampleSize    = "sample_size"
	SpanAttrCreated       = "created"
	SpanAttrAddresses     = "addresses"
)

// Span events recorded along the commit path
const (
	SpanEventBatchBuilt     = "batch_built"
	SpanEventBatchPersisted = "batch_persisted"
)

// SpanOption configures a span at start
type SpanOption func(*[]attribute.KeyValue)

// WithAttribute sets an attribute when the span starts
func WithAttribute(key string, value any) SpanOption {
	return func(attrs *[]attribute.KeyValue) {
		*attrs = append(*attrs, toAttribute(key, value))
	}
}

// StartSpan starts an internal span named spanName. Callers end it.
func StartSpan(ctx context.Context, spanName string, opts ...SpanOption) (context.Context, trace.Span) {
	var attrs []attribute.KeyValue
	for _, opt := range opts {
		opt(&attrs)
	}

	startOpts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindInternal)}
	if len(attrs) > 0 {
		startOpts = append(startOpts, trace.WithAttributes(attrs...))
	}
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, spanName, startOpts...)
}

// StartServiceSpan starts a span named "<service>.<method>", e.g. "address_group.generate"
func StartServiceSpan(ctx context.Context, service, method string, opts ...SpanOption) (context.Context, trace.Span) {
	return StartSpan(ctx, service+"."+method, opts...)
}

// SetAttributes sets alternating key, value pairs on span. Pairs whose key
// is not a string are skipped.
func SetAttributes(span trace.Span, keyValues ...any) {
	if span == nil {
		return
	}
	span.SetAttributes(pairs(keyValues)...)
}

// AddEvent records a named event with alternating key, value attributes
func AddEvent(span trace.Span, name string, keyValues ...any) {
	if span == nil {
		return
	}
	span.AddEvent(name, trace.WithAttributes(pairs(keyValues)...))
}

// RecordError records err on span and marks the span failed
func RecordError(span trace.Span, err error, opts ...trace.EventOption) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}

// SetOK marks span successful
func SetOK(span trace.Span) {
	if span == nil {
		return
	}
	span.SetStatus(codes.Ok, "")
}

func pairs(keyValues []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, toAttribute(key, keyValues[i+1]))
	}
	return attrs
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
