package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "media-registry"

// GetTracer returns the tracer for the registry service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// RegistrationAttributes returns common attributes for registration spans.
func RegistrationAttributes(creator string, subComponents int, hasOrigin bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("media.creator", creator),
		attribute.Int("media.sub_components", subComponents),
		attribute.Bool("media.has_origin", hasOrigin),
	}
}

// StartRegistrationSpan starts a span for a media registration.
func StartRegistrationSpan(ctx context.Context, creator string, subComponents int, hasOrigin bool) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "media.register",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(RegistrationAttributes(creator, subComponents, hasOrigin)...),
	)
}

// StartLookupSpan starts a span for a media lookup.
func StartLookupSpan(ctx context.Context, kind string) (context.Context, trace.Span) {
	return GetTracer().Start(ctx, "media.lookup."+kind,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddRegisteredEvent adds a success event with the assigned ID.
func AddRegisteredEvent(span trace.Span, mediaID uint64) {
	span.AddEvent("media.registered",
		trace.WithAttributes(attribute.Int64("media.id", int64(mediaID))),
	)
}
