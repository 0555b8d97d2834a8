package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const alertTracerName = "github.com/KasumiMercury/wake-walk-alert/internal/service/alert"

func AlertTracer() trace.Tracer {
	return otel.Tracer(alertTracerName)
}

func StartCheckSpan(ctx context.Context, checkedAt time.Time) (context.Context, trace.Span) {
	return AlertTracer().Start(ctx, "wake_alert.check",
		trace.WithAttributes(
			attribute.String("check.at", checkedAt.Format(time.RFC3339)),
		),
	)
}

func StartFetchSpan(ctx context.Context, kind string, start, end time.Time) (context.Context, trace.Span) {
	return AlertTracer().Start(ctx, "wake_alert.fetch_"+kind,
		trace.WithAttributes(
			attribute.String("fetch.start", start.Format(time.RFC3339)),
			attribute.String("fetch.end", end.Format(time.RFC3339)),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return AlertTracer().Start(ctx, "wake_alert.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordFetchResult(span trace.Span, count int, err error) {
	span.SetAttributes(attribute.Int("fetch.count", count))
	RecordError(span, err)
}

func RecordWakeEstimate(span trace.Span, segments, qualifying int, wakeTime time.Time, found bool) {
	span.SetAttributes(
		attribute.Int("wake.segment_count", segments),
		attribute.Int("wake.qualifying_count", qualifying),
		attribute.Bool("wake.found", found),
	)
	if found {
		span.SetAttributes(attribute.String("wake.time", wakeTime.Format(time.RFC3339)))
	}
}

func RecordCheckResult(span trace.Span, state string, totalSteps int64, thresholdMet bool, err error) {
	span.SetAttributes(
		attribute.String("check.state", state),
		attribute.Int64("check.total_steps", totalSteps),
		attribute.Bool("check.threshold_met", thresholdMet),
	)
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
