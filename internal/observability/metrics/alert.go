package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	alertMeterName = "wake_alert.service"
)

type AlertMetrics struct {
	checksTotal       metric.Int64Counter
	checkDuration     metric.Float64Histogram
	stepsInWindow     metric.Int64Histogram
	sleepSegments     metric.Int64Histogram
	malformedPoints   metric.Int64Counter
	notificationsSent metric.Int64Counter
}

func NewAlertMetrics() (*AlertMetrics, error) {
	meter := otel.Meter(alertMeterName)

	checksTotal, err := meter.Int64Counter(
		"wake_alert_checks_total",
		metric.WithDescription("Total number of wake alert checks by final state"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	checkDuration, err := meter.Float64Histogram(
		"wake_alert_check_duration_seconds",
		metric.WithDescription("Wake alert check duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	stepsInWindow, err := meter.Int64Histogram(
		"wake_alert_steps_in_window",
		metric.WithDescription("Steps counted in the window after wake time"),
		metric.WithUnit("{step}"),
		metric.WithExplicitBucketBoundaries(
			0, 100, 250, 500, 750, 1000, 1500, 2000, 3000, 5000,
		),
	)
	if err != nil {
		return nil, err
	}

	sleepSegments, err := meter.Int64Histogram(
		"wake_alert_sleep_segments",
		metric.WithDescription("Merged sleep segments per check"),
		metric.WithUnit("{segment}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 3, 5, 8, 13),
	)
	if err != nil {
		return nil, err
	}

	malformedPoints, err := meter.Int64Counter(
		"wake_alert_skipped_points_total",
		metric.WithDescription("Step points skipped as malformed or out of window"),
		metric.WithUnit("{point}"),
	)
	if err != nil {
		return nil, err
	}

	notificationsSent, err := meter.Int64Counter(
		"wake_alert_notifications_total",
		metric.WithDescription("Push notifications attempted"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	return &AlertMetrics{
		checksTotal:       checksTotal,
		checkDuration:     checkDuration,
		stepsInWindow:     stepsInWindow,
		sleepSegments:     sleepSegments,
		malformedPoints:   malformedPoints,
		notificationsSent: notificationsSent,
	}, nil
}

func (m *AlertMetrics) RecordCheck(ctx context.Context, state string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("state", state))
	m.checksTotal.Add(ctx, 1, attrs)
	m.checkDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *AlertMetrics) RecordStepsInWindow(ctx context.Context, steps int64, thresholdMet bool) {
	m.stepsInWindow.Record(ctx, steps, metric.WithAttributes(
		attribute.Bool("threshold_met", thresholdMet),
	))
}

func (m *AlertMetrics) RecordSleepSegments(ctx context.Context, merged, qualifying int) {
	m.sleepSegments.Record(ctx, int64(merged), metric.WithAttributes(attribute.String("kind", "merged")))
	m.sleepSegments.Record(ctx, int64(qualifying), metric.WithAttributes(attribute.String("kind", "qualifying")))
}

func (m *AlertMetrics) RecordSkippedPoints(ctx context.Context, count int) {
	if count == 0 {
		return
	}
	m.malformedPoints.Add(ctx, int64(count))
}

func (m *AlertMetrics) RecordNotification(ctx context.Context, outcome string) {
	m.notificationsSent.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
