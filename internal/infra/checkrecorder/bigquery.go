//go:build gcloud

package checkrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt    time.Time              `bigquery:"recorded_at"`
	CheckedAt     time.Time              `bigquery:"checked_at"`
	State         string                 `bigquery:"state"`
	WakeTime      bigquery.NullTimestamp `bigquery:"wake_time"`
	TotalSteps    int64                  `bigquery:"total_steps"`
	Threshold     int64                  `bigquery:"threshold"`
	SegmentCount  int64                  `bigquery:"segment_count"`
	SkippedPoints int64                  `bigquery:"skipped_points"`
	Error         bigquery.NullString    `bigquery:"error"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.CheckResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "check result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, check result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, check result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	slog.InfoContext(ctx, "check result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordCheck(ctx context.Context, record domain.CheckRecord) error {
	row := &bigQueryRecord{
		RecordedAt:    time.Now(),
		CheckedAt:     record.CheckedAt,
		State:         record.State.String(),
		WakeTime:      bigquery.NullTimestamp{Timestamp: record.WakeTime, Valid: !record.WakeTime.IsZero()},
		TotalSteps:    record.TotalSteps,
		Threshold:     record.Threshold,
		SegmentCount:  int64(record.SegmentCount),
		SkippedPoints: int64(record.SkippedPoints),
		Error:         bigquery.NullString{StringVal: record.Error, Valid: record.Error != ""},
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert check result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("state", record.State.String()),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
