package checkrecorder

import (
	"time"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

const measurement = "wake_alert_check"

func recordTags(record domain.CheckRecord) map[string]string {
	return map[string]string{
		"state": record.State.String(),
	}
}

func recordFields(record domain.CheckRecord) map[string]any {
	fields := map[string]any{
		"total_steps":    record.TotalSteps,
		"threshold":      record.Threshold,
		"segment_count":  record.SegmentCount,
		"skipped_points": record.SkippedPoints,
		"threshold_met":  record.State == domain.CheckStateNoAlertNeeded,
	}
	if !record.WakeTime.IsZero() {
		fields["wake_time"] = record.WakeTime.UTC().Format(time.RFC3339)
		fields["wake_unix"] = record.WakeTime.Unix()
	}
	if record.Error != "" {
		fields["error"] = record.Error
	}
	return fields
}
