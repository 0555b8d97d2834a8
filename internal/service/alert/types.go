package alert

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

const (
	AlertTitle = "ウォーキング不足アラート"

	notificationOutcomeSent   = "sent"
	notificationOutcomeFailed = "failed"
)

// Result is the outcome of one wake alert check.
type Result struct {
	State     domain.CheckState
	CheckedAt time.Time

	WakeTime     time.Time
	TotalSteps   int64
	Threshold    int64
	ThresholdMet bool
	Window       time.Duration

	SegmentCount    int
	QualifyingCount int
	CountedPoints   int
	SkippedPoints   int
	OutsidePoints   int

	location *time.Location
}

// Message is the user-facing text for the result. For an alert it is the
// push body.
func (r *Result) Message() string {
	switch r.State {
	case domain.CheckStateAlertSent:
		return alertBody(r.TotalSteps, r.Window)
	case domain.CheckStateNoAlertNeeded:
		return fmt.Sprintf("歩数OK: %d 歩", r.TotalSteps)
	case domain.CheckStateNoWakeFound:
		return "起床時刻を推定できませんでした"
	case domain.CheckStateAlreadyRunning:
		return "チェック実行中です"
	default:
		return "Internal Server Error"
	}
}

// WakeTimeDisplay renders the wake time in the display zone, or "" when no
// wake time was estimated.
func (r *Result) WakeTimeDisplay() string {
	if r.WakeTime.IsZero() {
		return ""
	}
	loc := r.location
	if loc == nil {
		loc = time.UTC
	}
	return r.WakeTime.In(loc).Format("2006-01-02 15:04 MST")
}

func (r *Result) record(errMsg string) domain.CheckRecord {
	return domain.CheckRecord{
		CheckedAt:     r.CheckedAt,
		State:         r.State,
		WakeTime:      r.WakeTime,
		TotalSteps:    r.TotalSteps,
		Threshold:     r.Threshold,
		SegmentCount:  r.SegmentCount,
		SkippedPoints: r.SkippedPoints,
		Error:         errMsg,
	}
}

func alertBody(totalSteps int64, window time.Duration) string {
	return fmt.Sprintf("起床後%d分以内の歩数が %d 歩です。もっと動こう！", int(window.Minutes()), totalSteps)
}
