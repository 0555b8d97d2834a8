package domain

import "time"

// CheckState is a step of the wake alert check.
type CheckState string

const (
	CheckStateIdle           CheckState = "idle"
	CheckStateAlreadyRunning CheckState = "already_running"
	CheckStateFetchingSleep  CheckState = "fetching_sleep"
	CheckStateEstimatingWake CheckState = "estimating_wake"
	CheckStateNoWakeFound    CheckState = "no_wake_found"
	CheckStateFetchingSteps  CheckState = "fetching_steps"
	CheckStateEvaluating     CheckState = "evaluating"
	CheckStateAlertSent      CheckState = "alert_sent"
	CheckStateNoAlertNeeded  CheckState = "no_alert_needed"
	CheckStateError          CheckState = "error"
)

func (s CheckState) String() string {
	return string(s)
}

// IsTerminal reports whether the check stops in this state.
func (s CheckState) IsTerminal() bool {
	switch s {
	case CheckStateAlreadyRunning, CheckStateNoWakeFound, CheckStateAlertSent,
		CheckStateNoAlertNeeded, CheckStateError:
		return true
	default:
		return false
	}
}

type CheckRecord struct {
	CheckedAt     time.Time
	State         CheckState
	WakeTime      time.Time
	TotalSteps    int64
	Threshold     int64
	SegmentCount  int
	SkippedPoints int
	Error         string
}
