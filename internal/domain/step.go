package domain

import "time"

// StepObservation is a step_count.delta point. Count is nil when the point
// carried no value.
type StepObservation struct {
	Start time.Time
	End   time.Time
	Count *int64
}

type StepWindowResult struct {
	TotalSteps   int64
	ThresholdMet bool
	// Counted is the number of points summed, Skipped the malformed points
	// that contributed zero. OutOfWindow counts points the source returned
	// outside the window.
	Counted     int
	Skipped     int
	OutOfWindow int
}
