package domain

import "time"

// SleepStage is the Google Fit sleep segment value (com.google.sleep.segment).
type SleepStage int64

const (
	SleepStageUnknown  SleepStage = 0
	SleepStageAwake    SleepStage = 1
	SleepStageSleep    SleepStage = 2
	SleepStageOutOfBed SleepStage = 3
	SleepStageLight    SleepStage = 4
	SleepStageDeep     SleepStage = 5
	SleepStageREM      SleepStage = 6
)

// DefaultSleepStages are the stages that count as actual sleep.
var DefaultSleepStages = []SleepStage{
	SleepStageSleep,
	SleepStageLight,
	SleepStageDeep,
	SleepStageREM,
}

func (s SleepStage) String() string {
	switch s {
	case SleepStageAwake:
		return "awake"
	case SleepStageSleep:
		return "sleep"
	case SleepStageOutOfBed:
		return "out_of_bed"
	case SleepStageLight:
		return "light"
	case SleepStageDeep:
		return "deep"
	case SleepStageREM:
		return "rem"
	default:
		return "unknown"
	}
}

// ParseSleepStage accepts either the stage name or its numeric value.
func ParseSleepStage(v string) (SleepStage, bool) {
	switch v {
	case "awake", "1":
		return SleepStageAwake, true
	case "sleep", "2":
		return SleepStageSleep, true
	case "out_of_bed", "3":
		return SleepStageOutOfBed, true
	case "light", "4":
		return SleepStageLight, true
	case "deep", "5":
		return SleepStageDeep, true
	case "rem", "6":
		return SleepStageREM, true
	default:
		return SleepStageUnknown, false
	}
}

type SleepObservation struct {
	Start time.Time
	End   time.Time
	Stage SleepStage
}

// SleepSegment is one continuous sleep episode built from merged observations.
type SleepSegment struct {
	Start time.Time
	End   time.Time
}

func (s SleepSegment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
