package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

const (
	stepThresholdEnv      = "STEP_THRESHOLD"
	mergeGapSecondsEnv    = "SLEEP_MERGE_GAP_SECONDS"
	minSegmentSecondsEnv  = "SLEEP_MIN_SEGMENT_SECONDS"
	windowMinutesEnv      = "STEP_WINDOW_MINUTES"
	sleepLookbackHoursEnv = "SLEEP_LOOKBACK_HOURS"
	displayUTCOffsetEnv   = "DISPLAY_UTC_OFFSET_HOURS"
	sleepStagesEnv        = "SLEEP_STAGES"
	checkLockSecondsEnv   = "CHECK_LOCK_TTL_SECONDS"

	defaultStepThreshold      = 1000
	defaultMergeGap           = 600 * time.Second
	defaultMinSegment         = 1800 * time.Second
	defaultWindowMinutes      = 30
	defaultSleepLookbackHours = 24
	defaultDisplayUTCOffset   = 9
	defaultCheckLockTTL       = 5 * time.Minute
)

type AlertConfig struct {
	StepThreshold int64
	MergeGap      time.Duration
	MinSegment    time.Duration
	Window        time.Duration
	SleepLookback time.Duration
	// DisplayOffsetHours is the fixed UTC offset used in user-facing text.
	DisplayOffsetHours int
	SleepStages        []domain.SleepStage
	CheckLockTTL       time.Duration
}

func LoadAlertConfig() (*AlertConfig, error) {
	threshold := int64(defaultStepThreshold)
	if v := os.Getenv(stepThresholdEnv); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed >= 0 {
			threshold = parsed
		}
	}

	windowMinutes := defaultWindowMinutes
	if v := os.Getenv(windowMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			windowMinutes = parsed
		}
	}

	lookbackHours := defaultSleepLookbackHours
	if v := os.Getenv(sleepLookbackHoursEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			lookbackHours = parsed
		}
	}

	offset := defaultDisplayUTCOffset
	if v := os.Getenv(displayUTCOffsetEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < -12 || parsed > 14 {
			return nil, ErrInvalidDisplayOffset
		}
		offset = parsed
	}

	stages, err := parseSleepStages(os.Getenv(sleepStagesEnv))
	if err != nil {
		return nil, err
	}

	return &AlertConfig{
		StepThreshold:      threshold,
		MergeGap:           envSeconds(mergeGapSecondsEnv, defaultMergeGap),
		MinSegment:         envSeconds(minSegmentSecondsEnv, defaultMinSegment),
		Window:             time.Duration(windowMinutes) * time.Minute,
		SleepLookback:      time.Duration(lookbackHours) * time.Hour,
		DisplayOffsetHours: offset,
		SleepStages:        stages,
		CheckLockTTL:       envSeconds(checkLockSecondsEnv, defaultCheckLockTTL),
	}, nil
}

// DisplayLocation returns the fixed zone used to render times for the user.
func (c *AlertConfig) DisplayLocation() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.DisplayOffsetHours), c.DisplayOffsetHours*60*60)
}

// parseSleepStages reads a comma separated list such as "light,deep,rem".
// Empty input selects domain.DefaultSleepStages.
func parseSleepStages(raw string) ([]domain.SleepStage, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.DefaultSleepStages, nil
	}

	var stages []domain.SleepStage
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		stage, ok := domain.ParseSleepStage(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSleepStage, name)
		}
		stages = append(stages, stage)
	}

	if len(stages) == 0 {
		return domain.DefaultSleepStages, nil
	}

	return stages, nil
}
