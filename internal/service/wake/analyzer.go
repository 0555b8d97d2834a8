package wake

import (
	"sort"
	"time"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

const (
	DefaultMergeGap   = 600 * time.Second
	DefaultMinSegment = 1800 * time.Second
)

type Config struct {
	// MergeGap is the largest gap between two observations that still
	// belong to the same sleep episode.
	MergeGap time.Duration
	// MinSegment is the shortest merged segment treated as meaningful sleep.
	MinSegment time.Duration
	// SleepStages lists the stages that count as sleep. Nil means
	// domain.DefaultSleepStages.
	SleepStages []domain.SleepStage
}

// Analysis is the intermediate output of a wake time estimation.
type Analysis struct {
	Segments   []domain.SleepSegment
	Qualifying []domain.SleepSegment
	WakeTime   time.Time
	Found      bool
}

type Analyzer struct {
	mergeGap   time.Duration
	minSegment time.Duration
	stages     map[domain.SleepStage]struct{}
}

func NewAnalyzer(cfg Config) *Analyzer {
	stages := cfg.SleepStages
	if stages == nil {
		stages = domain.DefaultSleepStages
	}

	set := make(map[domain.SleepStage]struct{}, len(stages))
	for _, s := range stages {
		set[s] = struct{}{}
	}

	return &Analyzer{
		mergeGap:   cfg.MergeGap,
		minSegment: cfg.MinSegment,
		stages:     set,
	}
}

// EstimateWakeTime returns the end of the most recent merged sleep segment
// that lasts at least MinSegment. The bool is false when no segment qualifies.
func (a *Analyzer) EstimateWakeTime(observations []domain.SleepObservation) (time.Time, bool) {
	result := a.Analyze(observations)
	return result.WakeTime, result.Found
}

func (a *Analyzer) Analyze(observations []domain.SleepObservation) Analysis {
	segments := a.MergeSegments(observations)

	qualifying := make([]domain.SleepSegment, 0, len(segments))
	for _, seg := range segments {
		if seg.Duration() >= a.minSegment {
			qualifying = append(qualifying, seg)
		}
	}

	result := Analysis{
		Segments:   segments,
		Qualifying: qualifying,
	}
	if len(qualifying) == 0 {
		return result
	}

	// Segments are ordered by start, so the last one is the latest sleep.
	result.WakeTime = qualifying[len(qualifying)-1].End
	result.Found = true

	return result
}

// MergeSegments filters observations down to sleep stages and merges those
// whose gap to the running segment is at most MergeGap. The result is ordered
// by start time and does not depend on the input order.
func (a *Analyzer) MergeSegments(observations []domain.SleepObservation) []domain.SleepSegment {
	sleeping := make([]domain.SleepSegment, 0, len(observations))
	for _, obs := range observations {
		if _, ok := a.stages[obs.Stage]; !ok {
			continue
		}
		sleeping = append(sleeping, domain.SleepSegment{Start: obs.Start, End: obs.End})
	}

	if len(sleeping) == 0 {
		return nil
	}

	sort.SliceStable(sleeping, func(i, j int) bool {
		if !sleeping[i].Start.Equal(sleeping[j].Start) {
			return sleeping[i].Start.Before(sleeping[j].Start)
		}
		return sleeping[i].End.Before(sleeping[j].End)
	})

	merged := make([]domain.SleepSegment, 0, len(sleeping))
	current := sleeping[0]
	for _, next := range sleeping[1:] {
		if next.Start.Sub(current.End) <= a.mergeGap {
			// End times are not monotonic even when starts are sorted.
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	return merged
}
