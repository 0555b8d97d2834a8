package steps

import (
	"log/slog"
	"time"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

const (
	DefaultWindow    = 30 * time.Minute
	DefaultThreshold = 1000
)

type Config struct {
	Window    time.Duration
	Threshold int64
}

type Evaluator struct {
	window    time.Duration
	threshold int64
}

func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{
		window:    cfg.Window,
		threshold: cfg.Threshold,
	}
}

func (e *Evaluator) Window() time.Duration {
	return e.window
}

func (e *Evaluator) Threshold() int64 {
	return e.threshold
}

// Evaluate sums step counts in [wakeTime, wakeTime+Window) using the
// configured window and threshold.
func (e *Evaluator) Evaluate(wakeTime time.Time, points []domain.StepObservation) domain.StepWindowResult {
	return Evaluate(wakeTime, e.window, points, e.threshold)
}

// Evaluate sums the counts of points that start inside [wakeTime,
// wakeTime+window). Points outside the window are ignored and counted
// separately. Points without a usable count are skipped and contribute zero.
func Evaluate(wakeTime time.Time, window time.Duration, points []domain.StepObservation, threshold int64) domain.StepWindowResult {
	windowEnd := wakeTime.Add(window)

	var result domain.StepWindowResult
	for _, p := range points {
		if p.Start.Before(wakeTime) || !p.Start.Before(windowEnd) {
			result.OutOfWindow++
			continue
		}

		if p.Count == nil || *p.Count < 0 {
			slog.Debug("skipping step point",
				slog.String("error", domain.ErrMalformedPoint.Error()),
				slog.Time("start", p.Start),
			)
			result.Skipped++
			continue
		}

		result.TotalSteps += *p.Count
		result.Counted++
	}

	result.ThresholdMet = result.TotalSteps >= threshold

	return result
}
