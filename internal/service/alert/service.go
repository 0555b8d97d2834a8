package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/taskqueue"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability/metrics"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability/tracing"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/steps"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/wake"
)

const DefaultSleepLookback = 24 * time.Hour

type Config struct {
	SleepLookback   time.Duration
	DisplayLocation *time.Location
}

type Service struct {
	fitness      domain.FitnessRepository
	analyzer     *wake.Analyzer
	evaluator    *steps.Evaluator
	notifier     domain.Notifier
	checkLock    domain.CheckLock
	recorder     domain.CheckResultRecorder
	alertMetrics *metrics.AlertMetrics

	sleepLookback time.Duration
	location      *time.Location
	now           func() time.Time
}

// NewService wires a check. checkLock, recorder and alertMetrics may be nil.
func NewService(
	fitness domain.FitnessRepository,
	analyzer *wake.Analyzer,
	evaluator *steps.Evaluator,
	notifier domain.Notifier,
	checkLock domain.CheckLock,
	recorder domain.CheckResultRecorder,
	alertMetrics *metrics.AlertMetrics,
	cfg Config,
) *Service {
	lookback := cfg.SleepLookback
	if lookback <= 0 {
		lookback = DefaultSleepLookback
	}
	loc := cfg.DisplayLocation
	if loc == nil {
		loc = time.UTC
	}

	return &Service{
		fitness:       fitness,
		analyzer:      analyzer,
		evaluator:     evaluator,
		notifier:      notifier,
		checkLock:     checkLock,
		recorder:      recorder,
		alertMetrics:  alertMetrics,
		sleepLookback: lookback,
		location:      loc,
		now:           time.Now,
	}
}

// RunCheck runs a check dequeued from the task queue.
func (s *Service) RunCheck(ctx context.Context, task *taskqueue.CheckTask) error {
	slog.InfoContext(ctx, "running queued wake alert check",
		slog.String("task_id", task.TaskID),
		slog.String("trigger", task.Trigger),
	)

	_, err := s.Run(ctx, s.now())
	return err
}

// Run performs one wake alert check at now. A missing wake estimate is a
// normal outcome and returns a nil error.
func (s *Service) Run(ctx context.Context, now time.Time) (*Result, error) {
	startedAt := time.Now()

	ctx, span := tracing.StartCheckSpan(ctx, now)
	defer span.End()

	result := &Result{
		State:     domain.CheckStateIdle,
		CheckedAt: now,
		Threshold: s.evaluator.Threshold(),
		Window:    s.evaluator.Window(),
		location:  s.location,
	}

	if s.checkLock != nil {
		acquired, err := s.checkLock.TryLock(ctx)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "check lock unavailable, running unguarded",
				slog.String("error", err.Error()),
			)
		case !acquired:
			slog.InfoContext(ctx, "wake alert check already in flight",
				slog.String("event", "check.skipped"),
			)
			result.State = domain.CheckStateAlreadyRunning
			s.finish(ctx, span, startedAt, result, nil)
			return result, nil
		default:
			defer s.unlock(ctx)
		}
	}

	err := s.run(ctx, now, result)
	s.finish(ctx, span, startedAt, result, err)

	return result, err
}

func (s *Service) run(ctx context.Context, now time.Time, result *Result) error {
	s.transition(ctx, result, domain.CheckStateFetchingSleep)

	sleepStart := now.Add(-s.sleepLookback)
	fetchCtx, fetchSpan := tracing.StartFetchSpan(ctx, "sleep", sleepStart, now)
	observations, err := s.fitness.GetSleepObservations(fetchCtx, sleepStart, now)
	tracing.RecordFetchResult(fetchSpan, len(observations), err)
	fetchSpan.End()
	if err != nil {
		result.State = domain.CheckStateError
		return fmt.Errorf("failed to fetch sleep observations: %w", err)
	}

	s.transition(ctx, result, domain.CheckStateEstimatingWake)

	analysis := s.analyzer.Analyze(observations)
	result.SegmentCount = len(analysis.Segments)
	result.QualifyingCount = len(analysis.Qualifying)
	tracing.RecordWakeEstimate(trace.SpanFromContext(ctx), result.SegmentCount, result.QualifyingCount, analysis.WakeTime, analysis.Found)
	if s.alertMetrics != nil {
		s.alertMetrics.RecordSleepSegments(ctx, result.SegmentCount, result.QualifyingCount)
	}

	if !analysis.Found {
		slog.InfoContext(ctx, "no wake time estimable",
			slog.String("event", "check.no_wake"),
			slog.String("reason", domain.ErrNoWakeTimeEstimable.Error()),
			slog.Int("observations", len(observations)),
			slog.Int("segments", result.SegmentCount),
		)
		result.State = domain.CheckStateNoWakeFound
		return nil
	}
	result.WakeTime = analysis.WakeTime

	s.transition(ctx, result, domain.CheckStateFetchingSteps)

	windowEnd := analysis.WakeTime.Add(result.Window)
	fetchCtx, fetchSpan = tracing.StartFetchSpan(ctx, "steps", analysis.WakeTime, windowEnd)
	points, err := s.fitness.GetStepObservations(fetchCtx, analysis.WakeTime, windowEnd)
	tracing.RecordFetchResult(fetchSpan, len(points), err)
	fetchSpan.End()
	if err != nil {
		result.State = domain.CheckStateError
		return fmt.Errorf("failed to fetch step observations: %w", err)
	}

	s.transition(ctx, result, domain.CheckStateEvaluating)

	evaluation := s.evaluator.Evaluate(analysis.WakeTime, points)
	result.TotalSteps = evaluation.TotalSteps
	result.ThresholdMet = evaluation.ThresholdMet
	result.CountedPoints = evaluation.Counted
	result.SkippedPoints = evaluation.Skipped
	result.OutsidePoints = evaluation.OutOfWindow

	if s.alertMetrics != nil {
		s.alertMetrics.RecordStepsInWindow(ctx, evaluation.TotalSteps, evaluation.ThresholdMet)
		s.alertMetrics.RecordSkippedPoints(ctx, evaluation.Skipped)
	}

	if windowEnd.After(now) {
		slog.DebugContext(ctx, "step window has not fully elapsed",
			slog.Time("wake_time", analysis.WakeTime),
			slog.Time("window_end", windowEnd),
		)
	}

	if evaluation.ThresholdMet {
		result.State = domain.CheckStateNoAlertNeeded
		return nil
	}

	if err := s.notifier.Notify(ctx, AlertTitle, alertBody(result.TotalSteps, result.Window)); err != nil {
		if s.alertMetrics != nil {
			s.alertMetrics.RecordNotification(ctx, notificationOutcomeFailed)
		}
		result.State = domain.CheckStateError
		return fmt.Errorf("failed to send notification: %w", err)
	}
	if s.alertMetrics != nil {
		s.alertMetrics.RecordNotification(ctx, notificationOutcomeSent)
	}

	result.State = domain.CheckStateAlertSent
	return nil
}

func (s *Service) transition(ctx context.Context, result *Result, next domain.CheckState) {
	slog.DebugContext(ctx, "wake alert check transition",
		slog.String("from", result.State.String()),
		slog.String("to", next.String()),
	)
	result.State = next
}

func (s *Service) finish(ctx context.Context, span trace.Span, startedAt time.Time, result *Result, err error) {
	tracing.RecordCheckResult(span, result.State.String(), result.TotalSteps, result.ThresholdMet, err)

	if s.alertMetrics != nil {
		s.alertMetrics.RecordCheck(ctx, result.State.String(), time.Since(startedAt))
	}

	var errMsg string
	if err != nil {
		errMsg = err.Error()
		slog.ErrorContext(ctx, "wake alert check failed",
			slog.String("event", "check.failed"),
			slog.String("state", result.State.String()),
			slog.String("error", errMsg),
		)
	} else {
		attrs := []any{
			slog.String("event", "check.completed"),
			slog.String("state", result.State.String()),
			slog.Int64("total_steps", result.TotalSteps),
			slog.Int64("threshold", result.Threshold),
		}
		if !result.WakeTime.IsZero() {
			attrs = append(attrs, slog.String("wake_time", result.WakeTimeDisplay()))
		}
		slog.InfoContext(ctx, "wake alert check completed", attrs...)
	}

	if s.recorder != nil {
		if recErr := s.recorder.RecordCheck(ctx, result.record(errMsg)); recErr != nil {
			slog.WarnContext(ctx, "failed to record check result",
				slog.String("error", recErr.Error()),
			)
		}
	}
}

func (s *Service) unlock(ctx context.Context) {
	if err := s.checkLock.Unlock(context.WithoutCancel(ctx)); err != nil {
		slog.WarnContext(ctx, "failed to release check lock",
			slog.String("error", err.Error()),
		)
	}
}
