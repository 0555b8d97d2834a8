package taskqueue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher runs enqueued checks on a detached goroutine in this process.
// Failures are logged and never reach the caller.
type Dispatcher struct {
	runner  CheckRunner
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(runner CheckRunner, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		runner:  runner,
		timeout: timeout,
	}
}

func (d *Dispatcher) EnqueueCheck(ctx context.Context, task *CheckTask) (*TaskResponse, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, ErrQueueClosed
	}
	d.wg.Add(1)
	d.mu.Unlock()

	runCtx := context.WithoutCancel(ctx)
	now := time.Now()

	go d.run(runCtx, task)

	slog.DebugContext(ctx, "wake alert check dispatched in-process",
		slog.String("task_id", task.TaskID),
		slog.String("trigger", task.Trigger),
	)

	return &TaskResponse{
		Name:         "local/" + task.TaskID,
		ScheduleTime: now,
		CreateTime:   now,
	}, nil
}

func (d *Dispatcher) run(ctx context.Context, task *CheckTask) {
	defer d.wg.Done()

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "wake alert check panicked",
				slog.String("task_id", task.TaskID),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()

	if err := d.runner.RunCheck(ctx, task); err != nil {
		slog.ErrorContext(ctx, "wake alert check failed",
			slog.String("task_id", task.TaskID),
			slog.String("trigger", task.Trigger),
			slog.String("error", err.Error()),
		)
	}
}

// Close stops accepting checks and waits for running ones until ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for in-process checks: %w", ctx.Err())
	}
}
