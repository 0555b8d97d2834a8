package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

type TaskQueue interface {
	EnqueueCheck(ctx context.Context, task *CheckTask) (*TaskResponse, error)
}

// CheckRunner executes a dequeued wake alert check.
type CheckRunner interface {
	RunCheck(ctx context.Context, task *CheckTask) error
}

type CheckRunnerFunc func(ctx context.Context, task *CheckTask) error

func (f CheckRunnerFunc) RunCheck(ctx context.Context, task *CheckTask) error {
	return f(ctx, task)
}
