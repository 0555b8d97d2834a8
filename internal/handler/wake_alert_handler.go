package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/wake-walk-alert/internal/infra/taskqueue"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/alert"
)

const (
	IndexMessage        = "Google Fit Webhook is running!"
	AcceptedMessage     = "Wake alert received"
	InternalErrorString = "Internal Server Error"
)

// CheckRunner runs a wake alert check synchronously.
type CheckRunner interface {
	Run(ctx context.Context, now time.Time) (*alert.Result, error)
}

type WakeAlertHandler struct {
	runner CheckRunner
	queue  taskqueue.TaskQueue
	now    func() time.Time
}

func NewWakeAlertHandler(runner CheckRunner, queue taskqueue.TaskQueue) *WakeAlertHandler {
	return &WakeAlertHandler{
		runner: runner,
		queue:  queue,
		now:    time.Now,
	}
}

func (h *WakeAlertHandler) HandleIndex(c *gin.Context) {
	c.String(http.StatusOK, IndexMessage)
}

// HandleWakeAlert hands the check to the task queue and acknowledges at
// once. With sync=true the check runs inside the request.
func (h *WakeAlertHandler) HandleWakeAlert(c *gin.Context) {
	ctx := c.Request.Context()

	slog.InfoContext(ctx, "wake alert triggered",
		slog.String("event", "webhook.triggered"),
	)

	if c.Query("sync") == "true" {
		h.runSync(c)
		return
	}

	task := &taskqueue.CheckTask{
		TaskID:      uuid.NewString(),
		RequestedAt: h.now(),
		Trigger:     taskqueue.TriggerWebhook,
	}

	resp, err := h.queue.EnqueueCheck(ctx, task)
	if err != nil {
		slog.ErrorContext(ctx, "failed to enqueue wake alert check",
			slog.String("task_id", task.TaskID),
			slog.String("error", err.Error()),
		)
		c.String(http.StatusInternalServerError, InternalErrorString)
		return
	}

	slog.InfoContext(ctx, "wake alert check enqueued",
		slog.String("task_id", task.TaskID),
		slog.String("task_name", resp.Name),
	)

	c.String(http.StatusOK, AcceptedMessage)
}

// HandleCheckTask is the worker endpoint the task queue delivers to.
func (h *WakeAlertHandler) HandleCheckTask(c *gin.Context) {
	ctx := c.Request.Context()

	var task taskqueue.CheckTask
	if err := c.ShouldBindJSON(&task); err != nil && !errors.Is(err, io.EOF) {
		slog.WarnContext(ctx, "invalid check task payload",
			slog.String("error", err.Error()),
		)
		c.String(http.StatusBadRequest, "invalid task payload")
		return
	}

	slog.InfoContext(ctx, "check task received",
		slog.String("task_id", task.TaskID),
		slog.String("trigger", task.Trigger),
		slog.String("queue_task_name", c.GetHeader("X-CloudTasks-TaskName")),
	)

	h.runSync(c)
}

func (h *WakeAlertHandler) runSync(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.runner.Run(ctx, h.now())
	if err != nil {
		slog.ErrorContext(ctx, "wake alert check failed",
			slog.String("error", err.Error()),
		)
		c.String(http.StatusInternalServerError, InternalErrorString)
		return
	}

	c.String(http.StatusOK, result.Message())
}
