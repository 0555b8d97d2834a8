package taskqueue

import (
	"errors"
	"time"
)

const (
	TriggerWebhook = "webhook"
	TriggerCLI     = "cli"
)

var (
	ErrQueueClosed       = errors.New("task queue closed")
	ErrTaskAlreadyExists = errors.New("task already exists")
)

type CheckTask struct {
	TaskID      string    `json:"task_id"`
	RequestedAt time.Time `json:"requested_at"`
	Trigger     string    `json:"trigger"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}
