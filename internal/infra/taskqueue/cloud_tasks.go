//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client         *cloudtasks.Client
	projectID      string
	locationID     string
	queueID        string
	targetURL      string
	serviceAccount string
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	// ServiceAccount is used for the OIDC token on the worker request.
	ServiceAccount string
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	return &CloudTasksClient{
		client:         client,
		projectID:      cfg.ProjectID,
		locationID:     cfg.LocationID,
		queueID:        cfg.QueueID,
		targetURL:      cfg.TargetURL,
		serviceAccount: cfg.ServiceAccount,
	}, nil
}

// EnqueueCheck creates a single HTTP task. There is no client-side retry; the
// queue itself is expected to run with max attempts of 1.
func (c *CloudTasksClient) EnqueueCheck(ctx context.Context, task *CheckTask) (*TaskResponse, error) {
	queuePath := fmt.Sprintf("projects/%s/locations/%s/queues/%s",
		c.projectID, c.locationID, c.queueID)

	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal check task: %w", err)
	}

	httpReq := &taskspb.HttpRequest{
		HttpMethod: taskspb.HttpMethod_POST,
		Url:        c.targetURL,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}
	if c.serviceAccount != "" {
		httpReq.AuthorizationHeader = &taskspb.HttpRequest_OidcToken{
			OidcToken: &taskspb.OidcToken{
				ServiceAccountEmail: c.serviceAccount,
			},
		}
	}

	cloudTask := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: httpReq,
		},
	}
	if task.TaskID != "" {
		cloudTask.Name = fmt.Sprintf("%s/tasks/%s", queuePath, task.TaskID)
	}
	if !task.RequestedAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.RequestedAt)
	}

	slog.DebugContext(ctx, "registering wake alert check to Cloud Tasks",
		slog.String("queue_path", queuePath),
		slog.String("task_id", task.TaskID),
	)

	createdTask, err := c.client.CreateTask(ctx, &taskspb.CreateTaskRequest{
		Parent: queuePath,
		Task:   cloudTask,
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("%w: %s", ErrTaskAlreadyExists, task.TaskID)
		}
		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("task_id", task.TaskID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "wake alert check registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("task_id", task.TaskID),
	)

	var scheduleTime, createTime time.Time
	if createdTask.ScheduleTime != nil {
		scheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		createTime = createdTask.CreateTime.AsTime()
	}

	return &TaskResponse{
		Name:         createdTask.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
