//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

// Validate requires the Cloud Tasks queue coordinates and the worker URL the
// queued check is delivered to.
func (c *TaskQueueConfig) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{"GCLOUD_PROJECT_ID", c.GCloudProjectID},
		{"GCLOUD_LOCATION_ID", c.GCloudLocationID},
		{"GCLOUD_QUEUE_ID", c.GCloudQueueID},
		{"GCLOUD_TARGET_URL", c.GCloudTargetURL},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, errors.New(r.env+" is required"))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
