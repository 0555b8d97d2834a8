//go:build !gcloud

package config

// Validate is a no-op locally: checks run on the in-process dispatcher.
func (c *TaskQueueConfig) Validate() error {
	return nil
}
