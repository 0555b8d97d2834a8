package domain

import "context"

//go:generate mockgen -source=check_result_recorder.go -destination=check_result_recorder_mock.go -package=domain

type CheckResultRecorder interface {
	RecordCheck(ctx context.Context, record CheckRecord) error
	Close() error
}
