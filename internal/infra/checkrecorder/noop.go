package checkrecorder

import (
	"context"

	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.CheckResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordCheck(_ context.Context, _ domain.CheckRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
