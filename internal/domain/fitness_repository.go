package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=fitness_repository.go -destination=fitness_repository_mock.go -package=domain

type FitnessRepository interface {
	GetSleepObservations(ctx context.Context, start, end time.Time) ([]SleepObservation, error)
	GetStepObservations(ctx context.Context, start, end time.Time) ([]StepObservation, error)
}
