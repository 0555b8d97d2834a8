//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/KasumiMercury/wake-walk-alert/internal/config"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/taskqueue"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability/logging"
)

const inProcessCheckTimeout = 2 * time.Minute

func loadEnvFile() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", slog.String("error", err.Error()))
	}
}

func initTaskQueue(_ context.Context, _ *config.Config, runner taskqueue.CheckRunner) (taskqueue.TaskQueue, func() error, error) {
	dispatcher := taskqueue.NewDispatcher(runner, inProcessCheckTimeout)

	slog.Info("task queue initialized",
		slog.String("type", "in_process"),
	)

	cleanup := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return dispatcher.Close(ctx)
	}

	return dispatcher, cleanup, nil
}

func initObservability(ctx context.Context, cfg *config.Config) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "wake-walk-alert"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: logging.Module("wake-alert"),
		LogLevel:      cfg.LogLevel,
	})
}
