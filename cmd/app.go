package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/wake-walk-alert/internal/config"
	"github.com/KasumiMercury/wake-walk-alert/internal/domain"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/checkrecorder"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/googleauth"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/googlefit"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/pushbullet"
	"github.com/KasumiMercury/wake-walk-alert/internal/infra/repository"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability/metrics"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/alert"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/steps"
	"github.com/KasumiMercury/wake-walk-alert/internal/service/wake"
)

// app holds everything a wake alert check needs, shared by serve and check.
type app struct {
	cfg          *config.Config
	obs          *observability.Resources
	redisClient  *redis.Client
	recorder     domain.CheckResultRecorder
	alertService *alert.Service
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	slog.SetDefault(obs.Logger())

	a := &app{cfg: cfg, obs: obs}

	if err := config.ValidateForRun(cfg); err != nil {
		a.close()
		return nil, err
	}

	alertMetrics, err := metrics.NewAlertMetrics()
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize alert metrics: %w", err)
	}

	a.redisClient, err = newRedisClient(ctx, cfg.Redis)
	if err != nil {
		a.close()
		return nil, err
	}

	a.recorder, err = checkrecorder.NewRecorder(ctx, checkrecorder.LoadConfig())
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize check result recorder: %w", err)
	}

	tokenSource, err := googleauth.NewTokenSource(ctx, googleauth.Config{
		ClientID:     cfg.Fit.ClientID,
		ClientSecret: cfg.Fit.ClientSecret,
		RefreshToken: cfg.Fit.RefreshToken,
		TokenURL:     cfg.Fit.TokenURL,
	}, repository.NewTokenRepository(a.redisClient, cfg.Redis.KeyPrefix))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize google token source: %w", err)
	}

	fitClient, err := googlefit.NewClient(ctx, googleauth.NewHTTPClient(tokenSource), googlefit.ClientConfig{
		Endpoint:         cfg.Fit.Endpoint,
		StepStreamMatch:  cfg.Fit.StepStreamMatch,
		SleepStreamMatch: cfg.Fit.SleepStreamMatch,
		DataSourceTTL:    cfg.Fit.DataSourceTTL,
	})
	if err != nil {
		a.close()
		return nil, err
	}

	notifier := pushbullet.NewClient(pushbullet.Config{
		Token:   cfg.Pushbullet.Token,
		BaseURL: cfg.Pushbullet.BaseURL,
		Timeout: cfg.Pushbullet.Timeout,
	})

	a.alertService = alert.NewService(
		fitClient,
		wake.NewAnalyzer(wake.Config{
			MergeGap:    cfg.Alert.MergeGap,
			MinSegment:  cfg.Alert.MinSegment,
			SleepStages: cfg.Alert.SleepStages,
		}),
		steps.NewEvaluator(steps.Config{
			Window:    cfg.Alert.Window,
			Threshold: cfg.Alert.StepThreshold,
		}),
		notifier,
		repository.NewCheckLockRepository(a.redisClient, cfg.Redis.KeyPrefix, cfg.Alert.CheckLockTTL),
		a.recorder,
		alertMetrics,
		alert.Config{
			SleepLookback:   cfg.Alert.SleepLookback,
			DisplayLocation: cfg.Alert.DisplayLocation(),
		},
	)

	slog.InfoContext(ctx, "wake alert check configured",
		slog.Int64("step_threshold", cfg.Alert.StepThreshold),
		slog.Duration("merge_gap", cfg.Alert.MergeGap),
		slog.Duration("min_segment", cfg.Alert.MinSegment),
		slog.Duration("window", cfg.Alert.Window),
		slog.Duration("sleep_lookback", cfg.Alert.SleepLookback),
	)

	return a, nil
}

func newRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		slog.ErrorContext(ctx, "failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(client); err != nil {
		slog.ErrorContext(ctx, "failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	slog.InfoContext(ctx, "redis connected",
		slog.String("addr", cfg.Addr),
		slog.Bool("tls", cfg.TLS),
	)

	return client, nil
}

func (a *app) close() {
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			slog.Warn("failed to close check result recorder", slog.String("error", err.Error()))
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}

	if a.obs != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}
}
