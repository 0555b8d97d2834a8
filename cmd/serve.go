package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/KasumiMercury/wake-walk-alert/internal/config"
	"github.com/KasumiMercury/wake-walk-alert/internal/handler"
	"github.com/KasumiMercury/wake-walk-alert/internal/health"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability/logging"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability/metrics"
	"github.com/KasumiMercury/wake-walk-alert/internal/observability/middleware"
)

const shutdownTimeout = 10 * time.Second

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		slog.Error("failed to start", slog.String("error", err.Error()))
		return err
	}
	defer a.close()

	if err := a.cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return err
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return err
	}

	taskQueue, cleanup, err := initTaskQueue(ctx, a.cfg, a.alertService)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("task queue cleanup error", slog.String("error", err.Error()))
		}
	}()

	wakeAlertHandler := handler.NewWakeAlertHandler(a.alertService, taskQueue)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      logging.Module("wake-alert"),
		TracerName:  "github.com/KasumiMercury/wake-walk-alert/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version).WithRedis(a.redisClient)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	r.GET("/", wakeAlertHandler.HandleIndex)
	r.GET("/wake_alert", webhookLimit(a.cfg.Webhook), wakeAlertHandler.HandleWakeAlert)
	r.POST("/tasks/wake_alert", wakeAlertHandler.HandleCheckTask)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", a.cfg.Port),
			slog.String("version", Version),
		)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return err
		}

		slog.Info("server exited properly")
		return nil

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return fmt.Errorf("server exited: %w", err)
	}
}

// webhookLimit caps how often the webhook can trigger a check.
func webhookLimit(cfg *config.WebhookConfig) gin.HandlerFunc {
	if cfg == nil || cfg.RatePerMinute == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return middleware.RateLimit(rate.NewLimiter(webhookRate(cfg.RatePerMinute), burst))
}

// webhookRate converts a per-minute count into a per-second limit.
func webhookRate(perMinute int) rate.Limit {
	return rate.Limit(float64(perMinute) / 60)
}
