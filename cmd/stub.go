package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/KasumiMercury/wake-walk-alert/internal/observability/logging"
	"github.com/KasumiMercury/wake-walk-alert/internal/stub"
)

func stubCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run a local Google Fit and Pushbullet emulator",
		Long: "Serves the Fitness API, the OAuth token endpoint and Pushbullet pushes from memory.\n" +
			"Point GOOGLE_FIT_ENDPOINT at <url>/fitness/v1/users/, GOOGLE_TOKEN_URL at <url>/token\n" +
			"and PUSHBULLET_BASE_URL at <url>.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStub(cmd.Context(), port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "8090", "port to listen on")

	return cmd
}

func runStub(parent context.Context, port string) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.SetDefault(slog.New(logging.NewHandler(os.Stdout, logging.HandlerConfig{
		Service:     logging.ServiceInfo{Name: "wake-walk-alert-stub", Version: Version},
		Environment: logging.EnvDev,
	})))

	r := gin.New()
	r.Use(gin.Recovery())
	stub.NewHandler(stub.NewStorage()).Register(r)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting stub server", slog.String("port", port))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
