package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/txvault/internal/app"
	"github.com/allisson/txvault/internal/config"
)

// shutdownTimeout bounds graceful shutdown of the API and metrics servers.
const shutdownTimeout = 30 * time.Second

// server is the lifecycle shared by the API and metrics servers.
type server interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the API server, and the metrics server when enabled, and blocks
// until SIGINT/SIGTERM or a server failure. The master key is loaded before any
// listener opens, so a missing or malformed key stops startup.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	if _, err := container.MasterKey(); err != nil {
		return err
	}

	apiServer, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	servers := []server{apiServer}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers = append(servers, metricsServer)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, logger, servers...)
}

// serve starts every server and shuts all of them down when ctx is done or any of
// them fails.
func serve(ctx context.Context, logger *slog.Logger, servers ...server) error {
	serverErr := make(chan error, len(servers))
	for _, s := range servers {
		go func() {
			if err := s.Start(ctx); err != nil {
				serverErr <- err
			}
		}()
	}

	var errs []error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		errs = append(errs, err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}
