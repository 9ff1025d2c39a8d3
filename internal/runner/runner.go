// Package runner provides the shared command lifecycle.
// Commands delegate to runner.Run for signal handling, config loading,
// observability init, and ordered shutdown.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aelexs/timeval/internal/config"
	"github.com/aelexs/timeval/internal/observability"
)

// ShutdownOTELTimeout bounds the final flush of spans and metrics.
const ShutdownOTELTimeout = 5 * time.Second

// Version is reported as the service.version resource attribute.
const Version = "0.1.0"

// Task is the command body. It runs once with loaded config and logger.
type Task func(ctx context.Context, cfg *config.Config, logger *slog.Logger) error

// Params configures a command's lifecycle runner.
type Params struct {
	// Name identifies the command in logs and telemetry.
	Name string

	// Task is the work to run.
	Task Task

	// LogWriter receives log lines. Nil means stderr.
	LogWriter io.Writer
}

// Run executes the full command lifecycle: signal handling, config loading,
// observability initialization, the task itself, and the telemetry flush.
// The task's error is returned unchanged so callers can classify it.
func Run(ctx context.Context, p Params) error {
	// Signal-based cancellation: ctx.Done() closes on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	serviceName := cfg.OTEL.ServiceName
	if serviceName == "" {
		serviceName = p.Name
	}

	// Initialize structured logging with secret redaction
	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Writer:      p.LogWriter,
	})

	// --- Startup order: tracer -> metrics -> task ---
	providers, err := observability.InitOTEL(ctx, observability.OTELConfig{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}

	// Flush uses a fresh context: ctx may already be cancelled by a signal.
	defer func() {
		otelCtx, cancel := context.WithTimeout(context.Background(), ShutdownOTELTimeout)
		defer cancel()
		if shutdownErr := providers.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to flush telemetry", slog.String("error", shutdownErr.Error()))
		}
	}()

	// --- Structured concurrency via errgroup ---
	done := make(chan struct{})
	g, taskCtx := errgroup.WithContext(ctx)

	// Goroutine 1: the task itself
	g.Go(func() error {
		defer close(done)
		logger.Debug("starting task", slog.String("command", p.Name))
		return p.Task(taskCtx, cfg, logger)
	})

	// Goroutine 2: shutdown watch. On a signal, restore default signal
	// handling so a second SIGINT kills the process while the task drains.
	g.Go(func() error {
		select {
		case <-done:
		case <-ctx.Done():
			stop()
			logger.Info("received shutdown signal, waiting for task to stop")
			<-done
		}
		return nil
	})

	return g.Wait()
}
