package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/UnknownOlympus/hestia/internal/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"

	serviceName = "hestia"
)

// main is the entry point of the employee API server.
func main() {
	var wgr sync.WaitGroup
	delta := 2

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env, logOutput(cfg.Log))

	shutdownTracing, err := tracing.Init(ctx, logger, cfg.Tracing.Endpoint, serviceName, cfg.Env)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize tracing", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		if err = shutdownTracing(context.Background()); err != nil {
			logger.Error("Failed to flush traces", sl.Err(err))
		}
	}()

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	employeeRepo := repository.NewEmployeeRepository(appMetrics)
	staff := employees.NewStaff(logger, employeeRepo, appMetrics)
	handler := server.NewAPIHandler(logger, staff, appMetrics, cfg.HTTP)

	wgr.Add(delta)

	go func() {
		defer wgr.Done()
		server.StartMonitoringServer(ctx, logger, reg, employeeRepo, cfg.Monitoring.Port)
	}()

	go func() {
		defer wgr.Done()
		if err := server.StartAPIServer(ctx, logger, handler, cfg.HTTP); err != nil {
			logger.ErrorContext(ctx, "Employee API failed", sl.Err(err))
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	wgr.Wait()

	logger.InfoContext(ctx, "Application stopped gracefully...")
}

// logOutput returns stdout, fanned out to a rotated file when one is configured.
func logOutput(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}

	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string, out io.Writer) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{Key: "", Value: slog.Value{}}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelWarn, ReplaceAttr: dropTime}))
	default:
		log = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelError, ReplaceAttr: dropTime}))

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}
