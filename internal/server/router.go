package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 10 * time.Second

// NewAPIHandler builds the employee API with its middleware chain:
// tracing -> CORS -> request id -> logging and metrics -> routes.
func NewAPIHandler(
	log *slog.Logger,
	staff EmployeeService,
	appMetrics *metrics.Metrics,
	cfg config.HTTPConfig,
) http.Handler {
	mux := http.NewServeMux()
	NewEmployeeHandler(staff, cfg.BodyLimit, log).Register(mux)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	handler := WithObservability(mux, log, appMetrics)
	handler = WithRequestID(handler)
	handler = corsHandler.Handler(handler)

	return otelhttp.NewHandler(handler, "hestia-api")
}

// StartAPIServer serves handler on cfg.Address until ctx is cancelled, then shuts down gracefully.
func StartAPIServer(ctx context.Context, log *slog.Logger, handler http.Handler, cfg config.HTTPConfig) error {
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "Employee API listening", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("employee API server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil { //nolint:contextcheck // parent is already done
		log.ErrorContext(ctx, "Employee API shutdown failed", sl.Err(err))
		return fmt.Errorf("failed to shut down employee API: %w", err)
	}
	log.InfoContext(ctx, "Employee API stopped")

	return nil
}
