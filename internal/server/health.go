package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StoreCounter reports how many records the store currently holds.
type StoreCounter interface {
	Count() int
}

type HealthChecker struct {
	store StoreCounter
	log   *slog.Logger
}

func NewHealthChecker(store StoreCounter, log *slog.Logger) *HealthChecker {
	return &HealthChecker{
		store: store,
		log:   log,
	}
}

func (h *HealthChecker) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	h.log.DebugContext(req.Context(), "Performing health checks...")

	status := make(map[string]string)
	overallStatus := http.StatusOK

	if h.store == nil {
		status["store"] = "unavailable"
		overallStatus = http.StatusServiceUnavailable
		h.log.WarnContext(req.Context(), "Health check failed: store is not initialized")
	} else {
		status["store"] = "ok"
		status["employees"] = strconv.Itoa(h.store.Count())
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(overallStatus)
	if err := json.NewEncoder(writer).Encode(status); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write health check response", sl.Err(err))
	}

	h.log.DebugContext(req.Context(), "Health checks completed", "status", overallStatus)
}

// NewMonitoringMux exposes /metrics for reg and /healthz for store.
func NewMonitoringMux(log *slog.Logger, reg *prometheus.Registry, store StoreCounter) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	mux.Handle("GET /healthz", NewHealthChecker(store, log))

	return mux
}

// StartMonitoringServer serves the monitoring endpoints on port until ctx is cancelled.
func StartMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	store StoreCounter,
	port int,
) {
	readTimeout := 5 * time.Second
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewMonitoringMux(log, reg, store),
		ReadHeaderTimeout: readTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil { //nolint:contextcheck // parent is already done
			log.ErrorContext(ctx, "Monitoring server shutdown failed", sl.Err(err))
		}
	}()

	log.InfoContext(ctx, "Monitoring server listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Monitoring server failed", sl.Err(err))
	}
	log.InfoContext(ctx, "Monitoring server stopped")
}
