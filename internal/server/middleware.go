package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the request id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithRequestID attaches a request id to the context and the response headers.
// An id supplied by the caller is kept.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		reqID := req.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		writer.Header().Set(requestIDHeader, reqID)

		ctx := context.WithValue(req.Context(), requestIDKey{}, reqID)
		next.ServeHTTP(writer, req.WithContext(ctx))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// WithObservability logs every completed request and records it in the HTTP metrics.
// It must wrap the ServeMux directly so the matched route pattern is visible afterwards.
func WithObservability(next http.Handler, log *slog.Logger, appMetrics *metrics.Metrics) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(sw, req)

		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(start)

		appMetrics.Requests.WithLabelValues(req.Method, route, strconv.Itoa(sw.status)).Inc()
		appMetrics.RequestDuration.WithLabelValues(req.Method, route).Observe(duration.Seconds())

		log.InfoContext(req.Context(), "request completed",
			slog.String("request_id", RequestIDFromContext(req.Context())),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", sw.status),
			slog.Duration("duration", duration),
		)
	})
}
