package server_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockStore struct {
	Records int
}

func (m *MockStore) Count() int {
	return m.Records
}

func TestHealthChecker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("store ok", func(t *testing.T) {
		healthChecker := server.NewHealthChecker(&MockStore{Records: 3}, logger)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		expectedBody := `{"store":"ok","employees":"3"}`
		require.JSONEq(t, expectedBody, rr.Body.String())
	})

	t.Run("store unavailable", func(t *testing.T) {
		healthChecker := server.NewHealthChecker(nil, logger)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()

		healthChecker.ServeHTTP(rr, req)

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		expectedBody := `{"store":"unavailable"}`
		require.JSONEq(t, expectedBody, rr.Body.String())
	})
}

func TestMonitoringMux(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)
	appMetrics.StoredEmployees.Set(2)

	mux := server.NewMonitoringMux(logger, reg, &MockStore{Records: 2})

	t.Run("metrics", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "hestia_stored_employees 2")
	})

	t.Run("healthz", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		require.JSONEq(t, `{"store":"ok","employees":"2"}`, rr.Body.String())
	})
}
