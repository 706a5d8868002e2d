package metrics_test

import (
	"testing"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	appMetrics := metrics.NewMetrics(reg)
	require.NotNil(t, appMetrics)

	appMetrics.StoredEmployees.Set(3)
	appMetrics.ValidationFailures.WithLabelValues("email").Inc()

	assert.InDelta(t, 3, testutil.ToFloat64(appMetrics.StoredEmployees), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.ValidationFailures.WithLabelValues("email")), 0)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = metrics.NewMetrics(reg)

	assert.Panics(t, func() {
		metrics.NewMetrics(reg)
	})
}
