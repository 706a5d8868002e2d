package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/hestia/internal/config"

	"github.com/stretchr/testify/assert"
)

func Test_MustLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":3000", cfg.HTTP.Address)
	assert.Equal(t, int64(10<<20), cfg.HTTP.BodyLimit)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 8080, cfg.Monitoring.Port)
	assert.Empty(t, cfg.Log.File)
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.Equal(t, "http://localhost:3000", cfg.Client.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
}

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HESTIA_ENV", "production")
	t.Setenv("HESTIA_HTTP_ADDRESS", ":9000")
	t.Setenv("HESTIA_HTTP_BODY_LIMIT", "1024")
	t.Setenv("HESTIA_HTTP_CORS_ORIGINS", "http://localhost:5173, http://localhost:3000")
	t.Setenv("HESTIA_CLIENT_BASE_URL", "http://api.local:3000/")
	t.Setenv("HESTIA_CLIENT_TIMEOUT", "2s")

	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, int64(1024), cfg.HTTP.BodyLimit)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "http://api.local:3000", cfg.Client.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Client.Timeout)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	dir := filet.TmpDir(t, "")
	path := filepath.Join(dir, "config.yaml")
	filet.File(t, path, `
env: development
http:
  address: ":4000"
  write_timeout: 30s
monitoring:
  port: 9100
log:
  file: /tmp/hestia.log
tracing:
  endpoint: collector:4318
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HESTIA_MONITORING_PORT", "9200")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":4000", cfg.HTTP.Address)
	assert.Equal(t, 30*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 9200, cfg.Monitoring.Port, "environment must override the file")
	assert.Equal(t, "/tmp/hestia.log", cfg.Log.File)
	assert.Equal(t, "collector:4318", cfg.Tracing.Endpoint)
}

func TestMustLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/definitely/not/here.yaml")

	assert.PanicsWithValue(t, "config file does not exist: /definitely/not/here.yaml", func() {
		config.MustLoad()
	})
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HESTIA_CLIENT_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse client.timeout from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_BodyLimitError(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HESTIA_HTTP_BODY_LIMIT", "-1")

	assert.PanicsWithValue(t, "failed to parse http.body_limit from configuration", func() {
		config.MustLoad()
	})
}
