package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "HESTIA"

type Config struct {
	Env        string           `yaml:"env"`        // Env is the current environment: local, development, production.
	HTTP       HTTPConfig       `yaml:"http"`       // HTTP holds the employee API server configuration.
	Monitoring MonitoringConfig `yaml:"monitoring"` // Monitoring holds the metrics and health server configuration.
	Log        LogConfig        `yaml:"log"`        // Log holds optional log file rotation settings.
	Tracing    TracingConfig    `yaml:"tracing"`    // Tracing holds the OTLP exporter configuration.
	Client     ClientConfig     `yaml:"client"`     // Client holds the terminal client configuration.
}

// HTTPConfig struct holds the configuration of the employee API server.
type HTTPConfig struct {
	Address      string        `yaml:"address"`       // Address is the listen address, e.g. `:3000`.
	BodyLimit    int64         `yaml:"body_limit"`    // BodyLimit is the largest accepted request body in bytes.
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // ReadTimeout bounds reading a full request.
	WriteTimeout time.Duration `yaml:"write_timeout"` // WriteTimeout bounds writing a response.
	CORSOrigins  []string      `yaml:"cors_origins"`  // CORSOrigins lists the allowed browser origins.
}

// MonitoringConfig struct holds the configuration of the monitoring server.
type MonitoringConfig struct {
	Port int `yaml:"port"` // Port serves /metrics and /healthz.
}

// LogConfig struct holds the log file configuration. An empty File logs to stdout only.
type LogConfig struct {
	File       string `yaml:"file"`        // File is the rotated log file path.
	MaxSizeMB  int    `yaml:"max_size_mb"` // MaxSizeMB is the size that triggers rotation.
	MaxBackups int    `yaml:"max_backups"` // MaxBackups is the number of rotated files kept.
}

// TracingConfig struct holds the OTLP exporter configuration. An empty Endpoint disables tracing.
type TracingConfig struct {
	Endpoint string `yaml:"endpoint"` // Endpoint is the OTLP/HTTP collector host:port.
}

// ClientConfig struct holds the configuration of the terminal client.
type ClientConfig struct {
	BaseURL string        `yaml:"base_url"` // BaseURL is the employee API root, e.g. `http://localhost:3000`.
	Timeout time.Duration `yaml:"timeout"`  // Timeout bounds every API call.
}

// MustLoad loads the configuration from an optional YAML file named by CONFIG_PATH, environment
// variables prefixed with HESTIA_ and defaults, in that order of precedence (lowest last).
// It panics when the configuration cannot be read or parsed.
func MustLoad() *Config {
	vpr := viper.New()
	setDefaults(vpr)

	vpr.SetEnvPrefix(envPrefix)
	vpr.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vpr.AutomaticEnv()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			panic("config file does not exist: " + configPath)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			panic("config error: " + err.Error())
		}
	}

	return &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Address:      vpr.GetString("http.address"),
			BodyLimit:    mustPositiveInt64(vpr, "http.body_limit"),
			ReadTimeout:  mustDuration(vpr, "http.read_timeout"),
			WriteTimeout: mustDuration(vpr, "http.write_timeout"),
			CORSOrigins:  stringList(vpr, "http.cors_origins"),
		},
		Monitoring: MonitoringConfig{
			Port: vpr.GetInt("monitoring.port"),
		},
		Log: LogConfig{
			File:       vpr.GetString("log.file"),
			MaxSizeMB:  vpr.GetInt("log.max_size_mb"),
			MaxBackups: vpr.GetInt("log.max_backups"),
		},
		Tracing: TracingConfig{
			Endpoint: vpr.GetString("tracing.endpoint"),
		},
		Client: ClientConfig{
			BaseURL: strings.TrimRight(vpr.GetString("client.base_url"), "/"),
			Timeout: mustDuration(vpr, "client.timeout"),
		},
	}
}

func setDefaults(vpr *viper.Viper) {
	defBodyLimit := 10 << 20
	defTimeout := 15 * time.Second
	defClientTimeout := 10 * time.Second

	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.address", ":3000")
	vpr.SetDefault("http.body_limit", defBodyLimit)
	vpr.SetDefault("http.read_timeout", defTimeout)
	vpr.SetDefault("http.write_timeout", defTimeout)
	vpr.SetDefault("http.cors_origins", []string{"*"})
	vpr.SetDefault("monitoring.port", 8080)
	vpr.SetDefault("log.file", "")
	vpr.SetDefault("log.max_size_mb", 10)
	vpr.SetDefault("log.max_backups", 5)
	vpr.SetDefault("tracing.endpoint", "")
	vpr.SetDefault("client.base_url", "http://localhost:3000")
	vpr.SetDefault("client.timeout", defClientTimeout)
}

// mustDuration accepts Go duration strings ("15s") and panics on anything else.
func mustDuration(vpr *viper.Viper, key string) time.Duration {
	if raw, ok := vpr.Get(key).(string); ok {
		duration, err := time.ParseDuration(raw)
		if err != nil {
			panic("failed to parse " + key + " from configuration")
		}
		return duration
	}

	return vpr.GetDuration(key)
}

func mustPositiveInt64(vpr *viper.Viper, key string) int64 {
	value := vpr.GetInt64(key)
	if value <= 0 {
		panic("failed to parse " + key + " from configuration")
	}
	return value
}

// stringList reads a list from YAML or a comma separated environment variable.
func stringList(vpr *viper.Viper, key string) []string {
	var out []string
	for _, item := range vpr.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
