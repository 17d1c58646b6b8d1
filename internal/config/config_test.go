package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"ECOMDASH_SERVER_PORT", "ECOMDASH_SERVER_READ_TIMEOUT", "ECOMDASH_SERVER_WRITE_TIMEOUT",
	"ECOMDASH_SECURITY_ALLOWED_ORIGINS", "ECOMDASH_SECURITY_ENABLE_CORS",
	"ECOMDASH_SECURITY_RATE_LIMIT_RPS",
	"ECOMDASH_LOGGING_LEVEL", "ECOMDASH_LOGGING_FORMAT", "ECOMDASH_LOGGING_OUTPUT",
	"ECOMDASH_DATASET_SOURCE", "ECOMDASH_DATASET_SHEET",
	"ECOMDASH_TELEMETRY_TRACE_EXPORTER", "ECOMDASH_TELEMETRY_METRIC_EXPORTER",
	"ECOMDASH_TELEMETRY_SAMPLE_RATIO",
	"ECOMDASH_CONFIG_FILE",
}

// clearConfigEnv unsets every variable Load reads and restores them after the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, name := range configEnvVars {
		if val, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, val) })
		} else {
			t.Cleanup(func() { os.Unsetenv(name) })
		}
		os.Unsetenv(name)
	}
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		fileContent string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "default configuration with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
				assert.Equal(t, 1048576, cfg.Server.MaxHeaderBytes)
				assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)

				assert.Equal(t, []string{"http://localhost:8080"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.EnableCORS)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, 100.0, cfg.Security.RateLimit.RPS)
				assert.Equal(t, 50, cfg.Security.RateLimit.Burst)

				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)

				assert.Equal(t, "data/all_data.csv", cfg.Dataset.Source)
				assert.Empty(t, cfg.Dataset.Sheet)

				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
				assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
				assert.Equal(t, 1.0, cfg.Telemetry.SampleRatio)
			},
		},
		{
			name: "custom environment variables",
			env: map[string]string{
				"ECOMDASH_SERVER_PORT":              "9090",
				"ECOMDASH_SERVER_READ_TIMEOUT":      "30s",
				"ECOMDASH_SECURITY_ALLOWED_ORIGINS": "http://example.com,https://example.com",
				"ECOMDASH_SECURITY_ENABLE_CORS":     "false",
				"ECOMDASH_LOGGING_LEVEL":            "debug",
				"ECOMDASH_LOGGING_FORMAT":           "text",
				"ECOMDASH_DATASET_SOURCE":           "/srv/data/orders.xlsx",
				"ECOMDASH_DATASET_SHEET":            "orders",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, []string{"http://example.com", "https://example.com"}, cfg.Security.AllowedOrigins)
				assert.False(t, cfg.Security.EnableCORS)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format) // validate() forces json
				assert.Equal(t, "/srv/data/orders.xlsx", cfg.Dataset.Source)
				assert.Equal(t, "orders", cfg.Dataset.Sheet)
			},
		},
		{
			name:    "invalid port number",
			env:     map[string]string{"ECOMDASH_SERVER_PORT": "99999"},
			wantErr: true,
		},
		{
			name:    "zero port number",
			env:     map[string]string{"ECOMDASH_SERVER_PORT": "0"},
			wantErr: true,
		},
		{
			name:    "malformed duration",
			env:     map[string]string{"ECOMDASH_SERVER_READ_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "unsupported trace exporter",
			env:     map[string]string{"ECOMDASH_TELEMETRY_TRACE_EXPORTER": "zipkin"},
			wantErr: true,
		},
		{
			name:    "sample ratio out of range",
			env:     map[string]string{"ECOMDASH_TELEMETRY_SAMPLE_RATIO": "1.5"},
			wantErr: true,
		},
		{
			name: "config file fills values not set in env",
			fileContent: `
server:
  port: 7070
logging:
  level: warn
  output: both
  file_path: /tmp/ecomdash/app.log
dataset:
  source: fixtures/orders.csv
telemetry:
  trace_exporter: stdout
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.Equal(t, "/tmp/ecomdash/app.log", cfg.Logging.FilePath)
				assert.Equal(t, "fixtures/orders.csv", cfg.Dataset.Source)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "environment wins over config file",
			env:  map[string]string{"ECOMDASH_SERVER_PORT": "9191"},
			fileContent: `
server:
  port: 7070
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9191, cfg.Server.Port)
			},
		},
		{
			name:        "invalid yaml",
			fileContent: "server: [port",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)

			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			if tt.fileContent != "" {
				path := filepath.Join(t.TempDir(), "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.fileContent), 0644))
				os.Setenv("ECOMDASH_CONFIG_FILE", path)
			}

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty dataset source",
			mutate:  func(c *Config) { c.Dataset.Source = "  " },
			wantErr: "dataset path is required",
		},
		{
			name:    "cors without origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "allowed origin",
		},
		{
			name:   "cors disabled without origins",
			mutate: func(c *Config) { c.Security.EnableCORS = false; c.Security.AllowedOrigins = nil },
		},
		{
			name:    "non-positive rate limit",
			mutate:  func(c *Config) { c.Security.RateLimit.RPS = 0 },
			wantErr: "rate limit",
		},
		{
			name:    "unsupported metric exporter",
			mutate:  func(c *Config) { c.Telemetry.MetricExporter = "statsd" },
			wantErr: "unsupported metric exporter",
		},
		{
			name:    "negative write timeout",
			mutate:  func(c *Config) { c.Server.WriteTimeout = -time.Second },
			wantErr: "write timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_NormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "syslog"

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)

	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""
	require.NoError(t, cfg.validate())
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}
