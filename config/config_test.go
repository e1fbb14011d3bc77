package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_TYPE", "")
	t.Setenv("OTEL_EXPORT_INTERVAL_MS", "")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, DefaultStatsHost, cfg.StatsHost)
	assert.Equal(t, DefaultWebHost, cfg.WebHost)
	assert.Equal(t, 20, cfg.Gateway)
	assert.Equal(t, 7, cfg.Season)
	assert.Equal(t, DefaultTick, cfg.TickInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "w3dash.log", cfg.LogFile)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.OTelEnabled)
	assert.Equal(t, 30000, cfg.OTelExportIntervalMillis)
}

func TestLoad_AmbientOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/dash.log")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_TYPE", "otlp")
	t.Setenv("OTEL_EXPORT_INTERVAL_MS", "1000")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/dash.log", cfg.LogFile)
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.OTelEnabled)
	assert.Equal(t, "otlp", cfg.OTelExporterType)
	assert.Equal(t, 1000, cfg.OTelExportIntervalMillis)

	// Protocol constants never come from the environment
	assert.Equal(t, DefaultStatsHost, cfg.StatsHost)
	assert.Equal(t, DefaultTick, cfg.TickInterval)
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad export interval", "OTEL_EXPORT_INTERVAL_MS", "soon"},
		{"negative export interval", "OTEL_EXPORT_INTERVAL_MS", "-5"},
		{"unknown exporter", "OTEL_EXPORTER_TYPE", "zipkin"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OTEL_EXPORT_INTERVAL_MS", "")
			t.Setenv("OTEL_EXPORTER_TYPE", "")
			t.Setenv(tc.key, tc.value)

			cfg, err := load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestGet_ReturnsTestConfig(t *testing.T) {
	defer ResetConfig()

	testConfig := NewTestConfig()
	SetTestConfig(testConfig)

	assert.Same(t, testConfig, Get())
	assert.Equal(t, "test", Get().Environment)
}
