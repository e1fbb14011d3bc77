package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// W3Champions protocol constants
const (
	DefaultStatsHost = "https://statistic-service.w3champions.com"
	DefaultWebHost   = "https://website-backend.w3champions.com"
	DefaultGateway   = 20
	DefaultSeason    = 7
	DefaultTick      = 5 * time.Second
)

// Config holds all application configuration
type Config struct {
	// Statistics service
	StatsHost string
	WebHost   string
	Gateway   int
	Season    int

	// Refresh interval between redraws
	TickInterval time.Duration

	// Logging configuration
	LogLevel string
	LogFile  string // the terminal owns stdout, so logs go here

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load builds the configuration from the protocol defaults and the environment
func load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	config := &Config{
		StatsHost:    DefaultStatsHost,
		WebHost:      DefaultWebHost,
		Gateway:      DefaultGateway,
		Season:       DefaultSeason,
		TickInterval: DefaultTick,

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
		LogFile:  getEnvWithDefault("LOG_FILE", "w3dash.log"),

		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "w3dash"),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelExportIntervalMillis: 30000,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		parsed, err := strconv.Atoi(interval)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("OTEL_EXPORT_INTERVAL_MS must be a positive integer, got %q", interval)
		}
		config.OTelExportIntervalMillis = parsed
	}

	switch config.OTelExporterType {
	case "console", "otlp", "none":
	default:
		return nil, fmt.Errorf("unknown OTEL_EXPORTER_TYPE %q", config.OTelExporterType)
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		StatsHost:        "http://127.0.0.1",
		WebHost:          "http://127.0.0.1",
		Gateway:          DefaultGateway,
		Season:           DefaultSeason,
		TickInterval:     10 * time.Millisecond,
		LogLevel:         "debug",
		OTelServiceName:  "w3dash-test",
		OTelExporterType: "none",
		Environment:      "test",
	}
}
