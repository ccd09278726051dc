// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Inference backend configuration
	Inference InferenceConfig

	// Advisory (conversational) upstream configuration
	Advisory AdvisoryConfig

	// Store configuration
	Store StoreConfig

	// Intake contains request intake limits.
	Intake IntakeConfig

	// Reference holds optional overrides for the static lookup tables.
	Reference ReferenceData
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP port to listen on.
	Port string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
}

// InferenceConfig contains classification backend settings.
type InferenceConfig struct {
	// APIKey authenticates against the inference backends.
	APIKey string

	// Backends is the ordered list of model endpoint URLs. The specialized
	// model comes first, general-purpose fallbacks after it.
	Backends []string

	// Timeout is the per-backend request timeout.
	Timeout time.Duration

	// MockMode enables canned classifications for testing without API calls.
	MockMode bool
}

// AdvisoryConfig contains settings for the conversational upstream.
type AdvisoryConfig struct {
	// URL is the chat completions endpoint.
	URL string

	// APIKey authenticates against the advisory upstream.
	APIKey string

	// Model is the model identifier sent with chat-shaped payloads.
	Model string

	// MaxAttempts is the attempt ceiling per request.
	MaxAttempts int

	// Timeout is the per-attempt timeout.
	Timeout time.Duration

	// BaseDelay scales the backoff between attempts (delay = attempt * BaseDelay).
	BaseDelay time.Duration

	// SingleSchema retries one payload shape instead of varying shapes
	// across attempts.
	SingleSchema bool
}

// StoreConfig contains record store settings.
type StoreConfig struct {
	// DBPath is the sqlite database file path.
	DBPath string

	// AlertPurgeSchedule is the cron expression for purging expired alerts.
	AlertPurgeSchedule string
}

// IntakeConfig contains request intake limits.
type IntakeConfig struct {
	// MaxImageSize is the maximum accepted image payload in bytes.
	MaxImageSize int
}

// Load reads configuration from environment variables, then applies the
// optional YAML reference-data overlay.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8080"),
			ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 60*time.Second),
		},
		Inference: InferenceConfig{
			APIKey: os.Getenv("INFERENCE_API_KEY"),
			Backends: getListOrDefault("INFERENCE_BACKENDS", []string{
				"https://api-inference.huggingface.co/models/microsoft/resnet-50",
				"https://api-inference.huggingface.co/models/google/vit-base-patch16-224",
			}),
			Timeout:  getDurationOrDefault("INFERENCE_TIMEOUT", 20*time.Second),
			MockMode: getBoolOrDefault("INFERENCE_MOCK_MODE", false),
		},
		Advisory: AdvisoryConfig{
			URL:          getEnvOrDefault("ADVISORY_URL", "https://openrouter.ai/api/v1/chat/completions"),
			APIKey:       os.Getenv("ADVISORY_API_KEY"),
			Model:        getEnvOrDefault("ADVISORY_MODEL", "deepseek/deepseek-r1:free"),
			MaxAttempts:  getIntOrDefault("ADVISORY_MAX_ATTEMPTS", 3),
			Timeout:      getDurationOrDefault("ADVISORY_TIMEOUT", 30*time.Second),
			BaseDelay:    getDurationOrDefault("ADVISORY_BASE_DELAY", time.Second),
			SingleSchema: getBoolOrDefault("ADVISORY_SINGLE_SCHEMA", false),
		},
		Store: StoreConfig{
			DBPath:             getEnvOrDefault("DB_PATH", "cropadvisor.db"),
			AlertPurgeSchedule: getEnvOrDefault("ALERT_PURGE_SCHEDULE", "0 3 * * *"),
		},
		Intake: IntakeConfig{
			MaxImageSize: getIntOrDefault("MAX_IMAGE_SIZE", 10<<20), // 10 MiB
		},
	}

	if path := os.Getenv("REFERENCE_DATA_PATH"); path != "" {
		ref, err := LoadReferenceData(path)
		if err != nil {
			return nil, fmt.Errorf("%w: reference data: %v", domain.ErrInvalidConfig, err)
		}
		cfg.Reference = *ref
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	// Inference API key is required unless in mock mode
	if !c.Inference.MockMode && c.Inference.APIKey == "" {
		return fmt.Errorf("%w: INFERENCE_API_KEY is required when not in mock mode", domain.ErrInvalidConfig)
	}

	if len(c.Inference.Backends) == 0 {
		return fmt.Errorf("%w: INFERENCE_BACKENDS must list at least one endpoint", domain.ErrInvalidConfig)
	}

	if c.Inference.Timeout < time.Second {
		return fmt.Errorf("%w: INFERENCE_TIMEOUT must be at least 1 second", domain.ErrInvalidConfig)
	}

	if c.Advisory.MaxAttempts < 1 {
		return fmt.Errorf("%w: ADVISORY_MAX_ATTEMPTS must be at least 1", domain.ErrInvalidConfig)
	}

	if c.Advisory.Timeout < time.Second {
		return fmt.Errorf("%w: ADVISORY_TIMEOUT must be at least 1 second", domain.ErrInvalidConfig)
	}

	if c.Advisory.BaseDelay < 0 {
		return fmt.Errorf("%w: ADVISORY_BASE_DELAY must not be negative", domain.ErrInvalidConfig)
	}

	if c.Intake.MaxImageSize < 1024 {
		return fmt.Errorf("%w: MAX_IMAGE_SIZE must be at least 1024 bytes", domain.ErrInvalidConfig)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

func getDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		// Try parsing as seconds first (e.g., "15")
		if secs, err := strconv.Atoi(val); err == nil {
			return time.Duration(secs) * time.Second
		}
		// Try parsing as duration string (e.g., "15s", "1m")
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
