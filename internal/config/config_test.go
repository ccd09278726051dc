package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/growsmart/cropadvisor/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INFERENCE_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if len(cfg.Inference.Backends) != 2 {
		t.Errorf("Backends = %v, want two defaults", cfg.Inference.Backends)
	}
	if cfg.Advisory.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.Advisory.MaxAttempts)
	}
	if cfg.Advisory.BaseDelay != time.Second {
		t.Errorf("BaseDelay = %v, want 1s", cfg.Advisory.BaseDelay)
	}
	if cfg.Store.AlertPurgeSchedule != "0 3 * * *" {
		t.Errorf("AlertPurgeSchedule = %q", cfg.Store.AlertPurgeSchedule)
	}
	if cfg.Intake.MaxImageSize != 10<<20 {
		t.Errorf("MaxImageSize = %d, want %d", cfg.Intake.MaxImageSize, 10<<20)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("INFERENCE_API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("INFERENCE_BACKENDS", "https://a.example/model, https://b.example/model ,")
	t.Setenv("INFERENCE_TIMEOUT", "15")
	t.Setenv("ADVISORY_TIMEOUT", "45s")
	t.Setenv("ADVISORY_MAX_ATTEMPTS", "5")
	t.Setenv("ADVISORY_SINGLE_SCHEMA", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	want := []string{"https://a.example/model", "https://b.example/model"}
	if len(cfg.Inference.Backends) != 2 || cfg.Inference.Backends[0] != want[0] || cfg.Inference.Backends[1] != want[1] {
		t.Errorf("Backends = %v, want %v", cfg.Inference.Backends, want)
	}
	// Bare integers are seconds, duration strings parse as written.
	if cfg.Inference.Timeout != 15*time.Second {
		t.Errorf("Inference.Timeout = %v, want 15s", cfg.Inference.Timeout)
	}
	if cfg.Advisory.Timeout != 45*time.Second {
		t.Errorf("Advisory.Timeout = %v, want 45s", cfg.Advisory.Timeout)
	}
	if cfg.Advisory.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.Advisory.MaxAttempts)
	}
	if !cfg.Advisory.SingleSchema {
		t.Error("SingleSchema = false, want true")
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("INFERENCE_API_KEY", "")

	if _, err := Load(); !errors.Is(err, domain.ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_MockModeSkipsAPIKey(t *testing.T) {
	t.Setenv("INFERENCE_API_KEY", "")
	t.Setenv("INFERENCE_MOCK_MODE", "true")

	if _, err := Load(); err != nil {
		t.Errorf("Load() error = %v, mock mode must not require an API key", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Inference: InferenceConfig{
				APIKey:   "key",
				Backends: []string{"https://a.example"},
				Timeout:  20 * time.Second,
			},
			Advisory: AdvisoryConfig{
				MaxAttempts: 3,
				Timeout:     30 * time.Second,
				BaseDelay:   time.Second,
			},
			Intake: IntakeConfig{MaxImageSize: 10 << 20},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}, wantErr: false},
		{name: "no backends", mutate: func(c *Config) { c.Inference.Backends = nil }, wantErr: true},
		{name: "inference timeout too short", mutate: func(c *Config) { c.Inference.Timeout = 500 * time.Millisecond }, wantErr: true},
		{name: "zero attempts", mutate: func(c *Config) { c.Advisory.MaxAttempts = 0 }, wantErr: true},
		{name: "advisory timeout too short", mutate: func(c *Config) { c.Advisory.Timeout = 0 }, wantErr: true},
		{name: "negative base delay", mutate: func(c *Config) { c.Advisory.BaseDelay = -time.Second }, wantErr: true},
		{name: "tiny image limit", mutate: func(c *Config) { c.Intake.MaxImageSize = 100 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig sentinel", err)
			}
		})
	}
}

func TestLoadReferenceData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	content := `
taxonomy_overrides:
  Rice___Brown_spot: Rice Brown Spot
critical_conditions:
  - blight
  - wilt
fallback_templates:
  english:
    generic: Please contact your local extension office.
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	ref, err := LoadReferenceData(path)
	if err != nil {
		t.Fatalf("LoadReferenceData() error = %v", err)
	}

	if ref.TaxonomyOverrides["Rice___Brown_spot"] != "Rice Brown Spot" {
		t.Errorf("TaxonomyOverrides = %v", ref.TaxonomyOverrides)
	}
	if len(ref.CriticalConditions) != 2 {
		t.Errorf("CriticalConditions = %v", ref.CriticalConditions)
	}
	if ref.FallbackTemplates["english"]["generic"] == "" {
		t.Errorf("FallbackTemplates = %v", ref.FallbackTemplates)
	}
}

func TestLoadReferenceData_Invalid(t *testing.T) {
	if _, err := LoadReferenceData(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadReferenceData() succeeded on a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadReferenceData(path); err == nil {
		t.Error("LoadReferenceData() succeeded on malformed YAML")
	}
}
