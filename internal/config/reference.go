package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ReferenceData holds operator overrides for the static lookup tables.
// All fields are optional; empty fields leave the built-in tables untouched.
// The tables are loaded once at process start and never mutated afterwards.
type ReferenceData struct {
	// TaxonomyOverrides maps raw backend labels to canonical condition
	// strings, extending the built-in label table.
	TaxonomyOverrides map[string]string `yaml:"taxonomy_overrides"`

	// CriticalConditions replaces the built-in set of condition keywords
	// that can raise the emergency level to high.
	CriticalConditions []string `yaml:"critical_conditions"`

	// FallbackTemplates adds or replaces language-keyed fallback replies,
	// keyed language -> topic (irrigation, pest, fertilizer, generic).
	FallbackTemplates map[string]map[string]string `yaml:"fallback_templates"`
}

// LoadReferenceData reads a YAML reference-data file.
func LoadReferenceData(path string) (*ReferenceData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ref ReferenceData
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return nil, err
	}

	return &ref, nil
}
