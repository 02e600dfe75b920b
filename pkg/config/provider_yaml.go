package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements Provider for YAML option files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML option provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadOptions loads the complete option table from a YAML file. Options
// absent from the file keep their defaults, so a file only needs to name
// the thresholds it overrides.
func (y *YAMLProvider) LoadOptions() (*Options, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	opts := DefaultOptions()
	if err := yaml.Unmarshal(cfgFile, opts); err != nil {
		return nil, err
	}

	return opts, nil
}

// IsReadOnly returns true since YAML files are read-only in this implementation
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
