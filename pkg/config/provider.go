package config

// Provider defines the interface for validation-option data sources
type Provider interface {
	// LoadOptions loads the complete option table
	LoadOptions() (*Options, error)

	// Configuration management (for future SQLite-specific operations)
	IsReadOnly() bool
	Close() error
}
