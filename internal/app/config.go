package app

import (
	"os"
	"strconv"
)

// Config holds application-wide configuration.
type Config struct {
	// Debug enables debug logging and additional diagnostics
	Debug bool

	// DataDir is the directory holding the flat data files
	DataDir string

	// ProjectID overrides the owning project for newly created collections
	ProjectID string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:   false,
		DataDir: "", // Will use storage.DefaultDataDir()
	}
}

// ConfigFromEnv creates a configuration from environment variables:
// SATCHEL_DEBUG, SATCHEL_DATA_DIR, and SATCHEL_PROJECT_ID.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if debugStr := os.Getenv("SATCHEL_DEBUG"); debugStr != "" {
		if debug, err := strconv.ParseBool(debugStr); err == nil {
			cfg.Debug = debug
		}
	}

	if dataDir := os.Getenv("SATCHEL_DATA_DIR"); dataDir != "" {
		cfg.DataDir = dataDir
	}

	if projectID := os.Getenv("SATCHEL_PROJECT_ID"); projectID != "" {
		cfg.ProjectID = projectID
	}

	return cfg
}
