// Package config holds process-wide configuration. Subsystem tuning (oracle
// temperatures, timeouts) lives with the subsystem; this package covers what
// the entry point needs to wire everything together.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the process configuration, read once at startup.
type Config struct {
	// Addr is the HTTP listen address for the API server.
	Addr string

	// DBPath is the SQLite file backing the document store.
	DBPath string
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	cfg := Config{
		Addr: ":8080",
	}

	if v := os.Getenv("GOALGRID_ADDR"); v != "" {
		cfg.Addr = v
	}

	cfg.DBPath = os.Getenv("GOALGRID_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".goalgrid", "goalgrid.db")
	}

	return cfg, nil
}
