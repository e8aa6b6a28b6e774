package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DesignPath string // .hcl or .yaml design and cell files
	Format     string // "auto", "hcl" or "yaml"

	LogFormat string
	LogLevel  string
}

// NewConfig validates a raw Config and returns it ready for use.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DesignPath == "" {
		return nil, errors.New("DesignPath is a required configuration field and cannot be empty")
	}

	switch cfg.Format {
	case "", "auto":
		cfg.Format = "auto"
	case "hcl", "yaml":
		// valid
	default:
		return nil, fmt.Errorf("invalid format %q: must be 'auto', 'hcl' or 'yaml'", cfg.Format)
	}

	return &cfg, nil
}
