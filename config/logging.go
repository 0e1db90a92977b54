package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LoggingConfig controls the zerolog output of the application.
type LoggingConfig struct {
	// Level is the minimum severity: trace, debug, info, warn or error.
	Level string `json:"level"`
	// Pretty switches to the human console writer instead of JSON.
	Pretty bool `json:"pretty"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks that the level is a known zerolog level.
func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("logging: unknown level %q: %w", c.Level, err)
	}
	return nil
}
