package config

import (
	"fmt"
	"time"
)

// ProgramConfig locates the schedule file to plan from.
type ProgramConfig struct {
	// File points at one schedule file and takes precedence over Dir.
	File string `json:"file"`
	// Dir is scanned for the most recent file matching Pattern.
	Dir string `json:"dir"`
	// Pattern is the glob used when scanning Dir.
	Pattern string `json:"pattern"`
	// Timezone resolves bare clock times, e.g. "Europe/Warsaw".
	Timezone string `json:"timezone"`
}

// SetDefaults applies sane defaults.
func (c *ProgramConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "."
	}
	if c.Pattern == "" {
		c.Pattern = "*.html"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
}

// Validate checks mandatory fields.
func (c ProgramConfig) Validate() error {
	if c.Pattern == "" {
		return fmt.Errorf("program: pattern is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("program: unknown timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c ProgramConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
