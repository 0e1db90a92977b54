package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kuhyx/kinoplan/core/metrics"
)

// Config is the full application configuration.
type Config struct {
	Program ProgramConfig  `json:"program"`
	Planner PlannerConfig  `json:"planner"`
	Metrics metrics.Config `json:"metrics"`
	Logging LoggingConfig  `json:"logging"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from an optional file plus KINOPLAN_
// environment overrides, applies defaults and validates the result. An
// empty path skips the file and yields defaults plus environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides, e.g. KINOPLAN_PLANNER__MAX_SCHEDULES=3.
	if err := k.Load(env.Provider("KINOPLAN_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "kinoplan_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults applies section defaults in place.
func (c *Config) SetDefaults() {
	c.Program.SetDefaults()
	c.Planner.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks the struct tags and the per-section rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Program.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}
