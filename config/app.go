package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/authfront/flow"
	"github.com/kbukum/authfront/identity"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/observability"
)

// AppName is the default application name used for file resolution.
const AppName = "authfront"

// AppConfig is the complete authfront configuration.
type AppConfig struct {
	Name          string               `yaml:"name" mapstructure:"name"`
	Environment   string               `yaml:"environment" mapstructure:"environment"`
	Debug         bool                 `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Identity      identity.Config      `yaml:"identity" mapstructure:"identity"`
	Flow          flow.Config          `yaml:"flow" mapstructure:"flow"`
	Routes        flow.Routes          `yaml:"routes" mapstructure:"routes"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies default values to every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = AppName
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
	c.Identity.ApplyDefaults()
	c.Flow.ApplyDefaults()
	c.Routes.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *AppConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	if !slices.Contains(validEnvs, c.Environment) {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Identity.Validate(); err != nil {
		return fmt.Errorf("config.identity: %w", err)
	}
	if err := c.Flow.Validate(); err != nil {
		return fmt.Errorf("config.flow: %w", err)
	}
	if err := c.Routes.Validate(); err != nil {
		return fmt.Errorf("config.routes: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// Load reads, defaults and validates the configuration.
func Load(opts ...LoaderOption) (*AppConfig, error) {
	var cfg AppConfig
	if err := LoadConfig(AppName, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
