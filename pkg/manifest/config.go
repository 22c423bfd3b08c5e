package manifest

import (
	"fmt"

	"github.com/joeydtaylor/steeze-fc/pkg/config"
)

// Config is the runtime manifest.
type Config struct {
	Runtime  Runtime  `toml:"runtime" yaml:"runtime"`
	Function Function `toml:"function" yaml:"function"`
	Auth     Auth     `toml:"auth" yaml:"auth"`
}

// Validate normalizes every section in place and checks it.
func (c *Config) Validate() error {
	if err := c.Runtime.normalize(); err != nil {
		return fmt.Errorf("runtime: %w", err)
	}
	if err := c.Function.validate(); err != nil {
		return fmt.Errorf("function: %w", err)
	}
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

// Settings exposes the manifest's handler specs under the dispatcher keys.
func (c Config) Settings() config.Map {
	return config.Map{
		config.KeyHandler:     c.Function.Handler,
		config.KeyInitializer: c.Function.Initializer,
	}
}

// Default returns a validated manifest with every default applied.
func Default() Config {
	var c Config
	_ = c.Validate()
	return c
}
