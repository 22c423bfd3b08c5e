package manifest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeydtaylor/steeze-fc/pkg/fc"
	"github.com/joeydtaylor/steeze-fc/pkg/handler"
)

// Function is the [function] section. Handler specs set here are the
// fallback for the FUN_HANDLER / FUN_INITIALIZER settings.
type Function struct {
	Name                    string `toml:"name" yaml:"name"`
	Handler                 string `toml:"handler" yaml:"handler"`
	Initializer             string `toml:"initializer" yaml:"initializer"`
	MemoryMB                int    `toml:"memory_mb" yaml:"memory_mb"`
	TimeoutMS               int    `toml:"timeout_ms" yaml:"timeout_ms"`
	InitializationTimeoutMS int    `toml:"initialization_timeout_ms" yaml:"initialization_timeout_ms"`
	Service                 string `toml:"service" yaml:"service"`
	Region                  string `toml:"region" yaml:"region"`
	AccountID               string `toml:"account_id" yaml:"account_id"`
}

func (f *Function) validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Handler = strings.TrimSpace(f.Handler)
	f.Initializer = strings.TrimSpace(f.Initializer)

	if f.Handler != "" {
		if _, err := handler.Parse(f.Handler); err != nil {
			return fmt.Errorf("handler: %w", err)
		}
	}
	if f.Initializer != "" {
		if _, err := handler.Parse(f.Initializer); err != nil {
			return fmt.Errorf("initializer: %w", err)
		}
	}
	if f.MemoryMB < 0 {
		return errors.New("memory_mb must be >= 0")
	}
	if f.TimeoutMS < 0 {
		return errors.New("timeout_ms must be >= 0")
	}
	if f.InitializationTimeoutMS < 0 {
		return errors.New("initialization_timeout_ms must be >= 0")
	}
	return nil
}

func (f Function) Timeout() time.Duration {
	return time.Duration(f.TimeoutMS) * time.Millisecond
}

func (f Function) InitializationTimeout() time.Duration {
	return time.Duration(f.InitializationTimeoutMS) * time.Millisecond
}

// Params is the function description handed to handlers when the caller
// sends none.
func (f Function) Params() fc.FunctionParams {
	return fc.FunctionParams{
		Name:                     f.Name,
		Handler:                  f.Handler,
		Initializer:              f.Initializer,
		MemoryMB:                 f.MemoryMB,
		TimeoutSec:               f.TimeoutMS / 1000,
		InitializationTimeoutSec: f.InitializationTimeoutMS / 1000,
	}
}
