// Package config provides the key/value settings the dispatcher reads on
// every invocation.
package config

import (
	"os"
	"strings"
)

// Well-known settings keys.
const (
	KeyHandler     = "FUN_HANDLER"
	KeyInitializer = "FUN_INITIALIZER"
	KeyLibPath     = "FC_LIB_PATH"
)

// Platform environment handed to the function container.
const (
	KeyAccessKeyID     = "FC_ACCESS_KEY_ID"
	KeyAccessKeySecret = "FC_ACCESS_KEY_SECRET"
	KeySecurityToken   = "FC_SECURITY_TOKEN"
	KeyAccountID       = "FC_ACCOUNT_ID"
	KeyRegion          = "FC_REGION"
	KeyFunctionName    = "FC_FUNCTION_NAME"
	KeyServiceName     = "FC_SERVICE_NAME"
)

// DefaultCodeRoot is where the platform mounts function code.
const DefaultCodeRoot = "/code"

// Settings looks up a configuration value. Blank values count as unset.
type Settings interface {
	Lookup(key string) (string, bool)
}

type env struct{}

// Env reads the process environment.
func Env() Settings { return env{} }

func (env) Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Map is a fixed set of settings.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Chain consults each Settings in order; the first hit wins.
type Chain []Settings

func (c Chain) Lookup(key string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}
