package manifest

import (
	"errors"
	"fmt"
	"strings"
)

type AuthMode string

const (
	AuthOff   AuthMode = "off"
	AuthHS256 AuthMode = "hs256"
	AuthRS256 AuthMode = "rs256"
)

// Auth is the [auth] section guarding the runtime API with bearer tokens.
type Auth struct {
	Mode          AuthMode `toml:"mode" yaml:"mode"`
	SecretEnv     string   `toml:"secret_env" yaml:"secret_env"`
	PublicKeyFile string   `toml:"public_key_file" yaml:"public_key_file"`
	Issuer        string   `toml:"issuer" yaml:"issuer"`
	Audience      string   `toml:"audience" yaml:"audience"`
	LeewaySeconds int      `toml:"leeway_seconds" yaml:"leeway_seconds"`
	Roles         []string `toml:"roles" yaml:"roles"`
}

func (a *Auth) validate() error {
	a.Mode = AuthMode(strings.ToLower(strings.TrimSpace(string(a.Mode))))
	switch a.Mode {
	case "", AuthOff:
		a.Mode = AuthOff
	case AuthHS256:
		if strings.TrimSpace(a.SecretEnv) == "" {
			return errors.New("secret_env required for hs256")
		}
	case AuthRS256:
		if strings.TrimSpace(a.PublicKeyFile) == "" {
			return errors.New("public_key_file required for rs256")
		}
	default:
		return fmt.Errorf("mode %q invalid", a.Mode)
	}
	if a.LeewaySeconds < 0 {
		return errors.New("leeway_seconds must be >= 0")
	}
	return nil
}

func (a Auth) Enabled() bool { return a.Mode != "" && a.Mode != AuthOff }
