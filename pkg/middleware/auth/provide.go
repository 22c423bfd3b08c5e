package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
	"go.uber.org/fx"
)

// New builds the middleware for cfg. The HS256 secret is read from the
// setting named by cfg.SecretEnv.
func New(cfg manifest.Auth, s config.Settings) (*Middleware, error) {
	m := &Middleware{
		mode:     cfg.Mode,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		leeway:   time.Duration(cfg.LeewaySeconds) * time.Second,
		exempt:   map[string]struct{}{},
	}
	switch cfg.Mode {
	case manifest.AuthHS256:
		v, ok := s.Lookup(cfg.SecretEnv)
		if !ok {
			return nil, fmt.Errorf("auth: %s is not set", cfg.SecretEnv)
		}
		m.secret = []byte(v)
	case manifest.AuthRS256:
		b, err := os.ReadFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("auth: %w", err)
		}
		k, err := jwt.ParseRSAPublicKeyFromPEM(b)
		if err != nil {
			return nil, fmt.Errorf("auth: %s: %w", cfg.PublicKeyFile, err)
		}
		m.publicKey = k
	}
	return m, nil
}

// ProvideAuthentication builds the middleware from the manifest and the
// process environment.
func ProvideAuthentication(cfg manifest.Config) (*Middleware, error) {
	return New(cfg.Auth, config.Env())
}

var Module = fx.Options(
	fx.Provide(ProvideAuthentication),
)
