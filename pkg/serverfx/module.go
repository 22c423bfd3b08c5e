package serverfx

import (
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-fc/pkg/transport/httpx"
	"go.uber.org/fx"
)

// ---------- Options ----------

type Config struct {
	Service         string // for logs only
	ManifestEnv     string // e.g. STEEZE_FC_MANIFEST
	DefaultManifest string // e.g. "manifest.toml"; optional when absent
	ListenEnv       string // overrides [runtime] listen
	TLSCertEnv      string // SSL_SERVER_CERTIFICATE
	TLSKeyEnv       string // SSL_SERVER_KEY
}

type Option func(*Config)

func WithService(s string) Option            { return func(c *Config) { c.Service = s } }
func WithManifestEnv(k string) Option        { return func(c *Config) { c.ManifestEnv = k } }
func WithDefaultManifest(path string) Option { return func(c *Config) { c.DefaultManifest = path } }
func WithListenEnv(k string) Option          { return func(c *Config) { c.ListenEnv = k } }
func WithTLSCertKeyEnv(cert, key string) Option {
	return func(c *Config) { c.TLSCertEnv, c.TLSKeyEnv = cert, key }
}

func defaultConfig() Config {
	return Config{
		Service:         "steeze-fc",
		ManifestEnv:     "STEEZE_FC_MANIFEST",
		DefaultManifest: "manifest.toml",
		ListenEnv:       "SERVER_LISTEN_ADDRESS",
		TLSCertEnv:      "SSL_SERVER_CERTIFICATE",
		TLSKeyEnv:       "SSL_SERVER_KEY",
	}
}

// Runtime provides everything up to the dispatcher, without the HTTP
// surface. The CLI uses it for one-shot commands.
func Runtime(opts ...Option) fx.Option {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return fx.Options(
		fx.Supply(cfg),
		fx.Provide(
			provideManifest,
			provideSettings,
			provideClasspath,
			provideScope,
			provideRegistry,
			provideDispatcher,
		),
		logger.Module,
	)
}

// Module returns a complete Fx option set serving the runtime API.
func Module(opts ...Option) fx.Option {
	return fx.Options(
		Runtime(opts...),
		auth.Module,
		metrics.Module,
		fx.Provide(httpx.NewChi),
		fx.Provide(fx.Annotate(provideRouter, fx.ResultTags(`name:"app"`))),
		fx.Invoke(registerHooks),
	)
}
