package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/joeydtaylor/steeze-fc/pkg/classpath"
	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/core"
	"github.com/joeydtaylor/steeze-fc/pkg/dispatch"
	"github.com/joeydtaylor/steeze-fc/pkg/loader"
	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-fc/pkg/registry"
	"github.com/joeydtaylor/steeze-fc/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ---------- Runtime ----------

// provideManifest loads the manifest. A missing default manifest is not an
// error: the runtime then runs on defaults and the environment alone.
func provideManifest(cfg Config) (manifest.Config, error) {
	path := envOr(cfg.ManifestEnv, cfg.DefaultManifest)
	man, err := manifest.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) && os.Getenv(cfg.ManifestEnv) == "" {
		return manifest.Default(), nil
	}
	return man, err
}

// provideSettings puts the environment in front of the manifest.
func provideSettings(man manifest.Config) config.Settings {
	return config.Chain{config.Env(), man.Settings()}
}

func provideClasspath(man manifest.Config, s config.Settings, log *zap.Logger) (classpath.Classpath, error) {
	roots := man.Runtime.Roots(s)
	cp, err := classpath.Assemble(roots...)
	if err != nil {
		return nil, err
	}
	log.Info("classpath assembled", zap.Strings("roots", roots), zap.Strings("locations", cp.URLs()))
	return cp, nil
}

func provideScope(lc fx.Lifecycle, cp classpath.Classpath, log *zap.Logger) *loader.Scope {
	s := loader.New(cp,
		loader.WithName("function"),
		loader.WithLogger(log),
		loader.WithObserver(metrics.UnitResolved),
	)
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return s.Close() }})
	return s
}

func provideRegistry() *registry.Registry {
	return registry.New(metrics.HandlerCreated)
}

func provideDispatcher(s *loader.Scope, r *registry.Registry, settings config.Settings, log *zap.Logger) *dispatch.Dispatcher {
	return dispatch.New(s, r, settings,
		dispatch.WithLogger(log),
		dispatch.WithObserver(metrics.Invocations{}),
	)
}

// ---------- Router ----------

type routerDeps struct {
	fx.In

	Manifest   manifest.Config
	Settings   config.Settings
	AuthMW     *auth.Middleware
	LogMW      *logger.Middleware
	Metrics    http.Handler `name:"metrics"`
	R          httpx.Router
	Dispatcher *dispatch.Dispatcher
	Log        *zap.Logger
}

func provideRouter(d routerDeps) http.Handler {
	return core.BuildRouter(d.Manifest, core.BuildDeps{
		Auth:       d.AuthMW,
		LogMW:      d.LogMW,
		Metrics:    d.Metrics,
		Router:     d.R,
		Dispatcher: d.Dispatcher,
		Creds:      core.SettingsCredentials{Settings: d.Settings},
		Settings:   d.Settings,
		Log:        d.Log,
	})
}

// ---------- Server lifecycle ----------

type serverDeps struct {
	fx.In
	Config   Config
	Manifest manifest.Config
	Logger   *zap.Logger
	App      http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := envOr(d.Config.ListenEnv, d.Manifest.Runtime.Listen)
	cert := os.Getenv(d.Config.TLSCertEnv)
	key := os.Getenv(d.Config.TLSKeyEnv)

	srv := &http.Server{
		Addr:        addr,
		Handler:     d.App,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
		TLSConfig:   &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Config.Service),
					zap.String("addr", ln.Addr().String()),
					zap.String("cert", cert),
				)
				go func() {
					if err := srv.ServeTLS(ln, cert, key); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
				return nil
			}
			d.Logger.Info("server starting (PLAINTEXT)",
				zap.String("service", d.Config.Service),
				zap.String("addr", ln.Addr().String()),
			)
			srv.TLSConfig = nil
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					d.Logger.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Config.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---------- helpers ----------

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envOr(k, def string) string {
	if k == "" {
		return def
	}
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
