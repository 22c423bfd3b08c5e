package core

import (
	"net/http"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-fc/pkg/codec"
	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
	hmetrics "github.com/joeydtaylor/steeze-fc/pkg/middleware/metrics"
	"go.uber.org/zap"
)

// Runtime API paths.
const (
	PathInitialize = "/initialize"
	PathInvoke     = "/invoke"
	PathHTTPInvoke = "/http-invoke"
	PathMetrics    = "/metrics"
	PathPing       = "/ping"
)

// BuildRouter mounts the runtime API on d.Router.
func BuildRouter(cfg manifest.Config, d BuildDeps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Creds == nil {
		d.Creds = NoCredentials{}
	}

	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat(PathPing))

	if d.Auth != nil {
		d.Auth.Exempt(PathPing, PathMetrics)
		if d.LogMW != nil {
			r.Use(d.LogMW.Middleware(d.Auth))
		}
		r.Use(hmetrics.Collect(d.Auth))
		r.Use(d.Auth.Middleware())
	} else {
		if d.LogMW != nil {
			r.Use(d.LogMW.Middleware(nil))
		}
		r.Use(hmetrics.Collect(nil))
	}

	if d.Metrics != nil {
		r.Get(PathMetrics, d.Metrics)
	}

	api := &runtimeAPI{d: d, fn: cfg.Function}
	guard := func(h http.HandlerFunc) http.HandlerFunc { return withGuard(h, d.Auth, cfg.Auth.Roles) }

	r.Post(PathInitialize, withTimeout(guard(api.initialize), cfg.Function.InitializationTimeout()))
	r.Post(PathInvoke, withTimeout(guard(api.invoke), cfg.Function.Timeout()))
	h := withTimeout(guard(api.httpInvoke), cfg.Function.Timeout())
	r.Any(PathHTTPInvoke, h)
	r.Any(PathHTTPInvoke+"/*", h)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		codec.WriteError(w, http.StatusNotFound, "NotFound", "no runtime API at "+r.URL.Path)
	})
	return r.Mux()
}
