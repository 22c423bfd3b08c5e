// Package dispatch routes runtime invocations to the configured user
// handlers. A Dispatcher satisfies every fc capability itself, so the host
// can treat it as the single entry point of the function.
package dispatch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/fc"
	"github.com/joeydtaylor/steeze-fc/pkg/handler"
	"github.com/joeydtaylor/steeze-fc/pkg/loader"
	"github.com/joeydtaylor/steeze-fc/pkg/registry"
	"go.uber.org/zap"
)

// Observer is told about every completed dispatch.
type Observer interface {
	Dispatched(kind handler.Kind, unit string, took time.Duration, err error)
}

type Dispatcher struct {
	scope    loader.Layer
	handlers *registry.Registry
	settings config.Settings
	log      *zap.Logger
	observer Observer
}

type Option func(*Dispatcher)

func WithLogger(l *zap.Logger) Option { return func(d *Dispatcher) { d.log = l } }
func WithObserver(o Observer) Option  { return func(d *Dispatcher) { d.observer = o } }

// New returns a Dispatcher resolving units through scope and caching
// instances in handlers. Handler specs are read from settings on every call.
func New(scope loader.Layer, handlers *registry.Registry, settings config.Settings, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		scope:    scope,
		handlers: handlers,
		settings: settings,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		d.log = zap.NewNop()
	}
	if d.handlers == nil {
		d.handlers = registry.New(nil)
	}
	if d.settings == nil {
		d.settings = config.Env()
	}
	return d
}

// Initialize runs the FUN_INITIALIZER handler.
func (d *Dispatcher) Initialize(ctx fc.Context) error {
	if err := d.dispatch(handler.Initializer, config.KeyInitializer, ctx); err != nil {
		return fmt.Errorf("%w: %w", handler.ErrInitialization, err)
	}
	return nil
}

// HandleRequest runs the FUN_HANDLER stream handler.
func (d *Dispatcher) HandleRequest(in io.Reader, out io.Writer, ctx fc.Context) error {
	return d.dispatch(handler.Stream, config.KeyHandler, ctx, in, out)
}

// HandleHTTP runs the FUN_HANDLER http handler.
func (d *Dispatcher) HandleHTTP(req *http.Request, w http.ResponseWriter, ctx fc.Context) error {
	return d.dispatch(handler.HTTP, config.KeyHandler, ctx, req, w)
}

// Resolve checks that the handler configured under key can serve kind,
// without constructing it.
func (d *Dispatcher) Resolve(kind handler.Kind, key string) (*loader.Unit, handler.EntryPoint, error) {
	spec, u, err := d.resolve(kind, key)
	if err != nil {
		return nil, handler.EntryPoint{}, err
	}
	ep, err := handler.LookupEntryPoint(u, spec.EntryPoint, kind)
	if err != nil {
		return u, handler.EntryPoint{}, err
	}
	return u, ep, nil
}

func (d *Dispatcher) resolve(kind handler.Kind, key string) (handler.Spec, *loader.Unit, error) {
	raw, ok := d.settings.Lookup(key)
	if !ok {
		return handler.Spec{}, nil, fmt.Errorf("%w: %s is not set", handler.ErrConfiguration, key)
	}
	spec, err := handler.Parse(raw)
	if err != nil {
		return handler.Spec{}, nil, err
	}
	u, err := d.scope.FindUnit(spec.Unit)
	if err != nil {
		return spec, nil, err
	}
	if err := handler.ValidateCapability(u, kind); err != nil {
		return spec, u, err
	}
	return spec, u, nil
}

func (d *Dispatcher) dispatch(kind handler.Kind, key string, ctx fc.Context, args ...any) (err error) {
	start := time.Now()
	ctx = fc.WithScope(ctx, d.scope)
	unit := ""
	defer func() {
		if d.observer != nil {
			d.observer.Dispatched(kind, unit, time.Since(start), err)
		}
		if err != nil {
			d.log.Error("dispatch failed",
				zap.String("kind", kind.String()),
				zap.String("unit", unit),
				zap.String("requestId", ctx.RequestID()),
				zap.Error(err),
			)
		}
	}()

	spec, u, err := d.resolve(kind, key)
	if err != nil {
		unit = spec.Unit
		return err
	}
	unit = u.Name

	inst, err := d.handlers.GetOrCreate(u.Name, u.New)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrNoConstructor):
			return fmt.Errorf("%w: %w", handler.ErrConfiguration, err)
		case errors.Is(err, registry.ErrConstructorPanic):
			return fmt.Errorf("%w: %w", loader.ErrUnitDefinition, err)
		}
		return err
	}

	ep, err := handler.LookupEntryPoint(u, spec.EntryPoint, kind)
	if err != nil {
		return err
	}
	return ep.Call(inst, append(args, ctx)...)
}
