package loader

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/joeydtaylor/steeze-fc/pkg/classpath"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Scope is the code-loading scope of a function. Units resolve child-first:
// system, then local, then parent; the first layer that defines a name wins
// and the result is memoized. Resources are searched in the same order, and
// FindResources concatenates every layer's matches.
type Scope struct {
	name   string
	system Layer
	local  Layer
	parent Layer
	log    *zap.Logger
	onLoad func(unit, layer string)

	mu       sync.RWMutex
	resolved map[string]*Unit
	inflight singleflight.Group
}

type Option func(*Scope)

// WithSystem replaces the System table; nil disables the layer.
func WithSystem(l Layer) Option { return func(s *Scope) { s.system = l } }

// WithParent replaces the Host table; nil disables the layer.
func WithParent(l Layer) Option { return func(s *Scope) { s.parent = l } }

func WithLogger(l *zap.Logger) Option { return func(s *Scope) { s.log = l } }

func WithName(n string) Option { return func(s *Scope) { s.name = n } }

// WithObserver is called once per first-time resolution with the winning layer.
func WithObserver(fn func(unit, layer string)) Option {
	return func(s *Scope) { s.onLoad = fn }
}

// NewScope layers local between System and Host unless options say otherwise.
func NewScope(local Layer, opts ...Option) *Scope {
	s := &Scope{
		name:     "function",
		system:   System,
		local:    local,
		parent:   Host,
		log:      zap.NewNop(),
		resolved: make(map[string]*Unit),
	}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// New builds a scope over the locations of cp.
func New(cp classpath.Classpath, opts ...Option) *Scope {
	return NewScope(NewLocations(cp), opts...)
}

func (s *Scope) Name() string { return s.name }

// FindUnit resolves name. Concurrent first-time resolutions of one name
// share a single lookup.
func (s *Scope) FindUnit(name string) (*Unit, error) {
	if u, ok := s.memo(name); ok {
		return u, nil
	}
	v, err, _ := s.inflight.Do(name, func() (any, error) {
		if u, ok := s.memo(name); ok {
			return u, nil
		}
		u, layer, err := resolveChildFirst(name, s.layers())
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.resolved[name] = u
		s.mu.Unlock()

		s.log.Debug("unit resolved",
			zap.String("scope", s.name),
			zap.String("unit", name),
			zap.String("layer", layer),
			zap.String("origin", u.Origin),
		)
		if s.onLoad != nil {
			s.onLoad(name, layer)
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Unit), nil
}

type namedLayer struct {
	name  string
	layer Layer
}

func (s *Scope) layers() []namedLayer {
	return []namedLayer{{"system", s.system}, {"local", s.local}, {"parent", s.parent}}
}

// resolveChildFirst asks each layer in order and stops at the first one that
// defines name. Only ErrUnitNotFound moves on to the next layer.
func resolveChildFirst(name string, layers []namedLayer) (*Unit, string, error) {
	for _, l := range layers {
		if l.layer == nil {
			continue
		}
		u, err := l.layer.FindUnit(name)
		if err == nil {
			return u, l.name, nil
		}
		if !errors.Is(err, ErrUnitNotFound) {
			return nil, l.name, err
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnitNotFound, name)
}

func (s *Scope) memo(name string) (*Unit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.resolved[name]
	return u, ok
}

// Resolved reports how many units this scope has memoized.
func (s *Scope) Resolved() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resolved)
}

func (s *Scope) FindResource(name string) (string, bool) {
	for _, l := range s.layers() {
		if l.layer == nil {
			continue
		}
		if u, ok := l.layer.FindResource(name); ok {
			return u, true
		}
	}
	return "", false
}

// FindResources never short-circuits: duplicates across layers are kept.
func (s *Scope) FindResources(name string) ([]string, error) {
	var out []string
	for _, l := range s.layers() {
		if l.layer == nil {
			continue
		}
		urls, err := l.layer.FindResources(name)
		if err != nil {
			return nil, fmt.Errorf("%s layer: %w", l.name, err)
		}
		out = append(out, urls...)
	}
	return out, nil
}

// Close releases the local layer. System and parent layers are shared and
// left open.
func (s *Scope) Close() error {
	if c, ok := s.local.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
