// Package registry caches handler instances for the life of the process.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrNoConstructor is returned when a unit cannot be built without arguments.
	ErrNoConstructor = errors.New("registry: no zero-argument constructor")
	// ErrConstructorPanic is returned when a factory panics.
	ErrConstructorPanic = errors.New("registry: constructor panicked")
)

// Registry maps a unit name to its single live instance. Instances are
// created lazily and never evicted.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]any
	inflight singleflight.Group
	onCreate func(name string)
}

// New returns an empty registry. onCreate, if set, runs after each
// successful construction.
func New(onCreate func(name string)) *Registry {
	return &Registry{handlers: make(map[string]any), onCreate: onCreate}
}

// GetOrCreate returns the cached instance for name, building it with
// factory on first use. Concurrent first calls construct exactly once.
// Failed constructions are not cached.
func (r *Registry) GetOrCreate(name string, factory func() (any, error)) (any, error) {
	if h, ok := r.get(name); ok {
		return h, nil
	}
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoConstructor, name)
	}
	v, err, _ := r.inflight.Do(name, func() (any, error) {
		if h, ok := r.get(name); ok {
			return h, nil
		}
		h, err := construct(factory)
		if err != nil {
			return nil, fmt.Errorf("registry: construct %s: %w", name, err)
		}
		if h == nil {
			return nil, fmt.Errorf("registry: construct %s: factory returned nil", name)
		}
		r.mu.Lock()
		r.handlers[name] = h
		r.mu.Unlock()
		if r.onCreate != nil {
			r.onCreate(name)
		}
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// construct runs factory, turning a panic into ErrConstructorPanic so it
// stays inside the caller's goroutine as an error.
func construct(factory func() (any, error)) (h any, err error) {
	defer func() {
		if p := recover(); p != nil {
			h, err = nil, fmt.Errorf("%w: %v", ErrConstructorPanic, p)
		}
	}()
	return factory()
}

// Lookup returns the instance for name without creating it.
func (r *Registry) Lookup(name string) (any, bool) { return r.get(name) }

func (r *Registry) get(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}

// Names lists cached unit names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
