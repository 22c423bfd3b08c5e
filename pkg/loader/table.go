package loader

import (
	"fmt"
	"sort"
	"sync"
)

// Table is an in-memory layer of compiled-in units and resource URLs.
type Table struct {
	name string

	mu        sync.RWMutex
	units     map[string]*Unit
	resources map[string][]string
}

var (
	// System holds host runtime units. User code can never shadow them.
	System = NewTable("system")
	// Host is the enclosing layer: units compiled into the host binary.
	Host = NewTable("host")
)

// Register adds def to the Host table under name.
func Register(name string, def Definition) { Host.Register(name, def) }

// RegisterSystem adds def to the System table under name.
func RegisterSystem(name string, def Definition) { System.Register(name, def) }

// NewTable returns an empty table whose units report name as their origin.
func NewTable(name string) *Table {
	return &Table{
		name:      name,
		units:     make(map[string]*Unit),
		resources: make(map[string][]string),
	}
}

func (t *Table) Name() string { return t.name }

// Register panics on an invalid name, a missing type or a duplicate.
func (t *Table) Register(name string, def Definition) {
	if !validName(name) || def.Type == nil {
		panic(fmt.Sprintf("loader: invalid registration %q in %s", name, t.name))
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.units[name]; dup {
		panic(fmt.Sprintf("loader: unit %q already registered in %s", name, t.name))
	}
	t.units[name] = &Unit{Name: name, Origin: t.name, Definition: def}
}

// AddResource appends url to the matches for name.
func (t *Table) AddResource(name, url string) {
	t.mu.Lock()
	t.resources[name] = append(t.resources[name], url)
	t.mu.Unlock()
}

// Names lists registered unit names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.units))
	for n := range t.units {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (t *Table) FindUnit(name string) (*Unit, error) {
	t.mu.RLock()
	u, ok := t.units[name]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrUnitNotFound, name, t.name)
	}
	return u, nil
}

func (t *Table) FindResource(name string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if urls := t.resources[name]; len(urls) > 0 {
		return urls[0], true
	}
	return "", false
}

func (t *Table) FindResources(name string) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.resources[name]...), nil
}
