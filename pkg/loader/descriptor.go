package loader

import (
	"bytes"
	"fmt"
	"path/filepath"
	"plugin"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const descriptorExt = ".unit"

// descriptor is the TOML body of a .unit entry.
type descriptor struct {
	Symbol string `toml:"symbol"`
	Plugin string `toml:"plugin"`
}

func parseDescriptor(data []byte) (descriptor, error) {
	var d descriptor
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return descriptor{}, err
	}
	d.Symbol = strings.TrimSpace(d.Symbol)
	d.Plugin = strings.TrimSpace(d.Plugin)
	if d.Symbol == "" {
		return descriptor{}, fmt.Errorf("symbol is required")
	}
	return d, nil
}

// link turns a descriptor into a Definition. dir is the directory plugin
// paths are relative to; it is empty for archive locations.
func (d descriptor) link(dir string) (Definition, error) {
	if d.Plugin == "" {
		def, ok := linked(d.Symbol)
		if !ok {
			return Definition{}, fmt.Errorf("symbol %q is not linked", d.Symbol)
		}
		return def, nil
	}
	if dir == "" {
		return Definition{}, fmt.Errorf("plugin %q: plugins cannot load from archives", d.Plugin)
	}
	path := d.Plugin
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, filepath.FromSlash(path))
	}
	p, err := plugin.Open(path)
	if err != nil {
		return Definition{}, fmt.Errorf("plugin %q: %w", path, err)
	}
	sym, err := p.Lookup(d.Symbol)
	if err != nil {
		return Definition{}, fmt.Errorf("plugin %q: %w", path, err)
	}
	def, ok := sym.(*Definition)
	if !ok || def == nil || def.Type == nil {
		return Definition{}, fmt.Errorf("plugin %q: symbol %q is %T, want loader.Definition", path, d.Symbol, sym)
	}
	return *def, nil
}
