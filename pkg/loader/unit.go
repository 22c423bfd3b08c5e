// Package loader resolves handler units by name through a layered,
// child-first scope: host-protected system units first, then the code
// locations shipped with the function, then the enclosing host.
package loader

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrUnitNotFound means no layer defines the requested unit.
	ErrUnitNotFound = errors.New("unit not found")
	// ErrUnitDefinition means a unit was found but could not be defined.
	ErrUnitDefinition = errors.New("unit definition invalid")
)

// Factory builds a new instance of a unit.
type Factory func() (any, error)

// Definition is the compiled side of a unit: the static type its factory
// produces and the factory itself. A nil New means the unit cannot be
// constructed without arguments.
type Definition struct {
	Type reflect.Type
	New  Factory
}

// Define declares a unit whose instances have type T.
func Define[T any](fn func() T) Definition {
	d := Definition{Type: reflect.TypeOf((*T)(nil)).Elem()}
	if fn != nil {
		d.New = func() (any, error) { return fn(), nil }
	}
	return d
}

// DefineErr is Define for constructors that can fail.
func DefineErr[T any](fn func() (T, error)) Definition {
	d := Definition{Type: reflect.TypeOf((*T)(nil)).Elem()}
	if fn != nil {
		d.New = func() (any, error) { return fn() }
	}
	return d
}

// Unit is a resolved, named definition. Origin names the layer or the
// location URL that supplied it.
type Unit struct {
	Name   string
	Origin string
	Definition
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s (%s)", u.Name, u.Origin)
}

// validName accepts dotted names whose segments are non-empty and carry no
// path separators.
func validName(name string) bool {
	if name == "" || strings.TrimSpace(name) != name {
		return false
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" || strings.ContainsAny(seg, `/\ `) {
			return false
		}
	}
	return true
}

// entryFor maps a unit name to its descriptor entry: a.b.C -> a/b/C.unit.
func entryFor(name string) string {
	return strings.ReplaceAll(name, ".", "/") + descriptorExt
}
