// Package handler parses handler specs and checks that resolved units
// satisfy the contract of an invocation kind.
package handler

import (
	"fmt"
	"strings"
)

// Separator splits a handler spec into unit and entry point.
const Separator = "::"

// Spec is a parsed handler configuration value.
type Spec struct {
	Unit       string
	EntryPoint string
}

func (s Spec) String() string { return s.Unit + Separator + s.EntryPoint }

// Parse splits raw on exactly one Separator with both sides non-empty.
func Parse(raw string) (Spec, error) {
	if strings.Count(raw, Separator) != 1 {
		return Spec{}, fmt.Errorf("%w: handler %q must contain one and only one %q", ErrInvalidSpec, raw, Separator)
	}
	unit, entry, _ := strings.Cut(raw, Separator)
	unit, entry = strings.TrimSpace(unit), strings.TrimSpace(entry)
	if unit == "" || entry == "" {
		return Spec{}, fmt.Errorf("%w: handler %q needs a unit and an entry point", ErrInvalidSpec, raw)
	}
	return Spec{Unit: unit, EntryPoint: entry}, nil
}

// UnitPackage returns the dotted prefix of the unit name:
// example.App::handleRequest -> example.
func (s Spec) UnitPackage() string {
	i := strings.LastIndex(s.Unit, ".")
	if i < 0 {
		return ""
	}
	return s.Unit[:i]
}
