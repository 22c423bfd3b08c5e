package handler

import (
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/joeydtaylor/steeze-fc/pkg/fc"
)

// Kind selects the capability and entry-point signature of an invocation.
type Kind int

const (
	Initializer Kind = iota
	Stream
	HTTP
)

var (
	contextType = reflect.TypeOf((*fc.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	legacyType  = reflect.TypeOf((*fc.PojoRequestHandler)(nil)).Elem()
)

var kinds = map[Kind]struct {
	name       string
	capability reflect.Type
	params     []reflect.Type
}{
	Initializer: {
		name:       "initializer",
		capability: reflect.TypeOf((*fc.FunctionInitializer)(nil)).Elem(),
		params:     []reflect.Type{contextType},
	},
	Stream: {
		name:       "stream handler",
		capability: reflect.TypeOf((*fc.StreamRequestHandler)(nil)).Elem(),
		params:     []reflect.Type{reflect.TypeOf((*io.Reader)(nil)).Elem(), reflect.TypeOf((*io.Writer)(nil)).Elem(), contextType},
	},
	HTTP: {
		name:       "http handler",
		capability: reflect.TypeOf((*fc.HTTPRequestHandler)(nil)).Elem(),
		params:     []reflect.Type{reflect.TypeOf((**http.Request)(nil)).Elem(), reflect.TypeOf((*http.ResponseWriter)(nil)).Elem(), contextType},
	},
}

func (k Kind) String() string {
	if d, ok := kinds[k]; ok {
		return d.name
	}
	return "unknown"
}

// Capability is the interface a unit must implement for k.
func (k Kind) Capability() reflect.Type { return kinds[k].capability }

// Params are the exact entry-point parameter types for k, receiver excluded.
func (k Kind) Params() []reflect.Type { return kinds[k].params }

// Kinds lists every invocation kind.
func Kinds() []Kind { return []Kind{Initializer, Stream, HTTP} }

// ParseKind accepts "initializer", "stream" or "http".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "initializer", "init":
		return Initializer, nil
	case "stream", "stream handler":
		return Stream, nil
	case "http", "http handler":
		return HTTP, nil
	}
	return 0, fmt.Errorf("unknown invocation kind %q", s)
}
