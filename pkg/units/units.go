// Package units registers the units every steeze-fc host ships with.
// Import it for side effects:
//
//	import _ "github.com/joeydtaylor/steeze-fc/pkg/units"
package units

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/joeydtaylor/steeze-fc/pkg/fc"
	"github.com/joeydtaylor/steeze-fc/pkg/loader"
)

const (
	HealthUnit = "steeze.runtime.Health"
	EchoUnit   = "demo.Echo"
	HelloUnit  = "demo.Hello"
)

// Symbols usable from unit descriptors.
const (
	EchoSymbol  = "demo/echo"
	HelloSymbol = "demo/hello"
)

func init() {
	loader.RegisterSystem(HealthUnit, loader.Define(func() Health { return Health{} }))

	loader.Register(EchoUnit, loader.Define(NewEcho))
	loader.Register(HelloUnit, loader.Define(func() *Hello { return &Hello{Greeting: "hello"} }))

	loader.Link(EchoSymbol, loader.Define(NewEcho))
	loader.Link(HelloSymbol, loader.Define(func() *Hello { return &Hello{Greeting: "hello"} }))
}

// Health answers stream invocations with "ok".
type Health struct{}

func (Health) HandleRequest(_ io.Reader, out io.Writer, _ fc.Context) error {
	_, err := io.WriteString(out, "ok")
	return err
}

// Echo copies its input back. It counts calls per instance so hosts can
// observe instance reuse.
type Echo struct {
	calls       atomic.Int64
	initialized atomic.Bool
}

func NewEcho() *Echo { return &Echo{} }

func (e *Echo) Calls() int64      { return e.calls.Load() }
func (e *Echo) Initialized() bool { return e.initialized.Load() }

func (e *Echo) Initialize(ctx fc.Context) error {
	e.initialized.Store(true)
	ctx.Logger().Info("echo initialized")
	return nil
}

func (e *Echo) HandleRequest(in io.Reader, out io.Writer, ctx fc.Context) error {
	return e.Run(in, out, ctx)
}

func (e *Echo) Run(in io.Reader, out io.Writer, _ fc.Context) error {
	e.calls.Add(1)
	_, err := io.Copy(out, in)
	return err
}

// HandleHTTP writes the request body back with the request's content type.
func (e *Echo) HandleHTTP(req *http.Request, w http.ResponseWriter, _ fc.Context) error {
	e.calls.Add(1)
	if ct := req.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(http.StatusOK)
	if req.Body == nil {
		return nil
	}
	_, err := io.Copy(w, req.Body)
	return err
}

// Hello greets the caller named by the "name" query parameter.
type Hello struct {
	Greeting string
}

func (h *Hello) HandleHTTP(req *http.Request, w http.ResponseWriter, ctx fc.Context) error {
	name := req.URL.Query().Get("name")
	if name == "" {
		name = "world"
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := fmt.Fprintf(w, "%s, %s (%s)\n", h.Greeting, name, ctx.Function().Name)
	return err
}

// Greet is an HTTP entry point that also reads the function's bundled
// greeting.txt resource when present.
func (h *Hello) Greet(req *http.Request, w http.ResponseWriter, ctx fc.Context) error {
	greeting := h.Greeting
	if s := ctx.Scope(); s != nil {
		if u, ok := s.FindResource("greeting.txt"); ok {
			w.Header().Set("X-Greeting-Source", u)
		}
	}
	_, err := fmt.Fprintf(w, "%s from %s\n", greeting, ctx.RequestID())
	return err
}
