// Package fc defines the contracts between the runtime and user handlers:
// the capabilities a handler unit implements and the invocation context it
// receives.
package fc

import (
	"io"
	"net/http"
)

// FunctionInitializer is implemented by units configured as the function
// initializer. It runs once per runtime instance before any request.
type FunctionInitializer interface {
	Initialize(ctx Context) error
}

// StreamRequestHandler handles raw event invocations.
type StreamRequestHandler interface {
	HandleRequest(in io.Reader, out io.Writer, ctx Context) error
}

// HTTPRequestHandler handles HTTP-triggered invocations. The response writer
// is owned by the handler until it returns.
type HTTPRequestHandler interface {
	HandleHTTP(req *http.Request, w http.ResponseWriter, ctx Context) error
}

// PojoRequestHandler is the retired object-in/object-out handler shape.
// Units implementing it are rejected by the runtime.
type PojoRequestHandler interface {
	HandlePojo(input any, ctx Context) (any, error)
}
