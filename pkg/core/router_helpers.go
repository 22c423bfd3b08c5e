package core

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/joeydtaylor/steeze-fc/pkg/codec"
	"github.com/joeydtaylor/steeze-fc/pkg/fc"
	"github.com/joeydtaylor/steeze-fc/pkg/handler"
	"github.com/joeydtaylor/steeze-fc/pkg/loader"
)

const (
	errorHandled   = "HandledInvocationError"
	errorUnhandled = "UnhandledInvocationError"
)

// statusFor maps a dispatch failure to the runtime API status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, handler.ErrInvalidSpec), errors.Is(err, handler.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, loader.ErrUnitNotFound), errors.Is(err, handler.ErrEntryPointNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorType is the x-fc-error-type of err. Only errors returned by user
// code are handled; panics and runtime failures are not.
func errorType(err error) string {
	var ie *handler.InvocationError
	if errors.As(err, &ie) {
		return ie.ErrorType()
	}
	return errorUnhandled
}

func writeFailure(w http.ResponseWriter, err error) {
	w.Header().Set(fc.HeaderErrorType, errorType(err))
	codec.WriteError(w, statusFor(err), handler.Class(err), err.Error())
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
