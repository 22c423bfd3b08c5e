package handler

import (
	"errors"
	"fmt"

	"github.com/joeydtaylor/steeze-fc/pkg/loader"
)

var (
	ErrConfiguration      = errors.New("configuration error")
	ErrInvalidSpec        = errors.New("invalid handler spec")
	ErrContract           = errors.New("handler contract violated")
	ErrEntryPointNotFound = errors.New("entry point not found")
	ErrInvocation         = errors.New("invocation failed")
	ErrInitialization     = errors.New("initialization failed")

	// ErrLegacyHandler rejects PojoRequestHandler units. It matches ErrContract.
	ErrLegacyHandler = fmt.Errorf("%w: fc.PojoRequestHandler is not supported, implement one of the other fc interfaces", ErrContract)
)

// InvocationError carries a failure raised by a handler entry point.
// Unhandled is set when the handler panicked instead of returning an error.
type InvocationError struct {
	Kind      Kind
	Handler   string
	Unhandled bool
	Err       error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Handler, e.Err)
}

func (e *InvocationError) Unwrap() []error { return []error{ErrInvocation, e.Err} }

// ErrorType is the platform's label for the failure class.
func (e *InvocationError) ErrorType() string {
	if e.Unhandled {
		return "UnhandledInvocationError"
	}
	return "HandledInvocationError"
}

// Class names the failure class of err for reporting to the platform.
func Class(err error) string {
	var ie *InvocationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ie) && errors.Is(err, ErrInitialization):
		return "InitializationError"
	case errors.As(err, &ie):
		return "InvocationError"
	case errors.Is(err, ErrInvalidSpec):
		return "InvalidSpecError"
	case errors.Is(err, ErrConfiguration):
		return "ConfigurationError"
	case errors.Is(err, loader.ErrUnitNotFound):
		return "UnitResolutionError"
	case errors.Is(err, loader.ErrUnitDefinition):
		return "UnitDefinitionError"
	case errors.Is(err, ErrContract):
		return "ContractError"
	case errors.Is(err, ErrEntryPointNotFound):
		return "EntryPointNotFoundError"
	case errors.Is(err, ErrInitialization):
		return "InitializationError"
	default:
		return "RuntimeError"
	}
}
