package metrics

import (
	"errors"
	"time"

	"github.com/joeydtaylor/steeze-fc/pkg/handler"
	"github.com/joeydtaylor/steeze-fc/pkg/loader"
)

// Invocations records dispatcher outcomes. It satisfies dispatch.Observer.
type Invocations struct{}

func (Invocations) Dispatched(kind handler.Kind, unit string, took time.Duration, err error) {
	if unit == "" {
		unit = "unknown"
	}
	invocations.WithLabelValues(kind.String(), unit, Result(err)).Inc()
	invocationTime.WithLabelValues(kind.String()).Observe(took.Seconds())
}

// UnitResolved counts a first-time unit resolution won by layer.
func UnitResolved(_ string, layer string) {
	unitResolutions.WithLabelValues(layer).Inc()
}

// HandlerCreated counts a handler instance construction.
func HandlerCreated(unit string) {
	handlerInstances.WithLabelValues(unit).Inc()
}

// Result labels an invocation outcome.
func Result(err error) string {
	var ie *handler.InvocationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ie):
		if ie.Unhandled {
			return "unhandled"
		}
		return "handled"
	case errors.Is(err, handler.ErrInvalidSpec), errors.Is(err, handler.ErrConfiguration):
		return "configuration"
	case errors.Is(err, loader.ErrUnitNotFound), errors.Is(err, loader.ErrUnitDefinition):
		return "unit"
	case errors.Is(err, handler.ErrContract):
		return "contract"
	case errors.Is(err, handler.ErrEntryPointNotFound):
		return "entry_point"
	default:
		return "error"
	}
}
