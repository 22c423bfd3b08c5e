package handler

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/joeydtaylor/steeze-fc/pkg/loader"
)

// ValidateCapability checks that u implements the capability of k. Units
// implementing the legacy pojo shape are refused whatever else they offer.
func ValidateCapability(u *loader.Unit, k Kind) error {
	if u == nil || u.Type == nil {
		return fmt.Errorf("%w: unit has no type", ErrContract)
	}
	if u.Type.Kind() == reflect.Interface {
		return fmt.Errorf("%w: unit %s has interface type %s", ErrContract, u.Name, u.Type)
	}
	if u.Type.Implements(legacyType) {
		return fmt.Errorf("%w (unit %s)", ErrLegacyHandler, u.Name)
	}
	capability := k.Capability()
	if capability == nil {
		return fmt.Errorf("%w: unknown invocation kind %d", ErrContract, int(k))
	}
	if !u.Type.Implements(capability) {
		return fmt.Errorf("%w: handler unit %q must implement %s for %s", ErrContract, u.Name, capability, k)
	}
	return nil
}

// EntryPoint is a located method of a unit's type.
type EntryPoint struct {
	Unit   string
	Type   reflect.Type
	Kind   Kind
	Method reflect.Method
}

// exported applies Go's export rule to a configured method name.
func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// LookupEntryPoint finds the method named name on u whose parameters match
// the signature of k exactly and whose only result is error.
func LookupEntryPoint(u *loader.Unit, name string, k Kind) (EntryPoint, error) {
	m, ok := u.Type.MethodByName(exported(name))
	if !ok {
		return EntryPoint{}, fmt.Errorf("%w: %s has no method %q", ErrEntryPointNotFound, u.Name, name)
	}
	if !matches(m.Type, k.Params()) {
		return EntryPoint{}, fmt.Errorf("%w: %s.%s is %s, want %s", ErrEntryPointNotFound, u.Name, m.Name, m.Type, signature(k))
	}
	return EntryPoint{Unit: u.Name, Type: u.Type, Kind: k, Method: m}, nil
}

// matches compares a method type (receiver first) to params.
func matches(ft reflect.Type, params []reflect.Type) bool {
	if ft.IsVariadic() || ft.NumIn() != len(params)+1 || ft.NumOut() != 1 || ft.Out(0) != errorType {
		return false
	}
	for i, p := range params {
		if ft.In(i+1) != p {
			return false
		}
	}
	return true
}

func signature(k Kind) string {
	params := k.Params()
	args := make([]reflect.Type, len(params))
	copy(args, params)
	return reflect.FuncOf(args, []reflect.Type{errorType}, false).String()
}

func (ep EntryPoint) String() string { return ep.Unit + Separator + ep.Method.Name }

// Call invokes ep on instance. Returned errors and panics are both wrapped in
// *InvocationError.
func (ep EntryPoint) Call(instance any, args ...any) (err error) {
	recv := reflect.ValueOf(instance)
	if !recv.IsValid() || recv.Type() != ep.Type {
		return fmt.Errorf("%w: instance %T does not carry %s", ErrContract, instance, ep.Method.Name)
	}
	params := ep.Kind.Params()
	if len(args) != len(params) {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrContract, ep.Method.Name, len(params), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.Zero(params[i])
			continue
		}
		v := reflect.ValueOf(a)
		if !v.Type().AssignableTo(params[i]) {
			return fmt.Errorf("%w: argument %d is %T, want %s", ErrContract, i, a, params[i])
		}
		in[i] = v
	}

	defer func() {
		if r := recover(); r != nil {
			err = &InvocationError{
				Kind:      ep.Kind,
				Handler:   ep.String(),
				Unhandled: true,
				Err:       fmt.Errorf("panic: %v", r),
			}
		}
	}()

	out := recv.Method(ep.Method.Index).Call(in)
	if e, _ := out[0].Interface().(error); e != nil {
		return &InvocationError{Kind: ep.Kind, Handler: ep.String(), Err: e}
	}
	return nil
}
