package fc

import (
	"context"

	"go.uber.org/zap"
)

// Credentials are the temporary keys the platform grants the function role.
type Credentials struct {
	AccessKeyID     string
	AccessKeySecret string
	SecurityToken   string
}

// FunctionParams describe the function being invoked.
type FunctionParams struct {
	Name                     string
	Handler                  string
	Initializer              string
	MemoryMB                 int
	TimeoutSec               int
	InitializationTimeoutSec int
}

// ServiceMeta describe the service owning the function.
type ServiceMeta struct {
	Name       string
	LogProject string
	LogStore   string
	Qualifier  string
	VersionID  string
}

// ResourceScope is the read side of the code-loading scope that is active
// for an invocation.
type ResourceScope interface {
	FindResource(name string) (string, bool)
	FindResources(name string) ([]string, error)
}

// Context is passed to every handler entry point.
type Context interface {
	context.Context
	RequestID() string
	Credentials() Credentials
	Function() FunctionParams
	Service() ServiceMeta
	Region() string
	AccountID() string
	Logger() *zap.Logger
	Scope() ResourceScope
}

// Invocation is the runtime's Context implementation.
type Invocation struct {
	context.Context

	ID    string
	Creds Credentials
	Func  FunctionParams
	Svc   ServiceMeta
	Reg   string
	Acct  string
	Log   *zap.Logger
	Res   ResourceScope
}

// NewInvocation returns an Invocation for requestID bound to parent.
func NewInvocation(parent context.Context, requestID string) *Invocation {
	if parent == nil {
		parent = context.Background()
	}
	return &Invocation{Context: parent, ID: requestID}
}

func (i *Invocation) RequestID() string        { return i.ID }
func (i *Invocation) Credentials() Credentials { return i.Creds }
func (i *Invocation) Function() FunctionParams { return i.Func }
func (i *Invocation) Service() ServiceMeta     { return i.Svc }
func (i *Invocation) Region() string           { return i.Reg }
func (i *Invocation) AccountID() string        { return i.Acct }
func (i *Invocation) Scope() ResourceScope     { return i.Res }

// Logger never returns nil.
func (i *Invocation) Logger() *zap.Logger {
	if i.Log == nil {
		return zap.NewNop()
	}
	return i.Log
}

type scoped struct {
	Context
	scope ResourceScope
}

func (s scoped) Scope() ResourceScope { return s.scope }

// WithScope returns ctx with s as its active scope. It must be applied at
// the start of every invocation; the binding is not carried between calls.
func WithScope(ctx Context, s ResourceScope) Context {
	if ctx == nil {
		ctx = NewInvocation(nil, "")
	}
	if inv, ok := ctx.(*Invocation); ok {
		cp := *inv
		cp.Res = s
		return &cp
	}
	if sc, ok := ctx.(scoped); ok {
		ctx = sc.Context
	}
	return scoped{Context: ctx, scope: s}
}
