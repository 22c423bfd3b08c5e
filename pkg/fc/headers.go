package fc

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// Invocation metadata travels on these headers between the platform and
// the runtime API.
const (
	HeaderRequestID         = "x-fc-request-id"
	HeaderErrorType         = "x-fc-error-type"
	HeaderDuration          = "x-fc-invocation-duration"
	HeaderFunctionName      = "x-fc-function-name"
	HeaderFunctionHandler   = "x-fc-function-handler"
	HeaderFunctionInit      = "x-fc-function-initializer"
	HeaderFunctionMemory    = "x-fc-function-memory"
	HeaderFunctionTimeout   = "x-fc-function-timeout"
	HeaderInitTimeout       = "x-fc-initialization-timeout"
	HeaderServiceName       = "x-fc-service-name"
	HeaderServiceLogProject = "x-fc-service-logproject"
	HeaderServiceLogStore   = "x-fc-service-logstore"
	HeaderQualifier         = "x-fc-qualifier"
	HeaderVersionID         = "x-fc-version-id"
	HeaderRegion            = "x-fc-region"
	HeaderAccountID         = "x-fc-account-id"
	HeaderAccessKeyID       = "x-fc-access-key-id"
	HeaderAccessKeySecret   = "x-fc-access-key-secret"
	HeaderSecurityToken     = "x-fc-security-token"
)

// FromHeaders builds an Invocation from the x-fc headers of h. Fields
// missing from h keep the values of defaults.
func FromHeaders(parent context.Context, h http.Header, defaults FunctionParams) *Invocation {
	inv := NewInvocation(parent, strings.TrimSpace(h.Get(HeaderRequestID)))
	inv.Creds = Credentials{
		AccessKeyID:     h.Get(HeaderAccessKeyID),
		AccessKeySecret: h.Get(HeaderAccessKeySecret),
		SecurityToken:   h.Get(HeaderSecurityToken),
	}
	inv.Func = FunctionParams{
		Name:                     or(h.Get(HeaderFunctionName), defaults.Name),
		Handler:                  or(h.Get(HeaderFunctionHandler), defaults.Handler),
		Initializer:              or(h.Get(HeaderFunctionInit), defaults.Initializer),
		MemoryMB:                 atoiOr(h.Get(HeaderFunctionMemory), defaults.MemoryMB),
		TimeoutSec:               atoiOr(h.Get(HeaderFunctionTimeout), defaults.TimeoutSec),
		InitializationTimeoutSec: atoiOr(h.Get(HeaderInitTimeout), defaults.InitializationTimeoutSec),
	}
	inv.Svc = ServiceMeta{
		Name:       h.Get(HeaderServiceName),
		LogProject: h.Get(HeaderServiceLogProject),
		LogStore:   h.Get(HeaderServiceLogStore),
		Qualifier:  h.Get(HeaderQualifier),
		VersionID:  h.Get(HeaderVersionID),
	}
	inv.Reg = h.Get(HeaderRegion)
	inv.Acct = h.Get(HeaderAccountID)
	return inv
}

func or(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func atoiOr(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return def
	}
	return n
}
