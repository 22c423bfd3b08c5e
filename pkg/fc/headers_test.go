package fc

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromHeaders(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderRequestID, " req-1 ")
	h.Set(HeaderFunctionName, "echo")
	h.Set(HeaderFunctionMemory, "512")
	h.Set(HeaderFunctionTimeout, "nope")
	h.Set(HeaderServiceName, "svc")
	h.Set(HeaderRegion, "cn-hangzhou")
	h.Set(HeaderAccountID, "1234")
	h.Set(HeaderAccessKeyID, "ak")
	h.Set(HeaderSecurityToken, "tok")

	inv := FromHeaders(context.Background(), h, FunctionParams{Name: "fallback", Handler: "demo.Echo::run", TimeoutSec: 3})

	assert.Equal(t, "req-1", inv.RequestID())
	assert.Equal(t, FunctionParams{Name: "echo", Handler: "demo.Echo::run", MemoryMB: 512, TimeoutSec: 3}, inv.Function())
	assert.Equal(t, "svc", inv.Service().Name)
	assert.Equal(t, "cn-hangzhou", inv.Region())
	assert.Equal(t, "1234", inv.AccountID())
	assert.Equal(t, Credentials{AccessKeyID: "ak", SecurityToken: "tok"}, inv.Credentials())
	assert.NotNil(t, inv.Logger())
}
