package fc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScope struct{ tag string }

func (f fakeScope) FindResource(string) (string, bool)     { return f.tag, true }
func (f fakeScope) FindResources(string) ([]string, error) { return []string{f.tag}, nil }

type plainCtx struct{ *Invocation }

func TestWithScopeCopiesInvocation(t *testing.T) {
	inv := NewInvocation(context.Background(), "req-1")
	got := WithScope(inv, fakeScope{tag: "a"})

	require.NotNil(t, got.Scope())
	assert.Nil(t, inv.Scope(), "the input invocation must stay unbound")
	assert.Equal(t, "req-1", got.RequestID())

	url, ok := got.Scope().FindResource("x")
	assert.True(t, ok)
	assert.Equal(t, "a", url)
}

func TestWithScopeRebindsWrappedContext(t *testing.T) {
	base := plainCtx{NewInvocation(context.Background(), "req-2")}

	first := WithScope(base, fakeScope{tag: "first"})
	second := WithScope(first, fakeScope{tag: "second"})

	url, _ := second.Scope().FindResource("x")
	assert.Equal(t, "second", url)
	_, nested := second.(scoped).Context.(scoped)
	assert.False(t, nested, "scopes must not stack")
}

func TestWithScopeNilContext(t *testing.T) {
	got := WithScope(nil, fakeScope{tag: "z"})
	require.NotNil(t, got)
	assert.Equal(t, "", got.RequestID())
	assert.NotNil(t, got.Logger())
	assert.NoError(t, got.Err())
}
