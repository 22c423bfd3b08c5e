package auth

import (
	"context"
	"slices"
)

func (m *Middleware) GetCaller(ctx context.Context) Caller {
	if c, ok := ctx.Value(callerCtxKey).(Caller); ok {
		return c
	}
	return Caller{}
}

func (m *Middleware) IsAuthenticated(ctx context.Context) bool {
	c, ok := ctx.Value(callerCtxKey).(Caller)
	return ok && c.Subject != ""
}

func (m *Middleware) HasRole(ctx context.Context, role string) bool {
	c, ok := ctx.Value(callerCtxKey).(Caller)
	return ok && slices.Contains(c.Roles, role)
}
