package core

import (
	"net/http"

	"github.com/joeydtaylor/steeze-fc/pkg/codec"
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/auth"
)

// withGuard requires the caller to hold one of roles. It is a no-op when
// auth is off or roles is empty.
func withGuard(next http.HandlerFunc, a *auth.Middleware, roles []string) http.HandlerFunc {
	if !a.Enabled() || len(roles) == 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.IsAuthenticated(r.Context()) {
			codec.WriteError(w, http.StatusUnauthorized, "Unauthorized", "invocation token required")
			return
		}
		for _, role := range roles {
			if a.HasRole(r.Context(), role) {
				next(w, r)
				return
			}
		}
		codec.WriteError(w, http.StatusForbidden, "Forbidden", "caller lacks an invoking role")
	}
}
