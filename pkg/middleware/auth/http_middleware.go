package auth

import (
	"context"
	"net/http"

	"github.com/joeydtaylor/steeze-fc/pkg/codec"
)

func (m *Middleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.Enabled() {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := m.exempt[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, ErrMissingToken)
				return
			}
			c, err := m.validateToken(raw)
			if err != nil {
				unauthorized(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), callerCtxKey, c)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="fc"`)
	codec.WriteError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
}
