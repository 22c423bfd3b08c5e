package core

import (
	"context"
	"net/http"
	"time"
)

// withTimeout puts a deadline on the request context. Handlers are not
// interrupted; they observe the deadline through fc.Context.
func withTimeout(next http.HandlerFunc, d time.Duration) http.HandlerFunc {
	if d <= 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}
