package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const unmatchedRoute = "unmatched"

// skipPaths are never recorded.
var skipPaths = map[string]struct{}{"/metrics": {}}

func isSkipPath(r *http.Request) bool {
	_, ok := skipPaths[r.URL.Path]
	return ok
}

// routeLabel is the chi route pattern the request matched, so every
// /http-invoke/... path shares one series. Requests served outside a chi
// router keep their path.
func routeLabel(r *http.Request) string {
	rc := chi.RouteContext(r.Context())
	if rc == nil {
		return r.URL.Path
	}
	if p := rc.RoutePattern(); p != "" {
		return p
	}
	return unmatchedRoute
}
