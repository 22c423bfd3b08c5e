package logger

import (
	"net/http"
	"strings"
	"sync"
)

var (
	bodyLogMu    sync.RWMutex
	bodyLogPaths = map[string]struct{}{}
)

// AddBodyLogPaths enables request body logging for the given paths.
func AddBodyLogPaths(paths ...string) {
	bodyLogMu.Lock()
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p != "" {
			bodyLogPaths[p] = struct{}{}
		}
	}
	bodyLogMu.Unlock()
}

// Only log small text or JSON request bodies on allowlisted routes.
func shouldLogBody(r *http.Request, body []byte) bool {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		return false
	}
	if len(body) == 0 || len(body) > 1<<16 { // 64 KiB cap
		return false
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/json") && !strings.HasPrefix(ct, "text/") {
		return false
	}
	bodyLogMu.RLock()
	_, ok := bodyLogPaths[r.URL.Path]
	bodyLogMu.RUnlock()
	return ok
}
