package auth

import (
	"crypto/rsa"
	"time"

	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
)

// Middleware verifies bearer invocation tokens on the runtime API.
type Middleware struct {
	mode      manifest.AuthMode
	secret    []byte
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
	leeway    time.Duration
	exempt    map[string]struct{}
}

// Enabled reports whether requests are checked at all.
func (m *Middleware) Enabled() bool {
	return m != nil && m.mode != manifest.AuthOff && m.mode != ""
}

// Exempt lets paths through without a token.
func (m *Middleware) Exempt(paths ...string) {
	for _, p := range paths {
		m.exempt[p] = struct{}{}
	}
}
