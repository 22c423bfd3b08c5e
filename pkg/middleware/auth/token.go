package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

func bearer(header string) (string, bool) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

func (m *Middleware) validateToken(raw string) (Caller, error) {
	var (
		alg string
		key any
	)
	switch m.mode {
	case manifest.AuthHS256:
		alg, key = jwt.SigningMethodHS256.Alg(), m.secret
	case manifest.AuthRS256:
		alg, key = jwt.SigningMethodRS256.Alg(), m.publicKey
	default:
		return Caller{}, fmt.Errorf("%w: auth mode %q", ErrInvalidToken, m.mode)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{alg}),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(m.leeway),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}

	var c claims
	tok, err := jwt.NewParser(opts...).ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return Caller{}, ErrInvalidToken
	}
	if c.Subject == "" {
		return Caller{}, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	roles := c.Roles
	if c.Role != "" {
		roles = append([]string{c.Role}, roles...)
	}
	return Caller{Subject: c.Subject, Issuer: c.Issuer, Roles: roles}, nil
}
