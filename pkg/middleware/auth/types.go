package auth

import "github.com/golang-jwt/jwt/v5"

// Caller is the identity proven by an invocation token.
type Caller struct {
	Subject string   `json:"sub"`
	Issuer  string   `json:"iss"`
	Roles   []string `json:"roles"`
}

type contextKey struct{ name string }

var callerCtxKey = &contextKey{"caller"}

type claims struct {
	jwt.RegisteredClaims
	Role  string   `json:"role"`
	Roles []string `json:"roles"`
}
