package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "s3cr3t"

func hsToken(t *testing.T, c jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newHS(t *testing.T) *Middleware {
	t.Helper()
	m, err := New(manifest.Auth{Mode: manifest.AuthHS256, SecretEnv: "TOKEN", Issuer: "fc", Audience: "runtime"},
		config.Map{"TOKEN": secret})
	require.NoError(t, err)
	return m
}

func serve(m *Middleware, req *http.Request) (*httptest.ResponseRecorder, Caller) {
	var seen Caller
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = m.GetCaller(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestHS256(t *testing.T) {
	m := newHS(t)
	now := time.Now()
	valid := jwt.MapClaims{"sub": "platform", "iss": "fc", "aud": "runtime", "iat": now.Unix(), "exp": now.Add(time.Minute).Unix(), "role": "invoker"}

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + hsToken(t, valid), http.StatusNoContent},
		{"lowercase scheme", "bearer " + hsToken(t, valid), http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"basic", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"wrong issuer", "Bearer " + hsToken(t, jwt.MapClaims{"sub": "x", "iss": "other", "aud": "runtime"}), http.StatusUnauthorized},
		{"wrong audience", "Bearer " + hsToken(t, jwt.MapClaims{"sub": "x", "iss": "fc", "aud": "else"}), http.StatusUnauthorized},
		{"expired", "Bearer " + hsToken(t, jwt.MapClaims{"sub": "x", "iss": "fc", "aud": "runtime", "exp": now.Add(-time.Hour).Unix()}), http.StatusUnauthorized},
		{"no subject", "Bearer " + hsToken(t, jwt.MapClaims{"iss": "fc", "aud": "runtime"}), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/invoke", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec, c := serve(m, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), `"errorType":"Unauthorized"`)
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
				return
			}
			assert.Equal(t, "platform", c.Subject)
			assert.Equal(t, []string{"invoker"}, c.Roles)
		})
	}
}

func TestRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	p := filepath.Join(t.TempDir(), "pub.pem")
	require.NoError(t, os.WriteFile(p, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o644))

	m, err := New(manifest.Auth{Mode: manifest.AuthRS256, PublicKeyFile: p}, config.Map{})
	require.NoError(t, err)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "platform", "roles": []string{"a", "b"}}).SignedString(key)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/invoke", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec, c := serve(m, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"a", "b"}, c.Roles)

	// an HS256 token signed with anything is refused in RS256 mode
	req.Header.Set("Authorization", "Bearer "+hsToken(t, jwt.MapClaims{"sub": "platform"}))
	rec, _ = serve(m, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExemptAndDisabled(t *testing.T) {
	m := newHS(t)
	m.Exempt("/ping")
	rec, _ := serve(m, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	off, err := New(manifest.Auth{Mode: manifest.AuthOff}, config.Map{})
	require.NoError(t, err)
	assert.False(t, off.Enabled())
	rec, c := serve(off, httptest.NewRequest(http.MethodPost, "/invoke", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, c.Subject)
}

func TestNewErrors(t *testing.T) {
	_, err := New(manifest.Auth{Mode: manifest.AuthHS256, SecretEnv: "MISSING"}, config.Map{})
	assert.ErrorContains(t, err, "MISSING is not set")

	_, err = New(manifest.Auth{Mode: manifest.AuthRS256, PublicKeyFile: filepath.Join(t.TempDir(), "none.pem")}, config.Map{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
