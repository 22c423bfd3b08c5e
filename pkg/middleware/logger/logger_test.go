package logger

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeydtaylor/steeze-fc/pkg/fc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogWritesFile(t *testing.T) {
	dir := t.TempDir()
	l := NewLog("system.log", WithDir(dir), WithoutConsole(), WithLevel(zapcore.WarnLevel))
	l.Info("dropped")
	l.Warn("kept", zap.String("k", "v"))
	_ = l.Sync()

	b, err := os.ReadFile(filepath.Join(dir, "system.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"kept"`)
	assert.NotContains(t, string(b), "dropped")
}

func TestAccessRecord(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mw := NewMiddleware(zap.New(core))
	AddBodyLogPaths("/invoke-logged")

	h := mw.Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		w.Header().Set(fc.HeaderRequestID, "fc-1")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write(b)
	}))

	req := httptest.NewRequest(http.MethodPost, "/invoke-logged", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, `{"a":1}`, rec.Body.String(), "body must survive the logger")
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "fc-1", fields["fcRequestId"])
	assert.EqualValues(t, http.StatusAccepted, fields["status"])
	assert.EqualValues(t, 7, fields["responseSize"])
	assert.Equal(t, `{"a":1}`, fields["requestData"])

	req = httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader("secret"))
	req.Header.Set("Content-Type", "text/plain")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, 2, logs.Len())
	_, logged := logs.All()[1].ContextMap()["requestData"]
	assert.False(t, logged)
}
