package logger

import (
	"bytes"
	"io"
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-fc/pkg/fc"
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/auth"
	"go.uber.org/zap"
)

// Middleware writes one access record per runtime API request.
type Middleware struct {
	log *zap.Logger
}

func NewMiddleware(l *zap.Logger) *Middleware {
	if l == nil {
		l = zap.NewNop()
	}
	return &Middleware{log: l}
}

func (m *Middleware) Middleware(ca *auth.Middleware) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimd.NewWrapResponseWriter(w, r.ProtoMajor)

			// Read and restore the body so the handler can still consume it.
			var body []byte
			if r.Body != nil && shouldReadBody(r) {
				if b, err := io.ReadAll(r.Body); err == nil {
					body = b
				}
				r.Body.Close()
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}

			start := time.Now()
			defer func() {
				lat := time.Since(start)

				isAuth := false
				subject := ""
				if ca != nil {
					isAuth = ca.IsAuthenticated(r.Context())
					subject = ca.GetCaller(r.Context()).Subject
				}

				log := m.log.With(
					zap.String("requestId", chimd.GetReqID(r.Context())),
					zap.String("fcRequestId", ww.Header().Get(fc.HeaderRequestID)),
					zap.String("errorType", ww.Header().Get(fc.HeaderErrorType)),
					zap.String("httpScheme", scheme),
					zap.Bool("isAuthenticated", isAuth),
					zap.String("subject", subject),
					zap.String("httpProto", r.Proto),
					zap.String("httpMethod", r.Method),
					zap.String("remoteAddr", r.RemoteAddr),
					zap.String("uri", r.URL.Path),
					zap.Duration("lat", lat),
					zap.Int("responseSize", ww.BytesWritten()),
					zap.Int("status", ww.Status()),
				)

				if shouldLogBody(r, body) {
					log.Info("access", zap.ByteString("requestData", body))
				} else {
					log.Info("access")
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func shouldReadBody(r *http.Request) bool {
	bodyLogMu.RLock()
	_, ok := bodyLogPaths[r.URL.Path]
	bodyLogMu.RUnlock()
	return ok
}
