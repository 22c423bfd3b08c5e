package core

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/steeze-fc/pkg/fc"
	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
	httpx "github.com/joeydtaylor/steeze-fc/pkg/transport/httpx"
	"go.uber.org/zap"
)

type runtimeAPI struct {
	d  BuildDeps
	fn manifest.Function
}

// invocation decodes the invocation context carried by r.
func (a *runtimeAPI) invocation(r *http.Request) *fc.Invocation {
	inv := fc.FromHeaders(r.Context(), r.Header, a.fn.Params())
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Creds == (fc.Credentials{}) {
		if c, err := a.d.Creds.Issue(r); err == nil {
			inv.Creds = c
		} else {
			a.d.Log.Warn("credentials unavailable", zap.String("requestId", inv.ID), zap.Error(err))
		}
	}
	if inv.Reg == "" {
		inv.Reg = a.fn.Region
	}
	if inv.Acct == "" {
		inv.Acct = a.fn.AccountID
	}
	if inv.Svc.Name == "" {
		inv.Svc.Name = a.fn.Service
	}
	inv.Log = a.d.Log.With(zap.String("requestId", inv.ID))
	return inv
}

func (a *runtimeAPI) initialize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	inv := a.invocation(r)
	w.Header().Set(fc.HeaderRequestID, inv.ID)

	err := a.d.Dispatcher.Initialize(inv)
	w.Header().Set(fc.HeaderDuration, millis(time.Since(start)))
	if err != nil {
		writeFailure(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (a *runtimeAPI) invoke(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	inv := a.invocation(r)
	w.Header().Set(fc.HeaderRequestID, inv.ID)

	var out bytes.Buffer
	err := a.d.Dispatcher.HandleRequest(r.Body, &out, inv)
	w.Header().Set(fc.HeaderDuration, millis(time.Since(start)))
	if err != nil {
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Bytes())
}

func (a *runtimeAPI) httpInvoke(w http.ResponseWriter, r *http.Request) {
	inv := a.invocation(r)
	sw := &stampWriter{ResponseWriter: w, start: time.Now()}
	sw.Header().Set(fc.HeaderRequestID, inv.ID)

	req := r.Clone(r.Context())
	req.URL.Path = "/" + strings.TrimPrefix(httpx.Wildcard(r), "/")
	req.URL.RawPath = ""
	req.RequestURI = req.URL.RequestURI()

	err := a.d.Dispatcher.HandleHTTP(req, sw, inv)
	if err == nil {
		if !sw.wrote {
			sw.WriteHeader(http.StatusOK)
		}
		return
	}
	if sw.wrote {
		// the response is already on the wire; the failure is only logged
		inv.Logger().Error("http handler failed after writing", zap.Error(err))
		return
	}
	w.Header().Set(fc.HeaderDuration, millis(time.Since(sw.start)))
	writeFailure(w, err)
}

// stampWriter adds the invocation duration header when the handler first
// writes.
type stampWriter struct {
	http.ResponseWriter
	start time.Time
	wrote bool
}

func (s *stampWriter) WriteHeader(code int) {
	if s.wrote {
		return
	}
	s.wrote = true
	s.Header().Set(fc.HeaderDuration, millis(time.Since(s.start)))
	s.ResponseWriter.WriteHeader(code)
}

func (s *stampWriter) Write(b []byte) (int, error) {
	if !s.wrote {
		s.WriteHeader(http.StatusOK)
	}
	return s.ResponseWriter.Write(b)
}

func (s *stampWriter) Unwrap() http.ResponseWriter { return s.ResponseWriter }
