package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joeydtaylor/steeze-fc/pkg/fc"
	"github.com/joeydtaylor/steeze-fc/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type streamer struct{ calls int }

func (s *streamer) HandleRequest(in io.Reader, out io.Writer, ctx fc.Context) error {
	return s.Run(in, out, ctx)
}

func (s *streamer) Run(in io.Reader, out io.Writer, _ fc.Context) error {
	s.calls++
	_, err := io.Copy(out, in)
	return err
}

func (s *streamer) Fail(io.Reader, io.Writer, fc.Context) error { return errors.New("nope") }

func (s *streamer) Explode(io.Reader, io.Writer, fc.Context) error { panic("kaboom") }

func (s *streamer) Wrong(io.Reader, io.Writer) error { return nil }

func (s *streamer) Bytes(in []byte, out io.Writer, ctx fc.Context) error { return nil }

func (s *streamer) Twice(io.Reader, io.Writer, fc.Context) (int, error) { return 0, nil }

type initializer struct{ ready bool }

func (i *initializer) Initialize(fc.Context) error { i.ready = true; return nil }

type webHandler struct{}

func (webHandler) HandleHTTP(_ *http.Request, w http.ResponseWriter, _ fc.Context) error {
	w.WriteHeader(http.StatusTeapot)
	return nil
}

// pojo also satisfies the stream shape but must still be rejected.
type pojo struct{ streamer }

func (pojo) HandlePojo(in any, _ fc.Context) (any, error) { return in, nil }

func unitOf(name string, def loader.Definition) *loader.Unit {
	return &loader.Unit{Name: name, Origin: "test", Definition: def}
}

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		want    Spec
		wantErr bool
	}{
		{raw: "demo.Echo::run", want: Spec{Unit: "demo.Echo", EntryPoint: "run"}},
		{raw: "example.App::handleRequest", want: Spec{Unit: "example.App", EntryPoint: "handleRequest"}},
		{raw: " a.B :: c ", want: Spec{Unit: "a.B", EntryPoint: "c"}},
		{raw: "demo.Echo", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "a::b::c", wantErr: true},
		{raw: "::run", wantErr: true},
		{raw: "demo.Echo::", wantErr: true},
		{raw: "::", wantErr: true},
		{raw: "demo.Echo:run", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSpec)
				assert.Contains(t, err.Error(), tt.raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecHelpers(t *testing.T) {
	s := Spec{Unit: "example.pkg.App", EntryPoint: "handleRequest"}
	assert.Equal(t, "example.pkg.App::handleRequest", s.String())
	assert.Equal(t, "example.pkg", s.UnitPackage())
	assert.Equal(t, "", Spec{Unit: "App"}.UnitPackage())
}

func TestValidateCapability(t *testing.T) {
	stream := unitOf("demo.Stream", loader.Define(func() *streamer { return &streamer{} }))
	ini := unitOf("demo.Init", loader.Define(func() *initializer { return &initializer{} }))
	web := unitOf("demo.Web", loader.Define(func() webHandler { return webHandler{} }))
	legacy := unitOf("demo.Pojo", loader.Define(func() *pojo { return &pojo{} }))
	iface := unitOf("demo.Iface", loader.Define[fc.StreamRequestHandler](nil))

	assert.NoError(t, ValidateCapability(stream, Stream))
	assert.NoError(t, ValidateCapability(ini, Initializer))
	assert.NoError(t, ValidateCapability(web, HTTP))

	assert.ErrorIs(t, ValidateCapability(stream, Initializer), ErrContract)
	assert.ErrorIs(t, ValidateCapability(ini, HTTP), ErrContract)
	assert.ErrorIs(t, ValidateCapability(iface, Stream), ErrContract)
	assert.ErrorIs(t, ValidateCapability(stream, Kind(42)), ErrContract)

	for _, k := range []Kind{Initializer, Stream, HTTP} {
		err := ValidateCapability(legacy, k)
		assert.ErrorIs(t, err, ErrLegacyHandler, k.String())
		assert.ErrorIs(t, err, ErrContract, k.String())
	}
}

func TestLookupEntryPoint(t *testing.T) {
	u := unitOf("demo.Stream", loader.Define(func() *streamer { return &streamer{} }))

	ep, err := LookupEntryPoint(u, "run", Stream)
	require.NoError(t, err)
	assert.Equal(t, "Run", ep.Method.Name)
	assert.Equal(t, "demo.Stream::Run", ep.String())

	_, err = LookupEntryPoint(u, "HandleRequest", Stream)
	assert.NoError(t, err)

	for _, name := range []string{"missing", "wrong", "bytes", "twice", "calls"} {
		_, err := LookupEntryPoint(u, name, Stream)
		assert.ErrorIs(t, err, ErrEntryPointNotFound, name)
	}

	_, err = LookupEntryPoint(u, "run", Initializer)
	assert.ErrorIs(t, err, ErrEntryPointNotFound)
}

func TestCall(t *testing.T) {
	s := &streamer{}
	u := unitOf("demo.Stream", loader.Define(func() *streamer { return s }))

	ep, err := LookupEntryPoint(u, "run", Stream)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, ep.Call(s, strings.NewReader("ping"), &out, nil))
	assert.Equal(t, "ping", out.String())
	assert.Equal(t, 1, s.calls)
}

func TestCallWrapsFailures(t *testing.T) {
	s := &streamer{}
	u := unitOf("demo.Stream", loader.Define(func() *streamer { return s }))

	fail, err := LookupEntryPoint(u, "fail", Stream)
	require.NoError(t, err)
	err = fail.Call(s, strings.NewReader(""), io.Discard, nil)
	require.ErrorIs(t, err, ErrInvocation)
	var ie *InvocationError
	require.ErrorAs(t, err, &ie)
	assert.False(t, ie.Unhandled)
	assert.Equal(t, "HandledInvocationError", ie.ErrorType())
	assert.Contains(t, err.Error(), "nope")

	explode, err := LookupEntryPoint(u, "explode", Stream)
	require.NoError(t, err)
	err = explode.Call(s, strings.NewReader(""), io.Discard, nil)
	require.ErrorAs(t, err, &ie)
	assert.True(t, ie.Unhandled)
	assert.Equal(t, "UnhandledInvocationError", ie.ErrorType())
	assert.Contains(t, err.Error(), "kaboom")
}

func TestCallRejectsMismatchedInstanceAndArgs(t *testing.T) {
	u := unitOf("demo.Stream", loader.Define(func() *streamer { return &streamer{} }))
	ep, err := LookupEntryPoint(u, "run", Stream)
	require.NoError(t, err)

	assert.ErrorIs(t, ep.Call(&initializer{}, strings.NewReader(""), io.Discard, nil), ErrContract)
	assert.ErrorIs(t, ep.Call(nil, strings.NewReader(""), io.Discard, nil), ErrContract)
	assert.ErrorIs(t, ep.Call(&streamer{}, strings.NewReader("")), ErrContract)
	assert.ErrorIs(t, ep.Call(&streamer{}, "not a reader", io.Discard, nil), ErrContract)
}

func TestHTTPEntryPoint(t *testing.T) {
	u := unitOf("demo.Web", loader.Define(func() webHandler { return webHandler{} }))
	ep, err := LookupEntryPoint(u, "handleHTTP", HTTP)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, ep.Call(webHandler{}, req, rec, nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "initializer", Initializer.String())
	assert.Equal(t, "stream handler", Stream.String())
	assert.Equal(t, "http handler", HTTP.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestClass(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&InvocationError{Err: errors.New("x")}, "InvocationError"},
		{fmt.Errorf("%w: %w", ErrInitialization, &InvocationError{Err: errors.New("x")}), "InitializationError"},
		{fmt.Errorf("%w: %w", ErrInitialization, ErrConfiguration), "ConfigurationError"},
		{ErrInvalidSpec, "InvalidSpecError"},
		{fmt.Errorf("%w: demo.Nope", loader.ErrUnitNotFound), "UnitResolutionError"},
		{loader.ErrUnitDefinition, "UnitDefinitionError"},
		{ErrLegacyHandler, "ContractError"},
		{ErrEntryPointNotFound, "EntryPointNotFoundError"},
		{ErrInitialization, "InitializationError"},
		{errors.New("boom"), "RuntimeError"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Class(tt.err), fmt.Sprint(tt.err))
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	got, err := ParseKind(" HTTP ")
	require.NoError(t, err)
	assert.Equal(t, HTTP, got)
	_, err = ParseKind("pojo")
	assert.Error(t, err)
}
