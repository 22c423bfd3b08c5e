package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/handler"
	"github.com/joeydtaylor/steeze-fc/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// codeRoot writes a code root holding demo/Local.unit and clears the
// settings a developer machine might carry.
func codeRoot(t *testing.T) string {
	t.Helper()
	for _, k := range []string{
		config.KeyHandler, config.KeyInitializer, config.KeyLibPath,
		"STEEZE_FC_MANIFEST", "STEEZE_FC_CODE_ROOTS", "STEEZE_FC_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "demo"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "demo", "Local.unit"), []byte(`symbol = "demo/echo"`), 0o644))
	return root
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func missingManifest(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.toml")
}

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "STEEZE_FC", envPrefix)
	assert.Equal(t, "manifest", manifestFlagName)
	assert.Equal(t, "code-root", codeRootFlagName)
	assert.Equal(t, "log-level", logLevelFlagName)
	assert.Equal(t, "manifest.toml", defaultManifest)
	assert.Equal(t, "warn", defaultLogLevel)
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "classpath", "resolve", "invoke", "version"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup(manifestFlagName))
	assert.NotNil(t, cmd.PersistentFlags().ShorthandLookup("m"))
}

func TestClasspathCmd(t *testing.T) {
	root := codeRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib.jar"), []byte("not read"), 0o644))

	out, _, err := run(t, "", "classpath", "-m", missingManifest(t), "--code-root", root, "--urls")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "file:"))
	assert.True(t, strings.HasSuffix(lines[1], "lib.jar"))

	out, _, err = run(t, "", "classpath", "-m", missingManifest(t), "--code-root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "archive")
	assert.Contains(t, out, "dir")
}

func TestClasspathCmd_NoUsableRoot(t *testing.T) {
	codeRoot(t)
	_, _, err := run(t, "", "classpath", "-m", missingManifest(t), "--code-root", filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
}

func TestInvokeCmd_StdinToStdout(t *testing.T) {
	root := codeRoot(t)
	out, _, err := run(t, "payload", "invoke", "-m", missingManifest(t), "--code-root", root,
		"--handler", "demo.Local::handleRequest", "--initializer", "demo.Local::initialize", "--init")
	require.NoError(t, err)
	assert.Equal(t, "payload", out)
}

func TestInvokeCmd_FlagBeatsEnvironment(t *testing.T) {
	root := codeRoot(t)
	t.Setenv(config.KeyHandler, "demo.Missing::run")
	out, _, err := run(t, "x", "invoke", "-m", missingManifest(t), "--code-root", root, "--handler", "demo.Local::run")
	require.NoError(t, err)
	assert.Equal(t, "x", out)
}

func TestInvokeCmd_Failures(t *testing.T) {
	root := codeRoot(t)
	tests := []struct {
		name    string
		args    []string
		want    error
		wantMsg string
	}{
		{"no handler", nil, handler.ErrConfiguration, "ConfigurationError"},
		{"bad spec", []string{"--handler", "demo.Local.run"}, handler.ErrInvalidSpec, "InvalidSpecError"},
		{"unknown unit", []string{"--handler", "demo.Nope::run"}, loader.ErrUnitNotFound, "UnitResolutionError"},
		{"wrong entry point", []string{"--handler", "demo.Local::initialize"}, handler.ErrEntryPointNotFound, "EntryPointNotFoundError"},
		{"missing method", []string{"--handler", "demo.Local::broken"}, handler.ErrEntryPointNotFound, "EntryPointNotFoundError"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"invoke", "-m", missingManifest(t), "--code-root", root}, tc.args...)
			_, _, err := run(t, "", args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), err.Error())
			assert.True(t, strings.HasPrefix(err.Error(), tc.wantMsg), err.Error())
		})
	}
}

func TestInvokeCmd_ReadsManifest(t *testing.T) {
	root := codeRoot(t)
	dir := t.TempDir()
	p := filepath.Join(dir, "manifest.yaml")
	body := "runtime:\n  code_roots: [\"" + filepath.ToSlash(root) + "\"]\n  log_dir: \"" + filepath.ToSlash(filepath.Join(dir, "log")) + "\"\nfunction:\n  handler: \"demo.Local::run\"\n"
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	out, _, err := run(t, "from manifest", "invoke", "-m", p)
	require.NoError(t, err)
	assert.Equal(t, "from manifest", out)
}

func TestResolveCmd(t *testing.T) {
	root := codeRoot(t)
	out, _, err := run(t, "", "resolve", "demo.Local::handleRequest", "-m", missingManifest(t), "--code-root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "unit\tdemo.Local")
	assert.Contains(t, out, "package\tdemo")
	assert.Contains(t, out, "Local.unit")
	assert.Contains(t, out, "demo.Local::HandleRequest")
	assert.Contains(t, out, "EntryPointNotFoundError")
}

func TestResolveCmd_HostUnitAndKind(t *testing.T) {
	root := codeRoot(t)
	out, _, err := run(t, "", "resolve", "demo.Hello::handleHTTP", "--kind", "http", "-m", missingManifest(t), "--code-root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "origin\thost")
	assert.Contains(t, out, "demo.Hello::HandleHTTP")

	_, _, err = run(t, "", "resolve", "demo.Hello::handleHTTP", "--kind", "stream", "-m", missingManifest(t), "--code-root", root)
	assert.ErrorIs(t, err, handler.ErrContract)
}

func TestResolveCmd_Errors(t *testing.T) {
	root := codeRoot(t)
	_, _, err := run(t, "", "resolve", "noseparator", "-m", missingManifest(t), "--code-root", root)
	assert.ErrorIs(t, err, handler.ErrInvalidSpec)

	_, _, err = run(t, "", "resolve", "demo.Nope::run", "-m", missingManifest(t), "--code-root", root)
	assert.ErrorIs(t, err, loader.ErrUnitNotFound)

	_, _, err = run(t, "", "resolve", "demo.Local::run", "--kind", "pojo", "-m", missingManifest(t), "--code-root", root)
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version")
}
