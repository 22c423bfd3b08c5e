package manifest

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/joeydtaylor/steeze-fc/pkg/classpath"
	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"go.uber.org/zap/zapcore"
)

const DefaultListen = ":9000"

// Runtime is the [runtime] section.
type Runtime struct {
	CodeRoots  []string `toml:"code_roots" yaml:"code_roots"`
	LibPathEnv string   `toml:"lib_path_env" yaml:"lib_path_env"`
	Listen     string   `toml:"listen" yaml:"listen"`
	LogLevel   string   `toml:"log_level" yaml:"log_level"`
	LogDir     string   `toml:"log_dir" yaml:"log_dir"`

	// LogBodyPaths are runtime API paths whose small JSON or text request
	// bodies are copied into the access log.
	LogBodyPaths []string `toml:"log_body_paths" yaml:"log_body_paths"`
}

func (r *Runtime) normalize() error {
	roots := r.CodeRoots[:0]
	for _, root := range r.CodeRoots {
		if root = strings.TrimSpace(root); root != "" {
			roots = append(roots, filepath.Clean(root))
		}
	}
	r.CodeRoots = roots
	if len(r.CodeRoots) == 0 {
		r.CodeRoots = []string{config.DefaultCodeRoot}
	}

	r.LibPathEnv = strings.TrimSpace(r.LibPathEnv)
	if r.LibPathEnv == "" {
		r.LibPathEnv = config.KeyLibPath
	}
	r.Listen = strings.TrimSpace(r.Listen)
	if r.Listen == "" {
		r.Listen = DefaultListen
	}
	r.LogLevel = strings.ToLower(strings.TrimSpace(r.LogLevel))
	if r.LogLevel == "" {
		r.LogLevel = "info"
	}
	r.LogDir = strings.TrimSpace(r.LogDir)
	if r.LogDir == "" {
		r.LogDir = "log"
	}
	for _, p := range r.LogBodyPaths {
		if !strings.HasPrefix(strings.TrimSpace(p), "/") {
			return errors.New("log_body_paths: " + p + " must start with /")
		}
	}
	if _, err := zapcore.ParseLevel(r.LogLevel); err != nil {
		return errors.New("log_level: " + err.Error())
	}
	return nil
}

// Level is the parsed log_level.
func (r Runtime) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(r.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// Roots returns the code roots in classpath order: entries of the library
// path setting first, then the manifest roots.
func (r Runtime) Roots(s config.Settings) []string {
	var out []string
	if s != nil && r.LibPathEnv != "" {
		if v, ok := s.Lookup(r.LibPathEnv); ok {
			out = append(out, classpath.SplitList(v)...)
		}
	}
	return append(out, r.CodeRoots...)
}
