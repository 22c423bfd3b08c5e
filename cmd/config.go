package cmd

import (
	"io"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envPrefix = "STEEZE_FC"

	manifestFlagName = "manifest"
	codeRootFlagName = "code-root"
	logLevelFlagName = "log-level"

	manifestKey = "manifest"
	codeRootKey = "code_roots"
	logLevelKey = "log.level"

	defaultManifest = "manifest.toml"
	defaultLogLevel = "warn"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(manifestKey, defaultManifest)
	viper.SetDefault(codeRootKey, []string{})
	viper.SetDefault(logLevelKey, defaultLogLevel)
}

// cliLogger writes human-readable records to w; stdout stays free for
// handler output.
func cliLogger(w io.Writer, level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), lvl))
}
