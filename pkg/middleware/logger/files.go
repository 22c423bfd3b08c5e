package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type options struct {
	dir     string
	level   zapcore.Level
	console bool
}

type Option func(*options)

// WithLevel sets the minimum level written to both sinks.
func WithLevel(l zapcore.Level) Option { return func(o *options) { o.level = l } }

// WithDir overrides the log directory (default "log").
func WithDir(dir string) Option { return func(o *options) { o.dir = dir } }

// WithoutConsole keeps the logger off stdout.
func WithoutConsole() Option { return func(o *options) { o.console = false } }

func ensureLogDir(dir string) string {
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

// NewLog tees JSON records to a rotating file log/<n> and stdout.
func NewLog(n string, opts ...Option) *zap.Logger {
	o := options{dir: "log", level: zap.InfoLevel, console: true}
	for _, fn := range opts {
		fn(&o)
	}
	logPath := filepath.Join(ensureLogDir(o.dir), n)

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	})

	cores := []zapcore.Core{zapcore.NewCore(zapcore.NewJSONEncoder(cfg), w, o.level)}
	if o.console {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(os.Stdout), o.level))
	}
	return zap.New(zapcore.NewTee(cores...))
}
