package logger

import (
	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideLogger is the system logger, leveled by [runtime] log_level.
func ProvideLogger(cfg manifest.Config) *zap.Logger {
	return NewLog("system.log", WithLevel(cfg.Runtime.Level()), WithDir(cfg.Runtime.LogDir))
}

func ProvideLoggerMiddleware(cfg manifest.Config) *Middleware {
	AddBodyLogPaths(cfg.Runtime.LogBodyPaths...)
	return NewMiddleware(NewLog("http-access.log", WithDir(cfg.Runtime.LogDir)))
}

var Module = fx.Options(
	fx.Provide(ProvideLoggerMiddleware),
	fx.Provide(ProvideLogger),
)
