package core

import (
	"net/http"

	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/dispatch"
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/auth"
	"github.com/joeydtaylor/steeze-fc/pkg/middleware/logger"
	httpx "github.com/joeydtaylor/steeze-fc/pkg/transport/httpx"
	"go.uber.org/zap"
)

type BuildDeps struct {
	Auth       *auth.Middleware
	LogMW      *logger.Middleware
	Metrics    http.Handler
	Router     httpx.Router
	Dispatcher *dispatch.Dispatcher
	Creds      CredentialsProvider
	Settings   config.Settings
	Log        *zap.Logger
}
