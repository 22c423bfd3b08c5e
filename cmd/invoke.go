package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/core"
	"github.com/joeydtaylor/steeze-fc/pkg/dispatch"
	"github.com/joeydtaylor/steeze-fc/pkg/fc"
	"github.com/joeydtaylor/steeze-fc/pkg/handler"
	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	handlerFlagName     = "handler"
	initializerFlagName = "initializer"
	initFlagName        = "init"
	requestIDFlagName   = "request-id"
)

type invokeOptions struct {
	handler     string
	initializer string
	init        bool
	requestID   string
}

type invokeDeps struct {
	dispatcher *dispatch.Dispatcher
	manifest   manifest.Config
	settings   config.Settings
	log        *zap.Logger
}

func newInvokeCmd() *cobra.Command {
	var opts invokeOptions
	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Run the stream handler once, stdin to stdout",
		Long: `Runs the configured stream handler with stdin as the request and stdout
as the response. --init runs the initializer first, in the same process, so
the handler sees the initialized instance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInvoke(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.handler, handlerFlagName, "", "handler spec overriding FUN_HANDLER")
	cmd.Flags().StringVar(&opts.initializer, initializerFlagName, "", "initializer spec overriding FUN_INITIALIZER")
	cmd.Flags().BoolVar(&opts.init, initFlagName, false, "run the initializer before the handler")
	cmd.Flags().StringVar(&opts.requestID, requestIDFlagName, "", "request id (generated when empty)")
	return cmd
}

func runInvoke(cmd *cobra.Command, opts invokeOptions) error {
	o := overrides{settings: config.Map{
		config.KeyHandler:     opts.handler,
		config.KeyInitializer: opts.initializer,
	}}
	var deps invokeDeps
	stop, err := populate(cmd, o, &deps.dispatcher, &deps.manifest, &deps.settings, &deps.log)
	if err != nil {
		return err
	}
	defer stop()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.init {
		ictx, cancel := withTimeout(ctx, deps.manifest.Function.InitializationTimeout())
		err := deps.dispatcher.Initialize(deps.invocation(ictx, opts.requestID))
		cancel()
		if err != nil {
			return failure(err)
		}
	}

	hctx, cancel := withTimeout(ctx, deps.manifest.Function.Timeout())
	defer cancel()
	if err := deps.dispatcher.HandleRequest(cmd.InOrStdin(), cmd.OutOrStdout(), deps.invocation(hctx, opts.requestID)); err != nil {
		return failure(err)
	}
	return nil
}

func (d invokeDeps) invocation(ctx context.Context, id string) *fc.Invocation {
	if id == "" {
		id = uuid.NewString()
	}
	fn := d.manifest.Function
	inv := fc.NewInvocation(ctx, id)
	inv.Func = fn.Params()
	inv.Creds, _ = core.SettingsCredentials{Settings: d.settings}.Issue(nil)
	inv.Reg = lookupOr(d.settings, config.KeyRegion, fn.Region)
	inv.Acct = lookupOr(d.settings, config.KeyAccountID, fn.AccountID)
	inv.Svc.Name = lookupOr(d.settings, config.KeyServiceName, fn.Service)
	if inv.Func.Name == "" {
		inv.Func.Name, _ = d.settings.Lookup(config.KeyFunctionName)
	}
	inv.Log = d.log.With(zap.String("requestId", id))
	return inv
}

func failure(err error) error {
	return fmt.Errorf("%s: %w", handler.Class(err), err)
}

func lookupOr(s config.Settings, key, def string) string {
	if v, ok := s.Lookup(key); ok {
		return v
	}
	return def
}

// withTimeout leaves ctx alone when no timeout is configured.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
