package cmd

import (
	"context"

	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/manifest"
	"github.com/joeydtaylor/steeze-fc/pkg/serverfx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// overrides applies command line settings on top of the environment and
// the manifest. Blank values leave the underlying setting alone.
type overrides struct {
	settings config.Map
}

func (o overrides) manifest(m manifest.Config) (manifest.Config, error) {
	if roots := viper.GetStringSlice(codeRootKey); len(roots) > 0 {
		m.Runtime.CodeRoots = append([]string(nil), roots...)
	}
	return m, m.Validate()
}

func (o overrides) chain(s config.Settings) config.Settings {
	if len(o.settings) == 0 {
		return s
	}
	return config.Chain{o.settings, s}
}

// runtimeOptions assembles the fx graph shared by every command. The
// caller adds fx.Populate or fx.Invoke.
func runtimeOptions(cmd *cobra.Command, o overrides, base func(...serverfx.Option) fx.Option) fx.Option {
	return fx.Options(
		base(serverfx.WithDefaultManifest(viper.GetString(manifestKey))),
		fx.Decorate(o.manifest),
		fx.Decorate(o.chain),
		fx.Replace(cliLogger(cmd.ErrOrStderr(), viper.GetString(logLevelKey))),
		fx.NopLogger,
	)
}

// populate builds and starts the runtime up to the dispatcher and fills
// targets. stop releases the scope's archives.
func populate(cmd *cobra.Command, o overrides, targets ...any) (func(), error) {
	app := fx.New(
		runtimeOptions(cmd, o, serverfx.Runtime),
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.Start(ctx); err != nil {
		return nil, err
	}
	return func() { _ = app.Stop(context.Background()) }, nil
}
