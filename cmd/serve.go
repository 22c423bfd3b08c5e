package cmd

import (
	"github.com/joeydtaylor/steeze-fc/pkg/serverfx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the runtime API",
		Long: `Serves /initialize, /invoke and /http-invoke on the manifest's listen
address (or SERVER_LISTEN_ADDRESS) until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app := fx.New(
				serverfx.Module(serverfx.WithDefaultManifest(viper.GetString(manifestKey))),
				fx.Decorate(overrides{}.manifest),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}
