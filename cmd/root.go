// Package cmd provides the steeze-fc command line.
package cmd

import (
	"fmt"
	"os"

	_ "github.com/joeydtaylor/steeze-fc/pkg/units"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const rootLongDescription = `steeze-fc hosts function handlers for a function compute runtime.

Handlers are named "Unit::entryPoint". Units come from the code roots
(directories and the .jar/.zip archives directly inside them), falling back
to the units compiled into this binary.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "steeze-fc",
		Short:         "Function compute handler runtime",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	configureRootFlags(cmd)
	cmd.AddCommand(
		newServeCmd(),
		newClasspathCmd(),
		newResolveCmd(),
		newInvokeCmd(),
		newVersionCmd(),
	)
	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(manifestFlagName, "m", defaultManifest, "runtime manifest (TOML or YAML)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(manifestFlagName), manifestKey)

	cmd.PersistentFlags().StringArray(codeRootFlagName, nil, "code root replacing the manifest roots (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(codeRootFlagName), codeRootKey)

	cmd.PersistentFlags().String(logLevelFlagName, defaultLogLevel, "log level for command output on stderr")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logLevelFlagName), logLevelKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
