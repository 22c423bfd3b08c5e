package cmd

import (
	"errors"
	"fmt"

	"github.com/joeydtaylor/steeze-fc/pkg/config"
	"github.com/joeydtaylor/steeze-fc/pkg/dispatch"
	"github.com/joeydtaylor/steeze-fc/pkg/handler"
	"github.com/joeydtaylor/steeze-fc/pkg/loader"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const kindFlagName = "kind"

type resolution struct {
	kind handler.Kind
	ep   handler.EntryPoint
	err  error
}

func newResolveCmd() *cobra.Command {
	var kindName string
	cmd := &cobra.Command{
		Use:   "resolve <Unit::entryPoint>",
		Short: "Check which invocation kinds a handler can serve",
		Long: `Resolves the unit through the same scope the runtime uses and checks its
capabilities and entry point for each invocation kind. Nothing is constructed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := handler.Parse(args[0])
			if err != nil {
				return err
			}
			kinds := handler.Kinds()
			if kindName != "" {
				k, err := handler.ParseKind(kindName)
				if err != nil {
					return err
				}
				kinds = []handler.Kind{k}
			}

			o := overrides{settings: config.Map{
				config.KeyHandler:     args[0],
				config.KeyInitializer: args[0],
			}}
			var d *dispatch.Dispatcher
			stop, err := populate(cmd, o, &d)
			if err != nil {
				return err
			}
			defer stop()

			var (
				unit    *loader.Unit
				results []resolution
			)
			for _, k := range kinds {
				key := config.KeyHandler
				if k == handler.Initializer {
					key = config.KeyInitializer
				}
				u, ep, err := d.Resolve(k, key)
				if u != nil {
					unit = u
				}
				results = append(results, resolution{kind: k, ep: ep, err: err})
			}
			if unit == nil {
				return results[0].err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "unit\t%s\n", unit.Name)
			fmt.Fprintf(out, "package\t%s\n", spec.UnitPackage())
			fmt.Fprintf(out, "origin\t%s\n", unit.Origin)
			fmt.Fprintf(out, "type\t%s\n\n", unit.Type)
			renderResolutions(cmd, results)

			if kindName != "" {
				return results[0].err
			}
			return usable(results)
		},
	}
	cmd.Flags().StringVar(&kindName, kindFlagName, "", "only check one kind (initializer, stream, http)")
	return cmd
}

// usable fails only when no kind can be served.
func usable(results []resolution) error {
	var errs []error
	for _, r := range results {
		if r.err == nil {
			return nil
		}
		errs = append(errs, r.err)
	}
	return errors.Join(errs...)
}

func renderResolutions(cmd *cobra.Command, results []resolution) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Kind", "Status", "Entry point"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	for _, r := range results {
		if r.err != nil {
			table.Append([]string{r.kind.String(), handler.Class(r.err), r.err.Error()})
			continue
		}
		table.Append([]string{r.kind.String(), "ok", r.ep.String()})
	}
	table.Render()
}
