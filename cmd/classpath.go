package cmd

import (
	"fmt"
	"strconv"

	"github.com/joeydtaylor/steeze-fc/pkg/classpath"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const urlsFlagName = "urls"

func newClasspathCmd() *cobra.Command {
	var urlsOnly bool
	cmd := &cobra.Command{
		Use:   "classpath",
		Short: "Print the assembled code locations in search order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cp classpath.Classpath
			stop, err := populate(cmd, overrides{}, &cp)
			if err != nil {
				return err
			}
			defer stop()
			if urlsOnly {
				for _, u := range cp.URLs() {
					fmt.Fprintln(cmd.OutOrStdout(), u)
				}
				return nil
			}
			renderClasspath(cmd, cp)
			return nil
		},
	}
	cmd.Flags().BoolVar(&urlsOnly, urlsFlagName, false, "print one file URL per line")
	return cmd
}

func renderClasspath(cmd *cobra.Command, cp classpath.Classpath) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"#", "Kind", "Location"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	for i, l := range cp {
		table.Append([]string{strconv.Itoa(i), l.Kind.String(), l.URL()})
	}
	table.Render()
}
