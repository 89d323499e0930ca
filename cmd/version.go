package cmd

import (
	"fmt"

	"github.com/aerolex/termgate/pkg/buildinfo"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var extended bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "termgate %s\n", buildinfo.BinaryVersion)
			if extended {
				if mv := buildinfo.ModuleVersion(); mv != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "module: %s\n", mv)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&extended, "extended", false, "Include module build information")

	return cmd
}
