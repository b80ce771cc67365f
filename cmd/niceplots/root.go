package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Execute runs the niceplots CLI. Chart definitions are TOML files; see the
// bar and stacks subcommands for the keys each one understands.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "niceplots",
		Short:        "niceplots renders publication-style charts from TOML definitions",
		Long:         `niceplots renders horizontal bar charts and stacked line panels from TOML definition files, with series data inline or in CSV files next to the definition.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newBarCmd())
	root.AddCommand(newStacksCmd())

	return root.Execute()
}
