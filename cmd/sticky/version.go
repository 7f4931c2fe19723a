package main

import (
	"github.com/spf13/cobra"

	"sticky-notes/app"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// no config or store needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			app.PrintVersion(cmd.OutOrStdout())
		},
	}
}
