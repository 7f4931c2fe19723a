package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newThemeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [show|toggle|dark|light]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"show", "toggle", "dark", "light"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "show"
			if len(args) > 0 {
				action = args[0]
			}

			var err error
			switch action {
			case "toggle":
				_, err = e.theme.Toggle()
			case "dark":
				err = e.theme.SetDarkMode(true)
			case "light":
				err = e.theme.SetDarkMode(false)
			}
			warnIfErr(cmd, err)

			fmt.Fprintln(cmd.OutOrStdout(), themeName(e.theme.IsDarkMode()))
			return nil
		},
	}
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
