package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sticky-notes/app/config"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change config values",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <Section.Option>",
			Short: "Print a config value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				section, option, err := config.ParseKey(args[0])
				if err != nil {
					return err
				}

				v, err := e.conf.Value(section, option)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), v.Value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <Section.Option> <value>",
			Short: "Write a value to the user config file",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				section, option, err := config.ParseKey(args[0])
				if err != nil {
					return err
				}

				if err := e.conf.SetValue(section, option, args[1]); err != nil {
					return fmt.Errorf("saving %s: %w", e.conf.File(), err)
				}

				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the path of the user config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), e.conf.File())
				return nil
			},
		},
	)

	return cmd
}
