package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sticky-notes/app/notes"
)

func newExportCmd(e *env) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all notes to stdout",
		Long: `Write all notes to stdout, in board order. The json format is the
one the notes are stored in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e.load(cmd.ErrOrStderr())

			entries := make([]notes.Entry, 0, e.board.Len())
			for _, n := range e.board.Notes() {
				entries = append(entries, n.Entry())
			}

			var (
				data []byte
				err  error
			)

			switch format {
			case "json":
				data, err = json.MarshalIndent(entries, "", "  ")
				data = append(data, '\n')
			case "yaml", "yml":
				data, err = yaml.Marshal(entries)
			default:
				return fmt.Errorf("unknown format `%s`, use json or yaml", format)
			}

			if err != nil {
				return fmt.Errorf("exporting notes: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")

	return cmd
}
