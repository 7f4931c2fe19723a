package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"sticky-notes/app/notes"
	"sticky-notes/tui/components/board"
)

var errBlankNote = errors.New("note text is blank")

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the notes in board order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e.load(cmd.ErrOrStderr())

			out := cmd.OutOrStdout()
			for i, n := range e.board.Notes() {
				fmt.Fprintf(out, "%d. [%s] %s\n", i+1, n.Color.Name(), indent(n.Text))
			}

			return nil
		},
	}
}

func newAddCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a note to the end of the board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.load(cmd.ErrOrStderr())

			note, ok, err := e.board.Add(strings.Join(args, " "))
			if !ok {
				return errBlankNote
			}
			warnIfErr(cmd, err)

			fmt.Fprintf(cmd.OutOrStdout(), "Added note %d (%s)\n", e.board.Len(), note.Color.Name())
			return nil
		},
	}
}

func newEditCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <n> <text...>",
		Short: "Replace the text of note n",
		Long: `Replace the text of note n. Text that is blank after trimming
is stored as "` + notes.Placeholder + `".`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.load(cmd.ErrOrStderr())

			i, note, err := noteAt(e.board, args[0])
			if err != nil {
				return err
			}

			_, err = e.board.BeginEdit(note.ID)
			warnIfErr(cmd, err)
			e.board.SetDraft(note.ID, strings.Join(args[1:], " "))

			edited, _, err := e.board.CommitEdit(note.ID)
			warnIfErr(cmd, err)

			summary := board.EditSummary(note.Text, edited.Text)
			if summary == "" {
				summary = "unchanged"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Edited note %d (%s)\n", i, summary)
			return nil
		},
	}
}

func newRmCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"delete"},
		Short:   "Delete note n",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.load(cmd.ErrOrStderr())

			i, note, err := noteAt(e.board, args[0])
			if err != nil {
				return err
			}

			_, err = e.board.Delete(note.ID)
			warnIfErr(cmd, err)

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %d\n", i)
			return nil
		},
	}
}

// noteAt resolves a 1-based index as shown by `list`
func noteAt(b *notes.Board, arg string) (int, notes.Note, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, notes.Note{}, fmt.Errorf("invalid note number `%s`", arg)
	}

	note, ok := b.At(i - 1)
	if !ok {
		return 0, notes.Note{}, fmt.Errorf("no note %d, the board has %d", i, b.Len())
	}

	return i, note, nil
}

// warnIfErr prints storage failures. The change itself went through.
func warnIfErr(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", err)
	}
}

// indent lines up continuation lines under the first one
func indent(text string) string {
	return strings.ReplaceAll(text, "\n", "\n   ")
}
