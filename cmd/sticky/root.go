package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/spf13/cobra"

	"sticky-notes/app"
	"sticky-notes/app/config"
	"sticky-notes/app/debug"
	"sticky-notes/app/notes"
	"sticky-notes/app/state"
	"sticky-notes/app/storage"
	"sticky-notes/app/utils/clipboard"
	"sticky-notes/tui"
	"sticky-notes/tui/keyinput"
	"sticky-notes/tui/theme"
)

// env is what every command works on. It's opened before a command runs
// and closed afterwards.
type env struct {
	conf  *config.Config
	store storage.Store
	board *notes.Board
	theme *state.State
}

// execute runs the command line in args. The store and the log files are
// closed afterwards, whether the command failed or not.
func execute(args []string, stdout, stderr io.Writer) error {
	e := &env{}

	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if closeErr := e.close(); err == nil {
		err = closeErr
	}

	return err
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "sticky",
		Short: "Sticky notes for the terminal",
		Long: `Sticky Notes keeps a board of short coloured notes.
Without a subcommand the board opens in the terminal UI.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.runTUI()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "Path to the config file")
	flags.StringVar(&app.Backend, "backend", "", "Storage backend: file, sqlite or memory")
	flags.StringVar(&app.StorePath, "store", "", "Path to the notes store")
	flags.BoolVar(&app.Debug, "debug", false, "Log debug messages")
	flags.BoolVar(&app.NoNerdFonts, "no-nerd-fonts", false, "Don't use nerd font icons")

	root.AddCommand(
		newListCmd(e),
		newAddCmd(e),
		newEditCmd(e),
		newRmCmd(e),
		newThemeCmd(e),
		newExportCmd(e),
		newConfigCmd(e),
		newVersionCmd(),
	)

	return root
}

// open loads the config, starts logging and loads the notes.
// Storage problems are reported on warn; the commands keep working
// on whatever could be loaded.
func (e *env) open(warn io.Writer) error {
	conf, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	e.conf = conf

	if dir, err := app.ConfigDir(); err == nil {
		if err := debug.Init(dir, debug.ParseLevel(conf.LogLevel())); err != nil {
			fmt.Fprintln(warn, "Warning: logging disabled:", err)
		}
	}

	opts := conf.StoreOptions()
	debug.LogDebug("opening store", opts.Backend, opts.Path)

	e.store, err = storage.OpenOrMemory(opts)
	if err != nil {
		debug.LogErr("opening store:", err)
		fmt.Fprintln(warn, "Warning: notes are kept in memory only:", err)
	}

	e.theme = state.New(e.store, theme.DefaultDark(conf.ThemeDefault()))
	if err := e.theme.Read(); err != nil {
		debug.LogErr("reading theme:", err)
	}

	e.board = notes.NewBoard(e.store)

	return nil
}

// load reads the notes for the one-shot commands
func (e *env) load(warn io.Writer) {
	report, err := e.board.Load()
	if err != nil {
		debug.LogErr("loading notes:", err)
		fmt.Fprintln(warn, "Warning:", err)
	}

	for _, s := range report.Skipped {
		debug.LogWarn("skipped stored note:", s)
		fmt.Fprintln(warn, "Warning: skipped", s)
	}
}

func (e *env) close() error {
	var err error
	if e.store != nil {
		err = e.store.Close()
		e.store = nil
	}

	if logErr := debug.Close(); err == nil {
		err = logErr
	}

	return err
}

func (e *env) runTUI() error {
	if err := clipboard.Init(); err != nil {
		debug.LogWarn("clipboard:", err)
	}

	keyMap, err := loadKeyMap()
	if err != nil {
		debug.LogErr("loading keymap:", err)
	}

	m := tui.New(e.board, e.theme, e.conf, keyMap)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running the terminal UI: %w", err)
	}

	return nil
}

func loadKeyMap() ([]keyinput.KeyMapEntry, error) {
	path, err := app.KeymapFile()
	if err != nil {
		debug.LogWarn("no keymap overrides:", err)
	}

	return keyinput.LoadKeyMap(path)
}
