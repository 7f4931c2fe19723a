package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	bl "github.com/winder/bubblelayout"

	"sticky-notes/app/config"
	"sticky-notes/app/debug"
	"sticky-notes/app/notes"
	"sticky-notes/app/state"
	"sticky-notes/app/utils"
	"sticky-notes/tui/components/board"
	"sticky-notes/tui/components/header"
	"sticky-notes/tui/components/input"
	"sticky-notes/tui/components/statusbar"
	"sticky-notes/tui/keyinput"
	"sticky-notes/tui/message"
	"sticky-notes/tui/mode"
	"sticky-notes/tui/shared"
	"sticky-notes/tui/theme"
)

const (
	headerHeight = 1
	inputHeight  = 3
	statusHeight = 1
	helpWidth    = 28
)

// Model is the Bubble Tea model for the TUI
type Model struct {
	layout bl.BubbleLayout
	helpID bl.ID
	help   bl.Size

	// Current app mode
	mode     *mode.ModeInstance
	keyInput *keyinput.Input

	notes *notes.Board
	theme *state.State

	header    *header.Header
	input     *input.Input
	board     *board.Board
	statusBar *statusbar.StatusBar

	width, height int

	// notes read from the store on start
	loaded int

	// ShouldQuit is set when the user asked to exit
	ShouldQuit bool
}

// New wires the components to the note controller and the theme state
// and loads the stored notes into the board.
func New(
	nb *notes.Board,
	themeState *state.State,
	conf *config.Config,
	keyMap []keyinput.KeyMapEntry,
) *Model {
	m := &Model{
		layout:    bl.New(),
		mode:      &mode.ModeInstance{Current: mode.Normal},
		keyInput:  keyinput.New(keyMap),
		notes:     nb,
		theme:     themeState,
		header:    header.New(),
		input:     input.New(),
		board:     board.New(conf),
		statusBar: statusbar.New(),
	}

	m.componentsInit()
	m.registerActions()
	m.applyTheme()

	m.notes.SetSurface(m.board)
	report, err := m.notes.Load()
	m.loaded = report.Loaded
	if err != nil {
		debug.LogErr("loading notes:", err)
	}
	for _, s := range report.Skipped {
		debug.LogWarn("skipped stored note:", s)
	}

	m.syncStatus()
	return m
}

// componentsInit registers components in the layout
// and sets initial focus
func (m *Model) componentsInit() {
	m.board.ID = m.layout.Add("grow")
	m.helpID = m.layout.Add(fmt.Sprintf("width %d", helpWidth))

	m.keyInput.Components = []keyinput.FocusedComponent{m.board, m.input}

	m.board.Focus()
}

func (m *Model) Init() tea.Cmd {
	width, height := theme.TerminalSize()

	cmds := []tea.Cmd{
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: width, Height: height}
		},
	}

	if m.loaded > 0 {
		cmds = append(cmds, shared.SendStatusBarMsg(message.StatusBarMsg{
			Content: fmt.Sprintf(message.StatusBar.Loaded, m.loaded),
		}))
	}

	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		// Convert WindowSizeMsg to BubbleLayoutMsg.
		return m, func() tea.Msg {
			return m.layout.Resize(
				msg.Width,
				max(msg.Height-headerHeight-inputHeight-statusHeight, 1),
			)
		}

	case bl.BubbleLayoutMsg:
		m.board.Size, _ = msg.Size(m.board.ID)
		m.help, _ = msg.Size(m.helpID)

	case message.StatusBarMsg:
		m.statusBar.Update(msg)

	default:
		// pastes, cursor blinking and the like
		cmds = append(cmds, m.input.Update(msg), m.updateEditor(msg))
	}

	m.syncStatus()

	return m, tea.Batch(cmds...)
}

// handleKey runs the bound action or hands the key to the focused widget.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	m.keyInput.Mode = m.mode.Current

	if statusMsg, ok := m.keyInput.HandleKey(msg.String()); ok {
		m.statusBar.Update(statusMsg)
		return statusMsg.Cmd
	}

	switch m.mode.Current {
	case mode.Insert:
		return m.input.Update(msg)

	case mode.Edit:
		return m.updateEditor(msg)
	}

	return nil
}

// updateEditor hands msg to the note textarea and records the new draft,
// so a commit always sees what the textarea shows.
func (m *Model) updateEditor(msg tea.Msg) tea.Cmd {
	draft, changed, cmd := m.board.Update(msg)
	if changed {
		m.notes.SetDraft(m.board.EditingID(), draft)
	}
	return cmd
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	m.header.Size = bl.Size{Width: width, Height: headerHeight}
	m.input.Size = bl.Size{Width: width, Height: inputHeight}
	m.statusBar.Size = bl.Size{Width: width, Height: statusHeight}
}

// syncStatus keeps the status bar counters and the mode in line with
// the board.
func (m *Model) syncStatus() {
	m.keyInput.Mode = m.mode.Current
	m.statusBar.Mode = m.mode.Current
	m.statusBar.Update(
		message.StatusBarMsg{
			Column:  message.Count,
			Content: countLabel(m.notes.Len()),
		},
		message.StatusBarMsg{
			Column:  message.Info,
			Content: m.charInfo(),
		},
	)
}

// charInfo shows the length of the draft while editing, of the selected
// note otherwise
func (m *Model) charInfo() string {
	text := ""

	switch m.mode.Current {
	case mode.Edit:
		text, _ = m.notes.Draft(m.board.EditingID())
	case mode.Insert:
		text = m.input.Value()
	default:
		if n, ok := m.board.Selected(); ok {
			text = n.Text
		}
	}

	if text == "" {
		return ""
	}

	return fmt.Sprintf("%d chars", utils.CharCount(text))
}

func countLabel(n int) string {
	if n == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", n)
}

// applyTheme hands the current palette to every component
func (m *Model) applyTheme() {
	t := theme.New(m.theme.IsDarkMode())

	m.header.SetTheme(t)
	m.input.SetTheme(t)
	m.board.SetTheme(t)
	m.statusBar.SetTheme(t)

	m.header.ThemeLabel = m.theme.Label()
}

// View renders the TUI layout on the alternate screen
func (m *Model) View() tea.View {
	var view tea.View
	view.SetContent(m.Content())
	view.AltScreen = true
	return view
}

// Content joins the components into the full screen
func (m *Model) Content() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.Content(),
		m.input.Content(),
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.board.Content(),
			m.helpContent(),
		),
		m.statusBar.Content(),
	)
}

// helpContent lists the keys of the current mode
func (m *Model) helpContent() string {
	t := m.board.Theme()
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent)
	actionStyle := lipgloss.NewStyle().Foreground(t.Muted)

	var s strings.Builder
	for _, hint := range m.keyInput.Hints() {
		keys := utils.TruncateText(strings.Join(hint.Keys, "/"), 12)
		s.WriteString(keyStyle.Render(utils.FitWidth(keys, 12)))
		s.WriteByte(' ')
		s.WriteString(actionStyle.Render(strings.ReplaceAll(hint.Action, "_", " ")))
		s.WriteByte('\n')
	}

	return lipgloss.NewStyle().
		Border(theme.BorderStyle).
		BorderForeground(t.Border).
		Width(m.help.Width).
		Height(m.help.Height).
		Render(strings.TrimSuffix(s.String(), "\n"))
}

// Mode returns the current mode
func (m *Model) Mode() mode.Mode { return m.mode.Current }
