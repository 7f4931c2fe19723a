package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"sticky-notes/app/debug"
	"sticky-notes/app/utils"
	"sticky-notes/app/utils/clipboard"
	"sticky-notes/tui/components/board"
	"sticky-notes/tui/keyinput"
	"sticky-notes/tui/message"
	"sticky-notes/tui/mode"
)

// registerActions binds the action names of the keymap to model methods
func (m *Model) registerActions() {
	actions := map[string]keyinput.Action{
		"select_next":  m.selectNext,
		"select_prev":  m.selectPrev,
		"select_first": m.selectFirst,
		"select_last":  m.selectLast,
		"edit":         m.beginEdit,
		"delete":       m.deleteNote,
		"yank":         m.yankNote,
		"focus":        m.focus,
		"focus_next":   m.focusNext,
		"toggle_theme": m.toggleTheme,
		"quit":         m.quit,
		"add":          m.addNote,
		"commit":       m.commitEdit,
		"newline":      m.newline,
		"indent":       m.indent,
	}

	for name, fn := range actions {
		m.keyInput.Register(name, fn)
	}
}

func (m *Model) selectNext(keyinput.Options) message.StatusBarMsg {
	m.board.SelectNext()
	return message.StatusBarMsg{}
}

func (m *Model) selectPrev(keyinput.Options) message.StatusBarMsg {
	m.board.SelectPrev()
	return message.StatusBarMsg{}
}

func (m *Model) selectFirst(keyinput.Options) message.StatusBarMsg {
	m.board.SelectFirst()
	return message.StatusBarMsg{}
}

func (m *Model) selectLast(keyinput.Options) message.StatusBarMsg {
	m.board.SelectLast()
	return message.StatusBarMsg{}
}

// addNote adds the input as a new note. The add button is inert while
// the input is blank.
func (m *Model) addNote(keyinput.Options) message.StatusBarMsg {
	if !m.input.CanAdd() {
		return message.StatusBarMsg{Content: message.StatusBar.NothingToAdd}
	}

	note, ok, err := m.notes.Add(m.input.Value())
	logStorageErr("adding note", err)

	if !ok {
		return message.StatusBarMsg{}
	}

	m.input.Reset()
	m.board.SelectID(note.ID)

	return message.StatusBarMsg{Content: message.StatusBar.Added}
}

// beginEdit opens the selected note in the textarea
func (m *Model) beginEdit(keyinput.Options) message.StatusBarMsg {
	note, ok := m.board.Selected()
	if !ok {
		return message.StatusBarMsg{Content: message.StatusBar.NothingSelected}
	}

	started, err := m.notes.BeginEdit(note.ID)
	logStorageErr("committing open edit", err)

	if started {
		m.setMode(mode.Edit)
	}

	return message.StatusBarMsg{}
}

// commitEdit ends editing. With the `focus` option the given component
// is focused afterwards.
func (m *Model) commitEdit(opts keyinput.Options) message.StatusBarMsg {
	id := m.board.EditingID()
	before, _ := m.notes.Get(id)

	note, ok, err := m.notes.CommitEdit(id)
	logStorageErr("saving edit", err)

	m.setMode(mode.Normal)

	if opts.GetString("focus") == "input" {
		m.focusInput()
	}

	if !ok {
		return message.StatusBarMsg{}
	}

	summary := board.EditSummary(before.Text, note.Text)
	if summary == "" {
		return message.StatusBarMsg{Content: message.StatusBar.Unchanged}
	}

	return message.StatusBarMsg{
		Content: fmt.Sprintf(message.StatusBar.Edited, summary),
	}
}

func (m *Model) deleteNote(keyinput.Options) message.StatusBarMsg {
	note, ok := m.board.Selected()
	if !ok {
		return message.StatusBarMsg{Content: message.StatusBar.NothingSelected}
	}

	deleted, err := m.notes.Delete(note.ID)
	logStorageErr("deleting note", err)

	if !deleted {
		return message.StatusBarMsg{}
	}

	return message.StatusBarMsg{Content: message.StatusBar.Deleted}
}

// yankNote copies the selected note's text to the clipboard
func (m *Model) yankNote(keyinput.Options) message.StatusBarMsg {
	note, ok := m.board.Selected()
	if !ok {
		return message.StatusBarMsg{Content: message.StatusBar.NothingSelected}
	}

	if err := clipboard.Write(note.Text); err != nil {
		debug.LogErr("copying note:", err)
		return message.StatusBarMsg{
			Content: message.StatusBar.CopyFailed,
			Type:    message.Error,
		}
	}

	return message.StatusBarMsg{
		Content: fmt.Sprintf(message.StatusBar.Copied, utils.CharCount(note.Text)),
	}
}

func (m *Model) newline(keyinput.Options) message.StatusBarMsg {
	m.notes.SetDraft(m.board.EditingID(), m.board.InsertNewline())
	return message.StatusBarMsg{}
}

func (m *Model) indent(keyinput.Options) message.StatusBarMsg {
	m.notes.SetDraft(m.board.EditingID(), m.board.Indent())
	return message.StatusBarMsg{}
}

func (m *Model) focus(opts keyinput.Options) message.StatusBarMsg {
	switch opts.GetString("target") {
	case "input":
		m.focusInput()
	case "board":
		m.focusBoard()
	}
	return message.StatusBarMsg{}
}

// focusNext moves the focus between the board and the input
func (m *Model) focusNext(keyinput.Options) message.StatusBarMsg {
	if m.input.Focused() {
		m.focusBoard()
	} else {
		m.focusInput()
	}
	return message.StatusBarMsg{}
}

func (m *Model) focusInput() {
	m.board.Blur()
	m.input.Focus()
	m.setMode(mode.Insert)
}

func (m *Model) focusBoard() {
	m.input.Blur()
	m.board.Focus()
	m.setMode(mode.Normal)
}

func (m *Model) toggleTheme(keyinput.Options) message.StatusBarMsg {
	dark, err := m.theme.Toggle()
	logStorageErr("saving theme", err)

	m.applyTheme()

	content := message.StatusBar.LightMode
	if dark {
		content = message.StatusBar.DarkMode
	}

	return message.StatusBarMsg{Content: content}
}

func (m *Model) quit(keyinput.Options) message.StatusBarMsg {
	m.ShouldQuit = true
	return message.StatusBarMsg{Cmd: tea.Quit}
}

// setMode switches the mode. A message from the previous mode is cleared.
func (m *Model) setMode(md mode.Mode) {
	if m.mode.Current != md {
		m.statusBar.Clear()
	}

	m.mode.Current = md
	m.keyInput.Mode = md
}

// logStorageErr logs storage failures. The board keeps working on its
// in-memory list, so they are not shown to the user.
func logStorageErr(action string, err error) {
	if err != nil {
		debug.LogErr(action+":", err)
	}
}
