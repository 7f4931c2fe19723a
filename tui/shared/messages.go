package shared

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"sticky-notes/tui/message"
)

// SendStatusBarMsg wraps a status message into a command so it reaches the
// status bar on the next update.
func SendStatusBarMsg(msg message.StatusBarMsg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
