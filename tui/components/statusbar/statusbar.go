package statusbar

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"sticky-notes/app/utils"
	"sticky-notes/tui/message"
	"sticky-notes/tui/mode"
	"sticky-notes/tui/shared"
)

// StatusBar represents the bottom bar that displays messages, the current
// mode and counters.
type StatusBar struct {
	shared.Component

	Type message.Type

	// The Current mode
	Mode mode.Mode

	// The content for each column
	Columns [3]string
}

func New() *StatusBar {
	return &StatusBar{}
}

// Update stores the content of each message in its column.
func (sb *StatusBar) Update(msgs ...message.StatusBarMsg) {
	for _, msg := range msgs {
		if msg.Column == message.General {
			if msg.Content == "" {
				continue
			}
			sb.Type = msg.Type
		}

		sb.Columns[msg.Column] = msg.Content
	}
}

// Clear empties the message column
func (sb *StatusBar) Clear() {
	sb.Columns[message.General] = ""
	sb.Type = message.Success
}

func (sb *StatusBar) View() tea.View {
	var view tea.View
	view.SetContent(sb.Content())
	return view
}

// Content renders the StatusBar as a string
func (sb *StatusBar) Content() string {
	t := sb.Theme()

	wColMode := 12
	wColInfo := 16
	wColCount := 12
	wColGeneral := max(sb.Size.Width-(wColMode+wColInfo+wColCount), 1)

	general := utils.TruncateText(sb.Columns[message.General], wColGeneral-2)

	colour := sb.Type.Colour()
	if sb.Type == message.Success {
		colour = t.Fg
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		style().Width(wColMode).Foreground(sb.Mode.Colour()).Render(sb.Mode.FullString()),
		style().Width(wColGeneral).Foreground(colour).Render(general),
		style().Width(wColInfo).Foreground(t.Muted).Align(lipgloss.Right).Render(sb.Columns[message.Info]),
		style().Width(wColCount).Align(lipgloss.Right).PaddingRight(1).Render(sb.Columns[message.Count]),
	)
}

func style() lipgloss.Style {
	return lipgloss.NewStyle().
		PaddingLeft(1).
		Height(1)
}
