package header

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"sticky-notes/app"
	"sticky-notes/tui/shared"
)

// Header shows the app name and the theme toggle button.
type Header struct {
	shared.Component

	// ThemeLabel is the text of the theme button
	ThemeLabel string
	// ThemeKey is the key hint shown next to the button
	ThemeKey string
}

func New() *Header {
	return &Header{ThemeKey: "t"}
}

func (h *Header) View() tea.View {
	var view tea.View
	view.SetContent(h.Content())
	return view
}

func (h *Header) Content() string {
	t := h.Theme()

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		PaddingLeft(1).
		Render(app.Name())

	button := lipgloss.NewStyle().
		Foreground(t.Fg).
		Render("[ " + h.ThemeLabel + " ]")

	if h.ThemeKey != "" {
		button += lipgloss.NewStyle().
			Foreground(t.Muted).
			Render(" (" + h.ThemeKey + ")")
	}

	space := max(h.Size.Width-lipgloss.Width(title)-lipgloss.Width(button)-1, 1)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		lipgloss.NewStyle().Width(space).Render(""),
		button,
	)
}
