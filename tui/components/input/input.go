// Package input is the row new notes are typed into, together with its
// add button.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"sticky-notes/tui/shared"
)

const (
	Placeholder = "Write a note..."
	buttonLabel = "[ Add ]"
)

type Input struct {
	shared.Component

	InputModel textinput.Model
}

func New() *Input {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = Placeholder
	ti.VirtualCursor = true

	in := &Input{InputModel: ti}

	in.OnFocus = func() { in.InputModel.Focus() }
	in.OnBlur = func() { in.InputModel.Blur() }

	return in
}

// Name is the component name used in the keymap
func (in *Input) Name() string { return "input" }

// Update forwards key presses to the text input while it is focused.
func (in *Input) Update(msg tea.Msg) tea.Cmd {
	if !in.Focused() {
		return nil
	}

	var cmd tea.Cmd
	in.InputModel, cmd = in.InputModel.Update(msg)
	return cmd
}

func (in *Input) Value() string {
	return in.InputModel.Value()
}

// CanAdd reports whether the add button is enabled.
// It's disabled as long as the input holds nothing but whitespace.
func (in *Input) CanAdd() bool {
	return strings.TrimSpace(in.InputModel.Value()) != ""
}

// Reset empties the input, which disables the button again.
func (in *Input) Reset() {
	in.InputModel.SetValue("")
}

func (in *Input) View() tea.View {
	var view tea.View
	view.SetContent(in.Content())
	return view
}

func (in *Input) Content() string {
	t := in.Theme()

	button := lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	if !in.CanAdd() {
		button = lipgloss.NewStyle().Faint(true).Foreground(t.Muted)
	}

	buttonWidth := lipgloss.Width(buttonLabel) + 1
	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderColour(in.Focused())).
		Width(max(in.Size.Width-buttonWidth, 10)).
		Render(in.InputModel.View())

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		field,
		" ",
		button.Render(buttonLabel),
	)
}
