package theme

import (
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/termenv"
	bl "github.com/winder/bubblelayout"
	"golang.org/x/term"

	"sticky-notes/app/notes"
)

var BorderStyle = lipgloss.RoundedBorder()

// Theme is the colour palette for either light or dark mode.
type Theme struct {
	Dark bool

	Bg,
	Fg,
	Muted,
	Border,
	BorderFocused,
	Accent,
	NoteFg color.Color

	noteBg map[notes.Color]color.Color
}

// New returns the light or the dark palette.
func New(dark bool) Theme {
	ld := lipgloss.LightDark(dark)

	return Theme{
		Dark:          dark,
		Bg:            ld(lipgloss.Color("#f7f7f2"), lipgloss.Color("#1e222a")),
		Fg:            ld(lipgloss.Color("#2e3440"), lipgloss.Color("#d8dee9")),
		Muted:         ld(lipgloss.Color("#8a8f98"), lipgloss.Color("#5c6370")),
		Border:        ld(lipgloss.Color("#c0c5ce"), lipgloss.Color("#424B5D")),
		BorderFocused: lipgloss.Color("#69c8dc"),
		Accent:        ld(lipgloss.Color("#0f7b8a"), lipgloss.Color("#69c8dc")),
		NoteFg:        ld(lipgloss.Color("#2e3440"), lipgloss.Color("#eceff4")),
		noteBg: map[notes.Color]color.Color{
			notes.Yellow: ld(lipgloss.Color("#fff3a8"), lipgloss.Color("#7a6a14")),
			notes.Blue:   ld(lipgloss.Color("#cfe8ff"), lipgloss.Color("#2d5d87")),
			notes.Pink:   ld(lipgloss.Color("#ffd6e7"), lipgloss.Color("#8a3a5c")),
		},
	}
}

// NoteBackground returns the card colour of a note colour.
func (t Theme) NoteBackground(c notes.Color) color.Color {
	if bg, ok := t.noteBg[c]; ok {
		return bg
	}
	return lipgloss.NoColor{}
}

// BorderColour returns the border colour for a (un)focused element
func (t Theme) BorderColour(focused bool) color.Color {
	if focused {
		return t.BorderFocused
	}
	return t.Border
}

// BaseColumnLayout provides the basic layout style for a column
func (t Theme) BaseColumnLayout(size bl.Size, focused bool) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(BorderStyle).
		BorderForeground(t.BorderColour(focused)).
		Foreground(t.Fg).
		Width(size.Width).
		Height(size.Height)
}

// TerminalSize determines the current terminal size,
// falling back to 80x24 when it can't be detected
func TerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80, 24
	}
	return width, height
}

// DetectDark asks the terminal for its background colour.
// It answers false when stdout isn't a terminal.
func DetectDark() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}
	return termenv.HasDarkBackground()
}

// DefaultDark resolves a `[Theme] Default` config value.
func DefaultDark(setting string) bool {
	switch setting {
	case "dark":
		return true
	case "light":
		return false
	}
	return DetectDark()
}
