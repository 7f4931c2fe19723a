package message

import (
	"image/color"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

type Type int

const (
	Success Type = iota
	Error
)

var msgColours = map[Type]color.Color{
	Success: lipgloss.NoColor{},
	Error:   lipgloss.Color("#d75a7d"),
}

func (m Type) Colour() color.Color {
	return msgColours[m]
}

// Column is a slot in the status bar
type Column int

const (
	General Column = iota
	Info
	Count
)

type StatusBarMsg struct {
	Content string
	Type    Type
	Column  Column
	Cmd     tea.Cmd
}
