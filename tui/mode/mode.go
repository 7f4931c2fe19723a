package mode

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
)

type Mode int

const (
	// Normal navigates the board
	Normal Mode = iota
	// Insert types into the add input
	Insert
	// Edit types into the note being edited
	Edit
)

var modeName = map[Mode]string{
	Normal: "normal",
	Insert: "insert",
	Edit:   "edit",
}

var fullName = map[Mode]string{
	Normal: "-- BOARD --",
	Insert: "-- ADD --",
	Edit:   "-- EDIT --",
}

var colour = map[Mode]color.Color{
	Normal: lipgloss.NoColor{},
	Insert: lipgloss.Color("#7bb791"),
	Edit:   lipgloss.Color("#b7b27b"),
}

// String returns the name used in the keymap file
func (m Mode) String() string {
	return modeName[m]
}

func (m Mode) FullString() string {
	return fullName[m]
}

func (m Mode) Colour() color.Color {
	return colour[m]
}

// Parse returns the mode for a keymap name, Normal for unknown names.
func Parse(name string) (Mode, bool) {
	for m, n := range modeName {
		if n == name {
			return m, true
		}
	}
	return Normal, false
}

type ModeInstance struct {
	Current Mode
}
