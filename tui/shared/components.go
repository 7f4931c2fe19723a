package shared

import (
	bl "github.com/winder/bubblelayout"

	"sticky-notes/tui/theme"
)

// Component carries what every focusable part of the screen shares:
// its layout slot, its focus state and the active theme.
type Component struct {
	ID   bl.ID
	Size bl.Size

	// Indicates whether the component receives keyboard input
	isFocused bool

	OnFocus func()
	OnBlur  func()

	theme theme.Theme
}

func (c Component) Focused() bool {
	return c.isFocused
}

func (c *Component) Focus() {
	c.isFocused = true

	if c.OnFocus != nil {
		c.OnFocus()
	}
}

func (c *Component) Blur() {
	c.isFocused = false

	if c.OnBlur != nil {
		c.OnBlur()
	}
}

func (c *Component) SetFocus(focus bool) {
	if c.Focused() == focus {
		return
	}

	if focus {
		c.Focus()
	} else {
		c.Blur()
	}
}

func (c Component) Theme() theme.Theme {
	return c.theme
}

func (c *Component) SetTheme(theme theme.Theme) {
	c.theme = theme
}
