package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/rivo/uniseg"
)

// TruncateText shortens the given text to fit within maxWidth cells.
// If the text exceeds maxWidth, it appends "..." (if possible).
// ANSI sequences are kept intact.
func TruncateText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if ansi.StringWidth(text) <= maxWidth {
		return text
	}

	if maxWidth > 3 {
		return ansi.Truncate(text, maxWidth, "...")
	}

	return ansi.Truncate(text, maxWidth, "") // No space for "..."
}

// WrapText breaks text into lines of at most width cells.
// Words are kept whole where possible, longer words are split.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	return wrap.String(wordwrap.String(text, width), width)
}

// FitWidth pads or truncates text to exactly width cells.
func FitWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	text = runewidth.Truncate(text, width, "…")
	return runewidth.FillRight(text, width)
}

// CharCount returns the number of user perceived characters in text.
// Combined emoji and accented letters count once.
func CharCount(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// FirstLine returns the first non-empty line of text.
func FirstLine(text string) string {
	for line := range strings.SplitSeq(text, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// Clamp limits value to the range [low, high].
// If high is smaller than low, low wins.
func Clamp(value, low, high int) int {
	if value > high {
		value = high
	}
	if value < low {
		value = low
	}
	return value
}

// CreateFile creates a file including its parent directories.
// The returned file is closed unless keepOpen is true.
func CreateFile(path string, keepOpen bool) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if keepOpen {
		return f, nil
	}

	return nil, f.Close()
}
