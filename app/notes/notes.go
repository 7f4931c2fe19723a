package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// StorageKey is the key the note list is persisted under.
const StorageKey = "notes"

// Placeholder replaces the text of a note whose edit was committed empty.
const Placeholder = "Empty note"

// Color is the display colour of a note. It's assigned once on creation.
type Color int

const (
	Yellow Color = iota
	Blue
	Pink
)

// Colors is the fixed set a new note picks its colour from.
var Colors = []Color{Yellow, Blue, Pink}

var colorTags = map[Color]string{
	Yellow: "note-yellow",
	Blue:   "note-blue",
	Pink:   "note-pink",
}

var colorNames = map[Color]string{
	Yellow: "yellow",
	Blue:   "blue",
	Pink:   "pink",
}

// String returns the tag the colour is persisted as, e.g. `note-blue`.
func (c Color) String() string {
	return colorTags[c]
}

// Name returns the short, human readable colour name.
func (c Color) Name() string {
	return colorNames[c]
}

// Valid reports whether c is one of Colors.
func (c Color) Valid() bool {
	_, ok := colorTags[c]
	return ok
}

var ErrUnknownColor = errors.New("unknown note color")

// ParseColor returns the colour for a persisted tag.
func ParseColor(tag string) (Color, error) {
	for c, t := range colorTags {
		if t == tag {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, tag)
}

// RandomColor picks one of Colors uniformly. Previous picks have no
// influence, repeats are expected.
func RandomColor(r *rand.Rand) Color {
	if r == nil {
		return Colors[rand.IntN(len(Colors))]
	}
	return Colors[r.IntN(len(Colors))]
}

// MarshalJSON writes the colour as its tag, e.g. "note-yellow".
func (c Color) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON reads a colour tag. Unknown tags are an error.
func (c *Color) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	color, err := ParseColor(tag)
	if err != nil {
		return err
	}

	*c = color
	return nil
}

// MarshalYAML writes the colour tag instead of the numeric value.
func (c Color) MarshalYAML() (any, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownColor, int(c))
	}
	return c.String(), nil
}

// Note is a single note record.
type Note struct {
	// ID identifies the note for the lifetime of the process.
	// It is not persisted, notes get a fresh ID on every load.
	ID string

	Text  string
	Color Color

	// Editing is true while the note is in edit mode
	Editing bool
}

// Entry is the persisted form of a note.
type Entry struct {
	Text  string `json:"text" yaml:"text"`
	Color Color  `json:"color" yaml:"color"`
}

// Entry returns the persisted form of the note.
func (n Note) Entry() Entry {
	return Entry{Text: n.Text, Color: n.Color}
}

// Skipped describes a persisted entry that was dropped while decoding.
type Skipped struct {
	Index  int
	Reason string
}

func (s Skipped) String() string {
	return fmt.Sprintf("entry %d: %s", s.Index, s.Reason)
}

// ErrMalformedPayload is returned by Decode when the payload
// isn't a JSON array at all.
var ErrMalformedPayload = errors.New("malformed notes payload")

// Encode serialises notes in list order.
func Encode(list []Note) ([]byte, error) {
	entries := make([]Entry, 0, len(list))
	for _, n := range list {
		entries = append(entries, n.Entry())
	}
	return json.Marshal(entries)
}

// Decode parses a persisted payload. Entries that are null, not objects,
// have empty text or an unknown colour are skipped and reported; the rest
// are returned in stored order.
func Decode(data []byte) ([]Entry, []Skipped, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	// a JSON null decodes into a nil slice without complaint
	if raw == nil {
		return nil, nil, fmt.Errorf("%w: not an array", ErrMalformedPayload)
	}

	var (
		entries []Entry
		skipped []Skipped
	)

	for i, item := range raw {
		entry, reason := decodeEntry(item)
		if reason != "" {
			skipped = append(skipped, Skipped{Index: i, Reason: reason})
			continue
		}
		entries = append(entries, entry)
	}

	return entries, skipped, nil
}

// decodeEntry validates a single entry, returning a reason when it's invalid.
func decodeEntry(item json.RawMessage) (Entry, string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return Entry{}, "not an object"
	}

	rawText, ok := fields["text"]
	if !ok {
		return Entry{}, "missing text"
	}

	var text string
	if err := json.Unmarshal(rawText, &text); err != nil {
		return Entry{}, "text is not a string"
	}
	if text == "" {
		return Entry{}, "empty text"
	}

	rawColor, ok := fields["color"]
	if !ok {
		return Entry{}, "missing color"
	}

	var tag string
	if err := json.Unmarshal(rawColor, &tag); err != nil {
		return Entry{}, "color is not a string"
	}

	color, err := ParseColor(tag)
	if err != nil {
		return Entry{}, err.Error()
	}

	return Entry{Text: text, Color: color}, ""
}

// cleanText trims user input the way add and edit both expect.
func cleanText(text string) string {
	return strings.TrimSpace(text)
}
