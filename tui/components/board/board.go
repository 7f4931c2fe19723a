// Package board draws the notes as coloured cards and hosts the textarea
// a note is edited in. It is the rendering surface of notes.Board.
package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/input"
	dmp "github.com/sergi/go-diff/diffmatchpatch"

	"sticky-notes/app/config"
	"sticky-notes/app/notes"
	"sticky-notes/app/utils"
	"sticky-notes/tui/shared"
)

const (
	// gap between two cards in a row
	cardGap = 1

	iconDelete      = "×"
	iconDeleteNerd  = "\uf00d"
	emptyBoardLabel = "No notes yet. Press i to write one."
)

type Board struct {
	shared.Component

	Viewport viewport.Model
	Textarea textarea.Model

	// notes as last rendered by the controller
	notes []notes.Note

	SelectedIndex int

	// editingID is the note the textarea belongs to
	editingID string

	cardWidth int
	tabWidth  int
	nerdFonts bool

	// lines from the top of the content to the visible part
	offset int
}

func New(conf *config.Config) *Board {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0

	b := &Board{
		Viewport:  viewport.New(),
		Textarea:  ta,
		cardWidth: 30,
		tabWidth:  4,
		nerdFonts: true,
	}

	if conf != nil {
		b.cardWidth = max(conf.Int(config.Board, config.CardWidth, b.cardWidth), 12)
		b.tabWidth = max(conf.Int(config.Editor, config.TabWidth, b.tabWidth), 1)
		b.nerdFonts = conf.NerdFonts()
		b.Textarea.SetHeight(max(conf.Int(config.Editor, config.Height, 6), 1))
	} else {
		b.Textarea.SetHeight(6)
	}

	b.Textarea.SetWidth(b.innerWidth())

	return b
}

// Name is the component name used in the keymap
func (b *Board) Name() string { return "board" }

// Render receives the note list from the controller after every change.
func (b *Board) Render(list []notes.Note) {
	b.notes = list

	editing := ""
	for i, n := range list {
		if n.Editing {
			editing = n.ID
			b.SelectedIndex = i
		}
	}

	switch {
	case editing == "":
		b.editingID = ""
		b.Textarea.Blur()

	case editing != b.editingID:
		b.editingID = editing
		note, _ := b.noteByID(editing)
		b.Textarea.SetValue(note.Text)
		b.Textarea.Focus()
	}

	b.SelectedIndex = utils.Clamp(b.SelectedIndex, 0, len(list)-1)
}

// Notes returns the list as last rendered.
func (b *Board) Notes() []notes.Note { return b.notes }

// Selected returns the selected note.
func (b *Board) Selected() (notes.Note, bool) {
	if b.SelectedIndex < 0 || b.SelectedIndex >= len(b.notes) {
		return notes.Note{}, false
	}
	return b.notes[b.SelectedIndex], true
}

// EditingID returns the id of the note in the textarea, if any.
func (b *Board) EditingID() string { return b.editingID }

func (b *Board) SelectNext() {
	b.SelectedIndex = utils.Clamp(b.SelectedIndex+1, 0, len(b.notes)-1)
}

func (b *Board) SelectPrev() {
	b.SelectedIndex = utils.Clamp(b.SelectedIndex-1, 0, len(b.notes)-1)
}

func (b *Board) SelectFirst() { b.SelectedIndex = 0 }

func (b *Board) SelectLast() {
	b.SelectedIndex = max(len(b.notes)-1, 0)
}

// SelectID selects the note with the given id
func (b *Board) SelectID(id string) {
	for i, n := range b.notes {
		if n.ID == id {
			b.SelectedIndex = i
			return
		}
	}
}

// Update passes key presses to the textarea while a note is edited.
// It returns the new draft and whether it changed.
func (b *Board) Update(msg tea.Msg) (string, bool, tea.Cmd) {
	if b.editingID == "" {
		return "", false, nil
	}

	before := b.Textarea.Value()

	var cmd tea.Cmd
	b.Textarea, cmd = b.Textarea.Update(msg)

	after := b.Textarea.Value()
	return after, after != before, cmd
}

// InsertNewline breaks the line in the textarea.
func (b *Board) InsertNewline() string {
	b.Textarea.InsertString("\n")
	return b.Textarea.Value()
}

// Indent inserts soft tabs in the textarea.
func (b *Board) Indent() string {
	tabStr := strings.Repeat(string(input.KeySpace), b.tabWidth)
	b.Textarea.InsertString(tabStr)
	return b.Textarea.Value()
}

// RefreshSize applies the layout size to the viewport
func (b *Board) RefreshSize() {
	b.Viewport.SetWidth(b.Size.Width)
	b.Viewport.SetHeight(b.Size.Height)
}

func (b *Board) View() tea.View {
	var view tea.View
	view.SetContent(b.Content())
	return view
}

// Content renders the visible part of the board.
func (b *Board) Content() string {
	content := b.cards()

	b.RefreshSize()
	b.Viewport.SetContent(content)
	b.Viewport.SetYOffset(b.offset)

	return b.Viewport.View()
}

// cards lays the cards out in rows and scrolls the selected one into view.
func (b *Board) cards() string {
	t := b.Theme()

	if len(b.notes) == 0 {
		return lipgloss.NewStyle().
			Foreground(t.Muted).
			Padding(1, 2).
			Render(emptyBoardLabel)
	}

	perRow := max((b.Size.Width+cardGap)/(b.cardWidth+cardGap), 1)
	gap := strings.Repeat(" ", cardGap)

	var (
		rows      []string
		selTop    int
		selBottom int
		lines     int
	)

	for start := 0; start < len(b.notes); start += perRow {
		end := min(start+perRow, len(b.notes))

		var row []string
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, gap)
			}
			row = append(row, b.card(i))
		}

		rendered := lipgloss.JoinHorizontal(lipgloss.Top, row...)
		height := lipgloss.Height(rendered)

		if b.SelectedIndex >= start && b.SelectedIndex < end {
			selTop, selBottom = lines, lines+height
		}

		rows = append(rows, rendered)
		lines += height
	}

	b.scrollTo(selTop, selBottom)

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// scrollTo moves the offset so the lines from top to bottom are visible.
func (b *Board) scrollTo(top, bottom int) {
	if b.Size.Height <= 0 {
		b.offset = 0
		return
	}

	if top < b.offset {
		b.offset = top
	}
	if bottom > b.offset+b.Size.Height {
		b.offset = bottom - b.Size.Height
	}
	b.offset = max(b.offset, 0)
}

func (b *Board) card(i int) string {
	t := b.Theme()
	note := b.notes[i]
	selected := i == b.SelectedIndex
	bg := t.NoteBackground(note.Color)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderColour(selected && b.Focused())).
		Background(bg).
		Foreground(t.NoteFg).
		Padding(0, 1).
		Width(b.cardWidth)

	if selected {
		style = style.BorderStyle(lipgloss.ThickBorder())
	}

	var body string
	if note.ID == b.editingID {
		body = b.Textarea.View()
	} else {
		body = utils.WrapText(note.Text, b.innerWidth())
	}

	return style.Render(b.cardHeader(note) + "\n" + body)
}

// cardHeader shows the colour name on the left and the delete control on
// the right, the way the sticky note pins its "×".
func (b *Board) cardHeader(note notes.Note) string {
	t := b.Theme()

	icon := iconDelete
	if b.nerdFonts {
		icon = iconDeleteNerd
	}

	label := note.Color.Name()
	if note.Editing {
		label += " · editing"
	}

	width := b.innerWidth()
	space := max(width-lipgloss.Width(label)-lipgloss.Width(icon), 1)

	return lipgloss.NewStyle().Foreground(t.Muted).Render(label) +
		strings.Repeat(" ", space) +
		lipgloss.NewStyle().Bold(true).Render(icon)
}

// innerWidth is the text width inside a card's border and padding
func (b *Board) innerWidth() int {
	return max(b.cardWidth-4, 1)
}

func (b *Board) noteByID(id string) (notes.Note, bool) {
	for _, n := range b.notes {
		if n.ID == id {
			return n, true
		}
	}
	return notes.Note{}, false
}

// EditSummary describes how an edit changed a note's text, e.g. "+4 -1".
// It returns an empty string when nothing changed.
func EditSummary(before, after string) string {
	if before == after {
		return ""
	}

	d := dmp.New()
	diffs := d.DiffCleanupSemantic(d.DiffMain(before, after, false))

	inserted, deleted := 0, 0
	for _, diff := range diffs {
		n := utils.CharCount(diff.Text)

		switch diff.Type {
		case dmp.DiffInsert:
			inserted += n
		case dmp.DiffDelete:
			deleted += n
		}
	}

	return fmt.Sprintf("+%d -%d", inserted, deleted)
}
