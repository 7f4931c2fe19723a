package notes

import (
	"errors"
	"math/rand/v2"

	"github.com/google/uuid"

	"sticky-notes/app/storage"
)

// Surface is whatever displays the notes. It receives a copy of the full
// list after every load and every change, edit mode included.
type Surface interface {
	Render(list []Note)
}

// LoadReport summarises a Load.
type LoadReport struct {
	Loaded  int
	Skipped []Skipped
}

// Board owns the ordered list of notes. The list is the single source of
// truth: the surface is a projection of it and the store holds a snapshot
// of it taken after every change.
//
// A Board is not safe for concurrent use.
type Board struct {
	store   storage.Store
	surface Surface
	rand    *rand.Rand
	newID   func() string

	list []Note

	// drafts holds the edit control value of every note in edit mode
	drafts map[string]string
}

// Option configures a Board.
type Option func(*Board)

// WithSurface sets the surface the board renders to.
func WithSurface(s Surface) Option {
	return func(b *Board) { b.surface = s }
}

// WithRand sets the random source used to pick colours.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) { b.rand = r }
}

// WithIDFunc replaces the uuid based ID generator.
func WithIDFunc(fn func() string) Option {
	return func(b *Board) { b.newID = fn }
}

// NewBoard returns an empty board persisting to store.
// Call Load to populate it.
func NewBoard(store storage.Store, opts ...Option) *Board {
	b := &Board{
		store:  store,
		newID:  uuid.NewString,
		drafts: map[string]string{},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// SetSurface replaces the surface and renders the current list to it.
func (b *Board) SetSurface(s Surface) {
	b.surface = s
	b.render()
}

// Load replaces the list with the persisted one.
//
// A missing key is an empty list. A payload that can't be parsed at all is
// discarded and removed from the store. Invalid entries are skipped and
// listed in the report. The returned error is a *storage.Error describing
// why nothing or less than everything was loaded; the board is usable
// either way.
func (b *Board) Load() (LoadReport, error) {
	var report LoadReport

	b.list = nil
	clear(b.drafts)
	defer b.render()

	payload, ok, err := b.store.Get(StorageKey)
	if err != nil {
		return report, asStorageError(storage.KindRead, err)
	}
	if !ok || payload == "" {
		return report, nil
	}

	entries, skipped, err := Decode([]byte(payload))
	if err != nil {
		parseErr := storage.NewError(storage.KindParse, StorageKey, err)

		if rmErr := b.store.Remove(StorageKey); rmErr != nil {
			return report, errors.Join(parseErr, rmErr)
		}

		return report, parseErr
	}

	for _, entry := range entries {
		b.list = append(b.list, Note{
			ID:    b.newID(),
			Text:  entry.Text,
			Color: entry.Color,
		})
	}

	report.Loaded = len(entries)
	report.Skipped = skipped

	return report, nil
}

// Save writes the whole list to the store, replacing the previous snapshot.
// Notes in edit mode are saved with their last committed text.
// On failure the list is left as it is; the next successful save catches up.
func (b *Board) Save() error {
	data, err := Encode(b.list)
	if err != nil {
		return storage.NewError(storage.KindWrite, StorageKey, err)
	}

	if err := b.store.Set(StorageKey, string(data)); err != nil {
		return asStorageError(storage.KindWrite, err)
	}

	return nil
}

// Add appends a note with a random colour and saves.
// Blank text is ignored: nothing is added and nothing is saved.
func (b *Board) Add(text string) (Note, bool, error) {
	text = cleanText(text)
	if text == "" {
		return Note{}, false, nil
	}

	note := Note{
		ID:    b.newID(),
		Text:  text,
		Color: RandomColor(b.rand),
	}

	b.list = append(b.list, note)
	b.render()

	return note, true, b.Save()
}

// BeginEdit puts a note into edit mode with its text as the draft.
// Only one note is edited at a time: a note already in edit mode is
// committed first. Returns false if the note doesn't exist or is
// already being edited.
func (b *Board) BeginEdit(id string) (bool, error) {
	i := b.index(id)
	if i < 0 || b.list[i].Editing {
		return false, nil
	}

	var err error
	if open, ok := b.Editing(); ok {
		_, _, err = b.CommitEdit(open.ID)
	}

	b.list[i].Editing = true
	b.drafts[id] = b.list[i].Text
	b.render()

	return true, err
}

// SetDraft records the current value of a note's edit control.
// It's a no-op for notes not in edit mode.
func (b *Board) SetDraft(id string, text string) {
	if _, ok := b.drafts[id]; ok {
		b.drafts[id] = text
	}
}

// Draft returns the edit control value of a note in edit mode.
func (b *Board) Draft(id string) (string, bool) {
	d, ok := b.drafts[id]
	return d, ok
}

// CommitEdit ends edit mode, stores the trimmed draft and saves.
// An empty draft becomes Placeholder so a note never loses its text.
// Committing a note that isn't in edit mode does nothing.
func (b *Board) CommitEdit(id string) (Note, bool, error) {
	i := b.index(id)
	if i < 0 || !b.list[i].Editing {
		return Note{}, false, nil
	}

	text := cleanText(b.drafts[id])
	if text == "" {
		text = Placeholder
	}

	b.list[i].Text = text
	b.list[i].Editing = false
	delete(b.drafts, id)
	b.render()

	return b.list[i], true, b.Save()
}

// Delete removes a note and saves. There is no undo.
func (b *Board) Delete(id string) (bool, error) {
	i := b.index(id)
	if i < 0 {
		return false, nil
	}

	b.list = append(b.list[:i:i], b.list[i+1:]...)
	delete(b.drafts, id)
	b.render()

	return true, b.Save()
}

// Notes returns a copy of the list in display order.
func (b *Board) Notes() []Note {
	list := make([]Note, len(b.list))
	copy(list, b.list)
	return list
}

// Len returns the number of notes.
func (b *Board) Len() int { return len(b.list) }

// Get returns the note with the given id.
func (b *Board) Get(id string) (Note, bool) {
	if i := b.index(id); i >= 0 {
		return b.list[i], true
	}
	return Note{}, false
}

// At returns the note at index i in display order.
func (b *Board) At(i int) (Note, bool) {
	if i < 0 || i >= len(b.list) {
		return Note{}, false
	}
	return b.list[i], true
}

// Editing returns the note currently in edit mode, if any.
func (b *Board) Editing() (Note, bool) {
	for _, n := range b.list {
		if n.Editing {
			return n, true
		}
	}
	return Note{}, false
}

func (b *Board) index(id string) int {
	for i := range b.list {
		if b.list[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) render() {
	if b.surface == nil {
		return
	}
	b.surface.Render(b.Notes())
}

// asStorageError keeps classified errors as they are and wraps
// anything else with kind.
func asStorageError(kind storage.Kind, err error) error {
	var sErr *storage.Error
	if errors.As(err, &sErr) {
		return err
	}
	return storage.NewError(kind, StorageKey, err)
}
