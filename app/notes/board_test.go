package notes_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sticky-notes/app/notes"
	"sticky-notes/app/storage"
)

// fakeSurface records every render.
type fakeSurface struct {
	renders int
	last    []notes.Note
}

func (s *fakeSurface) Render(list []notes.Note) {
	s.renders++
	s.last = list
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("note-%d", n)
	}
}

func newBoard(t *testing.T, store storage.Store) (*notes.Board, *fakeSurface) {
	t.Helper()
	surface := &fakeSurface{}
	board := notes.NewBoard(
		store,
		notes.WithSurface(surface),
		notes.WithRand(rand.New(rand.NewPCG(7, 11))),
		notes.WithIDFunc(sequentialIDs()),
	)
	return board, surface
}

// entries strips in-memory only fields.
func entries(list []notes.Note) []notes.Entry {
	out := make([]notes.Entry, 0, len(list))
	for _, n := range list {
		out = append(out, n.Entry())
	}
	return out
}

// reload loads the store into a fresh board, the way a restart would.
func reload(t *testing.T, store storage.Store) []notes.Entry {
	t.Helper()
	fresh, _ := newBoard(t, store)
	_, err := fresh.Load()
	require.NoError(t, err)
	return entries(fresh.Notes())
}

func TestAddAppendsAndSaves(t *testing.T) {
	store := storage.NewMemoryStore()
	board, surface := newBoard(t, store)

	first, ok, err := board.Add("  first  ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", first.Text)
	assert.True(t, first.Color.Valid())

	second, ok, err := board.Add("second")
	require.NoError(t, err)
	require.True(t, ok)

	list := board.Notes()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[1].ID, "new notes go last")

	assert.Equal(t, 2, surface.renders)
	if diff := cmp.Diff(entries(list), reload(t, store)); diff != "" {
		t.Errorf("persisted list mismatch (-want +got):\n%s", diff)
	}
}

func TestAddBlankIsNoop(t *testing.T) {
	store := storage.NewMemoryStore()
	board, surface := newBoard(t, store)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, ok, err := board.Add(text)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	assert.Equal(t, 0, board.Len())
	assert.Equal(t, 0, store.Writes, "blank adds must not save")
	assert.Equal(t, 0, surface.renders)
}

func TestLoadSkipsMalformedEntries(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("notes", `[{"text":"a","color":"note-blue"}, {"text":"","color":"note-pink"}, null]`))

	board, surface := newBoard(t, store)
	report, err := board.Load()
	require.NoError(t, err)

	assert.Equal(t, 1, report.Loaded)
	assert.Len(t, report.Skipped, 2)

	list := board.Notes()
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Text)
	assert.Equal(t, notes.Blue, list[0].Color)
	assert.Equal(t, 1, surface.renders)
	assert.Len(t, surface.last, 1)
}

func TestLoadCorruptPayloadClearsKey(t *testing.T) {
	for _, payload := range []string{"{not valid json", "null", `{"text":"a"}`} {
		t.Run(payload, func(t *testing.T) {
			testLoadCorruptPayloadClearsKey(t, payload)
		})
	}
}

func testLoadCorruptPayloadClearsKey(t *testing.T, payload string) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("notes", payload))
	require.NoError(t, store.Set("isDarkMode", "true"))

	board, _ := newBoard(t, store)
	_, err := board.Load()
	require.Error(t, err)
	assert.Equal(t, storage.KindParse, storage.KindOf(err))
	assert.Equal(t, 0, board.Len())

	_, ok, _ := store.Get("notes")
	assert.False(t, ok, "corrupt payload must be removed")

	dark, ok, _ := store.Get("isDarkMode")
	assert.True(t, ok)
	assert.Equal(t, "true", dark)

	// the board keeps working after the reset
	_, _, err = board.Add("fresh")
	require.NoError(t, err)
	assert.Len(t, reload(t, store), 1)
}

func TestLoadMissingKey(t *testing.T) {
	board, surface := newBoard(t, storage.NewMemoryStore())

	report, err := board.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Loaded)
	assert.Equal(t, 0, board.Len())
	assert.Equal(t, 1, surface.renders)
}

func TestLoadReadFailureIsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("notes", `[{"text":"a","color":"note-blue"}]`))
	store.FailReads = true

	board, _ := newBoard(t, store)
	_, err := board.Load()
	assert.Equal(t, storage.KindRead, storage.KindOf(err))
	assert.Equal(t, 0, board.Len())
}

func TestAddThenDeleteRestoresPersistedList(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("notes", `[{"text":"keep","color":"note-pink"}]`))

	board, _ := newBoard(t, store)
	_, err := board.Load()
	require.NoError(t, err)

	before, _, _ := store.Get("notes")

	note, _, err := board.Add("Hello")
	require.NoError(t, err)

	ok, err := board.Delete(note.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	after, _, _ := store.Get("notes")
	assert.JSONEq(t, before, after)
}

func TestAddThenDeleteOnEmptyStore(t *testing.T) {
	store := storage.NewMemoryStore()
	board, _ := newBoard(t, store)

	note, _, err := board.Add("Hello")
	require.NoError(t, err)
	_, err = board.Delete(note.ID)
	require.NoError(t, err)

	after, _, _ := store.Get("notes")
	assert.Equal(t, "[]", after)
}

func TestDeleteUnknownID(t *testing.T) {
	store := storage.NewMemoryStore()
	board, _ := newBoard(t, store)

	ok, err := board.Delete("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Writes)
}

func TestCommitEmptyEditUsesPlaceholder(t *testing.T) {
	store := storage.NewMemoryStore()
	board, _ := newBoard(t, store)

	note, _, err := board.Add("X")
	require.NoError(t, err)

	ok, err := board.BeginEdit(note.ID)
	require.NoError(t, err)
	require.True(t, ok)

	draft, ok := board.Draft(note.ID)
	require.True(t, ok)
	assert.Equal(t, "X", draft)

	board.SetDraft(note.ID, "   ")
	committed, ok, err := board.CommitEdit(note.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, notes.Placeholder, committed.Text)
	assert.False(t, committed.Editing)

	persisted := reload(t, store)
	require.Len(t, persisted, 1)
	assert.Equal(t, notes.Placeholder, persisted[0].Text)
	assert.Equal(t, note.Color, persisted[0].Color, "colour never changes")
}

func TestCommitEditTrimsAndSaves(t *testing.T) {
	store := storage.NewMemoryStore()
	board, surface := newBoard(t, store)

	note, _, _ := board.Add("old")
	_, _ = board.BeginEdit(note.ID)
	assert.True(t, surface.last[0].Editing)

	board.SetDraft(note.ID, "  line one\nline two  ")
	_, _, err := board.CommitEdit(note.ID)
	require.NoError(t, err)

	assert.False(t, surface.last[0].Editing)
	assert.Equal(t, "line one\nline two", surface.last[0].Text)
	assert.Equal(t, "line one\nline two", reload(t, store)[0].Text)
}

func TestCommitEditTwiceIsNoop(t *testing.T) {
	store := storage.NewMemoryStore()
	board, _ := newBoard(t, store)

	note, _, _ := board.Add("a")
	_, _ = board.BeginEdit(note.ID)
	board.SetDraft(note.ID, "b")
	_, _, _ = board.CommitEdit(note.ID)

	writes := store.Writes
	_, ok, err := board.CommitEdit(note.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, writes, store.Writes)

	// drafts for notes outside edit mode are ignored
	board.SetDraft(note.ID, "c")
	_, ok = board.Draft(note.ID)
	assert.False(t, ok)
	got, _ := board.Get(note.ID)
	assert.Equal(t, "b", got.Text)
}

func TestBeginEditIsNoopWhenEditing(t *testing.T) {
	board, _ := newBoard(t, storage.NewMemoryStore())

	note, _, _ := board.Add("a")
	ok, _ := board.BeginEdit(note.ID)
	require.True(t, ok)

	board.SetDraft(note.ID, "typed")
	ok, _ = board.BeginEdit(note.ID)
	assert.False(t, ok)

	draft, _ := board.Draft(note.ID)
	assert.Equal(t, "typed", draft, "a second begin must not reset the draft")

	ok, _ = board.BeginEdit("missing")
	assert.False(t, ok)
}

func TestBeginEditCommitsOtherOpenEdit(t *testing.T) {
	store := storage.NewMemoryStore()
	board, _ := newBoard(t, store)

	a, _, _ := board.Add("a")
	b, _, _ := board.Add("b")

	_, _ = board.BeginEdit(a.ID)
	board.SetDraft(a.ID, "a edited")

	ok, err := board.BeginEdit(b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	editing, ok := board.Editing()
	require.True(t, ok)
	assert.Equal(t, b.ID, editing.ID)

	got, _ := board.Get(a.ID)
	assert.False(t, got.Editing)
	assert.Equal(t, "a edited", got.Text)
	assert.Equal(t, "a edited", reload(t, store)[0].Text)
}

func TestSaveDuringEditUsesCommittedText(t *testing.T) {
	store := storage.NewMemoryStore()
	board, _ := newBoard(t, store)

	a, _, _ := board.Add("a")
	_, _ = board.BeginEdit(a.ID)
	board.SetDraft(a.ID, "half typed")

	_, _, err := board.Add("b")
	require.NoError(t, err)

	assert.Equal(t, []notes.Entry{
		{Text: "a", Color: a.Color},
		{Text: "b", Color: board.Notes()[1].Color},
	}, reload(t, store))
}

func TestDeleteWhileEditingDropsDraft(t *testing.T) {
	board, _ := newBoard(t, storage.NewMemoryStore())

	a, _, _ := board.Add("a")
	_, _ = board.BeginEdit(a.ID)

	ok, err := board.Delete(a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, editing := board.Editing()
	assert.False(t, editing)
	_, ok = board.Draft(a.ID)
	assert.False(t, ok)
}

func TestWriteFailureKeepsState(t *testing.T) {
	store := storage.NewMemoryStore()
	board, surface := newBoard(t, store)

	_, _, err := board.Add("saved")
	require.NoError(t, err)

	store.FailWrites = true
	note, ok, err := board.Add("unsaved")
	assert.True(t, ok)
	assert.Equal(t, storage.KindWrite, storage.KindOf(err))
	assert.Equal(t, 2, board.Len(), "the board stays correct without storage")
	assert.Len(t, surface.last, 2)

	store.FailWrites = false
	_, err = board.Delete(note.ID)
	require.NoError(t, err)

	_, _, err = board.Add("resynced")
	require.NoError(t, err)

	got := reload(t, store)
	require.Len(t, got, 2)
	assert.Equal(t, "saved", got[0].Text)
	assert.Equal(t, "resynced", got[1].Text)
}

func TestQuotaFailureIsClassified(t *testing.T) {
	store := storage.NewMemoryStore()
	store.MaxBytes = 64
	board, _ := newBoard(t, store)

	_, _, err := board.Add("short")
	require.NoError(t, err)

	_, ok, err := board.Add(fmt.Sprintf("%080d", 0))
	assert.True(t, ok)
	assert.Equal(t, storage.KindQuota, storage.KindOf(err))
	assert.Equal(t, 2, board.Len())
	assert.Len(t, reload(t, store), 1)
}

func TestRoundTripAfterEveryOperation(t *testing.T) {
	store := storage.NewMemoryStore()
	board, _ := newBoard(t, store)
	r := rand.New(rand.NewPCG(3, 5))

	check := func(step int) {
		t.Helper()
		want := entries(board.Notes())
		if diff := cmp.Diff(want, reload(t, store), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("step %d: round trip mismatch (-want +got):\n%s", step, diff)
		}
	}

	for step := range 60 {
		switch op := r.IntN(3); {
		case op == 0 || board.Len() == 0:
			_, _, err := board.Add(fmt.Sprintf("note %d", step))
			require.NoError(t, err)

		case op == 1:
			n, _ := board.At(r.IntN(board.Len()))
			_, err := board.Delete(n.ID)
			require.NoError(t, err)

		default:
			n, _ := board.At(r.IntN(board.Len()))
			_, _ = board.BeginEdit(n.ID)
			text := fmt.Sprintf("edited %d", step)
			if step%7 == 0 {
				text = ""
			}
			board.SetDraft(n.ID, text)
			_, _, err := board.CommitEdit(n.ID)
			require.NoError(t, err)
		}

		check(step)
	}
}
