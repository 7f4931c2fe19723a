package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sticky-notes/app/state"
	"sticky-notes/app/storage"
)

func TestReadFallback(t *testing.T) {
	store := storage.NewMemoryStore()

	s := state.New(store, true)
	require.NoError(t, s.Read())
	assert.True(t, s.IsDarkMode())
	assert.Equal(t, state.LabelToLight, s.Label())

	require.NoError(t, store.Set(state.StorageKey, "maybe"))
	s = state.New(store, false)
	require.NoError(t, s.Read())
	assert.False(t, s.IsDarkMode(), "garbage keeps the fallback")
	assert.Equal(t, state.LabelToDark, s.Label())
}

func TestReadPersisted(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(state.StorageKey, "true"))

	s := state.New(store, false)
	require.NoError(t, s.Read())
	assert.True(t, s.IsDarkMode())
}

func TestToggleTwiceRestores(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set("notes", `[{"text":"a","color":"note-pink"}]`))

	s := state.New(store, false)
	require.NoError(t, s.Read())

	dark, err := s.Toggle()
	require.NoError(t, err)
	assert.True(t, dark)

	v, _, _ := store.Get(state.StorageKey)
	assert.Equal(t, "true", v)

	dark, err = s.Toggle()
	require.NoError(t, err)
	assert.False(t, dark)

	v, _, _ = store.Get(state.StorageKey)
	assert.Equal(t, "false", v)

	notes, _, _ := store.Get("notes")
	assert.Equal(t, `[{"text":"a","color":"note-pink"}]`, notes)

	reread := state.New(store, true)
	require.NoError(t, reread.Read())
	assert.False(t, reread.IsDarkMode())
}

func TestStoreFailures(t *testing.T) {
	store := storage.NewMemoryStore()
	s := state.New(store, true)

	store.FailReads = true
	err := s.Read()
	assert.Equal(t, storage.KindRead, storage.KindOf(err))
	assert.True(t, s.IsDarkMode())

	store.FailWrites = true
	dark, err := s.Toggle()
	assert.False(t, dark)
	assert.Equal(t, storage.KindWrite, storage.KindOf(err))
	assert.False(t, s.IsDarkMode(), "the theme flips without storage")
}
