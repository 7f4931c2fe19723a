package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"sticky-notes/app/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// backends returns a fresh store of every kind, each limited to maxBytes.
func backends(t *testing.T, maxBytes int64) map[string]storage.Store {
	t.Helper()
	dir := t.TempDir()

	file, err := storage.OpenFile(filepath.Join(dir, "store.json"), maxBytes)
	require.NoError(t, err)

	db, err := storage.OpenSQLite(filepath.Join(dir, "store.db"), maxBytes)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mem := storage.NewMemoryStore()
	mem.MaxBytes = maxBytes

	return map[string]storage.Store{
		"file":   file,
		"sqlite": db,
		"memory": mem,
	}
}

func TestSetGetRemove(t *testing.T) {
	for name, s := range backends(t, 0) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("notes")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("notes", `[{"text":"a","color":"note-blue"}]`))
			require.NoError(t, s.Set("isDarkMode", "true"))

			v, ok, err := s.Get("notes")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"text":"a","color":"note-blue"}]`, v)

			require.NoError(t, s.Set("notes", "[]"))
			v, _, _ = s.Get("notes")
			assert.Equal(t, "[]", v)

			require.NoError(t, s.Remove("notes"))
			require.NoError(t, s.Remove("notes"))

			_, ok, err = s.Get("notes")
			require.NoError(t, err)
			assert.False(t, ok)

			dark, ok, err := s.Get("isDarkMode")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "true", dark)
		})
	}
}

func TestQuotaKeepsPreviousValue(t *testing.T) {
	for name, s := range backends(t, 64) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("notes", "[]"))

			err := s.Set("notes", strings.Repeat("x", 128))
			require.Error(t, err)
			assert.Equal(t, storage.KindQuota, storage.KindOf(err))
			assert.True(t, errors.Is(err, storage.ErrQuotaExceeded))

			v, ok, err := s.Get("notes")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[]", v)
		})
	}
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := storage.OpenFile(path, 0)
	require.NoError(t, err)
	require.NoError(t, s.Set("isDarkMode", "false"))

	reopened, err := storage.OpenFile(path, 0)
	require.NoError(t, err)

	v, ok, err := reopened.Get("isDarkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreCorruptFileIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := storage.OpenFile(path, 0)
	require.Error(t, err)
	assert.Equal(t, storage.KindUnavailable, storage.KindOf(err))
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := storage.OpenSQLite(path, 0)
	require.NoError(t, err)
	require.NoError(t, s.Set("notes", "[]"))
	require.NoError(t, s.Close())

	reopened, err := storage.OpenSQLite(path, 0)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestMemoryStoreFaults(t *testing.T) {
	s := storage.NewMemoryStore()
	s.FailReads = true
	s.FailWrites = true

	_, _, err := s.Get("notes")
	assert.Equal(t, storage.KindRead, storage.KindOf(err))

	err = s.Set("notes", "[]")
	assert.Equal(t, storage.KindWrite, storage.KindOf(err))

	err = s.Remove("notes")
	assert.True(t, storage.IsKind(err, storage.KindWrite))
	assert.Equal(t, 0, s.Writes)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.Open(storage.Options{Backend: "FILE", Path: filepath.Join(dir, "a.json")})
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStore{}, s)

	s, err = storage.Open(storage.Options{Backend: storage.BackendSQLite, Path: filepath.Join(dir, "a.db")})
	require.NoError(t, err)
	assert.IsType(t, &storage.SQLiteStore{}, s)
	require.NoError(t, s.Close())

	s, err = storage.Open(storage.Options{Backend: storage.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, s)

	_, err = storage.Open(storage.Options{Backend: "cloud"})
	assert.Equal(t, storage.KindUnavailable, storage.KindOf(err))

	_, err = storage.Open(storage.Options{Backend: storage.BackendFile})
	assert.Equal(t, storage.KindUnavailable, storage.KindOf(err))
}

func TestOpenOrMemoryFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,2"), 0644))

	s, err := storage.OpenOrMemory(storage.Options{Backend: storage.BackendFile, Path: path})
	require.Error(t, err)
	require.NotNil(t, s)
	assert.IsType(t, &storage.MemoryStore{}, s)

	require.NoError(t, s.Set("notes", "[]"))
}

func TestErrorMessage(t *testing.T) {
	err := storage.NewError(storage.KindParse, "notes", errors.New("boom"))
	assert.Equal(t, "storage parse error (notes): boom", err.Error())

	err = storage.NewError(storage.KindRead, "", errors.New("boom"))
	assert.Equal(t, "storage read error: boom", err.Error())
	assert.Equal(t, storage.KindUnknown, storage.KindOf(errors.New("plain")))
}
