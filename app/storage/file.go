package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const tempFilePrefix = "sticky-tmp-"

// FileStore keeps all keys in a single JSON object file.
// Every write rewrites the whole file atomically.
type FileStore struct {
	path   string
	values map[string]string

	// MaxBytes limits the encoded file size. Zero means no limit.
	MaxBytes int64
}

// OpenFile loads the store at path. A missing file is an empty store;
// a file that is not a JSON object of strings makes the store unavailable.
func OpenFile(path string, maxBytes int64) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		values:   map[string]string{},
		MaxBytes: maxBytes,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, NewError(KindUnavailable, "", err)
	}

	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, NewError(
			KindUnavailable,
			"",
			fmt.Errorf("%s is not a valid store file: %w", path, err),
		)
	}

	if s.values == nil {
		s.values = map[string]string{}
	}

	return s, nil
}

// Path returns the file the store writes to.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileStore) Set(key string, value string) error {
	next := make(map[string]string, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value

	if err := s.flush(key, next); err != nil {
		return err
	}

	s.values = next
	return nil
}

func (s *FileStore) Remove(key string) error {
	if _, ok := s.values[key]; !ok {
		return nil
	}

	next := make(map[string]string, len(s.values))
	for k, v := range s.values {
		if k != key {
			next[k] = v
		}
	}

	if err := s.flush(key, next); err != nil {
		return err
	}

	s.values = next
	return nil
}

func (s *FileStore) Close() error { return nil }

// flush encodes values and replaces the file. The in-memory map is only
// swapped by the caller once the write succeeded.
func (s *FileStore) flush(key string, values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return NewError(KindWrite, key, err)
	}

	if s.MaxBytes > 0 && int64(len(data)) > s.MaxBytes {
		return quotaError(key, len(data), s.MaxBytes)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return NewError(KindWrite, key, err)
	}

	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return NewError(KindWrite, key, err)
	}

	return nil
}

// writeFileAtomic writes data to a temp file in the target directory
// and renames it over filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}
