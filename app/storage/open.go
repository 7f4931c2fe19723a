package storage

import (
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string
	Path     string
	MaxBytes int64
}

// Open returns the store described by opts.
// Failures are always *Error values of KindUnavailable.
func Open(opts Options) (Store, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))

	switch backend {
	case "", BackendFile:
		if opts.Path == "" {
			return nil, NewError(KindUnavailable, "", fmt.Errorf("no store path set"))
		}
		return OpenFile(opts.Path, opts.MaxBytes)

	case BackendSQLite:
		if opts.Path == "" {
			return nil, NewError(KindUnavailable, "", fmt.Errorf("no store path set"))
		}
		return OpenSQLite(opts.Path, opts.MaxBytes)

	case BackendMemory:
		s := NewMemoryStore()
		s.MaxBytes = opts.MaxBytes
		return s, nil
	}

	return nil, NewError(
		KindUnavailable,
		"",
		fmt.Errorf("unknown storage backend `%s`", opts.Backend),
	)
}

// OpenOrMemory opens the configured backend and falls back to an in-memory
// store when that fails. The returned error is the reason for the fallback.
func OpenOrMemory(opts Options) (Store, error) {
	s, err := Open(opts)
	if err != nil {
		mem := NewMemoryStore()
		mem.MaxBytes = opts.MaxBytes
		return mem, err
	}
	return s, nil
}
