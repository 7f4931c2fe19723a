// Package storage provides the key-value stores notes and preferences are
// persisted in. Values are plain strings, the same way browser local storage
// keeps them.
package storage

import (
	"errors"
	"fmt"
)

// Store is a string key-value store.
// Implementations are not safe for concurrent use.
type Store interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(key string, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	Close() error
}

// Kind classifies storage failures so callers can decide whether to
// log, ignore or fall back.
type Kind int

const (
	KindUnknown Kind = iota
	KindRead
	KindParse
	KindWrite
	KindQuota
	KindUnavailable
)

var kinds = map[Kind]string{
	KindUnknown:     "unknown",
	KindRead:        "read",
	KindParse:       "parse",
	KindWrite:       "write",
	KindQuota:       "quota",
	KindUnavailable: "unavailable",
}

func (k Kind) String() string {
	return kinds[k]
}

// ErrQuotaExceeded is wrapped by every KindQuota error.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Error is a classified storage failure.
type Error struct {
	Kind Kind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("storage %s error (%s): %v", e.Kind, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError wraps err with a kind and the key it happened on.
func NewError(kind Kind, key string, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain,
// or KindUnknown.
func KindOf(err error) Kind {
	var sErr *Error
	if errors.As(err, &sErr) {
		return sErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// quotaError builds the error returned when a write would exceed max bytes.
func quotaError(key string, size int, max int64) *Error {
	return NewError(
		KindQuota,
		key,
		fmt.Errorf("%w: %d bytes > %d bytes", ErrQuotaExceeded, size, max),
	)
}
