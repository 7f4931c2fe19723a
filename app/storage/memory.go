package storage

import "errors"

var errMemoryFault = errors.New("injected fault")

// MemoryStore keeps values in a map. It is the fallback when no persistent
// backend can be opened and the store used in tests.
type MemoryStore struct {
	values map[string]string

	// MaxBytes limits the sum of key and value lengths. Zero means no limit.
	MaxBytes int64

	// FailReads and FailWrites make every Get or Set/Remove fail,
	// simulating disabled storage.
	FailReads  bool
	FailWrites bool

	// Writes counts successful Set and Remove calls.
	Writes int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	if s.FailReads {
		return "", false, NewError(KindRead, key, errMemoryFault)
	}

	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key string, value string) error {
	if s.FailWrites {
		return NewError(KindWrite, key, errMemoryFault)
	}

	if s.MaxBytes > 0 {
		size := s.sizeWith(key, value)
		if int64(size) > s.MaxBytes {
			return quotaError(key, size, s.MaxBytes)
		}
	}

	s.values[key] = value
	s.Writes++
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	if s.FailWrites {
		return NewError(KindWrite, key, errMemoryFault)
	}

	delete(s.values, key)
	s.Writes++
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// sizeWith returns the store size if key held value.
func (s *MemoryStore) sizeWith(key string, value string) int {
	size := len(key) + len(value)
	for k, v := range s.values {
		if k == key {
			continue
		}
		size += len(k) + len(v)
	}
	return size
}
