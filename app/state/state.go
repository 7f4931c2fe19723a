// Package state keeps the theme preference. It is stored next to the notes
// but under its own key, so the two never affect each other.
package state

import (
	"strconv"

	"sticky-notes/app/storage"
)

// StorageKey is the key the theme flag is persisted under.
const StorageKey = "isDarkMode"

// Theme labels shown on the toggle button. The label names the mode
// the button switches to.
const (
	LabelToLight = "Light Mode"
	LabelToDark  = "Dark Mode"
)

type State struct {
	store storage.Store

	// fallback is used when nothing (valid) is stored
	fallback bool
	dark     bool
}

// New returns the theme state. Call Read to load the persisted value.
func New(store storage.Store, fallback bool) *State {
	return &State{
		store:    store,
		fallback: fallback,
		dark:     fallback,
	}
}

// Read loads the persisted flag. A missing or unrecognised value leaves
// the fallback in place.
func (s *State) Read() error {
	s.dark = s.fallback

	v, ok, err := s.store.Get(StorageKey)
	if err != nil {
		if storage.KindOf(err) == storage.KindUnknown {
			return storage.NewError(storage.KindRead, StorageKey, err)
		}
		return err
	}
	if !ok {
		return nil
	}

	dark, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}

	s.dark = dark
	return nil
}

func (s *State) IsDarkMode() bool {
	return s.dark
}

// Toggle flips the theme and persists it. The in-memory flag flips even
// when persisting fails.
func (s *State) Toggle() (bool, error) {
	err := s.SetDarkMode(!s.dark)
	return s.dark, err
}

// SetDarkMode sets and persists the theme.
func (s *State) SetDarkMode(dark bool) error {
	s.dark = dark

	if err := s.store.Set(StorageKey, strconv.FormatBool(dark)); err != nil {
		if storage.KindOf(err) == storage.KindUnknown {
			return storage.NewError(storage.KindWrite, StorageKey, err)
		}
		return err
	}

	return nil
}

// Label returns the text of the theme toggle button.
func (s *State) Label() string {
	if s.dark {
		return LabelToLight
	}
	return LabelToDark
}
