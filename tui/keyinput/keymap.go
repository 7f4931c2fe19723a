package keyinput

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/tailscale/hujson"

	"sticky-notes/app/debug"
	"sticky-notes/tui/mode"
)

//go:embed keymap.json
var defaultKeyMap []byte

// DefaultKeyMap returns the embedded keymap file, comments included.
func DefaultKeyMap() []byte {
	return slices.Clone(defaultKeyMap)
}

type KeyMapEntry struct {
	Mode       string                `json:"mode"`
	Components []string              `json:"components"`
	Bindings   map[string]MapBinding `json:"bindings"`
}

func (e *KeyMapEntry) ResolveMode() mode.Mode {
	m, ok := mode.Parse(e.Mode)
	if !ok {
		debug.LogWarn("unknown keymap mode:", e.Mode)
	}
	return m
}

// sameScope reports whether two entries apply to the same mode and components.
func (e *KeyMapEntry) sameScope(o KeyMapEntry) bool {
	a := slices.Sorted(slices.Values(e.Components))
	b := slices.Sorted(slices.Values(o.Components))
	return e.Mode == o.Mode && slices.Equal(a, b)
}

type Options map[string]any

func (o Options) GetBool(key string) bool {
	val, ok := o[key].(bool)
	return ok && val
}

func (o Options) GetString(key string) string {
	str, _ := o[key].(string)
	return str
}

type MapBinding struct {
	Action  string
	Options Options
	HasOpts bool
}

func (b *MapBinding) UnmarshalJSON(data []byte) error {
	var keyString string

	if err := json.Unmarshal(data, &keyString); err == nil {
		b.Action = keyString
		b.Options = Options{}
		b.HasOpts = false

		return nil
	}

	var keyArr []json.RawMessage
	if err := json.Unmarshal(data, &keyArr); err != nil {
		return err
	}

	if len(keyArr) == 0 {
		return errors.New("empty key binding")
	}

	if err := json.Unmarshal(keyArr[0], &b.Action); err != nil {
		return err
	}

	b.Options = Options{}
	if len(keyArr) > 1 {
		if err := json.Unmarshal(keyArr[1], &b.Options); err != nil {
			return err
		}
		b.HasOpts = true
	}

	return nil
}

// ParseKeyMap parses a keymap file. Comments and trailing commas are allowed.
func ParseKeyMap(data []byte) ([]KeyMapEntry, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid keymap: %w", err)
	}

	var entries []KeyMapEntry
	if err := json.Unmarshal(std, &entries); err != nil {
		return nil, fmt.Errorf("invalid keymap: %w", err)
	}

	return entries, nil
}

// Merge applies user entries on top of the defaults. Bindings of entries
// sharing mode and components replace the default ones, an empty action
// removes a binding. Entries without a default counterpart are appended.
func Merge(defaults, user []KeyMapEntry) []KeyMapEntry {
	merged := make([]KeyMapEntry, 0, len(defaults)+len(user))
	for _, e := range defaults {
		e.Bindings = cloneBindings(e.Bindings)
		merged = append(merged, e)
	}

	for _, u := range user {
		i := slices.IndexFunc(merged, func(e KeyMapEntry) bool {
			return e.sameScope(u)
		})

		if i < 0 {
			u.Bindings = cloneBindings(u.Bindings)
			for key, b := range u.Bindings {
				if b.Action == "" {
					delete(u.Bindings, key)
				}
			}
			merged = append(merged, u)
			continue
		}

		for key, b := range u.Bindings {
			if b.Action == "" {
				delete(merged[i].Bindings, key)
				continue
			}
			merged[i].Bindings[key] = b
		}
	}

	return merged
}

// LoadKeyMap returns the default keymap merged with the user file at path.
// A missing user file is not an error. A broken one is reported and the
// defaults are used.
func LoadKeyMap(path string) ([]KeyMapEntry, error) {
	defaults, err := ParseKeyMap(defaultKeyMap)
	if err != nil {
		return nil, err
	}

	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaults, nil
		}
		return defaults, err
	}

	user, err := ParseKeyMap(data)
	if err != nil {
		return defaults, fmt.Errorf("%s: %w", path, err)
	}

	return Merge(defaults, user), nil
}

func cloneBindings(b map[string]MapBinding) map[string]MapBinding {
	out := make(map[string]MapBinding, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
