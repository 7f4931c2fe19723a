package keyinput

import (
	"slices"
	"strings"

	"sticky-notes/app/debug"
	"sticky-notes/tui/message"
	"sticky-notes/tui/mode"
)

// FocusedComponent is any part of the screen a keymap entry can name.
type FocusedComponent interface {
	Name() string
	Focused() bool
}

// Action runs a bound action with the options of its binding.
type Action func(opts Options) message.StatusBarMsg

// Input resolves key presses to actions, based on the current mode and
// the focused component.
type Input struct {
	Mode       mode.Mode
	Components []FocusedComponent

	entries []KeyMapEntry
	actions map[string]Action
}

// New creates an Input for the given keymap.
func New(entries []KeyMapEntry) *Input {
	return &Input{
		Mode:    mode.Normal,
		entries: entries,
		actions: map[string]Action{},
	}
}

// Register binds an action name as used in the keymap to a function.
func (ki *Input) Register(name string, fn Action) {
	ki.actions[name] = fn
}

// Binding returns the binding of key in the current context.
func (ki *Input) Binding(key string) (MapBinding, bool) {
	for _, entry := range ki.entries {
		if entry.ResolveMode() != ki.Mode {
			continue
		}

		if !ki.anyComponentFocused(entry.Components) {
			continue
		}

		if b, ok := entry.Bindings[key]; ok {
			return b, true
		}
	}

	return MapBinding{}, false
}

// HandleKey runs the action bound to key. The second return value is
// false when nothing is bound, so the key can go to the focused widget.
func (ki *Input) HandleKey(key string) (message.StatusBarMsg, bool) {
	binding, ok := ki.Binding(key)
	if !ok {
		return message.StatusBarMsg{}, false
	}

	fn, ok := ki.actions[binding.Action]
	if !ok {
		debug.LogWarn("no action registered for", binding.Action)
		return message.StatusBarMsg{}, false
	}

	return fn(binding.Options), true
}

// Hint is one line of the key help: an action and the keys bound to it.
type Hint struct {
	Action string
	Keys   []string
}

// Hints lists the actions available in the current context, sorted by
// action name.
func (ki *Input) Hints() []Hint {
	byAction := map[string][]string{}

	for _, entry := range ki.entries {
		if entry.ResolveMode() != ki.Mode || !ki.anyComponentFocused(entry.Components) {
			continue
		}

		for key, b := range entry.Bindings {
			if !slices.Contains(byAction[b.Action], key) {
				byAction[b.Action] = append(byAction[b.Action], key)
			}
		}
	}

	hints := make([]Hint, 0, len(byAction))
	for action, keys := range byAction {
		slices.SortFunc(keys, func(a, b string) int {
			// single characters first, then by name
			if d := len(a) - len(b); d != 0 {
				return d
			}
			return strings.Compare(a, b)
		})
		hints = append(hints, Hint{Action: action, Keys: keys})
	}

	slices.SortFunc(hints, func(a, b Hint) int {
		return strings.Compare(a.Action, b.Action)
	})

	return hints
}

// anyComponentFocused returns whether any of the named components is focused
func (ki *Input) anyComponentFocused(names []string) bool {
	for _, c := range ki.Components {
		if c.Focused() && slices.Contains(names, c.Name()) {
			return true
		}
	}
	return false
}
