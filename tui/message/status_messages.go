package message

var StatusBar = struct {
	Loaded, Added, Deleted, Edited, Unchanged, Copied, CopyFailed,
	NothingToAdd, NothingSelected, DarkMode, LightMode string
}{
	Loaded:          "Loaded %d notes",
	Added:           "Note added",
	Deleted:         "Note deleted",
	Edited:          "Note saved (%s)",
	Unchanged:       "Note unchanged",
	Copied:          "Copied %d characters",
	CopyFailed:      "Clipboard not available",
	NothingToAdd:    "Type something first",
	NothingSelected: "No note selected",
	DarkMode:        "Dark theme",
	LightMode:       "Light theme",
}
