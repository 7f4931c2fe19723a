package app

import (
	"os"
	"path/filepath"

	"sticky-notes/app/debug"
)

// Command line switches, bound by the cli.
var (
	NoNerdFonts bool
	Debug       bool

	// ConfigPath replaces the default config file location
	ConfigPath string

	// Backend and StorePath override the [Storage] config section
	Backend   string
	StorePath string
)

func IsDev() bool {
	return os.Getenv("CHANNEL") == "dev"
}

func Name() string {
	return "Sticky Notes"
}

// ModuleName is the name used for directories and files.
// A release channel gets its own set so dev builds don't touch real notes.
func ModuleName() string {
	moduleName := "sticky-notes"
	if channel := os.Getenv("CHANNEL"); channel != "" {
		moduleName += "-" + channel
	}

	return moduleName
}

// ConfigDir returns the config directory, creating it if needed.
// When a config file was passed on the command line its directory is used.
func ConfigDir() (string, error) {
	if ConfigPath != "" {
		return filepath.Dir(ConfigPath), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		debug.LogErr("Could not get user config directory:", err)
		return "", err
	}

	confDir := filepath.Join(configDir, ModuleName())

	if err := os.MkdirAll(confDir, 0755); err != nil {
		debug.LogErr("Could not create config directory:", err)
		return "", err
	}

	return confDir, nil
}

// ConfigFile returns the path to the config file
func ConfigFile() (string, error) {
	if ConfigPath != "" {
		return ConfigPath, nil
	}

	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, ModuleName()+".conf"), nil
}

// KeymapFile returns the path of the user keymap overrides.
// The file doesn't have to exist.
func KeymapFile() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "keymap.json"), nil
}
