package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sticky-notes/app"
	"sticky-notes/app/debug"
	"sticky-notes/app/storage"
	"sticky-notes/app/utils"

	"gopkg.in/ini.v1"
)

//go:embed default.conf
var defaultConf []byte

type Section int

const (
	General Section = iota
	Storage
	Theme
	Board
	Editor
	Log
)

// Map of Section enum values to their string representations
var sections = map[Section]string{
	General: "General",
	Storage: "Storage",
	Theme:   "Theme",
	Board:   "Board",
	Editor:  "Editor",
	Log:     "Log",
}

// String returns the string representation of a Section
func (s Section) String() string {
	return sections[s]
}

type Option int

const (
	NerdFonts Option = iota
	Backend
	Path
	QuotaBytes
	Default
	CardWidth
	TabWidth
	Height
	Level
)

// Map of Option enum values to their string names as used in the ini file
var options = map[Option]string{
	NerdFonts:  "NerdFonts",
	Backend:    "Backend",
	Path:       "Path",
	QuotaBytes: "QuotaBytes",
	Default:    "Default",
	CardWidth:  "CardWidth",
	TabWidth:   "TabWidth",
	Height:     "Height",
	Level:      "Level",
}

// String returns the string representation of an Option
func (o Option) String() string {
	return options[o]
}

// ParseKey resolves a `Section.Option` pair as written on the command line.
// Matching is case insensitive.
func ParseKey(key string) (Section, Option, error) {
	sectName, optName, ok := strings.Cut(key, ".")
	if !ok {
		return 0, 0, fmt.Errorf("config key `%s` must look like Section.Option", key)
	}

	var section Section
	found := false
	for s, name := range sections {
		if strings.EqualFold(name, sectName) {
			section, found = s, true
		}
	}
	if !found {
		return 0, 0, fmt.Errorf("unknown config section `%s`", sectName)
	}

	for o, name := range options {
		if strings.EqualFold(name, optName) {
			return section, o, nil
		}
	}

	return 0, 0, fmt.Errorf("unknown config option `%s`", optName)
}

// Value represents an entry in the config file
type Value struct {
	Value string
}

func (v Value) GetBool() bool {
	return v.Value == "true"
}

// GetInt returns the value as an integer, or def if it isn't one.
func (v Value) GetInt(def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil {
		return def
	}
	return i
}

// Config holds all config data
type Config struct {
	// path to the user config file
	filePath string

	// parsed default config file
	file *ini.File

	// parsed user config file
	userFile *ini.File

	// cached nerdFonts config value
	nerdFonts *bool
}

func (c *Config) File() string { return c.filePath }

// New loads the config file at filePath, creating an empty one if it
// doesn't exist. Anything the user file doesn't set comes from the
// embedded defaults.
func New(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); err != nil {
		if _, err := utils.CreateFile(filePath, false); err != nil {
			debug.LogErr("Failed to create config file:", err)
			return nil, err
		}
	}

	ini.PrettyFormat = false
	ini.PrettyEqual = true

	conf, err := ini.Load(defaultConf)
	if err != nil {
		debug.LogErr("Failed to read default config:", err)
		return nil, err
	}

	userConf, err := ini.Load(filePath)
	if err != nil {
		debug.LogErr("Failed to read user config file:", err)
		return nil, fmt.Errorf("reading %s: %w", filePath, err)
	}

	return &Config{
		filePath: filePath,
		file:     conf,
		userFile: userConf,
	}, nil
}

// Load opens the config file at its default location, see app.ConfigFile.
func Load() (*Config, error) {
	filePath, err := app.ConfigFile()
	if err != nil {
		return nil, err
	}

	return New(filePath)
}

// Reload refreshes the user configuration in memory
func (c *Config) Reload() error {
	conf, err := ini.Load(c.filePath)
	if err != nil {
		debug.LogErr("Failed to read config file:", err)
		return err
	}

	c.userFile = conf
	c.nerdFonts = nil
	return nil
}

// Value retrieves the value of a configuration option in a given section.
// User values win over the defaults.
func (c *Config) Value(section Section, option Option) (Value, error) {
	if sect, err := c.userFile.GetSection(section.String()); err == nil {
		if sect.HasKey(option.String()) {
			return Value{sect.Key(option.String()).String()}, nil
		}
	}

	sect, err := c.file.GetSection(section.String())
	if err != nil {
		return Value{}, fmt.Errorf("no section: %s", section.String())
	}

	if !sect.HasKey(option.String()) {
		return Value{}, fmt.Errorf(
			"couldn't find config option `%s` in section `%s`",
			option.String(),
			section.String(),
		)
	}

	return Value{sect.Key(option.String()).String()}, nil
}

// SetValue sets a configuration option in the user file and saves it
// immediately
func (c *Config) SetValue(section Section, option Option, value string) error {
	c.userFile.
		Section(section.String()).
		Key(option.String()).
		SetValue(value)

	if section == General && option == NerdFonts {
		c.nerdFonts = nil
	}

	return c.userFile.SaveTo(c.filePath)
}

// NerdFonts determines whether nerd fonts are enabled either
// via the config file or the cli argument.
// The cli argument always overrides value set in the config
func (c *Config) NerdFonts() bool {
	if c.nerdFonts != nil {
		return *c.nerdFonts
	}

	nf, err := c.Value(General, NerdFonts)

	// default is true
	nerdFonts := true

	// if setting is found in config file use it
	if err == nil && nf.Value != "" {
		nerdFonts = nf.GetBool()
	}

	if app.NoNerdFonts {
		nerdFonts = false
	}

	c.nerdFonts = &nerdFonts
	return nerdFonts
}

// StoreOptions returns the storage backend settings.
// Command line overrides in app.Backend and app.StorePath win.
// An empty path puts the store next to the config file.
func (c *Config) StoreOptions() storage.Options {
	opts := storage.Options{Backend: storage.BackendFile}

	if v, err := c.Value(Storage, Backend); err == nil && v.Value != "" {
		opts.Backend = strings.ToLower(v.Value)
	}
	if app.Backend != "" {
		opts.Backend = strings.ToLower(app.Backend)
	}

	if v, err := c.Value(Storage, QuotaBytes); err == nil {
		opts.MaxBytes = int64(max(v.GetInt(0), 0))
	}

	path := ""
	if v, err := c.Value(Storage, Path); err == nil {
		path = v.Value
	}
	if app.StorePath != "" {
		path = app.StorePath
	}

	if path == "" {
		name := "notes.json"
		if opts.Backend == storage.BackendSQLite {
			name = "notes.db"
		}
		path = filepath.Join(filepath.Dir(c.filePath), name)
	}

	opts.Path = expandHome(path)
	return opts
}

// ThemeDefault returns `auto`, `dark` or `light`.
func (c *Config) ThemeDefault() string {
	v, err := c.Value(Theme, Default)
	if err != nil {
		return "auto"
	}

	switch d := strings.ToLower(strings.TrimSpace(v.Value)); d {
	case "dark", "light":
		return d
	}

	return "auto"
}

// Int returns an integer option, def when it is missing or invalid.
func (c *Config) Int(section Section, option Option, def int) int {
	v, err := c.Value(section, option)
	if err != nil {
		return def
	}
	return v.GetInt(def)
}

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string {
	if app.Debug {
		return "debug"
	}

	v, err := c.Value(Log, Level)
	if err != nil {
		return "info"
	}
	return v.Value
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		debug.LogErr(err)
		return path
	}

	return filepath.Join(homeDir, path[2:])
}
