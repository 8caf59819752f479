// Package config handles the application preferences for breakreminder.
// Preferences are loaded from XDG-compliant paths (typically
// ~/.config/breakreminder/config.yaml). The reminder settings themselves
// (intervals, messages, sound) live in the data directory and are owned by
// the store package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"breakreminder/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config represents the application preferences.
type Config struct {
	// DataDir overrides the default data directory (~/.breakreminder)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Tray selects how the app stays reachable while hidden
	Tray TrayConfig `yaml:"tray,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// Log configures the log file
	Log LogConfig `yaml:"log,omitempty"`
}

// ThemeConfig defines color settings (hex, e.g. "#FF5733").
type ThemeConfig struct {
	Primary    string `yaml:"primary,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
	Muted      string `yaml:"muted,omitempty"`
	Background string `yaml:"background,omitempty"`
	Text       string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "s,enter", "j,down"
type KeysConfig struct {
	Quit string `yaml:"quit,omitempty"` // default: "q,ctrl+c"
	Help string `yaml:"help,omitempty"` // default: "?"
	Undo string `yaml:"undo,omitempty"` // default: "ctrl+z,u"
	Redo string `yaml:"redo,omitempty"` // default: "ctrl+y"

	// Interval selector
	Prev string `yaml:"prev,omitempty"` // default: "k,up,left"
	Next string `yaml:"next,omitempty"` // default: "j,down,right"

	// Session
	Start string `yaml:"start,omitempty"` // default: "s,enter"
	Stop  string `yaml:"stop,omitempty"`  // default: "x"
	Hide  string `yaml:"hide,omitempty"`  // default: "h"
	Show  string `yaml:"show,omitempty"`  // default: "w"

	// Views
	Settings string `yaml:"settings,omitempty"` // default: "e"
	Stats    string `yaml:"stats,omitempty"`    // default: "t"
	History  string `yaml:"history,omitempty"`  // default: "l"

	// Prompt answers
	Continue  string `yaml:"continue,omitempty"`   // default: "y,enter"
	EndBreaks string `yaml:"end_breaks,omitempty"` // default: "n,esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmClear asks before clearing the history
	ConfirmClear bool `yaml:"confirm_clear,omitempty"` // default: true

	// HideOnStart leaves the full-screen view when a session starts
	HideOnStart bool `yaml:"hide_on_start,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 60
}

// TrayConfig selects the tray backend: auto, systray, signal or none.
type TrayConfig struct {
	Backend string `yaml:"backend,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled shows a desktop notification when a break is due
	Enabled bool `yaml:"enabled,omitempty"`

	// Sound asks the notification daemon for its sound as well
	Sound bool `yaml:"sound,omitempty"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level,omitempty"`

	// File overrides <data_dir>/breakreminder.log
	File string `yaml:"file,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary: "#2D6CDF", // Blue
			Accent:  "#10B981", // Emerald
			Muted:   "#6B7280", // Gray
		},
		UX: UXConfig{
			ConfirmClear:          true,
			HideOnStart:           true,
			NarrowLayoutThreshold: 60,
		},
		Tray: TrayConfig{
			Backend: "auto",
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".breakreminder"
	}
	return filepath.Join(home, ".breakreminder")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "breakreminder")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "breakreminder")
}

// Path returns the location of the preferences file, or "" if no home
// directory can be determined.
func Path() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads preferences from disk, merging with defaults.
// If no config file exists, returns the defaults.
func Load() (*Config, error) {
	cfg := Default()

	path := Path()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)
	return cfg, nil
}

// mergeNonEmpty applies non-empty strings and positive ints from other.
// Booleans need presence-aware merging and are left alone here.
func (c *Config) mergeNonEmpty(other *Config) {
	setString(&c.DataDir, other.DataDir)

	setString(&c.Theme.Primary, other.Theme.Primary)
	setString(&c.Theme.Accent, other.Theme.Accent)
	setString(&c.Theme.Muted, other.Theme.Muted)
	setString(&c.Theme.Background, other.Theme.Background)
	setString(&c.Theme.Text, other.Theme.Text)

	k, o := &c.Keys, other.Keys
	for dst, src := range map[*string]string{
		&k.Quit: o.Quit, &k.Help: o.Help, &k.Undo: o.Undo, &k.Redo: o.Redo,
		&k.Prev: o.Prev, &k.Next: o.Next,
		&k.Start: o.Start, &k.Stop: o.Stop, &k.Hide: o.Hide, &k.Show: o.Show,
		&k.Settings: o.Settings, &k.Stats: o.Stats, &k.History: o.History,
		&k.Continue: o.Continue, &k.EndBreaks: o.EndBreaks,
	} {
		setString(dst, src)
	}

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}

	setString(&c.Tray.Backend, other.Tray.Backend)
	setString(&c.Log.Level, other.Log.Level)
	setString(&c.Log.File, other.Log.File)
}

func setString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Without a node tree presence is unknown; keep boolean defaults.
	if doc == nil || len(doc.Content) == 0 {
		return
	}

	if yamlHasPath(doc, "ux", "confirm_clear") {
		c.UX.ConfirmClear = other.UX.ConfirmClear
	}
	if yamlHasPath(doc, "ux", "hide_on_start") {
		c.UX.HideOnStart = other.UX.HideOnStart
	}
	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			if k := n.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
				next = n.Content[i+1]
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the preferences to disk.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return expandHome(c.DataDir)
}

// LogFile returns the resolved log file path.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return expandHome(c.Log.File)
	}
	return filepath.Join(c.GetDataDir(), "breakreminder.log")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	trimmed := strings.TrimPrefix(p, "~/")
	trimmed = strings.TrimPrefix(trimmed, `~\`)
	return filepath.Join(home, trimmed)
}
