// Package ui provides the terminal user interface for breakreminder.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and customization from the
// preferences file.
package ui

import (
	"strings"

	"breakreminder/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// helpLabel shows the first configured key in help text.
func helpLabel(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func binding(custom, desc string, defaults ...string) key.Binding {
	keys := parseKeys(custom, defaults...)
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpLabel(keys), desc),
	)
}

// =============================================================================
// Global Keys (available outside the prompt and input forms)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit key.Binding
	Help key.Binding
	Undo key.Binding
	Redo key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: binding(cfg.Quit, "quit", "q", "ctrl+c"),
		Help: binding(cfg.Help, "help", "?"),
		Undo: binding(cfg.Undo, "undo", "ctrl+z", "u"),
		Redo: binding(cfg.Redo, "redo", "ctrl+y"),
	}
}

// =============================================================================
// Session Keys (main view)
// =============================================================================

// SessionKeyMap defines keys for the main view.
type SessionKeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Start    key.Binding
	Stop     key.Binding
	Hide     key.Binding
	Show     key.Binding
	Settings key.Binding
	Stats    key.Binding
	History  key.Binding
}

// DefaultSessionKeyMap returns the default main view key bindings.
func DefaultSessionKeyMap() SessionKeyMap {
	return NewSessionKeyMap(&config.KeysConfig{})
}

// NewSessionKeyMap creates main view key bindings from config.
func NewSessionKeyMap(cfg *config.KeysConfig) SessionKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return SessionKeyMap{
		Prev:     binding(cfg.Prev, "prev interval", "k", "up", "left"),
		Next:     binding(cfg.Next, "next interval", "j", "down", "right"),
		Start:    binding(cfg.Start, "start", "s", "enter"),
		Stop:     binding(cfg.Stop, "stop", "x"),
		Hide:     binding(cfg.Hide, "hide", "h"),
		Show:     binding(cfg.Show, "show", "w"),
		Settings: binding(cfg.Settings, "settings", "e"),
		Stats:    binding(cfg.Stats, "statistics", "t"),
		History:  binding(cfg.History, "history", "l"),
	}
}

// ShortHelp implements help.KeyMap.
func (k SessionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Hide, k.Settings}
}

// FullHelp implements help.KeyMap.
func (k SessionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.Start, k.Stop, k.Hide, k.Show},
		{k.Settings, k.Stats, k.History},
	}
}

// =============================================================================
// Prompt Keys
// =============================================================================

// PromptKeyMap defines the only keys accepted while a break prompt is shown.
type PromptKeyMap struct {
	Continue  key.Binding
	EndBreaks key.Binding
}

// DefaultPromptKeyMap returns the default prompt key bindings.
func DefaultPromptKeyMap() PromptKeyMap {
	return NewPromptKeyMap(&config.KeysConfig{})
}

// NewPromptKeyMap creates prompt key bindings from config.
func NewPromptKeyMap(cfg *config.KeysConfig) PromptKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return PromptKeyMap{
		Continue:  binding(cfg.Continue, "continue", "y", "enter"),
		EndBreaks: binding(cfg.EndBreaks, "stop", "n", "esc"),
	}
}

// =============================================================================
// List Keys (history view)
// =============================================================================

// ListKeyMap defines keys for the history view.
type ListKeyMap struct {
	Refresh key.Binding
	Clear   key.Binding
	Back    key.Binding
}

// DefaultListKeyMap returns the history view key bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	}
}

// =============================================================================
// Settings Form Keys
// =============================================================================

// FormKeyMap defines keys for the settings form.
type FormKeyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

// DefaultFormKeyMap returns the settings form key bindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		NextField: key.NewBinding(key.WithKeys("down", "enter"), key.WithHelp("↓", "next field")),
		PrevField: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev field")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
