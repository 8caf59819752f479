package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrUnknownInterval is returned when selecting an interval name that is
	// not configured.
	ErrUnknownInterval = errors.New("unknown interval")

	// ErrInvalidSettings wraps validation failures from Update.
	ErrInvalidSettings = errors.New("invalid settings")
)

// ConfigStore holds the reminder configuration document.
type ConfigStore struct {
	path     string
	logger   *log.Logger
	settings Settings
}

// OpenConfig loads the configuration at path, falling back to defaults.
func OpenConfig(path string, logger *log.Logger) *ConfigStore {
	logger = orDiscard(logger)
	return &ConfigStore{
		path:     path,
		logger:   logger,
		settings: LoadSettings(path, logger),
	}
}

// LoadSettings reads the configuration document. Keys present in the file
// replace the defaults wholesale; absent keys keep their default values.
// It never fails.
func LoadSettings(path string, logger *log.Logger) Settings {
	logger = orDiscard(logger)

	loaded := DefaultSettings()
	// Decoding into a nil map makes "intervals" replace rather than merge.
	loaded.Intervals = nil
	if err := loadDocument(path, &loaded, logger); err != nil {
		return DefaultSettings()
	}

	if loaded.Intervals == nil {
		loaded.Intervals = DefaultSettings().Intervals
	}
	for name, secs := range loaded.Intervals {
		if secs <= 0 {
			logger.Warn("dropping non-positive interval", "name", name, "seconds", secs)
			delete(loaded.Intervals, name)
		}
	}
	if len(loaded.Intervals) == 0 {
		loaded.Intervals = DefaultSettings().Intervals
	}
	return loaded
}

// Path returns the document location.
func (c *ConfigStore) Path() string {
	return c.path
}

// Settings returns a copy of the current configuration.
func (c *ConfigStore) Settings() Settings {
	return c.settings.Clone()
}

// Save writes the whole document.
func (c *ConfigStore) Save() error {
	return saveDocument(c.path, c.settings, c.logger)
}

// Reload replaces the in-memory configuration with what is on disk.
func (c *ConfigStore) Reload() {
	c.settings = LoadSettings(c.path, c.logger)
}

// Reset restores the defaults and persists them.
func (c *ConfigStore) Reset() error {
	c.settings = DefaultSettings()
	return c.Save()
}

// Interval looks up a named interval.
func (c *ConfigStore) Interval(name string) (time.Duration, bool) {
	secs, ok := c.settings.Intervals[name]
	if !ok || secs <= 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// CurrentInterval returns the selected interval, or FallbackInterval when
// the selection does not name a configured interval.
func (c *ConfigStore) CurrentInterval() (string, time.Duration) {
	name := c.settings.CurrentInterval
	if d, ok := c.Interval(name); ok {
		return name, d
	}
	return name, FallbackInterval
}

// IntervalNames returns configured names ordered by duration, then name.
func (c *ConfigStore) IntervalNames() []string {
	return SortedIntervalNames(c.settings.Intervals)
}

// SortedIntervalNames orders interval names by duration, then name.
func SortedIntervalNames(intervals map[string]int) []string {
	names := make([]string, 0, len(intervals))
	for name := range intervals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := intervals[names[i]], intervals[names[j]]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}

// SetCurrentInterval selects a configured interval and persists the choice.
func (c *ConfigStore) SetCurrentInterval(name string) error {
	if _, ok := c.settings.Intervals[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownInterval, name)
	}
	if c.settings.CurrentInterval == name {
		return nil
	}
	c.settings.CurrentInterval = name
	return c.Save()
}

// Update applies fn to a copy of the configuration, validates the result
// and persists it. On validation failure nothing changes.
func (c *ConfigStore) Update(fn func(*Settings)) error {
	next := c.settings.Clone()
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	c.settings = next
	return c.Save()
}

// Replace swaps in a complete configuration (used by undo).
func (c *ConfigStore) Replace(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.settings = s.Clone()
	return c.Save()
}

// Validate checks the invariants the reminder cycle relies on.
func (s Settings) Validate() error {
	if len(s.Intervals) == 0 {
		return fmt.Errorf("%w: at least one interval is required", ErrInvalidSettings)
	}
	for name, secs := range s.Intervals {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: interval name is empty", ErrInvalidSettings)
		}
		if secs <= 0 {
			return fmt.Errorf("%w: interval %q must be positive", ErrInvalidSettings, name)
		}
	}
	return nil
}

// MessagesOrFallback never returns an empty list.
func (s Settings) MessagesOrFallback() []string {
	if len(s.Messages) == 0 {
		return []string{FallbackMessage}
	}
	return s.Messages
}
