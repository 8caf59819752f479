package store

import (
	"time"
)

// File names inside the data directory. They match the files written by
// earlier releases so existing data keeps loading.
const (
	SettingsFile = "reminder_config.json"
	StatsFile    = "reminder_stats.json"
	HistoryFile  = "reminder_history.json"
)

// DataFiles lists every document the app owns, in a stable order.
var DataFiles = []string{SettingsFile, StatsFile, HistoryFile}

// MaxHistoryEntries caps the history document; older entries are dropped.
const MaxHistoryEntries = 100

// FallbackInterval is used when the selected interval name is unknown.
const FallbackInterval = 300 * time.Second

// FallbackMessage is shown when the message list is empty.
const FallbackMessage = "Time for a break!"

// Settings is the reminder configuration document.
type Settings struct {
	Intervals              map[string]int `json:"intervals"` // name -> seconds
	CurrentInterval        string         `json:"current_interval"`
	Messages               []string       `json:"messages"`
	BreakActivities        []string       `json:"break_activities"`
	SoundEnabled           bool           `json:"sound_enabled"`
	SoundFile              string         `json:"sound_file"`
	AutoContinue           bool           `json:"auto_continue"`
	ShowActivitySuggestion bool           `json:"show_activity_suggestion"`
}

// DefaultSettings returns a fresh copy of the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Intervals: map[string]int{
			"Short Break": 5,
			"Pomodoro":    25 * 60,
			"Long Break":  30 * 60,
			"Custom":      20 * 60,
		},
		CurrentInterval: "Short Break",
		Messages: []string{
			"Time for a break! 🎯",
			"Take a moment to rest your eyes 👀",
			"Stretch and hydrate! 💧",
			"Step away from the screen 🚶",
			"Deep breath, you've got this! 🧘",
		},
		BreakActivities: []string{
			"Take 5 deep breaths",
			"Do some neck stretches",
			"Walk around for 2 minutes",
			"Drink a glass of water",
			"Look at something 20 feet away",
			"Do 10 jumping jacks",
			"Practice good posture",
		},
		SoundEnabled:           true,
		SoundFile:              "",
		AutoContinue:           false,
		ShowActivitySuggestion: true,
	}
}

// Clone returns a deep copy so callers can edit without touching the store.
func (s Settings) Clone() Settings {
	out := s
	out.Intervals = make(map[string]int, len(s.Intervals))
	for k, v := range s.Intervals {
		out.Intervals[k] = v
	}
	out.Messages = append([]string(nil), s.Messages...)
	out.BreakActivities = append([]string(nil), s.BreakActivities...)
	return out
}

// Stats holds lifetime usage counters. Durations are seconds.
type Stats struct {
	TotalSessions  int     `json:"total_sessions"`
	TotalBreaks    int     `json:"total_breaks"`
	TotalWorkTime  float64 `json:"total_work_time"`
	LongestSession float64 `json:"longest_session"`
	AverageSession float64 `json:"average_session"`
	LastSession    string  `json:"last_session,omitempty"`
}

// LastSessionTime parses LastSession, returning the zero time if unset.
func (s Stats) LastSessionTime() time.Time {
	return parseTimestamp(s.LastSession)
}

// Action records how the user answered a break prompt.
type Action string

const (
	ActionContinue Action = "continue"
	ActionStop     Action = "stop"
)

// HistoryEntry is one answered break prompt. Entries are immutable.
type HistoryEntry struct {
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Activity  string `json:"activity"`
	Action    Action `json:"action"`
}

// Time parses the entry timestamp.
func (e HistoryEntry) Time() time.Time {
	return parseTimestamp(e.Timestamp)
}

// Older files stored local timestamps without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
