package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStorage opens a Storage rooted in a temporary directory.
func createTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

// =============================================================================
// Settings
// =============================================================================

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	got := LoadSettings(filepath.Join(t.TempDir(), SettingsFile), nil)
	assert.Equal(t, DefaultSettings(), got)
}

func TestLoadSettingsCorruptFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	got := LoadSettings(path, nil)
	assert.Equal(t, DefaultSettings(), got)

	matches, err := filepath.Glob(path + ".corrupt.*")
	require.NoError(t, err)
	assert.Len(t, matches, 1, "corrupt document should be preserved")
}

func TestLoadSettingsPartialDocumentKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	doc := `{"intervals": {"Focus": 600}, "current_interval": "Focus", "auto_continue": true}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	got := LoadSettings(path, nil)
	assert.Equal(t, map[string]int{"Focus": 600}, got.Intervals, "intervals replace defaults wholesale")
	assert.Equal(t, "Focus", got.CurrentInterval)
	assert.True(t, got.AutoContinue)
	assert.Equal(t, DefaultSettings().Messages, got.Messages)
	assert.True(t, got.SoundEnabled)
}

func TestLoadSettingsDropsNonPositiveIntervals(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	doc := `{"intervals": {"Zero": 0, "Negative": -5, "Ok": 30}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	got := LoadSettings(path, nil)
	assert.Equal(t, map[string]int{"Ok": 30}, got.Intervals)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := createTestStorage(t)

	err := s.Config.Update(func(cfg *Settings) {
		cfg.Intervals["Stretch"] = 45
		cfg.CurrentInterval = "Stretch"
		cfg.SoundEnabled = false
		cfg.SoundFile = "/tmp/ding.wav"
		cfg.Messages = []string{"Move!"}
	})
	require.NoError(t, err)

	reloaded := LoadSettings(s.Config.Path(), nil)
	assert.Equal(t, s.Config.Settings(), reloaded)
	assert.Equal(t, 45, reloaded.Intervals["Stretch"])
}

func TestUpdateRejectsInvalidSettings(t *testing.T) {
	s := createTestStorage(t)
	before := s.Config.Settings()

	err := s.Config.Update(func(cfg *Settings) {
		cfg.Intervals["Broken"] = 0
	})
	require.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, before, s.Config.Settings())

	err = s.Config.Update(func(cfg *Settings) {
		cfg.Intervals = map[string]int{}
	})
	require.ErrorIs(t, err, ErrInvalidSettings)
}

func TestSettingsCloneIsDeep(t *testing.T) {
	s := createTestStorage(t)
	cp := s.Config.Settings()
	cp.Intervals["Short Break"] = 999
	cp.Messages[0] = "changed"

	_, d := s.Config.CurrentInterval()
	assert.Equal(t, 5*time.Second, d)
	assert.NotEqual(t, "changed", s.Config.Settings().Messages[0])
}

func TestSetCurrentInterval(t *testing.T) {
	s := createTestStorage(t)

	require.NoError(t, s.Config.SetCurrentInterval("Pomodoro"))
	name, d := s.Config.CurrentInterval()
	assert.Equal(t, "Pomodoro", name)
	assert.Equal(t, 25*time.Minute, d)

	err := s.Config.SetCurrentInterval("Nope")
	require.ErrorIs(t, err, ErrUnknownInterval)
	name, _ = s.Config.CurrentInterval()
	assert.Equal(t, "Pomodoro", name)

	assert.Equal(t, "Pomodoro", LoadSettings(s.Config.Path(), nil).CurrentInterval)
}

func TestCurrentIntervalFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"current_interval": "Gone"}`), 0600))

	cfg := OpenConfig(path, nil)
	name, d := cfg.CurrentInterval()
	assert.Equal(t, "Gone", name)
	assert.Equal(t, FallbackInterval, d)
}

func TestIntervalNamesSortedByDuration(t *testing.T) {
	s := createTestStorage(t)
	assert.Equal(t, []string{"Short Break", "Custom", "Pomodoro", "Long Break"}, s.Config.IntervalNames())
}

func TestMessagesOrFallback(t *testing.T) {
	assert.Equal(t, []string{FallbackMessage}, Settings{}.MessagesOrFallback())
	assert.Equal(t, []string{"a"}, Settings{Messages: []string{"a"}}.MessagesOrFallback())
}

func TestResetSettings(t *testing.T) {
	s := createTestStorage(t)
	require.NoError(t, s.Config.SetCurrentInterval("Long Break"))
	require.NoError(t, s.Config.Reset())
	assert.Equal(t, DefaultSettings(), LoadSettings(s.Config.Path(), nil))
}

func TestSaveKeepsBackup(t *testing.T) {
	s := createTestStorage(t)
	require.NoError(t, s.Config.Save())
	require.NoError(t, s.Config.SetCurrentInterval("Custom"))

	_, err := os.Stat(s.Config.Path() + ".bak")
	assert.NoError(t, err)
}

// =============================================================================
// Stats
// =============================================================================

func TestLoadStatsMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, StatsFile)
	assert.Equal(t, Stats{}, LoadStats(path, nil))

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0600))
	assert.Equal(t, Stats{}, LoadStats(path, nil))
}

func TestLoadStatsLegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), StatsFile)
	doc := `{"total_sessions": 2, "total_breaks": 3, "total_work_time": 120.5,
		"longest_session": 80, "average_session": 1, "last_session": null}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	st := LoadStats(path, nil)
	assert.Equal(t, 2, st.TotalSessions)
	assert.Equal(t, 3, st.TotalBreaks)
	assert.InDelta(t, 60.25, st.AverageSession, 1e-9, "average is derived on load")
	assert.True(t, st.LastSessionTime().IsZero())
}

func TestStatsSessionLifecycle(t *testing.T) {
	s := createTestStorage(t)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Stats.StartSession(start))
	assert.True(t, s.Stats.InSession())
	assert.Equal(t, 1, s.Stats.Snapshot().TotalSessions)

	require.NoError(t, s.Stats.RecordBreak(start.Add(10*time.Minute)))
	require.NoError(t, s.Stats.RecordBreak(start.Add(25*time.Minute)))
	require.NoError(t, s.Stats.EndSession(start.Add(30*time.Minute)))

	st := s.Stats.Snapshot()
	assert.False(t, s.Stats.InSession())
	assert.Equal(t, 2, st.TotalBreaks)
	assert.InDelta(t, 1800, st.TotalWorkTime, 1e-9)
	assert.InDelta(t, 1800, st.LongestSession, 1e-9)
	assert.InDelta(t, 1800, st.AverageSession, 1e-9)
	assert.Equal(t, start.Add(30*time.Minute), st.LastSessionTime().UTC())

	assert.Equal(t, st, LoadStats(filepath.Join(s.Dir(), StatsFile), nil))
}

func TestStatsAverageIsTotalOverSessions(t *testing.T) {
	s := createTestStorage(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	durations := []time.Duration{10 * time.Minute, 20 * time.Minute, 45 * time.Minute}
	for i, d := range durations {
		start := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, s.Stats.StartSession(start))
		require.NoError(t, s.Stats.RecordBreak(start.Add(d)))
		require.NoError(t, s.Stats.EndSession(start.Add(d)))
	}

	st := s.Stats.Snapshot()
	assert.Equal(t, 3, st.TotalSessions)
	assert.InDelta(t, st.TotalWorkTime/3, st.AverageSession, 1e-9)
	assert.InDelta(t, (45 * time.Minute).Seconds(), st.LongestSession, 1e-9)
}

func TestRecordBreakOutsideSessionIsNoop(t *testing.T) {
	s := createTestStorage(t)
	require.NoError(t, s.Stats.RecordBreak(time.Now()))
	require.NoError(t, s.Stats.EndSession(time.Now()))
	assert.Equal(t, Stats{}, s.Stats.Snapshot())
}

func TestStatsReset(t *testing.T) {
	s := createTestStorage(t)
	require.NoError(t, s.Stats.StartSession(time.Now()))
	require.NoError(t, s.Stats.Reset())
	assert.Equal(t, Stats{}, s.Stats.Snapshot())
	assert.False(t, s.Stats.InSession())
}

// =============================================================================
// History
// =============================================================================

func TestHistoryAdd(t *testing.T) {
	s := createTestStorage(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	entry, err := s.History.Add("Stretch!", "Neck rolls", ActionContinue, now)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, now, entry.Time().UTC())

	loaded := LoadHistory(filepath.Join(s.Dir(), HistoryFile), nil)
	require.Len(t, loaded, 1)
	assert.Equal(t, entry, loaded[0])
}

func TestHistoryCapsAtMaxEntries(t *testing.T) {
	s := createTestStorage(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i <= MaxHistoryEntries; i++ {
		_, err := s.History.Add(strings.Repeat("m", i%5+1), "", ActionContinue, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	entries := s.History.Entries()
	require.Len(t, entries, MaxHistoryEntries)
	assert.Equal(t, base.Add(time.Second), entries[0].Time().UTC(), "oldest entry evicted")
	assert.Equal(t, base.Add(MaxHistoryEntries*time.Second), entries[len(entries)-1].Time().UTC())

	assert.Len(t, LoadHistory(filepath.Join(s.Dir(), HistoryFile), nil), MaxHistoryEntries)
}

func TestHistoryRecentNewestFirst(t *testing.T) {
	s := createTestStorage(t)
	base := time.Now()
	for i, msg := range []string{"a", "b", "c"} {
		_, err := s.History.Add(msg, "", ActionStop, base.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
	}

	recent := s.History.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Message)
	assert.Equal(t, "b", recent[1].Message)
	assert.Len(t, s.History.Recent(0), 3)
}

func TestHistoryClearAndRestore(t *testing.T) {
	s := createTestStorage(t)
	_, err := s.History.Add("a", "", ActionContinue, time.Now())
	require.NoError(t, err)

	saved := s.History.Entries()
	require.NoError(t, s.History.Clear())
	assert.Equal(t, 0, s.History.Len())

	require.NoError(t, s.History.Restore(saved))
	assert.Equal(t, saved, s.History.Entries())
}

func TestLoadHistoryLegacyTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)
	doc := `[{"timestamp": "2024-05-01T10:30:00.123456", "message": "m", "activity": "", "action": "stop"}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	entries := LoadHistory(path, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, ActionStop, entries[0].Action)
	ts := entries[0].Time()
	assert.Equal(t, 2024, ts.Year())
	assert.Equal(t, 30, ts.Minute())
}

func TestLoadHistoryNullDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFile)
	require.NoError(t, os.WriteFile(path, []byte("null"), 0600))
	entries := LoadHistory(path, nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

// =============================================================================
// Storage
// =============================================================================

func TestOpenCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := Open(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenIsolatedStores(t *testing.T) {
	a := createTestStorage(t)
	b := createTestStorage(t)

	require.NoError(t, a.Config.SetCurrentInterval("Pomodoro"))
	name, _ := b.Config.CurrentInterval()
	assert.Equal(t, "Short Break", name)
}
