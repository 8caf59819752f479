package ui

import (
	"errors"
	"testing"

	"breakreminder/internal/store"
	"breakreminder/internal/tray"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"90", 90, false},
		{" 300 ", 300, false},
		{"25m", 1500, false},
		{"1h30m", 5400, false},
		{"1.5s", 1, false},
		{"", 0, true},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"500ms", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseInterval(tc.in)
			if tc.wantErr {
				if !errors.Is(err, errIntervalValue) {
					t.Errorf("parseInterval(%q) error = %v, want errIntervalValue", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseInterval(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("parseInterval(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	got := splitLines("  first \n\n\tsecond\n   \nthird\n")
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("splitLines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	if got := splitLines("\n \n"); got == nil || len(got) != 0 {
		t.Errorf("blank input should give an empty, non-nil list, got %#v", got)
	}
}

func TestSettingsForm_RoundTrip(t *testing.T) {
	setupTest(t)

	base := store.DefaultSettings()
	form := NewSettingsForm(base, createTestStyles())

	got, err := form.Settings(base)
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	for name, secs := range base.Intervals {
		if got.Intervals[name] != secs {
			t.Errorf("interval %q = %d, want %d", name, got.Intervals[name], secs)
		}
	}
	if len(got.Messages) != len(base.Messages) || len(got.BreakActivities) != len(base.BreakActivities) {
		t.Error("unchanged form should keep messages and activities")
	}
	if got.CurrentInterval != base.CurrentInterval {
		t.Errorf("CurrentInterval = %q, want %q", got.CurrentInterval, base.CurrentInterval)
	}
}

func TestSettingsForm_EditsLines(t *testing.T) {
	setupTest(t)

	base := store.DefaultSettings()
	form := NewSettingsForm(base, createTestStyles())
	form.messages.SetValue("Stand up\n\n  Roll your shoulders  \n")
	form.activities.SetValue("")

	got, err := form.Settings(base)
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if len(got.Messages) != 2 || got.Messages[1] != "Roll your shoulders" {
		t.Errorf("Messages = %q", got.Messages)
	}
	if len(got.BreakActivities) != 0 {
		t.Errorf("BreakActivities = %q, want empty", got.BreakActivities)
	}
	if len(base.Messages) != 5 {
		t.Error("Settings() must not modify base")
	}
}

func TestSettingsForm_TabNavigation(t *testing.T) {
	setupTest(t)

	form := NewSettingsForm(store.DefaultSettings(), createTestStyles())
	if form.Tab() != tabIntervals {
		t.Fatalf("initial tab = %v, want Intervals", form.Tab())
	}

	form.Update(keyMsg("tab"))
	if form.Tab() != tabMessages {
		t.Errorf("after tab: %v, want Messages", form.Tab())
	}

	form.Update(keyMsg("shift+tab"))
	form.Update(keyMsg("shift+tab"))
	if form.Tab() != tabSound {
		t.Errorf("shift+tab should wrap to Sound, got %v", form.Tab())
	}

	if !contains(form.View(), "[Sound]") {
		t.Error("active tab should be marked")
	}

	if res, _ := form.Update(keyMsg("ctrl+s")); res != formSave {
		t.Errorf("ctrl+s result = %v, want formSave", res)
	}
	if res, _ := form.Update(keyMsg("esc")); res != formCancel {
		t.Errorf("esc result = %v, want formCancel", res)
	}
}

func TestSettingsForm_SoundToggles(t *testing.T) {
	setupTest(t)

	base := store.DefaultSettings()
	form := NewSettingsForm(base, createTestStyles())
	form.Update(keyMsg("shift+tab")) // Sound

	form.Update(keyMsg(" ")) // sound enabled: true -> false
	form.Update(keyMsg("down"))
	form.Update(keyMsg("down"))
	form.Update(keyMsg(" ")) // auto-continue: false -> true

	got, err := form.Settings(base)
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if got.SoundEnabled {
		t.Error("SoundEnabled should be toggled off")
	}
	if !got.AutoContinue {
		t.Error("AutoContinue should be toggled on")
	}
	if !got.ShowActivitySuggestion {
		t.Error("ShowActivitySuggestion should be unchanged")
	}
}

func TestSettingsForm_SoundFileTyping(t *testing.T) {
	setupTest(t)

	base := store.DefaultSettings()
	form := NewSettingsForm(base, createTestStyles())
	form.Update(keyMsg("shift+tab"))
	form.Update(keyMsg("down")) // sound file row

	for _, r := range "/tmp/ding.wav" {
		form.Update(keyMsg(string(r)))
	}
	// Space types into the file field instead of toggling.
	form.Update(keyMsg(" "))

	got, err := form.Settings(base)
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if got.SoundFile != "/tmp/ding.wav" {
		t.Errorf("SoundFile = %q, want /tmp/ding.wav", got.SoundFile)
	}
	if !got.SoundEnabled {
		t.Error("space in the file field must not toggle sound")
	}
}

func TestApp_SettingsSave(t *testing.T) {
	h := newTestApp(t, nil)

	h.press("e")
	if h.app.view != ViewSettings {
		t.Fatal("e should open settings")
	}

	// The first field is the shortest interval, Short Break.
	h.press("ctrl+u")
	h.typeText("25m")
	h.press("ctrl+s")

	if h.app.view != ViewMain {
		t.Fatalf("save should close the form, err = %q", h.app.settingsForm.Err())
	}
	if d, _ := h.storage.Config.Interval("Short Break"); d.Seconds() != 1500 {
		t.Errorf("Short Break = %v, want 25m", d)
	}
	if saved := store.LoadSettings(h.storage.Config.Path(), nil); saved.Intervals["Short Break"] != 1500 {
		t.Errorf("persisted Short Break = %d, want 1500", saved.Intervals["Short Break"])
	}
	if h.app.status != "Settings saved" {
		t.Errorf("status = %q", h.app.status)
	}

	cmd := h.press("ctrl+z")
	h.app.Update(cmd())
	if d, _ := h.storage.Config.Interval("Short Break"); d.Seconds() != 5 {
		t.Errorf("after undo Short Break = %v, want 5s", d)
	}

	cmd = h.press("ctrl+y")
	h.app.Update(cmd())
	if d, _ := h.storage.Config.Interval("Short Break"); d.Seconds() != 1500 {
		t.Errorf("after redo Short Break = %v, want 25m", d)
	}
}

func TestApp_SettingsInvalidIntervalKeepsForm(t *testing.T) {
	h := newTestApp(t, nil)

	h.press("e")
	h.typeText("abc")
	h.press("ctrl+s")

	if h.app.view != ViewSettings {
		t.Fatal("invalid input should keep the form open")
	}
	if !contains(h.app.View(), "Short Break") || !contains(h.app.settingsForm.Err(), "Short Break") {
		t.Errorf("inline error should name the field, got %q", h.app.settingsForm.Err())
	}
	if d, _ := h.storage.Config.Interval("Short Break"); d.Seconds() != 5 {
		t.Errorf("configuration should be unchanged, Short Break = %v", d)
	}

	h.press("esc")
	if h.app.view != ViewMain || h.app.status != "Settings unchanged" {
		t.Errorf("esc should discard the edits, status = %q", h.app.status)
	}
}

func TestApp_SettingsDoNotAffectRunningSession(t *testing.T) {
	h := newTestApp(t, nil)
	h.press("s")
	h.app.Update(trayActionMsg{action: tray.ActionSettings})

	h.press("ctrl+u")
	h.typeText("60")
	h.press("ctrl+s")

	if got := h.app.session.Interval().Seconds(); got != 5 {
		t.Errorf("running session interval = %vs, want 5s", got)
	}
	if d, _ := h.storage.Config.Interval("Short Break"); d.Seconds() != 60 {
		t.Errorf("saved Short Break = %v, want 60s", d)
	}
}
