// This file contains tests for the main App model: layout, the session
// lifecycle, the break prompt and tray interaction.
package ui

import (
	"testing"
	"time"

	"breakreminder/internal/config"
	"breakreminder/internal/store"
	"breakreminder/internal/tray"

	tea "github.com/charmbracelet/bubbletea"
)

// TestApp_LayoutModeTransitions verifies layout mode changes based on width.
func TestApp_LayoutModeTransitions(t *testing.T) {
	h := newTestApp(t, &AppConfig{
		Keys:                  &config.KeysConfig{},
		NarrowLayoutThreshold: 60,
	})

	tests := []struct {
		name         string
		width        int
		expectedMode LayoutMode
	}{
		{"Very narrow (40)", 40, LayoutNarrow},
		{"Just below threshold (59)", 59, LayoutNarrow},
		{"At threshold (60)", 60, LayoutWide},
		{"Wide (120)", 120, LayoutWide},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h.app.Update(tea.WindowSizeMsg{Width: tc.width, Height: 30})
			if h.app.layoutMode != tc.expectedMode {
				t.Errorf("Width %d: expected layout mode %v, got %v",
					tc.width, tc.expectedMode, h.app.layoutMode)
			}
		})
	}
}

// TestApp_MainViewShowsIntervals verifies the idle main view.
func TestApp_MainViewShowsIntervals(t *testing.T) {
	h := newTestApp(t, nil)

	view := h.app.View()
	for _, want := range []string{"breakreminder", "Idle", "Short Break", "Pomodoro", "Long Break", "Custom", "25 min"} {
		if !contains(view, want) {
			t.Errorf("main view should contain %q", want)
		}
	}

	// Narrow layout still shows both panels.
	h.app.Update(tea.WindowSizeMsg{Width: 50, Height: 30})
	view = h.app.View()
	if !contains(view, "Session") || !contains(view, "Intervals") {
		t.Error("narrow layout should stack session and interval panels")
	}
}

// TestApp_SelectInterval verifies interval selection wraps and persists.
func TestApp_SelectInterval(t *testing.T) {
	h := newTestApp(t, nil)

	// Ordered by length: Short Break, Custom, Pomodoro, Long Break.
	h.press("j")
	if name, _ := h.storage.Config.CurrentInterval(); name != "Custom" {
		t.Errorf("after next: current = %q, want Custom", name)
	}

	h.press("k", "k")
	if name, _ := h.storage.Config.CurrentInterval(); name != "Long Break" {
		t.Errorf("after wrapping back: current = %q, want Long Break", name)
	}

	saved := store.LoadSettings(h.storage.Config.Path(), nil)
	if saved.CurrentInterval != "Long Break" {
		t.Errorf("persisted current = %q, want Long Break", saved.CurrentInterval)
	}

	cmd := h.press("ctrl+z")
	h.app.Update(cmd())
	if name, _ := h.storage.Config.CurrentInterval(); name != "Short Break" {
		t.Errorf("after undo: current = %q, want Short Break", name)
	}
}

// TestApp_StartHidesWindowAndShowsTray verifies the start transition.
func TestApp_StartHidesWindowAndShowsTray(t *testing.T) {
	h := newTestApp(t, nil)

	if cmd := h.press("s"); cmd == nil {
		t.Fatal("start should arm a timer")
	}

	if !h.app.session.Running() {
		t.Fatal("session should be running")
	}
	if !h.app.hidden {
		t.Error("window should be hidden after start")
	}
	if !h.app.presence.Active() || len(*h.icons) != 1 {
		t.Errorf("expected exactly one tray icon, got %d", len(*h.icons))
	}
	if got := h.storage.Stats.Snapshot().TotalSessions; got != 1 {
		t.Errorf("TotalSessions = %d, want 1", got)
	}

	view := h.app.View()
	if !contains(view, "next break in") || !contains(view, "00:05") {
		t.Errorf("hidden view should show the countdown, got %q", view)
	}

	h.clock.Advance(2 * time.Second)
	if !contains(h.app.View(), "00:03") {
		t.Error("countdown should follow the clock")
	}
}

// TestApp_StartWhileRunningIsRejected verifies one session at a time.
func TestApp_StartWhileRunningIsRejected(t *testing.T) {
	h := newTestApp(t, &AppConfig{Keys: &config.KeysConfig{}, HideOnStart: false})

	h.press("s")
	h.press("s")

	if !h.app.statusErr || !contains(h.app.status, "already running") {
		t.Errorf("status = %q, want already running error", h.app.status)
	}
	if got := h.storage.Stats.Snapshot().TotalSessions; got != 1 {
		t.Errorf("TotalSessions = %d, want 1", got)
	}
}

// TestApp_HiddenIgnoresOtherKeys verifies only show, stop and quit work
// while hidden.
func TestApp_HiddenIgnoresOtherKeys(t *testing.T) {
	h := newTestApp(t, nil)
	h.press("s")

	h.press("e", "t", "j")
	if h.app.view != ViewMain || !h.app.hidden {
		t.Error("keys other than show/stop/quit should be ignored while hidden")
	}

	h.press("w")
	if h.app.hidden || h.app.presence.Active() {
		t.Error("show should restore the window and release the tray")
	}
	if !h.app.session.Running() {
		t.Error("showing the window should not stop the session")
	}
}

// TestApp_ReminderSurfacesPrompt verifies a due reminder shows the modal.
func TestApp_ReminderSurfacesPrompt(t *testing.T) {
	h := newTestApp(t, nil)
	h.press("s")

	if _, cmd := h.app.Update(reminderDueMsg{seq: 1}); cmd == nil {
		t.Error("a due reminder should return the alert command")
	}
	if !h.app.session.Prompting() {
		t.Fatal("prompt should be outstanding")
	}
	if h.app.hidden {
		t.Error("window should be restored to show the prompt")
	}

	view := h.app.View()
	for _, want := range []string{"Break Time!", "Suggested activity:", "Continue working?", "continue", "stop session"} {
		if !contains(view, want) {
			t.Errorf("prompt view should contain %q", want)
		}
	}

	// Only one prompt at a time.
	if _, cmd := h.app.Update(reminderDueMsg{seq: 1}); cmd != nil {
		t.Error("a second expiry should be ignored while prompting")
	}
}

// TestApp_PromptBlocksOtherKeys verifies the modal swallows unrelated keys.
func TestApp_PromptBlocksOtherKeys(t *testing.T) {
	h := newTestApp(t, nil)
	h.press("s")
	h.app.Update(reminderDueMsg{seq: 1})

	h.press("q", "e", "?", "x")
	if h.app.quitting || h.app.view != ViewMain || h.app.showHelp {
		t.Error("keys other than continue/stop should be ignored while prompting")
	}
	if !h.app.session.Prompting() {
		t.Error("prompt should still be outstanding")
	}
}

// TestApp_ContinueRearmsAndRehides verifies the continue answer.
func TestApp_ContinueRearmsAndRehides(t *testing.T) {
	h := newTestApp(t, nil)
	h.press("s")
	h.app.Update(reminderDueMsg{seq: 1})

	if cmd := h.press("y"); cmd == nil {
		t.Fatal("continue should arm the next timer")
	}

	if h.app.session.Prompting() {
		t.Error("prompt should be answered")
	}
	if !h.app.hidden || !h.app.presence.Active() {
		t.Error("window should hide again after continuing")
	}
	if len(*h.icons) != 1 {
		t.Errorf("tray icon should be reused, got %d icons", len(*h.icons))
	}

	entries := h.storage.History.Entries()
	if len(entries) != 1 || entries[0].Action != store.ActionContinue {
		t.Fatalf("history = %+v, want one continue entry", entries)
	}
	if entries[0].Activity == "" {
		t.Error("suggested activity should be recorded")
	}
	if got := h.storage.Stats.Snapshot().TotalBreaks; got != 1 {
		t.Errorf("TotalBreaks = %d, want 1", got)
	}

	// The first timer is stale now; the re-armed one fires.
	h.app.Update(reminderDueMsg{seq: 1})
	if h.app.session.Prompting() {
		t.Error("stale timer should not raise a prompt")
	}
	h.app.Update(reminderDueMsg{seq: 2})
	if !h.app.session.Prompting() {
		t.Error("re-armed timer should raise a prompt")
	}
}

// TestApp_StopFromPrompt verifies the stop answer tears the session down.
func TestApp_StopFromPrompt(t *testing.T) {
	h := newTestApp(t, nil)
	h.press("s")
	h.app.Update(reminderDueMsg{seq: 1})

	h.press("n")

	if h.app.session.Running() {
		t.Error("session should be stopped")
	}
	if h.app.hidden || h.app.presence.Active() {
		t.Error("stop should release the tray and restore the window")
	}
	entries := h.storage.History.Entries()
	if len(entries) != 1 || entries[0].Action != store.ActionStop {
		t.Fatalf("history = %+v, want one stop entry", entries)
	}
	if h.storage.Stats.InSession() {
		t.Error("stats should record the end of the session")
	}

	// A timer from the stopped session must not fire.
	h.app.Update(reminderDueMsg{seq: 1})
	if h.app.session.Prompting() {
		t.Error("timer from a stopped session should be ignored")
	}
}

// TestApp_AutoContinue verifies reminders skip the modal when enabled.
func TestApp_AutoContinue(t *testing.T) {
	h := newTestApp(t, nil)
	if err := h.storage.Config.Update(func(s *store.Settings) { s.AutoContinue = true }); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	h.press("s")

	if _, cmd := h.app.Update(reminderDueMsg{seq: 1}); cmd == nil {
		t.Fatal("auto-continue should re-arm the timer")
	}
	if h.app.session.Prompting() {
		t.Error("no prompt should be outstanding with auto-continue")
	}
	if !h.app.hidden {
		t.Error("window should stay hidden with auto-continue")
	}
	if got := h.storage.History.Len(); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

// TestApp_TrayActions verifies menu choices from the tray.
func TestApp_TrayActions(t *testing.T) {
	t.Run("show keeps the session", func(t *testing.T) {
		h := newTestApp(t, nil)
		h.press("s")

		h.app.Update(trayActionMsg{action: tray.ActionShow})
		if h.app.hidden || h.app.presence.Active() {
			t.Error("show should restore the window and release the tray")
		}
		if !h.app.session.Running() {
			t.Error("session should keep running")
		}

		// Hiding again creates a new icon.
		h.press("h")
		if !h.app.hidden || len(*h.icons) != 2 {
			t.Errorf("hide should show a new icon, got %d icons", len(*h.icons))
		}
	})

	t.Run("settings opens the form", func(t *testing.T) {
		h := newTestApp(t, nil)
		h.press("s")

		h.app.Update(trayActionMsg{action: tray.ActionSettings})
		if h.app.hidden || h.app.view != ViewSettings {
			t.Error("settings should restore the window on the settings view")
		}
	})

	t.Run("stop session", func(t *testing.T) {
		h := newTestApp(t, nil)
		h.press("s")

		h.app.Update(trayActionMsg{action: tray.ActionStopSession})
		if h.app.session.Running() || h.app.hidden || h.app.presence.Active() {
			t.Error("stop should end the session and restore the window")
		}
	})

	t.Run("quit", func(t *testing.T) {
		h := newTestApp(t, nil)
		h.press("s")

		_, cmd := h.app.Update(trayActionMsg{action: tray.ActionQuit})
		if cmd == nil || !h.app.quitting {
			t.Fatal("quit should exit the program")
		}
		if h.app.presence.Active() {
			t.Error("tray should be released before quitting")
		}
		if h.storage.Stats.InSession() {
			t.Error("quitting should end the session")
		}
		if !contains(h.app.View(), "See you later!") {
			t.Error("goodbye message should be shown")
		}
	})
}

// TestApp_StopKeyWhenIdle verifies stop reports that nothing is running.
func TestApp_StopKeyWhenIdle(t *testing.T) {
	h := newTestApp(t, nil)

	h.press("x")
	if !h.app.statusErr || !contains(h.app.renderHelpBar(), "No session running") {
		t.Errorf("status = %q, want no session error", h.app.status)
	}

	h.press("h")
	if h.app.hidden {
		t.Error("hide should need a running session")
	}
}

// TestApp_StatsView verifies the statistics screen.
func TestApp_StatsView(t *testing.T) {
	h := newTestApp(t, nil)
	start := h.clock.Now()
	_ = h.storage.Stats.StartSession(start)
	_ = h.storage.Stats.RecordBreak(start.Add(30 * time.Minute))
	_ = h.storage.Stats.EndSession(start.Add(30 * time.Minute))

	h.press("t")
	if h.app.view != ViewStats {
		t.Fatal("t should open statistics")
	}
	view := h.app.View()
	for _, want := range []string{"Total sessions", "Total breaks", "0.5 hours", "30.0 minutes", "Last session"} {
		if !contains(view, want) {
			t.Errorf("stats view should contain %q", want)
		}
	}

	h.press("esc")
	if h.app.view != ViewMain {
		t.Error("esc should return to the main view")
	}
}

// TestApp_HistoryClearWithConfirmation verifies clear, cancel and undo.
func TestApp_HistoryClearWithConfirmation(t *testing.T) {
	h := newTestApp(t, nil)
	now := h.clock.Now()
	_, _ = h.storage.History.Add("Stretch and hydrate!", "Neck rolls", store.ActionContinue, now)
	_, _ = h.storage.History.Add("Deep breath", "", store.ActionStop, now.Add(time.Minute))

	h.press("l")
	view := h.app.View()
	if !contains(view, "Stretch and hydrate!") || !contains(view, "stop") {
		t.Errorf("history view should list entries, got:\n%s", view)
	}

	h.press("c")
	if !contains(h.app.View(), "Clear history?") {
		t.Fatal("clear should ask for confirmation")
	}
	h.press("n")
	if h.storage.History.Len() != 2 {
		t.Fatal("cancel should keep the history")
	}

	h.press("c", "y")
	if h.storage.History.Len() != 0 {
		t.Fatal("confirm should clear the history")
	}
	if !contains(h.app.View(), "No breaks recorded yet.") {
		t.Error("history view should refresh after clearing")
	}

	cmd := h.press("u")
	h.app.Update(cmd())
	if h.storage.History.Len() != 2 {
		t.Errorf("undo should restore history, got %d entries", h.storage.History.Len())
	}
	if !contains(h.app.status, "Undid: Cleared history") {
		t.Errorf("status = %q", h.app.status)
	}
}

// TestApp_HistoryClearWithoutConfirmation verifies the ux.confirm_clear preference.
func TestApp_HistoryClearWithoutConfirmation(t *testing.T) {
	h := newTestApp(t, &AppConfig{Keys: &config.KeysConfig{}, ConfirmClear: false})
	_, _ = h.storage.History.Add("Look away", "", store.ActionContinue, h.clock.Now())

	h.press("l", "c")
	if h.app.confirm != nil || h.storage.History.Len() != 0 {
		t.Error("history should be cleared without confirmation")
	}
}

// TestApp_SettingsChangedReloads verifies external edits are picked up.
func TestApp_SettingsChangedReloads(t *testing.T) {
	h := newTestApp(t, nil)

	other := store.OpenConfig(h.storage.Config.Path(), nil)
	if err := other.SetCurrentInterval("Pomodoro"); err != nil {
		t.Fatalf("SetCurrentInterval() error: %v", err)
	}

	h.app.Update(settingsChangedMsg{})
	if name, _ := h.storage.Config.CurrentInterval(); name != "Pomodoro" {
		t.Errorf("current interval = %q, want Pomodoro", name)
	}
}

// TestApp_StatusExpires verifies status messages clear after their TTL.
func TestApp_StatusExpires(t *testing.T) {
	h := newTestApp(t, nil)

	h.app.SetStatus("hello", false)
	h.app.Update(tickMsg(h.clock.Now()))
	if h.app.status != "hello" {
		t.Fatal("status should survive the first tick")
	}

	h.clock.Advance(6 * time.Second)
	h.app.Update(tickMsg(h.clock.Now()))
	if h.app.status != "" {
		t.Errorf("status = %q, want cleared", h.app.status)
	}
}
