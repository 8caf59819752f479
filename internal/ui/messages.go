// Package ui provides the terminal user interface for breakreminder.
// This file defines message types for asynchronous events using the Bubble
// Tea command pattern. Timers, tray menu clicks and file changes all arrive
// on the update loop as one of these messages.
package ui

import (
	"time"

	"breakreminder/internal/tray"
)

// =============================================================================
// Clock Messages
// =============================================================================

// tickMsg is sent every second to refresh countdowns and expire the status.
type tickMsg time.Time

// reminderDueMsg is sent when the timer armed with seq expires. Stale
// sequence numbers are ignored by the session.
type reminderDueMsg struct {
	seq uint64
}

// =============================================================================
// External Event Messages
// =============================================================================

// trayActionMsg carries a menu choice from the tray goroutine.
type trayActionMsg struct {
	action tray.Action
}

// settingsChangedMsg is sent when the settings file changes on disk.
type settingsChangedMsg struct{}

// alertDoneMsg is sent after the sound and notification for a prompt ran.
type alertDoneMsg struct {
	err error
}

// =============================================================================
// Undo/Redo Messages
// =============================================================================

// undoResultMsg is sent when an undo operation completes.
type undoResultMsg struct {
	desc string
	err  error
}

// redoResultMsg is sent when a redo operation completes.
type redoResultMsg struct {
	desc string
	err  error
}
