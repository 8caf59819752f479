// Package ui provides the terminal user interface for breakreminder.
// This file contains tea.Cmd factories. Blocking work (waiting on timers,
// tray menus, the file watcher, or external sound and notification tools)
// runs inside commands so the event loop stays responsive. Store mutations
// never run inside a command: the stores belong to the update loop.
package ui

import (
	"time"

	"breakreminder/internal/reminder"
	"breakreminder/internal/tray"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Clock Commands
// =============================================================================

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// armTimerCmd returns a command that reports expiry of the armed timer.
func armTimerCmd(arm reminder.Arm) tea.Cmd {
	return tea.Tick(arm.Delay, func(time.Time) tea.Msg {
		return reminderDueMsg{seq: arm.Seq}
	})
}

// =============================================================================
// External Event Commands
// =============================================================================

// waitForTrayCmd blocks until the tray reports a menu choice. The update
// loop issues it again after every action.
func waitForTrayCmd(actions <-chan tray.Action) tea.Cmd {
	if actions == nil {
		return nil
	}
	return func() tea.Msg {
		action, ok := <-actions
		if !ok {
			return nil
		}
		return trayActionMsg{action: action}
	}
}

// waitForChangeCmd blocks until the watched settings file changes. It
// returns nil once the watcher has shut down.
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return settingsChangedMsg{}
	}
}

// Alerter plays the audible part of a reminder.
type Alerter interface {
	Alert(enabled bool, file string)
}

// Announcer shows a desktop notification.
type Announcer interface {
	Send(title, message string) error
}

// alertCmd plays the reminder sound and, when announce is set, shows a
// desktop notification. Both run off the update loop since they shell out.
func alertCmd(player Alerter, notifier Announcer, soundOn bool, soundFile string, announce bool, prompt reminder.Prompt) tea.Cmd {
	return func() tea.Msg {
		if player != nil {
			player.Alert(soundOn, soundFile)
		}
		var err error
		if announce && notifier != nil {
			err = notifier.Send("Break time", prompt.Summary())
		}
		return alertDoneMsg{err: err}
	}
}

// =============================================================================
// Undo/Redo Commands
// =============================================================================

// undoCmd undoes the last action on the update loop and reports the result.
func undoCmd(manager *UndoManager) tea.Cmd {
	desc, err := manager.Undo()
	return func() tea.Msg {
		return undoResultMsg{desc: desc, err: err}
	}
}

// redoCmd redoes the last undone action on the update loop and reports the
// result.
func redoCmd(manager *UndoManager) tea.Cmd {
	desc, err := manager.Redo()
	return func() tea.Msg {
		return redoResultMsg{desc: desc, err: err}
	}
}
