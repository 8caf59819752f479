// Package ui provides the terminal user interface for breakreminder.
// This file holds undo/redo for settings saves and history clears.
package ui

import (
	"sync"

	"breakreminder/internal/store"

	"github.com/mattn/go-runewidth"
)

// maxHistorySize caps each stack; the oldest action falls off first.
const maxHistorySize = 50

// UndoableAction is one reversible change to the stores.
type UndoableAction struct {
	Description string       // shown in the status line
	Undo        func() error // reverses the change
	Redo        func() error // reapplies it; nil means the action cannot be redone
}

// actionStack is a bounded LIFO of actions.
type actionStack []*UndoableAction

func (s *actionStack) push(a *UndoableAction) {
	if len(*s) >= maxHistorySize {
		*s = (*s)[1:]
	}
	*s = append(*s, a)
}

func (s *actionStack) pop() *UndoableAction {
	if len(*s) == 0 {
		return nil
	}
	a := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return a
}

// UndoManager keeps the undo and redo stacks for settings saves and
// history clears.
type UndoManager struct {
	mu   sync.Mutex
	undo actionStack
	redo actionStack
}

// NewUndoManager returns an empty manager.
func NewUndoManager() *UndoManager {
	return &UndoManager{
		undo: make(actionStack, 0, maxHistorySize),
		redo: make(actionStack, 0, maxHistorySize),
	}
}

// Push records a completed action. Any redo history is discarded.
func (m *UndoManager) Push(action *UndoableAction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.redo = m.redo[:0]
	m.undo.push(action)
}

// CanUndo reports whether Undo has anything to do.
func (m *UndoManager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) > 0
}

// CanRedo reports whether Redo has anything to do.
func (m *UndoManager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// Undo reverses the latest action and returns its description. With an
// empty stack it returns "" and nil. A failed undo stays on the stack.
func (m *UndoManager) Undo() (string, error) {
	return m.move(&m.undo, &m.redo, func(a *UndoableAction) func() error { return a.Undo })
}

// Redo reapplies the latest undone action, mirroring Undo.
func (m *UndoManager) Redo() (string, error) {
	return m.move(&m.redo, &m.undo, func(a *UndoableAction) func() error { return a.Redo })
}

// move pops from src, runs the step chosen by pick and pushes the action
// onto dst. Actions without a Redo never reach the redo stack.
func (m *UndoManager) move(src, dst *actionStack, pick func(*UndoableAction) func() error) (string, error) {
	m.mu.Lock()
	action := src.pop()
	m.mu.Unlock()
	if action == nil {
		return "", nil
	}

	if err := pick(action)(); err != nil {
		m.mu.Lock()
		src.push(action)
		m.mu.Unlock()
		return "", err
	}

	if dst == &m.redo && action.Redo == nil {
		return action.Description, nil
	}
	m.mu.Lock()
	dst.push(action)
	m.mu.Unlock()
	return action.Description, nil
}

// Clear drops both stacks.
func (m *UndoManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}

// =============================================================================
// Undoable Action Factories
// =============================================================================

// SettingsReplacer is the part of the configuration store undo needs.
type SettingsReplacer interface {
	Replace(s store.Settings) error
}

// HistoryRestorer is the part of the history store undo needs.
type HistoryRestorer interface {
	Restore(entries []store.HistoryEntry) error
	Clear() error
}

// NewSaveSettingsAction creates an undoable action for a settings save.
// Both snapshots are captured so the save can be undone and redone.
func NewSaveSettingsAction(cfg SettingsReplacer, before, after store.Settings) *UndoableAction {
	before, after = before.Clone(), after.Clone()
	return &UndoableAction{
		Description: "Saved settings",
		Undo: func() error {
			return cfg.Replace(before)
		},
		Redo: func() error {
			return cfg.Replace(after)
		},
	}
}

// NewSelectIntervalAction creates an undoable action for an interval change.
func NewSelectIntervalAction(cfg SettingsReplacer, before, after store.Settings) *UndoableAction {
	action := NewSaveSettingsAction(cfg, before, after)
	action.Description = "Selected interval: " + truncateText(after.CurrentInterval, 20)
	return action
}

// NewClearHistoryAction creates an undoable action for clearing the history.
// The entries are captured before clearing so they can be restored.
func NewClearHistoryAction(history HistoryRestorer, entries []store.HistoryEntry) *UndoableAction {
	entries = append([]store.HistoryEntry(nil), entries...)
	return &UndoableAction{
		Description: "Cleared history",
		Undo: func() error {
			return history.Restore(entries)
		},
		Redo: func() error {
			return history.Clear()
		},
	}
}

// truncateText shortens text to maxLen cells with an ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxLen, "..")
}
