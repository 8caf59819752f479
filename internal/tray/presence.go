// Package tray provides the notification-area presence shown while the
// reminder window is hidden.
//
// A Presence owns at most one Icon. Each Icon runs its own blocking event
// loop on a dedicated goroutine and reports menu clicks by sending Actions
// on a queue that the UI drains; icon goroutines never touch UI state.
package tray

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Action is a menu choice made in the tray.
type Action int

const (
	ActionShow Action = iota + 1
	ActionSettings
	ActionStopSession
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionShow:
		return "show"
	case ActionSettings:
		return "settings"
	case ActionStopSession:
		return "stop-session"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Icon is one tray icon instance.
type Icon interface {
	// Run blocks, forwarding menu choices to actions, until Stop is called.
	Run(actions chan<- Action)
	// Stop ends Run. It is safe to call more than once and before Run.
	Stop()
}

// Factory creates a fresh Icon.
type Factory func() Icon

const actionQueueSize = 8

// Presence guards the single optional icon handle.
//
// Show, Release and Active must be called from one goroutine (the UI loop).
type Presence struct {
	factory Factory
	logger  *log.Logger
	actions chan Action
	icon    Icon
}

// NewPresence returns an inactive presence that creates icons with factory.
func NewPresence(factory Factory, logger *log.Logger) *Presence {
	if logger == nil {
		logger = log.New(nopWriter{})
	}
	return &Presence{
		factory: factory,
		logger:  logger,
		actions: make(chan Action, actionQueueSize),
	}
}

// Show starts an icon unless one is already active.
func (p *Presence) Show() {
	if p.icon != nil {
		return
	}
	icon := p.factory()
	p.icon = icon
	go icon.Run(p.actions)
	p.logger.Debug("tray icon shown")
}

// Release stops the active icon before dropping the handle. Releasing an
// inactive presence does nothing.
func (p *Presence) Release() {
	if p.icon == nil {
		return
	}
	p.icon.Stop()
	p.icon = nil
	p.logger.Debug("tray icon released")
}

// Active reports whether an icon is currently shown.
func (p *Presence) Active() bool {
	return p.icon != nil
}

// Actions is the queue of menu choices from every icon this presence runs.
func (p *Presence) Actions() <-chan Action {
	return p.actions
}

// stopper is embedded by icons to implement an idempotent Stop.
type stopper struct {
	once sync.Once
	done chan struct{}
}

func newStopper() stopper {
	return stopper{done: make(chan struct{})}
}

func (s *stopper) Stop() {
	s.once.Do(func() { close(s.done) })
}

// send delivers a to actions unless the icon is stopped first.
func (s *stopper) send(actions chan<- Action, a Action) bool {
	select {
	case actions <- a:
		return true
	case <-s.done:
		return false
	}
}

type nopWriter struct{}

func (nopWriter) Write(b []byte) (int, error) { return len(b), nil }
