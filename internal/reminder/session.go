package reminder

import (
	"errors"
	"fmt"
	"time"

	"breakreminder/internal/store"

	"github.com/charmbracelet/log"
)

// SettingsSource supplies the reminder configuration.
type SettingsSource interface {
	Settings() store.Settings
	CurrentInterval() (string, time.Duration)
}

// StatsRecorder receives session lifecycle events.
type StatsRecorder interface {
	StartSession(now time.Time) error
	RecordBreak(now time.Time) error
	EndSession(now time.Time) error
}

// HistoryRecorder receives answered prompts.
type HistoryRecorder interface {
	Add(message, activity string, action store.Action, now time.Time) (store.HistoryEntry, error)
}

// Session drives a Cycle and records what happens in the stores.
//
// Persistence failures never interrupt the cycle. They are logged and kept
// until the caller collects them with SaveErrors.
type Session struct {
	cycle    Cycle
	settings SettingsSource
	stats    StatsRecorder
	history  HistoryRecorder
	picker   *Picker
	logger   *log.Logger

	name    string
	prompt  Prompt
	saveErr []error
}

// NewSession wires a session to its stores. A nil picker picks randomly.
func NewSession(settings SettingsSource, stats StatsRecorder, history HistoryRecorder, picker *Picker, logger *log.Logger) *Session {
	if picker == nil {
		picker = NewPicker(nil)
	}
	if logger == nil {
		logger = log.New(nopWriter{})
	}
	return &Session{
		settings: settings,
		stats:    stats,
		history:  history,
		picker:   picker,
		logger:   logger,
	}
}

// Start begins a session with the currently selected interval.
func (s *Session) Start(now time.Time) (Arm, error) {
	name, interval := s.settings.CurrentInterval()
	arm, err := s.cycle.Start(interval, now)
	if err != nil {
		return Arm{}, err
	}
	s.name = name
	s.record(s.stats.StartSession(now))
	s.logger.Info("session started", "interval", name, "every", interval)
	return arm, nil
}

// Fire handles expiry of the timer identified by seq. It returns the prompt
// to show, or false when the expiry is stale.
func (s *Session) Fire(seq uint64) (Prompt, bool) {
	if !s.cycle.Fire(seq) {
		s.logger.Debug("ignoring stale timer", "seq", seq)
		return Prompt{}, false
	}
	cfg := s.settings.Settings()
	s.prompt = Prompt{
		Message:      s.picker.Pick(cfg.MessagesOrFallback()),
		Activity:     s.picker.Pick(cfg.BreakActivities),
		ShowActivity: cfg.ShowActivitySuggestion,
	}
	s.logger.Info("break reminder", "message", s.prompt.Message)
	return s.prompt, true
}

// Continue records the break and re-arms the timer.
func (s *Session) Continue(now time.Time) (Arm, error) {
	arm, err := s.cycle.Continue(now)
	if err != nil {
		return Arm{}, err
	}
	p := s.prompt
	s.prompt = Prompt{}
	_, addErr := s.history.Add(p.Message, p.shownActivity(), store.ActionContinue, now)
	s.record(addErr)
	s.record(s.stats.RecordBreak(now))
	return arm, nil
}

// Stop ends the session. An outstanding prompt is recorded as answered with
// stop. Stopping an idle session does nothing.
func (s *Session) Stop(now time.Time) {
	if !s.cycle.Running() {
		return
	}
	if s.cycle.Prompting() {
		p := s.prompt
		_, err := s.history.Add(p.Message, p.shownActivity(), store.ActionStop, now)
		s.record(err)
	}
	s.cycle.Stop()
	s.prompt = Prompt{}
	s.record(s.stats.EndSession(now))
	s.logger.Info("session stopped", "interval", s.name)
	s.name = ""
}

// Running reports whether a session is active.
func (s *Session) Running() bool { return s.cycle.Running() }

// Prompting reports whether a prompt is waiting for an answer.
func (s *Session) Prompting() bool { return s.cycle.Prompting() }

// Prompt returns the outstanding prompt.
func (s *Session) Prompt() (Prompt, bool) { return s.prompt, s.cycle.Prompting() }

// IntervalName is the name of the interval the session was started with.
func (s *Session) IntervalName() string { return s.name }

// Interval is the captured session interval.
func (s *Session) Interval() time.Duration { return s.cycle.Interval() }

// Remaining is the time until the next reminder.
func (s *Session) Remaining(now time.Time) time.Duration { return s.cycle.Remaining(now) }

// SaveErrors returns and clears persistence failures since the last call.
func (s *Session) SaveErrors() error {
	if len(s.saveErr) == 0 {
		return nil
	}
	err := errors.Join(s.saveErr...)
	s.saveErr = nil
	return err
}

func (s *Session) record(err error) {
	if err == nil {
		return
	}
	s.logger.Warn("could not persist session data", "err", err)
	s.saveErr = append(s.saveErr, fmt.Errorf("session: %w", err))
}

func (p Prompt) shownActivity() string {
	if !p.ShowActivity {
		return ""
	}
	return p.Activity
}

type nopWriter struct{}

func (nopWriter) Write(b []byte) (int, error) { return len(b), nil }
