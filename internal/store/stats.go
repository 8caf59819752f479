package store

import (
	"time"

	"github.com/charmbracelet/log"
)

// StatsStore holds lifetime counters and the in-memory state of the
// session being measured.
type StatsStore struct {
	path   string
	logger *log.Logger
	stats  Stats

	inSession    bool
	segmentStart time.Time
	sessionWork  float64
}

// OpenStats loads the statistics at path, starting from zero if the
// document is missing or corrupt.
func OpenStats(path string, logger *log.Logger) *StatsStore {
	logger = orDiscard(logger)
	return &StatsStore{
		path:   path,
		logger: logger,
		stats:  LoadStats(path, logger),
	}
}

// LoadStats reads the statistics document. It never fails.
func LoadStats(path string, logger *log.Logger) Stats {
	logger = orDiscard(logger)
	var st Stats
	if err := loadDocument(path, &st, logger); err != nil {
		return Stats{}
	}
	st.recompute()
	return st
}

// Snapshot returns a copy of the counters.
func (s *StatsStore) Snapshot() Stats {
	return s.stats
}

// InSession reports whether StartSession has been called without a
// matching EndSession.
func (s *StatsStore) InSession() bool {
	return s.inSession
}

// Save writes the whole document.
func (s *StatsStore) Save() error {
	return saveDocument(s.path, s.stats, s.logger)
}

// StartSession counts a new session and starts measuring work time.
func (s *StatsStore) StartSession(now time.Time) error {
	s.inSession = true
	s.segmentStart = now
	s.sessionWork = 0
	s.stats.TotalSessions++
	s.stats.recompute()
	return s.Save()
}

// RecordBreak closes the current work segment: its length is added to the
// total, the break is counted, and a new segment starts at now.
func (s *StatsStore) RecordBreak(now time.Time) error {
	if !s.inSession {
		return nil
	}
	s.accrue(now)
	s.stats.TotalBreaks++
	s.stats.LastSession = formatTimestamp(now)
	s.stats.recompute()
	return s.Save()
}

// EndSession accrues the final segment without counting a break.
func (s *StatsStore) EndSession(now time.Time) error {
	if !s.inSession {
		return nil
	}
	s.accrue(now)
	s.inSession = false
	s.sessionWork = 0
	s.stats.LastSession = formatTimestamp(now)
	s.stats.recompute()
	return s.Save()
}

// Reset zeroes all counters.
func (s *StatsStore) Reset() error {
	s.stats = Stats{}
	s.inSession = false
	s.sessionWork = 0
	return s.Save()
}

func (s *StatsStore) accrue(now time.Time) {
	segment := now.Sub(s.segmentStart).Seconds()
	if segment < 0 {
		segment = 0
	}
	s.segmentStart = now
	s.sessionWork += segment
	s.stats.TotalWorkTime += segment
	if s.sessionWork > s.stats.LongestSession {
		s.stats.LongestSession = s.sessionWork
	}
}

// recompute derives the average from the counters; it is never stored
// independently of them.
func (st *Stats) recompute() {
	if st.TotalSessions <= 0 {
		st.AverageSession = 0
		return
	}
	st.AverageSession = st.TotalWorkTime / float64(st.TotalSessions)
}
