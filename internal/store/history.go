package store

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// HistoryStore is the append-only list of answered prompts, oldest first.
type HistoryStore struct {
	path    string
	logger  *log.Logger
	entries []HistoryEntry
}

// OpenHistory loads the history at path, starting empty if the document is
// missing or corrupt.
func OpenHistory(path string, logger *log.Logger) *HistoryStore {
	logger = orDiscard(logger)
	return &HistoryStore{
		path:    path,
		logger:  logger,
		entries: LoadHistory(path, logger),
	}
}

// LoadHistory reads the history document. It never fails.
func LoadHistory(path string, logger *log.Logger) []HistoryEntry {
	logger = orDiscard(logger)
	var entries []HistoryEntry
	if err := loadDocument(path, &entries, logger); err != nil {
		return []HistoryEntry{}
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return capEntries(entries)
}

// Save writes the whole document.
func (h *HistoryStore) Save() error {
	return saveDocument(h.path, h.entries, h.logger)
}

// Add appends an entry, evicting the oldest beyond MaxHistoryEntries, and
// persists. The entry is returned even if the save fails.
func (h *HistoryStore) Add(message, activity string, action Action, now time.Time) (HistoryEntry, error) {
	entry := HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: formatTimestamp(now),
		Message:   message,
		Activity:  activity,
		Action:    action,
	}
	h.entries = capEntries(append(h.entries, entry))
	return entry, h.Save()
}

// Len returns the number of stored entries.
func (h *HistoryStore) Len() int {
	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *HistoryStore) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

// Recent returns up to n entries, newest first.
func (h *HistoryStore) Recent(n int) []HistoryEntry {
	if n <= 0 || n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]HistoryEntry, 0, n)
	for i := len(h.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// Clear removes every entry.
func (h *HistoryStore) Clear() error {
	h.entries = []HistoryEntry{}
	return h.Save()
}

// Restore replaces the history wholesale (used by undo).
func (h *HistoryStore) Restore(entries []HistoryEntry) error {
	h.entries = capEntries(append([]HistoryEntry{}, entries...))
	return h.Save()
}

func capEntries(entries []HistoryEntry) []HistoryEntry {
	if len(entries) <= MaxHistoryEntries {
		return entries
	}
	trimmed := make([]HistoryEntry, MaxHistoryEntries)
	copy(trimmed, entries[len(entries)-MaxHistoryEntries:])
	return trimmed
}
