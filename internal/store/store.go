// Package store owns the three JSON documents behind the break reminder:
// the reminder configuration, lifetime statistics and the prompt history.
//
// Each document is read fully into memory when the store opens and is
// rewritten wholesale on every mutation. Loading never fails: a missing or
// unreadable document falls back to its defaults. Saving is best effort;
// errors are logged and returned so the caller can surface a status line,
// but in-memory state is kept either way.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"breakreminder/internal/fsutil"

	"github.com/charmbracelet/log"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// Storage bundles the three stores for one data directory.
type Storage struct {
	dir     string
	Config  *ConfigStore
	Stats   *StatsStore
	History *HistoryStore
}

// Open creates dataDir if needed and loads all documents.
func Open(dataDir string, logger *log.Logger) (*Storage, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	logger = orDiscard(logger)

	return &Storage{
		dir:     dataDir,
		Config:  OpenConfig(filepath.Join(dataDir, SettingsFile), logger),
		Stats:   OpenStats(filepath.Join(dataDir, StatsFile), logger),
		History: OpenHistory(filepath.Join(dataDir, HistoryFile), logger),
	}, nil
}

// Dir returns the data directory.
func (s *Storage) Dir() string {
	return s.dir
}

// loadDocument decodes path into v. A missing file is reported as
// fs.ErrNotExist; a corrupt one is moved aside so the next save does not
// destroy it.
func loadDocument(path string, v any, logger *log.Logger) error {
	err := fsutil.ReadJSON(path, v)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return err
	}

	logger.Warn("unreadable document, using defaults", "path", path, "err", err)
	if _, statErr := os.Stat(path); statErr == nil {
		aside := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
		if renameErr := os.Rename(path, aside); renameErr == nil {
			logger.Info("preserved corrupt document", "path", aside)
		}
	}
	return err
}

// saveDocument keeps a .bak of the previous version and replaces path.
func saveDocument(path string, v any, logger *log.Logger) error {
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteJSON(path, v, dataFilePerm); err != nil {
		logger.Warn("save failed", "path", path, "err", err)
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	logger.Debug("saved", "path", path)
	return nil
}

type discard struct{}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(discard{})
	}
	return logger
}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
