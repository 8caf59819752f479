// Package main is the entry point for the breakreminder application.
// It loads configuration, opens the data directory, and starts the TUI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"breakreminder/internal/config"
	"breakreminder/internal/notify"
	"breakreminder/internal/reminder"
	"breakreminder/internal/sound"
	"breakreminder/internal/store"
	"breakreminder/internal/tray"
	"breakreminder/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	// Shared by every command
	dataDirFlag string
	debugFlag   bool

	// TUI only
	intervalFlag string
	trayFlag     string

	rootCmd = &cobra.Command{
		Use:   "breakreminder",
		Short: "Periodic break reminders for your terminal",
		Long: `breakreminder reminds you to take regular breaks while you work.

Pick an interval, start a session and the window hides to the system tray.
Each time the interval elapses a prompt suggests a short activity and asks
whether to keep going. Answers, statistics and settings are stored as plain
JSON files in ~/.breakreminder/.

KEYBINDINGS:
    j/k, ↑/↓     Choose an interval
    s/Enter      Start reminders
    x            Stop the session
    h / w        Hide to tray / show window
    e            Edit settings
    t / l        Statistics / history
    y / n        Answer a break prompt
    Ctrl+Z       Undo last settings change or history clear
    ?            Show help overlay
    q            Quit

CONFIGURATION:
    Optional preferences file: ~/.config/breakreminder/config.yaml
    Run 'breakreminder config show' to see the effective values.`,
		Example: `  # Start the app
  breakreminder

  # Start with the Pomodoro interval and no tray icon
  breakreminder --interval Pomodoro --tray none

  # Lifetime statistics
  breakreminder stats

  # This week's breaks as JSON
  breakreminder export --weekly --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
)

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("breakreminder version %s\n  commit: %s\n  built:  %s\n", version, commit, date))

	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "",
		"data directory (default from config, usually ~/.breakreminder)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging")

	rootCmd.Flags().StringVarP(&intervalFlag, "interval", "i", "",
		"select a configured interval before starting (e.g. Pomodoro)")
	rootCmd.Flags().StringVar(&trayFlag, "tray", "",
		"tray backend: auto, systray, signal or none")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the preferences file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if debugFlag {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// cliLogger logs to stderr for the one-shot subcommands.
func cliLogger() *log.Logger {
	level := log.WarnLevel
	if debugFlag {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "breakreminder",
		Level:  level,
	})
}

// openLogFile returns a logger writing to the configured log file. The
// terminal belongs to the TUI, so nothing is logged to stderr while it runs.
func openLogFile(cfg *config.Config) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}

	path := cfg.LogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Prefix:          "breakreminder",
		ReportTimestamp: true,
		Level:           level,
	})
	return logger, f, nil
}

// openStorage opens the data directory named by cfg.
func openStorage(cfg *config.Config, logger *log.Logger) (*store.Storage, error) {
	storage, err := store.Open(cfg.GetDataDir(), logger)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return storage, nil
}

// runTUI wires the stores, tray, sound and notifications into the UI and
// blocks until the user quits.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if trayFlag != "" {
		cfg.Tray.Backend = trayFlag
	}

	logger, logFile, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	storage, err := openStorage(cfg, logger)
	if err != nil {
		return err
	}

	if intervalFlag != "" {
		if err := storage.Config.SetCurrentInterval(intervalFlag); err != nil {
			return fmt.Errorf("--interval: %w (configured: %v)", err, storage.Config.IntervalNames())
		}
	}

	notifier := notify.New(notify.Options{
		Enabled: cfg.Notifications.Enabled,
		Sound:   cfg.Notifications.Sound,
	})

	factory, backend, err := tray.NewFactory(cfg.Tray.Backend, notifier, logger)
	if err != nil {
		return err
	}
	logger.Info("starting", "version", version, "data_dir", storage.Dir(), "tray", backend)
	if backend == tray.BackendSignal {
		logger.Info("tray uses signals", "hint", tray.SignalHint(os.Getpid()))
	}
	presence := tray.NewPresence(factory, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes, err := store.WatchFile(ctx, storage.Config.Path(), logger)
	if err != nil {
		// Without the watcher, external edits are picked up on the next start.
		logger.Warn("settings watcher unavailable", "err", err)
		changes = nil
	}

	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmClear:          cfg.UX.ConfirmClear,
		HideOnStart:           cfg.UX.HideOnStart,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}

	deps := ui.Deps{
		Storage:  storage,
		Presence: presence,
		Player:   sound.New(os.Stderr, logger),
		Notifier: notifier,
		Changes:  changes,
		Picker:   reminder.NewPicker(nil),
		Logger:   logger,
	}

	if err := ui.Run(deps, ui.NewStylesFromTheme(&cfg.Theme), appCfg); err != nil {
		return fmt.Errorf("running app: %w", err)
	}
	logger.Info("exited")
	return nil
}
