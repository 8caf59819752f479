// Package main is the entry point for the breakreminder application.
// This file contains the stats and history subcommands.
package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"breakreminder/internal/fsutil"
	"breakreminder/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	statsJSON bool

	historyLimit int
	historyClear bool
	historyJSON  bool
	historyForce bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime session statistics",
	Long: `Display the lifetime counters kept in reminder_stats.json: sessions started,
breaks taken, total work time, and the longest and average session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st := store.LoadStats(dataFile(cfg.GetDataDir(), store.StatsFile), cliLogger())

		if statsJSON {
			return writeJSON(cmd.OutOrStdout(), st)
		}
		printStats(cmd.OutOrStdout(), st)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List answered break prompts",
	Long: `List the most recent answered break prompts, newest first.
With --clear the whole history is removed (a backup is a good idea first).`,
	Example: `  breakreminder history
  breakreminder history --limit 50
  breakreminder history --json
  breakreminder history --clear --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := cliLogger()
		h := store.OpenHistory(dataFile(cfg.GetDataDir(), store.HistoryFile), logger)

		if historyClear {
			return clearHistory(cmd, h)
		}

		entries := h.Recent(historyLimit)
		if historyJSON {
			return writeJSON(cmd.OutOrStdout(), entries)
		}
		printHistory(cmd.OutOrStdout(), entries, h.Len())
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show (0 = all)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "remove all history entries")
	historyCmd.Flags().BoolVarP(&historyForce, "force", "f", false, "skip confirmation prompt")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(statsCmd, historyCmd)
}

func printStats(w io.Writer, st store.Stats) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(w, "%s\n\n", cyan("Break Reminder Statistics"))
	fmt.Fprintf(w, "  Total sessions:   %s\n", green(st.TotalSessions))
	fmt.Fprintf(w, "  Total breaks:     %s\n", green(st.TotalBreaks))
	fmt.Fprintf(w, "  Total work time:  %.1f hours\n", st.TotalWorkTime/3600)
	fmt.Fprintf(w, "  Longest session:  %.1f minutes\n", st.LongestSession/60)
	fmt.Fprintf(w, "  Average session:  %.1f minutes\n", st.AverageSession/60)

	last := gray("Never")
	if t := st.LastSessionTime(); !t.IsZero() {
		last = t.Local().Format("2006-01-02 15:04") + gray(" ("+formatAge(t)+")")
	}
	fmt.Fprintf(w, "  Last session:     %s\n", last)
}

func printHistory(w io.Writer, entries []store.HistoryEntry, total int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No breaks recorded yet.")
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	for _, e := range entries {
		when := "unknown time    "
		if t := e.Time(); !t.IsZero() {
			when = t.Local().Format("2006-01-02 15:04")
		}
		action := fmt.Sprintf("%-8s", e.Action)
		switch e.Action {
		case store.ActionContinue:
			action = green(action)
		case store.ActionStop:
			action = red(action)
		}
		line := fmt.Sprintf("%s  %s  %s", gray(when), action, e.Message)
		if e.Activity != "" {
			line += gray(" · " + e.Activity)
		}
		fmt.Fprintln(w, line)
	}
	if total > len(entries) {
		fmt.Fprintf(w, "\n%s\n", gray(fmt.Sprintf("Showing %d of %d entries. Use --limit 0 to see all.", len(entries), total)))
	}
}

func clearHistory(cmd *cobra.Command, h *store.HistoryStore) error {
	n := h.Len()
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "History is already empty.")
		return nil
	}
	if !historyForce && !confirm(cmd, fmt.Sprintf("Remove all %d history entries?", n)) {
		fmt.Fprintln(cmd.OutOrStdout(), "History left unchanged.")
		return nil
	}
	if err := h.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared %d history entries\n", color.GreenString("✓"), n)
	return nil
}

// writeJSON prints v the way the data files are written.
func writeJSON(w io.Writer, v any) error {
	data, err := fsutil.MarshalIndent(v)
	if err != nil {
		return fmt.Errorf("formatting JSON: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	var response string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func dataFile(dataDir, name string) string {
	return filepath.Join(dataDir, name)
}

// formatAge returns a human-readable age string.
func formatAge(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
}
