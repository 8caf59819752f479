// Package main is the entry point for the breakreminder application.
// This file contains the export subcommand.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"breakreminder/internal/fsutil"
	"breakreminder/internal/reports"
	"breakreminder/internal/store"

	"github.com/spf13/cobra"
)

var (
	exportWeekly bool
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [DATE]",
	Short: "Generate break reports",
	Long: `Generates reports summarizing answered break prompts and lifetime
statistics. Reports can be output as Markdown (human-readable) or JSON
(machine-readable).

DATE is YYYY-MM-DD and defaults to today. For weekly reports the week
containing DATE is used (Sunday to Saturday).`,
	Example: `  # Today's report in Markdown
  breakreminder export

  # Specific date
  breakreminder export 2026-03-04

  # Weekly JSON report to file
  breakreminder export --weekly --format json --output weekly.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVarP(&exportWeekly, "weekly", "w", false, "generate weekly report")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "markdown", "output format: markdown or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := exportFormat
	if format == "md" {
		format = "markdown"
	}
	if format != "markdown" && format != "json" {
		return fmt.Errorf("invalid format %q; use 'markdown' or 'json'", exportFormat)
	}

	date := time.Now()
	if len(args) > 0 {
		parsed, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q; use YYYY-MM-DD format", args[0])
		}
		date = parsed
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := cliLogger()
	dir := cfg.GetDataDir()
	history := store.OpenHistory(filepath.Join(dir, store.HistoryFile), logger)
	stats := store.OpenStats(filepath.Join(dir, store.StatsFile), logger)
	gen := reports.NewGenerator(history, stats)

	output, err := renderReport(gen, date, exportWeekly, format)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	}
	if dir := filepath.Dir(exportOutput); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := fsutil.WriteFileAtomic(exportOutput, []byte(output), 0600); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", exportOutput)
	return nil
}

func renderReport(gen *reports.Generator, date time.Time, weekly bool, format string) (string, error) {
	if weekly {
		report := gen.GenerateWeekly(date)
		if format == "json" {
			data, err := reports.FormatWeeklyJSON(report)
			if err != nil {
				return "", fmt.Errorf("formatting JSON: %w", err)
			}
			return string(data) + "\n", nil
		}
		return reports.FormatWeeklyMarkdown(report), nil
	}

	report := gen.GenerateDaily(date)
	if format == "json" {
		data, err := reports.FormatDailyJSON(report)
		if err != nil {
			return "", fmt.Errorf("formatting JSON: %w", err)
		}
		return string(data) + "\n", nil
	}
	return reports.FormatDailyMarkdown(report), nil
}
