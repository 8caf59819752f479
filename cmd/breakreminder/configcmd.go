// Package main is the entry point for the breakreminder application.
// This file contains the config subcommand.
package main

import (
	"fmt"
	"path/filepath"

	"breakreminder/internal/config"
	"breakreminder/internal/store"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or reset configuration",
	Long: `breakreminder keeps two kinds of configuration:

  preferences   ~/.config/breakreminder/config.yaml (theme, keys, tray, logging)
  reminders     <data_dir>/reminder_config.json (intervals, messages, sound)

Reminder settings are normally edited from the settings view (press e).`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective preferences and reminder settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		heading := color.New(color.FgCyan, color.Bold).SprintFunc()

		prefs, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding preferences: %w", err)
		}
		fmt.Fprintf(out, "%s\n%s\n", heading("# Preferences"), prefs)

		settings := store.LoadSettings(filepath.Join(cfg.GetDataDir(), store.SettingsFile), cliLogger())
		fmt.Fprintln(out, heading("# Reminder settings"))
		return writeJSON(out, settings)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration and data file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		dir := cfg.GetDataDir()

		prefs := config.Path()
		if prefs == "" {
			prefs = "(no home directory)"
		}
		fmt.Fprintf(out, "Preferences:  %s\n", prefs)
		fmt.Fprintf(out, "Data dir:     %s\n", dir)
		for _, name := range store.DataFiles {
			fmt.Fprintf(out, "              %s\n", filepath.Join(dir, name))
		}
		fmt.Fprintf(out, "Log file:     %s\n", cfg.LogFile())
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default reminder settings",
	Long: `Replace reminder_config.json with the built-in intervals, messages and
activities. Statistics and history are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !configForce && !confirm(cmd, "Reset reminder settings to defaults?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Settings left unchanged.")
			return nil
		}
		cs := store.OpenConfig(filepath.Join(cfg.GetDataDir(), store.SettingsFile), cliLogger())
		if err := cs.Reset(); err != nil {
			return fmt.Errorf("resetting settings: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Reminder settings reset to defaults\n", color.GreenString("✓"))
		return nil
	},
}

func init() {
	configResetCmd.Flags().BoolVarP(&configForce, "force", "f", false, "skip confirmation prompt")

	configCmd.AddCommand(configShowCmd, configPathCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}
