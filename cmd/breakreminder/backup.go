// Package main is the entry point for the breakreminder application.
// This file contains the backup and restore subcommands.
package main

import (
	"errors"
	"fmt"
	"io"

	"breakreminder/internal/backup"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	backupList  bool
	backupPrune int

	restoreLatest bool
	restoreForce  bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create and manage backups",
	Long: `Creates a timestamped backup of all data files (settings, statistics,
history). Backups are stored in <data_dir>/backups/ and can be restored later.`,
	Example: `  # Create a new backup
  breakreminder backup

  # List all available backups
  breakreminder backup --list

  # Keep only the five most recent backups
  breakreminder backup --prune 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := backupManager()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		switch {
		case backupList:
			return listBackups(out, manager)
		case cmd.Flags().Changed("prune"):
			deleted, err := manager.Prune(backupPrune)
			if err != nil {
				return fmt.Errorf("pruning backups: %w", err)
			}
			fmt.Fprintf(out, "%s Removed %d old backup(s)\n", color.GreenString("✓"), deleted)
			return nil
		default:
			return createBackup(out, manager)
		}
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [BACKUP_NAME]",
	Short: "Restore data from a backup",
	Long: `Restores all data files from a specific backup. A safety backup of the
current data is created automatically before restoring.

Use 'breakreminder backup --list' to see available backups.`,
	Example: `  # Restore from a specific backup
  breakreminder restore 2026-03-01_143022_000

  # Restore from the most recent backup
  breakreminder restore --latest

  # Restore without confirmation prompt
  breakreminder restore --force 2026-03-01_143022_000`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := backupManager()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		var name string
		switch {
		case restoreLatest:
			backups, err := manager.List()
			if err != nil {
				return fmt.Errorf("listing backups: %w", err)
			}
			if len(backups) == 0 {
				return backup.ErrNoBackups
			}
			name = backups[0].Name
		case len(args) == 1:
			name = args[0]
		default:
			return errors.New("no backup specified; use 'breakreminder restore BACKUP_NAME' or 'breakreminder restore --latest'")
		}

		info, err := manager.GetBackup(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Restoring from backup: %s\n", info.Name)
		fmt.Fprintf(out, "  Created: %s\n", info.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "  %s\n\n", describeBackup(info))

		if !restoreForce {
			fmt.Fprintln(out, color.YellowString("⚠ This will overwrite your current data."))
			if !confirm(cmd, "Continue?") {
				fmt.Fprintln(out, "Restore cancelled.")
				return nil
			}
		}

		fmt.Fprintln(out, "✓ Creating safety backup first...")
		if err := manager.Restore(name); err != nil {
			return fmt.Errorf("restoring backup: %w", err)
		}
		fmt.Fprintf(out, "%s Restored successfully from %s\n", color.GreenString("✓"), name)
		return nil
	},
}

func init() {
	backupCmd.Flags().BoolVarP(&backupList, "list", "l", false, "list available backups")
	backupCmd.Flags().IntVar(&backupPrune, "prune", 10, "delete all but the N most recent backups")

	restoreCmd.Flags().BoolVar(&restoreLatest, "latest", false, "restore from the most recent backup")
	restoreCmd.Flags().BoolVarP(&restoreForce, "force", "f", false, "skip confirmation prompt")

	rootCmd.AddCommand(backupCmd, restoreCmd)
}

func backupManager() (*backup.Manager, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return backup.NewManager(cfg.GetDataDir(), version), nil
}

// createBackup creates a new backup and displays the result.
func createBackup(out io.Writer, manager *backup.Manager) error {
	name, err := manager.Create()
	if err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}

	info, err := manager.GetBackup(name)
	if err != nil {
		return fmt.Errorf("reading backup info: %w", err)
	}

	fmt.Fprintf(out, "%s Backup created: %s\n", color.GreenString("✓"), name)
	fmt.Fprintf(out, "  %s\n", describeBackup(info))
	fmt.Fprintf(out, "  Location: %s\n", info.Path)
	return nil
}

// listBackups lists all available backups.
func listBackups(out io.Writer, manager *backup.Manager) error {
	backups, err := manager.List()
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups available.")
		fmt.Fprintln(out, "Run 'breakreminder backup' to create one.")
		return nil
	}

	gray := color.New(color.FgHiBlack).SprintFunc()
	fmt.Fprintln(out, color.New(color.FgCyan, color.Bold).Sprint("Available backups:"))
	for _, b := range backups {
		fmt.Fprintf(out, "  %s  %s   %s\n", b.Name, gray("("+formatAge(b.CreatedAt)+")"), describeBackup(&b))
	}
	return nil
}

func describeBackup(info *backup.BackupInfo) string {
	return fmt.Sprintf("History: %d, Breaks: %d, Sessions: %d, Messages: %d",
		info.Stats["history_entries"], info.Stats["breaks"], info.Stats["sessions"], info.Stats["messages"])
}
