package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slipnote/slip-cli/internal/core/domain"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
}

var backupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show backup cadence and last backup time",
	Args:  cobra.NoArgs,
	RunE:  runBackupStatus,
}

var backupIntervalCmd = &cobra.Command{
	Use:   "interval <off|daily|weekly|monthly>",
	Short: "Set the backup cadence",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupInterval,
}

var backupRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Take a backup now if one is due",
	Args:  cobra.NoArgs,
	RunE:  runBackupRun,
}

var backupWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the backup scheduler in the foreground",
	Long: `Blocks, taking a backup whenever one becomes due. Intended for
running under a process supervisor; interrupt to stop.`,
	Args: cobra.NoArgs,
	RunE: runBackupWatch,
}

func init() {
	backupCmd.AddCommand(backupStatusCmd)
	backupCmd.AddCommand(backupIntervalCmd)
	backupCmd.AddCommand(backupRunCmd)
	backupCmd.AddCommand(backupWatchCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupStatus(cmd *cobra.Command, _ []string) error {
	state, err := backupService.State(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading backup state: %w", err)
	}

	cmd.Printf("interval:  %s\n", state.Interval)
	if state.LastBackupAt.IsZero() {
		cmd.Println("last:      never")
	} else {
		cmd.Printf("last:      %s\n", state.LastBackupAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}

func runBackupInterval(cmd *cobra.Command, args []string) error {
	interval, err := domain.ParseBackupInterval(args[0])
	if err != nil {
		return err
	}

	if err := backupService.Configure(interval); err != nil {
		return fmt.Errorf("setting backup interval: %w", err)
	}

	cmd.Printf("backup interval set to %s\n", interval)
	return nil
}

func runBackupRun(cmd *cobra.Command, _ []string) error {
	result, err := backupService.RunIfDue(cmd.Context())
	if err != nil {
		return fmt.Errorf("running backup: %w", err)
	}

	if !result.Ran {
		cmd.Println("no backup due")
		return nil
	}
	cmd.Printf("backup written to %s", result.Path)
	if result.Pruned > 0 {
		cmd.Printf(" (%d old backup(s) pruned)", result.Pruned)
	}
	cmd.Println()
	return nil
}

func runBackupWatch(cmd *cobra.Command, _ []string) error {
	cmd.Println("watching for due backups, interrupt to stop")
	return backupService.Start(cmd.Context())
}
