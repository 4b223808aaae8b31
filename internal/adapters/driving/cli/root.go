// Package cli implements the cobra command tree driving the slip store.
// It is a thin adapter: commands validate arguments, call the core
// services and render results.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/slipnote/slip-cli/internal/adapters/driven/config/file"
	"github.com/slipnote/slip-cli/internal/adapters/driven/storage/sqlite"
	"github.com/slipnote/slip-cli/internal/core/ports/driving"
	"github.com/slipnote/slip-cli/internal/core/services"
	"github.com/slipnote/slip-cli/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

// Services wired at startup. Tests may inject fakes before Execute.
var (
	slipService     driving.SlipService
	categoryService driving.CategoryService
	backupService   driving.BackupScheduler

	store *sqlite.Store
)

var (
	flagDataDir   string
	flagConfigDir string
	flagVerbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "slip",
	Short: "A local slip (note) store with history, trash and backups",
	Long: `slip stores short text notes locally: categorised, pinned,
full-text searchable, with an edit history per note, a trash for soft
deletion and rotating backups of the store file.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if store != nil {
			if err := store.Close(); err != nil {
				logger.Warn("closing store: %v", err)
			}
			store = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "database directory (default ~/.slip/data)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.slip)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices builds the store and services. Schema or seeding failure
// is fatal; a due backup check runs opportunistically and is not.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if slipService != nil {
		return nil // Already wired (tests inject fakes)
	}

	configStore, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err = sqlite.NewStore(flagDataDir)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	categories := services.NewCategories(store.CategoryStore())
	if err := categories.EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	slipService = services.NewSlips(store.SlipStore())
	categoryService = categories
	backupService = services.NewBackup(store, store.BackupStateStore(), configStore)

	// The backup scheduler is independent of mutations: every CLI
	// invocation doubles as a timer tick.
	if result, err := backupService.RunIfDue(ctx); err != nil {
		logger.Warn("backup failed, will retry on a later run: %v", err)
	} else if result.Ran {
		logger.Info("backup written to %s", result.Path)
	}

	return nil
}

// parseCategoryID parses a category argument.
func parseCategoryID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid category id %q", arg)
	}
	return id, nil
}
