package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slipnote/slip-cli/internal/core/domain"
)

var versionsFull bool

var versionsCmd = &cobra.Command{
	Use:   "versions <id>",
	Short: "Show a slip's edit history",
	Long: `Lists the pre-edit snapshots of a slip, newest first. Each edit
records the content as it was before the edit; the current content is
what "show" prints.`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().BoolVar(&versionsFull, "full", false, "print full content of each version")
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	id, err := resolveSlipID(cmd, args[0])
	if err != nil {
		return err
	}

	// Surface NotFound on the slip itself, not an empty history.
	if _, err := slipService.Get(cmd.Context(), id); err != nil {
		return fmt.Errorf("loading slip: %w", err)
	}

	versions, err := slipService.Versions(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("loading versions: %w", err)
	}

	if len(versions) == 0 {
		cmd.Println("no versions: the slip has never been edited")
		return nil
	}

	for i, v := range versions {
		cmd.Printf("v%d  %s  %s\n", len(versions)-i,
			v.CreatedAt.Format(domain.TimestampLayout), domain.DeriveTitle(v.Content))
		if versionsFull {
			cmd.Println()
			cmd.Println(v.Content)
			cmd.Println()
		}
	}
	return nil
}
