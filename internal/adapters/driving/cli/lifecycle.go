package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteForce bool

var trashCmd = &cobra.Command{
	Use:   "trash <id>",
	Short: "Move a slip to the trash",
	Long: `Soft-deletes a slip by moving it to the Trash category. Trashed
slips keep their history and can be restored.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrash,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a trashed slip to the inbox",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Permanently delete a slip and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var emptyTrashCmd = &cobra.Command{
	Use:   "empty-trash",
	Short: "Permanently delete every trashed slip",
	Args:  cobra.NoArgs,
	RunE:  runEmptyTrash,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
	emptyTrashCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
	rootCmd.AddCommand(trashCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(emptyTrashCmd)
}

func runTrash(cmd *cobra.Command, args []string) error {
	id, err := resolveSlipID(cmd, args[0])
	if err != nil {
		return err
	}

	if err := slipService.Trash(cmd.Context(), id); err != nil {
		return fmt.Errorf("trashing slip: %w", err)
	}

	cmd.Printf("trashed %s\n", shortID(id))
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	id, err := resolveSlipID(cmd, args[0])
	if err != nil {
		return err
	}

	if err := slipService.Restore(cmd.Context(), id); err != nil {
		return fmt.Errorf("restoring slip: %w", err)
	}

	cmd.Printf("restored %s to inbox\n", shortID(id))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := resolveSlipID(cmd, args[0])
	if err != nil {
		return err
	}

	if !deleteForce && !confirm(cmd, fmt.Sprintf("permanently delete %s?", shortID(id))) {
		cmd.Println("aborted")
		return nil
	}

	if err := slipService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("deleting slip: %w", err)
	}

	cmd.Printf("deleted %s\n", shortID(id))
	return nil
}

func runEmptyTrash(cmd *cobra.Command, _ []string) error {
	n, err := slipService.TrashCount(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting trash: %w", err)
	}
	if n == 0 {
		cmd.Println("trash is empty")
		return nil
	}

	if !deleteForce && !confirm(cmd, fmt.Sprintf("permanently delete %d trashed slip(s)?", n)) {
		cmd.Println("aborted")
		return nil
	}

	deleted, err := slipService.EmptyTrash(cmd.Context())
	if err != nil {
		return fmt.Errorf("emptying trash: %w", err)
	}

	cmd.Printf("deleted %d slip(s)\n", deleted)
	return nil
}

// confirm asks a y/N question on the command's streams.
func confirm(cmd *cobra.Command, prompt string) bool {
	cmd.Printf("%s [y/N] ", prompt)
	var answer string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}
