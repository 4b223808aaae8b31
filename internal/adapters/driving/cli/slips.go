package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slipnote/slip-cli/internal/core/domain"
)

var (
	addCategory  int
	listCategory int
	listTrash    bool
)

var addCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a new slip",
	Long: `Creates a slip from the given content, or from stdin when no
argument is passed. The first line becomes the slip's title.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List slips",
	Long: `Lists slips, pinned first, newest first. Without a filter all
slips except trashed ones are shown.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a slip's full content",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var editCmd = &cobra.Command{
	Use:   "edit <id> [content]",
	Short: "Replace a slip's content",
	Long: `Replaces the slip's content with the given argument, or with
stdin when no argument is passed. The previous content is kept as a
version; editing with identical content is a no-op.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEdit,
}

var moveCmd = &cobra.Command{
	Use:   "move <id> <category>",
	Short: "Move a slip to another category",
	Args:  cobra.ExactArgs(2),
	RunE:  runMove,
}

var pinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Toggle a slip's pin",
	Args:  cobra.ExactArgs(1),
	RunE:  runPin,
}

func init() {
	addCmd.Flags().IntVarP(&addCategory, "category", "c", domain.CategoryInbox, "target category id")
	listCmd.Flags().IntVarP(&listCategory, "category", "c", domain.CategoryInbox, "only this category id")
	listCmd.Flags().BoolVar(&listTrash, "trash", false, "list trashed slips")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(pinCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	content, err := contentFromArgsOrStdin(cmd, args, 0)
	if err != nil {
		return err
	}

	slip, err := slipService.Insert(cmd.Context(), content, addCategory)
	if err != nil {
		return fmt.Errorf("adding slip: %w", err)
	}

	cmd.Printf("added %s  %s\n", shortID(slip.ID), slip.Title)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	var filter *int
	switch {
	case listTrash:
		trash := domain.CategoryTrash
		filter = &trash
	case cmd.Flags().Changed("category"):
		filter = &listCategory
	}

	slips, err := slipService.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("listing slips: %w", err)
	}

	if len(slips) == 0 {
		cmd.Println("no slips")
		return nil
	}

	for _, slip := range slips {
		marker := " "
		if slip.IsPinned {
			marker = "*"
		}
		cmd.Printf("%s %s  [%2d]  %s  %s\n",
			marker, shortID(slip.ID), slip.CategoryID, slip.Timestamp, slip.Title)
	}

	// Trash badge, matching the original listing footer.
	if filter == nil {
		if n, err := slipService.TrashCount(cmd.Context()); err == nil && n > 0 {
			cmd.Printf("\n%d slip(s) in trash\n", n)
		}
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := resolveSlipID(cmd, args[0])
	if err != nil {
		return err
	}

	slip, err := slipService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("showing slip: %w", err)
	}

	cmd.Printf("id:        %s\n", slip.ID)
	cmd.Printf("category:  %d\n", slip.CategoryID)
	cmd.Printf("created:   %s\n", slip.Timestamp)
	cmd.Printf("pinned:    %t\n\n", slip.IsPinned)
	cmd.Println(slip.Content)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := resolveSlipID(cmd, args[0])
	if err != nil {
		return err
	}

	content, err := contentFromArgsOrStdin(cmd, args, 1)
	if err != nil {
		return err
	}

	if err := slipService.Update(cmd.Context(), id, content); err != nil {
		return fmt.Errorf("editing slip: %w", err)
	}

	cmd.Printf("updated %s\n", shortID(id))
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
	id, err := resolveSlipID(cmd, args[0])
	if err != nil {
		return err
	}
	categoryID, err := parseCategoryID(args[1])
	if err != nil {
		return err
	}

	if err := slipService.Move(cmd.Context(), id, categoryID); err != nil {
		return fmt.Errorf("moving slip: %w", err)
	}

	cmd.Printf("moved %s to category %d\n", shortID(id), categoryID)
	return nil
}

func runPin(cmd *cobra.Command, args []string) error {
	id, err := resolveSlipID(cmd, args[0])
	if err != nil {
		return err
	}

	if err := slipService.TogglePin(cmd.Context(), id); err != nil {
		return fmt.Errorf("pinning slip: %w", err)
	}

	cmd.Printf("toggled pin on %s\n", shortID(id))
	return nil
}

// contentFromArgsOrStdin returns args[idx] when present, otherwise reads
// all of stdin.
func contentFromArgsOrStdin(cmd *cobra.Command, args []string, idx int) (string, error) {
	if len(args) > idx {
		return args[idx], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// resolveSlipID accepts a full slip ID or a unique prefix of one,
// searching both live and trashed slips.
func resolveSlipID(cmd *cobra.Command, arg string) (string, error) {
	if arg == "" {
		return "", errors.New("empty slip id")
	}

	ctx := cmd.Context()
	live, err := slipService.List(ctx, nil)
	if err != nil {
		return "", err
	}
	trash := domain.CategoryTrash
	trashed, err := slipService.List(ctx, &trash)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, slip := range append(live, trashed...) {
		if slip.ID == arg {
			return slip.ID, nil
		}
		if strings.HasPrefix(slip.ID, arg) {
			matches = append(matches, slip.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		// Let the store report NotFound for consistent errors.
		return arg, nil
	default:
		return "", fmt.Errorf("ambiguous slip id %q (%d matches)", arg, len(matches))
	}
}

// shortID abbreviates a slip ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
