package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	categoryName  string
	categoryColor string
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id>",
	Short: "Rename or recolor a category",
	Long: `Updates a category's name and/or color. Category ids are stable,
so slips keep their assignment across renames. Setting an empty name
hides the category from pickers without orphaning its slips.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoryRename,
}

func init() {
	categoryRenameCmd.Flags().StringVar(&categoryName, "name", "", "new category name")
	categoryRenameCmd.Flags().StringVar(&categoryColor, "color", "", "new category color (hex)")
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryList(cmd *cobra.Command, _ []string) error {
	cats, err := categoryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}

	for _, cat := range cats {
		name := cat.Name
		if cat.Hidden() {
			name = "(hidden)"
		}
		cmd.Printf("[%2d]  %s %s  %s\n", cat.ID, cat.Emoji, name, cat.Color)
	}
	return nil
}

func runCategoryRename(cmd *cobra.Command, args []string) error {
	id, err := parseCategoryID(args[0])
	if err != nil {
		return err
	}

	var name, color *string
	if cmd.Flags().Changed("name") {
		name = &categoryName
	}
	if cmd.Flags().Changed("color") {
		color = &categoryColor
	}
	if name == nil && color == nil {
		return fmt.Errorf("nothing to change: pass --name and/or --color")
	}

	if err := categoryService.Rename(cmd.Context(), id, name, color); err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	cmd.Printf("updated category %d\n", id)
	return nil
}
