package cli

import (
	"fmt"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var (
	exportCategory int
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export slips as markdown",
	Long: `Renders slips as a markdown document, one section per slip, to
stdout or to a file. Trashed slips are excluded unless the Trash
category is selected explicitly.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVarP(&exportCategory, "category", "c", 0, "only this category id")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	var filter *int
	if cmd.Flags().Changed("category") {
		filter = &exportCategory
	}

	doc, err := slipService.ExportMarkdown(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("exporting slips: %w", err)
	}

	if exportOut == "" {
		cmd.Print(doc)
		return nil
	}

	if err := atomic.WriteFile(exportOut, strings.NewReader(doc)); err != nil {
		return fmt.Errorf("writing %s: %w", exportOut, err)
	}
	cmd.Printf("exported to %s\n", exportOut)
	return nil
}
