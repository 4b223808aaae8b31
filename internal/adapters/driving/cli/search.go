package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search slips by word prefix",
	Long: `Searches title and content. Every query word must match as a
word prefix; trashed slips are never returned.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	slips, err := slipService.Search(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("searching slips: %w", err)
	}

	if len(slips) == 0 {
		cmd.Println("no matches")
		return nil
	}

	for _, slip := range slips {
		marker := " "
		if slip.IsPinned {
			marker = "*"
		}
		cmd.Printf("%s %s  %s  %s\n", marker, shortID(slip.ID), slip.Timestamp, slip.Title)
	}
	return nil
}
