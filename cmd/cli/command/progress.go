package command

import (
	"fmt"

	"bookhub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var validCategories = map[string]bool{
	"books":       true,
	"singles":     true,
	"novellas":    true,
	"anthologies": true,
}

// progressCmd represents the progress command group
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Manage reading progress",
}

// progressListCmd lists progress rows for one category
var progressListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your reading progress in a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		if !validCategories[category] {
			return fmt.Errorf("invalid --category %q (valid: books, singles, novellas, anthologies)", category)
		}

		entries, err := GetClient().ListProgress(category)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No progress recorded yet.")
			return nil
		}
		for _, entry := range entries {
			line := fmt.Sprintf("%-30s %s", entry.BookID, entry.Status)
			if entry.Rating != nil {
				line += fmt.Sprintf("  %d/5", *entry.Rating)
			}
			fmt.Println(line)
		}
		return nil
	},
}

// progressSetCmd upserts one progress row
var progressSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the reading status of a book",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		bookID, _ := cmd.Flags().GetString("book-id")
		status, _ := cmd.Flags().GetString("status")
		rating, _ := cmd.Flags().GetInt("rating")
		notes, _ := cmd.Flags().GetString("notes")

		if !validCategories[category] {
			return fmt.Errorf("invalid --category %q (valid: books, singles, novellas, anthologies)", category)
		}
		if bookID == "" {
			return fmt.Errorf("--book-id is required")
		}

		req := client.UpdateProgressRequest{BookID: bookID, Status: status}
		if rating > 0 {
			req.Rating = &rating
		}
		if notes != "" {
			req.Notes = &notes
		}

		if err := GetClient().SetProgress(category, req); err != nil {
			return err
		}

		fmt.Printf("Updated %s: %s\n", bookID, status)
		return nil
	},
}

func init() {
	progressListCmd.Flags().String("category", "books", "category: books, singles, novellas, anthologies")
	progressSetCmd.Flags().String("category", "books", "category: books, singles, novellas, anthologies")
	progressSetCmd.Flags().String("book-id", "", "book identifier")
	progressSetCmd.Flags().String("status", "unread", "status: unread, reading, completed")
	progressSetCmd.Flags().Int("rating", 0, "rating 1-5")
	progressSetCmd.Flags().String("notes", "", "free-text notes")
	progressCmd.AddCommand(progressListCmd)
	progressCmd.AddCommand(progressSetCmd)
	rootCmd.AddCommand(progressCmd)
}
