package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// requestsCmd represents the requests command group
var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Review book requests",
}

// requestsListCmd lists book requests, optionally filtered by status
var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List book requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")

		requests, err := GetClient().ListRequests(status)
		if err != nil {
			return err
		}

		if len(requests) == 0 {
			fmt.Println("No book requests.")
			return nil
		}
		for _, request := range requests {
			fmt.Printf("%-36s  %-10s  %s — %s\n", request.ID, request.Status, request.Title, request.Author)
			if request.RefusalComment != nil {
				fmt.Printf("%38s refused: %s\n", "", *request.RefusalComment)
			}
		}
		return nil
	},
}

// requestsSetCmd moves a request to a new review status
var requestsSetCmd = &cobra.Command{
	Use:   "set <request-id>",
	Short: "Set the status of a book request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		comment, _ := cmd.Flags().GetString("comment")

		if status == "" {
			return fmt.Errorf("--status is required (pending, waitlist, approved, refused)")
		}
		var refusalComment *string
		if comment != "" {
			refusalComment = &comment
		}

		if err := GetClient().UpdateRequest(args[0], status, refusalComment); err != nil {
			return err
		}

		fmt.Printf("Request %s -> %s\n", args[0], status)
		return nil
	},
}

func init() {
	requestsListCmd.Flags().String("status", "", "filter by status: pending, waitlist, approved, refused")
	requestsSetCmd.Flags().String("status", "", "new status: pending, waitlist, approved, refused")
	requestsSetCmd.Flags().String("comment", "", "refusal comment (required when refusing)")
	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsSetCmd)
	rootCmd.AddCommand(requestsCmd)
}
