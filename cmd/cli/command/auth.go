package command

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the bookhub API",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			return fmt.Errorf("--username is required")
		}

		fmt.Print("Password: ")
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		resp, err := GetClient().Login(username, string(passwordBytes))
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		if err := saveToken(resp.AccessToken); err != nil {
			return fmt.Errorf("save token: %w", err)
		}

		fmt.Printf("Logged in as %s\n", resp.Username)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("username", "", "account username")
	rootCmd.AddCommand(loginCmd)
}
