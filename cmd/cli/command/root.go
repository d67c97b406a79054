package command

// root.go defines the root command for the bookhubctl application.
// Global flags and the token config file are set up here.

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bookhub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var (
	apiURL string // global flag for API server URL
	token  string // authentication token (jwt)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bookhubctl",
	Short: "bookhubctl - bookhub command line interface",
	Long: `bookhubctl talks to the bookhub API. Use it to:
- Track your reading progress per catalog category
- Run and inspect catalog imports (admin)
- Review book requests

Use "bookhubctl command -h" to see all available commands.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080", "API server URL")
	loadToken()
}

type cliConfig struct {
	Token string `json:"token"`
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bookhub", "config.json")
}

func loadToken() {
	path := configPath()
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var cfg cliConfig
	if err := json.Unmarshal(data, &cfg); err == nil {
		token = cfg.Token
	}
}

func saveToken(newToken string) error {
	path := configPath()
	if path == "" {
		return fmt.Errorf("cannot determine home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cliConfig{Token: newToken}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// GetClient returns an HTTP client carrying the cached token, if any.
func GetClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL, token)
}
