package command

import (
	"fmt"
	"sort"
	"strings"

	"bookhub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

// importCmd represents the import command group
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Run catalog imports (admin)",
	Long:  `Import catalog source documents into the database. Requires an admin account.`,
}

// importListCmd lists the importable source files per folder
var importListCmd = &cobra.Command{
	Use:   "list",
	Short: "List importable source files",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := GetClient().ListImportableFiles()
		if err != nil {
			return err
		}

		folders := make([]string, 0, len(files))
		for folder := range files {
			folders = append(folders, folder)
		}
		sort.Strings(folders)

		for _, folder := range folders {
			fmt.Printf("%s/\n", folder)
			for _, file := range files[folder] {
				fmt.Printf("  %s\n", file)
			}
		}
		return nil
	},
}

// importRunCmd triggers an import batch
var importRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Import the selected files",
	Long: `Import the given source documents, named as folder/file pairs:

  bookhubctl import run --file series/horus-heresy.json --file singles/eisenhorn.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fileArgs, _ := cmd.Flags().GetStringArray("file")
		if len(fileArgs) == 0 {
			return fmt.Errorf("at least one --file folder/name.json is required")
		}

		selections := make([]client.FileSelection, 0, len(fileArgs))
		for _, arg := range fileArgs {
			folder, file, ok := strings.Cut(arg, "/")
			if !ok {
				return fmt.Errorf("invalid --file %q, expected folder/name.json", arg)
			}
			selections = append(selections, client.FileSelection{Folder: folder, File: file})
		}

		result, err := GetClient().Import(selections)
		if err != nil {
			return err
		}

		if !result.Success {
			return fmt.Errorf("import failed: %s", result.Error)
		}

		fmt.Println(result.Message)
		if result.Results != nil {
			for _, e := range result.Results.Errors {
				fmt.Printf("  error: %s\n", e)
			}
		}
		return nil
	},
}

func init() {
	importRunCmd.Flags().StringArray("file", nil, "source file as folder/name.json (repeatable)")
	importCmd.AddCommand(importListCmd)
	importCmd.AddCommand(importRunCmd)
	rootCmd.AddCommand(importCmd)
}
