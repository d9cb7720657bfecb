package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cliapi "sms-tagger/internal/cli"
	"sms-tagger/internal/sms"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a message dump into the archive",
	Long: `Import messages from a JSON file. The file holds an array of objects
with sender, content, received_at and optional phone_number fields.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	var messages []sms.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		err = fmt.Errorf("failed to parse %s: %w", args[0], err)
		formatter.PrintError(err)
		return err
	}

	spin := cliapi.NewProgressSpinner(fmt.Sprintf("Importing %d messages", len(messages)), config.NoColor || noColor)
	spin.Start()
	imported, err := client.ImportMessages(messages)
	spin.Stop()
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	formatter.PrintSuccess(fmt.Sprintf("Imported %d messages", imported))
	return nil
}
