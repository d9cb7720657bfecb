package cmd

import (
	"github.com/spf13/cobra"
)

var messagesCmd = &cobra.Command{
	Use:     "messages",
	Aliases: []string{"msgs"},
	Short:   "List archived messages",
	Long:    `List messages in the archive together with the labels the background tagger assigned.`,
	RunE:    runMessages,
}

var messagesCategory string

func init() {
	rootCmd.AddCommand(messagesCmd)

	messagesCmd.Flags().StringVarP(&messagesCategory, "category", "c", "", "Filter by category (verification_code, express, bank, marketing, notification, unknown)")
}

func runMessages(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	messages, err := client.GetMessages(messagesCategory)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintMessages(messages)
}
