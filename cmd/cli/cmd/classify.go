package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <content>",
	Short: "Categorize a message",
	Long:  `Ask the server which category a message body falls into.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	category, err := client.Classify(args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	fmt.Println(category)
	return nil
}
