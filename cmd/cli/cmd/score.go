package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <content>",
	Short: "Show the pickup filter verdict for a message",
	Long: `Run a message through the server's legitimacy filter and print the
score it earned together with the pass/fail verdict.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

var scoreSender string

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreSender, "sender", "", "Sender number or name")
}

func runScore(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	result, err := client.Score(scoreSender, args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	verdict := "rejected"
	if result.Express {
		verdict = "express"
	}
	fmt.Printf("%s (score %d)\n", verdict, result.Score)

	return nil
}
