package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var expressCmd = &cobra.Command{
	Use:     "express",
	Aliases: []string{"ex", "extract"},
	Short:   "List extracted pickup records",
	Long: `List the pickup records extracted from the message archive. Records
can be grouped by date or browsed in an interactive table.`,
	RunE: runExpress,
}

var (
	expressGrouped     bool
	expressInteractive bool
	expressRefresh     bool
)

func init() {
	rootCmd.AddCommand(expressCmd)

	expressCmd.Flags().BoolVarP(&expressGrouped, "grouped", "g", false, "Group records by date")
	expressCmd.Flags().BoolVarP(&expressInteractive, "interactive", "i", false, "Browse records in an interactive table")
	expressCmd.Flags().BoolVarP(&expressRefresh, "refresh", "r", false, "Force re-extraction before listing")
}

func runExpress(cmd *cobra.Command, args []string) error {
	config, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	if expressRefresh {
		if err := client.RefreshExpress(); err != nil {
			formatter.PrintError(err)
			return err
		}
	}

	if expressGrouped {
		groups, err := client.GetExpressGrouped()
		if err != nil {
			formatter.PrintError(err)
			return err
		}
		return formatter.PrintGroups(groups)
	}

	records, err := client.GetExpressRecords()
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	if expressInteractive {
		model, err := NewInteractiveTable(records, client, formatter, config)
		if err != nil {
			formatter.PrintError(err)
			return err
		}
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("interactive mode failed: %w", err)
		}
		return nil
	}

	return formatter.PrintRecords(records)
}

var pickCmd = &cobra.Command{
	Use:   "pick <pickup-code>",
	Short: "Mark a pickup code as collected",
	Args:  cobra.ExactArgs(1),
	RunE:  runPick,
}

var unpickCmd = &cobra.Command{
	Use:   "unpick <pickup-code>",
	Short: "Clear the collected mark on a pickup code",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnpick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(unpickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	if err := client.MarkPicked(args[0]); err != nil {
		formatter.PrintError(err)
		return err
	}

	formatter.PrintSuccess(fmt.Sprintf("Marked %s as collected", args[0]))
	return nil
}

func runUnpick(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	if err := client.UnmarkPicked(args[0]); err != nil {
		formatter.PrintError(err)
		return err
	}

	formatter.PrintSuccess(fmt.Sprintf("Cleared collected mark on %s", args[0]))
	return nil
}
