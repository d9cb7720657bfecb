package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sms-tagger/internal/sms"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage tag rules",
	Long:  `List, add, toggle and test the user-defined tagging rules.`,
}

var rulesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tag rules",
	RunE:    runRulesList,
}

var rulesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a tag rule",
	RunE:  runRulesAdd,
}

var rulesDeleteCmd = &cobra.Command{
	Use:   "delete <rule-id>",
	Short: "Delete a tag rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesDelete,
}

var rulesEnableCmd = &cobra.Command{
	Use:   "enable <rule-id>",
	Short: "Enable a tag rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesToggle(true),
}

var rulesDisableCmd = &cobra.Command{
	Use:   "disable <rule-id>",
	Short: "Disable a tag rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesToggle(false),
}

var rulesTestCmd = &cobra.Command{
	Use:   "test <content>",
	Short: "Run the stored rules against a sample message",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesTest,
}

var (
	ruleName      string
	ruleTag       string
	ruleType      string
	ruleCondition string
	ruleAnchor    string
	ruleLength    int
	rulePriority  int
	ruleSender    string
)

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rulesCmd.AddCommand(rulesDeleteCmd)
	rulesCmd.AddCommand(rulesEnableCmd)
	rulesCmd.AddCommand(rulesDisableCmd)
	rulesCmd.AddCommand(rulesTestCmd)

	rulesAddCmd.Flags().StringVarP(&ruleName, "name", "n", "", "Rule name (required)")
	rulesAddCmd.Flags().StringVarP(&ruleTag, "tag", "t", "", "Tag name the rule assigns (required)")
	rulesAddCmd.Flags().StringVar(&ruleType, "type", "content", "Rule type (sender, content)")
	rulesAddCmd.Flags().StringVarP(&ruleCondition, "condition", "c", "", "Match condition (required)")
	rulesAddCmd.Flags().StringVarP(&ruleAnchor, "anchor", "a", "", "Extraction anchor text (required)")
	rulesAddCmd.Flags().IntVarP(&ruleLength, "length", "l", 6, "Extraction length in characters")
	rulesAddCmd.Flags().IntVarP(&rulePriority, "priority", "p", 0, "Rule priority (higher runs first)")
	rulesAddCmd.MarkFlagRequired("name")
	rulesAddCmd.MarkFlagRequired("tag")
	rulesAddCmd.MarkFlagRequired("condition")
	rulesAddCmd.MarkFlagRequired("anchor")

	rulesTestCmd.Flags().StringVar(&ruleSender, "sender", "", "Sender number or name")
}

func runRulesList(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	rules, err := client.GetRules()
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintRules(rules)
}

func runRulesAdd(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	rule := &sms.Rule{
		Name:          ruleName,
		TagName:       ruleTag,
		Type:          sms.RuleType(ruleType),
		Condition:     ruleCondition,
		ExtractAnchor: ruleAnchor,
		ExtractLength: ruleLength,
		Enabled:       true,
		Priority:      rulePriority,
	}

	created, err := client.CreateRule(rule)
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	formatter.PrintSuccess(fmt.Sprintf("Rule %d created", created.ID))
	return nil
}

func runRulesDelete(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid rule ID: %s", args[0])
	}

	if err := client.DeleteRule(id); err != nil {
		formatter.PrintError(err)
		return err
	}

	formatter.PrintSuccess(fmt.Sprintf("Rule %d deleted", id))
	return nil
}

func runRulesToggle(enabled bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_, formatter, client, err := initializeClient()
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid rule ID: %s", args[0])
		}

		if err := client.SetRuleEnabled(id, enabled); err != nil {
			formatter.PrintError(err)
			return err
		}

		action := "disabled"
		if enabled {
			action = "enabled"
		}
		formatter.PrintSuccess(fmt.Sprintf("Rule %d %s", id, action))
		return nil
	}
}

func runRulesTest(cmd *cobra.Command, args []string) error {
	_, formatter, client, err := initializeClient()
	if err != nil {
		return err
	}

	results, err := client.TestRules(ruleSender, args[0])
	if err != nil {
		formatter.PrintError(err)
		return err
	}

	return formatter.PrintRuleResults(results)
}
