package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"sms-tagger/internal/database"
	"sms-tagger/internal/parser"
	"sms-tagger/internal/sms"
)

// OutputFormatter handles different output formats
type OutputFormatter struct {
	format   string
	quiet    bool
	useColor bool
	profile  termenv.Profile
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(format string, quiet bool) *OutputFormatter {
	return NewOutputFormatterWithColor(format, quiet, false)
}

// NewOutputFormatterWithColor creates a formatter with explicit color control.
// Colors are only used on a real terminal.
func NewOutputFormatterWithColor(format string, quiet, noColor bool) *OutputFormatter {
	return &OutputFormatter{
		format:   format,
		quiet:    quiet,
		useColor: !noColor && isatty.IsTerminal(os.Stdout.Fd()),
		profile:  termenv.ColorProfile(),
	}
}

// PrintRecords prints extracted pickup records
func (f *OutputFormatter) PrintRecords(records []sms.ExpressRecord) error {
	if f.quiet {
		for _, r := range records {
			fmt.Println(r.PickupCode)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(records)
	case "table":
		return f.printRecordsTable(records)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintGroups prints pickup records grouped by date
func (f *OutputFormatter) PrintGroups(groups []sms.DateGroup) error {
	if f.quiet {
		for _, g := range groups {
			fmt.Printf("%s %d\n", g.Date, g.Count)
		}
		return nil
	}

	if f.format == "json" {
		return json.NewEncoder(os.Stdout).Encode(groups)
	}

	for _, g := range groups {
		fmt.Printf("%s (%d)\n", f.colorize(g.Date, "12"), g.Count)
		for _, r := range g.Records {
			status := f.statusLabel(r.Status)
			fmt.Printf("  %-10s %-8s %-20s %s\n", r.PickupCode, status, truncate(r.Company, 20), truncate(r.Location, 30))
		}
	}

	return nil
}

// PrintMessages prints archived messages with their labels
func (f *OutputFormatter) PrintMessages(messages []database.TaggedMessage) error {
	if f.quiet {
		for _, m := range messages {
			fmt.Printf("%d\n", m.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(messages)
	case "table":
		return f.printMessagesTable(messages)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintRules prints tag rules
func (f *OutputFormatter) PrintRules(rules []sms.Rule) error {
	if f.quiet {
		for _, r := range rules {
			fmt.Printf("%d\n", r.ID)
		}
		return nil
	}

	switch f.format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(rules)
	case "table":
		return f.printRulesTable(rules)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}

// PrintRuleResults prints the outcome of a rule test run
func (f *OutputFormatter) PrintRuleResults(results []sms.RuleResult) error {
	if f.format == "json" || f.quiet {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No rules matched.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "TAG\tVALUE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\n", r.TagName, r.ExtractedValue)
	}

	return nil
}

// PrintSuccess prints a success message
func (f *OutputFormatter) PrintSuccess(message string) {
	if !f.quiet {
		fmt.Printf("%s %s\n", f.colorize("✓", "10"), message)
	}
}

// PrintError prints an error message
func (f *OutputFormatter) PrintError(err error) {
	if !f.quiet {
		fmt.Fprintf(os.Stderr, "%s Error: %v\n", f.colorize("✗", "9"), err)
	}
}

// PrintInfo prints an informational message
func (f *OutputFormatter) PrintInfo(message string) {
	if !f.quiet {
		fmt.Printf("ℹ %s\n", message)
	}
}

// printRecordsTable prints pickup records in table format
func (f *OutputFormatter) printRecordsTable(records []sms.ExpressRecord) error {
	if len(records) == 0 {
		fmt.Println("No pickup records found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "CODE\tCOMPANY\tLOCATION\tSTATUS\tDATE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.PickupCode,
			truncate(r.Company, 15),
			truncate(r.Location, 30),
			f.statusLabel(r.Status),
			displayDate(r))
	}

	return nil
}

// printMessagesTable prints messages in table format
func (f *OutputFormatter) printMessagesTable(messages []database.TaggedMessage) error {
	if len(messages) == 0 {
		fmt.Println("No messages found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tSENDER\tCATEGORY\tRECEIVED\tCONTENT")
	for _, m := range messages {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			m.ID,
			truncate(m.Sender, 15),
			m.Category,
			m.ReceivedAt,
			truncate(m.Content, 40))
	}

	return nil
}

// printRulesTable prints rules in table format
func (f *OutputFormatter) printRulesTable(rules []sms.Rule) error {
	if len(rules) == 0 {
		fmt.Println("No rules found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tTAG\tTYPE\tPRIORITY\tENABLED\tCONDITION")
	for _, r := range rules {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%t\t%s\n",
			r.ID,
			truncate(r.Name, 20),
			r.TagName,
			r.Type,
			r.Priority,
			r.Enabled,
			truncate(r.Condition, 25))
	}

	return nil
}

// displayDate prefers the date the message text states (取件码 templates
// often carry one) over the record's received-time date.
func displayDate(r sms.ExpressRecord) string {
	if d := parser.ExtractDisplayDate(r.FullContent); d != "" {
		return d
	}
	return r.Date
}

// statusLabel renders a pickup status, colored when the terminal allows
func (f *OutputFormatter) statusLabel(status sms.PickupStatus) string {
	switch status {
	case sms.StatusPicked:
		return f.colorize(string(status), "10")
	case sms.StatusExpired:
		return f.colorize(string(status), "9")
	default:
		return f.colorize(string(status), "11")
	}
}

// colorize wraps text in an ANSI color when color output is enabled
func (f *OutputFormatter) colorize(text, color string) string {
	if !f.useColor {
		return text
	}
	return termenv.String(text).Foreground(f.profile.Color(color)).String()
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
