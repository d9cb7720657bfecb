package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	cliapi "sms-tagger/internal/cli"
	"sms-tagger/internal/sms"
)

// KeyMap represents the key bindings for the interactive table
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Pick    key.Binding
	Unpick  key.Binding
	Details key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Pick: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "mark picked"),
		),
		Unpick: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmark"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// InteractiveTable represents the interactive pickup record browser
type InteractiveTable struct {
	table       table.Model
	records     []sms.ExpressRecord
	client      *cliapi.Client
	formatter   *cliapi.OutputFormatter
	keys        KeyMap
	loading     bool
	spinner     spinner.Model
	err         error
	message     string
	showHelp    bool
	showDetails bool
	quitting    bool
	config      *cliapi.Config
	useColor    bool
}

type recordsMsg struct {
	records []sms.ExpressRecord
	err     error
}

type pickedMsg struct {
	code   string
	picked bool
	err    error
}

// NewInteractiveTable creates a new interactive table
func NewInteractiveTable(records []sms.ExpressRecord, client *cliapi.Client, formatter *cliapi.OutputFormatter, config *cliapi.Config) (*InteractiveTable, error) {
	columns := []table.Column{
		{Title: "CODE", Width: 12},
		{Title: "COMPANY", Width: 14},
		{Title: "LOCATION", Width: 24},
		{Title: "STATUS", Width: 9},
		{Title: "DATE", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(recordRows(records)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	useColor := !config.NoColor && isatty.IsTerminal(os.Stdout.Fd())

	if useColor {
		styles := table.DefaultStyles()
		styles.Header = styles.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(false)
		styles.Selected = styles.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(styles)
	}

	return &InteractiveTable{
		table:     t,
		records:   records,
		client:    client,
		formatter: formatter,
		keys:      DefaultKeyMap(),
		spinner:   s,
		config:    config,
		useColor:  useColor,
	}, nil
}

// Init initializes the interactive table
func (m InteractiveTable) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m InteractiveTable) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showDetails {
			// Any key closes the details view
			m.showDetails = false
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m.handleRefresh()

		case key.Matches(msg, m.keys.Pick):
			return m.handlePick(true)

		case key.Matches(msg, m.keys.Unpick):
			return m.handlePick(false)

		case key.Matches(msg, m.keys.Details):
			if len(m.records) > 0 {
				m.showDetails = true
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case recordsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.message = ""
			return m, nil
		}
		m.err = nil
		m.records = msg.records
		m.table.SetRows(recordRows(msg.records))
		m.message = fmt.Sprintf("Loaded %d records", len(msg.records))
		return m, nil

	case pickedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.message = ""
			return m, nil
		}
		m.err = nil
		if msg.picked {
			m.message = fmt.Sprintf("Marked %s as collected", msg.code)
		} else {
			m.message = fmt.Sprintf("Cleared collected mark on %s", msg.code)
		}
		return m, m.reloadRecords()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the interactive table
func (m InteractiveTable) View() string {
	if m.quitting {
		return ""
	}

	if m.showDetails {
		return m.detailsView()
	}

	var b strings.Builder
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(fmt.Sprintf("%s Working...\n", m.spinner.View()))
	}
	if m.err != nil {
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	}
	if m.message != "" {
		b.WriteString(m.message + "\n")
	}

	if m.showHelp {
		b.WriteString("\n↑/k up · ↓/j down · r refresh · p mark picked · u unmark · enter details · q quit\n")
	} else {
		b.WriteString("\nPress ? for help, q to quit\n")
	}

	return b.String()
}

// detailsView renders the full record under the cursor
func (m InteractiveTable) detailsView() string {
	r, ok := m.selectedRecord()
	if !ok {
		return "No record selected.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pickup Code: %s\n", r.PickupCode)
	fmt.Fprintf(&b, "Company: %s (%s)\n", r.Company, r.ExpressType)
	fmt.Fprintf(&b, "Location: %s\n", r.Location)
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	fmt.Fprintf(&b, "Date: %s\n", r.Date)
	fmt.Fprintf(&b, "Sender: %s\n", r.Sender)
	fmt.Fprintf(&b, "Received: %s\n", r.ReceivedAt)
	fmt.Fprintf(&b, "\n%s\n", r.FullContent)
	b.WriteString("\nPress any key to go back\n")

	return b.String()
}

// handleRefresh forces re-extraction and reloads the table
func (m InteractiveTable) handleRefresh() (tea.Model, tea.Cmd) {
	m.loading = true
	m.message = ""
	client := m.client
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		if err := client.RefreshExpress(); err != nil {
			return recordsMsg{err: err}
		}
		records, err := client.GetExpressRecords()
		return recordsMsg{records: records, err: err}
	})
}

// handlePick toggles the collected mark on the selected record
func (m InteractiveTable) handlePick(picked bool) (tea.Model, tea.Cmd) {
	r, ok := m.selectedRecord()
	if !ok || r.PickupCode == "" {
		return m, nil
	}

	m.loading = true
	m.message = ""
	client := m.client
	code := r.PickupCode
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		var err error
		if picked {
			err = client.MarkPicked(code)
		} else {
			err = client.UnmarkPicked(code)
		}
		return pickedMsg{code: code, picked: picked, err: err}
	})
}

// reloadRecords refreshes the table rows from the server
func (m InteractiveTable) reloadRecords() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		records, err := client.GetExpressRecords()
		return recordsMsg{records: records, err: err}
	}
}

// selectedRecord returns the record under the cursor
func (m InteractiveTable) selectedRecord() (sms.ExpressRecord, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return sms.ExpressRecord{}, false
	}
	return m.records[idx], true
}

// recordRows converts records into table rows
func recordRows(records []sms.ExpressRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			r.PickupCode,
			r.Company,
			r.Location,
			string(r.Status),
			r.Date,
		}
	}
	return rows
}
