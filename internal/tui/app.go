package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pdxmph/callsim/internal/call"
	"github.com/pdxmph/callsim/internal/contacts"
	"github.com/pdxmph/callsim/internal/db"
	"github.com/pdxmph/callsim/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

// Add form field indices
const (
	AddFieldName = iota
	AddFieldNumber
	AddFieldCount // Total number of fields
)

const slideStep = 10

// sessionChangedMsg is delivered whenever the call session signals a change.
type sessionChangedMsg struct{}

// waitForChange blocks until the session signals, then reports it to the
// program loop. It is re-armed after every delivery.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return sessionChangedMsg{}
	}
}

// Model represents the main application state
type Model struct {
	store    *contacts.Store
	settings contacts.KV
	session  *call.Session
	style    call.Style
	snapshot call.Snapshot
	lastCall string // ID of the last call already reported in the status line

	selected int
	width    int
	height   int

	status    string
	statusErr bool

	// Add mode
	addMode   bool
	addField  int
	addInputs []textinput.Model

	// Delete confirmation mode
	deleteConfirmMode bool
	deleteIndex       int

	help  help.Model
	track progress.Model
}

// New creates a new application model
func New(store *contacts.Store, settings contacts.KV, session *call.Session, style call.Style) *Model {
	addInputs := make([]textinput.Model, AddFieldCount)
	for i := range addInputs {
		addInputs[i] = textinput.New()
		addInputs[i].Width = 30
		addInputs[i].Prompt = "> "
		addInputs[i].PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		addInputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

		switch i {
		case AddFieldName:
			addInputs[i].Placeholder = "Name"
			addInputs[i].CharLimit = 64
		case AddFieldNumber:
			addInputs[i].Placeholder = "Number"
			addInputs[i].CharLimit = 32
		}
	}

	h := help.New()
	h.Styles.ShortKey = numberStyle.Bold(true)
	h.Styles.ShortDesc = numberStyle
	h.Styles.ShortSeparator = numberStyle

	metrics.Contacts.Set(float64(store.Len()))

	return &Model{
		store:     store,
		settings:  settings,
		session:   session,
		style:     style,
		snapshot:  session.Snapshot(),
		addInputs: addInputs,
		help:      h,
		track: progress.New(
			progress.WithSolidFill(string(themeFor(style).accent)),
			progress.WithoutPercentage(),
			progress.WithWidth(30),
		),
	}
}

// Init starts listening for session changes
func (m Model) Init() tea.Cmd {
	return waitForChange(m.session.Changes())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case sessionChangedMsg:
		m.refresh()
		return m, waitForChange(m.session.Changes())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.session.Close()
			return m, tea.Quit
		}

		// Call screen takes every key while a call is up
		if m.snapshot.State != call.StateIdle {
			return m.updateCall(msg)
		}

		// Delete confirmation mode handling
		if m.deleteConfirmMode {
			switch msg.String() {
			case "y", "Y":
				if err := m.store.Remove(m.deleteIndex); err != nil {
					m.setError(err)
				} else {
					metrics.Contacts.Set(float64(m.store.Len()))
					m.setStatus("Contact deleted")
					m.selected = m.ensureValidSelection()
				}
			}
			// Any other key cancels
			m.deleteConfirmMode = false
			m.deleteIndex = 0
			return m, nil
		}

		if m.addMode {
			return m.updateAdd(msg)
		}

		switch {
		case key.Matches(msg, listKeys.Quit):
			m.session.Close()
			return m, tea.Quit

		case key.Matches(msg, listKeys.Down):
			if m.selected < m.store.Len()-1 {
				m.selected++
			}

		case key.Matches(msg, listKeys.Up):
			if m.selected > 0 {
				m.selected--
			}

		case key.Matches(msg, listKeys.Call):
			list := m.store.List()
			if len(list) == 0 || m.selected >= len(list) {
				return m, nil
			}
			m.session.Initiate(list[m.selected], m.style)
			m.refresh()

		case key.Matches(msg, listKeys.Add):
			m.addMode = true
			m.addField = AddFieldName
			for i := range m.addInputs {
				m.addInputs[i].Reset()
				m.addInputs[i].Blur()
			}
			m.status = ""
			return m, m.addInputs[AddFieldName].Focus()

		case key.Matches(msg, listKeys.Delete):
			if m.store.Len() > 0 {
				m.deleteConfirmMode = true
				m.deleteIndex = m.selected
			}

		case key.Matches(msg, listKeys.Style):
			m.style = m.style.Toggle()
			m.track.FullColor = string(themeFor(m.style).accent)
			if err := m.settings.SetValue(db.KeyPhoneStyle, string(m.style)); err != nil {
				zlog.Warn().Err(err).Msg("Saving phone style")
				m.setError(err)
			} else {
				m.setStatus("Phone style: " + string(m.style))
			}
		}
	}

	return m, nil
}

// updateAdd handles keys while the add form is open
func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeAdd()
		return m, nil

	case "tab", "down", "shift+tab", "up":
		m.addInputs[m.addField].Blur()
		m.addField = (m.addField + 1) % AddFieldCount
		return m, m.addInputs[m.addField].Focus()

	case "enter":
		if m.addField < AddFieldCount-1 {
			m.addInputs[m.addField].Blur()
			m.addField++
			return m, m.addInputs[m.addField].Focus()
		}

		form := newContactForm(m.addInputs[AddFieldName].Value(), m.addInputs[AddFieldNumber].Value())
		if err := form.validate(); err != nil {
			m.setError(err)
			return m, nil
		}
		if err := m.store.Add(form.Name, form.Number); err != nil {
			m.setError(err)
			return m, nil
		}
		metrics.Contacts.Set(float64(m.store.Len()))
		m.selected = m.store.Len() - 1
		m.closeAdd()
		m.setStatus("Added " + form.Name)
		return m, nil
	}

	var cmd tea.Cmd
	m.addInputs[m.addField], cmd = m.addInputs[m.addField].Update(msg)
	return m, cmd
}

func (m *Model) closeAdd() {
	m.addMode = false
	m.addField = 0
	for i := range m.addInputs {
		m.addInputs[i].Blur()
	}
}

// refresh pulls a new snapshot and reports a call that just left the session.
func (m *Model) refresh() {
	m.snapshot = m.session.Snapshot()
	last := m.snapshot.Last
	if last == nil || last.ID == m.lastCall {
		return
	}
	m.lastCall = last.ID
	m.setStatus(describeCall(*last))
}

func describeCall(r call.Record) string {
	switch r.Outcome {
	case call.OutcomeAnswered:
		return fmt.Sprintf("Call with %s ended %s", r.Contact.Name, call.FormatElapsed(r.Duration))
	case call.OutcomeMissed:
		return "Missed call from " + r.Contact.Name
	default:
		return "Declined call from " + r.Contact.Name
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// ensureValidSelection keeps the selection within the list
func (m Model) ensureValidSelection() int {
	n := m.store.Len()
	if n == 0 {
		return 0
	}
	if m.selected >= n {
		return n - 1
	}
	return m.selected
}

// View renders the model
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.snapshot.State != call.StateIdle {
		return m.renderCall()
	}

	// Overlay add form if active
	if m.addMode {
		return m.renderAddForm()
	}

	// Overlay delete confirmation if active
	if m.deleteConfirmMode {
		return m.renderDeleteConfirmation()
	}

	listWidth := min(m.width-2, 60)
	list := borderStyle.
		Width(listWidth).
		Height(m.height - 4).
		Render(m.renderList(listWidth, m.height-4))

	return lipgloss.JoinVertical(lipgloss.Left, list, m.renderStatus(), m.help.View(listKeys))
}

// renderList renders the contact list
func (m Model) renderList(width, height int) string {
	var lines []string

	list := m.store.List()
	header := fmt.Sprintf("Contacts (%d)", len(list))
	header += " " + themeFor(m.style).label.Render("["+string(m.style)+"]")
	lines = append(lines, header)
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))

	if len(list) == 0 {
		lines = append(lines, "", numberStyle.Render("No contacts yet. Press a to add one."))
		return strings.Join(lines, "\n")
	}

	// Calculate visible range
	visibleHeight := height - 2
	startIdx := 0
	if m.selected >= visibleHeight {
		startIdx = m.selected - visibleHeight + 1
	}

	for i := startIdx; i < len(list) && i < startIdx+visibleHeight; i++ {
		c := list[i]
		line := fmt.Sprintf("(%s) %s", c.Initial(), c.Name)
		if i == m.selected {
			line = selectedStyle.Render(line + "  " + c.Number)
		} else {
			line += "  " + numberStyle.Render(c.Number)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return " " + errorStyle.Render(m.status)
	}
	return " " + statusStyle.Render(m.status)
}

// renderAddForm renders the add contact overlay
func (m Model) renderAddForm() string {
	var lines []string
	lines = append(lines, "New Contact")
	lines = append(lines, strings.Repeat("─", 40))
	lines = append(lines, "")

	fieldLabels := []string{
		"Name:    ",
		"Number:  ",
	}
	for i, label := range fieldLabels {
		lines = append(lines, label+m.addInputs[i].View())
		lines = append(lines, "")
	}

	if m.statusErr && m.status != "" {
		lines = append(lines, errorStyle.Render(m.status))
	}
	lines = append(lines, "")
	lines = append(lines, "Tab: next field • Enter: save • Esc: cancel")

	box := borderStyle.
		Padding(1).
		Width(60).
		Render(strings.Join(lines, "\n"))

	return m.center(box)
}

// renderDeleteConfirmation renders the delete confirmation prompt
func (m Model) renderDeleteConfirmation() string {
	var name string
	if list := m.store.List(); m.deleteIndex < len(list) {
		name = list[m.deleteIndex].Name
	}

	width := 60
	height := 7

	prompt := fmt.Sprintf("Delete contact '%s'? (y/n)", name)

	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-4).
		Align(lipgloss.Center, lipgloss.Center).
		Render(prompt)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(width).
		Height(height).
		Render(content)

	return m.center(box)
}

// center places content in the middle of the screen
func (m Model) center(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
