// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Browses contacts and their note feeds with incremental page loading
package tui

import (
	"context"
	"database/sql"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/pagedlist"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewContacts ViewMode = iota
	ViewNotes
)

// Model is the main bubbletea model. The notes pane is backed by a
// page accumulator scoped to the selected contact; switching contacts
// resets it so pages from the previous contact never bleed through.
type Model struct {
	db       *sql.DB
	viewMode ViewMode

	contacts    []models.Contact
	selectedRow int

	notes     *pagedlist.Accumulator[models.ContactNote]
	noteItems []models.ContactNote
	notesErr  error

	width  int
	height int
	err    error
}

type notesLoadedMsg struct {
	scope string
}

type notesErrMsg struct {
	scope string
	err   error
}

// NewModel creates a new TUI model.
func NewModel(database *sql.DB) Model {
	m := Model{
		db:       database,
		viewMode: ViewContacts,
		width:    80,
		height:   24,
	}

	contacts, err := db.FindContacts(database, "", 100)
	if err != nil {
		m.err = err
		return m
	}
	m.contacts = contacts

	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case notesLoadedMsg:
		// Ignore completions from a contact we already navigated away
		// from.
		if m.notes == nil || msg.scope != m.notes.Scope() {
			return m, nil
		}
		m.noteItems = m.notes.Items()
		m.notesErr = nil
		return m, nil
	case notesErrMsg:
		if m.notes == nil || msg.scope != m.notes.Scope() {
			return m, nil
		}
		m.notesErr = msg.err
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	switch m.viewMode {
	case ViewContacts:
		return m.renderContactsView()
	case ViewNotes:
		return m.renderNotesView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewContacts:
		return m.handleContactKeys(msg)
	case ViewNotes:
		return m.handleNotesKeys(msg)
	}

	return m, nil
}

func (m Model) handleContactKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.contacts)-1 {
			m.selectedRow++
		}
	case "enter":
		if len(m.contacts) == 0 {
			return m, nil
		}
		return m.openNotes(m.contacts[m.selectedRow])
	}
	return m, nil
}

func (m Model) handleNotesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewContacts
		return m, nil
	case "n":
		// Load the next page, if the server says there is one.
		if m.notes != nil && m.notes.HasNextPage() && !m.notes.Fetching() {
			return m, m.fetchNotesCmd()
		}
	case "r":
		if len(m.contacts) > 0 {
			return m.openNotes(m.contacts[m.selectedRow])
		}
	}
	return m, nil
}

// openNotes switches the notes pane to the given contact. The
// accumulator is reset to the new scope before the first page loads.
func (m Model) openNotes(contact models.Contact) (tea.Model, tea.Cmd) {
	m.notes = pagedlist.New(
		db.NoteFetcher(m.db, contact.ID, db.DefaultNotePageSize),
		func(n models.ContactNote) string { return n.ID.String() },
	)
	m.notes.Reset(contact.ID.String())
	m.noteItems = nil
	m.notesErr = nil
	m.viewMode = ViewNotes
	return m, m.fetchNotesCmd()
}

// fetchNotesCmd runs one page fetch off the UI goroutine. The scope is
// captured so late completions for a previous contact are dropped in
// Update.
func (m Model) fetchNotesCmd() tea.Cmd {
	acc := m.notes
	scope := acc.Scope()
	return func() tea.Msg {
		if err := acc.FetchNext(context.Background()); err != nil {
			return notesErrMsg{scope: scope, err: err}
		}
		return notesLoadedMsg{scope: scope}
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
