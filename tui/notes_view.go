// ABOUTME: Rendering for the contact list and note feed views
// ABOUTME: Uses the bubbles table for contacts and a plain feed for notes
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
)

func (m Model) renderContactsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("DEALFLOW"))
	s.WriteString("\n\n")
	s.WriteString(m.renderContactsTable())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("↑/↓ move • enter open notes • q quit"))

	return s.String()
}

func (m Model) renderContactsTable() string {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Company", Width: 24},
		{Title: "Email", Width: 30},
	}

	var rows []table.Row
	for _, contact := range m.contacts {
		email := ""
		if len(contact.Emails) > 0 {
			email = contact.Emails[0]
		}
		rows = append(rows, table.Row{
			strings.TrimSpace(contact.FirstName + " " + contact.LastName),
			contact.CompanyName,
			email,
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.height-8),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderNotesView() string {
	var s strings.Builder

	contact := m.contacts[m.selectedRow]
	name := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
	s.WriteString(titleStyle.Render("NOTES: " + name))
	s.WriteString("\n\n")

	if m.notesErr != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error loading notes: %v", m.notesErr)))
		s.WriteString("\n\n")
	}

	if len(m.noteItems) == 0 && m.notesErr == nil {
		if m.notes != nil && m.notes.Fetching() {
			s.WriteString("Loading...\n")
		} else {
			s.WriteString("No notes yet.\n")
		}
	}

	for _, note := range m.noteItems {
		s.WriteString(selectedStyle.Render(note.CreatedAt.Format("2006-01-02 15:04")))
		s.WriteString("\n")
		s.WriteString(note.Content)
		s.WriteString("\n\n")
	}

	help := []string{"esc back", "q quit"}
	if m.notes != nil && m.notes.HasNextPage() {
		help = append([]string{"n more"}, help...)
	}
	if m.notesErr != nil {
		help = append([]string{"r retry"}, help...)
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return s.String()
}
