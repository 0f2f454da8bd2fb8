// ABOUTME: Contact note CLI commands
// ABOUTME: Commands for adding notes and paging through a contact's feed
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
)

// AddNoteCommand attaches a note to a contact.
func AddNoteCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-note", flag.ExitOnError)
	content := fs.String("content", "", "Note content (required)")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: add-note --content <text> <contact-id>")
	}

	contactID, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(*content)
	if trimmed == "" {
		return fmt.Errorf("--content is required")
	}

	contact, err := db.GetContact(database, contactID)
	if err != nil {
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("contact not found")
	}

	note := &models.ContactNote{ContactID: contactID, Content: trimmed}
	if err := db.AddContactNote(database, note); err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	fmt.Printf("Added note to %s\n", displayName(contact))
	return nil
}

// ListNotesCommand prints one page of a contact's note feed.
func ListNotesCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-notes", flag.ExitOnError)
	page := fs.Int("page", 1, "Page number (1-based)")
	limit := fs.Int("limit", db.DefaultNotePageSize, "Notes per page")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: list-notes <contact-id>")
	}

	contactID, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	result, err := db.ListContactNotes(database, contactID, *page, *limit)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(result.Items) == 0 {
		fmt.Println("No notes found")
		return nil
	}

	for _, note := range result.Items {
		fmt.Printf("[%s]\n%s\n\n", note.CreatedAt.Format("2006-01-02 15:04"), note.Content)
	}

	fmt.Printf("Page %d of %d (%d notes total)\n",
		result.Pagination.Page, result.Pagination.TotalPages, result.Pagination.Total)
	if result.Pagination.HasNextPage {
		fmt.Printf("More notes: list-notes --page %d %s\n", result.Pagination.Page+1, contactID)
	}
	return nil
}
