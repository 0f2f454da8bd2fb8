// ABOUTME: Contact note MCP tool handlers
// ABOUTME: Implements add_contact_note and the paged list_contact_notes tool
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type NoteHandlers struct {
	db *sql.DB
}

func NewNoteHandlers(database *sql.DB) *NoteHandlers {
	return &NoteHandlers{db: database}
}

type AddContactNoteInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Content   string `json:"content" jsonschema:"Note content (required)"`
}

type NoteOutput struct {
	ID        string `json:"id"`
	ContactID string `json:"contact_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

func (h *NoteHandlers) AddContactNote(_ context.Context, request *mcp.CallToolRequest, input AddContactNoteInput) (*mcp.CallToolResult, NoteOutput, error) {
	contactID, err := parseEntityID(input.ContactID)
	if err != nil {
		return nil, NoteOutput{}, err
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, NoteOutput{}, fmt.Errorf("content is required")
	}

	contact, err := db.GetContact(h.db, contactID)
	if err != nil {
		return nil, NoteOutput{}, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return nil, NoteOutput{}, fmt.Errorf("contact not found")
	}

	note := &models.ContactNote{ContactID: contactID, Content: content}
	if err := db.AddContactNote(h.db, note); err != nil {
		return nil, NoteOutput{}, fmt.Errorf("failed to add note: %w", err)
	}

	return nil, noteToOutput(note), nil
}

type ListContactNotesInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Page      int    `json:"page,omitempty" jsonschema:"Page number, 1-based (default 1)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Notes per page (default 20)"`
}

type ListContactNotesOutput struct {
	Notes       []NoteOutput `json:"notes"`
	Page        int          `json:"page"`
	Total       int          `json:"total"`
	TotalPages  int          `json:"totalPages"`
	HasNextPage bool         `json:"hasNextPage"`
}

func (h *NoteHandlers) ListContactNotes(_ context.Context, request *mcp.CallToolRequest, input ListContactNotesInput) (*mcp.CallToolResult, ListContactNotesOutput, error) {
	contactID, err := parseEntityID(input.ContactID)
	if err != nil {
		return nil, ListContactNotesOutput{}, err
	}

	page, err := db.ListContactNotes(h.db, contactID, input.Page, input.Limit)
	if err != nil {
		return nil, ListContactNotesOutput{}, fmt.Errorf("failed to list notes: %w", err)
	}

	out := ListContactNotesOutput{
		Notes:       make([]NoteOutput, len(page.Items)),
		Page:        page.Pagination.Page,
		Total:       page.Pagination.Total,
		TotalPages:  page.Pagination.TotalPages,
		HasNextPage: page.Pagination.HasNextPage,
	}
	for i, note := range page.Items {
		out.Notes[i] = noteToOutput(&note)
	}

	return nil, out, nil
}

func noteToOutput(note *models.ContactNote) NoteOutput {
	return NoteOutput{
		ID:        note.ID.String(),
		ContactID: note.ContactID.String(),
		Content:   note.Content,
		CreatedAt: note.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
