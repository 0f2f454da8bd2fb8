// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements create_contact, find_contacts, delete_contact, and note tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/validate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ContactHandlers struct {
	db *sql.DB
}

func NewContactHandlers(database *sql.DB) *ContactHandlers {
	return &ContactHandlers{db: database}
}

type CreateContactInput struct {
	FirstName   string   `json:"first_name" jsonschema:"Contact first name (required)"`
	LastName    string   `json:"last_name,omitempty" jsonschema:"Contact last name"`
	CompanyName string   `json:"company_name,omitempty" jsonschema:"Company name"`
	PhotoURL    string   `json:"photo_url,omitempty" jsonschema:"URL of a contact photo"`
	Emails      []string `json:"emails,omitempty" jsonschema:"Email addresses (at least one email or phone required)"`
	Phones      []string `json:"phones,omitempty" jsonschema:"Phone numbers (at least one email or phone required)"`
	Street      string   `json:"street,omitempty" jsonschema:"Street address"`
	City        string   `json:"city,omitempty" jsonschema:"City"`
	State       string   `json:"state,omitempty" jsonschema:"State or region"`
	PostalCode  string   `json:"postal_code,omitempty" jsonschema:"Postal code"`
	Country     string   `json:"country,omitempty" jsonschema:"Country"`
}

type ContactOutput struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name,omitempty"`
	CompanyName string   `json:"company_name,omitempty"`
	Emails      []string `json:"emails,omitempty"`
	Phones      []string `json:"phones,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

func (h *ContactHandlers) CreateContact(_ context.Context, request *mcp.CallToolRequest, input CreateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	payload, err := validate.Contact(validate.ContactDraft{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		CompanyName: input.CompanyName,
		PhotoURL:    input.PhotoURL,
		Emails:      input.Emails,
		Phones:      input.Phones,
		Street:      input.Street,
		City:        input.City,
		State:       input.State,
		PostalCode:  input.PostalCode,
		Country:     input.Country,
	})
	if err != nil {
		return nil, ContactOutput{}, err
	}

	contact := &models.Contact{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		CompanyName: payload.CompanyName,
		PhotoURL:    payload.PhotoURL,
		Emails:      payload.Emails,
		Phones:      payload.Phones,
	}
	if payload.Address != nil {
		contact.Address = &models.Address{
			Street:     payload.Address.Street,
			City:       payload.Address.City,
			State:      payload.Address.State,
			PostalCode: payload.Address.PostalCode,
			Country:    payload.Address.Country,
		}
	}

	if err := db.CreateContact(h.db, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (matches names, company, and emails)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	contacts, err := db.FindContacts(h.db, input.Query, limit)
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}

	result := make([]ContactOutput, len(contacts))
	for i, contact := range contacts {
		result[i] = contactToOutput(&contact)
	}

	return nil, FindContactsOutput{Contacts: result}, nil
}

type DeleteContactInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

type DeleteOutput struct {
	Deleted bool `json:"deleted"`
}

func (h *ContactHandlers) DeleteContact(_ context.Context, request *mcp.CallToolRequest, input DeleteContactInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	if err := db.DeleteContact(h.db, id); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete contact: %w", err)
	}

	return nil, DeleteOutput{Deleted: true}, nil
}

func contactToOutput(contact *models.Contact) ContactOutput {
	return ContactOutput{
		ID:          contact.ID.String(),
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		CompanyName: contact.CompanyName,
		Emails:      contact.Emails,
		Phones:      contact.Phones,
		CreatedAt:   contact.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   contact.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// parseEntityID runs the shared id check and then parses the UUID.
func parseEntityID(raw string) (uuid.UUID, error) {
	cleaned, err := validate.EntityID(raw)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(cleaned)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}
