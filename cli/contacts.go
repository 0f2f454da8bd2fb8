// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing contacts
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/validate"
)

// AddContactCommand adds a new contact.
func AddContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	firstName := fs.String("first-name", "", "First name (required)")
	lastName := fs.String("last-name", "", "Last name")
	company := fs.String("company", "", "Company name")
	photoURL := fs.String("photo-url", "", "Photo URL")
	emails := fs.String("emails", "", "Comma-separated email addresses")
	phones := fs.String("phones", "", "Comma-separated phone numbers")
	street := fs.String("street", "", "Street address")
	city := fs.String("city", "", "City")
	state := fs.String("state", "", "State or region")
	postalCode := fs.String("postal-code", "", "Postal code")
	country := fs.String("country", "", "Country")
	_ = fs.Parse(args)

	payload, err := validate.Contact(validate.ContactDraft{
		FirstName:   *firstName,
		LastName:    *lastName,
		CompanyName: *company,
		PhotoURL:    *photoURL,
		Emails:      splitList(*emails),
		Phones:      splitList(*phones),
		Street:      *street,
		City:        *city,
		State:       *state,
		PostalCode:  *postalCode,
		Country:     *country,
	})
	if err != nil {
		return err
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

	if err := db.CreateContact(database, contact); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Printf("Created contact: %s (%s)\n", displayName(contact), contact.ID)
	return nil
}

// ListContactsCommand lists contacts matching a query.
func ListContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search by name, company, or email")
	limit := fs.Int("limit", 50, "Max results")
	_ = fs.Parse(args)

	contacts, err := db.FindContacts(database, *query, *limit)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tEMAILS\tPHONES")
	for _, contact := range contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			contact.ID,
			displayName(&contact),
			contact.CompanyName,
			strings.Join(contact.Emails, ", "),
			strings.Join(contact.Phones, ", "),
		)
	}
	return w.Flush()
}

// DeleteContactCommand deletes a contact and its notes.
func DeleteContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-contact", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: delete-contact <id>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := db.DeleteContact(database, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	fmt.Printf("Deleted contact %s\n", id)
	return nil
}

func displayName(contact *models.Contact) string {
	return strings.TrimSpace(contact.FirstName + " " + contact.LastName)
}

// splitList turns a comma-separated flag value into entries, dropping
// empty segments.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseID(raw string) (uuid.UUID, error) {
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
