// ABOUTME: Tests for contact database operations
// ABOUTME: Covers CRUD, JSON-encoded email/phone lists, and address round-trips
package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/models"
)

func TestCreateAndGetContact(t *testing.T) {
	db := setupTestDB(t)

	contact := &models.Contact{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		CompanyName: "Analytical Engines",
		Emails:      []string{"ada@example.com", "a.lovelace@example.com"},
		Phones:      []string{"+15550100100"},
		Address: &models.Address{
			Street:     "12 Analytical Way",
			City:       "London",
			PostalCode: "W1",
			Country:    "UK",
		},
	}

	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	if contact.ID == uuid.Nil {
		t.Error("Contact ID was not set")
	}

	found, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if found == nil {
		t.Fatal("Contact not found")
	}

	if found.FirstName != "Ada" {
		t.Errorf("Expected first name Ada, got %s", found.FirstName)
	}
	if len(found.Emails) != 2 {
		t.Fatalf("Expected 2 emails, got %d", len(found.Emails))
	}
	if found.Emails[0] != "ada@example.com" {
		t.Errorf("Email order not preserved: %v", found.Emails)
	}
	if found.Address == nil || found.Address.City != "London" {
		t.Errorf("Address did not round-trip: %+v", found.Address)
	}
}

func TestGetContactMissing(t *testing.T) {
	db := setupTestDB(t)

	found, err := GetContact(db, uuid.New())
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if found != nil {
		t.Error("Expected nil for missing contact")
	}
}

func TestFindContacts(t *testing.T) {
	db := setupTestDB(t)

	for _, c := range []*models.Contact{
		{FirstName: "Ada", Emails: []string{"ada@engines.example"}},
		{FirstName: "Grace", Emails: []string{"grace@navy.example"}},
		{FirstName: "Alan", CompanyName: "Bletchley", Emails: []string{"alan@park.example"}},
	} {
		if err := CreateContact(db, c); err != nil {
			t.Fatalf("CreateContact failed: %v", err)
		}
	}

	contacts, err := FindContacts(db, "engines", 10)
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(contacts) != 1 || contacts[0].FirstName != "Ada" {
		t.Errorf("Email search failed: %+v", contacts)
	}

	contacts, err = FindContacts(db, "Bletchley", 10)
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(contacts) != 1 || contacts[0].FirstName != "Alan" {
		t.Errorf("Company search failed: %+v", contacts)
	}

	contacts, err = FindContacts(db, "", 10)
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(contacts) != 3 {
		t.Errorf("Expected 3 contacts, got %d", len(contacts))
	}
}

func TestUpdateContact(t *testing.T) {
	db := setupTestDB(t)

	contact := &models.Contact{FirstName: "Ada", Emails: []string{"ada@example.com"}}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	contact.LastName = "Lovelace"
	contact.Phones = []string{"+15550100100"}
	if err := UpdateContact(db, contact); err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}

	found, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if found.LastName != "Lovelace" {
		t.Errorf("Expected last name Lovelace, got %s", found.LastName)
	}
	if len(found.Phones) != 1 {
		t.Errorf("Expected 1 phone, got %d", len(found.Phones))
	}
}

func TestDeleteContactRemovesNotes(t *testing.T) {
	db := setupTestDB(t)

	contact := &models.Contact{FirstName: "Ada", Emails: []string{"ada@example.com"}}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	note := &models.ContactNote{ContactID: contact.ID, Content: "Met at the conference"}
	if err := AddContactNote(db, note); err != nil {
		t.Fatalf("AddContactNote failed: %v", err)
	}

	if err := DeleteContact(db, contact.ID); err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}

	found, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("GetContact failed: %v", err)
	}
	if found != nil {
		t.Error("Contact was not deleted")
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM contact_notes WHERE contact_id = ?", contact.ID.String()).Scan(&count); err != nil {
		t.Fatalf("Failed to count notes: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 notes after delete, got %d", count)
	}
}
