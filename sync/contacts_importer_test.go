// ABOUTME: Tests for the Google Contacts importer
// ABOUTME: Covers create/update/skip decisions and person flattening
package sync

import (
	"database/sql"
	"testing"

	"github.com/harperreed/dealflow/db"
	_ "github.com/mattn/go-sqlite3"
	"google.golang.org/api/people/v1"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}

	return database
}

func newTestImporter(t *testing.T) (*ContactsImporter, *sql.DB) {
	t.Helper()
	database := setupTestDB(t)
	importer := NewContactsImporter(database)
	importer.matcher = NewContactMatcher(nil)
	return importer, database
}

func TestImportContactCreates(t *testing.T) {
	importer, database := newTestImporter(t)

	created, updated, err := importer.ImportContact(&GoogleContact{
		ResourceName: "people/c1",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Emails:       []string{"ada@example.com"},
	})
	if err != nil {
		t.Fatalf("ImportContact failed: %v", err)
	}
	if !created || updated {
		t.Errorf("Expected created=true updated=false, got %v/%v", created, updated)
	}

	contacts, err := db.FindContacts(database, "ada@example.com", 10)
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("Expected 1 contact, got %d", len(contacts))
	}
}

func TestImportContactSkipsInvalid(t *testing.T) {
	importer, _ := newTestImporter(t)

	// No email or phone fails contact validation.
	_, _, err := importer.ImportContact(&GoogleContact{
		ResourceName: "people/c2",
		FirstName:    "Nameless",
	})
	if err == nil {
		t.Fatal("Expected validation error for contact with no email or phone")
	}
}

func TestImportContactMergesIntoExisting(t *testing.T) {
	importer, database := newTestImporter(t)

	if _, _, err := importer.ImportContact(&GoogleContact{
		FirstName: "Ada",
		Emails:    []string{"ada@example.com"},
	}); err != nil {
		t.Fatalf("First import failed: %v", err)
	}

	created, updated, err := importer.ImportContact(&GoogleContact{
		FirstName: "Ada",
		Company:   "Analytical Engines",
		Emails:    []string{"ada@example.com", "a.lovelace@work.example"},
		Phones:    []string{"+15550100100"},
	})
	if err != nil {
		t.Fatalf("Second import failed: %v", err)
	}
	if created || !updated {
		t.Errorf("Expected created=false updated=true, got %v/%v", created, updated)
	}

	contacts, err := db.FindContacts(database, "ada@example.com", 10)
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("Expected merge into single contact, got %d", len(contacts))
	}
	if len(contacts[0].Emails) != 2 {
		t.Errorf("Expected merged emails, got %v", contacts[0].Emails)
	}
	if contacts[0].CompanyName != "Analytical Engines" {
		t.Errorf("Expected company fill-in, got %q", contacts[0].CompanyName)
	}
}

func TestImportContactNoChangeIsNotUpdate(t *testing.T) {
	importer, _ := newTestImporter(t)

	gc := &GoogleContact{FirstName: "Ada", Emails: []string{"ada@example.com"}}
	if _, _, err := importer.ImportContact(gc); err != nil {
		t.Fatalf("First import failed: %v", err)
	}

	created, updated, err := importer.ImportContact(gc)
	if err != nil {
		t.Fatalf("Re-import failed: %v", err)
	}
	if created || updated {
		t.Errorf("Re-importing identical data should be a no-op, got created=%v updated=%v", created, updated)
	}
}

func TestPersonToGoogleContact(t *testing.T) {
	person := &people.Person{
		ResourceName: "people/c3",
		Names:        []*people.Name{{GivenName: "Grace", FamilyName: "Hopper"}},
		EmailAddresses: []*people.EmailAddress{
			{Value: "grace@navy.example"},
			{Value: ""},
		},
		PhoneNumbers:  []*people.PhoneNumber{{Value: "+15550100200"}},
		Organizations: []*people.Organization{{Name: "US Navy"}},
	}

	gc := personToGoogleContact(person)
	if gc == nil {
		t.Fatal("Expected a contact")
	}
	if gc.FirstName != "Grace" || gc.LastName != "Hopper" {
		t.Errorf("Name mapping wrong: %+v", gc)
	}
	if len(gc.Emails) != 1 {
		t.Errorf("Empty email values should be dropped: %v", gc.Emails)
	}
	if gc.Company != "US Navy" {
		t.Errorf("Company mapping wrong: %q", gc.Company)
	}

	if personToGoogleContact(&people.Person{ResourceName: "people/c4"}) != nil {
		t.Error("Person with no names should be skipped")
	}
}
