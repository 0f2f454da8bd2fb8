// ABOUTME: Google Contacts importer
// ABOUTME: Fetches People API connections and routes them through contact validation
package sync

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/validate"
	"google.golang.org/api/people/v1"
)

type ContactsImporter struct {
	db      *sql.DB
	matcher *ContactMatcher
}

// GoogleContact is the subset of a People API person the importer
// cares about.
type GoogleContact struct {
	ResourceName string
	FirstName    string
	LastName     string
	Company      string
	PhotoURL     string
	Emails       []string
	Phones       []string
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Fetched int
	Created int
	Updated int
	Skipped int
}

func NewContactsImporter(database *sql.DB) *ContactsImporter {
	return &ContactsImporter{db: database}
}

// ImportContact imports a single Google contact. Rows that fail
// contact validation are skipped rather than imported half-formed.
// Returns (created, updated, err).
func (ci *ContactsImporter) ImportContact(gc *GoogleContact) (bool, bool, error) {
	payload, err := validate.Contact(validate.ContactDraft{
		FirstName:   gc.FirstName,
		LastName:    gc.LastName,
		CompanyName: gc.Company,
		PhotoURL:    gc.PhotoURL,
		Emails:      gc.Emails,
		Phones:      gc.Phones,
	})
	if err != nil {
		return false, false, err
	}

	if existing, found := ci.matcher.FindMatch(payload.Emails); found {
		updated, err := ci.updateContact(existing, payload)
		return false, updated, err
	}

	contact := &models.Contact{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		CompanyName: payload.CompanyName,
		PhotoURL:    payload.PhotoURL,
		Emails:      payload.Emails,
		Phones:      payload.Phones,
	}

	if err := db.CreateContact(ci.db, contact); err != nil {
		return false, false, fmt.Errorf("failed to create contact: %w", err)
	}

	ci.matcher.AddContact(contact)
	return true, false, nil
}

// updateContact fills gaps on an existing contact from Google data.
// Emails and phones are merged; scalar fields are only set when the
// local record has none.
func (ci *ContactsImporter) updateContact(existing *models.Contact, payload *validate.ContactPayload) (bool, error) {
	fresh, err := db.GetContact(ci.db, existing.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load contact: %w", err)
	}
	if fresh == nil {
		return false, fmt.Errorf("contact disappeared during import")
	}

	updated := false

	if merged := mergeValues(fresh.Emails, payload.Emails); len(merged) > len(fresh.Emails) {
		fresh.Emails = merged
		updated = true
	}
	if merged := mergeValues(fresh.Phones, payload.Phones); len(merged) > len(fresh.Phones) {
		fresh.Phones = merged
		updated = true
	}
	if payload.CompanyName != "" && fresh.CompanyName == "" {
		fresh.CompanyName = payload.CompanyName
		updated = true
	}
	if payload.PhotoURL != "" && fresh.PhotoURL == "" {
		fresh.PhotoURL = payload.PhotoURL
		updated = true
	}

	if !updated {
		return false, nil
	}

	if err := db.UpdateContact(ci.db, fresh); err != nil {
		return false, err
	}

	ci.matcher.AddContact(fresh)
	return true, nil
}

// mergeValues appends incoming values not already present, compared
// case-insensitively. Existing entries keep their position and casing.
func mergeValues(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		seen[strings.ToLower(v)] = struct{}{}
	}

	merged := existing
	for _, v := range incoming {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, v)
	}
	return merged
}

// ImportContacts fetches all connections from the People API and
// imports them page by page.
func ImportContacts(database *sql.DB, client *people.Service) (*ImportResult, error) {
	fmt.Println("Syncing Google Contacts...")

	// Load existing contacts once for matching.
	allContacts, err := db.FindContacts(database, "", 20000)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing contacts: %w", err)
	}

	importer := NewContactsImporter(database)
	importer.matcher = NewContactMatcher(allContacts)

	result := &ImportResult{}
	pageToken := ""

	for {
		call := client.People.Connections.List("people/me").
			PageSize(1000).
			PersonFields("names,emailAddresses,phoneNumbers,organizations,photos")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Do()
		if err != nil {
			return result, fmt.Errorf("failed to fetch contacts: %w", err)
		}
		if response == nil || response.Connections == nil {
			break
		}

		for _, person := range response.Connections {
			gc := personToGoogleContact(person)
			if gc == nil {
				result.Skipped++
				continue
			}
			result.Fetched++

			created, updated, err := importer.ImportContact(gc)
			if err != nil {
				// Validation failures are expected for sparse Google
				// rows; count and move on.
				if validate.AsError(err) != nil {
					result.Skipped++
					continue
				}
				return result, err
			}
			if created {
				result.Created++
			}
			if updated {
				result.Updated++
			}
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	fmt.Printf("Imported %d contacts (%d new, %d updated, %d skipped)\n",
		result.Fetched, result.Created, result.Updated, result.Skipped)

	return result, nil
}

// personToGoogleContact flattens a People API person. Returns nil when
// the row has no usable name.
func personToGoogleContact(person *people.Person) *GoogleContact {
	if person == nil || len(person.Names) == 0 {
		return nil
	}

	gc := &GoogleContact{ResourceName: person.ResourceName}

	name := person.Names[0]
	gc.FirstName = name.GivenName
	gc.LastName = name.FamilyName
	if gc.FirstName == "" {
		gc.FirstName = name.DisplayName
	}
	if gc.FirstName == "" {
		return nil
	}

	for _, email := range person.EmailAddresses {
		if email.Value != "" {
			gc.Emails = append(gc.Emails, email.Value)
		}
	}
	for _, phone := range person.PhoneNumbers {
		if phone.Value != "" {
			gc.Phones = append(gc.Phones, phone.Value)
		}
	}
	if len(person.Organizations) > 0 {
		gc.Company = person.Organizations[0].Name
	}
	if len(person.Photos) > 0 {
		gc.PhotoURL = person.Photos[0].Url
	}

	return gc
}
