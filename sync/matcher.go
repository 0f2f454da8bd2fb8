// ABOUTME: Contact deduplication for the Google import
// ABOUTME: Finds existing contacts by any of their email addresses
package sync

import (
	"strings"

	"github.com/harperreed/dealflow/models"
)

type ContactMatcher struct {
	byEmail map[string]*models.Contact
}

// NewContactMatcher creates a matcher from existing contacts. Every
// email a contact carries is indexed, so an import matches on any of
// them.
func NewContactMatcher(contacts []models.Contact) *ContactMatcher {
	m := &ContactMatcher{
		byEmail: make(map[string]*models.Contact),
	}

	for i := range contacts {
		for _, email := range contacts[i].Emails {
			if key := normalizeEmail(email); key != "" {
				m.byEmail[key] = &contacts[i]
			}
		}
	}

	return m
}

// FindMatch looks for an existing contact sharing any of the given
// emails.
func (m *ContactMatcher) FindMatch(emails []string) (*models.Contact, bool) {
	for _, email := range emails {
		key := normalizeEmail(email)
		if key == "" {
			continue
		}
		if contact, found := m.byEmail[key]; found {
			return contact, true
		}
	}
	return nil, false
}

// AddContact indexes a newly created contact so later rows in the same
// import session do not duplicate it.
func (m *ContactMatcher) AddContact(contact *models.Contact) {
	for _, email := range contact.Emails {
		if key := normalizeEmail(email); key != "" {
			m.byEmail[key] = contact
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
