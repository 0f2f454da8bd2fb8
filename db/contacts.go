// ABOUTME: Contact database operations
// ABOUTME: Handles contact CRUD with JSON-encoded email and phone lists
package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/models"
)

func CreateContact(db *sql.DB, contact *models.Contact) error {
	contact.ID = uuid.New()
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	emails, err := json.Marshal(contact.Emails)
	if err != nil {
		return err
	}
	phones, err := json.Marshal(contact.Phones)
	if err != nil {
		return err
	}

	addr := contact.Address
	if addr == nil {
		addr = &models.Address{}
	}

	_, err = db.Exec(`
		INSERT INTO contacts (id, first_name, last_name, company_name, photo_url, emails, phones, street, city, state, postal_code, country, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID.String(), contact.FirstName, contact.LastName, contact.CompanyName, contact.PhotoURL,
		string(emails), string(phones), addr.Street, addr.City, addr.State, addr.PostalCode, addr.Country,
		contact.CreatedAt, contact.UpdatedAt)

	return err
}

func GetContact(db *sql.DB, id uuid.UUID) (*models.Contact, error) {
	row := db.QueryRow(`
		SELECT id, first_name, last_name, company_name, photo_url, emails, phones, street, city, state, postal_code, country, created_at, updated_at
		FROM contacts WHERE id = ?
	`, id.String())

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// FindContacts searches name, company, and email fields.
func FindContacts(db *sql.DB, query string, limit int) ([]models.Contact, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows *sql.Rows
	var err error

	if query != "" {
		pattern := "%" + query + "%"
		rows, err = db.Query(`
			SELECT id, first_name, last_name, company_name, photo_url, emails, phones, street, city, state, postal_code, country, created_at, updated_at
			FROM contacts
			WHERE first_name LIKE ? OR last_name LIKE ? OR company_name LIKE ? OR emails LIKE ?
			ORDER BY first_name, last_name
			LIMIT ?
		`, pattern, pattern, pattern, pattern, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, first_name, last_name, company_name, photo_url, emails, phones, street, city, state, postal_code, country, created_at, updated_at
			FROM contacts
			ORDER BY first_name, last_name
			LIMIT ?
		`, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}

	return contacts, rows.Err()
}

func UpdateContact(db *sql.DB, contact *models.Contact) error {
	contact.UpdatedAt = time.Now()

	emails, err := json.Marshal(contact.Emails)
	if err != nil {
		return err
	}
	phones, err := json.Marshal(contact.Phones)
	if err != nil {
		return err
	}

	addr := contact.Address
	if addr == nil {
		addr = &models.Address{}
	}

	_, err = db.Exec(`
		UPDATE contacts
		SET first_name = ?, last_name = ?, company_name = ?, photo_url = ?, emails = ?, phones = ?, street = ?, city = ?, state = ?, postal_code = ?, country = ?, updated_at = ?
		WHERE id = ?
	`, contact.FirstName, contact.LastName, contact.CompanyName, contact.PhotoURL,
		string(emails), string(phones), addr.Street, addr.City, addr.State, addr.PostalCode, addr.Country,
		contact.UpdatedAt, contact.ID.String())

	return err
}

func DeleteContact(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM contact_notes WHERE contact_id = ?`, id.String()); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM contacts WHERE id = ?`, id.String()); err != nil {
		return err
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*models.Contact, error) {
	contact := &models.Contact{}
	var lastName, companyName, photoURL sql.NullString
	var emailsJSON, phonesJSON string
	var street, city, state, postalCode, country sql.NullString

	err := row.Scan(
		&contact.ID,
		&contact.FirstName,
		&lastName,
		&companyName,
		&photoURL,
		&emailsJSON,
		&phonesJSON,
		&street,
		&city,
		&state,
		&postalCode,
		&country,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	contact.LastName = lastName.String
	contact.CompanyName = companyName.String
	contact.PhotoURL = photoURL.String

	if err := json.Unmarshal([]byte(emailsJSON), &contact.Emails); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(phonesJSON), &contact.Phones); err != nil {
		return nil, err
	}

	if street.String != "" || city.String != "" || state.String != "" || postalCode.String != "" || country.String != "" {
		contact.Address = &models.Address{
			Street:     street.String,
			City:       city.String,
			State:      state.String,
			PostalCode: postalCode.String,
			Country:    country.String,
		}
	}

	return contact, nil
}
