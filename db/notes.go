// ABOUTME: Contact note database operations
// ABOUTME: Serves the paged note feed consumed by the list accumulator
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/pagedlist"
)

const DefaultNotePageSize = 20

func AddContactNote(db *sql.DB, note *models.ContactNote) error {
	note.ID = uuid.New()
	note.CreatedAt = time.Now()

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO contact_notes (id, contact_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`, note.ID.String(), note.ContactID.String(), note.Content, note.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE contacts SET updated_at = ? WHERE id = ?
	`, note.CreatedAt, note.ContactID.String())
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ListContactNotes returns one page of a contact's notes, newest first,
// with the pagination marker the list accumulator reads. Pages are
// 1-based.
func ListContactNotes(db *sql.DB, contactID uuid.UUID, page, limit int) (pagedlist.Page[models.ContactNote], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultNotePageSize
	}

	var total int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM contact_notes WHERE contact_id = ?
	`, contactID.String()).Scan(&total)
	if err != nil {
		return pagedlist.Page[models.ContactNote]{}, err
	}

	offset := (page - 1) * limit
	rows, err := db.Query(`
		SELECT id, contact_id, content, created_at
		FROM contact_notes
		WHERE contact_id = ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, contactID.String(), limit, offset)
	if err != nil {
		return pagedlist.Page[models.ContactNote]{}, err
	}
	defer rows.Close()

	var notes []models.ContactNote
	for rows.Next() {
		var n models.ContactNote
		if err := rows.Scan(&n.ID, &n.ContactID, &n.Content, &n.CreatedAt); err != nil {
			return pagedlist.Page[models.ContactNote]{}, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return pagedlist.Page[models.ContactNote]{}, err
	}

	totalPages := (total + limit - 1) / limit

	return pagedlist.Page[models.ContactNote]{
		Items: notes,
		Pagination: pagedlist.PageInfo{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}, nil
}

// NoteFetcher adapts the paged note query to the accumulator's fetcher
// contract for one contact.
func NoteFetcher(db *sql.DB, contactID uuid.UUID, limit int) pagedlist.Fetcher[models.ContactNote] {
	return func(_ context.Context, page int) (pagedlist.Page[models.ContactNote], error) {
		return ListContactNotes(db, contactID, page, limit)
	}
}
