// ABOUTME: Deal database operations
// ABOUTME: Handles deal lifecycle including won/lost transitions
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/models"
)

func CreateDeal(db *sql.DB, deal *models.Deal) error {
	deal.ID = uuid.New()
	now := time.Now()
	deal.CreatedAt = now
	deal.UpdatedAt = now

	if deal.Status == "" {
		deal.Status = models.DealStatusOpen
	}

	_, err := db.Exec(`
		INSERT INTO deals (id, title, amount, owner_id, pipeline_id, stage_id, contact_id, status, lost_reason, expected_close_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, deal.ID.String(), deal.Title, deal.Amount, deal.OwnerID, deal.PipelineID.String(), deal.StageID.String(),
		deal.ContactID.String(), deal.Status, deal.LostReason, deal.ExpectedCloseDate, deal.CreatedAt, deal.UpdatedAt)

	return err
}

func GetDeal(db *sql.DB, id uuid.UUID) (*models.Deal, error) {
	deal := &models.Deal{}
	var amount sql.NullFloat64
	var lostReason sql.NullString
	var closeDate sql.NullTime

	err := db.QueryRow(`
		SELECT id, title, amount, owner_id, pipeline_id, stage_id, contact_id, status, lost_reason, expected_close_date, created_at, updated_at
		FROM deals WHERE id = ?
	`, id.String()).Scan(
		&deal.ID,
		&deal.Title,
		&amount,
		&deal.OwnerID,
		&deal.PipelineID,
		&deal.StageID,
		&deal.ContactID,
		&deal.Status,
		&lostReason,
		&closeDate,
		&deal.CreatedAt,
		&deal.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if amount.Valid {
		deal.Amount = &amount.Float64
	}
	deal.LostReason = lostReason.String
	if closeDate.Valid {
		deal.ExpectedCloseDate = &closeDate.Time
	}

	return deal, nil
}

func FindDeals(db *sql.DB, status string, pipelineID *uuid.UUID, limit int) ([]models.Deal, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, title, amount, owner_id, pipeline_id, stage_id, contact_id, status, lost_reason, expected_close_date, created_at, updated_at
		FROM deals`
	var args []interface{}

	switch {
	case status != "" && pipelineID != nil:
		query += ` WHERE status = ? AND pipeline_id = ?`
		args = append(args, status, pipelineID.String())
	case status != "":
		query += ` WHERE status = ?`
		args = append(args, status)
	case pipelineID != nil:
		query += ` WHERE pipeline_id = ?`
		args = append(args, pipelineID.String())
	}

	query += ` ORDER BY updated_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deals []models.Deal
	for rows.Next() {
		var d models.Deal
		var amount sql.NullFloat64
		var lostReason sql.NullString
		var closeDate sql.NullTime

		if err := rows.Scan(&d.ID, &d.Title, &amount, &d.OwnerID, &d.PipelineID, &d.StageID, &d.ContactID,
			&d.Status, &lostReason, &closeDate, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}

		if amount.Valid {
			d.Amount = &amount.Float64
		}
		d.LostReason = lostReason.String
		if closeDate.Valid {
			d.ExpectedCloseDate = &closeDate.Time
		}

		deals = append(deals, d)
	}

	return deals, rows.Err()
}

// MarkDealWon closes the deal as won.
func MarkDealWon(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`
		UPDATE deals SET status = ?, lost_reason = '', updated_at = ? WHERE id = ?
	`, models.DealStatusWon, time.Now(), id.String())
	return err
}

// MarkDealLost closes the deal as lost with the given reason.
func MarkDealLost(db *sql.DB, id uuid.UUID, reason string) error {
	_, err := db.Exec(`
		UPDATE deals SET status = ?, lost_reason = ?, updated_at = ? WHERE id = ?
	`, models.DealStatusLost, reason, time.Now(), id.String())
	return err
}

func UpdateDealStage(db *sql.DB, id, stageID uuid.UUID) error {
	_, err := db.Exec(`
		UPDATE deals SET stage_id = ?, updated_at = ? WHERE id = ?
	`, stageID.String(), time.Now(), id.String())
	return err
}

func DeleteDeal(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM deals WHERE id = ?`, id.String())
	return err
}
