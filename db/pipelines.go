// ABOUTME: Pipeline and stage database operations
// ABOUTME: Handles pipeline creation with ordered stages in one transaction
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/models"
)

func CreatePipeline(db *sql.DB, pipeline *models.Pipeline) error {
	pipeline.ID = uuid.New()
	now := time.Now()
	pipeline.CreatedAt = now
	pipeline.UpdatedAt = now

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO pipelines (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, pipeline.ID.String(), pipeline.Name, pipeline.CreatedAt, pipeline.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range pipeline.Stages {
		stage := &pipeline.Stages[i]
		stage.ID = uuid.New()
		stage.PipelineID = pipeline.ID
		stage.Position = i

		_, err = tx.Exec(`
			INSERT INTO stages (id, pipeline_id, name, color, position)
			VALUES (?, ?, ?, ?, ?)
		`, stage.ID.String(), pipeline.ID.String(), stage.Name, stage.Color, stage.Position)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func GetPipeline(db *sql.DB, id uuid.UUID) (*models.Pipeline, error) {
	pipeline := &models.Pipeline{}

	err := db.QueryRow(`
		SELECT id, name, created_at, updated_at
		FROM pipelines WHERE id = ?
	`, id.String()).Scan(&pipeline.ID, &pipeline.Name, &pipeline.CreatedAt, &pipeline.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stages, err := getStages(db, id)
	if err != nil {
		return nil, err
	}
	pipeline.Stages = stages

	return pipeline, nil
}

func ListPipelines(db *sql.DB) ([]models.Pipeline, error) {
	rows, err := db.Query(`
		SELECT id, name, created_at, updated_at
		FROM pipelines
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pipelines []models.Pipeline
	for rows.Next() {
		var p models.Pipeline
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pipelines = append(pipelines, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range pipelines {
		stages, err := getStages(db, pipelines[i].ID)
		if err != nil {
			return nil, err
		}
		pipelines[i].Stages = stages
	}

	return pipelines, nil
}

func DeletePipeline(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM stages WHERE pipeline_id = ?`, id.String()); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM pipelines WHERE id = ?`, id.String()); err != nil {
		return err
	}

	return tx.Commit()
}

func getStages(db *sql.DB, pipelineID uuid.UUID) ([]models.Stage, error) {
	rows, err := db.Query(`
		SELECT id, pipeline_id, name, color, position
		FROM stages
		WHERE pipeline_id = ?
		ORDER BY position
	`, pipelineID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stages []models.Stage
	for rows.Next() {
		var s models.Stage
		var color sql.NullString
		if err := rows.Scan(&s.ID, &s.PipelineID, &s.Name, &color, &s.Position); err != nil {
			return nil, err
		}
		if color.Valid {
			s.Color = &color.String
		}
		stages = append(stages, s)
	}

	return stages, rows.Err()
}
