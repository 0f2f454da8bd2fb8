// ABOUTME: Task database operations
// ABOUTME: Handles task CRUD and status updates
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealflow/models"
)

func CreateTask(db *sql.DB, task *models.Task) error {
	task.ID = uuid.New()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	var assignedTo *string
	if task.AssignedTo != nil {
		s := task.AssignedTo.String()
		assignedTo = &s
	}

	_, err := db.Exec(`
		INSERT INTO tasks (id, title, description, status, priority, due_date, assigned_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID.String(), task.Title, task.Description, task.Status, task.Priority, task.DueDate, assignedTo,
		task.CreatedAt, task.UpdatedAt)

	return err
}

func GetTask(db *sql.DB, id uuid.UUID) (*models.Task, error) {
	task := &models.Task{}
	var assignedTo sql.NullString

	err := db.QueryRow(`
		SELECT id, title, description, status, priority, due_date, assigned_to, created_at, updated_at
		FROM tasks WHERE id = ?
	`, id.String()).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&assignedTo,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if assignedTo.Valid {
		if aid, perr := uuid.Parse(assignedTo.String); perr == nil {
			task.AssignedTo = &aid
		}
	}

	return task, nil
}

func ListTasks(db *sql.DB, status string, limit int) ([]models.Task, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows *sql.Rows
	var err error

	if status != "" {
		rows, err = db.Query(`
			SELECT id, title, description, status, priority, due_date, assigned_to, created_at, updated_at
			FROM tasks
			WHERE status = ?
			ORDER BY due_date
			LIMIT ?
		`, status, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, title, description, status, priority, due_date, assigned_to, created_at, updated_at
			FROM tasks
			ORDER BY due_date
			LIMIT ?
		`, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var assignedTo sql.NullString

		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate, &assignedTo,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}

		if assignedTo.Valid {
			if aid, perr := uuid.Parse(assignedTo.String); perr == nil {
				t.AssignedTo = &aid
			}
		}

		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func UpdateTaskStatus(db *sql.DB, id uuid.UUID, status string) error {
	_, err := db.Exec(`
		UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now(), id.String())
	return err
}

func DeleteTask(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id.String())
	return err
}
