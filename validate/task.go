// ABOUTME: Task form validation and normalization
// ABOUTME: Enforces status and priority membership and converts due dates to UTC instants
package validate

import (
	"fmt"
	"strings"

	"github.com/harperreed/dealflow/models"
)

// Task limits.
const (
	maxTaskTitleLen       = 120
	maxTaskDescriptionLen = 2000
)

// TaskDraft holds raw task form fields. DueDate arrives as a
// timezone-naive date-time string from the datetime-local input.
type TaskDraft struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
}

// TaskPayload is the normalized creation payload. AssignedTo is always
// serialized as explicit null: there is no assignment UI yet, so the
// flow forces the unassigned marker regardless of input.
type TaskPayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     string  `json:"dueDate"`
	AssignedTo  *string `json:"assignedTo"`
}

// Task validates and normalizes a task draft.
func Task(d TaskDraft) (*TaskPayload, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return nil, errRequired("title", "Title is required.")
	}
	if len(title) > maxTaskTitleLen {
		return nil, errTooLong("title", fmt.Sprintf("Title must be %d characters or less.", maxTaskTitleLen))
	}

	description := strings.TrimSpace(d.Description)
	if description == "" {
		return nil, errRequired("description", "Description is required.")
	}
	if len(description) > maxTaskDescriptionLen {
		return nil, errTooLong("description", fmt.Sprintf("Description must be %d characters or less.", maxTaskDescriptionLen))
	}

	status := strings.TrimSpace(d.Status)
	if !isValidTaskStatus(status) {
		return nil, errInvalidFormat("status", fmt.Sprintf("Status must be one of: %s, %s, %s.", models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted))
	}

	priority := strings.TrimSpace(d.Priority)
	if !isValidTaskPriority(priority) {
		return nil, errInvalidFormat("priority", fmt.Sprintf("Priority must be one of: %s, %s, %s.", models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh))
	}

	dueDateRaw := strings.TrimSpace(d.DueDate)
	if dueDateRaw == "" {
		return nil, errRequired("dueDate", "Due date is required.")
	}
	dueDate, err := LocalDateTimeToIso(dueDateRaw)
	if err != nil {
		return nil, err
	}

	return &TaskPayload{
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		AssignedTo:  nil,
	}, nil
}

func isValidTaskStatus(status string) bool {
	switch status {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted:
		return true
	}
	return false
}

func isValidTaskPriority(priority string) bool {
	switch priority {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		return true
	}
	return false
}
