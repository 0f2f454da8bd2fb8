// ABOUTME: Task MCP tool handlers
// ABOUTME: Implements create_task, list_tasks, complete_task, and delete_task tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/validate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type TaskHandlers struct {
	db *sql.DB
}

func NewTaskHandlers(database *sql.DB) *TaskHandlers {
	return &TaskHandlers{db: database}
}

type CreateTaskInput struct {
	Title       string `json:"title" jsonschema:"Task title (required)"`
	Description string `json:"description" jsonschema:"Task description (required)"`
	Status      string `json:"status" jsonschema:"Task status: pending, in_progress, or completed"`
	Priority    string `json:"priority" jsonschema:"Task priority: low, medium, or high"`
	DueDate     string `json:"due_date" jsonschema:"Due date as local date-time (YYYY-MM-DDTHH:MM)"`
}

type TaskOutput struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     string  `json:"due_date"`
	AssignedTo  *string `json:"assigned_to"`
	Overdue     bool    `json:"overdue"`
}

func (h *TaskHandlers) CreateTask(_ context.Context, request *mcp.CallToolRequest, input CreateTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	payload, err := validate.Task(validate.TaskDraft{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return nil, TaskOutput{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid due_date: %w", err)
	}

	task := &models.Task{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Priority:    payload.Priority,
		DueDate:     dueDate,
	}

	if err := db.CreateTask(h.db, task); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}

	return nil, taskToOutput(task), nil
}

type ListTasksInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by status (pending, in_progress, completed)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type ListTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
}

func (h *TaskHandlers) ListTasks(_ context.Context, request *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	tasks, err := db.ListTasks(h.db, input.Status, limit)
	if err != nil {
		return nil, ListTasksOutput{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	result := make([]TaskOutput, len(tasks))
	for i, task := range tasks {
		result[i] = taskToOutput(&task)
	}

	return nil, ListTasksOutput{Tasks: result}, nil
}

type CompleteTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID (required)"`
}

func (h *TaskHandlers) CompleteTask(_ context.Context, request *mcp.CallToolRequest, input CompleteTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, TaskOutput{}, err
	}

	task, err := db.GetTask(h.db, id)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, TaskOutput{}, fmt.Errorf("task not found")
	}

	if err := db.UpdateTaskStatus(h.db, id, models.TaskStatusCompleted); err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to complete task: %w", err)
	}

	task.Status = models.TaskStatusCompleted
	return nil, taskToOutput(task), nil
}

type DeleteTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID (required)"`
}

func (h *TaskHandlers) DeleteTask(_ context.Context, request *mcp.CallToolRequest, input DeleteTaskInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseEntityID(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	if err := db.DeleteTask(h.db, id); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete task: %w", err)
	}

	return nil, DeleteOutput{Deleted: true}, nil
}

func taskToOutput(task *models.Task) TaskOutput {
	out := TaskOutput{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate.UTC().Format(time.RFC3339),
		Overdue:     task.IsOverdue(),
	}
	if task.AssignedTo != nil {
		s := task.AssignedTo.String()
		out.AssignedTo = &s
	}
	return out
}
