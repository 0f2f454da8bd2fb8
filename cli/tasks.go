// ABOUTME: Task CLI commands
// ABOUTME: Commands for creating, listing, completing, and deleting tasks
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/harperreed/dealflow/db"
	"github.com/harperreed/dealflow/models"
	"github.com/harperreed/dealflow/validate"
)

// AddTaskCommand creates a new task.
func AddTaskCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-task", flag.ExitOnError)
	title := fs.String("title", "", "Task title (required)")
	description := fs.String("description", "", "Task description (required)")
	status := fs.String("status", models.TaskStatusPending, "Status (pending, in_progress, completed)")
	priority := fs.String("priority", models.TaskPriorityMedium, "Priority (low, medium, high)")
	dueDate := fs.String("due", "", "Due date as local date-time (YYYY-MM-DDTHH:MM)")
	_ = fs.Parse(args)

	payload, err := validate.Task(validate.TaskDraft{
		Title:       *title,
		Description: *description,
		Status:      *status,
		Priority:    *priority,
		DueDate:     *dueDate,
	})
	if err != nil {
		return err
	}

	due, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return fmt.Errorf("invalid due date: %w", err)
	}

	task := &models.Task{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Priority:    payload.Priority,
		DueDate:     due,
	}

	if err := db.CreateTask(database, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	fmt.Printf("Created task: %s (%s)\n", task.Title, task.ID)
	return nil
}

// ListTasksCommand lists tasks ordered by due date.
func ListTasksCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-tasks", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status")
	limit := fs.Int("limit", 50, "Max results")
	_ = fs.Parse(args)

	tasks, err := db.ListTasks(database, *status, *limit)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tOVERDUE")
	for _, task := range tasks {
		overdue := ""
		if task.IsOverdue() {
			overdue = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID, task.Title, task.Status, task.Priority,
			task.DueDate.Format("2006-01-02 15:04"), overdue)
	}
	return w.Flush()
}

// CompleteTaskCommand marks a task as completed.
func CompleteTaskCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("complete-task", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: complete-task <id>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	task, err := db.GetTask(database, id)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return fmt.Errorf("task not found")
	}

	if err := db.UpdateTaskStatus(database, id, models.TaskStatusCompleted); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	fmt.Printf("Completed task: %s\n", task.Title)
	return nil
}

// DeleteTaskCommand deletes a task.
func DeleteTaskCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-task", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: delete-task <id>")
	}

	id, err := parseID(fs.Arg(0))
	if err != nil {
		return err
	}

	if err := db.DeleteTask(database, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	fmt.Printf("Deleted task %s\n", id)
	return nil
}
