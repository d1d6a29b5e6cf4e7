package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Offline fabricates plausible Tasks data without touching the API.
type Offline struct {
	account string
}

// NewOffline creates an offline Tasks backend for the account.
func NewOffline(account string) *Offline {
	return &Offline{account: account}
}

// ListTaskLists returns a default list plus a project list.
func (o *Offline) ListTaskLists(_ context.Context) ([]TaskList, error) {
	return []TaskList{
		{ID: uuid.NewString(), Title: "My Tasks", Updated: time.Now()},
		{ID: uuid.NewString(), Title: "Project Ideas", Updated: time.Now().Add(-48 * time.Hour)},
	}, nil
}

// CreateTaskList fabricates a stored list.
func (o *Offline) CreateTaskList(_ context.Context, title string) (*TaskList, error) {
	if title == "" {
		return nil, fmt.Errorf("task list title is required")
	}
	return &TaskList{ID: uuid.NewString(), Title: title, Updated: time.Now()}, nil
}

// DeleteTaskList pretends to delete the list.
func (o *Offline) DeleteTaskList(_ context.Context, _ string) error {
	return nil
}

// ListTasks returns fabricated tasks.
func (o *Offline) ListTasks(_ context.Context, _ string, showCompleted bool, _, _ time.Time) ([]Task, error) {
	out := []Task{
		{ID: uuid.NewString(), Title: "Review quarterly report", Status: "needsAction",
			Due: time.Now().Add(24 * time.Hour)},
		{ID: uuid.NewString(), Title: "Book travel", Status: "needsAction",
			Due: time.Now().Add(72 * time.Hour)},
	}
	if showCompleted {
		out = append(out, Task{
			ID: uuid.NewString(), Title: "Send agenda", Status: "completed",
			Completed: time.Now().Add(-2 * time.Hour),
		})
	}
	return out, nil
}

// CreateTask echoes the input as a stored task.
func (o *Offline) CreateTask(_ context.Context, _ string, input TaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	status := input.Status
	if status == "" {
		status = "needsAction"
	}
	return &Task{
		ID:     uuid.NewString(),
		Title:  input.Title,
		Notes:  input.Notes,
		Status: status,
		Due:    input.Due,
		Parent: input.Parent,
	}, nil
}

// UpdateTask echoes the patch as the updated task.
func (o *Offline) UpdateTask(_ context.Context, _, taskID string, input TaskInput) (*Task, error) {
	task := Task{ID: taskID, Title: "Sample task", Status: "needsAction"}
	if input.Title != "" {
		task.Title = input.Title
	}
	if input.Notes != "" {
		task.Notes = input.Notes
	}
	if input.Status != "" {
		task.Status = input.Status
	}
	if !input.Due.IsZero() {
		task.Due = input.Due
	}
	return &task, nil
}

// CompleteTask fabricates a completed task.
func (o *Offline) CompleteTask(_ context.Context, _, taskID string) (*Task, error) {
	return &Task{
		ID:        taskID,
		Title:     "Sample task",
		Status:    "completed",
		Completed: time.Now(),
	}, nil
}

// DeleteTask pretends to delete the task.
func (o *Offline) DeleteTask(_ context.Context, _, _ string) error {
	return nil
}

// MoveTask echoes the new position.
func (o *Offline) MoveTask(_ context.Context, _, taskID, parent, _ string) (*Task, error) {
	return &Task{
		ID:     taskID,
		Title:  "Sample task",
		Status: "needsAction",
		Parent: parent,
	}, nil
}
