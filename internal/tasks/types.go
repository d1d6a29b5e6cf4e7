package tasks

import (
	"time"

	tasks "google.golang.org/api/tasks/v1"
)

// TaskList is one of the user's task lists.
type TaskList struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Updated time.Time `json:"updated,omitempty"`
}

// Task is a single task. Status is "needsAction" or "completed".
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"`
	Due       time.Time `json:"due,omitempty"`
	Completed time.Time `json:"completed,omitempty"`
	// Parent is set for subtasks.
	Parent   string `json:"parent,omitempty"`
	Position string `json:"position,omitempty"`
}

// TaskInput carries the fields for creating or updating a task. Zero values
// mean "leave unchanged" on update.
type TaskInput struct {
	Title  string
	Notes  string
	Status string
	Due    time.Time
	// Parent makes the new task a subtask.
	Parent string
	// Previous positions the task after this sibling.
	Previous string
}

func toTaskList(tl *tasks.TaskList) TaskList {
	out := TaskList{ID: tl.Id, Title: tl.Title}
	if t, err := time.Parse(time.RFC3339, tl.Updated); err == nil {
		out.Updated = t
	}
	return out
}

func toTask(t *tasks.Task) Task {
	out := Task{
		ID:       t.Id,
		Title:    t.Title,
		Notes:    t.Notes,
		Status:   t.Status,
		Parent:   t.Parent,
		Position: t.Position,
	}
	if t.Due != "" {
		if due, err := time.Parse(time.RFC3339, t.Due); err == nil {
			out.Due = due
		}
	}
	if t.Completed != nil && *t.Completed != "" {
		if completed, err := time.Parse(time.RFC3339, *t.Completed); err == nil {
			out.Completed = completed
		}
	}
	return out
}
