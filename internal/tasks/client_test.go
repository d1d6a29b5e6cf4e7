package tasks

import (
	"context"
	"testing"
	"time"

	tasks "google.golang.org/api/tasks/v1"
)

func TestToTaskList(t *testing.T) {
	got := toTaskList(&tasks.TaskList{
		Id:      "list-1",
		Title:   "My Tasks",
		Updated: "2026-01-15T14:00:00Z",
	})

	if got.ID != "list-1" || got.Title != "My Tasks" {
		t.Errorf("unexpected task list: %+v", got)
	}
	if got.Updated.IsZero() || got.Updated.Day() != 15 {
		t.Errorf("updated not parsed: %v", got.Updated)
	}
}

func TestToTask(t *testing.T) {
	completed := "2026-01-16T10:00:00Z"
	got := toTask(&tasks.Task{
		Id:        "task-1",
		Title:     "Review report",
		Notes:     "Q1 numbers",
		Status:    "completed",
		Due:       "2026-01-16T00:00:00Z",
		Completed: &completed,
		Parent:    "task-0",
	})

	if got.Status != "completed" || got.Parent != "task-0" {
		t.Errorf("unexpected task: %+v", got)
	}
	if got.Due.IsZero() || got.Completed.Hour() != 10 {
		t.Errorf("timestamps not parsed: due=%v completed=%v", got.Due, got.Completed)
	}
}

func TestToTaskInvalidDue(t *testing.T) {
	got := toTask(&tasks.Task{Id: "t", Due: "soon"})
	if !got.Due.IsZero() {
		t.Error("invalid due date should leave zero time")
	}
}

func TestOfflineBackend(t *testing.T) {
	o := NewOffline("default")
	ctx := context.Background()

	lists, err := o.ListTaskLists(ctx)
	if err != nil || len(lists) == 0 {
		t.Fatalf("offline list failed: %v %v", lists, err)
	}

	created, err := o.CreateTask(ctx, lists[0].ID, TaskInput{
		Title: "Write summary",
		Due:   time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("offline create failed: %v", err)
	}
	if created.Status != "needsAction" {
		t.Errorf("new task status = %q, want needsAction", created.Status)
	}

	if _, err := o.CreateTask(ctx, lists[0].ID, TaskInput{}); err == nil {
		t.Error("offline create should require a title")
	}

	open, _ := o.ListTasks(ctx, lists[0].ID, false, time.Time{}, time.Time{})
	all, _ := o.ListTasks(ctx, lists[0].ID, true, time.Time{}, time.Time{})
	if len(all) <= len(open) {
		t.Error("showCompleted should include completed tasks")
	}

	done, err := o.CompleteTask(ctx, lists[0].ID, created.ID)
	if err != nil || done.Status != "completed" || done.Completed.IsZero() {
		t.Errorf("offline complete failed: %+v (%v)", done, err)
	}
}
