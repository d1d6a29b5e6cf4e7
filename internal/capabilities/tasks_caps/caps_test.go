package tasks_caps

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calverra/workdeck/internal/capability"
	"github.com/calverra/workdeck/internal/tasks"
)

type fakeBackend struct {
	tasks.Offline

	lastCreate tasks.TaskInput
	lastListID string
}

func (f *fakeBackend) CreateTask(ctx context.Context, taskListID string, input tasks.TaskInput) (*tasks.Task, error) {
	f.lastListID = taskListID
	f.lastCreate = input
	return f.Offline.CreateTask(ctx, taskListID, input)
}

func newCatalog(t *testing.T, b Backend) (*capability.Registry, *capability.Dispatcher) {
	t.Helper()
	reg := capability.NewRegistry()
	require.NoError(t, Register(reg, func(context.Context, string) (Backend, error) {
		return b, nil
	}))
	return reg, capability.NewDispatcher(reg)
}

func TestRegisterDeclaresCatalog(t *testing.T) {
	reg, _ := newCatalog(t, &fakeBackend{})
	assert.Len(t, reg.Slugs(), 9)

	d, ok := reg.Get("GOOGLETASKS_COMPLETE_TASK")
	require.True(t, ok)
	assert.True(t, d.Mutating)

	d, ok = reg.Get("GOOGLETASKS_LIST_TASKS")
	require.True(t, ok)
	assert.False(t, d.Mutating)
}

func TestCreateTaskDefaultsToDefaultList(t *testing.T) {
	b := &fakeBackend{}
	_, disp := newCatalog(t, b)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLETASKS_CREATE_TASK",
		Input: map[string]any{
			"title": "Write summary",
			"due":   "2026-03-05T00:00:00Z",
		},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	assert.Equal(t, "@default", b.lastListID)
	assert.Equal(t, "Write summary", b.lastCreate.Title)
	assert.Equal(t, time.March, b.lastCreate.Due.Month())
}

func TestCreateTaskRejectsBadDue(t *testing.T) {
	_, disp := newCatalog(t, &fakeBackend{})

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLETASKS_CREATE_TASK",
		Input: map[string]any{
			"title": "Write summary",
			"due":   "next tuesday",
		},
	}, capability.Context{})

	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "RFC 3339")
}

func TestUpdateTaskValidatesStatus(t *testing.T) {
	_, disp := newCatalog(t, &fakeBackend{})

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLETASKS_UPDATE_TASK",
		Input: map[string]any{
			"taskId": "t1",
			"status": "done",
		},
	}, capability.Context{})

	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "status")
}

func TestCompleteTask(t *testing.T) {
	_, disp := newCatalog(t, &fakeBackend{})

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug:  "GOOGLETASKS_COMPLETE_TASK",
		Input: map[string]any{"taskId": "t1"},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	task := res.Data.(*tasks.Task)
	assert.Equal(t, "completed", task.Status)
}
