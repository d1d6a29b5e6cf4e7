package tasks_caps

import (
	"context"
	"fmt"
	"time"

	"github.com/calverra/workdeck/internal/capability"
	"github.com/calverra/workdeck/internal/tasks"
)

// Backend is the Tasks surface the executors run against. Implemented by
// tasks.Client (live) and tasks.Offline (synthesized).
type Backend interface {
	ListTaskLists(ctx context.Context) ([]tasks.TaskList, error)
	CreateTaskList(ctx context.Context, title string) (*tasks.TaskList, error)
	DeleteTaskList(ctx context.Context, taskListID string) error
	ListTasks(ctx context.Context, taskListID string, showCompleted bool, dueMin, dueMax time.Time) ([]tasks.Task, error)
	CreateTask(ctx context.Context, taskListID string, input tasks.TaskInput) (*tasks.Task, error)
	UpdateTask(ctx context.Context, taskListID, taskID string, input tasks.TaskInput) (*tasks.Task, error)
	CompleteTask(ctx context.Context, taskListID, taskID string) (*tasks.Task, error)
	DeleteTask(ctx context.Context, taskListID, taskID string) error
	MoveTask(ctx context.Context, taskListID, taskID, parent, previous string) (*tasks.Task, error)
}

// Provider resolves the backend for an account at dispatch time.
type Provider func(ctx context.Context, account string) (Backend, error)

func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

func taskListField() capability.Field {
	return capability.String("taskListId", capability.Default("@default"),
		capability.Description("Task list ID, '@default' for the user's default list"))
}

// Register declares all Tasks capabilities against reg.
func Register(reg *capability.Registry, p Provider) error {
	return reg.RegisterAll(
		listTaskLists(p),
		createTaskList(p),
		deleteTaskList(p),
		listTasks(p),
		createTask(p),
		updateTask(p),
		completeTask(p),
		deleteTask(p),
		moveTask(p),
	)
}

func dueArg(input map[string]any, name string) (time.Time, error) {
	s := capability.StringArg(input, name, "")
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %s is not an RFC 3339 timestamp: %w", name, err)
	}
	return t, nil
}

func listTaskLists(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLETASKS_LIST_TASKLISTS",
		Name:        "List Task Lists",
		Description: "List the user's task lists.",
		Schema:      capability.NewSchema(accountField()),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			lists, err := b.ListTaskLists(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"taskLists": lists, "count": len(lists)}, nil
		},
	}
}

func createTaskList(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLETASKS_CREATE_TASKLIST",
		Name:        "Create Task List",
		Description: "Create a new task list.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("title", capability.Required(),
				capability.Description("Task list title")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.CreateTaskList(ctx, capability.StringArg(input, "title", ""))
		},
	}
}

func deleteTaskList(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLETASKS_DELETE_TASKLIST",
		Name:        "Delete Task List",
		Description: "Delete a task list and all tasks in it.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("taskListId", capability.Required(),
				capability.Description("The task list to delete")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			id := capability.StringArg(input, "taskListId", "")
			if err := b.DeleteTaskList(ctx, id); err != nil {
				return nil, err
			}
			return map[string]any{"taskListId": id, "deleted": true}, nil
		},
	}
}

func listTasks(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLETASKS_LIST_TASKS",
		Name:        "List Tasks",
		Description: "List tasks in a task list, optionally including completed ones and filtered by due date.",
		Schema: capability.NewSchema(
			accountField(),
			taskListField(),
			capability.Boolean("showCompleted", capability.Default(false),
				capability.Description("Include completed tasks")),
			capability.String("dueMin",
				capability.Description("Only tasks due after this RFC 3339 time")),
			capability.String("dueMax",
				capability.Description("Only tasks due before this RFC 3339 time")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			dueMin, err := dueArg(input, "dueMin")
			if err != nil {
				return nil, err
			}
			dueMax, err := dueArg(input, "dueMax")
			if err != nil {
				return nil, err
			}
			items, err := b.ListTasks(ctx,
				capability.StringArg(input, "taskListId", "@default"),
				capability.BoolArg(input, "showCompleted", false),
				dueMin, dueMax)
			if err != nil {
				return nil, err
			}
			return map[string]any{"tasks": items, "count": len(items)}, nil
		},
	}
}

func taskInputFromInput(input map[string]any) (tasks.TaskInput, error) {
	due, err := dueArg(input, "due")
	if err != nil {
		return tasks.TaskInput{}, err
	}
	return tasks.TaskInput{
		Title:    capability.StringArg(input, "title", ""),
		Notes:    capability.StringArg(input, "notes", ""),
		Status:   capability.StringArg(input, "status", ""),
		Due:      due,
		Parent:   capability.StringArg(input, "parent", ""),
		Previous: capability.StringArg(input, "previous", ""),
	}, nil
}

func createTask(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLETASKS_CREATE_TASK",
		Name:        "Create Task",
		Description: "Create a task, optionally as a subtask of another task.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			taskListField(),
			capability.String("title", capability.Required(),
				capability.Description("Task title")),
			capability.String("notes",
				capability.Description("Free-form notes")),
			capability.String("due",
				capability.Description("Due time, RFC 3339")),
			capability.String("parent",
				capability.Description("Parent task ID to create a subtask")),
			capability.String("previous",
				capability.Description("Sibling task ID to position after")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			in, err := taskInputFromInput(input)
			if err != nil {
				return nil, err
			}
			return b.CreateTask(ctx, capability.StringArg(input, "taskListId", "@default"), in)
		},
	}
}

func updateTask(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLETASKS_UPDATE_TASK",
		Name:        "Update Task",
		Description: "Update fields of an existing task. Omitted fields are left unchanged.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			taskListField(),
			capability.String("taskId", capability.Required(),
				capability.Description("The task to update")),
			capability.String("title", capability.Description("New title")),
			capability.String("notes", capability.Description("New notes")),
			capability.Enum("status", []string{"needsAction", "completed"},
				capability.Description("New status")),
			capability.String("due", capability.Description("New due time, RFC 3339")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			in, err := taskInputFromInput(input)
			if err != nil {
				return nil, err
			}
			return b.UpdateTask(ctx,
				capability.StringArg(input, "taskListId", "@default"),
				capability.StringArg(input, "taskId", ""), in)
		},
	}
}

func completeTask(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLETASKS_COMPLETE_TASK",
		Name:        "Complete Task",
		Description: "Mark a task as completed.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			taskListField(),
			capability.String("taskId", capability.Required(),
				capability.Description("The task to complete")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.CompleteTask(ctx,
				capability.StringArg(input, "taskListId", "@default"),
				capability.StringArg(input, "taskId", ""))
		},
	}
}

func deleteTask(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLETASKS_DELETE_TASK",
		Name:        "Delete Task",
		Description: "Delete a task.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			taskListField(),
			capability.String("taskId", capability.Required(),
				capability.Description("The task to delete")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			taskID := capability.StringArg(input, "taskId", "")
			if err := b.DeleteTask(ctx, capability.StringArg(input, "taskListId", "@default"), taskID); err != nil {
				return nil, err
			}
			return map[string]any{"taskId": taskID, "deleted": true}, nil
		},
	}
}

func moveTask(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLETASKS_MOVE_TASK",
		Name:        "Move Task",
		Description: "Reposition a task under a parent task and/or after a sibling.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			taskListField(),
			capability.String("taskId", capability.Required(),
				capability.Description("The task to move")),
			capability.String("parent",
				capability.Description("New parent task ID; top level when omitted")),
			capability.String("previous",
				capability.Description("Sibling task ID to position after")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.MoveTask(ctx,
				capability.StringArg(input, "taskListId", "@default"),
				capability.StringArg(input, "taskId", ""),
				capability.StringArg(input, "parent", ""),
				capability.StringArg(input, "previous", ""))
		},
	}
}
