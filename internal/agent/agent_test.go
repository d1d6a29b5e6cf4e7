package agent

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calverra/workdeck/internal/capability"
)

// capturingDispatcher registers a pass-through descriptor per slug the agent
// methods target and records the validated input each one receives.
func capturingDispatcher(t *testing.T, captured map[string]map[string]any) *capability.Dispatcher {
	t.Helper()
	reg := capability.NewRegistry()
	slugs := []string{
		"GMAIL_SEND_EMAIL",
		"GMAIL_CREATE_DRAFT",
		"GOOGLECALENDAR_CREATE_EVENT",
		"GOOGLECALENDAR_LIST_EVENTS",
		"GOOGLEDRIVE_UPLOAD_FILE",
		"GOOGLEDRIVE_SHARE_FILE",
		"GOOGLEDOCS_CREATE_DOCUMENT",
		"GOOGLESHEETS_APPEND_ROWS",
		"GOOGLETASKS_CREATE_TASK",
		"GOOGLESEARCH_SEARCH_WORKSPACE",
	}
	for _, slug := range slugs {
		slug := slug
		require.NoError(t, reg.Register(capability.Descriptor{
			Slug:        slug,
			Name:        slug,
			Description: "capture",
			Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
				captured[slug] = input
				return map[string]any{"ok": true}, nil
			},
		}))
	}
	return capability.NewDispatcher(reg)
}

func TestSendEmailMapsFields(t *testing.T) {
	captured := map[string]map[string]any{}
	a, err := New(capturingDispatcher(t, captured))
	require.NoError(t, err)

	_, err = a.SendEmail(context.Background(), []string{"x@example.com"}, "Hi", "Body")
	require.NoError(t, err)

	input := captured["GMAIL_SEND_EMAIL"]
	assert.Equal(t, []any{"x@example.com"}, input["to"])
	assert.Equal(t, "Hi", input["subject"])
	assert.Equal(t, "Body", input["body"])
}

func TestCreateEventFormatsTimes(t *testing.T) {
	captured := map[string]map[string]any{}
	a, err := New(capturingDispatcher(t, captured))
	require.NoError(t, err)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err = a.CreateEvent(context.Background(), "Standup", start, start.Add(30*time.Minute), nil)
	require.NoError(t, err)

	input := captured["GOOGLECALENDAR_CREATE_EVENT"]
	assert.Equal(t, "2026-03-01T09:00:00Z", input["startTime"])
	assert.Equal(t, "2026-03-01T09:30:00Z", input["endTime"])
	_, hasAttendees := input["attendees"]
	assert.False(t, hasAttendees, "empty attendee list should be omitted")
}

func TestUploadFileEncodesContent(t *testing.T) {
	captured := map[string]map[string]any{}
	a, err := New(capturingDispatcher(t, captured))
	require.NoError(t, err)

	_, err = a.UploadFile(context.Background(), "notes.txt", []byte("hello"), "text/plain")
	require.NoError(t, err)

	input := captured["GOOGLEDRIVE_UPLOAD_FILE"]
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("hello")), input["content"])
	assert.Equal(t, "text/plain", input["mimeType"])
}

func TestShareFileDefaultsToUserGrant(t *testing.T) {
	captured := map[string]map[string]any{}
	a, err := New(capturingDispatcher(t, captured))
	require.NoError(t, err)

	_, err = a.ShareFile(context.Background(), "file-1", "x@example.com", "writer")
	require.NoError(t, err)

	input := captured["GOOGLEDRIVE_SHARE_FILE"]
	assert.Equal(t, "user", input["type"])
	assert.Equal(t, "writer", input["role"])
	assert.Equal(t, "x@example.com", input["emailAddress"])
}

func TestAppendSheetRowsNestsValues(t *testing.T) {
	captured := map[string]map[string]any{}
	a, err := New(capturingDispatcher(t, captured))
	require.NoError(t, err)

	_, err = a.AppendSheetRows(context.Background(), "sheet-1", "Data", [][]string{{"a", "b"}, {"c", "d"}})
	require.NoError(t, err)

	input := captured["GOOGLESHEETS_APPEND_ROWS"]
	assert.Equal(t, []any{[]any{"a", "b"}, []any{"c", "d"}}, input["values"])
	assert.Equal(t, "Data", input["range"])
}

func TestCreateTaskOmitsZeroDue(t *testing.T) {
	captured := map[string]map[string]any{}
	a, err := New(capturingDispatcher(t, captured))
	require.NoError(t, err)

	_, err = a.CreateTask(context.Background(), "Review PR", time.Time{})
	require.NoError(t, err)

	_, hasDue := captured["GOOGLETASKS_CREATE_TASK"]["due"]
	assert.False(t, hasDue)
}

func TestExecuteWrapsFailureWithSlug(t *testing.T) {
	reg := capability.NewRegistry()
	require.NoError(t, reg.Register(capability.Descriptor{
		Slug:        "BROKEN",
		Name:        "Broken",
		Description: "always fails",
		Execute: func(context.Context, map[string]any, capability.Context) (any, error) {
			return nil, errors.New("boom")
		},
	}))
	a, err := New(capability.NewDispatcher(reg))
	require.NoError(t, err)

	_, err = a.Execute(context.Background(), "BROKEN", nil)
	require.Error(t, err)
	assert.Equal(t, "BROKEN: boom", err.Error())
}

func TestAgentAccountFlowsIntoContext(t *testing.T) {
	var seen string
	reg := capability.NewRegistry()
	require.NoError(t, reg.Register(capability.Descriptor{
		Slug:        "WHOAMI",
		Name:        "Whoami",
		Description: "report account",
		Execute: func(_ context.Context, _ map[string]any, ec capability.Context) (any, error) {
			seen = ec.Account
			return nil, nil
		},
	}))
	a, err := New(capability.NewDispatcher(reg), WithAccount("work"))
	require.NoError(t, err)

	_, err = a.Execute(context.Background(), "WHOAMI", nil)
	require.NoError(t, err)
	assert.Equal(t, "work", seen)
}

func TestPlanRequiresPlanner(t *testing.T) {
	a, err := New(capability.NewDispatcher(capability.NewRegistry()))
	require.NoError(t, err)

	_, err = a.Plan(context.Background(), "do something")
	assert.Error(t, err)
}
