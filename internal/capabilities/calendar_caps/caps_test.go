package calendar_caps

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calverra/workdeck/internal/calendar"
	"github.com/calverra/workdeck/internal/capability"
)

type fakeBackend struct {
	calendar.Offline

	lastCreate calendar.EventInput
	lastList   struct {
		timeMin, timeMax time.Time
	}
}

func (f *fakeBackend) CreateEvent(ctx context.Context, calendarID string, input calendar.EventInput) (*calendar.Event, error) {
	f.lastCreate = input
	return f.Offline.CreateEvent(ctx, calendarID, input)
}

func (f *fakeBackend) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string, maxResults int64) ([]calendar.Event, error) {
	f.lastList.timeMin = timeMin
	f.lastList.timeMax = timeMax
	return f.Offline.ListEvents(ctx, calendarID, timeMin, timeMax, query, maxResults)
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

	d, ok := reg.Get("GOOGLECALENDAR_CREATE_EVENT")
	require.True(t, ok)
	assert.True(t, d.Mutating)

	d, ok = reg.Get("GOOGLECALENDAR_FIND_FREE_SLOTS")
	require.True(t, ok)
	assert.False(t, d.Mutating)
}

func TestCreateEventParsesTimes(t *testing.T) {
	b := &fakeBackend{}
	_, disp := newCatalog(t, b)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLECALENDAR_CREATE_EVENT",
		Input: map[string]any{
			"summary":   "Planning",
			"startTime": "2026-03-02T09:00:00Z",
			"endTime":   "2026-03-02T10:00:00Z",
			"attendees": []any{"a@example.com"},
			"addMeet":   true,
		},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	assert.Equal(t, "Planning", b.lastCreate.Summary)
	assert.Equal(t, 9, b.lastCreate.Start.Hour())
	assert.True(t, b.lastCreate.AddMeet)
	assert.Equal(t, []string{"a@example.com"}, b.lastCreate.Attendees)
}

func TestCreateEventRejectsBadTimestamp(t *testing.T) {
	_, disp := newCatalog(t, &fakeBackend{})

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLECALENDAR_CREATE_EVENT",
		Input: map[string]any{
			"summary":   "Planning",
			"startTime": "tomorrow at 9",
			"endTime":   "2026-03-02T10:00:00Z",
		},
	}, capability.Context{})

	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "RFC 3339")
}

func TestListEventsDefaultsToSevenDays(t *testing.T) {
	b := &fakeBackend{}
	_, disp := newCatalog(t, b)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLECALENDAR_LIST_EVENTS",
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	window := b.lastList.timeMax.Sub(b.lastList.timeMin)
	assert.InDelta(t, (7 * 24 * time.Hour).Hours(), window.Hours(), 1)
}

func TestRespondToEventValidatesEnum(t *testing.T) {
	_, disp := newCatalog(t, &fakeBackend{})

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLECALENDAR_RESPOND_TO_EVENT",
		Input: map[string]any{
			"eventId":  "e1",
			"response": "maybe",
		},
	}, capability.Context{})

	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "response")
}

func TestFindFreeSlots(t *testing.T) {
	_, disp := newCatalog(t, &fakeBackend{})

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug:  "GOOGLECALENDAR_FIND_FREE_SLOTS",
		Input: map[string]any{"durationMinutes": 45},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	data := res.Data.(map[string]any)
	assert.NotZero(t, data["count"])
}
