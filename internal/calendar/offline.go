package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Offline fabricates plausible Calendar data without touching the API.
type Offline struct {
	account string
}

// NewOffline creates an offline Calendar backend for the account.
func NewOffline(account string) *Offline {
	return &Offline{account: account}
}

// ListEvents returns fabricated events inside the requested window.
func (o *Offline) ListEvents(_ context.Context, calendarID string, timeMin, timeMax time.Time, _ string, maxResults int64) ([]Event, error) {
	n := int(maxResults)
	if n > 5 {
		n = 5
	}
	out := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		start := timeMin.Add(time.Duration(i+1) * time.Hour)
		if !start.Before(timeMax) {
			break
		}
		out = append(out, Event{
			ID:        uuid.NewString(),
			Summary:   fmt.Sprintf("Sample event %d", i+1),
			Start:     start,
			End:       start.Add(30 * time.Minute),
			Status:    "confirmed",
			Organizer: "organizer@example.com",
		})
	}
	return out, nil
}

// GetEvent returns a fabricated event.
func (o *Offline) GetEvent(_ context.Context, _, eventID string) (*Event, error) {
	now := time.Now()
	return &Event{
		ID:      eventID,
		Summary: "Sample event",
		Start:   now.Add(time.Hour),
		End:     now.Add(90 * time.Minute),
		Status:  "confirmed",
	}, nil
}

// CreateEvent echoes the input as a created event.
func (o *Offline) CreateEvent(_ context.Context, _ string, input EventInput) (*Event, error) {
	if input.Summary == "" {
		return nil, fmt.Errorf("event has no summary")
	}
	event := &Event{
		ID:          uuid.NewString(),
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
		Start:       input.Start,
		End:         input.End,
		Status:      "confirmed",
	}
	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, Attendee{Email: email, ResponseStatus: "needsAction"})
	}
	if input.AddMeet {
		event.MeetLink = "https://meet.google.com/" + uuid.NewString()[:12]
	}
	return event, nil
}

// UpdateEvent echoes the patch as the updated event.
func (o *Offline) UpdateEvent(ctx context.Context, calendarID, eventID string, input EventInput) (*Event, error) {
	event, _ := o.GetEvent(ctx, calendarID, eventID)
	if input.Summary != "" {
		event.Summary = input.Summary
	}
	if input.Description != "" {
		event.Description = input.Description
	}
	if input.Location != "" {
		event.Location = input.Location
	}
	if !input.Start.IsZero() {
		event.Start = input.Start
	}
	if !input.End.IsZero() {
		event.End = input.End
	}
	return event, nil
}

// DeleteEvent pretends to delete the event.
func (o *Offline) DeleteEvent(_ context.Context, _, _ string) error {
	return nil
}

// QuickAdd fabricates an event titled with the given text.
func (o *Offline) QuickAdd(_ context.Context, _ string, text string) (*Event, error) {
	start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	return &Event{
		ID:      uuid.NewString(),
		Summary: text,
		Start:   start,
		End:     start.Add(time.Hour),
		Status:  "confirmed",
	}, nil
}

// RespondToEvent echoes the RSVP.
func (o *Offline) RespondToEvent(ctx context.Context, calendarID, eventID, response string) (*Event, error) {
	event, _ := o.GetEvent(ctx, calendarID, eventID)
	event.Attendees = []Attendee{{
		Email:          o.account + "@example.com",
		ResponseStatus: response,
	}}
	return event, nil
}

// ListCalendars returns a primary calendar plus a shared one.
func (o *Offline) ListCalendars(_ context.Context) ([]CalendarInfo, error) {
	return []CalendarInfo{
		{ID: "primary", Summary: "Personal", TimeZone: "UTC", Primary: true, AccessRole: "owner"},
		{ID: uuid.NewString(), Summary: "Team", TimeZone: "UTC", AccessRole: "writer"},
	}, nil
}

// FindFreeSlots fabricates one busy block and derives the free windows
// around it.
func (o *Offline) FindFreeSlots(_ context.Context, _ []string, duration time.Duration, timeMin, timeMax time.Time, limit int) ([]FreeSlot, error) {
	busyStart := timeMin.Add(timeMax.Sub(timeMin) / 3)
	busy := []TimeRange{{Start: busyStart, End: busyStart.Add(time.Hour)}}
	return freeSlots(busy, duration, timeMin, timeMax, limit), nil
}
