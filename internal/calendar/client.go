package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/calverra/workdeck/internal/google"
)

// Client wraps the Google Calendar service for one account.
type Client struct {
	svc     *calendar.Service
	account string
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccount creates a Calendar client authenticated for the
// account.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	httpClient, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{svc: svc, account: account}, nil
}

// ListEvents lists events in a calendar within a time range, expanded to
// single instances and ordered by start time.
func (c *Client) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string, maxResults int64) ([]Event, error) {
	call := c.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults)
	if query != "" {
		call = call.Q(query)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, toEvent(item))
	}
	return events, nil
}

// GetEvent retrieves one event by ID.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error) {
	event, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}
	out := toEvent(event)
	return &out, nil
}

// CreateEvent creates a new event.
func (c *Client) CreateEvent(ctx context.Context, calendarID string, input EventInput) (*Event, error) {
	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Location:    input.Location,
	}
	setEventTimes(event, input)

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}
	if len(input.Recurrence) > 0 {
		event.Recurrence = input.Recurrence
	}

	call := c.svc.Events.Insert(calendarID, event)
	if input.AddMeet {
		call = call.ConferenceDataVersion(1)
		event.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: fmt.Sprintf("meet-%d", time.Now().UnixNano()),
			},
		}
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	out := toEvent(created)
	return &out, nil
}

// setEventTimes fills Start and End, using Date for all-day events and
// DateTime otherwise.
func setEventTimes(event *calendar.Event, input EventInput) {
	if input.AllDay {
		event.Start = &calendar.EventDateTime{Date: input.Start.Format("2006-01-02")}
		event.End = &calendar.EventDateTime{Date: input.End.Format("2006-01-02")}
		return
	}
	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}
	event.Start = &calendar.EventDateTime{DateTime: input.Start.Format(time.RFC3339), TimeZone: tz}
	event.End = &calendar.EventDateTime{DateTime: input.End.Format(time.RFC3339), TimeZone: tz}
}

// UpdateEvent patches an existing event with the non-zero fields of input.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, input EventInput) (*Event, error) {
	existing, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing event %s: %w", eventID, err)
	}

	if input.Summary != "" {
		existing.Summary = input.Summary
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if input.Location != "" {
		existing.Location = input.Location
	}
	if !input.Start.IsZero() || !input.End.IsZero() {
		setEventTimes(existing, input)
	}
	if len(input.Attendees) > 0 {
		existing.Attendees = existing.Attendees[:0]
		for _, email := range input.Attendees {
			existing.Attendees = append(existing.Attendees, &calendar.EventAttendee{Email: email})
		}
	}
	if len(input.Recurrence) > 0 {
		existing.Recurrence = input.Recurrence
	}

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", eventID, err)
	}
	out := toEvent(updated)
	return &out, nil
}

// DeleteEvent deletes an event.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if err := c.svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}

// QuickAdd creates an event from natural language text, e.g.
// "Lunch with Sam tomorrow at noon".
func (c *Client) QuickAdd(ctx context.Context, calendarID, text string) (*Event, error) {
	created, err := c.svc.Events.QuickAdd(calendarID, text).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to quick-add event: %w", err)
	}
	out := toEvent(created)
	return &out, nil
}

// RespondToEvent records the user's RSVP on an event. response is
// "accepted", "declined" or "tentative".
func (c *Client) RespondToEvent(ctx context.Context, calendarID, eventID, response string) (*Event, error) {
	existing, err := c.svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", eventID, err)
	}

	found := false
	for _, att := range existing.Attendees {
		if att.Self {
			att.ResponseStatus = response
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("user is not an attendee of event %s", eventID)
	}

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to respond to event %s: %w", eventID, err)
	}
	out := toEvent(updated)
	return &out, nil
}

// ListCalendars lists all calendars accessible to the user.
func (c *Client) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	res, err := c.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	calendars := make([]CalendarInfo, 0, len(res.Items))
	for _, entry := range res.Items {
		calendars = append(calendars, toCalendarInfo(entry))
	}
	return calendars, nil
}

// queryBusy collects the merged busy intervals of the given calendars.
func (c *Client) queryBusy(ctx context.Context, timeMin, timeMax time.Time, calendarIDs []string) ([]TimeRange, error) {
	items := make([]*calendar.FreeBusyRequestItem, len(calendarIDs))
	for i, id := range calendarIDs {
		items[i] = &calendar.FreeBusyRequestItem{Id: id}
	}

	res, err := c.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   items,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to query freebusy: %w", err)
	}

	var busy []TimeRange
	for _, cal := range res.Calendars {
		for _, interval := range cal.Busy {
			start, err := time.Parse(time.RFC3339, interval.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, interval.End)
			if err != nil {
				continue
			}
			busy = append(busy, TimeRange{Start: start, End: end})
		}
	}
	return busy, nil
}

// FindFreeSlots returns windows of the given duration inside
// [timeMin, timeMax) in which all calendars are free.
func (c *Client) FindFreeSlots(ctx context.Context, calendarIDs []string, duration time.Duration, timeMin, timeMax time.Time, limit int) ([]FreeSlot, error) {
	busy, err := c.queryBusy(ctx, timeMin, timeMax, calendarIDs)
	if err != nil {
		return nil, err
	}
	return freeSlots(busy, duration, timeMin, timeMax, limit), nil
}

// freeSlots finds gaps of at least duration between the merged busy
// intervals.
func freeSlots(busy []TimeRange, duration time.Duration, timeMin, timeMax time.Time, limit int) []FreeSlot {
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })

	var slots []FreeSlot
	cursor := timeMin
	for _, interval := range busy {
		if interval.Start.After(cursor) && interval.Start.Sub(cursor) >= duration {
			slots = append(slots, FreeSlot{Start: cursor, End: interval.Start})
		}
		if interval.End.After(cursor) {
			cursor = interval.End
		}
	}
	if timeMax.Sub(cursor) >= duration {
		slots = append(slots, FreeSlot{Start: cursor, End: timeMax})
	}

	if limit > 0 && len(slots) > limit {
		slots = slots[:limit]
	}
	return slots
}
