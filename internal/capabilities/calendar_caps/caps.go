package calendar_caps

import (
	"context"
	"fmt"
	"time"

	"github.com/calverra/workdeck/internal/calendar"
	"github.com/calverra/workdeck/internal/capability"
)

// Backend is the Calendar surface the executors run against. Implemented by
// calendar.Client (live) and calendar.Offline (synthesized).
type Backend interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string, maxResults int64) ([]calendar.Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error)
	CreateEvent(ctx context.Context, calendarID string, input calendar.EventInput) (*calendar.Event, error)
	UpdateEvent(ctx context.Context, calendarID, eventID string, input calendar.EventInput) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
	QuickAdd(ctx context.Context, calendarID, text string) (*calendar.Event, error)
	RespondToEvent(ctx context.Context, calendarID, eventID, response string) (*calendar.Event, error)
	ListCalendars(ctx context.Context) ([]calendar.CalendarInfo, error)
	FindFreeSlots(ctx context.Context, calendarIDs []string, duration time.Duration, timeMin, timeMax time.Time, limit int) ([]calendar.FreeSlot, error)
}

// Provider resolves the backend for an account at dispatch time.
type Provider func(ctx context.Context, account string) (Backend, error)

func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

func calendarField() capability.Field {
	return capability.String("calendarId", capability.Default("primary"),
		capability.Description("Calendar ID, 'primary' for the user's main calendar"))
}

// Register declares all Calendar capabilities against reg.
func Register(reg *capability.Registry, p Provider) error {
	return reg.RegisterAll(
		createEvent(p),
		updateEvent(p),
		deleteEvent(p),
		getEvent(p),
		listEvents(p),
		quickAdd(p),
		respondToEvent(p),
		listCalendars(p),
		findFreeSlots(p),
	)
}

// timeArg parses an RFC 3339 timestamp field, returning the zero time when
// the field is absent.
func timeArg(input map[string]any, name string) (time.Time, error) {
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

func eventInputFromInput(input map[string]any) (calendar.EventInput, error) {
	start, err := timeArg(input, "startTime")
	if err != nil {
		return calendar.EventInput{}, err
	}
	end, err := timeArg(input, "endTime")
	if err != nil {
		return calendar.EventInput{}, err
	}
	return calendar.EventInput{
		Summary:     capability.StringArg(input, "summary", ""),
		Description: capability.StringArg(input, "description", ""),
		Location:    capability.StringArg(input, "location", ""),
		Start:       start,
		End:         end,
		TimeZone:    capability.StringArg(input, "timezone", ""),
		AllDay:      capability.BoolArg(input, "allDay", false),
		Attendees:   capability.StringListArg(input, "attendees"),
		Recurrence:  capability.StringListArg(input, "recurrence"),
		AddMeet:     capability.BoolArg(input, "addMeet", false),
	}, nil
}

func createEvent(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECALENDAR_CREATE_EVENT",
		Name:        "Create Event",
		Description: "Create a calendar event with optional attendees, recurrence and an attached Google Meet.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			calendarField(),
			capability.String("summary", capability.Required(),
				capability.Description("Event title")),
			capability.String("description",
				capability.Description("Event description")),
			capability.String("location",
				capability.Description("Event location")),
			capability.String("startTime", capability.Required(),
				capability.Description("Start time, RFC 3339 (e.g. 2026-03-02T09:00:00Z)")),
			capability.String("endTime", capability.Required(),
				capability.Description("End time, RFC 3339")),
			capability.String("timezone",
				capability.Description("IANA time zone, defaults to UTC")),
			capability.Boolean("allDay", capability.Default(false),
				capability.Description("Whether this is an all-day event")),
			capability.List("attendees", capability.String(""),
				capability.Description("Attendee email addresses")),
			capability.List("recurrence", capability.String(""),
				capability.Description("Recurrence rules (RRULE lines)")),
			capability.Boolean("addMeet", capability.Default(false),
				capability.Description("Attach a Google Meet conference")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			in, err := eventInputFromInput(input)
			if err != nil {
				return nil, err
			}
			return b.CreateEvent(ctx, capability.StringArg(input, "calendarId", "primary"), in)
		},
	}
}

func updateEvent(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECALENDAR_UPDATE_EVENT",
		Name:        "Update Event",
		Description: "Update fields of an existing calendar event. Omitted fields are left unchanged.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			calendarField(),
			capability.String("eventId", capability.Required(),
				capability.Description("The event to update")),
			capability.String("summary", capability.Description("New event title")),
			capability.String("description", capability.Description("New description")),
			capability.String("location", capability.Description("New location")),
			capability.String("startTime", capability.Description("New start time, RFC 3339")),
			capability.String("endTime", capability.Description("New end time, RFC 3339")),
			capability.String("timezone", capability.Description("IANA time zone")),
			capability.List("attendees", capability.String(""),
				capability.Description("Replacement attendee list")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			in, err := eventInputFromInput(input)
			if err != nil {
				return nil, err
			}
			return b.UpdateEvent(ctx,
				capability.StringArg(input, "calendarId", "primary"),
				capability.StringArg(input, "eventId", ""), in)
		},
	}
}

func deleteEvent(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECALENDAR_DELETE_EVENT",
		Name:        "Delete Event",
		Description: "Delete a calendar event.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			calendarField(),
			capability.String("eventId", capability.Required(),
				capability.Description("The event to delete")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			eventID := capability.StringArg(input, "eventId", "")
			if err := b.DeleteEvent(ctx, capability.StringArg(input, "calendarId", "primary"), eventID); err != nil {
				return nil, err
			}
			return map[string]any{"eventId": eventID, "deleted": true}, nil
		},
	}
}

func getEvent(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECALENDAR_GET_EVENT",
		Name:        "Get Event",
		Description: "Fetch a single calendar event, including attendees and any Google Meet link.",
		Schema: capability.NewSchema(
			accountField(),
			calendarField(),
			capability.String("eventId", capability.Required(),
				capability.Description("The event ID")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.GetEvent(ctx,
				capability.StringArg(input, "calendarId", "primary"),
				capability.StringArg(input, "eventId", ""))
		},
	}
}

func listEvents(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECALENDAR_LIST_EVENTS",
		Name:        "List Events",
		Description: "List events in a time window, expanded to single instances and ordered by start time. Defaults to the next 7 days.",
		Schema: capability.NewSchema(
			accountField(),
			calendarField(),
			capability.String("timeMin",
				capability.Description("Window start, RFC 3339. Defaults to now.")),
			capability.String("timeMax",
				capability.Description("Window end, RFC 3339. Defaults to 7 days from now.")),
			capability.String("query",
				capability.Description("Free-text search over event fields")),
			capability.Integer("maxResults", capability.Default(25),
				capability.Description("Maximum number of events to return")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			timeMin, err := timeArg(input, "timeMin")
			if err != nil {
				return nil, err
			}
			timeMax, err := timeArg(input, "timeMax")
			if err != nil {
				return nil, err
			}
			if timeMin.IsZero() {
				timeMin = time.Now()
			}
			if timeMax.IsZero() {
				timeMax = timeMin.AddDate(0, 0, 7)
			}
			events, err := b.ListEvents(ctx,
				capability.StringArg(input, "calendarId", "primary"),
				timeMin, timeMax,
				capability.StringArg(input, "query", ""),
				capability.IntArg(input, "maxResults", 25))
			if err != nil {
				return nil, err
			}
			return map[string]any{"events": events, "count": len(events)}, nil
		},
	}
}

func quickAdd(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECALENDAR_QUICK_ADD",
		Name:        "Quick Add Event",
		Description: "Create an event from natural language, e.g. 'Lunch with Sam tomorrow at noon'.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			calendarField(),
			capability.String("text", capability.Required(),
				capability.Description("Natural-language event description")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.QuickAdd(ctx,
				capability.StringArg(input, "calendarId", "primary"),
				capability.StringArg(input, "text", ""))
		},
	}
}

func respondToEvent(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECALENDAR_RESPOND_TO_EVENT",
		Name:        "Respond To Event",
		Description: "Record the user's RSVP on an event invitation.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			calendarField(),
			capability.String("eventId", capability.Required(),
				capability.Description("The event to respond to")),
			capability.Enum("response", []string{"accepted", "declined", "tentative"},
				capability.Required(),
				capability.Description("The RSVP response")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.RespondToEvent(ctx,
				capability.StringArg(input, "calendarId", "primary"),
				capability.StringArg(input, "eventId", ""),
				capability.StringArg(input, "response", ""))
		},
	}
}

func listCalendars(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECALENDAR_LIST_CALENDARS",
		Name:        "List Calendars",
		Description: "List all calendars the user can access.",
		Schema:      capability.NewSchema(accountField()),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			cals, err := b.ListCalendars(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"calendars": cals, "count": len(cals)}, nil
		},
	}
}

func findFreeSlots(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECALENDAR_FIND_FREE_SLOTS",
		Name:        "Find Free Slots",
		Description: "Find windows in which all given calendars are free, suitable for scheduling a meeting.",
		Schema: capability.NewSchema(
			accountField(),
			capability.List("calendarIds", capability.String(""),
				capability.Description("Calendars or attendee addresses to check. Defaults to the primary calendar.")),
			capability.Integer("durationMinutes", capability.Default(30),
				capability.Description("Required slot length in minutes")),
			capability.String("timeMin",
				capability.Description("Window start, RFC 3339. Defaults to now.")),
			capability.String("timeMax",
				capability.Description("Window end, RFC 3339. Defaults to 7 days from now.")),
			capability.Integer("limit", capability.Default(10),
				capability.Description("Maximum number of slots to return")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			timeMin, err := timeArg(input, "timeMin")
			if err != nil {
				return nil, err
			}
			timeMax, err := timeArg(input, "timeMax")
			if err != nil {
				return nil, err
			}
			if timeMin.IsZero() {
				timeMin = time.Now()
			}
			if timeMax.IsZero() {
				timeMax = timeMin.AddDate(0, 0, 7)
			}
			ids := capability.StringListArg(input, "calendarIds")
			if len(ids) == 0 {
				ids = []string{"primary"}
			}
			duration := time.Duration(capability.IntArg(input, "durationMinutes", 30)) * time.Minute
			slots, err := b.FindFreeSlots(ctx, ids, duration, timeMin, timeMax,
				int(capability.IntArg(input, "limit", 10)))
			if err != nil {
				return nil, err
			}
			return map[string]any{"slots": slots, "count": len(slots)}, nil
		},
	}
}
