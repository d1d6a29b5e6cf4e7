package agent

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/calverra/workdeck/internal/capability"
	"github.com/calverra/workdeck/internal/planner"
)

// Agent exposes typed convenience methods over the capability catalog. All
// methods route through the dispatcher, so they get the same validation,
// logging and instrumentation as planner-driven invocations.
type Agent struct {
	dispatcher *capability.Dispatcher
	planner    *planner.Planner
	account    string
	logger     *slog.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithPlanner attaches an LLM planner; required for Plan.
func WithPlanner(p *planner.Planner) Option {
	return func(a *Agent) { a.planner = p }
}

// WithAccount sets the Google account the agent acts as. "default" when
// unset.
func WithAccount(account string) Option {
	return func(a *Agent) { a.account = account }
}

// WithLogger sets the agent logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// New builds an agent over the given dispatcher.
func New(dispatcher *capability.Dispatcher, opts ...Option) (*Agent, error) {
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	a := &Agent{
		dispatcher: dispatcher,
		account:    "default",
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Agent) execContext() capability.Context {
	return capability.Context{Account: a.account}
}

// Execute dispatches a single capability by slug and unwraps the result
// envelope: the payload on success, an error carrying the slug otherwise.
func (a *Agent) Execute(ctx context.Context, slug string, input map[string]any) (any, error) {
	res := a.dispatcher.Dispatch(ctx, capability.Request{Slug: slug, Input: input}, a.execContext())
	if !res.Succeeded {
		return nil, fmt.Errorf("%s: %s", slug, res.Error)
	}
	return res.Data, nil
}

// ExecuteAll dispatches a batch concurrently and returns the raw result
// envelopes in request order.
func (a *Agent) ExecuteAll(ctx context.Context, reqs []capability.Request) []capability.Result {
	return a.dispatcher.DispatchAll(ctx, reqs, a.execContext())
}

// Plan hands a free-form objective to the LLM planner.
func (a *Agent) Plan(ctx context.Context, objective string) (*planner.Outcome, error) {
	if a.planner == nil {
		return nil, errors.New("agent has no planner configured")
	}
	return a.planner.Run(ctx, objective, a.execContext())
}

// SendEmail sends a plain-text email.
func (a *Agent) SendEmail(ctx context.Context, to []string, subject, body string) (any, error) {
	return a.Execute(ctx, "GMAIL_SEND_EMAIL", map[string]any{
		"to":      toAnySlice(to),
		"subject": subject,
		"body":    body,
	})
}

// CreateDraft saves a plain-text draft.
func (a *Agent) CreateDraft(ctx context.Context, to []string, subject, body string) (any, error) {
	return a.Execute(ctx, "GMAIL_CREATE_DRAFT", map[string]any{
		"to":      toAnySlice(to),
		"subject": subject,
		"body":    body,
	})
}

// CreateEvent creates a timed calendar event on the primary calendar.
func (a *Agent) CreateEvent(ctx context.Context, summary string, start, end time.Time, attendees []string) (any, error) {
	input := map[string]any{
		"summary":   summary,
		"startTime": start.Format(time.RFC3339),
		"endTime":   end.Format(time.RFC3339),
	}
	if len(attendees) > 0 {
		input["attendees"] = toAnySlice(attendees)
	}
	return a.Execute(ctx, "GOOGLECALENDAR_CREATE_EVENT", input)
}

// ListUpcomingEvents lists primary-calendar events from now through the next
// `days` days.
func (a *Agent) ListUpcomingEvents(ctx context.Context, days int) (any, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	return a.Execute(ctx, "GOOGLECALENDAR_LIST_EVENTS", map[string]any{
		"timeMin": now.Format(time.RFC3339),
		"timeMax": now.AddDate(0, 0, days).Format(time.RFC3339),
	})
}

// UploadFile uploads raw bytes to Drive.
func (a *Agent) UploadFile(ctx context.Context, name string, content []byte, mimeType string) (any, error) {
	input := map[string]any{
		"name":    name,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if mimeType != "" {
		input["mimeType"] = mimeType
	}
	return a.Execute(ctx, "GOOGLEDRIVE_UPLOAD_FILE", input)
}

// ShareFile grants a user access to a Drive file. Role is one of reader,
// commenter, writer, organizer.
func (a *Agent) ShareFile(ctx context.Context, fileID, email, role string) (any, error) {
	return a.Execute(ctx, "GOOGLEDRIVE_SHARE_FILE", map[string]any{
		"fileId":       fileID,
		"type":         "user",
		"role":         role,
		"emailAddress": email,
	})
}

// CreateDocument creates a Docs document with optional initial text.
func (a *Agent) CreateDocument(ctx context.Context, title, body string) (any, error) {
	input := map[string]any{"title": title}
	if body != "" {
		input["body"] = body
	}
	return a.Execute(ctx, "GOOGLEDOCS_CREATE_DOCUMENT", input)
}

// AppendSheetRows appends rows of string cells to a spreadsheet range.
func (a *Agent) AppendSheetRows(ctx context.Context, spreadsheetID, sheetRange string, rows [][]string) (any, error) {
	values := make([]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, toAnySlice(row))
	}
	input := map[string]any{
		"spreadsheetId": spreadsheetID,
		"values":        values,
	}
	if sheetRange != "" {
		input["range"] = sheetRange
	}
	return a.Execute(ctx, "GOOGLESHEETS_APPEND_ROWS", input)
}

// CreateTask adds a task to the default task list. A zero due time means no
// due date.
func (a *Agent) CreateTask(ctx context.Context, title string, due time.Time) (any, error) {
	input := map[string]any{"title": title}
	if !due.IsZero() {
		input["due"] = due.Format(time.RFC3339)
	}
	return a.Execute(ctx, "GOOGLETASKS_CREATE_TASK", input)
}

// SearchWorkspace searches across the user's Workspace content. Sources may
// restrict the search to a subset of gmail, drive, calendar and docs.
func (a *Agent) SearchWorkspace(ctx context.Context, query string, sources ...string) (any, error) {
	input := map[string]any{"query": query}
	if len(sources) > 0 {
		input["sources"] = toAnySlice(sources)
	}
	return a.Execute(ctx, "GOOGLESEARCH_SEARCH_WORKSPACE", input)
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
