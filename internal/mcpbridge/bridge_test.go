package mcpbridge

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/calverra/workdeck/internal/capability"
)

func newTestDispatcher(t *testing.T) *capability.Dispatcher {
	t.Helper()

	reg := capability.NewRegistry()
	err := reg.RegisterAll(
		capability.Descriptor{
			Slug:        "ECHO_NOTE",
			Name:        "Echo Note",
			Description: "Echoes the note back.",
			Schema: capability.NewSchema(
				capability.String("note", capability.Required()),
			),
			Execute: func(_ context.Context, input map[string]any, ec capability.Context) (any, error) {
				return map[string]any{
					"note":    input["note"],
					"account": ec.Account,
				}, nil
			},
		},
		capability.Descriptor{
			Slug:        "DELETE_NOTE",
			Name:        "Delete Note",
			Description: "Deletes a note.",
			Mutating:    true,
			Schema: capability.NewSchema(
				capability.String("id", capability.Required()),
			),
			Execute: func(_ context.Context, _ map[string]any, _ capability.Context) (any, error) {
				return map[string]any{"deleted": true}, nil
			},
		},
	)
	if err != nil {
		t.Fatalf("failed to register capabilities: %v", err)
	}
	return capability.NewDispatcher(reg)
}

func TestRegisterCapabilities(t *testing.T) {
	d := newTestDispatcher(t)
	s := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithToolCapabilities(true))

	if err := RegisterCapabilities(s, d, Options{}); err != nil {
		t.Fatalf("RegisterCapabilities() error = %v", err)
	}
}

func TestEligible_ReadOnlyFiltersMutating(t *testing.T) {
	d := newTestDispatcher(t)

	all := Eligible(d.Registry().All(), false)
	if len(all) != 2 {
		t.Errorf("expected 2 tools without read-only, got %d", len(all))
	}

	readOnly := Eligible(d.Registry().All(), true)
	if len(readOnly) != 1 {
		t.Fatalf("expected 1 tool in read-only mode, got %d", len(readOnly))
	}
	if readOnly[0].Slug != "ECHO_NOTE" {
		t.Errorf("expected ECHO_NOTE to survive read-only filtering, got %s", readOnly[0].Slug)
	}
}

func TestHandler_DispatchesThroughDispatcher(t *testing.T) {
	d := newTestDispatcher(t)
	handler := makeHandler(d, "ECHO_NOTE")

	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "ECHO_NOTE",
			Arguments: map[string]interface{}{
				"note":    "hello",
				"account": "work",
			},
		},
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success result, got error: %+v", result)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "hello") {
		t.Errorf("expected echoed note in result, got %q", text)
	}
	if !strings.Contains(text, "work") {
		t.Errorf("expected account to flow into execution context, got %q", text)
	}
}

func TestHandler_ValidationFailureBecomesToolError(t *testing.T) {
	d := newTestDispatcher(t)
	handler := makeHandler(d, "ECHO_NOTE")

	// Missing required "note" field
	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "ECHO_NOTE",
			Arguments: map[string]interface{}{},
		},
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for invalid input")
	}
}

func TestHandler_NilArguments(t *testing.T) {
	d := newTestDispatcher(t)
	handler := makeHandler(d, "DELETE_NOTE")

	// No arguments at all; should become a tool error, not a panic
	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing required input")
	}
}

func TestHandler_NotifiesDispatchObservers(t *testing.T) {
	obs := &recordingObserver{}
	reg := capability.NewRegistry()
	err := reg.Register(capability.Descriptor{
		Slug:        "ECHO_NOTE",
		Name:        "Echo Note",
		Description: "Echoes the note back.",
		Schema: capability.NewSchema(
			capability.String("note", capability.Required()),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{"note": input["note"]}, nil
		},
	})
	if err != nil {
		t.Fatalf("failed to register capability: %v", err)
	}
	d := capability.NewDispatcher(reg, capability.WithObserver(obs))
	handler := makeHandler(d, "ECHO_NOTE")

	_, err = handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "ECHO_NOTE",
			Arguments: map[string]interface{}{
				"note":    "hello",
				"account": "work",
			},
		},
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	if len(obs.calls) != 1 {
		t.Fatalf("expected 1 observed dispatch, got %d", len(obs.calls))
	}
	if obs.calls[0].slug != "ECHO_NOTE" || obs.calls[0].account != "work" || !obs.calls[0].succeeded {
		t.Errorf("unexpected observation: %+v", obs.calls[0])
	}
}

type observedDispatch struct {
	slug      string
	account   string
	succeeded bool
}

type recordingObserver struct {
	calls []observedDispatch
}

func (o *recordingObserver) ObserveDispatch(_ context.Context, slug, account string, succeeded bool, _ time.Duration, _ string) {
	o.calls = append(o.calls, observedDispatch{slug: slug, account: account, succeeded: succeeded})
}

func TestAccountFromArgs(t *testing.T) {
	if got := accountFromArgs(map[string]interface{}{"account": "work"}); got != "work" {
		t.Errorf("accountFromArgs() = %q, want %q", got, "work")
	}
	if got := accountFromArgs(map[string]interface{}{}); got != "default" {
		t.Errorf("accountFromArgs() = %q, want %q", got, "default")
	}
	if got := accountFromArgs(map[string]interface{}{"account": ""}); got != "default" {
		t.Errorf("accountFromArgs() = %q, want %q", got, "default")
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}
