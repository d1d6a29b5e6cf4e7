package mcpbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/calverra/workdeck/internal/capability"
	"github.com/calverra/workdeck/internal/instrumentation"
)

// Options configures how the capability catalog is exposed over MCP.
type Options struct {
	// ReadOnly hides mutating capabilities from the advertised tool list.
	ReadOnly bool

	// Logger receives registration logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// RegisterCapabilities exposes every registered capability as an MCP tool.
// Tool names are the capability slugs and input schemas are rendered from
// the capability schemas, so the MCP surface and the planner surface stay
// identical.
func RegisterCapabilities(s *mcpserver.MCPServer, d *capability.Dispatcher, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	descs := Eligible(d.Registry().All(), opts.ReadOnly)
	for _, desc := range descs {
		tool, err := toolFromDescriptor(desc)
		if err != nil {
			return fmt.Errorf("failed to build tool for %s: %w", desc.Slug, err)
		}
		s.AddTool(tool, makeHandler(d, desc.Slug))
	}

	logger.Debug("registered MCP tools",
		slog.Int("count", len(descs)),
		slog.Bool("read_only", opts.ReadOnly))
	return nil
}

// Eligible filters the catalog for the advertised tool list. In read-only
// mode mutating capabilities are withheld entirely rather than rejected at
// call time, so clients never see tools they cannot use.
func Eligible(descs []capability.Descriptor, readOnly bool) []capability.Descriptor {
	if !readOnly {
		return descs
	}
	out := make([]capability.Descriptor, 0, len(descs))
	for _, d := range descs {
		if !d.Mutating {
			out = append(out, d)
		}
	}
	return out
}

func toolFromDescriptor(desc capability.Descriptor) (mcp.Tool, error) {
	raw, err := json.Marshal(desc.Schema.JSONSchema())
	if err != nil {
		return mcp.Tool{}, err
	}
	return mcp.NewToolWithRawSchema(desc.Slug, desc.Description, raw), nil
}

// makeHandler adapts one capability to the MCP tool handler signature. All
// dispatch failures surface as tool errors, not protocol errors, so a
// failing capability never tears down the session. Each call runs inside a
// capability span; dispatch observers pick the trace context up from ctx.
func makeHandler(d *capability.Dispatcher, slug string) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		if args == nil {
			args = map[string]interface{}{}
		}
		account := accountFromArgs(args)

		ctx, span := instrumentation.StartCapabilitySpan(ctx, slug,
			instrumentation.NewSpanAttributeBuilder().WithAccount(account).Build()...)
		defer span.End()

		res := d.Dispatch(ctx, capability.Request{
			Slug:  slug,
			Input: args,
		}, capability.Context{
			Account: account,
		})

		if !res.Succeeded {
			instrumentation.SetSpanError(span, errors.New(res.Error))
			return mcp.NewToolResultError(res.Error), nil
		}
		instrumentation.SetSpanSuccess(span)

		data, err := json.MarshalIndent(res.Data, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// accountFromArgs extracts the account name from tool arguments, defaulting
// to "default".
func accountFromArgs(args map[string]interface{}) string {
	if account, ok := args["account"].(string); ok && account != "" {
		return account
	}
	return "default"
}
