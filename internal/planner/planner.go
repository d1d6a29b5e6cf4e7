package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/calverra/workdeck/internal/capability"
)

const (
	// DefaultModel is used when Options.Model is empty.
	DefaultModel = "claude-sonnet-4-5"

	defaultMaxTokens = 4096
	defaultMaxTurns  = 8
)

// MessagesClient captures the subset of the Anthropic SDK used by the
// planner. It is satisfied by *sdk.MessageService so callers can pass either
// a real client or a mock in tests.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Options configures a Planner.
type Options struct {
	// Model is the Claude model identifier. DefaultModel when empty.
	Model string

	// MaxTokens caps each completion. 4096 when zero.
	MaxTokens int

	// MaxTurns bounds the tool-use loop. A run that still wants tools
	// after this many model turns fails rather than looping forever.
	// 8 when zero.
	MaxTurns int

	// System is prepended as the system prompt when non-empty.
	System string

	// Temperature is passed through when positive.
	Temperature float64

	// Logger receives per-turn debug logs. slog.Default when nil.
	Logger *slog.Logger
}

// Planner runs objectives against the capability catalog via Claude.
type Planner struct {
	msg        MessagesClient
	dispatcher *capability.Dispatcher
	model      sdk.Model
	maxTokens  int64
	maxTurns   int
	system     string
	temp       float64
	logger     *slog.Logger
}

// Step records one round of tool use: the requests the model asked for and
// the results that were fed back, index-aligned.
type Step struct {
	Requests []capability.Request `json:"requests"`
	Results  []capability.Result  `json:"results"`
}

// Outcome is the result of a planning run.
type Outcome struct {
	// Text is the assistant text from the final turn.
	Text string `json:"text"`

	// Steps lists every tool-use round in order.
	Steps []Step `json:"steps,omitempty"`

	// StopReason is the stop reason of the final model turn.
	StopReason string `json:"stopReason"`

	// Turns is the number of model turns consumed.
	Turns int `json:"turns"`

	InputTokens  int64 `json:"inputTokens"`
	OutputTokens int64 `json:"outputTokens"`
}

// New builds a planner from an Anthropic Messages client and a dispatcher.
func New(msg MessagesClient, dispatcher *capability.Dispatcher, opts Options) (*Planner, error) {
	if msg == nil {
		return nil, errors.New("anthropic client is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	maxTurns := opts.MaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultMaxTurns
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		msg:        msg,
		dispatcher: dispatcher,
		model:      sdk.Model(model),
		maxTokens:  int64(maxTokens),
		maxTurns:   maxTurns,
		system:     opts.System,
		temp:       opts.Temperature,
		logger:     logger,
	}, nil
}

// NewFromAPIKey constructs a planner using the default Anthropic HTTP client.
func NewFromAPIKey(apiKey string, dispatcher *capability.Dispatcher, opts Options) (*Planner, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}
	ac := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&ac.Messages, dispatcher, opts)
}

// Run sends the objective to the model with the full capability catalog as
// tools and loops: every tool_use turn is dispatched concurrently, the
// results are returned to the model as tool_result blocks, and the loop ends
// when the model stops requesting tools. Failed dispatches are reported to
// the model as error results, not surfaced as Run errors; only transport
// failures and exceeding MaxTurns fail the run.
func (p *Planner) Run(ctx context.Context, objective string, ec capability.Context) (*Outcome, error) {
	if strings.TrimSpace(objective) == "" {
		return nil, errors.New("objective is required")
	}

	tools := encodeCatalog(p.dispatcher.Registry().All())
	messages := []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(objective))}
	out := &Outcome{}

	for turn := 0; turn < p.maxTurns; turn++ {
		params := sdk.MessageNewParams{
			Model:     p.model,
			MaxTokens: p.maxTokens,
			Messages:  messages,
			Tools:     tools,
		}
		if p.system != "" {
			params.System = []sdk.TextBlockParam{{Text: p.system}}
		}
		if p.temp > 0 {
			params.Temperature = sdk.Float(p.temp)
		}

		msg, err := p.msg.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("anthropic messages.new: %w", err)
		}

		out.Turns = turn + 1
		out.StopReason = string(msg.StopReason)
		out.InputTokens += msg.Usage.InputTokens
		out.OutputTokens += msg.Usage.OutputTokens

		var (
			texts     []string
			assistant []sdk.ContentBlockParamUnion
			requests  []capability.Request
			useIDs    []string
		)
		for _, block := range msg.Content {
			switch block.Type {
			case "text":
				if block.Text == "" {
					continue
				}
				texts = append(texts, block.Text)
				assistant = append(assistant, sdk.NewTextBlock(block.Text))
			case "tool_use":
				assistant = append(assistant, sdk.NewToolUseBlock(block.ID, block.Input, block.Name))
				requests = append(requests, capability.Request{
					Slug:  block.Name,
					Input: decodeInput(block.Input),
				})
				useIDs = append(useIDs, block.ID)
			}
		}
		out.Text = strings.Join(texts, "\n")

		if len(requests) == 0 {
			return out, nil
		}

		results := p.dispatcher.DispatchAll(ctx, requests, ec)
		out.Steps = append(out.Steps, Step{Requests: requests, Results: results})
		p.logger.Debug("planner turn dispatched",
			slog.Int("turn", turn+1),
			slog.Int("requests", len(requests)))

		feedback := make([]sdk.ContentBlockParamUnion, 0, len(results))
		for i, res := range results {
			feedback = append(feedback, sdk.NewToolResultBlock(useIDs[i], resultContent(res), !res.Succeeded))
		}
		messages = append(messages, sdk.NewAssistantMessage(assistant...))
		messages = append(messages, sdk.NewUserMessage(feedback...))
	}

	return out, fmt.Errorf("planning did not converge after %d turns", p.maxTurns)
}

// encodeCatalog turns descriptors into Anthropic tool declarations. Slugs
// already satisfy the provider's tool-name constraints, so no sanitizing is
// needed.
func encodeCatalog(descriptors []capability.Descriptor) []sdk.ToolUnionParam {
	tools := make([]sdk.ToolUnionParam, 0, len(descriptors))
	for _, d := range descriptors {
		schema := sdk.ToolInputSchemaParam{ExtraFields: d.Schema.JSONSchema()}
		u := sdk.ToolUnionParamOfTool(schema, d.Slug)
		if u.OfTool != nil {
			u.OfTool.Description = sdk.String(d.Description)
		}
		tools = append(tools, u)
	}
	return tools
}

// decodeInput round-trips the raw tool input through JSON into the map the
// dispatcher validates. A malformed payload decodes to nil and is rejected by
// schema validation downstream.
func decodeInput(raw any) map[string]any {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var input map[string]any
	if err := json.Unmarshal(data, &input); err != nil {
		return nil
	}
	return input
}

func resultContent(res capability.Result) string {
	if !res.Succeeded {
		return res.Error
	}
	data, err := json.Marshal(res.Data)
	if err != nil {
		return fmt.Sprintf("%v", res.Data)
	}
	return string(data)
}
