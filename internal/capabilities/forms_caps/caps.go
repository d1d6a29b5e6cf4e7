package forms_caps

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calverra/workdeck/internal/capability"
)

func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

func formIDField() capability.Field {
	return capability.String("formId", capability.Required(),
		capability.Description("The form ID"))
}

// Register declares all Forms capabilities against reg.
func Register(reg *capability.Registry) error {
	return reg.RegisterAll(
		createForm(),
		getForm(),
		addQuestion(),
		deleteItem(),
		listResponses(),
		getResponse(),
	)
}

func createForm() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEFORMS_CREATE_FORM",
		Name:        "Create Form",
		Description: "Create a Google Form with a title and optional description.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("title", capability.Required(),
				capability.Description("Form title")),
			capability.String("description",
				capability.Description("Text shown under the title")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			id := uuid.NewString()
			return map[string]any{
				"formId":       id,
				"title":        capability.StringArg(input, "title", ""),
				"description":  capability.StringArg(input, "description", ""),
				"editUrl":      "https://docs.google.com/forms/d/" + id + "/edit",
				"responderUrl": "https://docs.google.com/forms/d/e/" + id + "/viewform",
			}, nil
		},
	}
}

func getForm() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEFORMS_GET_FORM",
		Name:        "Get Form",
		Description: "Fetch a form's metadata and its questions.",
		Schema:      capability.NewSchema(accountField(), formIDField()),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			id := capability.StringArg(input, "formId", "")
			return map[string]any{
				"formId": id,
				"title":  "Sample Form",
				"items": []map[string]any{
					{"itemId": uuid.NewString(), "title": "How satisfied are you?", "type": "scale"},
					{"itemId": uuid.NewString(), "title": "Any comments?", "type": "paragraph"},
				},
			}, nil
		},
	}
}

func addQuestion() capability.Descriptor {
	types := []string{"shortAnswer", "paragraph", "multipleChoice", "checkboxes", "dropdown", "scale", "date", "time"}
	return capability.Descriptor{
		Slug:        "GOOGLEFORMS_ADD_QUESTION",
		Name:        "Add Question",
		Description: "Append a question to a form. Choice-based types take an options list.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			formIDField(),
			capability.String("title", capability.Required(),
				capability.Description("Question text")),
			capability.Enum("type", types, capability.Required(),
				capability.Description("Question type")),
			capability.List("options", capability.String(""),
				capability.Description("Choices for multipleChoice, checkboxes and dropdown")),
			capability.Boolean("required", capability.Default(false),
				capability.Description("Whether an answer is mandatory")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			qType := capability.StringArg(input, "type", "")
			options := capability.StringListArg(input, "options")
			switch qType {
			case "multipleChoice", "checkboxes", "dropdown":
				if len(options) < 2 {
					return nil, fmt.Errorf("%s questions need at least two options", qType)
				}
			}
			return map[string]any{
				"formId":   capability.StringArg(input, "formId", ""),
				"itemId":   uuid.NewString(),
				"title":    capability.StringArg(input, "title", ""),
				"type":     qType,
				"options":  options,
				"required": capability.BoolArg(input, "required", false),
			}, nil
		},
	}
}

func deleteItem() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEFORMS_DELETE_ITEM",
		Name:        "Delete Item",
		Description: "Delete a question or other item from a form.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			formIDField(),
			capability.String("itemId", capability.Required(),
				capability.Description("The item to delete")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"formId":  capability.StringArg(input, "formId", ""),
				"itemId":  capability.StringArg(input, "itemId", ""),
				"deleted": true,
			}, nil
		},
	}
}

func listResponses() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEFORMS_LIST_RESPONSES",
		Name:        "List Responses",
		Description: "List submitted responses for a form.",
		Schema: capability.NewSchema(
			accountField(),
			formIDField(),
			capability.Integer("maxResults", capability.Default(20),
				capability.Description("Maximum number of responses to return")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			n := capability.IntArg(input, "maxResults", 20)
			if n > 3 {
				n = 3
			}
			responses := make([]map[string]any, 0, n)
			for i := int64(0); i < n; i++ {
				responses = append(responses, map[string]any{
					"responseId":  uuid.NewString(),
					"respondent":  fmt.Sprintf("respondent%d@example.com", i+1),
					"submittedAt": time.Now().Add(-time.Duration(i+1) * time.Hour).Format(time.RFC3339),
				})
			}
			return map[string]any{"responses": responses, "count": len(responses)}, nil
		},
	}
}

func getResponse() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEFORMS_GET_RESPONSE",
		Name:        "Get Response",
		Description: "Fetch one form response with its answers.",
		Schema: capability.NewSchema(
			accountField(),
			formIDField(),
			capability.String("responseId", capability.Required(),
				capability.Description("The response ID")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"formId":      capability.StringArg(input, "formId", ""),
				"responseId":  capability.StringArg(input, "responseId", ""),
				"respondent":  "respondent@example.com",
				"submittedAt": time.Now().Add(-time.Hour).Format(time.RFC3339),
				"answers": []map[string]any{
					{"question": "How satisfied are you?", "answer": "4"},
					{"question": "Any comments?", "answer": "Placeholder answer text"},
				},
			}, nil
		},
	}
}
