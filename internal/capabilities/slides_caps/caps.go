package slides_caps

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/calverra/workdeck/internal/capability"
)

func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

func presentationIDField() capability.Field {
	return capability.String("presentationId", capability.Required(),
		capability.Description("The presentation ID"))
}

func presentationURL(id string) string {
	return "https://docs.google.com/presentation/d/" + id + "/edit"
}

// Register declares all Slides capabilities against reg.
func Register(reg *capability.Registry) error {
	return reg.RegisterAll(
		createPresentation(),
		getPresentation(),
		addSlide(),
		insertText(),
		insertImage(),
		deleteSlide(),
		replaceAllText(),
	)
}

func createPresentation() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESLIDES_CREATE_PRESENTATION",
		Name:        "Create Presentation",
		Description: "Create a presentation with a title slide.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("title", capability.Required(),
				capability.Description("Presentation title")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			id := uuid.NewString()
			return map[string]any{
				"presentationId": id,
				"title":          capability.StringArg(input, "title", ""),
				"url":            presentationURL(id),
				"slides": []map[string]any{
					{"slideId": uuid.NewString(), "layout": "TITLE", "index": 0},
				},
			}, nil
		},
	}
}

func getPresentation() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESLIDES_GET_PRESENTATION",
		Name:        "Get Presentation",
		Description: "Fetch presentation metadata and its slide list.",
		Schema:      capability.NewSchema(accountField(), presentationIDField()),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			id := capability.StringArg(input, "presentationId", "")
			return map[string]any{
				"presentationId": id,
				"title":          "Sample Presentation",
				"url":            presentationURL(id),
				"slides": []map[string]any{
					{"slideId": uuid.NewString(), "layout": "TITLE", "index": 0},
					{"slideId": uuid.NewString(), "layout": "TITLE_AND_BODY", "index": 1},
				},
			}, nil
		},
	}
}

func addSlide() capability.Descriptor {
	layouts := []string{"BLANK", "TITLE", "TITLE_AND_BODY", "TITLE_ONLY", "SECTION_HEADER", "ONE_COLUMN_TEXT", "TWO_COLUMNS"}
	return capability.Descriptor{
		Slug:        "GOOGLESLIDES_ADD_SLIDE",
		Name:        "Add Slide",
		Description: "Append a slide with a predefined layout.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			presentationIDField(),
			capability.Enum("layout", layouts, capability.Default("TITLE_AND_BODY"),
				capability.Description("Slide layout")),
			capability.Integer("index",
				capability.Description("Insertion position; appended at the end when omitted")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"presentationId": capability.StringArg(input, "presentationId", ""),
				"slideId":        uuid.NewString(),
				"layout":         capability.StringArg(input, "layout", "TITLE_AND_BODY"),
				"createdAt":      time.Now().Format(time.RFC3339),
			}, nil
		},
	}
}

func insertText() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESLIDES_INSERT_TEXT",
		Name:        "Insert Text",
		Description: "Insert a text box onto a slide.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			presentationIDField(),
			capability.String("slideId", capability.Required(),
				capability.Description("The slide to modify")),
			capability.String("text", capability.Required(),
				capability.Description("Text content")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"presentationId": capability.StringArg(input, "presentationId", ""),
				"slideId":        capability.StringArg(input, "slideId", ""),
				"shapeId":        uuid.NewString(),
				"textLength":     len(capability.StringArg(input, "text", "")),
			}, nil
		},
	}
}

func insertImage() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESLIDES_INSERT_IMAGE",
		Name:        "Insert Image",
		Description: "Insert an image onto a slide from a publicly reachable URL.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			presentationIDField(),
			capability.String("slideId", capability.Required(),
				capability.Description("The slide to modify")),
			capability.String("imageUrl", capability.Required(),
				capability.Description("HTTPS URL of the image")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			imageURL := capability.StringArg(input, "imageUrl", "")
			u, err := url.Parse(imageURL)
			if err != nil || u.Scheme != "https" {
				return nil, fmt.Errorf("imageUrl must be a valid https URL")
			}
			return map[string]any{
				"presentationId": capability.StringArg(input, "presentationId", ""),
				"slideId":        capability.StringArg(input, "slideId", ""),
				"imageId":        uuid.NewString(),
				"sourceUrl":      imageURL,
			}, nil
		},
	}
}

func deleteSlide() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESLIDES_DELETE_SLIDE",
		Name:        "Delete Slide",
		Description: "Delete a slide from a presentation.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			presentationIDField(),
			capability.String("slideId", capability.Required(),
				capability.Description("The slide to delete")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"presentationId": capability.StringArg(input, "presentationId", ""),
				"slideId":        capability.StringArg(input, "slideId", ""),
				"deleted":        true,
			}, nil
		},
	}
}

func replaceAllText() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESLIDES_REPLACE_ALL_TEXT",
		Name:        "Replace All Text",
		Description: "Replace every occurrence of a string across all slides, useful for templating.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			presentationIDField(),
			capability.String("find", capability.Required(),
				capability.Description("Text to find, e.g. '{{customer}}'")),
			capability.String("replace", capability.Required(),
				capability.Description("Replacement text")),
			capability.Boolean("matchCase", capability.Default(true),
				capability.Description("Case-sensitive matching")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			if capability.StringArg(input, "find", "") == "" {
				return nil, fmt.Errorf("find text must not be empty")
			}
			return map[string]any{
				"presentationId": capability.StringArg(input, "presentationId", ""),
				"occurrences":    3,
			}, nil
		},
	}
}
