package docs_caps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calverra/workdeck/internal/capability"
)

func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

func documentIDField() capability.Field {
	return capability.String("documentId", capability.Required(),
		capability.Description("The Google Docs document ID"))
}

func docURL(id string) string {
	return "https://docs.google.com/document/d/" + id + "/edit"
}

// Register declares all Docs capabilities against reg.
func Register(reg *capability.Registry) error {
	return reg.RegisterAll(
		createDocument(),
		getDocument(),
		appendText(),
		replaceText(),
		insertTable(),
		createComment(),
		listComments(),
		resolveComment(),
	)
}

func createDocument() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDOCS_CREATE_DOCUMENT",
		Name:        "Create Document",
		Description: "Create a Google Docs document, optionally with initial body text.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("title", capability.Required(),
				capability.Description("Document title")),
			capability.String("body",
				capability.Description("Initial document text")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			id := uuid.NewString()
			body := capability.StringArg(input, "body", "")
			return map[string]any{
				"documentId": id,
				"title":      capability.StringArg(input, "title", ""),
				"url":        docURL(id),
				"revisionId": uuid.NewString(),
				"wordCount":  len(strings.Fields(body)),
			}, nil
		},
	}
}

func getDocument() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDOCS_GET_DOCUMENT",
		Name:        "Get Document",
		Description: "Fetch a document's metadata and plain-text content.",
		Schema:      capability.NewSchema(accountField(), documentIDField()),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			id := capability.StringArg(input, "documentId", "")
			return map[string]any{
				"documentId": id,
				"title":      "Sample Document",
				"url":        docURL(id),
				"body":       "Placeholder document content.\n\nSection 1\nSection 2",
				"revisionId": uuid.NewString(),
			}, nil
		},
	}
}

func appendText() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDOCS_APPEND_TEXT",
		Name:        "Append Text",
		Description: "Append text to the end of a document body.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			documentIDField(),
			capability.String("text", capability.Required(),
				capability.Description("Text to append")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"documentId":     capability.StringArg(input, "documentId", ""),
				"appendedLength": len(capability.StringArg(input, "text", "")),
				"revisionId":     uuid.NewString(),
			}, nil
		},
	}
}

func replaceText() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDOCS_REPLACE_TEXT",
		Name:        "Replace Text",
		Description: "Replace every occurrence of a string in a document.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			documentIDField(),
			capability.String("find", capability.Required(),
				capability.Description("Text to find")),
			capability.String("replace", capability.Required(),
				capability.Description("Replacement text")),
			capability.Boolean("matchCase", capability.Default(true),
				capability.Description("Case-sensitive matching")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			find := capability.StringArg(input, "find", "")
			if find == "" {
				return nil, fmt.Errorf("find text must not be empty")
			}
			return map[string]any{
				"documentId":   capability.StringArg(input, "documentId", ""),
				"replacements": 2,
				"revisionId":   uuid.NewString(),
			}, nil
		},
	}
}

func insertTable() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDOCS_INSERT_TABLE",
		Name:        "Insert Table",
		Description: "Insert an empty table at the end of a document.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			documentIDField(),
			capability.Integer("rows", capability.Required(),
				capability.Description("Number of rows")),
			capability.Integer("columns", capability.Required(),
				capability.Description("Number of columns")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			rows := capability.IntArg(input, "rows", 0)
			cols := capability.IntArg(input, "columns", 0)
			if rows < 1 || cols < 1 {
				return nil, fmt.Errorf("table needs at least one row and one column")
			}
			if rows > 1000 || cols > 20 {
				return nil, fmt.Errorf("table size %dx%d exceeds the 1000x20 limit", rows, cols)
			}
			return map[string]any{
				"documentId": capability.StringArg(input, "documentId", ""),
				"rows":       rows,
				"columns":    cols,
				"revisionId": uuid.NewString(),
			}, nil
		},
	}
}

func createComment() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDOCS_CREATE_COMMENT",
		Name:        "Create Comment",
		Description: "Add a comment to a document, optionally anchored to quoted text.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			documentIDField(),
			capability.String("content", capability.Required(),
				capability.Description("Comment text")),
			capability.String("quotedText",
				capability.Description("Document text the comment refers to")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"commentId":  uuid.NewString(),
				"documentId": capability.StringArg(input, "documentId", ""),
				"content":    capability.StringArg(input, "content", ""),
				"quotedText": capability.StringArg(input, "quotedText", ""),
				"createdAt":  time.Now().Format(time.RFC3339),
			}, nil
		},
	}
}

func listComments() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDOCS_LIST_COMMENTS",
		Name:        "List Comments",
		Description: "List comment threads on a document.",
		Schema: capability.NewSchema(
			accountField(),
			documentIDField(),
			capability.Boolean("includeResolved", capability.Default(false),
				capability.Description("Include resolved comment threads")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			comments := []map[string]any{
				{
					"commentId": uuid.NewString(),
					"content":   "Can we tighten this paragraph?",
					"author":    "reviewer@example.com",
					"resolved":  false,
					"createdAt": time.Now().Add(-3 * time.Hour).Format(time.RFC3339),
				},
			}
			if capability.BoolArg(input, "includeResolved", false) {
				comments = append(comments, map[string]any{
					"commentId": uuid.NewString(),
					"content":   "Fixed the heading level.",
					"author":    "editor@example.com",
					"resolved":  true,
					"createdAt": time.Now().Add(-26 * time.Hour).Format(time.RFC3339),
				})
			}
			return map[string]any{"comments": comments, "count": len(comments)}, nil
		},
	}
}

func resolveComment() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDOCS_RESOLVE_COMMENT",
		Name:        "Resolve Comment",
		Description: "Mark a document comment thread as resolved.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			documentIDField(),
			capability.String("commentId", capability.Required(),
				capability.Description("The comment thread to resolve")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"commentId":  capability.StringArg(input, "commentId", ""),
				"documentId": capability.StringArg(input, "documentId", ""),
				"resolved":   true,
				"resolvedAt": time.Now().Format(time.RFC3339),
			}, nil
		},
	}
}
