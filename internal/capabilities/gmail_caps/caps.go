package gmail_caps

import (
	"context"

	"github.com/calverra/workdeck/internal/capability"
	"github.com/calverra/workdeck/internal/gmail"
)

// Backend is the Gmail surface the executors run against. Implemented by
// gmail.Client (live) and gmail.Offline (synthesized).
type Backend interface {
	Send(ctx context.Context, msg gmail.OutgoingMessage) (*gmail.SendReceipt, error)
	CreateDraft(ctx context.Context, msg gmail.OutgoingMessage) (*gmail.Draft, error)
	ListMessages(ctx context.Context, query string, labelIDs []string, maxResults int64) ([]gmail.MessageSummary, error)
	GetMessage(ctx context.Context, id, format string) (*gmail.Message, error)
	ListThreads(ctx context.Context, query string, maxResults int64) ([]gmail.Thread, error)
	ListLabels(ctx context.Context) ([]gmail.Label, error)
	ModifyLabels(ctx context.Context, messageID string, add, remove []string) (*gmail.MessageSummary, error)
	Trash(ctx context.Context, messageID string) error
	GetAttachment(ctx context.Context, messageID, attachmentID string) (*gmail.Attachment, error)
	Profile(ctx context.Context) (*gmail.Profile, error)
	SearchPeople(ctx context.Context, query string, pageSize int64) ([]gmail.Person, error)
}

// Provider resolves the backend for an account at dispatch time, so clients
// can be created lazily per account.
type Provider func(ctx context.Context, account string) (Backend, error)

// accountField is shared by every capability so callers can address one of
// several linked Google accounts.
func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

// Register declares all Gmail capabilities against reg.
func Register(reg *capability.Registry, p Provider) error {
	return reg.RegisterAll(
		sendEmail(p),
		createDraft(p),
		replyToThread(p),
		fetchEmails(p),
		getMessage(p),
		listThreads(p),
		listLabels(p),
		addLabel(p),
		removeLabel(p),
		moveToTrash(p),
		getAttachment(p),
		getProfile(p),
		searchPeople(p),
	)
}

func outgoingFromInput(input map[string]any) gmail.OutgoingMessage {
	return gmail.OutgoingMessage{
		To:      capability.StringListArg(input, "to"),
		Cc:      capability.StringListArg(input, "cc"),
		Bcc:     capability.StringListArg(input, "bcc"),
		Subject: capability.StringArg(input, "subject", ""),
		Body:    capability.StringArg(input, "body", ""),
		HTML:    capability.BoolArg(input, "isHtml", false),
	}
}

func sendEmail(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_SEND_EMAIL",
		Name:        "Send Email",
		Description: "Send an email from the user's Gmail account. Supports plain text and HTML bodies, CC and BCC.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.List("to", capability.String(""), capability.Required(),
				capability.Description("Recipient email addresses")),
			capability.List("cc", capability.String(""),
				capability.Description("CC email addresses")),
			capability.List("bcc", capability.String(""),
				capability.Description("BCC email addresses")),
			capability.String("subject", capability.Required(),
				capability.Description("Email subject line")),
			capability.String("body", capability.Required(),
				capability.Description("Email body content")),
			capability.Boolean("isHtml", capability.Default(false),
				capability.Description("Whether the body is HTML")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.Send(ctx, outgoingFromInput(input))
		},
	}
}

func createDraft(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_CREATE_DRAFT",
		Name:        "Create Draft",
		Description: "Create a draft email in the user's Gmail account without sending it.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.List("to", capability.String(""), capability.Required(),
				capability.Description("Recipient email addresses")),
			capability.String("subject", capability.Required(),
				capability.Description("Email subject line")),
			capability.String("body", capability.Required(),
				capability.Description("Email body content")),
			capability.Boolean("isHtml", capability.Default(false),
				capability.Description("Whether the body is HTML")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.CreateDraft(ctx, outgoingFromInput(input))
		},
	}
}

func replyToThread(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_REPLY_TO_THREAD",
		Name:        "Reply To Thread",
		Description: "Send a reply on an existing Gmail thread.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("threadId", capability.Required(),
				capability.Description("The thread to reply on")),
			capability.List("to", capability.String(""), capability.Required(),
				capability.Description("Recipient email addresses")),
			capability.String("body", capability.Required(),
				capability.Description("Reply body content")),
			capability.Boolean("isHtml", capability.Default(false),
				capability.Description("Whether the body is HTML")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			msg := outgoingFromInput(input)
			msg.ThreadID = capability.StringArg(input, "threadId", "")
			return b.Send(ctx, msg)
		},
	}
}

func fetchEmails(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_FETCH_EMAILS",
		Name:        "Fetch Emails",
		Description: "List emails matching a Gmail search query (e.g. 'in:inbox', 'from:user@example.com is:unread').",
		Schema: capability.NewSchema(
			accountField(),
			capability.String("query", capability.Default("in:inbox"),
				capability.Description("Gmail search query")),
			capability.List("labelIds", capability.String(""),
				capability.Description("Restrict to messages with all of these label IDs")),
			capability.Integer("maxResults", capability.Default(10),
				capability.Description("Maximum number of messages to return")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			msgs, err := b.ListMessages(ctx,
				capability.StringArg(input, "query", "in:inbox"),
				capability.StringListArg(input, "labelIds"),
				capability.IntArg(input, "maxResults", 10))
			if err != nil {
				return nil, err
			}
			return map[string]any{"messages": msgs, "count": len(msgs)}, nil
		},
	}
}

func getMessage(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_GET_MESSAGE",
		Name:        "Get Message",
		Description: "Fetch a single Gmail message by ID, including its decoded body and attachment metadata.",
		Schema: capability.NewSchema(
			accountField(),
			capability.String("messageId", capability.Required(),
				capability.Description("The message ID")),
			capability.Enum("format", []string{"full", "metadata", "minimal"},
				capability.Default("full"),
				capability.Description("How much of the message to fetch")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.GetMessage(ctx,
				capability.StringArg(input, "messageId", ""),
				capability.StringArg(input, "format", "full"))
		},
	}
}

func listThreads(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_LIST_THREADS",
		Name:        "List Threads",
		Description: "List Gmail threads matching a search query.",
		Schema: capability.NewSchema(
			accountField(),
			capability.String("query", capability.Default("in:inbox"),
				capability.Description("Gmail search query")),
			capability.Integer("maxResults", capability.Default(10),
				capability.Description("Maximum number of threads to return")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			threads, err := b.ListThreads(ctx,
				capability.StringArg(input, "query", "in:inbox"),
				capability.IntArg(input, "maxResults", 10))
			if err != nil {
				return nil, err
			}
			return map[string]any{"threads": threads, "count": len(threads)}, nil
		},
	}
}

func listLabels(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_LIST_LABELS",
		Name:        "List Labels",
		Description: "List all labels in the user's Gmail account.",
		Schema:      capability.NewSchema(accountField()),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			labels, err := b.ListLabels(ctx)
			if err != nil {
				return nil, err
			}
			return map[string]any{"labels": labels, "count": len(labels)}, nil
		},
	}
}

func addLabel(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_ADD_LABEL",
		Name:        "Add Label",
		Description: "Add one or more labels to a Gmail message.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("messageId", capability.Required(),
				capability.Description("The message ID")),
			capability.List("labelIds", capability.String(""), capability.Required(),
				capability.Description("Label IDs to add")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.ModifyLabels(ctx,
				capability.StringArg(input, "messageId", ""),
				capability.StringListArg(input, "labelIds"), nil)
		},
	}
}

func removeLabel(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_REMOVE_LABEL",
		Name:        "Remove Label",
		Description: "Remove one or more labels from a Gmail message.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("messageId", capability.Required(),
				capability.Description("The message ID")),
			capability.List("labelIds", capability.String(""), capability.Required(),
				capability.Description("Label IDs to remove")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.ModifyLabels(ctx,
				capability.StringArg(input, "messageId", ""),
				nil, capability.StringListArg(input, "labelIds"))
		},
	}
}

func moveToTrash(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_MOVE_TO_TRASH",
		Name:        "Move To Trash",
		Description: "Move a Gmail message to the trash.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("messageId", capability.Required(),
				capability.Description("The message ID")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			messageID := capability.StringArg(input, "messageId", "")
			if err := b.Trash(ctx, messageID); err != nil {
				return nil, err
			}
			return map[string]any{"messageId": messageID, "trashed": true}, nil
		},
	}
}

func getAttachment(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_GET_ATTACHMENT",
		Name:        "Get Attachment",
		Description: "Download an attachment from a Gmail message. Content is returned base64url encoded.",
		Schema: capability.NewSchema(
			accountField(),
			capability.String("messageId", capability.Required(),
				capability.Description("The message ID")),
			capability.String("attachmentId", capability.Required(),
				capability.Description("The attachment ID from the message's attachment list")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.GetAttachment(ctx,
				capability.StringArg(input, "messageId", ""),
				capability.StringArg(input, "attachmentId", ""))
		},
	}
}

func getProfile(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_GET_PROFILE",
		Name:        "Get Profile",
		Description: "Get the user's Gmail profile: address, message and thread counts.",
		Schema:      capability.NewSchema(accountField()),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.Profile(ctx)
		},
	}
}

func searchPeople(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GMAIL_SEARCH_PEOPLE",
		Name:        "Search People",
		Description: "Search the user's contacts and directory by name or email.",
		Schema: capability.NewSchema(
			accountField(),
			capability.String("query", capability.Required(),
				capability.Description("Name or email fragment to search for")),
			capability.Integer("pageSize", capability.Default(10),
				capability.Description("Maximum number of contacts to return")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			people, err := b.SearchPeople(ctx,
				capability.StringArg(input, "query", ""),
				capability.IntArg(input, "pageSize", 10))
			if err != nil {
				return nil, err
			}
			return map[string]any{"people": people, "count": len(people)}, nil
		},
	}
}
