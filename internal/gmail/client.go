package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"

	"github.com/calverra/workdeck/internal/google"
)

// Client wraps the Gmail Users service and the People service for one
// account.
type Client struct {
	svc       *gmail.UsersService
	peopleSvc *people.Service
	account   string
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the account.
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a Gmail client authenticated for the account.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	httpClient, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	peopleSvc, err := people.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}

	return &Client{
		svc:       svc.Users,
		peopleSvc: peopleSvc,
		account:   account,
	}, nil
}

// Send sends msg. When msg.ThreadID is set the message is threaded as a
// reply.
func (c *Client) Send(ctx context.Context, msg OutgoingMessage) (*SendReceipt, error) {
	raw, err := encodeRFC2822(msg)
	if err != nil {
		return nil, err
	}
	m := &gmail.Message{Raw: raw, ThreadId: msg.ThreadID}
	sent, err := c.svc.Messages.Send("me", m).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return &SendReceipt{
		MessageID: sent.Id,
		ThreadID:  sent.ThreadId,
		LabelIDs:  sent.LabelIds,
	}, nil
}

// CreateDraft stores msg as a draft.
func (c *Client) CreateDraft(ctx context.Context, msg OutgoingMessage) (*Draft, error) {
	raw, err := encodeRFC2822(msg)
	if err != nil {
		return nil, err
	}
	draft, err := c.svc.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{Raw: raw, ThreadId: msg.ThreadID},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	out := &Draft{ID: draft.Id}
	if draft.Message != nil {
		out.Message = MessageSummary{
			ID:       draft.Message.Id,
			ThreadID: draft.Message.ThreadId,
			Subject:  msg.Subject,
		}
	}
	return out, nil
}

// ListMessages lists message summaries matching the query.
func (c *Client) ListMessages(ctx context.Context, query string, labelIDs []string, maxResults int64) ([]MessageSummary, error) {
	req := c.svc.Messages.List("me").MaxResults(maxResults)
	if query != "" {
		req.Q(query)
	}
	if len(labelIDs) > 0 {
		req.LabelIds(labelIDs...)
	}
	res, err := req.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	summaries := make([]MessageSummary, 0, len(res.Messages))
	for _, m := range res.Messages {
		full, err := c.svc.Messages.Get("me", m.Id).Format("metadata").
			MetadataHeaders("From", "To", "Subject", "Date").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get message %s: %w", m.Id, err)
		}
		summaries = append(summaries, toSummary(full))
	}
	return summaries, nil
}

// GetMessage fetches one message. format is "full", "metadata" or
// "minimal".
func (c *Client) GetMessage(ctx context.Context, id, format string) (*Message, error) {
	m, err := c.svc.Messages.Get("me", id).Format(format).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", id, err)
	}

	out := &Message{MessageSummary: toSummary(m)}
	if m.Payload != nil {
		out.Body = extractBody(m.Payload)
		out.Attachments = extractAttachments(m.Payload)
	}
	return out, nil
}

// ListThreads lists threads matching the query.
func (c *Client) ListThreads(ctx context.Context, query string, maxResults int64) ([]Thread, error) {
	req := c.svc.Threads.List("me").MaxResults(maxResults)
	if query != "" {
		req.Q(query)
	}
	res, err := req.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	threads := make([]Thread, 0, len(res.Threads))
	for _, t := range res.Threads {
		threads = append(threads, Thread{ID: t.Id, Snippet: t.Snippet})
	}
	return threads, nil
}

// ListLabels lists the account's labels.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	res, err := c.svc.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	labels := make([]Label, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, Label{
			ID:             l.Id,
			Name:           l.Name,
			Type:           l.Type,
			MessagesTotal:  l.MessagesTotal,
			MessagesUnread: l.MessagesUnread,
		})
	}
	return labels, nil
}

// ModifyLabels adds and removes labels on a message.
func (c *Client) ModifyLabels(ctx context.Context, messageID string, add, remove []string) (*MessageSummary, error) {
	m, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    add,
		RemoveLabelIds: remove,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to modify labels on message %s: %w", messageID, err)
	}
	summary := toSummary(m)
	return &summary, nil
}

// Trash moves a message to the trash.
func (c *Client) Trash(ctx context.Context, messageID string) error {
	if _, err := c.svc.Messages.Trash("me", messageID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to trash message %s: %w", messageID, err)
	}
	return nil
}

// GetAttachment fetches attachment content from a message.
func (c *Client) GetAttachment(ctx context.Context, messageID, attachmentID string) (*Attachment, error) {
	body, err := c.svc.Messages.Attachments.Get("me", messageID, attachmentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return &Attachment{
		AttachmentInfo: AttachmentInfo{ID: attachmentID, Size: body.Size},
		Data:           body.Data,
	}, nil
}

// Profile returns the mailbox profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	p, err := c.svc.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &Profile{
		EmailAddress:  p.EmailAddress,
		MessagesTotal: p.MessagesTotal,
		ThreadsTotal:  p.ThreadsTotal,
		HistoryID:     p.HistoryId,
	}, nil
}

// SearchPeople searches the user's contacts and directory.
func (c *Client) SearchPeople(ctx context.Context, query string, pageSize int64) ([]Person, error) {
	res, err := c.peopleSvc.People.SearchContacts().Query(query).
		ReadMask("names,emailAddresses").PageSize(pageSize).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search people: %w", err)
	}

	persons := make([]Person, 0, len(res.Results))
	for _, r := range res.Results {
		if r.Person == nil {
			continue
		}
		p := Person{ResourceName: r.Person.ResourceName}
		if len(r.Person.Names) > 0 {
			p.DisplayName = r.Person.Names[0].DisplayName
		}
		if len(r.Person.EmailAddresses) > 0 {
			p.Email = r.Person.EmailAddresses[0].Value
		}
		persons = append(persons, p)
	}
	return persons, nil
}

// encodeRFC2822 builds the base64url-encoded RFC 2822 payload the Gmail API
// expects.
func encodeRFC2822(msg OutgoingMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("message has no recipients")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if len(msg.Cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(msg.Cc, ", "))
	}
	if len(msg.Bcc) > 0 {
		fmt.Fprintf(&b, "Bcc: %s\r\n", strings.Join(msg.Bcc, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	if msg.HTML {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

func toSummary(m *gmail.Message) MessageSummary {
	s := MessageSummary{
		ID:       m.Id,
		ThreadID: m.ThreadId,
		Snippet:  m.Snippet,
		LabelIDs: m.LabelIds,
	}
	for _, l := range m.LabelIds {
		if l == "UNREAD" {
			s.Unread = true
		}
	}
	if m.Payload != nil {
		for _, h := range m.Payload.Headers {
			switch h.Name {
			case "From":
				s.From = h.Value
			case "To":
				s.To = h.Value
			case "Subject":
				s.Subject = h.Value
			case "Date":
				s.Date = h.Value
			}
		}
	}
	return s
}

// extractBody walks the MIME tree and returns the first text/plain part,
// falling back to text/html.
func extractBody(part *gmail.MessagePart) string {
	if body := findBody(part, "text/plain"); body != "" {
		return body
	}
	return findBody(part, "text/html")
}

func findBody(part *gmail.MessagePart, mimeType string) string {
	if part.MimeType == mimeType && part.Body != nil && part.Body.Data != "" {
		decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
		return string(decoded)
	}
	for _, child := range part.Parts {
		if body := findBody(child, mimeType); body != "" {
			return body
		}
	}
	return ""
}

func extractAttachments(part *gmail.MessagePart) []AttachmentInfo {
	var out []AttachmentInfo
	if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
		out = append(out, AttachmentInfo{
			ID:       part.Body.AttachmentId,
			Filename: part.Filename,
			MimeType: part.MimeType,
			Size:     part.Body.Size,
		})
	}
	for _, child := range part.Parts {
		out = append(out, extractAttachments(child)...)
	}
	return out
}
