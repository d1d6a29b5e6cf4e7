package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Offline fabricates plausible Gmail data without touching the API. It is
// the default backend when an account has no Google connection, mirroring
// what the capabilities return before a user links their account.
type Offline struct {
	account string
}

// NewOffline creates an offline Gmail backend for the account.
func NewOffline(account string) *Offline {
	return &Offline{account: account}
}

func (o *Offline) address() string {
	if o.account == "" || o.account == "default" {
		return "user@example.com"
	}
	return fmt.Sprintf("%s@example.com", o.account)
}

// Send pretends to send msg and returns a fabricated receipt.
func (o *Offline) Send(_ context.Context, msg OutgoingMessage) (*SendReceipt, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("message has no recipients")
	}
	threadID := msg.ThreadID
	if threadID == "" {
		threadID = uuid.NewString()
	}
	return &SendReceipt{
		MessageID: uuid.NewString(),
		ThreadID:  threadID,
		LabelIDs:  []string{"SENT"},
	}, nil
}

// CreateDraft pretends to store msg as a draft.
func (o *Offline) CreateDraft(_ context.Context, msg OutgoingMessage) (*Draft, error) {
	return &Draft{
		ID: uuid.NewString(),
		Message: MessageSummary{
			ID:       uuid.NewString(),
			ThreadID: msg.ThreadID,
			Subject:  msg.Subject,
			LabelIDs: []string{"DRAFT"},
		},
	}, nil
}

// ListMessages returns fabricated message summaries.
func (o *Offline) ListMessages(_ context.Context, query string, _ []string, maxResults int64) ([]MessageSummary, error) {
	n := int(maxResults)
	if n > 5 {
		n = 5
	}
	out := make([]MessageSummary, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, MessageSummary{
			ID:       uuid.NewString(),
			ThreadID: uuid.NewString(),
			From:     fmt.Sprintf("sender%d@example.com", i+1),
			To:       o.address(),
			Subject:  fmt.Sprintf("Sample message %d", i+1),
			Snippet:  fmt.Sprintf("Placeholder result %d for query %q", i+1, query),
			Date:     time.Now().Add(-time.Duration(i) * time.Hour).Format(time.RFC1123Z),
			LabelIDs: []string{"INBOX"},
			Unread:   i == 0,
		})
	}
	return out, nil
}

// GetMessage returns a fabricated message.
func (o *Offline) GetMessage(_ context.Context, id, _ string) (*Message, error) {
	return &Message{
		MessageSummary: MessageSummary{
			ID:       id,
			ThreadID: uuid.NewString(),
			From:     "sender@example.com",
			To:       o.address(),
			Subject:  "Sample message",
			Snippet:  "Placeholder message body",
			Date:     time.Now().Format(time.RFC1123Z),
			LabelIDs: []string{"INBOX"},
		},
		Body: "Placeholder message body",
	}, nil
}

// ListThreads returns fabricated threads.
func (o *Offline) ListThreads(_ context.Context, query string, maxResults int64) ([]Thread, error) {
	n := int(maxResults)
	if n > 5 {
		n = 5
	}
	out := make([]Thread, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Thread{
			ID:           uuid.NewString(),
			Snippet:      fmt.Sprintf("Placeholder thread %d for query %q", i+1, query),
			MessageCount: rand.Intn(5) + 1,
		})
	}
	return out, nil
}

// ListLabels returns the system labels every mailbox has.
func (o *Offline) ListLabels(_ context.Context) ([]Label, error) {
	system := []string{"INBOX", "SENT", "DRAFT", "SPAM", "TRASH", "STARRED", "UNREAD"}
	out := make([]Label, 0, len(system))
	for _, name := range system {
		out = append(out, Label{
			ID:             name,
			Name:           name,
			Type:           "system",
			MessagesTotal:  int64(rand.Intn(500)),
			MessagesUnread: int64(rand.Intn(20)),
		})
	}
	return out, nil
}

// ModifyLabels echoes the requested label change.
func (o *Offline) ModifyLabels(_ context.Context, messageID string, add, _ []string) (*MessageSummary, error) {
	return &MessageSummary{
		ID:       messageID,
		ThreadID: uuid.NewString(),
		LabelIDs: append([]string{"INBOX"}, add...),
	}, nil
}

// Trash pretends to trash the message.
func (o *Offline) Trash(_ context.Context, _ string) error {
	return nil
}

// GetAttachment returns fabricated attachment content.
func (o *Offline) GetAttachment(_ context.Context, _, attachmentID string) (*Attachment, error) {
	data := base64.URLEncoding.EncodeToString([]byte("placeholder attachment content"))
	return &Attachment{
		AttachmentInfo: AttachmentInfo{
			ID:       attachmentID,
			Filename: "attachment.txt",
			MimeType: "text/plain",
			Size:     int64(len(data)),
		},
		Data: data,
	}, nil
}

// Profile returns a fabricated mailbox profile.
func (o *Offline) Profile(_ context.Context) (*Profile, error) {
	return &Profile{
		EmailAddress:  o.address(),
		MessagesTotal: int64(rand.Intn(10000)),
		ThreadsTotal:  int64(rand.Intn(5000)),
	}, nil
}

// SearchPeople returns fabricated contacts.
func (o *Offline) SearchPeople(_ context.Context, query string, pageSize int64) ([]Person, error) {
	n := int(pageSize)
	if n > 3 {
		n = 3
	}
	out := make([]Person, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Person{
			ResourceName: "people/" + uuid.NewString(),
			DisplayName:  fmt.Sprintf("Contact %d (%s)", i+1, query),
			Email:        fmt.Sprintf("contact%d@example.com", i+1),
		})
	}
	return out, nil
}
