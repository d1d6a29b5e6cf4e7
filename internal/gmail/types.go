package gmail

// OutgoingMessage describes an email to send or draft.
type OutgoingMessage struct {
	To       []string `json:"to"`
	Cc       []string `json:"cc,omitempty"`
	Bcc      []string `json:"bcc,omitempty"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	HTML     bool     `json:"isHtml,omitempty"`
	ThreadID string   `json:"threadId,omitempty"`
}

// SendReceipt is returned after a message is sent.
type SendReceipt struct {
	MessageID string   `json:"messageId"`
	ThreadID  string   `json:"threadId"`
	LabelIDs  []string `json:"labelIds,omitempty"`
}

// Draft is an unsent message stored in the user's drafts.
type Draft struct {
	ID      string         `json:"draftId"`
	Message MessageSummary `json:"message"`
}

// MessageSummary is the listing view of a message.
type MessageSummary struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"threadId"`
	From     string   `json:"from,omitempty"`
	To       string   `json:"to,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Snippet  string   `json:"snippet,omitempty"`
	Date     string   `json:"date,omitempty"`
	LabelIDs []string `json:"labelIds,omitempty"`
	Unread   bool     `json:"unread"`
}

// Message is a fully fetched message including its decoded body.
type Message struct {
	MessageSummary
	Body        string           `json:"body,omitempty"`
	Attachments []AttachmentInfo `json:"attachments,omitempty"`
}

// AttachmentInfo describes an attachment without its content.
type AttachmentInfo struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// Attachment carries attachment content, base64url encoded as the API
// returns it.
type Attachment struct {
	AttachmentInfo
	Data string `json:"data"`
}

// Thread is the listing view of a conversation.
type Thread struct {
	ID           string `json:"id"`
	Snippet      string `json:"snippet,omitempty"`
	MessageCount int    `json:"messageCount,omitempty"`
}

// Label is a Gmail label.
type Label struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type,omitempty"`
	MessagesTotal  int64  `json:"messagesTotal,omitempty"`
	MessagesUnread int64  `json:"messagesUnread,omitempty"`
}

// Profile is the authenticated user's mailbox profile.
type Profile struct {
	EmailAddress  string `json:"emailAddress"`
	MessagesTotal int64  `json:"messagesTotal"`
	ThreadsTotal  int64  `json:"threadsTotal"`
	HistoryID     uint64 `json:"historyId,omitempty"`
}

// Person is a contact returned by people search.
type Person struct {
	ResourceName string `json:"resourceName"`
	DisplayName  string `json:"displayName,omitempty"`
	Email        string `json:"email,omitempty"`
}
