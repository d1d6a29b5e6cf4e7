package capability

import "time"

// Context carries opaque per-call data to executors. The registry and
// dispatcher thread it through without inspecting it; lifecycle management
// of the connection handle belongs to the hosting process.
type Context struct {
	// Account selects which of the user's linked accounts the call runs
	// against. Empty means "default".
	Account string

	// Connection is an opaque per-user connection handle (for example an
	// OAuth token reference) consumed by live backends.
	Connection string

	// Metadata holds additional opaque key/value pairs.
	Metadata map[string]string
}

// Event is the shape of an inbound trigger notification (new email, event
// updated, ...) that a hosting process may hand to the agent. Delivery is
// entirely the transport's concern; the core only defines the payload.
type Event struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Account    string         `json:"account,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	ReceivedAt time.Time      `json:"receivedAt"`
}
