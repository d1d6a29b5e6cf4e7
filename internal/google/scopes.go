package google

// DefaultOAuthScopes are the scopes requested during authorization. They
// cover every live backend the capability catalog can run against:
//   - Gmail: full access (read, modify, send)
//   - Calendar: full access
//   - Drive: full access (files, comments, sharing)
//   - Tasks: full access
//   - Contacts: read-only (people search)
var DefaultOAuthScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Gmail
	"https://mail.google.com/",

	// Calendar
	"https://www.googleapis.com/auth/calendar",

	// Drive
	"https://www.googleapis.com/auth/drive",

	// Tasks
	"https://www.googleapis.com/auth/tasks",

	// Contacts
	"https://www.googleapis.com/auth/contacts.readonly",
	"https://www.googleapis.com/auth/contacts.other.readonly",
	"https://www.googleapis.com/auth/directory.readonly",
}
