// Package gmail provides the Gmail backend used by the GMAIL_* capabilities.
//
// Two implementations exist: Client talks to the Gmail and People APIs with
// the user's OAuth credentials, and Offline fabricates plausible placeholder
// data so the catalog stays fully exercisable without a Google connection.
package gmail
