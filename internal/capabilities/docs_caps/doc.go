// Package docs_caps declares the GOOGLEDOCS_* capability catalog: document
// creation, text edits, tables and comment threads. Results are synthesized
// until a Docs backend is wired up.
package docs_caps
