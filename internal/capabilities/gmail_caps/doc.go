// Package gmail_caps declares the GMAIL_* capability catalog: sending and
// drafting mail, listing and fetching messages and threads, label
// management, attachments, the mailbox profile and people search.
package gmail_caps
