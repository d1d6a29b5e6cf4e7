package server

import (
	"context"
	"testing"

	"github.com/calverra/workdeck/internal/capability"
)

func TestNewServerContext_RegistersCatalog(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	if sc.Registry().Len() == 0 {
		t.Fatal("expected a populated capability catalog")
	}
	if sc.Dispatcher() == nil {
		t.Fatal("expected a dispatcher")
	}

	// Spot-check one capability per service family
	for _, slug := range []string{
		"GMAIL_SEND_EMAIL",
		"GOOGLECALENDAR_CREATE_EVENT",
		"GOOGLEDRIVE_UPLOAD_FILE",
		"GOOGLETASKS_CREATE_TASK",
		"GOOGLEDOCS_CREATE_DOCUMENT",
		"GOOGLESHEETS_APPEND_ROWS",
		"GOOGLESEARCH_SEARCH_WORKSPACE",
	} {
		if _, ok := sc.Registry().Get(slug); !ok {
			t.Errorf("capability %s not registered", slug)
		}
	}
}

func TestServerContext_DispatchOffline(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	// Without a stored token the offline backend serves the dispatch.
	res := sc.Dispatcher().Dispatch(context.Background(), capability.Request{
		Slug: "GMAIL_FETCH_EMAILS",
		Input: map[string]any{
			"query": "is:unread",
		},
	}, capability.Context{Account: "nonexistent-test-account"})

	if !res.Succeeded {
		t.Fatalf("dispatch failed: %s", res.Error)
	}
	if res.Data == nil {
		t.Error("expected data from offline backend")
	}
}

func TestServerContext_BackendCaching(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	defer func() { _ = sc.Shutdown() }()

	b1, err := sc.gmailBackend(context.Background(), "cache-test")
	if err != nil {
		t.Fatalf("gmailBackend() error = %v", err)
	}
	b2, err := sc.gmailBackend(context.Background(), "cache-test")
	if err != nil {
		t.Fatalf("gmailBackend() error = %v", err)
	}
	if b1 != b2 {
		t.Error("expected cached backend to be reused")
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background())
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.IsShutdown() {
		t.Error("expected context to not be shutdown initially")
	}

	if err := sc.Shutdown(); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("expected context to be shutdown")
	}

	// Second shutdown is a no-op
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("expected lifecycle context to be cancelled")
	}
}
