package drive

import (
	"context"
	"testing"
	"time"

	drive "google.golang.org/api/drive/v3"
)

func TestToFileInfo(t *testing.T) {
	f := toFileInfo(&drive.File{
		Id:           "file123",
		Name:         "test.pdf",
		MimeType:     "application/pdf",
		Size:         1024,
		CreatedTime:  "2026-01-01T10:00:00Z",
		ModifiedTime: "2026-01-02T15:30:00Z",
		TrashedTime:  "2026-01-03T20:00:00Z",
		Parents:      []string{"parent1"},
		Shared:       true,
		Trashed:      true,
		Owners: []*drive.User{
			{DisplayName: "Test User", EmailAddress: "test@example.com"},
		},
	})

	if f.ID != "file123" || f.Name != "test.pdf" || f.Size != 1024 {
		t.Errorf("unexpected file info: %+v", f)
	}
	if f.CreatedTime.IsZero() || f.ModifiedTime.Day() != 2 {
		t.Errorf("timestamps not parsed: %+v", f)
	}
	if f.TrashedTime == nil || f.TrashedTime.Day() != 3 {
		t.Errorf("trashed time not parsed: %+v", f.TrashedTime)
	}
	if len(f.Owners) != 1 || f.Owners[0].EmailAddress != "test@example.com" {
		t.Errorf("owners not converted: %+v", f.Owners)
	}
}

func TestToFileInfoInvalidTimestamps(t *testing.T) {
	f := toFileInfo(&drive.File{Id: "f", CreatedTime: "not a time"})
	if !f.CreatedTime.IsZero() {
		t.Error("invalid timestamp should leave zero time")
	}
}

func TestToComment(t *testing.T) {
	c := toComment(&drive.Comment{
		Id:          "c1",
		Content:     "Looks good",
		CreatedTime: "2026-01-01T10:00:00Z",
		Resolved:    true,
		Author:      &drive.User{DisplayName: "Reviewer"},
		Replies: []*drive.Reply{
			{Id: "r1", Content: "Thanks", CreatedTime: "2026-01-01T11:00:00Z"},
		},
	})

	if c.ID != "c1" || !c.Resolved || c.Author.DisplayName != "Reviewer" {
		t.Errorf("unexpected comment: %+v", c)
	}
	if len(c.Replies) != 1 || c.Replies[0].Content != "Thanks" {
		t.Errorf("replies not converted: %+v", c.Replies)
	}
}

func TestExportMimeType(t *testing.T) {
	cases := map[string]string{
		"application/vnd.google-apps.document":     "text/plain",
		"application/vnd.google-apps.spreadsheet":  "text/csv",
		"application/vnd.google-apps.presentation": "text/plain",
		"application/pdf":                          "",
		"image/png":                                "",
	}
	for mime, want := range cases {
		if got := exportMimeType(mime); got != want {
			t.Errorf("exportMimeType(%q) = %q, want %q", mime, got, want)
		}
	}
}

func TestOfflineBackend(t *testing.T) {
	o := NewOffline("work")
	ctx := context.Background()

	uploaded, err := o.UploadFile(ctx, UploadInput{
		Name:     "report.pdf",
		Content:  []byte("content"),
		MimeType: "application/pdf",
		Parents:  []string{"folder-1"},
	})
	if err != nil {
		t.Fatalf("offline upload failed: %v", err)
	}
	if uploaded.ID == "" || uploaded.Size != 7 {
		t.Errorf("unexpected upload result: %+v", uploaded)
	}
	if len(uploaded.Owners) != 1 || uploaded.Owners[0].EmailAddress != "work@example.com" {
		t.Errorf("owner should reflect the account: %+v", uploaded.Owners)
	}

	if _, err := o.UploadFile(ctx, UploadInput{}); err == nil {
		t.Error("offline upload should require a name")
	}

	folder, err := o.CreateFolder(ctx, "Reports", nil)
	if err != nil {
		t.Fatalf("offline folder failed: %v", err)
	}
	if folder.MimeType != FolderMimeType {
		t.Errorf("folder mime type = %q", folder.MimeType)
	}

	// Unresolved only by default.
	comments, err := o.ListComments(ctx, "f1", false, 0)
	if err != nil {
		t.Fatalf("offline comments failed: %v", err)
	}
	for _, c := range comments {
		if c.Resolved {
			t.Errorf("resolved comment leaked: %+v", c)
		}
	}

	all, _ := o.ListComments(ctx, "f1", true, 0)
	if len(all) <= len(comments) {
		t.Error("includeResolved should return more comments")
	}

	content, err := o.DownloadFile(ctx, "f1")
	if err != nil || content.Data == "" {
		t.Errorf("offline download failed: %v %+v", err, content)
	}

	if uploaded.ModifiedTime.After(time.Now().Add(time.Minute)) {
		t.Error("fabricated modified time should not be in the future")
	}
}
