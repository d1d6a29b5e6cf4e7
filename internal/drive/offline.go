package drive

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Offline fabricates plausible Drive data without touching the API.
type Offline struct {
	account string
}

// NewOffline creates an offline Drive backend for the account.
func NewOffline(account string) *Offline {
	return &Offline{account: account}
}

func (o *Offline) owner() User {
	email := "user@example.com"
	if o.account != "" && o.account != "default" {
		email = o.account + "@example.com"
	}
	return User{DisplayName: "Workspace User", EmailAddress: email}
}

func (o *Offline) fabricateFile(name, mimeType string, size int64) FileInfo {
	id := uuid.NewString()
	return FileInfo{
		ID:           id,
		Name:         name,
		MimeType:     mimeType,
		Size:         size,
		CreatedTime:  time.Now().Add(-24 * time.Hour),
		ModifiedTime: time.Now(),
		WebViewLink:  "https://drive.google.com/file/d/" + id + "/view",
		Owners:       []User{o.owner()},
	}
}

// UploadFile echoes the upload as stored metadata.
func (o *Offline) UploadFile(_ context.Context, input UploadInput) (*FileInfo, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	info := o.fabricateFile(input.Name, input.MimeType, int64(len(input.Content)))
	info.Parents = input.Parents
	return &info, nil
}

// CreateFolder fabricates a folder.
func (o *Offline) CreateFolder(_ context.Context, name string, parents []string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}
	info := o.fabricateFile(name, FolderMimeType, 0)
	info.Parents = parents
	return &info, nil
}

// ListFiles returns fabricated files.
func (o *Offline) ListFiles(_ context.Context, opts ListOptions) (*FilePage, error) {
	n := int(opts.MaxResults)
	if n <= 0 || n > 5 {
		n = 5
	}
	page := &FilePage{}
	for i := 0; i < n; i++ {
		page.Files = append(page.Files, o.fabricateFile(
			fmt.Sprintf("document-%d.pdf", i+1), "application/pdf", int64(1024*(i+1))))
	}
	return page, nil
}

// GetFile returns fabricated metadata for the file.
func (o *Offline) GetFile(_ context.Context, fileID string) (*FileInfo, error) {
	info := o.fabricateFile("document.pdf", "application/pdf", 2048)
	info.ID = fileID
	return &info, nil
}

// DownloadFile returns fabricated content.
func (o *Offline) DownloadFile(ctx context.Context, fileID string) (*FileContent, error) {
	info, _ := o.GetFile(ctx, fileID)
	return &FileContent{
		FileInfo: *info,
		Data:     base64.StdEncoding.EncodeToString([]byte("placeholder file content")),
	}, nil
}

// CopyFile fabricates a copy.
func (o *Offline) CopyFile(_ context.Context, fileID, name string, parents []string) (*FileInfo, error) {
	if name == "" {
		name = "Copy of document.pdf"
	}
	info := o.fabricateFile(name, "application/pdf", 2048)
	info.Parents = parents
	return &info, nil
}

// MoveFile echoes the move.
func (o *Offline) MoveFile(ctx context.Context, fileID, newName, newParent string) (*FileInfo, error) {
	info, _ := o.GetFile(ctx, fileID)
	if newName != "" {
		info.Name = newName
	}
	if newParent != "" {
		info.Parents = []string{newParent}
	}
	return info, nil
}

// DeleteFile pretends to delete the file.
func (o *Offline) DeleteFile(_ context.Context, _ string) error {
	return nil
}

// ShareFile echoes the grant.
func (o *Offline) ShareFile(_ context.Context, _ string, input ShareInput) (*Permission, error) {
	if input.Type == "" || input.Role == "" {
		return nil, fmt.Errorf("permission type and role are required")
	}
	return &Permission{
		ID:           uuid.NewString(),
		Type:         input.Type,
		Role:         input.Role,
		EmailAddress: input.EmailAddress,
		Domain:       input.Domain,
	}, nil
}

// CreateComment fabricates a stored comment.
func (o *Offline) CreateComment(_ context.Context, _ string, content string) (*Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}
	return &Comment{
		ID:          uuid.NewString(),
		Content:     content,
		Author:      o.owner(),
		CreatedTime: time.Now(),
	}, nil
}

// ListComments returns fabricated comment threads.
func (o *Offline) ListComments(_ context.Context, _ string, includeResolved bool, maxResults int64) ([]Comment, error) {
	comments := []Comment{
		{
			ID:          uuid.NewString(),
			Content:     "Can you double check this section?",
			Author:      User{DisplayName: "Reviewer", EmailAddress: "reviewer@example.com"},
			CreatedTime: time.Now().Add(-2 * time.Hour),
		},
		{
			ID:          uuid.NewString(),
			Content:     "Fixed the typo here.",
			Author:      o.owner(),
			CreatedTime: time.Now().Add(-26 * time.Hour),
			Resolved:    true,
		},
	}
	out := comments[:0:0]
	for _, c := range comments {
		if c.Resolved && !includeResolved {
			continue
		}
		out = append(out, c)
	}
	if maxResults > 0 && int64(len(out)) > maxResults {
		out = out[:maxResults]
	}
	return out, nil
}
