package drive

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/calverra/workdeck/internal/google"
)

// maxDownloadBytes caps how much file content a download operation returns
// inline. Larger files should be fetched via WebContentLink.
const maxDownloadBytes = 10 << 20

// Client wraps the Google Drive service for one account.
type Client struct {
	svc     *drive.Service
	account string
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// NewClientForAccount creates a Drive client authenticated for the account.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	httpClient, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{svc: svc, account: account}, nil
}

const fileFields = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, webContentLink, parents, owners, shared, trashed, trashedTime"

// UploadFile uploads content as a new file.
func (c *Client) UploadFile(ctx context.Context, input UploadInput) (*FileInfo, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("file name is required")
	}

	file := &drive.File{
		Name:        input.Name,
		Description: input.Description,
		MimeType:    input.MimeType,
		Parents:     input.Parents,
	}

	created, err := c.svc.Files.Create(file).
		Media(bytes.NewReader(input.Content), googleapi.ContentType(input.MimeType)).
		Fields(fileFields).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	info := toFileInfo(created)
	return &info, nil
}

// CreateFolder creates a folder, optionally inside parent folders.
func (c *Client) CreateFolder(ctx context.Context, name string, parents []string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	created, err := c.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: FolderMimeType,
		Parents:  parents,
	}).Fields(fileFields).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	info := toFileInfo(created)
	return &info, nil
}

// ListFiles lists files matching opts.
func (c *Client) ListFiles(ctx context.Context, opts ListOptions) (*FilePage, error) {
	call := c.svc.Files.List().
		Fields(googleapi.Field("nextPageToken, files(" + fileFields + ")"))

	query := opts.Query
	if !opts.IncludeTrashed {
		if query != "" {
			query += " and trashed=false"
		} else {
			query = "trashed=false"
		}
	}
	if query != "" {
		call = call.Q(query)
	}
	if opts.MaxResults > 0 {
		call = call.PageSize(opts.MaxResults)
	}
	if opts.OrderBy != "" {
		call = call.OrderBy(opts.OrderBy)
	}
	if opts.PageToken != "" {
		call = call.PageToken(opts.PageToken)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	page := &FilePage{NextPageToken: res.NextPageToken}
	for _, f := range res.Files {
		page.Files = append(page.Files, toFileInfo(f))
	}
	return page, nil
}

// GetFile retrieves metadata for one file.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	file, err := c.svc.Files.Get(fileID).Fields(fileFields).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	info := toFileInfo(file)
	return &info, nil
}

// DownloadFile fetches file content, base64-encoded. Google-native formats
// (Docs, Sheets) are exported as plain text or CSV first.
func (c *Client) DownloadFile(ctx context.Context, fileID string) (*FileContent, error) {
	info, err := c.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	var resp io.ReadCloser
	if exportMime := exportMimeType(info.MimeType); exportMime != "" {
		r, err := c.svc.Files.Export(fileID, exportMime).Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("failed to export file %s: %w", fileID, err)
		}
		resp = r.Body
	} else {
		r, err := c.svc.Files.Get(fileID).Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
		}
		resp = r.Body
	}
	defer resp.Close()

	data, err := io.ReadAll(io.LimitReader(resp, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	return &FileContent{
		FileInfo: *info,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// exportMimeType maps Google-native formats to an export format, or ""
// for binary files that download as-is.
func exportMimeType(mimeType string) string {
	switch {
	case strings.HasSuffix(mimeType, "apps.document"):
		return "text/plain"
	case strings.HasSuffix(mimeType, "apps.spreadsheet"):
		return "text/csv"
	case strings.HasSuffix(mimeType, "apps.presentation"):
		return "text/plain"
	}
	return ""
}

// CopyFile duplicates a file, optionally renaming it and placing it in
// parent folders.
func (c *Client) CopyFile(ctx context.Context, fileID, name string, parents []string) (*FileInfo, error) {
	copied, err := c.svc.Files.Copy(fileID, &drive.File{
		Name:    name,
		Parents: parents,
	}).Fields(fileFields).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to copy file %s: %w", fileID, err)
	}
	info := toFileInfo(copied)
	return &info, nil
}

// MoveFile moves a file to a new parent folder and optionally renames it.
func (c *Client) MoveFile(ctx context.Context, fileID, newName, newParent string) (*FileInfo, error) {
	existing, err := c.svc.Files.Get(fileID).Fields("parents").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	update := &drive.File{}
	if newName != "" {
		update.Name = newName
	}

	call := c.svc.Files.Update(fileID, update).Fields(fileFields)
	if newParent != "" {
		call = call.AddParents(newParent).RemoveParents(strings.Join(existing.Parents, ","))
	}

	moved, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move file %s: %w", fileID, err)
	}
	info := toFileInfo(moved)
	return &info, nil
}

// DeleteFile permanently deletes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.svc.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

// ShareFile creates a permission on a file.
func (c *Client) ShareFile(ctx context.Context, fileID string, input ShareInput) (*Permission, error) {
	if input.Type == "" || input.Role == "" {
		return nil, fmt.Errorf("permission type and role are required")
	}

	call := c.svc.Permissions.Create(fileID, &drive.Permission{
		Type:         input.Type,
		Role:         input.Role,
		EmailAddress: input.EmailAddress,
		Domain:       input.Domain,
	}).Fields("id, type, role, emailAddress, domain, displayName").
		SendNotificationEmail(input.Notify)
	if input.Notify && input.Message != "" {
		call = call.EmailMessage(input.Message)
	}

	created, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to share file %s: %w", fileID, err)
	}
	perm := toPermission(created)
	return &perm, nil
}

// CreateComment adds a comment to a file.
func (c *Client) CreateComment(ctx context.Context, fileID, content string) (*Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}

	created, err := c.svc.Comments.Create(fileID, &drive.Comment{Content: content}).
		Fields("id, content, author, createdTime, modifiedTime, resolved").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on file %s: %w", fileID, err)
	}
	comment := toComment(created)
	return &comment, nil
}

// ListComments lists comment threads on a file.
func (c *Client) ListComments(ctx context.Context, fileID string, includeResolved bool, maxResults int64) ([]Comment, error) {
	call := c.svc.Comments.List(fileID).
		Fields("comments(id, content, author, createdTime, modifiedTime, resolved, replies)").
		IncludeDeleted(false)
	if maxResults > 0 {
		call = call.PageSize(maxResults)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list comments on file %s: %w", fileID, err)
	}

	var comments []Comment
	for _, c := range res.Comments {
		if c.Resolved && !includeResolved {
			continue
		}
		comments = append(comments, toComment(c))
	}
	return comments, nil
}
