package drive_caps

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/calverra/workdeck/internal/capability"
	"github.com/calverra/workdeck/internal/drive"
)

// Backend is the Drive surface the executors run against. Implemented by
// drive.Client (live) and drive.Offline (synthesized).
type Backend interface {
	UploadFile(ctx context.Context, input drive.UploadInput) (*drive.FileInfo, error)
	CreateFolder(ctx context.Context, name string, parents []string) (*drive.FileInfo, error)
	ListFiles(ctx context.Context, opts drive.ListOptions) (*drive.FilePage, error)
	GetFile(ctx context.Context, fileID string) (*drive.FileInfo, error)
	DownloadFile(ctx context.Context, fileID string) (*drive.FileContent, error)
	CopyFile(ctx context.Context, fileID, name string, parents []string) (*drive.FileInfo, error)
	MoveFile(ctx context.Context, fileID, newName, newParent string) (*drive.FileInfo, error)
	DeleteFile(ctx context.Context, fileID string) error
	ShareFile(ctx context.Context, fileID string, input drive.ShareInput) (*drive.Permission, error)
	CreateComment(ctx context.Context, fileID, content string) (*drive.Comment, error)
	ListComments(ctx context.Context, fileID string, includeResolved bool, maxResults int64) ([]drive.Comment, error)
}

// Provider resolves the backend for an account at dispatch time.
type Provider func(ctx context.Context, account string) (Backend, error)

func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

func fileIDField() capability.Field {
	return capability.String("fileId", capability.Required(),
		capability.Description("The Drive file ID"))
}

// Register declares all Drive capabilities against reg.
func Register(reg *capability.Registry, p Provider) error {
	return reg.RegisterAll(
		uploadFile(p),
		createFolder(p),
		listFiles(p),
		getFile(p),
		downloadFile(p),
		copyFile(p),
		moveFile(p),
		deleteFile(p),
		shareFile(p),
		createComment(p),
		listComments(p),
	)
}

func uploadFile(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_UPLOAD_FILE",
		Name:        "Upload File",
		Description: "Upload a file to Google Drive. Content is passed base64-encoded.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("name", capability.Required(),
				capability.Description("File name including extension")),
			capability.String("content", capability.Required(),
				capability.Description("Base64-encoded file content")),
			capability.String("mimeType", capability.Default("application/octet-stream"),
				capability.Description("MIME type of the content")),
			capability.String("description",
				capability.Description("Short description stored with the file")),
			capability.String("folderId",
				capability.Description("Parent folder ID, root when omitted")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			content, err := base64.StdEncoding.DecodeString(capability.StringArg(input, "content", ""))
			if err != nil {
				return nil, fmt.Errorf("field content is not valid base64: %w", err)
			}
			var parents []string
			if folder := capability.StringArg(input, "folderId", ""); folder != "" {
				parents = []string{folder}
			}
			return b.UploadFile(ctx, drive.UploadInput{
				Name:        capability.StringArg(input, "name", ""),
				Content:     content,
				MimeType:    capability.StringArg(input, "mimeType", "application/octet-stream"),
				Description: capability.StringArg(input, "description", ""),
				Parents:     parents,
			})
		},
	}
}

func createFolder(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_CREATE_FOLDER",
		Name:        "Create Folder",
		Description: "Create a folder in Google Drive.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("name", capability.Required(),
				capability.Description("Folder name")),
			capability.String("parentId",
				capability.Description("Parent folder ID, root when omitted")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			var parents []string
			if parent := capability.StringArg(input, "parentId", ""); parent != "" {
				parents = []string{parent}
			}
			return b.CreateFolder(ctx, capability.StringArg(input, "name", ""), parents)
		},
	}
}

func listFiles(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_LIST_FILES",
		Name:        "List Files",
		Description: "List or search files using Drive's query syntax, e.g. \"name contains 'report'\" or \"'root' in parents\".",
		Schema: capability.NewSchema(
			accountField(),
			capability.String("query",
				capability.Description("Drive search query; all non-trashed files when omitted")),
			capability.Integer("maxResults", capability.Default(25),
				capability.Description("Maximum number of files to return")),
			capability.String("orderBy",
				capability.Description("Sort order, e.g. 'modifiedTime desc,name'")),
			capability.String("pageToken",
				capability.Description("Token from a previous page of results")),
			capability.Boolean("includeTrashed", capability.Default(false),
				capability.Description("Include files in the trash")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.ListFiles(ctx, drive.ListOptions{
				Query:          capability.StringArg(input, "query", ""),
				MaxResults:     capability.IntArg(input, "maxResults", 25),
				OrderBy:        capability.StringArg(input, "orderBy", ""),
				PageToken:      capability.StringArg(input, "pageToken", ""),
				IncludeTrashed: capability.BoolArg(input, "includeTrashed", false),
			})
		},
	}
}

func getFile(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_GET_FILE",
		Name:        "Get File",
		Description: "Fetch metadata for a single Drive file or folder.",
		Schema:      capability.NewSchema(accountField(), fileIDField()),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.GetFile(ctx, capability.StringArg(input, "fileId", ""))
		},
	}
}

func downloadFile(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_DOWNLOAD_FILE",
		Name:        "Download File",
		Description: "Download file content, base64-encoded. Google Docs and Sheets are exported as text or CSV.",
		Schema:      capability.NewSchema(accountField(), fileIDField()),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.DownloadFile(ctx, capability.StringArg(input, "fileId", ""))
		},
	}
}

func copyFile(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_COPY_FILE",
		Name:        "Copy File",
		Description: "Duplicate a Drive file, optionally with a new name and destination folder.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			fileIDField(),
			capability.String("name",
				capability.Description("Name for the copy; Drive picks one when omitted")),
			capability.String("folderId",
				capability.Description("Destination folder ID")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			var parents []string
			if folder := capability.StringArg(input, "folderId", ""); folder != "" {
				parents = []string{folder}
			}
			return b.CopyFile(ctx,
				capability.StringArg(input, "fileId", ""),
				capability.StringArg(input, "name", ""), parents)
		},
	}
}

func moveFile(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_MOVE_FILE",
		Name:        "Move File",
		Description: "Move a Drive file to another folder and/or rename it.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			fileIDField(),
			capability.String("newName",
				capability.Description("New file name; unchanged when omitted")),
			capability.String("folderId",
				capability.Description("Destination folder ID; unchanged when omitted")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.MoveFile(ctx,
				capability.StringArg(input, "fileId", ""),
				capability.StringArg(input, "newName", ""),
				capability.StringArg(input, "folderId", ""))
		},
	}
}

func deleteFile(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_DELETE_FILE",
		Name:        "Delete File",
		Description: "Permanently delete a Drive file or folder.",
		Mutating:    true,
		Schema:      capability.NewSchema(accountField(), fileIDField()),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			fileID := capability.StringArg(input, "fileId", "")
			if err := b.DeleteFile(ctx, fileID); err != nil {
				return nil, err
			}
			return map[string]any{"fileId": fileID, "deleted": true}, nil
		},
	}
}

func shareFile(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_SHARE_FILE",
		Name:        "Share File",
		Description: "Grant a user, group, domain or anyone access to a Drive file.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			fileIDField(),
			capability.Enum("type", []string{"user", "group", "domain", "anyone"},
				capability.Required(),
				capability.Description("Who the grant applies to")),
			capability.Enum("role", []string{"reader", "commenter", "writer", "organizer"},
				capability.Required(),
				capability.Description("Access level to grant")),
			capability.String("emailAddress",
				capability.Description("Grantee email, required for user and group grants")),
			capability.String("domain",
				capability.Description("Domain name, required for domain grants")),
			capability.Boolean("notify", capability.Default(false),
				capability.Description("Send a notification email to the grantee")),
			capability.String("message",
				capability.Description("Custom text for the notification email")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.ShareFile(ctx, capability.StringArg(input, "fileId", ""), drive.ShareInput{
				Type:         capability.StringArg(input, "type", ""),
				Role:         capability.StringArg(input, "role", ""),
				EmailAddress: capability.StringArg(input, "emailAddress", ""),
				Domain:       capability.StringArg(input, "domain", ""),
				Notify:       capability.BoolArg(input, "notify", false),
				Message:      capability.StringArg(input, "message", ""),
			})
		},
	}
}

func createComment(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_CREATE_COMMENT",
		Name:        "Create Comment",
		Description: "Add a comment to a Drive file.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			fileIDField(),
			capability.String("content", capability.Required(),
				capability.Description("Comment text")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			return b.CreateComment(ctx,
				capability.StringArg(input, "fileId", ""),
				capability.StringArg(input, "content", ""))
		},
	}
}

func listComments(p Provider) capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLEDRIVE_LIST_COMMENTS",
		Name:        "List Comments",
		Description: "List comment threads on a Drive file.",
		Schema: capability.NewSchema(
			accountField(),
			fileIDField(),
			capability.Boolean("includeResolved", capability.Default(false),
				capability.Description("Include resolved comment threads")),
			capability.Integer("maxResults", capability.Default(20),
				capability.Description("Maximum number of comments to return")),
		),
		Execute: func(ctx context.Context, input map[string]any, ec capability.Context) (any, error) {
			b, err := p(ctx, ec.Account)
			if err != nil {
				return nil, err
			}
			comments, err := b.ListComments(ctx,
				capability.StringArg(input, "fileId", ""),
				capability.BoolArg(input, "includeResolved", false),
				capability.IntArg(input, "maxResults", 20))
			if err != nil {
				return nil, err
			}
			return map[string]any{"comments": comments, "count": len(comments)}, nil
		},
	}
}
