package drive

import (
	"time"

	drive "google.golang.org/api/drive/v3"
)

// FolderMimeType is the MIME type Drive uses for folders.
const FolderMimeType = "application/vnd.google-apps.folder"

// FileInfo is the metadata shape returned for files and folders.
type FileInfo struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	MimeType       string     `json:"mimeType"`
	Size           int64      `json:"size,omitempty"`
	CreatedTime    time.Time  `json:"createdTime"`
	ModifiedTime   time.Time  `json:"modifiedTime"`
	WebViewLink    string     `json:"webViewLink,omitempty"`
	WebContentLink string     `json:"webContentLink,omitempty"`
	Parents        []string   `json:"parents,omitempty"`
	Owners         []User     `json:"owners,omitempty"`
	Shared         bool       `json:"shared"`
	Trashed        bool       `json:"trashed"`
	TrashedTime    *time.Time `json:"trashedTime,omitempty"`
}

// User is a Drive user reference (owner, permission holder, comment author).
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// Permission is one access grant on a file.
type Permission struct {
	ID string `json:"id"`
	// Type is "user", "group", "domain" or "anyone".
	Type string `json:"type"`
	// Role is "owner", "writer", "commenter" or "reader".
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Domain       string `json:"domain,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// Comment is a comment thread anchored to a file.
type Comment struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Author       User      `json:"author"`
	CreatedTime  time.Time `json:"createdTime"`
	ModifiedTime time.Time `json:"modifiedTime"`
	Resolved     bool      `json:"resolved"`
	Replies      []Reply   `json:"replies,omitempty"`
}

// Reply is one reply in a comment thread.
type Reply struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	Author      User      `json:"author"`
	CreatedTime time.Time `json:"createdTime"`
}

// ListOptions filters a file listing. Query uses Drive's search syntax,
// e.g. "name contains 'report'" or "'root' in parents".
type ListOptions struct {
	Query          string
	MaxResults     int64
	OrderBy        string
	PageToken      string
	IncludeTrashed bool
}

// FilePage is one page of a file listing.
type FilePage struct {
	Files         []FileInfo `json:"files"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
}

// UploadInput carries the metadata and content for an upload.
type UploadInput struct {
	Name        string
	Content     []byte
	MimeType    string
	Description string
	Parents     []string
}

// ShareInput describes one permission grant.
type ShareInput struct {
	Type         string
	Role         string
	EmailAddress string
	Domain       string
	Notify       bool
	Message      string
}

// FileContent is downloaded file content, base64-encoded for binary safety.
type FileContent struct {
	FileInfo
	Data string `json:"data"`
}

func toFileInfo(f *drive.File) FileInfo {
	info := FileInfo{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Size:           f.Size,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		Parents:        f.Parents,
		Shared:         f.Shared,
		Trashed:        f.Trashed,
	}

	if t, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
		info.CreatedTime = t
	}
	if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
		info.ModifiedTime = t
	}
	if f.TrashedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.TrashedTime); err == nil {
			info.TrashedTime = &t
		}
	}

	for _, owner := range f.Owners {
		info.Owners = append(info.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}
	return info
}

func toPermission(p *drive.Permission) Permission {
	return Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		Domain:       p.Domain,
		DisplayName:  p.DisplayName,
	}
}

func toComment(c *drive.Comment) Comment {
	out := Comment{
		ID:       c.Id,
		Content:  c.Content,
		Resolved: c.Resolved,
	}
	if c.Author != nil {
		out.Author = User{DisplayName: c.Author.DisplayName, EmailAddress: c.Author.EmailAddress}
	}
	if t, err := time.Parse(time.RFC3339, c.CreatedTime); err == nil {
		out.CreatedTime = t
	}
	if t, err := time.Parse(time.RFC3339, c.ModifiedTime); err == nil {
		out.ModifiedTime = t
	}
	for _, r := range c.Replies {
		reply := Reply{ID: r.Id, Content: r.Content}
		if r.Author != nil {
			reply.Author = User{DisplayName: r.Author.DisplayName, EmailAddress: r.Author.EmailAddress}
		}
		if t, err := time.Parse(time.RFC3339, r.CreatedTime); err == nil {
			reply.CreatedTime = t
		}
		out.Replies = append(out.Replies, reply)
	}
	return out
}
