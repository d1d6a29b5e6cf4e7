package chat_caps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/calverra/workdeck/internal/capability"
)

func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

func spaceField() capability.Field {
	return capability.String("space", capability.Required(),
		capability.Description("Space resource name, e.g. 'spaces/AAAA1234'"))
}

// Register declares all Chat capabilities against reg.
func Register(reg *capability.Registry) error {
	return reg.RegisterAll(
		listSpaces(),
		getSpace(),
		createSpace(),
		sendMessage(),
		listMessages(),
		deleteMessage(),
		addMember(),
	)
}

func spaceName() string {
	return "spaces/" + strings.ToUpper(uuid.NewString()[:8])
}

func listSpaces() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECHAT_LIST_SPACES",
		Name:        "List Spaces",
		Description: "List Chat spaces the user is a member of.",
		Schema: capability.NewSchema(
			accountField(),
			capability.Integer("maxResults", capability.Default(20),
				capability.Description("Maximum number of spaces to return")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			spaces := []map[string]any{
				{"name": spaceName(), "displayName": "Engineering", "type": "SPACE", "memberCount": 14},
				{"name": spaceName(), "displayName": "Project Atlas", "type": "SPACE", "memberCount": 6},
				{"name": spaceName(), "displayName": "Direct message", "type": "DIRECT_MESSAGE", "memberCount": 2},
			}
			if max := capability.IntArg(input, "maxResults", 20); max < int64(len(spaces)) {
				spaces = spaces[:max]
			}
			return map[string]any{"spaces": spaces, "count": len(spaces)}, nil
		},
	}
}

func getSpace() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECHAT_GET_SPACE",
		Name:        "Get Space",
		Description: "Fetch details of one Chat space.",
		Schema:      capability.NewSchema(accountField(), spaceField()),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"name":        capability.StringArg(input, "space", ""),
				"displayName": "Engineering",
				"type":        "SPACE",
				"memberCount": 14,
				"createdAt":   time.Now().AddDate(0, -6, 0).Format(time.RFC3339),
			}, nil
		},
	}
}

func createSpace() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECHAT_CREATE_SPACE",
		Name:        "Create Space",
		Description: "Create a named Chat space and add the given members.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("displayName", capability.Required(),
				capability.Description("Space name")),
			capability.List("members", capability.String(""),
				capability.Description("Email addresses to invite")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			members := capability.StringListArg(input, "members")
			return map[string]any{
				"name":        spaceName(),
				"displayName": capability.StringArg(input, "displayName", ""),
				"type":        "SPACE",
				"memberCount": len(members) + 1,
			}, nil
		},
	}
}

func sendMessage() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECHAT_SEND_MESSAGE",
		Name:        "Send Message",
		Description: "Send a text message to a Chat space, optionally as a thread reply.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			spaceField(),
			capability.String("text", capability.Required(),
				capability.Description("Message text; supports Chat's markdown subset")),
			capability.String("threadKey",
				capability.Description("Thread to reply in; a new thread when omitted")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			space := capability.StringArg(input, "space", "")
			thread := capability.StringArg(input, "threadKey", "")
			if thread == "" {
				thread = uuid.NewString()
			}
			return map[string]any{
				"name":      space + "/messages/" + uuid.NewString(),
				"space":     space,
				"threadKey": thread,
				"text":      capability.StringArg(input, "text", ""),
				"createdAt": time.Now().Format(time.RFC3339),
			}, nil
		},
	}
}

func listMessages() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECHAT_LIST_MESSAGES",
		Name:        "List Messages",
		Description: "List recent messages in a Chat space, newest first.",
		Schema: capability.NewSchema(
			accountField(),
			spaceField(),
			capability.Integer("maxResults", capability.Default(25),
				capability.Description("Maximum number of messages to return")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			space := capability.StringArg(input, "space", "")
			n := capability.IntArg(input, "maxResults", 25)
			if n > 5 {
				n = 5
			}
			messages := make([]map[string]any, 0, n)
			for i := int64(0); i < n; i++ {
				messages = append(messages, map[string]any{
					"name":      space + "/messages/" + uuid.NewString(),
					"sender":    fmt.Sprintf("users/member%d", i+1),
					"text":      fmt.Sprintf("Placeholder message %d", i+1),
					"createdAt": time.Now().Add(-time.Duration(i) * time.Minute).Format(time.RFC3339),
				})
			}
			return map[string]any{"messages": messages, "count": len(messages)}, nil
		},
	}
}

func deleteMessage() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECHAT_DELETE_MESSAGE",
		Name:        "Delete Message",
		Description: "Delete a message the user sent.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("message", capability.Required(),
				capability.Description("Message resource name, e.g. 'spaces/AAAA1234/messages/BBBB'")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			message := capability.StringArg(input, "message", "")
			if !strings.Contains(message, "/messages/") {
				return nil, fmt.Errorf("message must be a full resource name like 'spaces/X/messages/Y'")
			}
			return map[string]any{"message": message, "deleted": true}, nil
		},
	}
}

func addMember() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLECHAT_ADD_MEMBER",
		Name:        "Add Member",
		Description: "Add a user to a Chat space.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			spaceField(),
			capability.String("email", capability.Required(),
				capability.Description("Email address of the user to add")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			email := capability.StringArg(input, "email", "")
			if !strings.Contains(email, "@") {
				return nil, fmt.Errorf("email %q is not a valid address", email)
			}
			return map[string]any{
				"space":      capability.StringArg(input, "space", ""),
				"membership": "memberships/" + uuid.NewString(),
				"email":      email,
				"role":       "ROLE_MEMBER",
			}, nil
		},
	}
}
