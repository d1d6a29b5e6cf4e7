package chat_caps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calverra/workdeck/internal/capability"
)

func newCatalog(t *testing.T) *capability.Dispatcher {
	t.Helper()
	reg := capability.NewRegistry()
	require.NoError(t, Register(reg))
	assert.Len(t, reg.Slugs(), 7)
	return capability.NewDispatcher(reg)
}

func TestSendMessageStartsThread(t *testing.T) {
	disp := newCatalog(t)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLECHAT_SEND_MESSAGE",
		Input: map[string]any{
			"space": "spaces/AAAA1234",
			"text":  "Deploy finished.",
		},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	data := res.Data.(map[string]any)
	assert.Contains(t, data["name"], "spaces/AAAA1234/messages/")
	assert.NotEmpty(t, data["threadKey"], "omitting threadKey should start a new thread")
}

func TestSendMessageKeepsThreadKey(t *testing.T) {
	disp := newCatalog(t)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLECHAT_SEND_MESSAGE",
		Input: map[string]any{
			"space":     "spaces/AAAA1234",
			"text":      "Replying.",
			"threadKey": "thread-7",
		},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	assert.Equal(t, "thread-7", res.Data.(map[string]any)["threadKey"])
}

func TestDeleteMessageValidatesResourceName(t *testing.T) {
	disp := newCatalog(t)
	ctx := context.Background()

	res := disp.Dispatch(ctx, capability.Request{
		Slug:  "GOOGLECHAT_DELETE_MESSAGE",
		Input: map[string]any{"message": "BBBB"},
	}, capability.Context{})
	assert.False(t, res.Succeeded)

	res = disp.Dispatch(ctx, capability.Request{
		Slug:  "GOOGLECHAT_DELETE_MESSAGE",
		Input: map[string]any{"message": "spaces/AAAA1234/messages/BBBB"},
	}, capability.Context{})
	assert.True(t, res.Succeeded, res.Error)
}

func TestAddMemberValidatesEmail(t *testing.T) {
	disp := newCatalog(t)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLECHAT_ADD_MEMBER",
		Input: map[string]any{
			"space": "spaces/AAAA1234",
			"email": "not-an-email",
		},
	}, capability.Context{})

	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "not a valid address")
}

func TestListSpacesHonorsMax(t *testing.T) {
	disp := newCatalog(t)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug:  "GOOGLECHAT_LIST_SPACES",
		Input: map[string]any{"maxResults": 1},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	assert.Equal(t, 1, res.Data.(map[string]any)["count"])
}
