package sheets_caps

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
	assert.Len(t, reg.Slugs(), 9)
	return capability.NewDispatcher(reg)
}

func TestCreateSpreadsheetDefaultsSheet(t *testing.T) {
	disp := newCatalog(t)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug:  "GOOGLESHEETS_CREATE_SPREADSHEET",
		Input: map[string]any{"title": "Budget"},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	data := res.Data.(map[string]any)
	sheets := data["sheets"].([]map[string]any)
	require.Len(t, sheets, 1)
	assert.Equal(t, "Sheet1", sheets[0]["title"])
}

func TestUpdateValuesCountsCells(t *testing.T) {
	disp := newCatalog(t)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLESHEETS_UPDATE_VALUES",
		Input: map[string]any{
			"spreadsheetId": "s1",
			"range":         "Sheet1!A1:B2",
			"values": []any{
				[]any{"a", "b"},
				[]any{"c", "d"},
			},
		},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	data := res.Data.(map[string]any)
	assert.Equal(t, 2, data["updatedRows"])
	assert.Equal(t, 4, data["updatedCells"])
}

func TestAppendRowsRejectsEmpty(t *testing.T) {
	disp := newCatalog(t)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug: "GOOGLESHEETS_APPEND_ROWS",
		Input: map[string]any{
			"spreadsheetId": "s1",
			"values":        []any{},
		},
	}, capability.Context{})

	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Error, "no rows")
}

func TestBatchUpdateValidatesKind(t *testing.T) {
	disp := newCatalog(t)
	ctx := context.Background()

	res := disp.Dispatch(ctx, capability.Request{
		Slug: "GOOGLESHEETS_BATCH_UPDATE",
		Input: map[string]any{
			"spreadsheetId": "s1",
			"requests": []any{
				map[string]any{"kind": "formatCells"},
			},
		},
	}, capability.Context{})
	assert.False(t, res.Succeeded, "unsupported request kind should fail validation")

	res = disp.Dispatch(ctx, capability.Request{
		Slug: "GOOGLESHEETS_BATCH_UPDATE",
		Input: map[string]any{
			"spreadsheetId": "s1",
			"requests": []any{
				map[string]any{"kind": "deleteSheet", "sheetId": 1},
				map[string]any{"kind": "sortRange", "range": "A1:C10"},
			},
		},
	}, capability.Context{})
	require.True(t, res.Succeeded, res.Error)
	data := res.Data.(map[string]any)
	assert.Equal(t, []string{"deleteSheet", "sortRange"}, data["applied"])
}

func TestGetValuesReturnsGrid(t *testing.T) {
	disp := newCatalog(t)

	res := disp.Dispatch(context.Background(), capability.Request{
		Slug:  "GOOGLESHEETS_GET_VALUES",
		Input: map[string]any{"spreadsheetId": "s1", "range": "Sheet1!A1:C3"},
	}, capability.Context{})

	require.True(t, res.Succeeded, res.Error)
	data := res.Data.(map[string]any)
	values := data["values"].([][]any)
	assert.NotEmpty(t, values)
	assert.Equal(t, "Sheet1!A1:C3", data["range"])
}
