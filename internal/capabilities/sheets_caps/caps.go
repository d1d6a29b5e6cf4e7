package sheets_caps

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/calverra/workdeck/internal/capability"
)

func accountField() capability.Field {
	return capability.String("account",
		capability.Description("Account name (default: 'default'). Used to manage multiple Google accounts."))
}

func spreadsheetIDField() capability.Field {
	return capability.String("spreadsheetId", capability.Required(),
		capability.Description("The spreadsheet ID"))
}

func rangeField() capability.Field {
	return capability.String("range", capability.Required(),
		capability.Description("A1-notation range, e.g. 'Sheet1!A1:C10'"))
}

func sheetURL(id string) string {
	return "https://docs.google.com/spreadsheets/d/" + id + "/edit"
}

// Register declares all Sheets capabilities against reg.
func Register(reg *capability.Registry) error {
	return reg.RegisterAll(
		createSpreadsheet(),
		getSpreadsheet(),
		listSheets(),
		getValues(),
		updateValues(),
		appendRows(),
		clearValues(),
		addSheet(),
		batchUpdate(),
	)
}

// rowsFromInput converts the generic list-of-lists input into a cell grid.
func rowsFromInput(input map[string]any, name string) ([][]any, error) {
	raw := capability.ListArg(input, name)
	rows := make([][]any, 0, len(raw))
	for i, item := range raw {
		row, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("row %d is not a list of cells", i)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellCount(rows [][]any) int {
	n := 0
	for _, row := range rows {
		n += len(row)
	}
	return n
}

func createSpreadsheet() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESHEETS_CREATE_SPREADSHEET",
		Name:        "Create Spreadsheet",
		Description: "Create a spreadsheet with one or more named sheets.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			capability.String("title", capability.Required(),
				capability.Description("Spreadsheet title")),
			capability.List("sheetTitles", capability.String(""),
				capability.Description("Sheet tab names; a single 'Sheet1' when omitted")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			id := uuid.NewString()
			titles := capability.StringListArg(input, "sheetTitles")
			if len(titles) == 0 {
				titles = []string{"Sheet1"}
			}
			sheets := make([]map[string]any, 0, len(titles))
			for i, title := range titles {
				sheets = append(sheets, map[string]any{"sheetId": i, "title": title})
			}
			return map[string]any{
				"spreadsheetId": id,
				"title":         capability.StringArg(input, "title", ""),
				"url":           sheetURL(id),
				"sheets":        sheets,
			}, nil
		},
	}
}

func getSpreadsheet() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESHEETS_GET_SPREADSHEET",
		Name:        "Get Spreadsheet",
		Description: "Fetch spreadsheet metadata: title, URL and sheet tabs.",
		Schema:      capability.NewSchema(accountField(), spreadsheetIDField()),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			id := capability.StringArg(input, "spreadsheetId", "")
			return map[string]any{
				"spreadsheetId": id,
				"title":         "Sample Spreadsheet",
				"url":           sheetURL(id),
				"sheets": []map[string]any{
					{"sheetId": 0, "title": "Sheet1", "rowCount": 1000, "columnCount": 26},
				},
			}, nil
		},
	}
}

func listSheets() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESHEETS_LIST_SHEETS",
		Name:        "List Sheets",
		Description: "List the sheet tabs of a spreadsheet.",
		Schema:      capability.NewSchema(accountField(), spreadsheetIDField()),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			sheets := []map[string]any{
				{"sheetId": 0, "title": "Sheet1"},
				{"sheetId": 1, "title": "Data"},
			}
			return map[string]any{"sheets": sheets, "count": len(sheets)}, nil
		},
	}
}

func getValues() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESHEETS_GET_VALUES",
		Name:        "Get Values",
		Description: "Read cell values from an A1-notation range.",
		Schema:      capability.NewSchema(accountField(), spreadsheetIDField(), rangeField()),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			values := [][]any{
				{"Name", "Amount", "Date"},
				{"Alpha", rand.Intn(1000), "2026-01-15"},
				{"Beta", rand.Intn(1000), "2026-02-01"},
			}
			return map[string]any{
				"range":  capability.StringArg(input, "range", ""),
				"values": values,
			}, nil
		},
	}
}

func updateValues() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESHEETS_UPDATE_VALUES",
		Name:        "Update Values",
		Description: "Write cell values into an A1-notation range, row by row.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			spreadsheetIDField(),
			rangeField(),
			capability.List("values", capability.List("", capability.String("")),
				capability.Required(),
				capability.Description("Rows of cell values, each cell as a string")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			rows, err := rowsFromInput(input, "values")
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"spreadsheetId": capability.StringArg(input, "spreadsheetId", ""),
				"updatedRange":  capability.StringArg(input, "range", ""),
				"updatedRows":   len(rows),
				"updatedCells":  cellCount(rows),
			}, nil
		},
	}
}

func appendRows() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESHEETS_APPEND_ROWS",
		Name:        "Append Rows",
		Description: "Append rows after the last row of data in a range's sheet.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			spreadsheetIDField(),
			capability.String("range", capability.Default("Sheet1"),
				capability.Description("Sheet or range to append to")),
			capability.List("values", capability.List("", capability.String("")),
				capability.Required(),
				capability.Description("Rows of cell values, each cell as a string")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			rows, err := rowsFromInput(input, "values")
			if err != nil {
				return nil, err
			}
			if len(rows) == 0 {
				return nil, fmt.Errorf("no rows to append")
			}
			return map[string]any{
				"spreadsheetId": capability.StringArg(input, "spreadsheetId", ""),
				"appendedRows":  len(rows),
				"appendedCells": cellCount(rows),
			}, nil
		},
	}
}

func clearValues() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESHEETS_CLEAR_VALUES",
		Name:        "Clear Values",
		Description: "Clear cell values in an A1-notation range, leaving formatting intact.",
		Mutating:    true,
		Schema:      capability.NewSchema(accountField(), spreadsheetIDField(), rangeField()),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"spreadsheetId": capability.StringArg(input, "spreadsheetId", ""),
				"clearedRange":  capability.StringArg(input, "range", ""),
			}, nil
		},
	}
}

func addSheet() capability.Descriptor {
	return capability.Descriptor{
		Slug:        "GOOGLESHEETS_ADD_SHEET",
		Name:        "Add Sheet",
		Description: "Add a new sheet tab to a spreadsheet.",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			spreadsheetIDField(),
			capability.String("title", capability.Required(),
				capability.Description("Sheet tab name")),
			capability.Integer("rowCount", capability.Default(1000),
				capability.Description("Initial number of rows")),
			capability.Integer("columnCount", capability.Default(26),
				capability.Description("Initial number of columns")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			return map[string]any{
				"spreadsheetId": capability.StringArg(input, "spreadsheetId", ""),
				"sheetId":       rand.Intn(1 << 20),
				"title":         capability.StringArg(input, "title", ""),
				"rowCount":      capability.IntArg(input, "rowCount", 1000),
				"columnCount":   capability.IntArg(input, "columnCount", 26),
			}, nil
		},
	}
}

// batchUpdate accepts a restricted request vocabulary rather than the raw
// Sheets batchUpdate surface.
func batchUpdate() capability.Descriptor {
	supported := []string{"deleteSheet", "duplicateSheet", "updateSheetProperties", "sortRange", "autoResizeDimensions"}
	return capability.Descriptor{
		Slug:        "GOOGLESHEETS_BATCH_UPDATE",
		Name:        "Batch Update",
		Description: "Apply structural requests to a spreadsheet: " + strings.Join(supported, ", ") + ".",
		Mutating:    true,
		Schema: capability.NewSchema(
			accountField(),
			spreadsheetIDField(),
			capability.List("requests",
				capability.Object("", []capability.Field{
					capability.Enum("kind", supported, capability.Required(),
						capability.Description("The request type")),
					capability.Integer("sheetId",
						capability.Description("Target sheet ID")),
					capability.String("title",
						capability.Description("New title, for updateSheetProperties")),
					capability.String("range",
						capability.Description("A1 range, for sortRange")),
				}),
				capability.Required(),
				capability.Description("Requests applied in order")),
		),
		Execute: func(_ context.Context, input map[string]any, _ capability.Context) (any, error) {
			requests := capability.ListArg(input, "requests")
			if len(requests) == 0 {
				return nil, fmt.Errorf("no requests to apply")
			}
			applied := make([]string, 0, len(requests))
			for _, r := range requests {
				req := r.(map[string]any)
				applied = append(applied, capability.StringArg(req, "kind", ""))
			}
			return map[string]any{
				"spreadsheetId": capability.StringArg(input, "spreadsheetId", ""),
				"applied":       applied,
				"count":         len(applied),
			}, nil
		},
	}
}
