// Package sheets_caps declares the GOOGLESHEETS_* capability catalog:
// spreadsheet creation, value reads and writes, row appends and sheet
// management. Results are synthesized until a Sheets backend is wired up.
package sheets_caps
