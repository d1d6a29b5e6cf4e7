// Package cmd implements the command-line interface for workdeck.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the capability catalog to AI assistants
//   - run: Run a natural-language objective through the Claude planning loop
//   - capabilities: List the capability catalog
//   - generate-docs: Generate markdown documentation for all capabilities
//   - version: Display version information
package cmd
