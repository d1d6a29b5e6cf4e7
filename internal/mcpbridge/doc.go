// Package mcpbridge exposes the capability catalog over the Model Context
// Protocol. Each capability becomes one MCP tool, named by its slug, with
// its input schema rendered from the capability schema. Dispatch runs
// through the same dispatcher the planner uses, so validation, logging and
// instrumentation behave identically on both surfaces.
package mcpbridge
