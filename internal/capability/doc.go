// Package capability implements the typed capability registry and dispatcher
// that back every Workspace action exposed by workdeck.
//
// A capability is declared once, at startup, as a Descriptor: a stable slug,
// a human-readable name and description, a typed input schema and an executor
// function. The Registry owns the immutable set of descriptors; the
// Dispatcher validates raw invocation input against the declared schema,
// executes the matching capability and wraps the outcome in a uniform Result
// envelope. Planning components (the Anthropic planner, the MCP bridge)
// consume descriptors and produce invocation requests; they never call
// executors directly.
package capability
