// Package agent is the programmatic front door: a thin typed layer over the
// capability dispatcher for the common Workspace actions, plus delegation to
// the LLM planner for free-form objectives.
package agent
