// Package planner drives the capability catalog from an Anthropic Claude
// model. It advertises every registered capability as a tool, runs the
// Messages tool-use loop until the model stops asking for tools, and
// dispatches each requested invocation through the capability dispatcher.
package planner
