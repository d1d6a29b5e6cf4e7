// Package tasks_caps declares the GOOGLETASKS_* capability catalog: task
// lists and tasks, including subtasks, completion and reordering.
package tasks_caps
