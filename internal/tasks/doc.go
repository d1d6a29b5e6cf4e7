// Package tasks provides a client for the Google Tasks API.
//
// It covers task lists and tasks: create, update, complete, delete and
// move, including subtasks and due-date filters. An offline backend
// fabricates equivalent data for accounts without a Google connection.
package tasks
