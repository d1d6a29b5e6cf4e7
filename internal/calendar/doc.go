// Package calendar provides a client for the Google Calendar API.
//
// It covers event CRUD, natural-language quick-add, RSVP responses,
// calendar listing and free-slot search across multiple calendars. An
// offline backend fabricates equivalent data for accounts without a
// Google connection.
package calendar
