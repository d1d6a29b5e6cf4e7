// Package calendar_caps declares the GOOGLECALENDAR_* capability catalog:
// event CRUD, quick-add, RSVP, calendar listing and free-slot search.
package calendar_caps
