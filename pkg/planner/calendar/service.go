// Package calendar defines the calendar collaborator the planner pushes
// finalized events to, and a local ICS-file implementation of it.
package calendar

import (
	"context"
	"time"
)

// Window bounds a listing query.
type Window struct {
	Start time.Time
	End   time.Time
}

// Event is one calendar entry. Times are ISO-8601-ish local strings paired
// with an IANA timezone name; the service owns timezone conversion.
type Event struct {
	ID            string
	Summary       string
	Location      string
	Description   string
	Start         string
	End           string
	StartTimezone string
	EndTimezone   string
}

// Service is the external calendar collaborator.
type Service interface {
	// ListEvents returns the events of calendarID inside the window,
	// rendered in the given timezone.
	ListEvents(ctx context.Context, calendarID string, window Window, timezone string) ([]Event, error)

	// AddEvent inserts an event and returns a confirmation message.
	AddEvent(ctx context.Context, ev Event) (string, error)

	// UpdateOrCancelEvent updates the event when update is non-nil and
	// cancels it otherwise, returning a confirmation message.
	UpdateOrCancelEvent(ctx context.Context, calendarID, eventID string, update *Event) (string, error)
}
