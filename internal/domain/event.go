package domain

import (
	"context"
	"time"
)

// Event represents a scheduled event with a fixed attendee capacity.
// StartTime, EndTime, CreatedAt and UpdatedAt are always stored in UTC;
// conversion to the configured display timezone happens at the HTTP boundary.
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	MaxCapacity int         `json:"max_capacity"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Attendees   []*Attendee `json:"attendees,omitempty"`
}

// NewEvent returns a new Event with the given fields. ID is assigned by the
// service on create; Attendees is populated only by GetByIDWithAttendees.
func NewEvent(name, location string, startTime, endTime time.Time, maxCapacity int) *Event {
	return &Event{
		Name:        name,
		Location:    location,
		StartTime:   startTime,
		EndTime:     endTime,
		MaxCapacity: maxCapacity,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByName(ctx context.Context, name string) (*Event, error)
	// GetByIDWithAttendees eagerly loads the event's attendee roster.
	GetByIDWithAttendees(ctx context.Context, id string) (*Event, error)
	// ListUpcoming returns events with start_time >= from, ordered by
	// start_time then id, with the given limit and offset.
	ListUpcoming(ctx context.Context, from time.Time, limit, offset int) ([]*Event, error)
}

// EventService defines the event-facing operations exposed over HTTP.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	ListUpcomingEvents(ctx context.Context, page int) ([]*Event, error)
	// RegisterAttendee registers the attendee for the event and returns the
	// event (without its roster).
	RegisterAttendee(ctx context.Context, eventID string, attendee *Attendee) (*Event, error)
	// GetEventWithAttendees returns the event with its full attendee roster.
	GetEventWithAttendees(ctx context.Context, eventID string) (*Event, error)
}
