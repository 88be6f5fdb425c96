package domain

import "context"

// Attendee represents a registration of one email address for one event.
// (EventID, Email) is unique; the same address may register for other events.
type Attendee struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	EventID string `json:"event_id"`
}

// NewAttendee returns a new Attendee. ID is assigned by the repository on insert.
func NewAttendee(name, email, eventID string) *Attendee {
	return &Attendee{
		Name:    name,
		Email:   email,
		EventID: eventID,
	}
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	// Register inserts the attendee inside a transaction that locks the event
	// row and re-checks capacity, so concurrent registrations near the
	// capacity boundary serialize. Returns ErrNotFound, ErrCapacityFull or
	// ErrAlreadyRegistered on rule violations.
	Register(ctx context.Context, attendee *Attendee) error
	CountByEventID(ctx context.Context, eventID string) (int, error)
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Attendee, error)
}
