package domain

import "errors"

// Sentinel errors for the event and attendee rules. Each maps 1:1 to a
// client-facing error at the HTTP boundary; anything else is treated as an
// internal failure.
var (
	ErrNotFound          = errors.New("event not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateRange  = errors.New("start time must not be after end time or in the past")
	ErrInvalidCapacity   = errors.New("maximum capacity should be more than 0")
	ErrDuplicateName     = errors.New("event name already exists")
	ErrInvalidPage       = errors.New("page cannot be negative or zero")
	ErrNoResults         = errors.New("no events found")
	ErrCapacityFull      = errors.New("event attendee slots are full")
	ErrAlreadyRegistered = errors.New("attendee already registered for this event")
)
