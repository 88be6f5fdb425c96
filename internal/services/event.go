package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"eventregistry/internal/domain"
	"eventregistry/internal/timeutil"
)

type eventService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	emailService   domain.EmailService
	pageSize       int
	timezone       string
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService creates an EventService. pageSize is the configured
// pagination limit; timezone is the display zone used in confirmation emails.
func NewEventService(eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	emailService domain.EmailService,
	pageSize int,
	timezone string,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		emailService:   emailService,
		pageSize:       pageSize,
		timezone:       timezone,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// CreateEvent validates and stores a new event. Checks run in a fixed order;
// the first failure wins: input present, date range, capacity, name unused.
func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event == nil || event.Name == "" {
		return domain.ErrInvalidInput
	}

	now := s.now().UTC()
	if event.StartTime.After(event.EndTime) || event.StartTime.Before(now) {
		return domain.ErrInvalidDateRange
	}
	if event.MaxCapacity <= 0 {
		return domain.ErrInvalidCapacity
	}

	_, err := s.eventRepo.GetByName(ctx, event.Name)
	if err == nil {
		return domain.ErrDuplicateName
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get event by name: %w", err)
	}

	event.ID = uuid.NewString()
	event.StartTime = timeutil.ToUTC(event.StartTime)
	event.EndTime = timeutil.ToUTC(event.EndTime)
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// ListUpcomingEvents returns the page-th page of events whose start time is
// not in the past, ordered by start time then id.
func (s *eventService) ListUpcomingEvents(ctx context.Context, page int) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if page < 1 {
		return nil, domain.ErrInvalidPage
	}

	p := domain.PaginationParams{Page: page, PageSize: s.pageSize}
	events, err := s.eventRepo.ListUpcoming(ctx, s.now().UTC(), p.PageSize, p.Offset())
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	if len(events) == 0 {
		return nil, domain.ErrNoResults
	}
	return events, nil
}

// RegisterAttendee registers the attendee for the event. The ordered checks
// give stable error precedence; the repository re-checks capacity and the
// duplicate constraint under a row lock, so a concurrent registration cannot
// slip past them.
func (s *eventService) RegisterAttendee(ctx context.Context, eventID string, attendee *domain.Attendee) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" {
		return nil, domain.ErrInvalidInput
	}
	if attendee == nil || attendee.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	count, err := s.attendeeRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}
	if count >= event.MaxCapacity {
		return nil, domain.ErrCapacityFull
	}

	if _, err := s.attendeeRepo.GetByEventAndEmail(ctx, eventID, attendee.Email); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get attendee: %w", err)
	}

	attendee.EventID = eventID
	if err := s.attendeeRepo.Register(ctx, attendee); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrCapacityFull),
			errors.Is(err, domain.ErrAlreadyRegistered):
			return nil, err
		}
		return nil, fmt.Errorf("register attendee: %w", err)
	}

	s.sendConfirmation(ctx, event, attendee)
	return event, nil
}

// sendConfirmation emails the attendee. Registration already succeeded, so a
// mail failure is logged and swallowed.
func (s *eventService) sendConfirmation(ctx context.Context, event *domain.Event, attendee *domain.Attendee) {
	if s.emailService == nil {
		return
	}
	startsAt := event.StartTime.Format(time.RFC3339)
	if local, err := timeutil.FromUTC(event.StartTime, s.timezone); err == nil {
		startsAt = local.Format(time.RFC3339)
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:         attendee.Email,
		Name:          attendee.Name,
		EventName:     event.Name,
		EventLocation: event.Location,
		StartsAt:      startsAt,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		log.Printf("[EMAIL] confirmation for %s failed: %v", attendee.Email, err)
	}
}

// GetEventWithAttendees returns the event with its roster eagerly loaded.
func (s *eventService) GetEventWithAttendees(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if eventID == "" {
		return nil, domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByIDWithAttendees(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event with attendees: %w", err)
	}
	return event, nil
}
