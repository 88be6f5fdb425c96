package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"eventregistry/internal/delivery/http/helpers"
	"eventregistry/internal/domain"
	"eventregistry/internal/timeutil"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// EventController handles the event and attendee routes.
type EventController struct {
	Logger   *slog.Logger
	Service  domain.EventService
	Timezone string
}

func NewEventController(logger *slog.Logger, svc domain.EventService, timezone string) *EventController {
	return &EventController{
		Logger:   logger,
		Service:  svc,
		Timezone: timezone,
	}
}

// CreateEventRequest is the request body for POST /events. Timestamps are
// ISO-8601; values without an offset are read in the configured timezone.
type CreateEventRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MaxCapacity int    `json:"maxCapacity"`
}

// Validate implements Validator. Returns error messages for required fields.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Location == "" {
		errs = append(errs, "location is required")
	}
	if c.StartTime == "" {
		errs = append(errs, "startTime is required")
	}
	if c.EndTime == "" {
		errs = append(errs, "endTime is required")
	}
	return errs
}

// RegisterAttendeeRequest is the request body for POST /events/{eventID}/register.
type RegisterAttendeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (r RegisterAttendeeRequest) Validate() []string {
	var errs []string
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	if r.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(r.Email) {
		errs = append(errs, "email format is invalid")
	}
	return errs
}

// AttendeeView is the serialized attendee in the roster response.
// swagger:model AttendeeView
type AttendeeView struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// EventView is the serialized event. Timestamps are ISO-8601 in the configured
// timezone; attendees is present only on the roster route.
// swagger:model EventView
type EventView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Location    string         `json:"location"`
	StartTime   string         `json:"startTime"`
	EndTime     string         `json:"endTime"`
	MaxCapacity int            `json:"maxCapacity"`
	Attendees   []AttendeeView `json:"attendees,omitempty"`
}

// StatusResponse is the health check body for GET /.
// swagger:model StatusResponse
type StatusResponse struct {
	Status string `json:"status"`
}

// Status godoc
// @Summary Health check
// @Tags status
// @Produce json
// @Success 200 {object} controllers.StatusResponse
// @Router / [get]
func (c *EventController) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"Running..."}`))
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an event. The id and timestamps are server-generated; start must not be after end or in the past, capacity must be positive, and the name must be unused.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 200 {object} helpers.APIResponse "data contains the created event view"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	startTime, err := timeutil.ParseISO(req.StartTime, c.Timezone)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid startTime: "+err.Error())
		return
	}
	endTime, err := timeutil.ParseISO(req.EndTime, c.Timezone)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid endTime: "+err.Error())
		return
	}
	event := domain.NewEvent(req.Name, req.Location, startTime, endTime, req.MaxCapacity)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.writeError(w, r, err)
		return
	}
	view, err := c.eventView(event, false)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// ListEvents godoc
// @Summary List upcoming events
// @Description Returns the requested page of events whose start time is not in the past, ordered by start time. Page size is the configured pagination limit.
// @Tags events
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} helpers.APIResponse "data contains an array of event views"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	page, err := helpers.ParsePage(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	events, err := c.Service.ListUpcomingEvents(r.Context(), page)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	views := make([]EventView, 0, len(events))
	for _, event := range events {
		view, err := c.eventView(event, false)
		if err != nil {
			c.writeError(w, r, err)
			return
		}
		views = append(views, view)
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, views)
}

// RegisterAttendee godoc
// @Summary Register an attendee for an event
// @Description Registers the attendee if the event exists, has a free slot, and the email is not already registered for it. The response is the event view without the roster; use the attendees route to read the roster.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param attendee body RegisterAttendeeRequest true "Attendee data"
// @Success 200 {object} helpers.APIResponse "data contains the event view"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register [post]
func (c *EventController) RegisterAttendee(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req RegisterAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	attendee := domain.NewAttendee(req.Name, req.Email, eventID)
	event, err := c.Service.RegisterAttendee(r.Context(), eventID, attendee)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	view, err := c.eventView(event, false)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// GetAttendees godoc
// @Summary Get an event with its attendee roster
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event view with attendees"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *EventController) GetAttendees(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEventWithAttendees(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	view, err := c.eventView(event, true)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// eventView converts an event to its serialized form, re-expressing the UTC
// timestamps in the configured timezone.
func (c *EventController) eventView(event *domain.Event, withAttendees bool) (EventView, error) {
	start, err := timeutil.FromUTC(event.StartTime, c.Timezone)
	if err != nil {
		return EventView{}, err
	}
	end, err := timeutil.FromUTC(event.EndTime, c.Timezone)
	if err != nil {
		return EventView{}, err
	}
	view := EventView{
		ID:          event.ID,
		Name:        event.Name,
		Location:    event.Location,
		StartTime:   start.Format(time.RFC3339),
		EndTime:     end.Format(time.RFC3339),
		MaxCapacity: event.MaxCapacity,
	}
	if withAttendees {
		view.Attendees = make([]AttendeeView, 0, len(event.Attendees))
		for _, a := range event.Attendees {
			view.Attendees = append(view.Attendees, AttendeeView{Name: a.Name, Email: a.Email})
		}
	}
	return view, nil
}

// writeError maps domain errors to the JSON error envelope. All validation
// failures are 400; anything unexpected is logged and returned as 500.
func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrDuplicateName),
		errors.Is(err, domain.ErrInvalidPage),
		errors.Is(err, domain.ErrNoResults),
		errors.Is(err, domain.ErrCapacityFull),
		errors.Is(err, domain.ErrAlreadyRegistered):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
