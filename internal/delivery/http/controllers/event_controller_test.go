package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eventregistry/internal/delivery/http/helpers"
	"eventregistry/internal/domain"
)

type mockEventService struct {
	created  *domain.Event
	upcoming []*domain.Event
	event    *domain.Event
	err      error
	gotPage  int
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = "ev-created"
	m.created = event
	return nil
}

func (m *mockEventService) ListUpcomingEvents(ctx context.Context, page int) ([]*domain.Event, error) {
	m.gotPage = page
	if m.err != nil {
		return nil, m.err
	}
	return m.upcoming, nil
}

func (m *mockEventService) RegisterAttendee(ctx context.Context, eventID string, attendee *domain.Attendee) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) GetEventWithAttendees(ctx context.Context, eventID string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func newTestController(svc domain.EventService) *EventController {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewEventController(logger, svc, "Asia/Kolkata")
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp
}

func TestEventController_Status(t *testing.T) {
	ctrl := newTestController(&mockEventService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	ctrl.Status(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body["status"] != "Running..." {
		t.Fatalf("unexpected status body: %v", body)
	}
}

func TestEventController_CreateEvent_Success(t *testing.T) {
	svc := &mockEventService{}
	ctrl := newTestController(svc)

	body := `{"name":"Conf","location":"HQ","startTime":"2030-06-01T10:00:00+05:30","endTime":"2030-06-01T12:00:00+05:30","maxCapacity":2}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
	view := resp.Data.(map[string]any)
	if view["id"] != "ev-created" {
		t.Fatalf("expected generated id in view, got %v", view["id"])
	}
	// Times must come back in the configured timezone.
	if view["startTime"] != "2030-06-01T10:00:00+05:30" {
		t.Fatalf("unexpected startTime: %v", view["startTime"])
	}
	if _, ok := view["attendees"]; ok {
		t.Fatal("create response must not include attendees")
	}
	// The service received UTC.
	wantStart := time.Date(2030, 6, 1, 4, 30, 0, 0, time.UTC)
	if !svc.created.StartTime.Equal(wantStart) {
		t.Fatalf("expected UTC start %v, got %v", wantStart, svc.created.StartTime)
	}
}

func TestEventController_CreateEvent_NaiveTimesReadInConfiguredZone(t *testing.T) {
	svc := &mockEventService{}
	ctrl := newTestController(svc)

	body := `{"name":"Conf","location":"HQ","startTime":"2030-06-01T10:00:00","endTime":"2030-06-01T12:00:00","maxCapacity":2}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	w := httptest.NewRecorder()
	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	wantStart := time.Date(2030, 6, 1, 4, 30, 0, 0, time.UTC)
	if !svc.created.StartTime.Equal(wantStart) {
		t.Fatalf("expected naive time read as Asia/Kolkata, got %v", svc.created.StartTime)
	}
}

func TestEventController_CreateEvent_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode string
	}{
		{
			name:     "missing fields",
			body:     `{"name":"Conf"}`,
			wantCode: helpers.ErrCodeBadRequest,
		},
		{
			name:     "unparseable time",
			body:     `{"name":"Conf","location":"HQ","startTime":"soon","endTime":"later","maxCapacity":2}`,
			wantCode: helpers.ErrCodeBadRequest,
		},
		{
			name:     "invalid date range",
			body:     `{"name":"Conf","location":"HQ","startTime":"2030-06-01T12:00:00","endTime":"2030-06-01T10:00:00","maxCapacity":2}`,
			svcErr:   domain.ErrInvalidDateRange,
			wantCode: helpers.ErrCodeBadRequest,
		},
		{
			name:     "invalid capacity",
			body:     `{"name":"Conf","location":"HQ","startTime":"2030-06-01T10:00:00","endTime":"2030-06-01T12:00:00","maxCapacity":0}`,
			svcErr:   domain.ErrInvalidCapacity,
			wantCode: helpers.ErrCodeBadRequest,
		},
		{
			name:     "duplicate name",
			body:     `{"name":"Conf","location":"HQ","startTime":"2030-06-01T10:00:00","endTime":"2030-06-01T12:00:00","maxCapacity":2}`,
			svcErr:   domain.ErrDuplicateName,
			wantCode: helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newTestController(&mockEventService{err: tt.svcErr})
			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			ctrl.CreateEvent(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
			}
			resp := decodeEnvelope(t, w)
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Fatalf("expected error code %s, got %v", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestEventController_ListEvents(t *testing.T) {
	upcoming := []*domain.Event{
		{
			ID:          "ev-1",
			Name:        "A",
			Location:    "HQ",
			StartTime:   time.Date(2030, 6, 1, 4, 30, 0, 0, time.UTC),
			EndTime:     time.Date(2030, 6, 1, 6, 30, 0, 0, time.UTC),
			MaxCapacity: 5,
		},
	}

	svc := &mockEventService{upcoming: upcoming}
	ctrl := newTestController(svc)

	req := httptest.NewRequest(http.MethodGet, "/events?page=2", nil)
	w := httptest.NewRecorder()
	ctrl.ListEvents(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if svc.gotPage != 2 {
		t.Fatalf("expected page 2 passed through, got %d", svc.gotPage)
	}
	resp := decodeEnvelope(t, w)
	views := resp.Data.([]any)
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	view := views[0].(map[string]any)
	if view["startTime"] != "2030-06-01T10:00:00+05:30" {
		t.Fatalf("expected local time, got %v", view["startTime"])
	}
}

func TestEventController_ListEvents_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		svcErr error
	}{
		{name: "page zero", target: "/events?page=0", svcErr: domain.ErrInvalidPage},
		{name: "no results", target: "/events?page=99", svcErr: domain.ErrNoResults},
		{name: "non-integer page", target: "/events?page=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newTestController(&mockEventService{err: tt.svcErr})
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			w := httptest.NewRecorder()
			ctrl.ListEvents(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestEventController_RegisterAttendee(t *testing.T) {
	event := &domain.Event{
		ID:          "ev-1",
		Name:        "Conf",
		Location:    "HQ",
		StartTime:   time.Date(2030, 6, 1, 4, 30, 0, 0, time.UTC),
		EndTime:     time.Date(2030, 6, 1, 6, 30, 0, 0, time.UTC),
		MaxCapacity: 2,
	}

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"name":"John Doe","email":"john@example.com"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad email",
			body:       `{"name":"John Doe","email":"not-an-email"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "event not found",
			body:       `{"name":"John Doe","email":"john@example.com"}`,
			svcErr:     domain.ErrNotFound,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "capacity full",
			body:       `{"name":"John Doe","email":"john@example.com"}`,
			svcErr:     domain.ErrCapacityFull,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "already registered",
			body:       `{"name":"John Doe","email":"john@example.com"}`,
			svcErr:     domain.ErrAlreadyRegistered,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newTestController(&mockEventService{event: event, err: tt.svcErr})
			req := httptest.NewRequest(http.MethodPost, "/events/ev-1/register", strings.NewReader(tt.body))
			req.SetPathValue("eventID", "ev-1")
			w := httptest.NewRecorder()
			ctrl.RegisterAttendee(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			resp := decodeEnvelope(t, w)
			if tt.wantCode != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Fatalf("expected error code %s, got %v", tt.wantCode, resp.Error)
				}
				return
			}
			view := resp.Data.(map[string]any)
			if _, ok := view["attendees"]; ok {
				t.Fatal("register response must not include attendees")
			}
		})
	}
}

func TestEventController_GetAttendees(t *testing.T) {
	event := &domain.Event{
		ID:          "ev-1",
		Name:        "Conf",
		Location:    "HQ",
		StartTime:   time.Date(2030, 6, 1, 4, 30, 0, 0, time.UTC),
		EndTime:     time.Date(2030, 6, 1, 6, 30, 0, 0, time.UTC),
		MaxCapacity: 2,
		Attendees: []*domain.Attendee{
			{ID: 1, Name: "John Doe", Email: "john@example.com", EventID: "ev-1"},
		},
	}

	ctrl := newTestController(&mockEventService{event: event})
	req := httptest.NewRequest(http.MethodGet, "/events/ev-1/attendees", nil)
	req.SetPathValue("eventID", "ev-1")
	w := httptest.NewRecorder()
	ctrl.GetAttendees(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	view := resp.Data.(map[string]any)
	attendees := view["attendees"].([]any)
	if len(attendees) != 1 {
		t.Fatalf("expected 1 attendee, got %d", len(attendees))
	}
	a := attendees[0].(map[string]any)
	if a["name"] != "John Doe" || a["email"] != "john@example.com" {
		t.Fatalf("unexpected attendee: %v", a)
	}
}

func TestEventController_GetAttendees_NotFound(t *testing.T) {
	ctrl := newTestController(&mockEventService{err: domain.ErrNotFound})
	req := httptest.NewRequest(http.MethodGet, "/events/ev-x/attendees", nil)
	req.SetPathValue("eventID", "ev-x")
	w := httptest.NewRecorder()
	ctrl.GetAttendees(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Error == nil || resp.Error.Code != helpers.ErrCodeNotFound {
		t.Fatalf("expected not_found code, got %v", resp.Error)
	}
}
