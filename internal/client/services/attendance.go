package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/tixgo/internal/client/config"
	"github.com/dmitrijs2005/tixgo/internal/client/models"
)

var (
	ErrEmptyEventID  = errors.New("event id is required")
	ErrEmptyTicketID = errors.New("ticket id is required")
)

// AttendanceService covers the attendance sub-API. All calls carry the
// session token; a 401 clears it like any other request.
type AttendanceService interface {
	Attendance(ctx context.Context, eventID string) (*models.Attendance, error)
	CheckIn(ctx context.Context, eventID, ticketID string) (*models.CheckIn, error)
	// CheckIns lists the caller's check-ins, optionally for one event.
	CheckIns(ctx context.Context, eventID string) (*models.CheckInList, error)
}

type attendanceService struct {
	api       API
	endpoints config.Endpoints
}

func NewAttendanceService(api API, endpoints config.Endpoints) AttendanceService {
	return &attendanceService{api: api, endpoints: endpoints}
}

func (s *attendanceService) Attendance(ctx context.Context, eventID string) (*models.Attendance, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, ErrEmptyEventID
	}

	path := strings.TrimRight(s.endpoints.Attendance, "/") + "/" + url.PathEscape(eventID)
	body, err := s.api.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	out := &models.Attendance{}
	if err := body.Decode(out); err != nil {
		return nil, fmt.Errorf("decode attendance: %w", err)
	}
	return out, nil
}

func (s *attendanceService) CheckIn(ctx context.Context, eventID, ticketID string) (*models.CheckIn, error) {
	req := models.CheckInRequest{EventID: strings.TrimSpace(eventID), TicketID: strings.TrimSpace(ticketID)}
	if req.EventID == "" {
		return nil, ErrEmptyEventID
	}
	if req.TicketID == "" {
		return nil, ErrEmptyTicketID
	}

	body, err := s.api.Request(ctx, http.MethodPost, s.endpoints.CheckIns, req)
	if err != nil {
		return nil, err
	}

	out := &models.CheckIn{}
	if err := body.Decode(out); err != nil {
		return nil, fmt.Errorf("decode check-in: %w", err)
	}
	return out, nil
}

func (s *attendanceService) CheckIns(ctx context.Context, eventID string) (*models.CheckInList, error) {
	path := s.endpoints.CheckIns
	if eventID = strings.TrimSpace(eventID); eventID != "" {
		path += "?" + url.Values{"event_id": {eventID}}.Encode()
	}

	body, err := s.api.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	out := &models.CheckInList{}
	if err := body.Decode(out); err != nil {
		return nil, fmt.Errorf("decode check-ins: %w", err)
	}
	return out, nil
}
