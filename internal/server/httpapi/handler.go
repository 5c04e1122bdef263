package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/server/attendance"
	"github.com/dmitrijs2005/tixgo/internal/server/users"
	"github.com/dmitrijs2005/tixgo/internal/shared"
	"github.com/go-chi/chi/v5"
)

const maxRequestBodySize = 1 << 20

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type checkInRequest struct {
	EventID  string `json:"event_id"`
	TicketID string `json:"ticket_id"`
}

type userResponse struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullname,omitempty"`
	Role     string `json:"role,omitempty"`
}

type checkInResponse struct {
	CheckinID   string `json:"checkin_id"`
	EventID     string `json:"event_id"`
	EventName   string `json:"event_name,omitempty"`
	TicketID    string `json:"ticket_id"`
	UserID      string `json:"user_id"`
	CheckinTime string `json:"checkin_time"`
	Status      string `json:"status,omitempty"`
}

type attendanceResponse struct {
	EventID           string            `json:"event_id"`
	EventName         string            `json:"event_name"`
	TotalRegistered   int               `json:"total_registered"`
	TotalCheckedIn    int               `json:"total_checked_in"`
	CheckinPercentage float64           `json:"checkin_percentage"`
	CheckIns          []checkInResponse `json:"checkins"`
}

type checkInListResponse struct {
	UserID   string            `json:"user_id"`
	CheckIns []checkInResponse `json:"checkins"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // client may be gone
		json.NewEncoder(w).Encode(v)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return false
	}
	return true
}

// mapError converts a service error into a status and a detail message.
func mapError(err error, notFound, conflict string) (int, string) {
	switch {
	case errors.Is(err, shared.ErrorValidation):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, shared.ErrorNotFound):
		return http.StatusNotFound, notFound
	case errors.Is(err, shared.ErrorAlreadyExists):
		return http.StatusBadRequest, conflict
	case errors.Is(err, shared.ErrorUnauthorized):
		return http.StatusUnauthorized, "invalid credentials"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func toCheckIn(c attendance.CheckIn, status string) checkInResponse {
	return checkInResponse{
		CheckinID:   c.ID,
		EventID:     c.EventID,
		EventName:   c.EventName,
		TicketID:    c.TicketID,
		UserID:      c.UserID,
		CheckinTime: c.Time.Format(time.RFC3339),
		Status:      status,
	}
}

func toCheckIns(cs []attendance.CheckIn) []checkInResponse {
	out := make([]checkInResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCheckIn(c, ""))
	}
	return out
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": s.serviceName})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.logger.Info(r.Context(), "Registration request", "username", req.Username)

	u, err := s.users.Register(r.Context(), users.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		status, detail := mapError(err, "not found", "username already exists")
		if status == http.StatusInternalServerError {
			s.logger.Error(r.Context(), "register failed", "error", err)
		}
		writeDetail(w, status, detail)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", u.UserName, "id", u.ID)
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "registered",
		"username": u.UserName,
		"role":     u.Role,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		status, detail := mapError(err, "not found", "conflict")
		if status == http.StatusInternalServerError {
			s.logger.Error(r.Context(), "login failed", "error", err)
		}
		writeDetail(w, status, detail)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	resp := userResponse{Username: claims.Subject, Role: claims.Role}

	// Tokens outlive a restart of the in-memory store; fall back to claims.
	if u, err := s.users.Get(r.Context(), claims.Subject); err == nil {
		resp.ID = u.ID
		resp.Email = u.Email
		resp.FullName = u.FullName
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when it is set, leaving the parameter escaped.
	eventID := chi.URLParam(r, "event_id")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(eventID)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid event id")
			return
		}
		eventID = unescaped
	}

	sum, err := s.attendance.Attendance(r.Context(), eventID)
	if err != nil {
		status, detail := mapError(err, fmt.Sprintf("Event '%s' not found", eventID), "conflict")
		writeDetail(w, status, detail)
		return
	}

	writeJSON(w, http.StatusOK, attendanceResponse{
		EventID:           sum.EventID,
		EventName:         sum.EventName,
		TotalRegistered:   sum.TotalRegistered,
		TotalCheckedIn:    sum.TotalCheckedIn,
		CheckinPercentage: sum.CheckinPercentage,
		CheckIns:          toCheckIns(sum.CheckIns),
	})
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	claims := claimsFrom(r.Context())
	c, err := s.attendance.CheckIn(r.Context(), claims.Subject, req.EventID, req.TicketID)
	if err != nil {
		status, detail := mapError(err, "Event or ticket not found", "Ticket already checked in")
		writeDetail(w, status, detail)
		return
	}

	s.logger.Info(r.Context(), "Checked in", "event_id", c.EventID, "ticket_id", c.TicketID, "user", c.UserID)
	writeJSON(w, http.StatusOK, toCheckIn(*c, "success"))
}

func (s *Server) handleCheckIns(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	cs := s.attendance.CheckIns(r.Context(), claims.Subject, r.URL.Query().Get("event_id"))

	writeJSON(w, http.StatusOK, checkInListResponse{UserID: claims.Subject, CheckIns: toCheckIns(cs)})
}
