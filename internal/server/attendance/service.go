// Package attendance keeps event check-ins for the development portal.
package attendance

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/server/config"
	"github.com/dmitrijs2005/tixgo/internal/shared"
)

type Event struct {
	ID              string
	Name            string
	TotalRegistered int
}

type CheckIn struct {
	ID        string
	EventID   string
	EventName string
	TicketID  string
	UserID    string
	Time      time.Time
}

type Summary struct {
	EventID           string
	EventName         string
	TotalRegistered   int
	TotalCheckedIn    int
	CheckinPercentage float64
	CheckIns          []CheckIn
}

type Service struct {
	mu       sync.RWMutex
	events   map[string]Event
	checkins []CheckIn
	tickets  map[string]struct{}
	seq      int
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		events:  make(map[string]Event, len(cfg.Events)),
		tickets: make(map[string]struct{}),
		now:     time.Now,
	}
	for _, e := range cfg.Events {
		s.events[e.ID] = Event{ID: e.ID, Name: e.Name, TotalRegistered: e.TotalRegistered}
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Attendance summarises an event. The percentage is rounded to a whole
// number and is zero for events nobody registered for.
func (s *Service) Attendance(ctx context.Context, eventID string) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[eventID]
	if !ok {
		return nil, shared.ErrorNotFound
	}

	sum := &Summary{
		EventID:         e.ID,
		EventName:       e.Name,
		TotalRegistered: e.TotalRegistered,
		CheckIns:        []CheckIn{},
	}
	for _, c := range s.checkins {
		if c.EventID == eventID {
			sum.CheckIns = append(sum.CheckIns, c)
		}
	}
	sum.TotalCheckedIn = len(sum.CheckIns)
	if e.TotalRegistered > 0 {
		sum.CheckinPercentage = math.Round(float64(sum.TotalCheckedIn) * 100 / float64(e.TotalRegistered))
	}

	return sum, nil
}

// CheckIn records ticketID for eventID. A ticket checks in once per event.
func (s *Service) CheckIn(ctx context.Context, userID, eventID, ticketID string) (*CheckIn, error) {
	if eventID == "" || ticketID == "" {
		return nil, fmt.Errorf("%w: event_id and ticket_id are required", shared.ErrorValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[eventID]
	if !ok {
		return nil, shared.ErrorNotFound
	}

	key := eventID + "/" + ticketID
	if _, dup := s.tickets[key]; dup {
		return nil, shared.ErrorAlreadyExists
	}

	s.seq++
	c := CheckIn{
		ID:        fmt.Sprintf("C%03d", s.seq),
		EventID:   e.ID,
		EventName: e.Name,
		TicketID:  ticketID,
		UserID:    userID,
		Time:      s.now().UTC(),
	}
	s.checkins = append(s.checkins, c)
	s.tickets[key] = struct{}{}

	return &c, nil
}

// CheckIns lists the check-ins made by userID, oldest first, optionally
// limited to one event.
func (s *Service) CheckIns(ctx context.Context, userID, eventID string) []CheckIn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []CheckIn{}
	for _, c := range s.checkins {
		if c.UserID != userID {
			continue
		}
		if eventID != "" && c.EventID != eventID {
			continue
		}
		out = append(out, c)
	}
	return out
}
