package models

// Attendance is the per-event summary.
type Attendance struct {
	EventID           string    `json:"event_id"`
	EventName         string    `json:"event_name,omitempty"`
	TotalRegistered   int       `json:"total_registered"`
	TotalCheckedIn    int       `json:"total_checked_in"`
	CheckinPercentage float64   `json:"checkin_percentage"`
	CheckIns          []CheckIn `json:"checkins,omitempty"`
}

type CheckInRequest struct {
	EventID  string `json:"event_id"`
	TicketID string `json:"ticket_id"`
}

// CheckIn is one check-in record. CheckinTime is kept as sent.
type CheckIn struct {
	CheckinID   string `json:"checkin_id"`
	EventID     string `json:"event_id"`
	EventName   string `json:"event_name,omitempty"`
	TicketID    string `json:"ticket_id"`
	UserID      string `json:"user_id,omitempty"`
	CheckinTime string `json:"checkin_time,omitempty"`
	Status      string `json:"status,omitempty"`
}

type CheckInList struct {
	UserID   string    `json:"user_id,omitempty"`
	CheckIns []CheckIn `json:"checkins"`
}
