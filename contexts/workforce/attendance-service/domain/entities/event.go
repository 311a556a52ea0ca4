package entities

import (
	"strings"
	"time"
)

type EventType string

const (
	EventTypeClockIn    EventType = "clock_in"
	EventTypeBreakStart EventType = "break_start"
	EventTypeBreakEnd   EventType = "break_end"
	EventTypeClockOut   EventType = "clock_out"
)

// AttendanceEvent is one row of the append-only attendance log. Events are
// written exactly once and never updated or deleted afterwards.
type AttendanceEvent struct {
	EventID     string
	UserID      string
	Name        string
	Role        string
	Type        EventType
	RecordedAt  time.Time
	Latitude    *float64
	Longitude   *float64
	EvidenceRef string
	Note        string
}

func IsSupportedEventType(value EventType) bool {
	switch value {
	case EventTypeClockIn, EventTypeBreakStart, EventTypeBreakEnd, EventTypeClockOut:
		return true
	default:
		return false
	}
}

// NormalizeUserID lowers and trims an identifier. User ids are email
// addresses and the log stores them lowercase.
func NormalizeUserID(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
