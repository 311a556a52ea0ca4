package ports

import (
	"context"
	"time"

	"timeclock/contexts/workforce/attendance-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation for event rows.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// EventLog is the external append-only attendance store. Append must insert
// a new row and never overwrite; ListAll returns every row with no ordering
// guarantee, so callers sort by RecordedAt themselves. The log offers no
// uniqueness constraint and no conditional append, which is why two
// concurrent break_end calls for the same user can both pass validation.
type EventLog interface {
	Append(ctx context.Context, event entities.AttendanceEvent) error
	ListAll(ctx context.Context) ([]entities.AttendanceEvent, error)
}

// EmployeeProfile is the slice of the directory record the attendance
// service needs for preconditions and log denormalization.
type EmployeeProfile struct {
	UserID string
	Name   string
	Role   string
	Active bool
}

// EmployeeDirectory resolves user profiles owned by the directory context.
// Implementations return domain ErrUserNotFound for unknown ids.
type EmployeeDirectory interface {
	FindEmployee(ctx context.Context, userID string) (EmployeeProfile, error)
}

// RelayCursor persists the last mirrored event log row per relay so the
// sheet mirror can resume after restarts.
type RelayCursor interface {
	GetCursor(ctx context.Context, relayName string) (int64, error)
	SetCursor(ctx context.Context, relayName string, position int64) error
}

// MirrorSource lists event rows past a cursor position in insertion order.
// Only the postgres adapter implements it; the spreadsheet itself is never
// a mirror source.
type MirrorSource interface {
	ListEventsAfter(ctx context.Context, position int64, limit int) ([]NumberedEvent, error)
}

// NumberedEvent pairs an event with its storage insertion position.
type NumberedEvent struct {
	Position int64
	Event    entities.AttendanceEvent
}
