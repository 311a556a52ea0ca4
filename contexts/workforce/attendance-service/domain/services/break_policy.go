package services

import (
	"time"

	"timeclock/contexts/workforce/attendance-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/attendance-service/domain/errors"
)

// DefaultMinBreakMinutes is the minimum interval between break_start and
// break_end.
const DefaultMinBreakMinutes = 20

// BreakPolicy decides whether a break_end is admissible against a user's
// event history. It performs no I/O; the caller supplies history and now.
type BreakPolicy struct {
	MinBreakMinutes int
}

func (p BreakPolicy) minBreakMinutes() int {
	if p.MinBreakMinutes <= 0 {
		return DefaultMinBreakMinutes
	}
	return p.MinBreakMinutes
}

// EvaluateBreakEnd scans the full history for the chronologically latest
// break_start and requires it to be at least the minimum interval before
// now. The history may arrive in any order; only timestamps decide which
// break_start is the open one.
func (p BreakPolicy) EvaluateBreakEnd(history []entities.AttendanceEvent, now time.Time) error {
	var latest *entities.AttendanceEvent
	for i := range history {
		item := &history[i]
		if item.Type != entities.EventTypeBreakStart {
			continue
		}
		if latest == nil || item.RecordedAt.After(latest.RecordedAt) {
			latest = item
		}
	}
	if latest == nil {
		return domainerrors.ErrNoOpenBreak
	}

	minimum := p.minBreakMinutes()
	elapsedMinutes := int(now.Sub(latest.RecordedAt) / time.Minute)
	if elapsedMinutes < minimum {
		return domainerrors.BreakTooShortError{
			MinimumMinutes:   minimum,
			RemainingMinutes: minimum - elapsedMinutes,
		}
	}
	return nil
}
