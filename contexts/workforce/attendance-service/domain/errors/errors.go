package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user profile not found")
	ErrUserInactive       = errors.New("user profile is inactive")
	ErrInvalidEventType   = errors.New("invalid attendance event type")
	ErrMissingEvidence    = errors.New("evidence reference is required")
	ErrNoOpenBreak        = errors.New("no open break to end")
	ErrBreakTooShort      = errors.New("break is shorter than the required minimum")
	ErrReportAccessDenied = errors.New("reports are restricted to active admins")
)

// BreakTooShortError rejects a break_end before the minimum interval has
// elapsed. RemainingMinutes is always > 0 when the error is returned.
type BreakTooShortError struct {
	MinimumMinutes   int
	RemainingMinutes int
}

func (e BreakTooShortError) Error() string {
	return fmt.Sprintf(
		"break must last at least %d minutes, wait %d more minute(s)",
		e.MinimumMinutes,
		e.RemainingMinutes,
	)
}

func (e BreakTooShortError) Is(target error) bool {
	return target == ErrBreakTooShort
}
