package commands

import (
	"context"
	"log/slog"
	"strings"

	application "timeclock/contexts/workforce/attendance-service/application"
	"timeclock/contexts/workforce/attendance-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/attendance-service/domain/errors"
	"timeclock/contexts/workforce/attendance-service/domain/services"
	"timeclock/contexts/workforce/attendance-service/ports"
)

type RecordEventCommand struct {
	UserID      string
	Type        string
	EvidenceRef string
	Note        string
	Latitude    *float64
	Longitude   *float64
}

type RecordEventUseCase struct {
	Events      ports.EventLog
	Directory   ports.EmployeeDirectory
	BreakPolicy services.BreakPolicy
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute records one attendance event. Precondition order is fixed:
// profile lookup, event type, evidence, then the break rule for break_end
// only. The log is appended exactly once on success and never on failure.
func (uc RecordEventUseCase) Execute(ctx context.Context, cmd RecordEventCommand) (entities.AttendanceEvent, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := entities.NormalizeUserID(cmd.UserID)

	profile, err := uc.Directory.FindEmployee(ctx, userID)
	if err != nil {
		return entities.AttendanceEvent{}, err
	}
	if !profile.Active {
		return entities.AttendanceEvent{}, domainerrors.ErrUserInactive
	}

	eventType := entities.EventType(strings.TrimSpace(cmd.Type))
	if !entities.IsSupportedEventType(eventType) {
		return entities.AttendanceEvent{}, domainerrors.ErrInvalidEventType
	}

	if strings.TrimSpace(cmd.EvidenceRef) == "" {
		return entities.AttendanceEvent{}, domainerrors.ErrMissingEvidence
	}

	now := uc.Clock.Now().UTC()

	if eventType == entities.EventTypeBreakEnd {
		all, err := uc.Events.ListAll(ctx)
		if err != nil {
			return entities.AttendanceEvent{}, err
		}
		history := make([]entities.AttendanceEvent, 0, len(all))
		for _, item := range all {
			if item.UserID == userID {
				history = append(history, item)
			}
		}
		if err := uc.BreakPolicy.EvaluateBreakEnd(history, now); err != nil {
			return entities.AttendanceEvent{}, err
		}
	}

	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.AttendanceEvent{}, err
	}

	event := entities.AttendanceEvent{
		EventID:     eventID,
		UserID:      userID,
		Name:        profile.Name,
		Role:        profile.Role,
		Type:        eventType,
		RecordedAt:  now,
		Latitude:    cmd.Latitude,
		Longitude:   cmd.Longitude,
		EvidenceRef: strings.TrimSpace(cmd.EvidenceRef),
		Note:        strings.TrimSpace(cmd.Note),
	}
	if err := uc.Events.Append(ctx, event); err != nil {
		return entities.AttendanceEvent{}, err
	}

	logger.Info("attendance event recorded",
		"event", "attendance_event_recorded",
		"module", "workforce/attendance-service",
		"layer", "application",
		"user_id", event.UserID,
		"event_type", string(event.Type),
		"event_id", event.EventID,
	)
	return event, nil
}
