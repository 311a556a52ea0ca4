package queries

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"timeclock/contexts/workforce/attendance-service/domain/entities"
	domainerrors "timeclock/contexts/workforce/attendance-service/domain/errors"
	"timeclock/contexts/workforce/attendance-service/ports"
)

const adminRole = "admin"

type BuildReportQuery struct {
	RequesterID  string
	TargetUserID string
	From         *time.Time
	To           *time.Time
}

type BuildReportUseCase struct {
	Events    ports.EventLog
	Directory ports.EmployeeDirectory
	Logger    *slog.Logger
}

// Execute authorizes the requester (active admin only) and returns the
// filtered log in descending RecordedAt order. An empty TargetUserID means
// every user.
func (uc BuildReportUseCase) Execute(ctx context.Context, query BuildReportQuery) ([]entities.AttendanceEvent, error) {
	if err := uc.authorize(ctx, query.RequesterID); err != nil {
		return nil, err
	}

	target := entities.NormalizeUserID(query.TargetUserID)

	all, err := uc.Events.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entities.AttendanceEvent, 0, len(all))
	for _, item := range all {
		if target != "" && item.UserID != target {
			continue
		}
		if !withinRange(item.RecordedAt, query.From, query.To) {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].RecordedAt.After(items[j].RecordedAt)
	})
	return items, nil
}

func (uc BuildReportUseCase) authorize(ctx context.Context, requesterID string) error {
	profile, err := uc.Directory.FindEmployee(ctx, entities.NormalizeUserID(requesterID))
	if err != nil {
		return err
	}
	if profile.Role != adminRole || !profile.Active {
		return domainerrors.ErrReportAccessDenied
	}
	return nil
}
