package queries

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"timeclock/contexts/workforce/attendance-service/domain/entities"
	"timeclock/contexts/workforce/attendance-service/ports"
)

type ListEventsQuery struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

type ListEventsUseCase struct {
	Events ports.EventLog
	Logger *slog.Logger
}

// Execute returns a user's own rows in descending RecordedAt order. The log
// guarantees no ordering, so the full scan is filtered and sorted here.
func (uc ListEventsUseCase) Execute(ctx context.Context, query ListEventsQuery) ([]entities.AttendanceEvent, error) {
	userID := entities.NormalizeUserID(query.UserID)

	all, err := uc.Events.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entities.AttendanceEvent, 0, len(all))
	for _, item := range all {
		if item.UserID != userID {
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

func withinRange(ts time.Time, from *time.Time, to *time.Time) bool {
	if from != nil && ts.Before(*from) {
		return false
	}
	if to != nil && ts.After(*to) {
		return false
	}
	return true
}
