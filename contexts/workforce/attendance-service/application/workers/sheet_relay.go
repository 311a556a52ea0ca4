package workers

import (
	"context"
	"log/slog"

	application "timeclock/contexts/workforce/attendance-service/application"
	"timeclock/contexts/workforce/attendance-service/ports"
)

const relayName = "sheet-mirror"

// SheetRelay mirrors postgres event log rows into the admin spreadsheet.
// Delivery is at-least-once: the cursor is advanced only after a row is
// appended, so a crash between append and advance replays the row. The
// spreadsheet is an advisory mirror and tolerates duplicates.
type SheetRelay struct {
	Source    ports.MirrorSource
	Cursor    ports.RelayCursor
	Mirror    ports.EventLog
	BatchSize int
	Logger    *slog.Logger
}

func (r SheetRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	position, err := r.Cursor.GetCursor(ctx, relayName)
	if err != nil {
		logger.Error("sheet relay cursor read failed",
			"event", "sheet_relay_cursor_read_failed",
			"module", "workforce/attendance-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	pending, err := r.Source.ListEventsAfter(ctx, position, limit)
	if err != nil {
		logger.Error("sheet relay list failed",
			"event", "sheet_relay_list_failed",
			"module", "workforce/attendance-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	for _, row := range pending {
		if err := r.Mirror.Append(ctx, row.Event); err != nil {
			logger.Error("sheet relay append failed",
				"event", "sheet_relay_append_failed",
				"module", "workforce/attendance-service",
				"layer", "worker",
				"event_id", row.Event.EventID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Cursor.SetCursor(ctx, relayName, row.Position); err != nil {
			logger.Error("sheet relay cursor write failed",
				"event", "sheet_relay_cursor_write_failed",
				"module", "workforce/attendance-service",
				"layer", "worker",
				"event_id", row.Event.EventID,
				"error", err.Error(),
			)
			return err
		}
	}

	if len(pending) > 0 {
		logger.Info("sheet relay cycle completed",
			"event", "sheet_relay_completed",
			"module", "workforce/attendance-service",
			"layer", "worker",
			"mirrored_count", len(pending),
		)
	}
	return nil
}
