package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"timeclock/contexts/workforce/attendance-service/application/commands"
	"timeclock/contexts/workforce/attendance-service/application/queries"
	"timeclock/contexts/workforce/attendance-service/domain/entities"
	httptransport "timeclock/contexts/workforce/attendance-service/transport/http"
)

type Handler struct {
	RecordEvent    commands.RecordEventUseCase
	ListEvents     queries.ListEventsUseCase
	BuildReport    queries.BuildReportUseCase
	ReportTimezone *time.Location
	Logger         *slog.Logger
}

func (h Handler) RecordEventHandler(
	ctx context.Context,
	userID string,
	req httptransport.RecordEventRequest,
) (httptransport.RecordEventResponse, error) {
	event, err := h.RecordEvent.Execute(ctx, commands.RecordEventCommand{
		UserID:      userID,
		Type:        req.EventType,
		EvidenceRef: req.EvidenceRef,
		Note:        req.Note,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return httptransport.RecordEventResponse{}, err
	}
	return httptransport.RecordEventResponse{Event: mapEvent(event)}, nil
}

func (h Handler) ListEventsHandler(
	ctx context.Context,
	userID string,
	from *time.Time,
	to *time.Time,
) (httptransport.ListEventsResponse, error) {
	items, err := h.ListEvents.Execute(ctx, queries.ListEventsQuery{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return httptransport.ListEventsResponse{}, err
	}
	return httptransport.ListEventsResponse{Items: mapEvents(items)}, nil
}

func (h Handler) BuildReportHandler(
	ctx context.Context,
	requesterID string,
	targetUserID string,
	from *time.Time,
	to *time.Time,
) (httptransport.ReportResponse, error) {
	items, err := h.BuildReport.Execute(ctx, queries.BuildReportQuery{
		RequesterID:  requesterID,
		TargetUserID: targetUserID,
		From:         from,
		To:           to,
	})
	if err != nil {
		return httptransport.ReportResponse{}, err
	}
	return httptransport.ReportResponse{Items: mapEvents(items)}, nil
}

func (h Handler) ExportReportHandler(
	ctx context.Context,
	requesterID string,
	targetUserID string,
	from *time.Time,
	to *time.Time,
) ([]byte, error) {
	items, err := h.BuildReport.Execute(ctx, queries.BuildReportQuery{
		RequesterID:  requesterID,
		TargetUserID: targetUserID,
		From:         from,
		To:           to,
	})
	if err != nil {
		return nil, err
	}
	return renderReportWorkbook(items, h.ReportTimezone)
}

func mapEvents(items []entities.AttendanceEvent) []httptransport.AttendanceEventDTO {
	result := make([]httptransport.AttendanceEventDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapEvent(item))
	}
	return result
}

func mapEvent(item entities.AttendanceEvent) httptransport.AttendanceEventDTO {
	return httptransport.AttendanceEventDTO{
		EventID:     item.EventID,
		UserID:      item.UserID,
		Name:        item.Name,
		Role:        item.Role,
		EventType:   string(item.Type),
		RecordedAt:  item.RecordedAt.UTC().Format(time.RFC3339),
		Latitude:    item.Latitude,
		Longitude:   item.Longitude,
		EvidenceRef: item.EvidenceRef,
		Note:        item.Note,
	}
}
