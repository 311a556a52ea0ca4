package unit

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	attendanceservice "timeclock/contexts/workforce/attendance-service"
	domainerrors "timeclock/contexts/workforce/attendance-service/domain/errors"
	"timeclock/contexts/workforce/attendance-service/ports"
	httptransport "timeclock/contexts/workforce/attendance-service/transport/http"
)

func newAttendanceModule() attendanceservice.Module {
	module := attendanceservice.NewInMemoryModule([]ports.EmployeeProfile{
		{UserID: "ana@example.com", Name: "Ana Souza", Role: "employee", Active: true},
		{UserID: "boss@example.com", Name: "Marta Reis", Role: "admin", Active: true},
		{UserID: "off@example.com", Name: "Caio Dias", Role: "employee", Active: false},
	}, nil)
	module.Store.SetNow(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	return module
}

func recordEvent(t *testing.T, module attendanceservice.Module, userID, eventType string) httptransport.RecordEventResponse {
	t.Helper()
	resp, err := module.Handler.RecordEventHandler(context.Background(), userID, httptransport.RecordEventRequest{
		EventType:   eventType,
		EvidenceRef: "https://storage.example.com/selfies/" + userID + ".jpg",
	})
	if err != nil {
		t.Fatalf("record %s for %s: %v", eventType, userID, err)
	}
	return resp
}

func TestAttendanceFullDay(t *testing.T) {
	module := newAttendanceModule()

	recordEvent(t, module, "ana@example.com", "clock_in")
	module.Store.Advance(3 * time.Hour)
	recordEvent(t, module, "ana@example.com", "break_start")
	module.Store.Advance(30 * time.Minute)
	recordEvent(t, module, "ana@example.com", "break_end")
	module.Store.Advance(4 * time.Hour)
	recordEvent(t, module, "ana@example.com", "clock_out")

	list, err := module.Handler.ListEventsHandler(context.Background(), "ana@example.com", nil, nil)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(list.Items) != 4 {
		t.Fatalf("expected 4 events, got %d", len(list.Items))
	}
	// Most recent first.
	if list.Items[0].EventType != "clock_out" || list.Items[3].EventType != "clock_in" {
		t.Fatalf("expected descending order, got %s..%s", list.Items[0].EventType, list.Items[3].EventType)
	}
}

func TestAttendanceShortBreakRejected(t *testing.T) {
	module := newAttendanceModule()

	recordEvent(t, module, "ana@example.com", "break_start")
	module.Store.Advance(10 * time.Minute)

	_, err := module.Handler.RecordEventHandler(context.Background(), "ana@example.com", httptransport.RecordEventRequest{
		EventType:   "break_end",
		EvidenceRef: "ref",
	})
	var tooShort domainerrors.BreakTooShortError
	if !errors.As(err, &tooShort) {
		t.Fatalf("expected BreakTooShortError, got %v", err)
	}
	if tooShort.RemainingMinutes != 10 {
		t.Fatalf("expected 10 remaining minutes, got %d", tooShort.RemainingMinutes)
	}
	if module.Store.EventCount() != 1 {
		t.Fatalf("expected rejected break_end to leave the log untouched")
	}
}

func TestAttendanceBreakEndWithoutStart(t *testing.T) {
	module := newAttendanceModule()

	recordEvent(t, module, "ana@example.com", "clock_in")
	_, err := module.Handler.RecordEventHandler(context.Background(), "ana@example.com", httptransport.RecordEventRequest{
		EventType:   "break_end",
		EvidenceRef: "ref",
	})
	if !errors.Is(err, domainerrors.ErrNoOpenBreak) {
		t.Fatalf("expected ErrNoOpenBreak, got %v", err)
	}
}

func TestAttendanceInactiveUserRejected(t *testing.T) {
	module := newAttendanceModule()

	_, err := module.Handler.RecordEventHandler(context.Background(), "off@example.com", httptransport.RecordEventRequest{
		EventType:   "clock_in",
		EvidenceRef: "ref",
	})
	if !errors.Is(err, domainerrors.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
	if module.Store.EventCount() != 0 {
		t.Fatalf("expected no events for inactive user")
	}
}

func TestAttendanceReportAuthorization(t *testing.T) {
	module := newAttendanceModule()
	recordEvent(t, module, "ana@example.com", "clock_in")

	_, err := module.Handler.BuildReportHandler(context.Background(), "ana@example.com", "", nil, nil)
	if !errors.Is(err, domainerrors.ErrReportAccessDenied) {
		t.Fatalf("expected ErrReportAccessDenied for employee, got %v", err)
	}

	report, err := module.Handler.BuildReportHandler(context.Background(), "boss@example.com", "ana@example.com", nil, nil)
	if err != nil {
		t.Fatalf("admin report: %v", err)
	}
	if len(report.Items) != 1 {
		t.Fatalf("expected 1 event in report, got %d", len(report.Items))
	}
}

func TestAttendanceReportExport(t *testing.T) {
	module := newAttendanceModule()
	recordEvent(t, module, "ana@example.com", "clock_in")

	workbook, err := module.Handler.ExportReportHandler(context.Background(), "boss@example.com", "", nil, nil)
	if err != nil {
		t.Fatalf("export report: %v", err)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(workbook, []byte("PK")) {
		t.Fatalf("expected xlsx (zip) payload, got %d bytes", len(workbook))
	}

	_, err = module.Handler.ExportReportHandler(context.Background(), "ana@example.com", "", nil, nil)
	if !errors.Is(err, domainerrors.ErrReportAccessDenied) {
		t.Fatalf("expected export to enforce admin access, got %v", err)
	}
}
